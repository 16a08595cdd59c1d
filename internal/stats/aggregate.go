// Package stats derives the summary figures shown above the list pages from
// loosely typed API records. The backend does not commit to field names for
// nested projects, so every lookup is a best-effort scan over candidates and
// malformed values are skipped rather than reported.
package stats

import (
	"strings"
	"time"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/shopspring/decimal"
)

// Candidate field names, scanned in order.
var (
	revenueFields = []string{
		"revenue", "amount", "total", "value", "price",
		"budget", "invoiceAmount", "projectRevenue", "invoice_value",
	}
	dateFields = []string{
		"date", "projectDate", "startDate", "createdAt",
		"createdOnUtc", "invoiceDate", "completedAt", "endDate",
	}
	activeStatuses = map[string]bool{
		"active":      true,
		"in-progress": true,
		"ongoing":     true,
	}
)

// Figures are the derived numbers for one record.
type Figures struct {
	ActiveProjects int
	MonthlyRevenue decimal.Decimal
}

// Summary aggregates Figures over a list page.
type Summary struct {
	Clients        int
	ActiveProjects int
	MonthlyRevenue decimal.Decimal
}

// Aggregate sums the figures of every record. now fixes the current month
// and the location dates are compared in.
func Aggregate(records []domain.Record, now time.Time) Summary {
	s := Summary{Clients: len(records), MonthlyRevenue: decimal.Zero}
	for _, r := range records {
		f := ForRecord(r, now)
		s.ActiveProjects += f.ActiveProjects
		s.MonthlyRevenue = s.MonthlyRevenue.Add(f.MonthlyRevenue)
	}
	return s
}

// ForRecord computes the figures of a single client-like record. Records
// carrying a projects array are scanned project by project, and revenue is
// summed over the active ones only. Records without one fall back to the
// scalar activeProjects and revenueThisMonth or monthlyRevenue fields.
func ForRecord(r domain.Record, now time.Time) Figures {
	f := Figures{MonthlyRevenue: decimal.Zero}

	projects, ok := projectList(r)
	if !ok {
		if n, ok := number(r, "activeProjects"); ok {
			f.ActiveProjects = int(n.IntPart())
		}
		if rev, ok := firstNumber(r, "revenueThisMonth", "monthlyRevenue"); ok {
			f.MonthlyRevenue = rev
		}
		return f
	}

	for _, p := range projects {
		if !isActive(p) {
			continue
		}
		f.ActiveProjects++

		rev, ok := firstNumber(p, revenueFields...)
		if !ok {
			continue
		}
		when, ok := firstDate(p, now.Location(), dateFields...)
		if !ok || !sameMonth(when, now) {
			continue
		}
		f.MonthlyRevenue = f.MonthlyRevenue.Add(rev)
	}
	return f
}

func projectList(r domain.Record) ([]domain.Record, bool) {
	raw, ok := r.Lookup("projects")
	if !ok {
		return nil, false
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]domain.Record, 0, len(items))
	for _, it := range items {
		switch p := it.(type) {
		case map[string]any:
			out = append(out, domain.Record(p))
		case domain.Record:
			out = append(out, p)
		}
	}
	return out, true
}

// isActive checks status first, then a boolean isActive, and otherwise
// treats the project as active.
func isActive(p domain.Record) bool {
	if raw, ok := p.Lookup("status"); ok {
		s, isStr := raw.(string)
		return isStr && activeStatuses[strings.ToLower(strings.TrimSpace(s))]
	}
	if raw, ok := p.Lookup("isActive"); ok {
		if b, isBool := raw.(bool); isBool {
			return b
		}
	}
	return true
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
