package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/tradieone/internal/domain"
)

// Column is one list column: a header and how to read the cell from a
// record. Cells are plain text; styling is applied by FormatRecordList.
type Column struct {
	Header string
	Value  func(domain.Record) string
	Style  func(string) string
}

func field(key string) func(domain.Record) string {
	return func(r domain.Record) string { return r.String(key) }
}

func nameOf(kind domain.Kind) func(domain.Record) string {
	return func(r domain.Record) string { return domain.DisplayName(kind, r) }
}

func dateField(key string) func(domain.Record) string {
	return func(r domain.Record) string {
		if r.String(key) == "" {
			return ""
		}
		return HumanDate(r.String(key))
	}
}

var idColumn = Column{Header: "ID", Value: domain.Record.ID}

// Columns lists the list-page columns of kind.
func Columns(kind domain.Kind) []Column {
	switch kind {
	case domain.KindClients:
		return []Column{
			idColumn,
			{Header: "NAME", Value: nameOf(kind), Style: Bold},
			{Header: "CONTACT", Value: field("contactPerson")},
			{Header: "EMAIL", Value: field("email")},
			{Header: "PHONE", Value: field("phone")},
			{Header: "CITY", Value: field("city")},
			{Header: "STATE", Value: field("state")},
		}
	case domain.KindJobs:
		return []Column{
			idColumn,
			{Header: "TITLE", Value: nameOf(kind), Style: Bold},
			{Header: "STATUS", Value: field("status"), Style: StatusPill},
			{Header: "PRIORITY", Value: field("priority"), Style: PriorityPill},
			{Header: "START", Value: dateField("startDate")},
			{Header: "LOCATION", Value: field("locationName")},
			{Header: "CITY", Value: field("city")},
		}
	case domain.KindEmployees:
		return []Column{
			idColumn,
			{Header: "NAME", Value: nameOf(kind), Style: Bold},
			{Header: "ROLE", Value: field("role")},
			{Header: "EMAIL", Value: field("email")},
			{Header: "PHONE", Value: field("phone")},
			{Header: "STATUS", Value: field("status"), Style: StatusPill},
		}
	case domain.KindContractors:
		return []Column{
			idColumn,
			{Header: "NAME", Value: nameOf(kind), Style: Bold},
			{Header: "TRADE", Value: field("trade")},
			{Header: "CONTACT", Value: field("contactPerson")},
			{Header: "PHONE", Value: field("phone")},
			{Header: "STATUS", Value: field("status"), Style: StatusPill},
		}
	case domain.KindProjects:
		return []Column{
			idColumn,
			{Header: "NAME", Value: nameOf(kind), Style: Bold},
			{Header: "CLIENT", Value: func(r domain.Record) string {
				return domain.CoalesceField(r, "client", "clientName")
			}},
			{Header: "STATUS", Value: field("status"), Style: StatusPill},
			{Header: "START", Value: dateField("startDate")},
			{Header: "END", Value: dateField("endDate")},
		}
	}
	return []Column{idColumn, {Header: "NAME", Value: nameOf(kind)}}
}

// Headers returns the column headers of kind.
func Headers(kind domain.Kind) []string {
	cols := Columns(kind)
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header
	}
	return out
}

// Row returns the plain cells of r in column order.
func Row(kind domain.Kind, r domain.Record) []string {
	cols := Columns(kind)
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Value(r)
	}
	return out
}

// FormatRecordList renders one list page inside a box titled with the kind.
func FormatRecordList(kind domain.Kind, page domain.Page, opts domain.ListOptions) string {
	if len(page.Items) == 0 {
		msg := "No " + string(kind) + " found."
		if opts.Keyword != "" {
			msg = fmt.Sprintf("No %s match %q.", kind, opts.Keyword)
		}
		return RenderBox(kind.Label(), Dim(msg))
	}

	cols := Columns(kind)
	rows := make([][]string, len(page.Items))
	for i, rec := range page.Items {
		row := make([]string, len(cols))
		for j, c := range cols {
			v := Truncate(c.Value(rec), MaxCellWidth)
			switch {
			case v == "":
				row[j] = Dim("--")
			case c.Style != nil:
				row[j] = c.Style(v)
			default:
				row[j] = v
			}
		}
		rows[i] = row
	}

	footer := Dim(fmt.Sprintf("page %d · %d of %d", opts.PageNumber, len(page.Items), page.Total()))
	return RenderBox(kind.Label(), RenderTable(Headers(kind), rows)+"\n"+footer)
}

// detailOrder lists the fields shown first on a record card.
var detailOrder = map[domain.Kind][]string{
	domain.KindClients:     {"clientName", "contactPerson", "email", "phone", "addressLine1", "addressLine2", "city", "state", "postcode", "country"},
	domain.KindEmployees:   {"firstName", "lastName", "email", "phone", "role", "status", "addressLine1", "city", "state", "postcode"},
	domain.KindContractors: {"contractorName", "contactPerson", "email", "phone", "trade", "status", "addressLine1", "city", "state", "postcode"},
	domain.KindJobs: {"title", "description", "status", "priority", "clientId", "projectId", "startDate", "endDate", "startTime", "finishTime",
		"locationName", "addressLine1", "addressLine2", "city", "state", "postcode", "country", "assignedEmployeeIds", "assignedContractorIds"},
	domain.KindProjects: {"name", "client", "clientId", "description", "status", "startDate", "endDate", "location", "teamSize", "jobsCount", "budget", "revenue"},
}

// aliasKeys are raw fields already shown under their canonical name.
var aliasKeys = map[string]bool{"id": true, "Id": true, "ID": true, "address1": true, "address2": true, "stateName": true}

// FormatRecordDetail renders every populated field of r, known fields first
// and the rest alphabetically.
func FormatRecordDetail(kind domain.Kind, r domain.Record) string {
	seen := make(map[string]bool)
	var keys []string
	for _, k := range detailOrder[kind] {
		seen[k] = true
		if DetailValue(r[k]) != "" {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k, v := range r {
		if !seen[k] && !aliasKeys[k] && DetailValue(v) != "" {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}
	var b strings.Builder
	for _, k := range keys {
		label := StyleDim.Render(fmt.Sprintf("%-*s", width, k))
		b.WriteString(label + "  " + styleDetail(k, DetailValue(r[k])) + "\n")
	}
	title := fmt.Sprintf("%s #%s", kind.Singular(), r.ID())
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

func styleDetail(key, v string) string {
	switch key {
	case "status":
		return StatusPill(v)
	case "priority":
		return PriorityPill(v)
	}
	return v
}

// DetailValue renders scalars as text and arrays as a comma separated
// list. Objects render as a field count.
func DetailValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := DetailValue(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if len(t) == 0 {
			return ""
		}
		return fmt.Sprintf("{%d fields}", len(t))
	}
	return domain.ScalarString(v)
}

// FormatProfile renders the signed-in user's details.
func FormatProfile(r domain.Record) string {
	labels := []struct{ label, key string }{
		{"Name", ""},
		{"Email", "email"},
		{"Phone", "phone"},
		{"Company", "company"},
	}
	var b strings.Builder
	for _, l := range labels {
		v := r.String(l.key)
		switch l.key {
		case "":
			v = strings.TrimSpace(r.String("firstName") + " " + r.String("lastName"))
		case "company":
			v = domain.CoalesceField(r, "company", "companyName")
		}
		if v == "" {
			v = Dim("--")
		}
		b.WriteString(StyleDim.Render(fmt.Sprintf("%-8s", l.label)) + "  " + v + "\n")
	}
	return RenderBox("Profile", strings.TrimRight(b.String(), "\n"))
}
