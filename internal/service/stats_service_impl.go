package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/stats"
	"golang.org/x/sync/errgroup"
)

// Dashboard is what the stats cards show.
type Dashboard struct {
	stats.Summary
	// Counts holds the lookup total per kind.
	Counts map[domain.Kind]int
}

type statsService struct {
	records RecordService
	now     func() time.Time
}

func NewStatsService(records RecordService) StatsService {
	return &statsService{records: records, now: time.Now}
}

// Dashboard loads every kind's lookup page concurrently. The summary is
// aggregated over the client records.
func (s *statsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	g, gctx := errgroup.WithContext(ctx)

	var (
		mu      sync.Mutex
		clients []domain.Record
		counts  = make(map[domain.Kind]int, len(domain.Kinds()))
	)
	for _, kind := range domain.Kinds() {
		g.Go(func() error {
			page, err := s.records.Lookup(gctx, kind)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			counts[kind] = page.Total()
			if kind == domain.KindClients {
				clients = page.Items
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := stats.Aggregate(clients, s.now())
	summary.Clients = counts[domain.KindClients]
	return &Dashboard{Summary: summary, Counts: counts}, nil
}
