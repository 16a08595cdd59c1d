package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/tradieone/internal/cache"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/normalize"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

var (
	// ErrNoMatch is returned by Resolve when nothing resembles the query.
	ErrNoMatch = errors.New("no matching record")
	// ErrAmbiguous is returned by Resolve when several records match equally well.
	ErrAmbiguous = errors.New("ambiguous reference")
)

// maxCandidates bounds the suggestions listed in an ambiguity error.
const maxCandidates = 5

type recordService struct {
	backend    RecordBackend
	cache      *cache.ListCache
	pageSize   int
	lookupSize int
	observer   UseCaseObserver
}

// NewRecordService serves list pages through lists, which is shared by
// every view so mutations invalidate what the others display.
func NewRecordService(backend RecordBackend, lists *cache.ListCache, pageSize, lookupSize int, observers ...UseCaseObserver) RecordService {
	if lists == nil {
		lists = cache.New()
	}
	if lookupSize <= 0 {
		lookupSize = 500
	}
	return &recordService{
		backend:    backend,
		cache:      lists,
		pageSize:   pageSize,
		lookupSize: lookupSize,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *recordService) loader(kind domain.Kind, opts domain.ListOptions) cache.Loader {
	return func(ctx context.Context) (domain.Page, error) {
		page, err := s.backend.List(ctx, kind, opts)
		if err != nil {
			return domain.Page{}, err
		}
		page.Items = normalize.Records(page.Items)
		return page, nil
	}
}

func (s *recordService) List(ctx context.Context, kind domain.Kind, opts domain.ListOptions) (page domain.Page, err error) {
	startedAt := time.Now()
	opts = opts.WithDefaults(s.pageSize)
	fields := map[string]any{"kind": string(kind), "page": opts.PageNumber, "keyword": opts.Keyword}
	defer func() {
		fields["count"] = len(page.Items)
		observe(ctx, s.observer, "records.list", startedAt, fields, &err)
	}()

	page, err = s.cache.Fetch(ctx, cache.KeyFor(kind, opts), s.loader(kind, opts))
	if err != nil {
		return domain.Page{}, fmt.Errorf("listing %s: %w", kind, err)
	}
	return page, nil
}

func (s *recordService) Cached(kind domain.Kind, opts domain.ListOptions) (domain.Page, bool) {
	return s.cache.Peek(cache.KeyFor(kind, opts.WithDefaults(s.pageSize)))
}

func (s *recordService) Lookup(ctx context.Context, kind domain.Kind) (domain.Page, error) {
	opts := domain.ListOptions{PageNumber: 1, PageSize: s.lookupSize}
	page, err := s.cache.Get(ctx, cache.KeyFor(kind, opts), s.loader(kind, opts))
	if err != nil {
		return domain.Page{}, fmt.Errorf("loading %s: %w", kind, err)
	}
	return page, nil
}

func (s *recordService) Get(ctx context.Context, kind domain.Kind, id string) (domain.Record, error) {
	rec, err := s.backend.Get(ctx, kind, id)
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", kind.Singular(), id, err)
	}
	return normalize.Record(rec), nil
}

func (s *recordService) Save(ctx context.Context, kind domain.Kind, id string, f form.Form) (rec domain.Record, err error) {
	startedAt := time.Now()
	op := "create"
	if id != "" {
		op = "update"
	}
	fields := map[string]any{"kind": string(kind), "op": op}
	defer func() { observe(ctx, s.observer, "records.save", startedAt, fields, &err) }()

	if fe := f.Validate(); len(fe) > 0 {
		return nil, fe
	}

	payload := f.Payload(id)
	if id == "" {
		rec, err = s.backend.Create(ctx, kind, payload)
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", kind.Singular(), err)
		}
	} else {
		if err = s.backend.Update(ctx, kind, id, payload); err != nil {
			return nil, fmt.Errorf("updating %s %s: %w", kind.Singular(), id, err)
		}
	}
	s.cache.Invalidate(kind)
	if rec != nil {
		rec = normalize.Record(rec)
	}
	return rec, nil
}

func (s *recordService) Delete(ctx context.Context, kind domain.Kind, id string) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "records.delete", startedAt, map[string]any{"kind": string(kind), "id": id}, &err)
	}()

	if err = s.backend.Delete(ctx, kind, id); err != nil {
		return fmt.Errorf("deleting %s %s: %w", kind.Singular(), id, err)
	}
	s.cache.Invalidate(kind)
	return nil
}

func (s *recordService) Resolve(ctx context.Context, kind domain.Kind, query string) (domain.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%s: empty reference: %w", kind.Singular(), ErrNoMatch)
	}
	page, err := s.Lookup(ctx, kind)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(page.Items))
	for i, rec := range page.Items {
		if rec.ID() == query {
			return rec, nil
		}
		names[i] = domain.DisplayName(kind, rec)
	}

	var exact []domain.Record
	for i, name := range names {
		if strings.EqualFold(name, query) {
			exact = append(exact, page.Items[i])
		}
	}
	switch len(exact) {
	case 1:
		return exact[0], nil
	case 0:
	default:
		return nil, ambiguous(kind, query, exact)
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	if len(ranks) == 0 {
		return nil, fmt.Errorf("%s %q: %w", kind.Singular(), query, ErrNoMatch)
	}
	if len(ranks) > 1 {
		sort.Sort(ranks)
		if len(ranks) > maxCandidates {
			ranks = ranks[:maxCandidates]
		}
		candidates := make([]domain.Record, len(ranks))
		for i, r := range ranks {
			candidates[i] = page.Items[r.OriginalIndex]
		}
		return nil, ambiguous(kind, query, candidates)
	}
	return page.Items[ranks[0].OriginalIndex], nil
}

func ambiguous(kind domain.Kind, query string, recs []domain.Record) error {
	labels := make([]string, 0, len(recs))
	for _, r := range recs {
		labels = append(labels, fmt.Sprintf("%s (#%s)", domain.DisplayName(kind, r), r.ID()))
	}
	return fmt.Errorf("%s %q matches %s: %w", kind.Singular(), query, strings.Join(labels, ", "), ErrAmbiguous)
}
