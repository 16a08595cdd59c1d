package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClients(fb interface {
	Seed(domain.Kind, ...domain.Record)
}) {
	fb.Seed(domain.KindClients,
		domain.Record{"id": "1", "clientName": "Acme Plumbing", "address1": "1 Main St", "stateName": "victoria"},
		domain.Record{"id": "2", "clientName": "Acme Electrical"},
		domain.Record{"id": "3", "clientName": "Bob's Roofing"},
	)
}

func TestRecordService_ListNormalizes(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)
	ctx := context.Background()

	page, err := svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, 3, page.Total())
	assert.Equal(t, "1 Main St", page.Items[0].String("addressLine1"))
	assert.Equal(t, "Victoria", page.Items[0].String("state"))
}

func TestRecordService_ListAlwaysRefetches(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)
	ctx := context.Background()
	res, _ := api.ResourceFor(domain.KindClients)

	_, err := svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)
	_, err = svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, fb.Count(http.MethodGet, res.ListPath()))

	cached, ok := svc.Cached(domain.KindClients, domain.ListOptions{})
	require.True(t, ok)
	assert.Len(t, cached.Items, 3)

	_, ok = svc.Cached(domain.KindClients, domain.ListOptions{Keyword: "acme"})
	assert.False(t, ok)
}

func TestRecordService_ListErrorKeepsCache(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)
	ctx := context.Background()
	res, _ := api.ResourceFor(domain.KindClients)

	_, err := svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)

	fb.Fail(http.MethodGet, res.ListPath(), http.StatusServiceUnavailable, "")
	_, err = svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnavailable)

	cached, ok := svc.Cached(domain.KindClients, domain.ListOptions{})
	require.True(t, ok)
	assert.Len(t, cached.Items, 3)
}

func TestRecordService_SaveInvalidSkipsBackend(t *testing.T) {
	fb, svc := newRecordFixture(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, domain.KindClients, "", &form.Client{ClientName: "  ", Email: "nope"})
	require.Error(t, err)

	var fe form.FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Client name is required", fe["clientName"])
	assert.Equal(t, "Invalid email address", fe["email"])
	assert.Empty(t, fb.Requests())
}

func TestRecordService_CreateInvalidatesList(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)
	ctx := context.Background()

	_, err := svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)

	rec, err := svc.Save(ctx, domain.KindClients, "", &form.Client{ClientName: "New Co", State: "nsw"})
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "101", rec.ID())

	_, ok := svc.Cached(domain.KindClients, domain.ListOptions{})
	assert.False(t, ok, "mutation must drop cached pages")

	stored := fb.Records(domain.KindClients)
	require.Len(t, stored, 4)
	assert.Equal(t, "New South Wales", stored[3].String("state"))

	page, err := svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 4)
}

func TestRecordService_UpdateUsesResourcePath(t *testing.T) {
	fb, svc := newRecordFixture(t)
	fb.Seed(domain.KindEmployees, domain.Record{"id": "7", "firstName": "Sam", "lastName": "Lee", "role": "Sparky", "status": "Active"})
	ctx := context.Background()

	f := form.NewEmployee()
	f.FirstName, f.LastName, f.Role = "Sam", "Li", "Sparky"
	f.Email, f.Phone = "sam@example.com", "0400 111 222"
	rec, err := svc.Save(ctx, domain.KindEmployees, "7", f)
	require.NoError(t, err)
	assert.Nil(t, rec)

	res, _ := api.ResourceFor(domain.KindEmployees)
	assert.Equal(t, 1, fb.Count(http.MethodPut, res.Base))
	assert.Equal(t, "Li", fb.Records(domain.KindEmployees)[0].String("lastName"))
}

func TestRecordService_FailedDeleteKeepsCache(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)
	ctx := context.Background()

	_, err := svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)

	err = svc.Delete(ctx, domain.KindClients, "99")
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)

	_, ok := svc.Cached(domain.KindClients, domain.ListOptions{})
	assert.True(t, ok)
	assert.Len(t, fb.Records(domain.KindClients), 3)

	require.NoError(t, svc.Delete(ctx, domain.KindClients, "2"))
	_, ok = svc.Cached(domain.KindClients, domain.ListOptions{})
	assert.False(t, ok)
	assert.Len(t, fb.Records(domain.KindClients), 2)
}

func TestRecordService_LookupIsCached(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)
	ctx := context.Background()
	res, _ := api.ResourceFor(domain.KindClients)

	for range 3 {
		page, err := svc.Lookup(ctx, domain.KindClients)
		require.NoError(t, err)
		assert.Len(t, page.Items, 3)
	}
	assert.Equal(t, 1, fb.Count(http.MethodGet, res.ListPath()))
}

func TestRecordService_Resolve(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr error
	}{
		{name: "by id", query: "2", wantID: "2"},
		{name: "exact name any case", query: "acme plumbing", wantID: "1"},
		{name: "single fuzzy hit", query: "roof", wantID: "3"},
		{name: "several fuzzy hits", query: "acme", wantErr: ErrAmbiguous},
		{name: "nothing close", query: "zzz", wantErr: ErrNoMatch},
		{name: "blank", query: "  ", wantErr: ErrNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := svc.Resolve(ctx, domain.KindClients, tt.query)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, rec.ID())
		})
	}
}

func TestRecordService_ResolveAmbiguityListsCandidates(t *testing.T) {
	fb, svc := newRecordFixture(t)
	seedClients(fb)

	_, err := svc.Resolve(context.Background(), domain.KindClients, "acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Acme Plumbing (#1)")
	assert.Contains(t, err.Error(), "Acme Electrical (#2)")
}

func TestRecordService_ObservesUseCases(t *testing.T) {
	obs := &recordingObserver{}
	fb, svc := newRecordFixture(t, obs)
	seedClients(fb)
	ctx := context.Background()

	_, err := svc.List(ctx, domain.KindClients, domain.ListOptions{})
	require.NoError(t, err)
	_ = svc.Delete(ctx, domain.KindClients, "99")

	assert.Equal(t, []string{"records.list", "records.delete"}, obs.names())
	obs.mu.Lock()
	defer obs.mu.Unlock()
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 3, obs.events[0].Fields["count"])
	assert.False(t, obs.events[1].Success)
	assert.Error(t, obs.events[1].Err)
}
