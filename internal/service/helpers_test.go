package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/cache"
	"github.com/alexanderramin/tradieone/internal/testutil"
)

// recordingObserver collects use-case events for assertions.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}

func newRecordFixture(t *testing.T, observers ...UseCaseObserver) (*testutil.FakeBackend, RecordService) {
	t.Helper()
	fb := testutil.NewFakeBackend(t)
	client := api.NewClient(fb.URL(), api.StaticToken("test-token"))
	return fb, NewRecordService(client, cache.New(), 20, 500, observers...)
}
