package shipping

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/rodrigocantu/tienda-backend/pkg/errors"
	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

type fakeQuoteService struct {
	mu      sync.Mutex
	results []*QuoteResult
	errs    []error
	block   chan struct{}
	calls   int
}

func (f *fakeQuoteService) Quote(_ context.Context, _ QuoteRequest) (*QuoteResult, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	block := f.block
	f.mu.Unlock()

	if call == 0 && block != nil {
		<-block
	}

	var err error
	if call < len(f.errs) {
		err = f.errs[call]
	}
	var result *QuoteResult
	if call < len(f.results) {
		result = f.results[call]
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *fakeQuoteService) ActiveRules(_ context.Context) ([]Rule, error) { return nil, nil }

func (f *fakeQuoteService) UpsertRule(_ context.Context, _ UpsertRuleInput) (*Rule, error) {
	return nil, nil
}

func quoteResultWith(ids ...string) *QuoteResult {
	result := &QuoteResult{}
	for _, id := range ids {
		result.Combinations = append(result.Combinations, Combination{
			ID:                id,
			CoversAllProducts: true,
		})
	}
	return result
}

func refreshArgs() ([]QuoteItemRef, types.Destination) {
	return []QuoteItemRef{{ProductID: uuid.New(), Qty: 1}},
		types.Destination{PostalCode: "64000"}
}

func TestSessionRefreshPublishesResult(t *testing.T) {
	t.Parallel()

	svc := &fakeQuoteService{results: []*QuoteResult{quoteResultWith("c1")}}
	session, err := NewSession(svc, testLogger())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	items, addr := refreshArgs()
	result, err := session.Refresh(context.Background(), items, addr)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if session.State() != SessionReady {
		t.Fatalf("expected ready state, got %s", session.State())
	}
	if session.Result() != result {
		t.Fatalf("published result must match the returned one")
	}
}

func TestSessionRefreshFailure(t *testing.T) {
	t.Parallel()

	svc := &fakeQuoteService{errs: []error{errors.New(errors.CodeDependency, "rules unavailable")}}
	session, _ := NewSession(svc, testLogger())

	items, addr := refreshArgs()
	if _, err := session.Refresh(context.Background(), items, addr); err == nil {
		t.Fatalf("expected refresh failure")
	}
	if session.State() != SessionFailed {
		t.Fatalf("expected failed state, got %s", session.State())
	}
	if session.FailureMessage() == "" {
		t.Fatalf("expected a customer-facing failure message")
	}
	if session.Result() != nil {
		t.Fatalf("failed session must expose no result")
	}
}

func TestSessionStaleRefreshIsDiscarded(t *testing.T) {
	t.Parallel()

	block := make(chan struct{})
	svc := &fakeQuoteService{
		block: block,
		results: []*QuoteResult{
			quoteResultWith("stale"),
			quoteResultWith("fresh"),
		},
	}
	session, _ := NewSession(svc, testLogger())

	items, addr := refreshArgs()

	staleErr := make(chan error, 1)
	go func() {
		_, err := session.Refresh(context.Background(), items, addr)
		staleErr <- err
	}()

	// Second refresh supersedes the in-flight one, then lets it finish.
	for {
		svc.mu.Lock()
		started := svc.calls > 0
		svc.mu.Unlock()
		if started {
			break
		}
	}
	if _, err := session.Refresh(context.Background(), items, addr); err != nil {
		t.Fatalf("fresh refresh: %v", err)
	}
	close(block)

	err := <-staleErr
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeStateConflict {
		t.Fatalf("stale refresh must report a state conflict, got %v", err)
	}

	result := session.Result()
	if result == nil || result.Combinations[0].ID != "fresh" {
		t.Fatalf("stale result must not overwrite the fresh one: %+v", result)
	}
}

func TestSessionSelectLifecycle(t *testing.T) {
	t.Parallel()

	svc := &fakeQuoteService{results: []*QuoteResult{
		quoteResultWith("c1", "c2"),
		quoteResultWith("c3"),
	}}
	session, _ := NewSession(svc, testLogger())

	// Selection before any refresh is rejected.
	if _, err := session.Select(context.Background(), "c1"); err == nil {
		t.Fatalf("idle session must reject selection")
	}

	items, addr := refreshArgs()
	if _, err := session.Refresh(context.Background(), items, addr); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if _, err := session.Select(context.Background(), "desconocida"); err == nil {
		t.Fatalf("unknown combination must be rejected")
	}

	combo, err := session.Select(context.Background(), "c2")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if combo.ID != "c2" {
		t.Fatalf("expected c2, got %s", combo.ID)
	}
	if selected, ok := session.Selected(); !ok || selected.ID != "c2" {
		t.Fatalf("selection not retained")
	}

	// Any cart or address change clears the previous selection.
	if _, err := session.Refresh(context.Background(), items, addr); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if _, ok := session.Selected(); ok {
		t.Fatalf("refresh must clear the selection")
	}
	if _, err := session.Select(context.Background(), "c2"); err == nil {
		t.Fatalf("selection from a previous result must be rejected")
	}
}
