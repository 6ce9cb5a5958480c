package shipping

import (
	"context"
	"sync"

	"github.com/rodrigocantu/tienda-backend/pkg/errors"
	"github.com/rodrigocantu/tienda-backend/pkg/logger"
	"github.com/rodrigocantu/tienda-backend/pkg/types"
)

// SessionState tracks where a checkout's shipping step currently is.
type SessionState string

const (
	SessionIdle    SessionState = "idle"
	SessionLoading SessionState = "loading"
	SessionReady   SessionState = "ready"
	SessionFailed  SessionState = "failed"
)

// Session holds the shipping step of one checkout. Every cart or address
// change triggers a Refresh; only the newest refresh may publish its result,
// older in-flight computations are discarded when they land.
type Session struct {
	mu   sync.Mutex
	svc  Service
	logg *logger.Logger

	state      SessionState
	generation uint64
	result     *QuoteResult
	selectedID string
	failure    string
}

// NewSession returns an idle shipping session for one checkout.
func NewSession(svc Service, logg *logger.Logger) (*Session, error) {
	if svc == nil {
		return nil, errors.New(errors.CodeConfiguration, "shipping service required")
	}
	if logg == nil {
		return nil, errors.New(errors.CodeConfiguration, "logger required")
	}
	return &Session{svc: svc, logg: logg, state: SessionIdle}, nil
}

// Refresh recomputes shipping options for the given cart and destination.
// It clears any previous selection immediately, then publishes the outcome
// only if no newer refresh started in the meantime.
func (s *Session) Refresh(ctx context.Context, items []QuoteItemRef, dest types.Destination) (*QuoteResult, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = SessionLoading
	s.selectedID = ""
	s.result = nil
	s.failure = ""
	s.mu.Unlock()

	result, err := s.svc.Quote(ctx, QuoteRequest{Destination: dest, Items: items})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logg.Debug(ctx, "discarding stale shipping computation")
		return nil, errors.New(errors.CodeStateConflict, "shipping computation superseded by a newer refresh")
	}
	if err != nil {
		s.state = SessionFailed
		s.failure = failureMessage(err)
		return nil, err
	}
	s.state = SessionReady
	s.result = result
	return result, nil
}

// Select marks one computed combination as the customer's choice. It refuses
// anything but a combination from the current Ready result.
func (s *Session) Select(ctx context.Context, combinationID string) (Combination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != SessionReady || s.result == nil {
		s.logg.Warn(ctx, "rejecting shipping selection outside of ready state")
		return Combination{}, errors.New(errors.CodeStateConflict, "shipping options are not ready")
	}
	combo, ok := s.result.FindCombination(combinationID)
	if !ok {
		s.logg.Warn(ctx, "rejecting shipping selection not present in current options")
		return Combination{}, errors.New(errors.CodeStateConflict, "selected combination is no longer offered").
			WithDetails(map[string]string{"combination_id": combinationID})
	}
	s.selectedID = combinationID
	return combo, nil
}

// State reports the session's current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the last published quote, or nil outside of Ready.
func (s *Session) Result() *QuoteResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionReady {
		return nil
	}
	return s.result
}

// Selected returns the currently chosen combination, if any.
func (s *Session) Selected() (Combination, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SessionReady || s.result == nil || s.selectedID == "" {
		return Combination{}, false
	}
	return s.result.FindCombination(s.selectedID)
}

// FailureMessage returns the customer-facing message of the last failure.
func (s *Session) FailureMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

func failureMessage(err error) string {
	if typed := errors.As(err); typed != nil {
		return typed.Message()
	}
	return "shipping options could not be computed"
}
