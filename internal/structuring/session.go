// internal/structuring/session.go
package structuring

import (
	"context"
	"errors"
	"sync"
	"time"

	"warroom-workers/internal/models"
)

var (
	ErrSessionClosed = errors.New("SESSION_CLOSED")
	ErrRunInFlight   = errors.New("RUN_IN_FLIGHT")
	ErrRunSuperseded = errors.New("RUN_SUPERSEDED")
)

// SessionState is the externally visible lifecycle phase.
type SessionState string

const (
	StateClosed     SessionState = "closed"
	StateOpen       SessionState = "open"
	StateProcessing SessionState = "processing"
	StateReady      SessionState = "ready"
)

// Session owns the structuring lifecycle for one caller: open with a payload,
// run once, read the result, close. It is the only mutable state in the
// package. Each Open bumps a generation counter; a run carries the generation
// it started under and its result is discarded if the session was closed or
// re-opened in the meantime, so the last legitimate run always wins.
type Session struct {
	mu       sync.Mutex
	pipeline *Pipeline
	clock    func() time.Time
	delay    time.Duration

	open       bool
	generation uint64
	sourceText string
	sourceCtx  models.SourceContext
	processing bool
	result     *models.StructuringResult
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock injects the time source used to anchor due dates. Tests pass a
// fixed clock to get reproducible results.
func WithClock(clock func() time.Time) SessionOption {
	return func(s *Session) { s.clock = clock }
}

// WithProcessingDelay sets the artificial latency of the processing phase.
// Zero disables it.
func WithProcessingDelay(d time.Duration) SessionOption {
	return func(s *Session) { s.delay = d }
}

func NewSession(pipeline *Pipeline, opts ...SessionOption) *Session {
	s := &Session{
		pipeline: pipeline,
		clock:    time.Now,
		delay:    400 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open starts a new structuring cycle with the given payload. Any prior
// result is cleared, even when the session was already open.
func (s *Session) Open(text string, sctx models.SourceContext) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
	s.generation++
	s.sourceText = text
	s.sourceCtx = sctx
	s.result = nil
	s.processing = false
}

// Run executes the pipeline for the currently open payload. On a session that
// already holds a result it is a no-op and returns the existing result
// pointer. A run whose session was closed or re-opened while it slept returns
// ErrRunSuperseded and leaves the session untouched.
func (s *Session) Run(ctx context.Context) (*models.StructuringResult, error) {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.result != nil {
		res := s.result
		s.mu.Unlock()
		return res, nil
	}
	if s.processing {
		s.mu.Unlock()
		return nil, ErrRunInFlight
	}
	s.processing = true
	gen := s.generation
	text := s.sourceText
	sctx := s.sourceCtx
	now := s.clock()
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			s.mu.Lock()
			if s.open && s.generation == gen {
				s.processing = false
			}
			s.mu.Unlock()
			return nil, ctx.Err()
		}
	}

	res := s.pipeline.Run(text, sctx, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open || s.generation != gen {
		return nil, ErrRunSuperseded
	}
	s.result = &res
	s.processing = false
	return s.result, nil
}

// Close dismisses the session and clears its payload and result.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	s.sourceText = ""
	s.sourceCtx = models.SourceContext{}
	s.result = nil
	s.processing = false
}

// State reports the current lifecycle phase.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.open:
		return StateClosed
	case s.processing:
		return StateProcessing
	case s.result != nil:
		return StateReady
	default:
		return StateOpen
	}
}

// Result returns the current result, or nil before a run completes.
func (s *Session) Result() *models.StructuringResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// IsProcessing reports whether a run is in flight.
func (s *Session) IsProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}
