// internal/structuring/session_test.go
package structuring

import (
	"context"
	"testing"
	"time"

	"warroom-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	return func() time.Time { return testNow }
}

func newTestSession(opts ...SessionOption) *Session {
	base := []SessionOption{WithClock(fixedClock()), WithProcessingDelay(0)}
	return NewSession(NewPipeline(nil), append(base, opts...)...)
}

func TestSession_Lifecycle(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, StateClosed, s.State())

	s.Open("we discussed HB 5", models.SourceContext{Type: models.ContextGeneral})
	assert.Equal(t, StateOpen, s.State())
	assert.Nil(t, s.Result())

	result, err := s.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, StateReady, s.State())

	s.Close()
	assert.Equal(t, StateClosed, s.State())
	assert.Nil(t, s.Result())
}

func TestSession_RunBeforeOpen(t *testing.T) {
	s := newTestSession()
	_, err := s.Run(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestSession_RerunIsNoOp(t *testing.T) {
	s := newTestSession()
	s.Open("we discussed the schedule", models.SourceContext{Type: models.ContextGeneral})

	first, err := s.Run(context.Background())
	require.NoError(t, err)
	second, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second, "a second run on a ready session must not recompute")
}

func TestSession_ReopenClearsResult(t *testing.T) {
	s := newTestSession()
	s.Open("we discussed HB 5", models.SourceContext{Type: models.ContextGeneral})
	first, err := s.Run(context.Background())
	require.NoError(t, err)

	s.Open("deadline on SB 9", models.SourceContext{Type: models.ContextGeneral})
	assert.Nil(t, s.Result(), "re-opening clears the previous result")

	second, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, "SB9", second.Summary.Entities[0].ID)
}

func TestSession_StaleRunDiscarded(t *testing.T) {
	s := newTestSession(WithProcessingDelay(150 * time.Millisecond))
	s.Open("we discussed HB 5", models.SourceContext{Type: models.ContextGeneral})

	type runResult struct {
		res *models.StructuringResult
		err error
	}
	done := make(chan runResult, 1)
	go func() {
		res, err := s.Run(context.Background())
		done <- runResult{res, err}
	}()

	// Re-open with a new payload while the first run is still sleeping.
	time.Sleep(30 * time.Millisecond)
	s.Open("deadline on SB 9", models.SourceContext{Type: models.ContextGeneral})

	first := <-done
	assert.ErrorIs(t, first.err, ErrRunSuperseded)
	assert.Nil(t, s.Result(), "stale run must not populate the newer cycle")

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SB9", res.Summary.Entities[0].ID, "only the run for the current payload wins")
}

func TestSession_CloseWhileInFlight(t *testing.T) {
	s := newTestSession(WithProcessingDelay(100 * time.Millisecond))
	s.Open("we discussed HB 5", models.SourceContext{Type: models.ContextGeneral})

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Run(context.Background())
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	s.Close()

	assert.ErrorIs(t, <-errCh, ErrRunSuperseded)
	assert.Equal(t, StateClosed, s.State())
	assert.Nil(t, s.Result())
}

func TestSession_ContextCancellation(t *testing.T) {
	s := newTestSession(WithProcessingDelay(time.Second))
	s.Open("we discussed HB 5", models.SourceContext{Type: models.ContextGeneral})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := s.Run(ctx)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	assert.ErrorIs(t, <-errCh, context.Canceled)
	assert.False(t, s.IsProcessing(), "cancelled run must release the in-flight flag")

	// The session is still open; a fresh run completes normally.
	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, res)
}

func TestSession_StaleRunGeneration(t *testing.T) {
	// The generation check also guards against close followed by reopen.
	s := newTestSession(WithProcessingDelay(120 * time.Millisecond))
	s.Open("we discussed HB 5", models.SourceContext{Type: models.ContextGeneral})

	errCh := make(chan error, 1)
	go func() {
		_, err := s.Run(context.Background())
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	s.Close()
	s.Open("deadline on SB 9", models.SourceContext{Type: models.ContextGeneral})

	assert.ErrorIs(t, <-errCh, ErrRunSuperseded)

	res, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SB9", res.Summary.Entities[0].ID)
}
