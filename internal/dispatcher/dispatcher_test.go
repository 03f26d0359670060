package dispatcher

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/shenikar/zone_proximity/internal/proximity"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu       sync.Mutex
	seen     []string
	inFlight int
	maxSeen  int
	fail     map[string]error
	handled  chan struct{}
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		fail:    map[string]error{},
		handled: make(chan struct{}, 100),
	}
}

func (h *recordingHandler) HandleUpdate(_ context.Context, event models.UpdateEvent) (*proximity.Evaluation, error) {
	h.mu.Lock()
	h.inFlight++
	if h.inFlight > h.maxSeen {
		h.maxSeen = h.inFlight
	}
	h.mu.Unlock()

	time.Sleep(time.Millisecond)

	h.mu.Lock()
	h.inFlight--
	h.seen = append(h.seen, event.SourceID)
	err := h.fail[event.SourceID]
	h.mu.Unlock()

	h.handled <- struct{}{}
	if err != nil {
		return nil, err
	}
	return &proximity.Evaluation{Outcome: proximity.OutcomeUpdated}, nil
}

func (h *recordingHandler) RemoveSource(_ context.Context, id string) error {
	h.mu.Lock()
	h.seen = append(h.seen, "remove:"+id)
	err := h.fail["remove:"+id]
	h.mu.Unlock()

	h.handled <- struct{}{}
	return err
}

func (h *recordingHandler) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-h.handled:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i+1)
		}
	}
}

func newTestLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	return logger, buf
}

func TestDispatcher_ProcessesInOrderOneAtATime(t *testing.T) {
	handler := newRecordingHandler()
	logger, _ := newTestLogger()
	d := New(handler, logger, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	ids := []string{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		require.NoError(t, d.Submit(ctx, models.UpdateEvent{SourceID: id}))
	}
	handler.waitFor(t, len(ids))

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Equal(t, ids, handler.seen)
	assert.Equal(t, 1, handler.maxSeen)
}

func TestDispatcher_HandlerErrorDoesNotStopLoop(t *testing.T) {
	handler := newRecordingHandler()
	handler.fail["bad"] = errors.New("boom")
	logger, buf := newTestLogger()
	d := New(handler, logger, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	require.NoError(t, d.Submit(ctx, models.UpdateEvent{SourceID: "bad"}))
	require.NoError(t, d.Submit(ctx, models.UpdateEvent{SourceID: "good"}))
	handler.waitFor(t, 2)

	handler.mu.Lock()
	assert.Equal(t, []string{"bad", "good"}, handler.seen)
	handler.mu.Unlock()
	cancel()
	assert.Eventually(t, func() bool {
		return errors.Is(d.Submit(context.Background(), models.UpdateEvent{}), ErrStopped)
	}, time.Second, 5*time.Millisecond)
	assert.Contains(t, buf.String(), "Failed to handle update event")
}

func TestDispatcher_SubmitAfterStop(t *testing.T) {
	logger, _ := newTestLogger()
	d := New(newRecordingHandler(), logger, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Run(ctx)

	err := d.Submit(context.Background(), models.UpdateEvent{SourceID: "a"})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestDispatcher_SubmitBlocksUntilContextDone(t *testing.T) {
	logger, _ := newTestLogger()
	d := New(newRecordingHandler(), logger, 1)

	require.NoError(t, d.Submit(context.Background(), models.UpdateEvent{SourceID: "a"}))
	assert.Equal(t, 1, d.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Submit(ctx, models.UpdateEvent{SourceID: "b"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDispatcher_RemovalRunsAfterQueuedUpdate(t *testing.T) {
	handler := newRecordingHandler()
	logger, _ := newTestLogger()
	d := New(handler, logger, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, d.Submit(ctx, models.UpdateEvent{SourceID: "alice"}))

	removed := make(chan error, 1)
	go func() { removed <- d.Remove(ctx, "alice") }()
	require.Eventually(t, func() bool { return d.Pending() == 2 }, time.Second, time.Millisecond)

	go d.Run(ctx)

	select {
	case err := <-removed:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for removal")
	}
	handler.waitFor(t, 2)

	handler.mu.Lock()
	defer handler.mu.Unlock()
	assert.Equal(t, []string{"alice", "remove:alice"}, handler.seen)
}

func TestDispatcher_RemoveReturnsHandlerError(t *testing.T) {
	handler := newRecordingHandler()
	handler.fail["remove:alice"] = errors.New("redis down")
	logger, buf := newTestLogger()
	d := New(handler, logger, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.Run(ctx)

	err := d.Remove(ctx, "alice")

	assert.EqualError(t, err, "redis down")
	assert.Contains(t, buf.String(), "Failed to remove source")
}

func TestDispatcher_RemoveAfterStop(t *testing.T) {
	logger, _ := newTestLogger()
	d := New(newRecordingHandler(), logger, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Run(ctx)

	assert.ErrorIs(t, d.Remove(context.Background(), "alice"), ErrStopped)
}

func TestDispatcher_StopLogsPending(t *testing.T) {
	logger, buf := newTestLogger()
	d := New(newRecordingHandler(), logger, 2)

	require.NoError(t, d.Submit(context.Background(), models.UpdateEvent{SourceID: "a"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Run(ctx)

	assert.Contains(t, buf.String(), "Stopping update dispatcher.")
	assert.Contains(t, buf.String(), "pending=")
}
