package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shenikar/zone_proximity/internal/config"
	"github.com/shenikar/zone_proximity/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(cfg *config.Config) (*WebhookWorker, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)
	logger.SetLevel(logrus.DebugLevel)

	w := NewWebhookWorker(nil, logger, cfg)
	w.sleep = func(context.Context, time.Duration) {}
	return w, buf
}

func testEvent(t *testing.T) (WebhookEvent, string) {
	t.Helper()
	km := 1.2
	event := NewWebhookEvent(models.ProximityResult{
		Zone:          "home",
		DistanceKm:    &km,
		Direction:     models.DirectionTowards,
		NearestSource: "Alice",
	})
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return event, string(payload)
}

func TestDeliver_SignsAndSucceeds(t *testing.T) {
	var gotSignature, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSignature = r.Header.Get(SignatureHeader)
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	worker, _ := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookSecret:     "secret",
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
	})
	event, payload := testEvent(t)

	ok := worker.Deliver(context.Background(), event, payload)

	assert.True(t, ok)
	assert.Equal(t, payload, gotBody)
	assert.Equal(t, generateHMACSHA256(payload, "secret"), gotSignature)
}

func TestDeliver_RetriesUntilSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	worker, _ := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 3,
	})
	event, payload := testEvent(t)

	assert.True(t, worker.Deliver(context.Background(), event, payload))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDeliver_GivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	worker, buf := newTestWorker(&config.Config{
		WebhookURL:        srv.URL,
		WebhookTimeout:    time.Second,
		WebhookMaxRetries: 2,
	})
	event, payload := testEvent(t)

	assert.False(t, worker.Deliver(context.Background(), event, payload))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Contains(t, buf.String(), "after 2 retries")
}

func TestDeliver_NoURLSkips(t *testing.T) {
	worker, buf := newTestWorker(&config.Config{WebhookMaxRetries: 3})
	event, payload := testEvent(t)

	assert.False(t, worker.Deliver(context.Background(), event, payload))
	assert.Contains(t, buf.String(), "Webhook URL is not configured")
}

func TestNewWebhookEvent(t *testing.T) {
	event := NewWebhookEvent(models.InitialResult("home"))

	assert.Equal(t, "proximity.home", event.EntityID)
	assert.NotEqual(t, [16]byte{}, [16]byte(event.EventID))
	assert.False(t, event.Timestamp.IsZero())
}

func TestGenerateHMACSHA256(t *testing.T) {
	a := generateHMACSHA256("payload", "key")
	b := generateHMACSHA256("payload", "key")
	c := generateHMACSHA256("payload", "other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
