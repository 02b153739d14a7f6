package metrics

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/irysname/irysname/event"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorHandle(t *testing.T) {
	c := NewCollector()
	c.handle(event.Event{Topic: event.ETUsernameRegistered})
	c.handle(event.Event{Topic: event.ETRegistrationFailed, Payload: event.RegistrationFailure{Username: "alice", Kind: "already_taken"}})
	c.handle(event.Event{Topic: event.ETRegistrationFailed, Payload: event.RegistrationFailure{Username: "alice", Kind: "already_taken"}})
	c.handle(event.Event{Topic: event.ETBackendDegraded, Payload: event.BackendDegraded{Op: "availability", FailOpen: true, Err: errors.New("down")}})
	c.handle(event.Event{Topic: event.ETBackendDegraded, Payload: event.BackendDegraded{Op: "resolve", Err: errors.New("down")}})

	if got := testutil.ToFloat64(c.registrations.WithLabelValues("registered")); got != 1 {
		t.Errorf("registered count mismatch. expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(c.registrations.WithLabelValues("already_taken")); got != 2 {
		t.Errorf("already_taken count mismatch. expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(c.degraded.WithLabelValues("availability", "fail_open")); got != 1 {
		t.Errorf("fail_open count mismatch. expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(c.degraded.WithLabelValues("resolve", "fail_closed")); got != 1 {
		t.Errorf("fail_closed count mismatch. expected 1, got %v", got)
	}
}

func TestCollectorSubscribe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := event.NewBus(ctx)
	c := NewCollector()
	c.Subscribe(ctx, bus)

	// subscription registration happens synchronously
	if bus.NumSubscribers() != 3 {
		t.Fatalf("expected 3 topic subscriptions, got %d", bus.NumSubscribers())
	}

	bus.Publish(event.ETUsernameRegistered, nil)

	deadline := time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(c.registrations.WithLabelValues("registered")) != 1 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for registration count")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCollectorHandler(t *testing.T) {
	c := NewCollector()
	c.handle(event.Event{Topic: event.ETUsernameRegistered})

	w := httptest.NewRecorder()
	c.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if w.Code != 200 {
		t.Fatalf("status mismatch. expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `irysname_registrations_total{outcome="registered"} 1`) {
		t.Errorf("missing registration counter in output:\n%s", w.Body.String())
	}
}
