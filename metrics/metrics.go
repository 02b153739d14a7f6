// Package metrics exposes registry counters in prometheus format. Counters
// are driven by event bus subscriptions, the registration pipeline never
// touches them directly
package metrics

import (
	"context"
	"net/http"

	golog "github.com/ipfs/go-log"
	"github.com/irysname/irysname/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var log = golog.Logger("metrics")

// Collector holds irysname counters in a private prometheus registry
type Collector struct {
	reg *prometheus.Registry

	registrations *prometheus.CounterVec
	degraded      *prometheus.CounterVec
}

// NewCollector creates a collector with all counters registered
func NewCollector() *Collector {
	c := &Collector{
		reg: prometheus.NewRegistry(),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "irysname",
			Name:      "registrations_total",
			Help:      "Username registration attempts by outcome.",
		}, []string{"outcome"}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "irysname",
			Name:      "backend_degraded_total",
			Help:      "Queries that fell back to a policy default because the backend was unreachable.",
		}, []string{"op", "policy"}),
	}
	c.reg.MustRegister(c.registrations, c.degraded)
	return c
}

// Handler serves the collector's metrics
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Registry exposes the underlying prometheus registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.reg
}

// Subscribe counts registry events from bus until ctx is done
func (c *Collector) Subscribe(ctx context.Context, bus event.Bus) {
	events := bus.Subscribe(
		event.ETUsernameRegistered,
		event.ETRegistrationFailed,
		event.ETBackendDegraded,
	)
	go func() {
		defer bus.Unsubscribe(events)
		for {
			select {
			case e := <-events:
				c.handle(e)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *Collector) handle(e event.Event) {
	switch e.Topic {
	case event.ETUsernameRegistered:
		c.registrations.WithLabelValues("registered").Inc()
	case event.ETRegistrationFailed:
		if f, ok := e.Payload.(event.RegistrationFailure); ok {
			c.registrations.WithLabelValues(f.Kind).Inc()
		}
	case event.ETBackendDegraded:
		if d, ok := e.Payload.(event.BackendDegraded); ok {
			policy := "fail_closed"
			if d.FailOpen {
				policy = "fail_open"
			}
			c.degraded.WithLabelValues(d.Op, policy).Inc()
		}
	default:
		log.Debugf("unexpected event topic: %s", e.Topic)
	}
}
