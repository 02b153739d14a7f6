// Package event implements an event bus.
// for a great introduction to the event bus pattern in go, see:
// https://levelup.gitconnected.com/lets-write-a-simple-event-bus-in-go-79b9480d8997
package event

import (
	"context"
	"sync"

	golog "github.com/ipfs/go-log"
)

var log = golog.Logger("event")

// Topic is the set of all topics emitted by the bus. Use the topic type to
// distinguish event names. Event emitters should declare Topics as constants
// and document the expected data payload type
type Topic string

// Event is a topic & data payload
type Event struct {
	Topic
	Payload interface{}
}

// Publisher is an interface that can only publish an event
type Publisher interface {
	Publish(t Topic, data interface{})
}

// Bus is a central coordination point for event publication and subscription
// zero or more subscribers register topics to be notified of, a publisher
// writes a topic event to the bus, which broadcasts to all subscribers of that
// topic
type Bus interface {
	// Publish an event to the bus
	Publish(t Topic, data interface{})
	// Subscribe to one or more topics
	Subscribe(topics ...Topic) <-chan Event
	// Unsubscribe cleans up a channel that no longer need to receive events
	Unsubscribe(<-chan Event)
	// NumSubscribers returns the number of subscribers to the bus's events
	NumSubscribers() int
}

// NilBus replaces a nil value, it implements the bus interface, but does
// nothing
var NilBus = nilBus{}

type nilBus struct{}

var _ Bus = (*nilBus)(nil)

func (nilBus) Publish(t Topic, data interface{})      {}
func (nilBus) Subscribe(topics ...Topic) <-chan Event { return make(chan Event) }
func (nilBus) Unsubscribe(<-chan Event)               {}
func (nilBus) NumSubscribers() int                    { return 0 }

type dataChannels []chan Event

type bus struct {
	ctx context.Context

	lk   sync.RWMutex
	subs map[Topic]dataChannels
}

var _ Bus = (*bus)(nil)

// NewBus creates a new event bus. Event busses should be instantiated as a
// singleton. If the passed in context is cancelled, the bus stops delivering
// events
func NewBus(ctx context.Context) Bus {
	return &bus{
		ctx:  ctx,
		subs: map[Topic]dataChannels{},
	}
}

// Publish sends an event to the bus. Delivery happens on a separate goroutine,
// so a slow subscriber never blocks a publisher
func (b *bus) Publish(topic Topic, data interface{}) {
	if b.ctx.Err() != nil {
		log.Debugf("bus closed, dropping %s", topic)
		return
	}

	b.lk.RLock()
	defer b.lk.RUnlock()
	log.Debugf("Publish: %s", topic)

	chans, ok := b.subs[topic]
	if !ok {
		return
	}
	// copy so later subscription changes don't race with delivery
	channels := append(dataChannels{}, chans...)
	e := Event{Topic: topic, Payload: data}
	go func() {
		for _, ch := range channels {
			select {
			case ch <- e:
			case <-b.ctx.Done():
				return
			}
		}
	}()
}

// Subscribe requests events from the given topic, returning a channel of those events
func (b *bus) Subscribe(topics ...Topic) <-chan Event {
	b.lk.Lock()
	defer b.lk.Unlock()
	log.Debugf("Subscribe: %v", topics)

	ch := make(chan Event)
	for _, topic := range topics {
		b.subs[topic] = append(b.subs[topic], ch)
	}
	return ch
}

// Unsubscribe cleans up a channel that no longer need to receive events
func (b *bus) Unsubscribe(unsub <-chan Event) {
	b.lk.Lock()
	defer b.lk.Unlock()

	for topic, channels := range b.subs {
		replace := dataChannels{}
		for _, ch := range channels {
			if ch != unsub {
				replace = append(replace, ch)
			}
		}
		if len(replace) == 0 {
			delete(b.subs, topic)
		} else {
			b.subs[topic] = replace
		}
	}
}

// NumSubscribers returns the number of subscribers to the bus's events
func (b *bus) NumSubscribers() int {
	b.lk.RLock()
	defer b.lk.RUnlock()

	total := 0
	for _, channels := range b.subs {
		total += len(channels)
	}
	return total
}
