// Package bus connects the engine loop to its collaborators: a fan-in
// command queue with any number of producers, and a fan-out event
// broadcast with any number of subscribers.
package bus

import (
	"sync"

	"pkt.systems/pslog"

	"pkt.systems/phosphor/internal/terminal"
)

// DefaultSubscriberBuffer is the per-subscriber event buffer used when
// Subscribe is called with a non-positive size.
const DefaultSubscriberBuffer = 256

// commandBacklog bounds the ingress queue. Producers block once it
// fills; commands are never dropped.
const commandBacklog = 64

// Bus carries Commands into the engine and Events out of it. Commands
// apply backpressure to producers; events are broadcast with bounded
// per-subscriber buffers where a slow subscriber loses its oldest
// pending events, never the newest.
type Bus struct {
	logger pslog.Logger
	cmds   chan terminal.Command
	done   chan struct{}

	mu       sync.Mutex
	subs     map[*Subscription]struct{}
	shutdown bool
	closing  sync.Once
}

// Subscription is one subscriber's view of the event stream, from its
// subscription point forward.
type Subscription struct {
	bus     *Bus
	ch      chan terminal.Event
	dropped uint64
}

// New constructs a Bus. A nil logger falls back to the environment
// logger.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.LoggerFromEnv()
	}
	return &Bus{
		logger: logger.With("component", "bus"),
		cmds:   make(chan terminal.Command, commandBacklog),
		done:   make(chan struct{}),
		subs:   make(map[*Subscription]struct{}),
	}
}

// Send queues a command for the engine loop, blocking when the queue
// is full. It reports false once intake has stopped.
func (b *Bus) Send(cmd terminal.Command) bool {
	select {
	case <-b.done:
		return false
	default:
	}
	select {
	case b.cmds <- cmd:
		return true
	case <-b.done:
		return false
	}
}

// Commands exposes the ingress queue to the engine loop.
func (b *Bus) Commands() <-chan terminal.Command {
	return b.cmds
}

// Subscribe registers a new event subscriber with the given buffer
// size. The subscriber sees only events published after this call.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultSubscriberBuffer
	}
	s := &Subscription{
		bus: b,
		ch:  make(chan terminal.Event, buffer),
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.shutdown {
		close(s.ch)
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Events is the subscriber's receive channel. It is closed when the
// bus shuts down or the subscription is cancelled.
func (s *Subscription) Events() <-chan terminal.Event {
	return s.ch
}

// Dropped reports how many events this subscriber has lost to buffer
// overflow.
func (s *Subscription) Dropped() uint64 {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	return s.dropped
}

// Cancel removes the subscription and closes its channel.
func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	if _, ok := s.bus.subs[s]; !ok {
		return
	}
	delete(s.bus.subs, s)
	close(s.ch)
}

// Publish broadcasts an event to every subscriber. A subscriber whose
// buffer is full loses its oldest pending event to make room, so the
// stream it sees stays recent.
func (b *Bus) Publish(ev terminal.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.shutdown {
		return
	}
	for s := range b.subs {
		select {
		case s.ch <- ev:
			continue
		default:
		}
		select {
		case <-s.ch:
			s.dropped++
		default:
		}
		select {
		case s.ch <- ev:
		default:
			s.dropped++
		}
		b.logger.Debug("subscriber lagging", "dropped", s.dropped)
	}
}

// CloseIntake stops accepting commands. Pending queued commands remain
// readable by the engine loop.
func (b *Bus) CloseIntake() {
	b.closing.Do(func() { close(b.done) })
}

// Shutdown stops intake and closes every subscriber channel. Publish
// becomes a no-op afterwards.
func (b *Bus) Shutdown() {
	b.CloseIntake()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.shutdown {
		return
	}
	b.shutdown = true
	for s := range b.subs {
		close(s.ch)
		delete(b.subs, s)
	}
}
