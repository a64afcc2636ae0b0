package service

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/ports"
)

type statusSubscription struct {
	listener ports.StatusListener
	removed  atomic.Bool
	// replay is owed the current status; guarded by StatusBroadcaster.mu.
	replay bool
}

// StatusBroadcaster holds the process-wide connection status and pushes
// changes to subscribers. Report is the only writer.
//
// At most one goroutine runs listeners at a time. Whoever finds no delivery
// in progress becomes the deliverer and keeps going until every listener has
// the latest status, so a listener never receives an older value after a
// newer one.
type StatusBroadcaster struct {
	mu         sync.Mutex
	current    domain.ConnectionStatus
	version    uint64
	delivered  uint64
	delivering bool
	subs       []*statusSubscription
	log        zerolog.Logger
}

var (
	_ ports.StatusReporter = (*StatusBroadcaster)(nil)
	_ ports.StatusSource   = (*StatusBroadcaster)(nil)
)

// NewStatusBroadcaster returns a broadcaster in the unknown state.
func NewStatusBroadcaster(log zerolog.Logger) *StatusBroadcaster {
	return &StatusBroadcaster{
		current: domain.ConnectionStatus{State: domain.ConnectionUnknown},
		log:     log,
	}
}

// Current returns the stored status.
func (b *StatusBroadcaster) Current() domain.ConnectionStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Subscribe registers listener and delivers the current status to it. When
// no delivery is running the replay happens before Subscribe returns;
// otherwise the running delivery hands it over before it finishes. The
// returned function removes the listener; calling it again is a no-op.
func (b *StatusBroadcaster) Subscribe(listener ports.StatusListener) func() {
	sub := &statusSubscription{listener: listener, replay: true}
	unsubscribe := func() { b.remove(sub) }

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	if b.delivering {
		b.mu.Unlock()
		return unsubscribe
	}
	b.delivering = true
	b.drain()

	return unsubscribe
}

// Report stores the new status and notifies listeners in registration
// order, unless the value is unchanged. A report raised while a delivery
// is running, from a listener or another goroutine, is left to that
// delivery, which picks it up once the current round completes. Every
// listener ends up with the last written value.
func (b *StatusBroadcaster) Report(state domain.ConnectionState, errMsg string) {
	next := domain.ConnectionStatus{State: state, Error: errMsg}

	b.mu.Lock()
	if b.current.Equal(next) {
		b.mu.Unlock()
		return
	}
	b.current = next
	b.version++
	if b.delivering {
		b.mu.Unlock()
		return
	}
	b.delivering = true
	b.drain()
}

// drain runs delivery rounds until nothing is owed. It is entered with mu
// held and delivering set, and returns with mu released.
func (b *StatusBroadcaster) drain() {
	for {
		status, version := b.current, b.version
		changed := version != b.delivered

		var targets []*statusSubscription
		for _, sub := range b.subs {
			if changed || sub.replay {
				sub.replay = false
				targets = append(targets, sub)
			}
		}
		if len(targets) == 0 {
			b.delivering = false
			b.mu.Unlock()
			return
		}
		b.delivered = version
		b.mu.Unlock()

		if changed {
			b.log.Debug().
				Str("status", string(status.State)).
				Str("error", status.Error).
				Int("listeners", len(targets)).
				Msg("connection status changed")
		}
		for _, sub := range targets {
			b.deliver(sub, status)
		}

		b.mu.Lock()
	}
}

func (b *StatusBroadcaster) deliver(sub *statusSubscription, status domain.ConnectionStatus) {
	if sub.removed.Load() {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Err(fmt.Errorf("%v", r)).Msg("status listener panicked")
		}
	}()
	sub.listener(status)
}

func (b *StatusBroadcaster) remove(sub *statusSubscription) {
	if sub.removed.Swap(true) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s == sub {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}
