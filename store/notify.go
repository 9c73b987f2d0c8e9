// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sync"

	"github.com/danielhkuo/livepoll/models"
	"github.com/danielhkuo/livepoll/telemetry"
)

// subscriberBuffer bounds how far a consumer may fall behind before
// delivery coalesces to the newest snapshot.
const subscriberBuffer = 4

// hub fans committed snapshots out to per-code subscribers. Channels are
// closed only by cancel, under the same lock publish holds, so a publish
// can never hit a closed channel.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[uint64]chan models.PollState
	next uint64
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[uint64]chan models.PollState)}
}

func (h *hub) subscribe(code string) (<-chan models.PollState, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan models.PollState, subscriberBuffer)
	if h.subs[code] == nil {
		h.subs[code] = make(map[uint64]chan models.PollState)
	}
	h.subs[code][id] = ch
	telemetry.AddLiveSubscribers(1)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			set, ok := h.subs[code]
			if !ok {
				return
			}
			delete(set, id)
			if len(set) == 0 {
				delete(h.subs, code)
			}
			close(ch)
			telemetry.AddLiveSubscribers(-1)
		})
	}
	return ch, cancel
}

// publish delivers state to every subscriber of code. A full buffer means
// the consumer is behind; the oldest queued snapshot is dropped so the
// newest always lands. Subscribers observe the latest committed state, not
// necessarily every intermediate one.
func (h *hub) publish(code string, state models.PollState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs[code] {
		select {
		case ch <- state:
		default:
			select {
			case <-ch:
				telemetry.IncFanoutCoalesced()
			default:
			}
			select {
			case ch <- state:
			default:
			}
		}
	}
}
