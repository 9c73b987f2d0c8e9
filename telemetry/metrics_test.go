// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package telemetry

import (
	"testing"
	"time"
)

func TestHelpersBeforeInit(t *testing.T) {
	// Helpers must be safe no-ops when Init was never called.
	IncPollsCreated()
	IncCodeCollisions()
	IncVotesSubmitted()
	IncVotesRejected("duplicate")
	IncFanoutCoalesced()
	AddLiveSubscribers(1)
	AddLiveSubscribers(-1)
	if d := TimeVoteTxn(func() { time.Sleep(time.Millisecond) }); d <= 0 {
		t.Errorf("TimeVoteTxn returned non-positive duration %v", d)
	}
}

func TestInitIdempotent(t *testing.T) {
	Init()
	Init() // second call must not re-register with the default registry

	if PollsCreated == nil || VotesSubmitted == nil || LiveSubscribers == nil {
		t.Fatal("Init did not populate metrics")
	}

	IncVotesSubmitted()
	IncVotesRejected("single_selection")
	AddLiveSubscribers(2)
	AddLiveSubscribers(-2)
}
