package peerconn

import (
	"testing"
	"time"
)

func TestBanScoreAccumulatesAndThresholds(t *testing.T) {
	var b BanScore
	now := time.Now()

	if b.ShouldBan(now) {
		t.Fatal("fresh ban score should not trigger a ban")
	}

	b.Add(now, ThrottleThreshold)
	if !b.ShouldThrottle(now) {
		t.Fatal("expected throttle threshold reached")
	}
	if b.ShouldBan(now) {
		t.Fatal("throttle threshold alone should not trigger a ban")
	}

	b.Add(now, BanThreshold-ThrottleThreshold)
	if !b.ShouldBan(now) {
		t.Fatal("expected ban threshold reached")
	}
}

func TestBanScoreDecaysOverTime(t *testing.T) {
	var b BanScore
	start := time.Now()
	b.Add(start, 10)

	later := start.Add(5 * time.Minute)
	if got := b.Score(later); got != 5 {
		t.Fatalf("expected score to decay to 5 after 5 minutes, got %d", got)
	}
}

func TestBanScoreNeverNegative(t *testing.T) {
	var b BanScore
	start := time.Now()
	b.Add(start, 2)

	later := start.Add(time.Hour)
	if got := b.Score(later); got != 0 {
		t.Fatalf("expected score floored at 0, got %d", got)
	}
}

func TestStateString(t *testing.T) {
	cases := map[State]string{
		Connecting:  "Connecting",
		Handshaking: "Handshaking",
		Ready:       "Ready",
		Closing:     "Closing",
		State(99):   "Unknown",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}
