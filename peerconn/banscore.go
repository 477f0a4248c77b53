package peerconn

import "time"

// Ban-score policy constants, carried over from node/p2p/banscore.go
// unchanged: this module's peer loop reuses the exact same decaying-score
// primitive to decide when a malformed-but-not-fatal message should
// escalate into a disconnect.
const (
	BanThreshold            = 100
	ThrottleThreshold       = 50
	ThrottleDelay           = 500 * time.Millisecond
	BanScoreDecaysPerMinute = 1
)

// BanScore is a small deterministic policy primitive; it is not consensus.
type BanScore struct {
	score       int
	lastUpdated time.Time
}

func (b *BanScore) Score(now time.Time) int {
	b.decayTo(now)
	return b.score
}

func (b *BanScore) Add(now time.Time, delta int) int {
	b.decayTo(now)
	b.score += delta
	if b.score < 0 {
		b.score = 0
	}
	return b.score
}

func (b *BanScore) ShouldBan(now time.Time) bool {
	return b.Score(now) >= BanThreshold
}

func (b *BanScore) ShouldThrottle(now time.Time) bool {
	return b.Score(now) >= ThrottleThreshold
}

func (b *BanScore) decayTo(now time.Time) {
	if b.lastUpdated.IsZero() {
		b.lastUpdated = now
		return
	}
	if now.Before(b.lastUpdated) {
		b.lastUpdated = now
		return
	}
	minutes := int(now.Sub(b.lastUpdated) / time.Minute)
	if minutes <= 0 {
		return
	}
	b.score -= minutes * BanScoreDecaysPerMinute
	if b.score < 0 {
		b.score = 0
	}
	b.lastUpdated = now
}
