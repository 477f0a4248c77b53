package peerconn

import (
	"context"
	"time"

	"github.com/dashpay/dash-p2p-core/wire"
)

const (
	pingIdleCheck  = 1 * time.Second
	pingRestPeriod = 300 * time.Second
)

// processPing is the idle-triggered ping scheduler: whenever the
// connection has been idle (no read and no write) for at least a second, it sends a
// ping carrying a fresh random nonce and then rests for 300 seconds before
// considering another one, matching the reference client's self-throttled
// keepalive rather than a fixed-interval ticker.
func (p *Peer) processPing(ctx context.Context) error {
	ticker := time.NewTicker(pingIdleCheck)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if time.Since(p.writeTime.Load()) < pingIdleCheck || time.Since(p.readTime.Load()) < pingIdleCheck {
				continue
			}
			if err := p.sendPing(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pingRestPeriod):
			}
		}
	}
}

func (p *Peer) sendPing() error {
	nonce := randomNonce()

	p.mu.Lock()
	p.outstandingPingNonce = nonce
	p.outstandingPingSent = time.Now()
	p.mu.Unlock()

	return p.SendMsg("ping", (&wire.PingMessage{Nonce: nonce}).Encode())
}

// handlePong records round-trip latency when the nonce matches the
// outstanding ping; a stale or foreign nonce is ignored rather than
// treated as a protocol violation, since a peer may legitimately echo a
// ping that raced a reconnect.
func (p *Peer) handlePong(msg *wire.PongMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.outstandingPingNonce == 0 || msg.Nonce != p.outstandingPingNonce {
		return
	}
	rtt := time.Since(p.outstandingPingSent).Milliseconds()
	p.lastPingMs = &rtt
	p.outstandingPingNonce = 0
}

// LastPingMillis reports the most recently observed ping round-trip time,
// or nil if no pong has matched an outstanding ping yet.
func (p *Peer) LastPingMillis() *int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastPingMs == nil {
		return nil
	}
	v := *p.lastPingMs
	return &v
}
