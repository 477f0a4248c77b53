package peerconn

import (
	"context"
	"fmt"
	"time"
)

const monitorInterval = 1 * time.Second

// monitorConnection implements the liveness check: once a second, verify
// that the gap between our last write and the peer's last read is still
// inside the network timeout. A peer that stops answering eventually drifts
// read_time behind write_time past the timeout and gets disconnected, even
// if the TCP socket itself never errors.
func (p *Peer) monitorConnection(ctx context.Context) error {
	timeout := p.networkTimeout()
	ticker := time.NewTicker(monitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			now := time.Now()
			readTime := p.readTime.Load()
			writeTime := p.writeTime.Load()
			if readTime.IsZero() || writeTime.IsZero() {
				continue
			}
			if writeTime.Sub(readTime) >= timeout {
				return disconnectInfo(
					fmt.Sprintf("no message received within network timeout (%s)", timeout),
					nil,
				)
			}
		}
	}
}

func (p *Peer) networkTimeout() time.Duration {
	if p.cfg.NetworkTimeoutSource == nil {
		return 20 * time.Minute
	}
	return time.Duration(p.cfg.NetworkTimeoutSource.NetworkTimeoutSeconds()) * time.Second
}
