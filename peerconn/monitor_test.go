package peerconn

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dashpay/dash-p2p-core/wire"
)

type fixedTimeout int

func (f fixedTimeout) NetworkTimeoutSeconds() int { return int(f) }

func TestMonitorConnectionDisconnectsOnStaleRead(t *testing.T) {
	client, remote := net.Pipe()
	defer client.Close()
	defer remote.Close()

	p := newPeer(client, Config{
		Magic:                wire.Magic{0xfa, 0xbf, 0xb5, 0xda},
		NetworkTimeoutSource: fixedTimeout(1),
	})
	p.writeTime.Store(time.Now())
	p.readTime.Store(time.Now().Add(-2 * time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := p.monitorConnection(ctx)
	gd, ok := err.(*GracefulDisconnect)
	if !ok {
		t.Fatalf("expected *GracefulDisconnect, got %T: %v", err, err)
	}
	if gd.LogLevel != "INFO" {
		t.Fatalf("expected INFO-level disconnect, got %s", gd.LogLevel)
	}
}

func TestMonitorConnectionStaysUpWhileFresh(t *testing.T) {
	client, remote := net.Pipe()
	defer client.Close()
	defer remote.Close()

	p := newPeer(client, Config{
		Magic:                wire.Magic{0xfa, 0xbf, 0xb5, 0xda},
		NetworkTimeoutSource: fixedTimeout(3600),
	})
	now := time.Now()
	p.writeTime.Store(now)
	p.readTime.Store(now)

	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	err := p.monitorConnection(ctx)
	if err != context.DeadlineExceeded {
		t.Fatalf("expected ctx deadline to fire first, got %v", err)
	}
}
