package mixsession

import (
	"context"

	"github.com/dashpay/dash-p2p-core/peerconn"
)

// DefaultDialer adapts peerconn.Dial to the PeerDialer interface, for
// callers that just want a plain TCP connection to the selected
// masternode with no test double involved.
type DefaultDialer struct{}

func (DefaultDialer) Dial(ctx context.Context, addr string, cfg peerconn.Config) (*peerconn.Peer, error) {
	return peerconn.Dial(ctx, addr, cfg)
}
