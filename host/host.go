// Package host defines the narrow collaborator interfaces peerconn and
// mixsession depend on, supplied by the caller at construction. Splitting
// one interface per concern (DNS, chain height, spork storage, ban list,
// masternode directory) lets a caller wire in only what it actually has,
// mirroring the PeerHandler callback-injection pattern from node/p2p/peer.go,
// but decomposed instead of monolithic since this module has more distinct
// collaborators than a single chain-state callback.
package host

import (
	"context"
	"net"
	"time"

	"github.com/dashpay/dash-p2p-core/txmodel"
	"github.com/dashpay/dash-p2p-core/wire"
)

// DNSResolver resolves a peer hostname, optionally over DNS-over-HTTPS.
type DNSResolver interface {
	ResolveOverHTTPS(ctx context.Context, hostname string) (net.IP, error)
}

// BlockHashSource answers getmnlistd/header-sync height-to-hash lookups.
type BlockHashSource interface {
	GetHash(ctx context.Context, height int32) ([32]byte, error)
}

// NetworkTimeoutSource supplies the configured network read/write timeout,
// in seconds, so peerconn does not hardcode it.
type NetworkTimeoutSource interface {
	NetworkTimeoutSeconds() int
}

// ChainHeightSource reports the caller's local chain height for the
// version message's start_height field.
type ChainHeightSource interface {
	GetLocalHeight() int32
}

// SporkStore records spork updates as they arrive and reports whether the
// new-sigs scheme is currently active, which controls which of
// wire.SporkMessage's two MsgHash schemes verification should try first.
type SporkStore interface {
	SetSpork(id wire.SporkID, value int64, peer string)
	IsNewSigs() bool
}

// RecentIslockSet is a bounded, duplicate-suppressing record of recently
// seen InstantSend locks: peerconn adds the hash of each islock inv entry
// and the txid of each received islock.
type RecentIslockSet interface {
	Add(hash [32]byte) (isNew bool)
}

// RecentDSQSet is a bounded, duplicate-suppressing record of recently
// relayed PrivateSend queue messages, keyed by their signing digest.
type RecentDSQSet interface {
	Add(q *wire.DSQMessage) (isNew bool)
}

// PeerSet is a mutating set of known peer addresses. Add is an explicit
// method rather than a value returned by a union operation, so a caller
// cannot accidentally discard a concurrent insertion by reassigning a
// stale copy.
type PeerSet interface {
	Add(addrs []wire.AddrEntry)
	Len() int
}

// BanList records that a peer should be disconnected and refused future
// connections until an optional expiry.
type BanList interface {
	Ban(peer string, reason string, until *time.Time)
}

// MasternodeList answers masternode-directory lookups needed to select a
// mixing-session partner and to validate a PrivateSend queue's signer.
type MasternodeList interface {
	GetByOutpoint(op txmodel.OutPoint) (*wire.SMLEntry, bool)
	GetRandom() (*wire.SMLEntry, bool)
}
