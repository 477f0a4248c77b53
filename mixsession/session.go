// Package mixsession implements one PrivateSend/CoinJoin mixing session
// against a chosen masternode: selecting the masternode (from a supplied
// dsq offer, or at random while avoiding recently used peers), dialing it,
// exchanging dsa/dsi/dss, and validating the dssu/dsq/dsf/dsc control
// traffic the masternode relays back. Grounded on
// _examples/original_source/electrum_cintamani/dash_ps_net.py's
// PSMixSession, translated from its asyncio queue/coroutine shape into
// Go's buffered channel plus context.Context idiom.
package mixsession

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/dashpay/dash-p2p-core/host"
	"github.com/dashpay/dash-p2p-core/internal/logs"
	"github.com/dashpay/dash-p2p-core/peerconn"
	"github.com/dashpay/dash-p2p-core/txmodel"
	"github.com/dashpay/dash-p2p-core/wire"
)

var log = logs.Logger(logs.SubsystemMix)

const (
	// QueueTimeout is 30 seconds. No function in this package applies it:
	// every wait for a session message, including a ready dsq, uses
	// SessionMsgTimeout.
	QueueTimeout = 30 * time.Second
	// SessionMsgTimeout bounds read_next_msg's wait for the next control
	// message once a session is underway.
	SessionMsgTimeout = 40 * time.Second
	// maxRandomMNAttempts bounds how many random masternodes are tried
	// before giving up on finding one not recently used for mixing.
	maxRandomMNAttempts = 10
)

// RecentMixPeers is a bounded record of masternode addresses recently used
// for a mixing session, so a client does not repeatedly select the same
// masternode back to back.
type RecentMixPeers interface {
	Contains(peerAddr string) bool
	Add(peerAddr string)
}

// PeerDialer opens a connection to a masternode for the duration of one
// mixing session.
type PeerDialer interface {
	Dial(ctx context.Context, addr string, cfg peerconn.Config) (*peerconn.Peer, error)
}

// sessionMsg is one entry in a Session's inbound queue: either a decoded
// wire.Message, or a terminal condition (peer closed / a forwarding error).
type sessionMsg struct {
	msg       wire.Message
	err       error
	peerClose bool
}

// Session is one PrivateSend mixing session against a single masternode.
type Session struct {
	Denom      wire.PSDenoms
	DenomValue int64
	SMLEntry   *wire.SMLEntry

	dialer  PeerDialer
	peer    *peerconn.Peer
	peerCfg peerconn.Config

	queue     chan sessionMsg
	startTime time.Time

	sessionID      int32
	state          wire.DSPoolState
	msgID          wire.DSMessageIDs
	entriesCount   int32
	mnOutPoint     *txmodel.OutPoint
	ready          bool
	dsqTime        int64
	pendingSubmit  *PendingDenominate
}

// PeerAddr formats the masternode's address as host:port, the same string
// used as the RecentMixPeers dedup key.
func (s *Session) PeerAddr() string {
	return peerAddrOf(s.SMLEntry)
}

func peerAddrOf(e *wire.SMLEntry) string {
	ip := net.IP(e.IPAddress[:])
	return net.JoinHostPort(ip.String(), strconv.Itoa(int(e.Port)))
}

// New selects the masternode for a mixing session: from dsq's announced
// outpoint if one was offered, otherwise a random masternode not present in
// recentMixes, retried up to maxRandomMNAttempts times.
func New(mns host.MasternodeList, recentMixes RecentMixPeers, dialer PeerDialer, peerCfg peerconn.Config, denom wire.PSDenoms, denomValue int64, dsq *wire.DSQMessage) (*Session, error) {
	var sml *wire.SMLEntry

	if dsq != nil {
		if mn, ok := mns.GetByOutpoint(dsq.MasternodeOutPoint); ok {
			sml = mn
		}
	}
	if sml == nil {
		var found bool
		for attempt := 0; attempt < maxRandomMNAttempts; attempt++ {
			mn, ok := mns.GetRandom()
			if !ok {
				break
			}
			if recentMixes == nil || !recentMixes.Contains(peerAddrOf(mn)) {
				sml = mn
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("mixsession: could not select a random not-recently-used masternode after %d attempts", maxRandomMNAttempts)
		}
	}
	if sml == nil {
		return nil, fmt.Errorf("mixsession: no masternode list entries available")
	}

	s := &Session{
		Denom:      denom,
		DenomValue: denomValue,
		SMLEntry:   sml,
		dialer:     dialer,
		peerCfg:    peerCfg,
		queue:      make(chan sessionMsg, 16),
		startTime:  time.Now(),
	}
	if recentMixes != nil {
		recentMixes.Add(s.PeerAddr())
	}
	return s, nil
}

// RunPeer dials the selected masternode and attaches this session to the
// resulting Peer so its dispatch loop routes dsq/dssu/dsf/dsc here.
func (s *Session) RunPeer(ctx context.Context) error {
	if s.peer != nil {
		return fmt.Errorf("mixsession: session already has a running peer")
	}
	p, err := s.dialer.Dial(ctx, s.PeerAddr(), s.peerCfg)
	if err != nil {
		return fmt.Errorf("mixsession: peer %s connection failed: %w", s.PeerAddr(), err)
	}
	p.AttachSession(s)
	s.peer = p
	log.Infof("started mixing session peer=%s denom=%d value=%d", s.PeerAddr(), s.Denom, s.DenomValue)
	return nil
}

// ClosePeer tears down the session's peer connection, if one is running.
func (s *Session) ClosePeer() {
	if s.peer == nil {
		return
	}
	_ = s.peer.Close()
	log.Infof("stopped mixing session peer=%s", s.PeerAddr())
}

// Deliver implements peerconn.MixSession: it enqueues a decoded message
// for ReadNextMsg to consume, dropping it (non-blocking) if the queue is
// already saturated rather than blocking the peer's receive loop.
func (s *Session) Deliver(msg wire.Message) {
	select {
	case s.queue <- sessionMsg{msg: msg}:
	default:
		log.Warnf("mixsession queue full, dropping %s", msg.Command())
	}
}

// DeliverError implements peerconn.MixSession: it enqueues a forwarding
// error (e.g. a signature verification failure) to be raised from the next
// ReadNextMsg call.
func (s *Session) DeliverError(err error) {
	select {
	case s.queue <- sessionMsg{err: err}:
	default:
	}
}

// PeerClosed implements peerconn.MixSession: the next (or currently
// blocked) ReadNextMsg call returns MixSessionPeerClosed.
func (s *Session) PeerClosed() {
	select {
	case s.queue <- sessionMsg{peerClose: true}:
	default:
	}
}
