// Package peerconn implements one Peer Connection: the per-peer state
// machine that performs the version/verack handshake, schedules ping/pong,
// demultiplexes inbound envelopes to per-command handlers, and exposes a
// small API (send_msg, getmnlistd, ban, close) to the rest of the system.
// It is grounded on node/p2p/peer.go's Peer/PeerHandler shape, generalized
// from a single-chain block-sync peer to a Dash masternode network peer
// with PrivateSend/LLMQ message routing.
package peerconn

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/dashpay/dash-p2p-core/host"
	"github.com/dashpay/dash-p2p-core/internal/logs"
	"github.com/dashpay/dash-p2p-core/wire"
)

var log = logs.Logger(logs.SubsystemPeer)

const mnListDiffDeadline = 30 * time.Second

// deadlineConn is the subset of net.Conn the handshake and liveness monitor
// need; narrowed so tests can substitute a net.Pipe() end without friction.
type deadlineConn interface {
	net.Conn
}

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

// Config configures one outbound Peer Connection.
type Config struct {
	Magic                wire.Magic
	OurVersion           wire.VersionMessage
	NetworkTimeoutSource host.NetworkTimeoutSource

	SporkStore      host.SporkStore
	RecentIslocks   host.RecentIslockSet
	RecentDSQ       host.RecentDSQSet
	Peers           host.PeerSet
	Bans            host.BanList
	Masternodes     host.MasternodeList
}

// MixSession is the subset of a mixing session's inbound API the peer loop
// needs to route dsq/dssu/dsf/dsc into, without peerconn importing
// mixsession and creating a package cycle. The concrete
// *mixsession.Session implements this interface.
type MixSession interface {
	Deliver(msg wire.Message)
	DeliverError(err error)
	PeerClosed()
}

// Peer owns one TCP connection to a remote Dash peer.
type Peer struct {
	conn   net.Conn
	r      *bufio.Reader
	cfg    Config
	magic  wire.Magic

	mu          sync.Mutex
	state       State
	peerVersion *wire.VersionMessage
	session     MixSession
	ban         BanScore
	closed      bool

	readTime  atomicTime
	writeTime atomicTime

	outstandingPingNonce uint64
	outstandingPingSent  time.Time
	lastPingMs           *int64

	mnListDiffCh chan *wire.MNListDiffMessage
}

// Dial opens a TCP connection to addr and returns an unstarted Peer in the
// Connecting state. Call Run to drive the handshake and message loop.
func Dial(ctx context.Context, addr string, cfg Config) (*Peer, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("peerconn: dial %s: %w", addr, err)
	}
	return newPeer(conn, cfg), nil
}

func newPeer(conn net.Conn, cfg Config) *Peer {
	return &Peer{
		conn:         conn,
		r:            bufio.NewReader(conn),
		cfg:          cfg,
		magic:        cfg.Magic,
		state:        Connecting,
		mnListDiffCh: make(chan *wire.MNListDiffMessage, 1),
	}
}

// AttachSession wires a mixing session to receive the inv-filtered and
// PrivateSend-control messages this peer's loop dispatches.
func (p *Peer) AttachSession(s MixSession) {
	p.mu.Lock()
	p.session = s
	p.mu.Unlock()
}

func (p *Peer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Peer) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()
}

// Run performs the handshake and, on success, drives the three cooperative
// tasks (process_msgs, process_ping, monitor_connection) until ctx is
// cancelled or a fatal error occurs. It always returns a *GracefulDisconnect
// (or ctx.Err()) and always closes the connection exactly once before
// returning, mirroring node/p2p/peer.go's decorator-wrapped run().
func (p *Peer) Run(ctx context.Context) error {
	p.setState(Handshaking)
	defer p.teardown()

	res, err := doHandshake(p.conn, p.r, p.magic, &p.cfg.OurVersion)
	if err != nil {
		return p.asDisconnect(err)
	}
	p.peerVersion = res.PeerVersion
	p.markRead()
	p.markWrite()

	p.setState(Ready)
	if err := p.sendMsg("senddsq", (&wire.SendDSQMessage{Send: true}).Encode()); err != nil {
		return p.asDisconnect(err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 3)
	go func() { errCh <- p.processMsgs(ctx) }()
	go func() { errCh <- p.processPing(ctx) }()
	go func() { errCh <- p.monitorConnection(ctx) }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		cancel()
		return p.asDisconnect(err)
	}
}

func (p *Peer) asDisconnect(err error) error {
	if err == nil {
		return nil
	}
	gd, ok := err.(*GracefulDisconnect)
	if !ok {
		gd = disconnectError("unexpected error", err)
	}
	if gd.LogLevel == "ERROR" {
		log.Errorf("disconnecting %s: %v", p.conn.RemoteAddr(), gd)
	} else {
		log.Infof("disconnecting %s: %v", p.conn.RemoteAddr(), gd)
	}
	return gd
}

func (p *Peer) teardown() {
	p.mu.Lock()
	alreadyClosed := p.closed
	p.closed = true
	sess := p.session
	p.mu.Unlock()

	p.setState(Closing)
	if !alreadyClosed {
		_ = p.conn.Close()
	}
	if sess != nil {
		sess.PeerClosed()
	}
}

// Close is idempotent: it marks the peer closed, closes the socket, and
// (if a mixing session is attached) notifies it via PeerClosed so the
// session can distinguish peer death from protocol messages.
func (p *Peer) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	sess := p.session
	p.mu.Unlock()

	p.setState(Closing)
	err := p.conn.Close()
	if sess != nil {
		sess.PeerClosed()
	}
	return err
}

// Ban records ban metadata via the host's BanList. It does not itself close
// the connection; the caller decides whether a ban implies disconnect.
func (p *Peer) Ban(reason string, banDuration time.Duration) {
	if p.cfg.Bans == nil {
		return
	}
	var until *time.Time
	if banDuration > 0 {
		t := time.Now().Add(banDuration)
		until = &t
	}
	p.cfg.Bans.Ban(p.conn.RemoteAddr().String(), reason, until)
}

// sendMsg frames and writes command/payload. No count of bytes written is
// kept; SendMsg records only the time of the last successful write.
func (p *Peer) sendMsg(command string, payload []byte) error {
	return writeEnvelope(p.conn, p.magic, command, payload)
}

func writeEnvelope(conn net.Conn, magic wire.Magic, command string, payload []byte) error {
	raw, err := wire.EncodeEnvelope(magic, command, payload)
	if err != nil {
		return disconnectError("encode outgoing message", err)
	}
	n, err := conn.Write(raw)
	if err != nil {
		return disconnectError("write failed", err)
	}
	_ = n // the byte count is not recorded
	return nil
}

// SendMsg is the public send_msg operation: frame, write, and update
// liveness bookkeeping.
func (p *Peer) SendMsg(command string, payload []byte) error {
	if err := p.sendMsg(command, payload); err != nil {
		return err
	}
	p.markWrite()
	return nil
}

// GetMNListD sends a getmnlistd for the given block heights (resolved to
// hashes via the host's BlockHashSource by the caller) and awaits a single
// mnlistdiff from the 1-slot queue, draining any stale entry first.
func (p *Peer) GetMNListD(baseHash, blockHash [32]byte) (*wire.MNListDiffMessage, error) {
	select {
	case <-p.mnListDiffCh: // drop stale entry
	default:
	}

	req := &wire.GetMNListDMessage{BaseBlockHash: baseHash, BlockHash: blockHash}
	if err := p.SendMsg("getmnlistd", req.Encode()); err != nil {
		return nil, err
	}

	select {
	case diff := <-p.mnListDiffCh:
		return diff, nil
	case <-time.After(mnListDiffDeadline):
		return nil, fmt.Errorf("peerconn: getmnlistd: timed out after %s", mnListDiffDeadline)
	}
}

func (p *Peer) markRead()  { p.readTime.Store(time.Now()) }
func (p *Peer) markWrite() { p.writeTime.Store(time.Now()) }

func randomNonce() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}
