package main

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dashpay/dash-p2p-core/internal/logs"
	"github.com/dashpay/dash-p2p-core/internal/netparams"
	"github.com/dashpay/dash-p2p-core/peerconn"
	"github.com/dashpay/dash-p2p-core/wire"
)

const probeUserAgent = "0.1.0"

var log = logs.Logger(logs.SubsystemProbe)

// runProbe dials opts.Peer, completes the handshake, and reports traffic to
// stdout until opts.Timeout elapses, the peer disconnects, or the process
// receives SIGINT/SIGTERM.
func runProbe(net netparams.Params, opts options, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(opts.Timeout)*time.Second)
	defer cancel()

	rep := newReporter(stdout)
	cfg := peerconn.Config{
		Magic:                net.Magic,
		OurVersion:           ourVersion(net),
		NetworkTimeoutSource: fixedTimeout(opts.Timeout + 30),
		SporkStore:           rep,
		RecentIslocks:        &islockSet{reporter: rep, seen: make(map[[32]byte]bool)},
		RecentDSQ:            &dsqSet{reporter: rep, seen: make(map[int64]bool)},
		Peers:                &peerSet{reporter: rep},
		Bans:                 rep,
	}

	peer, err := peerconn.Dial(ctx, opts.Peer, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "dial %s: %v\n", opts.Peer, err)
		return 1
	}
	log.Infof("dialed %s", opts.Peer)

	fmt.Fprintf(stdout, "connecting to %s on %s\n", opts.Peer, net.Name)
	err = peer.Run(ctx)
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(stderr, "peer connection ended: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, "probe finished")
	return 0
}

func ourVersion(net netparams.Params) wire.VersionMessage {
	return wire.VersionMessage{
		Version:     netparams.DashProtocolVersion,
		Services:    0,
		Timestamp:   time.Now().Unix(),
		RecvAddr:    wire.NetAddr{},
		TransAddr:   wire.NetAddr{},
		Nonce:       randomNonce(),
		UserAgent:   netparams.UserAgent(probeUserAgent),
		StartHeight: 0,
	}
}

func randomNonce() uint64 {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

type fixedTimeout int

func (f fixedTimeout) NetworkTimeoutSeconds() int { return int(f) }

// reporter fans the host-side callbacks peerconn needs into printed lines,
// standing in for the node-wide spork store and ban list a full node would
// otherwise wire in. The remaining host interfaces (recent-islock set,
// recent-dsq set, peer set) collide on the method name Add with differing
// signatures, so each gets its own thin wrapper type below instead of
// being satisfied by reporter directly.
type reporter struct {
	out io.Writer
	mu  sync.Mutex
}

func newReporter(out io.Writer) *reporter {
	return &reporter{out: out}
}

func (r *reporter) SetSpork(id wire.SporkID, value int64, peer string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "spork %d = %d (from %s)\n", id, value, peer)
}

func (r *reporter) IsNewSigs() bool { return true }

func (r *reporter) Ban(peer string, reason string, until *time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "ban requested for %s: %s\n", peer, reason)
}

type islockSet struct {
	*reporter
	seen map[[32]byte]bool
}

func (s *islockSet) Add(requestID [32]byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[requestID] {
		return false
	}
	s.seen[requestID] = true
	fmt.Fprintf(s.out, "islock %x\n", requestID)
	return true
}

type dsqSet struct {
	*reporter
	seen map[int64]bool
}

func (s *dsqSet) Add(q *wire.DSQMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seen[q.Time] {
		return false
	}
	s.seen[q.Time] = true
	fmt.Fprintf(s.out, "dsq denom=%d ready=%v\n", q.Denom, q.Ready)
	return true
}

type peerSet struct {
	*reporter
	mu    sync.Mutex
	count int
}

func (s *peerSet) Add(addrs []wire.AddrEntry) {
	s.mu.Lock()
	s.count += len(addrs)
	s.mu.Unlock()
	s.reporter.mu.Lock()
	defer s.reporter.mu.Unlock()
	fmt.Fprintf(s.out, "addr: %d entries advertised\n", len(addrs))
}

func (s *peerSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
