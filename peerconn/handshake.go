package peerconn

import (
	"bufio"
	"time"

	"github.com/dashpay/dash-p2p-core/wire"
)

const handshakeTimeout = 10 * time.Second

// handshakeResult carries the decoded peer version out of doHandshake.
type handshakeResult struct {
	PeerVersion *wire.VersionMessage
}

// doHandshake implements the Handshaking state: send our version, then
// read the next two well-formed envelopes. Exactly one must be version and
// the other verack, order-independent, before replying with our own verack;
// a second version is a disconnect, and a second verack or any other
// command fails with ErrHandshakeFailed.
func doHandshake(conn deadlineConn, r *bufio.Reader, magic wire.Magic, ourVersion *wire.VersionMessage) (*handshakeResult, error) {
	payload, err := ourVersion.Encode()
	if err != nil {
		return nil, err
	}
	if err := writeEnvelope(conn, magic, "version", payload); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(handshakeTimeout)
	_ = conn.SetReadDeadline(deadline)
	defer conn.SetReadDeadline(time.Time{})

	var peerVersion *wire.VersionMessage
	var gotVerack bool

	for !(peerVersion != nil && gotVerack) {
		env, ok, err := wire.ReadEnvelope(r, magic)
		if err != nil {
			// ReadEnvelope wraps the socket error, so the deadline is
			// checked directly as well.
			if isTimeout(err) || !time.Now().Before(deadline) {
				return nil, ErrHandshakeFailed
			}
			return nil, disconnectError("handshake read failed", err)
		}
		if !ok {
			continue // malformed envelope: drop and keep waiting within the deadline
		}
		switch env.Command {
		case "version":
			if peerVersion != nil {
				return nil, disconnectError("duplicate version during handshake", nil)
			}
			v, err := wire.DecodeVersionMessage(env.Payload)
			if err != nil {
				return nil, disconnectInfo("malformed version", err)
			}
			peerVersion = v
		case "verack":
			if gotVerack {
				return nil, ErrHandshakeFailed
			}
			gotVerack = true
		default:
			return nil, ErrHandshakeFailed
		}
	}

	if err := writeEnvelope(conn, magic, "verack", nil); err != nil {
		return nil, err
	}
	return &handshakeResult{PeerVersion: peerVersion}, nil
}
