package peerconn

import "fmt"

// GracefulDisconnect is the single funnel every fatal peer condition routes
// through, mirroring the reference client's decorator-wrapped disconnect
// path (dash_peer.py's run()/handle_disconnect) and the
// ReadError{Err, BanScoreDelta, Disconnect} shape in node/p2p/envelope.go.
// LogLevel is the level Peer.Run logs the disconnect at: "INFO" for
// expected/benign teardown, "ERROR" for anything unexpected.
type GracefulDisconnect struct {
	Reason   string
	LogLevel string
	Err      error
}

func (d *GracefulDisconnect) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("peerconn: disconnect: %s: %v", d.Reason, d.Err)
	}
	return fmt.Sprintf("peerconn: disconnect: %s", d.Reason)
}

func (d *GracefulDisconnect) Unwrap() error { return d.Err }

func disconnectInfo(reason string, err error) *GracefulDisconnect {
	return &GracefulDisconnect{Reason: reason, LogLevel: "INFO", Err: err}
}

func disconnectError(reason string, err error) *GracefulDisconnect {
	return &GracefulDisconnect{Reason: reason, LogLevel: "ERROR", Err: err}
}

// ErrHandshakeFailed is returned when the handshake deadline passes before
// both a version and a verack have arrived, or when a second verack or any
// other command arrives in place of one of them.
var ErrHandshakeFailed = fmt.Errorf("peerconn: handshake failed: expected version and verack")
