package peerconn

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/dashpay/dash-p2p-core/wire"
)

func sampleVersion() *wire.VersionMessage {
	return &wire.VersionMessage{
		Version:     70216,
		Services:    1,
		Timestamp:   1700000000,
		RecvAddr:    wire.NetAddr{},
		TransAddr:   wire.NetAddr{},
		Nonce:       42,
		UserAgent:   "/dash-p2p-core:0.1.0/",
		StartHeight: 100,
	}
}

// writeRaw writes command/payload framed with the test magic directly to
// conn, bypassing Peer entirely, to act as the "remote side" in handshake
// tests.
func writeRaw(t *testing.T, conn net.Conn, magic wire.Magic, command string, payload []byte) {
	t.Helper()
	raw, err := wire.EncodeEnvelope(magic, command, payload)
	if err != nil {
		t.Fatalf("encode envelope: %v", err)
	}
	if _, err := conn.Write(raw); err != nil {
		t.Fatalf("write envelope: %v", err)
	}
}

func TestHandshakeSucceedsVersionThenVerack(t *testing.T) {
	client, remote := net.Pipe()
	defer client.Close()
	defer remote.Close()

	magic := wire.Magic{0xfa, 0xbf, 0xb5, 0xda}
	done := make(chan struct{})
	var gotErr error
	var result *handshakeResult

	go func() {
		r := bufio.NewReader(client)
		result, gotErr = doHandshake(client, r, magic, sampleVersion())
		close(done)
	}()

	remoteReader := bufio.NewReader(remote)
	env, ok, err := wire.ReadEnvelope(remoteReader, magic)
	if err != nil || !ok || env.Command != "version" {
		t.Fatalf("expected to receive version first, got %+v ok=%v err=%v", env, ok, err)
	}

	peerVersion := sampleVersion()
	payload, err := peerVersion.Encode()
	if err != nil {
		t.Fatalf("encode peer version: %v", err)
	}
	writeRaw(t, remote, magic, "version", payload)
	writeRaw(t, remote, magic, "verack", nil)

	// net.Pipe is unbuffered: our verack reply must be read before
	// doHandshake can return.
	env, ok, err = wire.ReadEnvelope(remoteReader, magic)
	if err != nil || !ok || env.Command != "verack" {
		t.Fatalf("expected our verack reply, got %+v ok=%v err=%v", env, ok, err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handshake did not complete in time")
	}
	if gotErr != nil {
		t.Fatalf("doHandshake: %v", gotErr)
	}
	if result.PeerVersion == nil {
		t.Fatal("expected decoded peer version")
	}
}

func TestHandshakeSucceedsVerackThenVersion(t *testing.T) {
	client, remote := net.Pipe()
	defer client.Close()
	defer remote.Close()

	magic := wire.Magic{0xfa, 0xbf, 0xb5, 0xda}
	done := make(chan struct{})
	var gotErr error

	go func() {
		r := bufio.NewReader(client)
		_, gotErr = doHandshake(client, r, magic, sampleVersion())
		close(done)
	}()

	remoteReader := bufio.NewReader(remote)
	if _, ok, err := wire.ReadEnvelope(remoteReader, magic); err != nil || !ok {
		t.Fatalf("expected to receive version first: ok=%v err=%v", ok, err)
	}

	writeRaw(t, remote, magic, "verack", nil)
	peerVersion := sampleVersion()
	payload, err := peerVersion.Encode()
	if err != nil {
		t.Fatalf("encode peer version: %v", err)
	}
	writeRaw(t, remote, magic, "version", payload)

	if env, ok, err := wire.ReadEnvelope(remoteReader, magic); err != nil || !ok || env.Command != "verack" {
		t.Fatalf("expected our verack reply, got %+v ok=%v err=%v", env, ok, err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handshake did not complete in time")
	}
	if gotErr != nil {
		t.Fatalf("doHandshake: %v", gotErr)
	}
}

func TestHandshakeFailsOnVerackOnly(t *testing.T) {
	client, remote := net.Pipe()
	defer client.Close()
	defer remote.Close()

	magic := wire.Magic{0xfa, 0xbf, 0xb5, 0xda}

	// Shrink the handshake timeout isn't possible without touching the
	// package constant, so this test relies on the real 10s deadline; it is
	// deliberately the one slow test in this package.
	done := make(chan struct{})
	var gotErr error

	go func() {
		r := bufio.NewReader(client)
		_, gotErr = doHandshake(client, r, magic, sampleVersion())
		close(done)
	}()

	remoteReader := bufio.NewReader(remote)
	if _, ok, err := wire.ReadEnvelope(remoteReader, magic); err != nil || !ok {
		t.Fatalf("expected to receive version first: ok=%v err=%v", ok, err)
	}
	writeRaw(t, remote, magic, "verack", nil)

	select {
	case <-done:
	case <-time.After(handshakeTimeout + 2*time.Second):
		t.Fatal("handshake did not time out as expected")
	}
	if gotErr != ErrHandshakeFailed {
		t.Fatalf("expected ErrHandshakeFailed, got %v", gotErr)
	}
}
