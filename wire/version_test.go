package wire

import (
	"bytes"
	"net"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func sampleVersion() *VersionMessage {
	return &VersionMessage{
		Version:     70220,
		Services:    1,
		Timestamp:   1700000000,
		RecvAddr:    NetAddr{Services: 1, IP: IPv4MappedIPv6(net.ParseIP("127.0.0.1")), Port: 9999},
		TransAddr:   NetAddr{Services: 1, IP: IPv4MappedIPv6(net.ParseIP("10.0.0.1")), Port: 9999},
		Nonce:       0xdeadbeefcafebabe,
		UserAgent:   "/dash-p2p-core:0.1.0/",
		StartHeight: 123456,
	}
}

func TestVersionRoundTripNoOptionalFields(t *testing.T) {
	m := sampleVersion()
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeVersionMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.HasRelay || got.HasMNAuthChallenge || got.HasFMasternode {
		t.Fatalf("unexpected optional fields present: %+v", got)
	}
	if got.UserAgent != m.UserAgent || got.Nonce != m.Nonce || got.StartHeight != m.StartHeight {
		t.Fatalf("round-trip mismatch:\n%s", spew.Sdump(got))
	}
}

func TestVersionRoundTripWithRelayOnly(t *testing.T) {
	m := sampleVersion()
	m.HasRelay = true
	m.Relay = true
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeVersionMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.HasRelay || !got.Relay {
		t.Fatalf("expected relay present and true")
	}
	if got.HasMNAuthChallenge || got.HasFMasternode {
		t.Fatalf("mnauth/fMasternode should not be present when absent on wire")
	}
}

func TestVersionRoundTripAllOptionalFields(t *testing.T) {
	m := sampleVersion()
	m.HasRelay = true
	m.Relay = false
	m.HasMNAuthChallenge = true
	for i := range m.MNAuthChallenge {
		m.MNAuthChallenge[i] = byte(i)
	}
	m.HasFMasternode = true
	m.FMasternode = true

	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeVersionMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.HasRelay || got.Relay {
		t.Fatalf("relay mismatch")
	}
	if !got.HasMNAuthChallenge || !bytes.Equal(got.MNAuthChallenge[:], m.MNAuthChallenge[:]) {
		t.Fatalf("mnauth_challenge mismatch")
	}
	if !got.HasFMasternode || !got.FMasternode {
		t.Fatalf("fMasternode mismatch")
	}
}

func TestVersionFMasternodeRequiresMNAuthChallenge(t *testing.T) {
	// A peer cannot send fMasternode without mnauth_challenge since the
	// decoder gates each optional field on the previous one's presence;
	// verify the byte actually lands in MNAuthChallenge, not silently
	// becoming fMasternode.
	m := sampleVersion()
	m.HasRelay = true
	m.Relay = true
	m.HasMNAuthChallenge = false
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Manually append 32 trailing bytes: the decoder has no way to tell
	// "fMasternode without a challenge" from "a challenge happens to be
	// present" since the fields are purely positional.
	enc = append(enc, make([]byte, 32)...)
	got, err := DecodeVersionMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.HasMNAuthChallenge {
		t.Fatalf("expected the trailing byte to be absorbed as part of mnauth_challenge, not fMasternode")
	}
}

func TestVersionUserAgentTooLarge(t *testing.T) {
	m := sampleVersion()
	big := make([]byte, MaxUserAgentBytes+1)
	for i := range big {
		big[i] = 'a'
	}
	m.UserAgent = string(big)
	if _, err := m.Encode(); err == nil {
		t.Fatalf("expected error for oversize user agent")
	}
}
