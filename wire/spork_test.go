package wire

import "testing"

func TestSporkRoundTrip(t *testing.T) {
	m := &SporkMessage{
		SporkID:    Spork2InstantSendEnabled,
		Value:      0,
		TimeSigned: 1700000000,
		Signature:  make([]byte, sporkSignatureBytes),
	}
	for i := range m.Signature {
		m.Signature[i] = byte(i)
	}
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeSporkMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.SporkID != m.SporkID || got.TimeSigned != m.TimeSigned {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestSporkWrongSignatureLength(t *testing.T) {
	m := &SporkMessage{SporkID: Spork2InstantSendEnabled, Signature: []byte{1, 2, 3}}
	if _, err := m.Encode(); err == nil {
		t.Fatalf("expected error for short signature")
	}
}

func TestSporkMsgHashDiffersByScheme(t *testing.T) {
	m := &SporkMessage{SporkID: Spork2InstantSendEnabled, Value: 1, TimeSigned: 1700000000}
	newHash := m.MsgHash(true)
	legacyHash := m.MsgHash(false)
	if newHash == legacyHash {
		t.Fatalf("expected the two signing schemes to hash differently")
	}
}
