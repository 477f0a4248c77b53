package wire

import "testing"

func TestInvGetDataRoundTrip(t *testing.T) {
	m := &InvMessage{Entries: []InvVector{
		{Type: MsgTx, Hash: [32]byte{1, 2, 3}},
		{Type: MsgISLock, Hash: [32]byte{4, 5, 6}},
	}}
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeInvMessage("getdata", enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Entries) != 2 || got.Entries[1].Type != MsgISLock {
		t.Fatalf("round-trip mismatch: %+v", got.Entries)
	}
}

func TestInvTooManyEntries(t *testing.T) {
	entries := make([]InvVector, MaxInvEntries+1)
	m := &InvMessage{Entries: entries}
	if _, err := m.Encode(); err == nil {
		t.Fatalf("expected error for too many inv entries")
	}
}
