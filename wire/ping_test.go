package wire

import "testing"

func TestPingPongRoundTrip(t *testing.T) {
	p := &PingMessage{Nonce: 0x0102030405060708}
	enc := p.Encode()
	got, err := DecodePingMessage(enc)
	if err != nil {
		t.Fatalf("DecodePingMessage: %v", err)
	}
	if got.Nonce != p.Nonce {
		t.Fatalf("nonce mismatch: %x != %x", got.Nonce, p.Nonce)
	}

	pg := &PongMessage{Nonce: p.Nonce}
	enc2 := pg.Encode()
	got2, err := DecodePongMessage(enc2)
	if err != nil {
		t.Fatalf("DecodePongMessage: %v", err)
	}
	if got2.Nonce != pg.Nonce {
		t.Fatalf("nonce mismatch: %x != %x", got2.Nonce, pg.Nonce)
	}
}

func TestPingWrongLength(t *testing.T) {
	if _, err := DecodePingMessage([]byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for short ping payload")
	}
	if _, err := DecodePongMessage(nil); err == nil {
		t.Fatalf("expected error for empty pong payload")
	}
}
