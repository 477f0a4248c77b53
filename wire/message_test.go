package wire

import "testing"

func TestDecodePayloadUnknownCommandIsOpaque(t *testing.T) {
	msg, err := DecodePayload("notarealcommand", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	opaque, ok := msg.(*Opaque)
	if !ok {
		t.Fatalf("expected *Opaque, got %T", msg)
	}
	if opaque.Command() != "notarealcommand" || len(opaque.Payload) != 3 {
		t.Fatalf("unexpected opaque contents: %+v", opaque)
	}
}

func TestDecodeEncodePingRoundTripsThroughDispatcher(t *testing.T) {
	p := &PingMessage{Nonce: 42}
	msg, err := DecodePayload("ping", p.Encode())
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if msg.Command() != "ping" {
		t.Fatalf("command mismatch: %q", msg.Command())
	}
	enc, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	got, err := DecodePingMessage(enc)
	if err != nil {
		t.Fatalf("DecodePingMessage: %v", err)
	}
	if got.Nonce != p.Nonce {
		t.Fatalf("nonce mismatch after round trip: %d != %d", got.Nonce, p.Nonce)
	}
}

func TestVerackRoundTripsEmptyPayload(t *testing.T) {
	msg, err := DecodePayload("verack", nil)
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	enc, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("EncodeMessage: %v", err)
	}
	if len(enc) != 0 {
		t.Fatalf("expected empty verack payload, got %x", enc)
	}
}

func TestDecodePayloadRejectsMalformedKnownCommand(t *testing.T) {
	if _, err := DecodePayload("ping", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error for malformed ping payload")
	}
}
