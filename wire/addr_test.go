package wire

import (
	"net"
	"testing"
)

func TestAddrRoundTrip(t *testing.T) {
	m := &AddrMessage{Entries: []AddrEntry{
		{Time: 1700000000, Services: 1, IP: IPv4MappedIPv6(net.ParseIP("8.8.8.8")), Port: 9999},
		{Time: 1700000001, Services: 5, IP: IPv4MappedIPv6(net.ParseIP("1.1.1.1")), Port: 19999},
	}}
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeAddrMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got.Entries))
	}
	if got.Entries[0].Port != 9999 || got.Entries[1].Services != 5 {
		t.Fatalf("entry mismatch: %+v", got.Entries)
	}
}

func TestAddrEmpty(t *testing.T) {
	m := &AddrMessage{}
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeAddrMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Entries) != 0 {
		t.Fatalf("expected no entries")
	}
}

func TestAddrTrailingBytesRejected(t *testing.T) {
	m := &AddrMessage{Entries: []AddrEntry{{Time: 1, IP: IPv4MappedIPv6(net.ParseIP("1.2.3.4")), Port: 1}}}
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := DecodeAddrMessage(append(enc, 0xff)); err == nil {
		t.Fatalf("expected trailing-bytes error")
	}
}
