package wire

import (
	"net"
	"unicode/utf8"
)

// MaxUserAgentBytes is the maximum encoded length of VersionMessage.UserAgent.
const MaxUserAgentBytes = 256

// NetAddr is the 26-byte {services, ip, port} address record used in the
// version message's recv/trans fields; `addr` entries use AddrEntry, which
// adds a leading `time`.
type NetAddr struct {
	Services uint64
	IP       [16]byte
	Port     uint16 // big-endian on the wire
}

func encodeNetAddr(dst []byte, a NetAddr) []byte {
	dst = appendU64le(dst, a.Services)
	dst = append(dst, a.IP[:]...)
	return appendPortBE(dst, a.Port)
}

func decodeNetAddr(b []byte, off *int) (NetAddr, error) {
	services, err := readU64le(b, off)
	if err != nil {
		return NetAddr{}, err
	}
	ipBytes, err := readBytes(b, off, 16)
	if err != nil {
		return NetAddr{}, err
	}
	port, err := readPortBE(b, off)
	if err != nil {
		return NetAddr{}, err
	}
	var a NetAddr
	a.Services = services
	copy(a.IP[:], ipBytes)
	a.Port = port
	return a, nil
}

// IPv4MappedIPv6 packs a 4-byte IPv4 address into the 16-byte IPv4-mapped
// IPv6 form Dash uses on the wire.
func IPv4MappedIPv6(ip net.IP) [16]byte {
	var out [16]byte
	if v4 := ip.To4(); v4 != nil {
		out[10] = 0xff
		out[11] = 0xff
		copy(out[12:], v4)
		return out
	}
	copy(out[:], ip.To16())
	return out
}

// VersionMessage is the `version` handshake record. Relay, MNAuthChallenge
// and FMasternode are optional and strictly positional: MNAuthChallenge can
// only be present if Relay is, and FMasternode only if MNAuthChallenge is.
type VersionMessage struct {
	Version      int32
	Services     uint64
	Timestamp    int64
	RecvAddr     NetAddr
	TransAddr    NetAddr
	Nonce        uint64
	UserAgent    string
	StartHeight  int32

	HasRelay           bool
	Relay              bool
	HasMNAuthChallenge bool
	MNAuthChallenge    [32]byte
	HasFMasternode     bool
	FMasternode        bool
}

// Encode returns the canonical wire-format bytes of m.
func (m *VersionMessage) Encode() ([]byte, error) {
	if len(m.UserAgent) > MaxUserAgentBytes {
		return nil, codecErr(ErrTooLarge, "version", "user_agent", "exceeds 256 bytes")
	}
	if !utf8.ValidString(m.UserAgent) {
		return nil, codecErr(ErrInvalidLength, "version", "user_agent", "not valid UTF-8")
	}
	out := make([]byte, 0, 4+8+8+26+26+8+9+len(m.UserAgent)+4+1+32+1)
	out = appendI32le(out, m.Version)
	out = appendU64le(out, m.Services)
	out = appendI64le(out, m.Timestamp)
	out = encodeNetAddr(out, m.RecvAddr)
	out = encodeNetAddr(out, m.TransAddr)
	out = appendU64le(out, m.Nonce)
	out = appendCompactSize(out, uint64(len(m.UserAgent)))
	out = append(out, m.UserAgent...)
	out = appendI32le(out, m.StartHeight)

	if !m.HasRelay {
		return out, nil
	}
	if m.Relay {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	if !m.HasMNAuthChallenge {
		return out, nil
	}
	out = append(out, m.MNAuthChallenge[:]...)
	if !m.HasFMasternode {
		return out, nil
	}
	if m.FMasternode {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	return out, nil
}

// DecodeVersionMessage decodes a `version` payload. The trailing relay,
// mnauth_challenge and fMasternode fields are read only while bytes remain,
// each gated on the previous one having been present.
func DecodeVersionMessage(b []byte) (*VersionMessage, error) {
	off := 0
	version, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	services, err := readU64le(b, &off)
	if err != nil {
		return nil, err
	}
	timestamp, err := readI64le(b, &off)
	if err != nil {
		return nil, err
	}
	recv, err := decodeNetAddr(b, &off)
	if err != nil {
		return nil, err
	}
	trans, err := decodeNetAddr(b, &off)
	if err != nil {
		return nil, err
	}
	nonce, err := readU64le(b, &off)
	if err != nil {
		return nil, err
	}
	uaBytes, err := readCompactSizeBytes(b, &off, MaxUserAgentBytes, "version", "user_agent")
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(uaBytes) {
		return nil, codecErr(ErrInvalidLength, "version", "user_agent", "not valid UTF-8")
	}
	startHeight, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}

	m := &VersionMessage{
		Version:     version,
		Services:    services,
		Timestamp:   timestamp,
		RecvAddr:    recv,
		TransAddr:   trans,
		Nonce:       nonce,
		UserAgent:   string(uaBytes),
		StartHeight: startHeight,
	}

	if off >= len(b) {
		return m, nil
	}
	relay, err := readU8(b, &off)
	if err != nil {
		return nil, err
	}
	m.HasRelay = true
	m.Relay = relay != 0

	if off >= len(b) {
		return m, nil
	}
	if err := readFixed(b, &off, m.MNAuthChallenge[:]); err != nil {
		return nil, err
	}
	m.HasMNAuthChallenge = true

	if off >= len(b) {
		return m, nil
	}
	fmn, err := readU8(b, &off)
	if err != nil {
		return nil, err
	}
	m.HasFMasternode = true
	m.FMasternode = fmn != 0

	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "version", "", "bytes remain after fMasternode")
	}
	return m, nil
}
