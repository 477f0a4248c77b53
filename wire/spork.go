package wire

import (
	"strconv"
)

// SporkMessage is the `spork` payload: an administratively signed toggle.
// Applying nValue is a host policy decision, out of scope for this package;
// only signature-hash computation is implemented here.
type SporkMessage struct {
	SporkID     SporkID
	Value       int64
	TimeSigned  int64
	Signature   []byte // must be exactly 65 bytes
}

const sporkSignatureBytes = 65

func (m *SporkMessage) Encode() ([]byte, error) {
	if len(m.Signature) != sporkSignatureBytes {
		return nil, codecErr(ErrInvalidLength, "spork", "vchSig", "must be 65 bytes")
	}
	out := make([]byte, 0, 4+8+8+1+sporkSignatureBytes)
	out = appendI32le(out, int32(m.SporkID))
	out = appendI64le(out, m.Value)
	out = appendI64le(out, m.TimeSigned)
	out = appendCompactSize(out, uint64(len(m.Signature)))
	out = append(out, m.Signature...)
	return out, nil
}

func DecodeSporkMessage(b []byte) (*SporkMessage, error) {
	off := 0
	idRaw, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	value, err := readI64le(b, &off)
	if err != nil {
		return nil, err
	}
	timeSigned, err := readI64le(b, &off)
	if err != nil {
		return nil, err
	}
	sig, err := readCompactSizeBytes(b, &off, sporkSignatureBytes, "spork", "vchSig")
	if err != nil {
		return nil, err
	}
	if len(sig) != sporkSignatureBytes {
		return nil, codecErr(ErrInvalidLength, "spork", "vchSig", "must be 65 bytes")
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "spork", "", "bytes remain")
	}
	return &SporkMessage{SporkID: SporkID(idRaw), Value: value, TimeSigned: timeSigned, Signature: sig}, nil
}

// bitcoinMessageMagic wraps msg the way the legacy "Bitcoin Signed Message"
// scheme does: a length-prefixed fixed header followed by a length-prefixed
// message, hashed with double-SHA-256 by the caller.
func bitcoinMessageMagic(msg []byte) []byte {
	const header = "DarkCoin Signed Message:\n"
	out := appendCompactSize(nil, uint64(len(header)))
	out = append(out, header...)
	out = appendCompactSize(out, uint64(len(msg)))
	out = append(out, msg...)
	return out
}

// MsgHash computes the signature digest for a spork message. When newSigs is
// true it hashes the binary fields directly; otherwise it falls back to the
// legacy scheme of hashing the decimal-string concatenation wrapped in the
// Bitcoin message-signing magic, matching the reference client's dual
// verification path.
func (m *SporkMessage) MsgHash(newSigs bool) [32]byte {
	if newSigs {
		buf := make([]byte, 0, 4+8+8)
		buf = appendI32le(buf, int32(m.SporkID))
		buf = appendI64le(buf, m.Value)
		buf = appendI64le(buf, m.TimeSigned)
		return doubleSHA256(buf)
	}
	s := strconv.FormatInt(int64(m.SporkID), 10) +
		strconv.FormatInt(m.Value, 10) +
		strconv.FormatInt(m.TimeSigned, 10)
	return doubleSHA256(bitcoinMessageMagic([]byte(s)))
}
