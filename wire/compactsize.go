package wire

// CompactSize is a Bitcoin/Dash-style variable-length integer. Values below
// 0xfd encode as a single byte; larger values are prefixed with 0xfd/0xfe/0xff
// followed by a fixed-width little-endian integer. Non-minimal encodings are
// rejected on decode.
type CompactSize uint64

// Encode appends the CompactSize encoding of n to nil and returns it.
func (n CompactSize) Encode() []byte {
	return AppendCompactSize(nil, uint64(n))
}

// AppendCompactSize encodes n in CompactSize form and appends it to dst.
func AppendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		return appendU16le(dst, uint16(n))
	case n <= 0xffff_ffff:
		dst = append(dst, 0xfe)
		return appendU32le(dst, uint32(n))
	default:
		dst = append(dst, 0xff)
		return appendU64le(dst, n)
	}
}

// DecodeCompactSize decodes one CompactSize value from the front of buf and
// returns the value and the number of bytes consumed.
func DecodeCompactSize(buf []byte) (uint64, int, error) {
	off := 0
	v, err := readCompactSize(buf, &off)
	return v, off, err
}

func readCompactSize(b []byte, off *int) (uint64, error) {
	tag, err := readU8(b, off)
	if err != nil {
		return 0, err
	}
	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		v, err := readU16le(b, off)
		if err != nil {
			return 0, err
		}
		if v < 0xfd {
			return 0, codecErr(ErrInvalidLength, "", "compact_size", "non-minimal encoding (0xfd)")
		}
		return uint64(v), nil
	case tag == 0xfe:
		v, err := readU32le(b, off)
		if err != nil {
			return 0, err
		}
		if v <= 0xffff {
			return 0, codecErr(ErrInvalidLength, "", "compact_size", "non-minimal encoding (0xfe)")
		}
		return uint64(v), nil
	default: // 0xff
		v, err := readU64le(b, off)
		if err != nil {
			return 0, err
		}
		if v <= 0xffff_ffff {
			return 0, codecErr(ErrInvalidLength, "", "compact_size", "non-minimal encoding (0xff)")
		}
		return v, nil
	}
}
