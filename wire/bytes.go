package wire

import "encoding/binary"

func appendU16le(dst []byte, v uint16) []byte {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return append(dst, buf[:]...)
}

func appendU32le(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

func appendU64le(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

func appendI32le(dst []byte, v int32) []byte {
	return appendU32le(dst, uint32(v))
}

func appendI64le(dst []byte, v int64) []byte {
	return appendU64le(dst, uint64(v))
}

func appendCompactSize(dst []byte, n uint64) []byte {
	return AppendCompactSize(dst, n)
}

func readU8(b []byte, off *int) (uint8, error) {
	if *off+1 > len(b) {
		return 0, codecErr(ErrTruncated, "", "", "unexpected EOF (u8)")
	}
	v := b[*off]
	*off++
	return v, nil
}

func readU16le(b []byte, off *int) (uint16, error) {
	if *off+2 > len(b) {
		return 0, codecErr(ErrTruncated, "", "", "unexpected EOF (u16le)")
	}
	v := binary.LittleEndian.Uint16(b[*off : *off+2])
	*off += 2
	return v, nil
}

func readU32le(b []byte, off *int) (uint32, error) {
	if *off+4 > len(b) {
		return 0, codecErr(ErrTruncated, "", "", "unexpected EOF (u32le)")
	}
	v := binary.LittleEndian.Uint32(b[*off : *off+4])
	*off += 4
	return v, nil
}

func readU64le(b []byte, off *int) (uint64, error) {
	if *off+8 > len(b) {
		return 0, codecErr(ErrTruncated, "", "", "unexpected EOF (u64le)")
	}
	v := binary.LittleEndian.Uint64(b[*off : *off+8])
	*off += 8
	return v, nil
}

func readI32le(b []byte, off *int) (int32, error) {
	v, err := readU32le(b, off)
	return int32(v), err
}

func readI64le(b []byte, off *int) (int64, error) {
	v, err := readU64le(b, off)
	return int64(v), err
}

func readBytes(b []byte, off *int, n int) ([]byte, error) {
	if n < 0 {
		return nil, codecErr(ErrInvalidLength, "", "", "negative length")
	}
	if *off+n > len(b) {
		return nil, codecErr(ErrTruncated, "", "", "unexpected EOF (bytes)")
	}
	v := b[*off : *off+n]
	*off += n
	return v, nil
}

func readFixed(b []byte, off *int, dst []byte) error {
	v, err := readBytes(b, off, len(dst))
	if err != nil {
		return err
	}
	copy(dst, v)
	return nil
}

// readCompactSizeBytes reads a CompactSize-prefixed byte string, bounded by max.
func readCompactSizeBytes(b []byte, off *int, max uint64, command, field string) ([]byte, error) {
	n, err := readCompactSize(b, off)
	if err != nil {
		return nil, err
	}
	if n > max {
		return nil, codecErr(ErrTooLarge, command, field, "exceeds maximum length")
	}
	return readBytes(b, off, int(n))
}
