package wire

// MaxAddresses bounds the number of entries in a single `addr` message.
const MaxAddresses = 1000

// AddrEntry is one timestamped network address carried by `addr`.
type AddrEntry struct {
	Time     uint32
	Services uint64
	IP       [16]byte
	Port     uint16
}

// AddrMessage is the `addr` message payload.
type AddrMessage struct {
	Entries []AddrEntry
}

func (m *AddrMessage) Encode() ([]byte, error) {
	if len(m.Entries) > MaxAddresses {
		return nil, codecErr(ErrTooLarge, "addr", "entries", "exceeds MAX_ADDRESSES")
	}
	out := appendCompactSize(nil, uint64(len(m.Entries)))
	for _, e := range m.Entries {
		out = appendU32le(out, e.Time)
		out = appendU64le(out, e.Services)
		out = append(out, e.IP[:]...)
		out = appendPortBE(out, e.Port)
	}
	return out, nil
}

func DecodeAddrMessage(b []byte) (*AddrMessage, error) {
	off := 0
	count, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	if count > MaxAddresses {
		return nil, codecErr(ErrTooLarge, "addr", "entries", "exceeds MAX_ADDRESSES")
	}
	entries := make([]AddrEntry, 0, count)
	for i := uint64(0); i < count; i++ {
		t, err := readU32le(b, &off)
		if err != nil {
			return nil, err
		}
		services, err := readU64le(b, &off)
		if err != nil {
			return nil, err
		}
		ipBytes, err := readBytes(b, &off, 16)
		if err != nil {
			return nil, err
		}
		port, err := readPortBE(b, &off)
		if err != nil {
			return nil, err
		}
		var ip [16]byte
		copy(ip[:], ipBytes)
		entries = append(entries, AddrEntry{Time: t, Services: services, IP: ip, Port: port})
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "addr", "", "bytes remain after entries")
	}
	return &AddrMessage{Entries: entries}, nil
}
