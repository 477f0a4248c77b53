package wire

// MaxInvEntries bounds the number of entries in a single `inv`/`getdata`
// message.
const MaxInvEntries = 50000

// InvVector names one object by type and hash, as carried by `inv` and
// `getdata`.
type InvVector struct {
	Type DashType
	Hash [32]byte
}

// InvMessage is the shared payload shape of `inv` and `getdata`.
type InvMessage struct {
	Entries []InvVector
}

func (m *InvMessage) Encode() ([]byte, error) {
	if len(m.Entries) > MaxInvEntries {
		return nil, codecErr(ErrTooLarge, "inv", "entries", "exceeds MAX_INV_ENTRIES")
	}
	out := appendCompactSize(nil, uint64(len(m.Entries)))
	for _, v := range m.Entries {
		out = appendU32le(out, uint32(v.Type))
		out = append(out, v.Hash[:]...)
	}
	return out, nil
}

// DecodeInvMessage decodes the shared `inv`/`getdata` payload shape.
// command is used only for error context.
func DecodeInvMessage(command string, b []byte) (*InvMessage, error) {
	off := 0
	count, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	if count > MaxInvEntries {
		return nil, codecErr(ErrTooLarge, command, "entries", "exceeds MAX_INV_ENTRIES")
	}
	entries := make([]InvVector, 0, count)
	for i := uint64(0); i < count; i++ {
		t, err := readU32le(b, &off)
		if err != nil {
			return nil, err
		}
		hashBytes, err := readBytes(b, &off, 32)
		if err != nil {
			return nil, err
		}
		var h [32]byte
		copy(h[:], hashBytes)
		entries = append(entries, InvVector{Type: DashType(t), Hash: h})
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, command, "", "bytes remain after entries")
	}
	return &InvMessage{Entries: entries}, nil
}
