package wire

const (
	FilterLoadMaxHashFuncs   = 50
	FilterLoadMaxFilterBytes = 36000
	FilterAddMaxElementBytes = 520
)

// FilterLoadMessage is the `filterload` payload: installs a bloom filter.
type FilterLoadMessage struct {
	Filter     []byte
	NHashFuncs uint32
	NTweak     uint32
	NFlags     uint8
}

func (m *FilterLoadMessage) Encode() ([]byte, error) {
	if len(m.Filter) > FilterLoadMaxFilterBytes {
		return nil, codecErr(ErrTooLarge, "filterload", "filter", "exceeds FILTERLOAD_MAX_FILTER_BYTES")
	}
	if m.NHashFuncs > FilterLoadMaxHashFuncs {
		return nil, codecErr(ErrTooLarge, "filterload", "nHashFuncs", "exceeds FILTERLOAD_MAX_HASH_FUNCS")
	}
	out := appendCompactSize(nil, uint64(len(m.Filter)))
	out = append(out, m.Filter...)
	out = appendU32le(out, m.NHashFuncs)
	out = appendU32le(out, m.NTweak)
	out = append(out, m.NFlags)
	return out, nil
}

func DecodeFilterLoadMessage(b []byte) (*FilterLoadMessage, error) {
	off := 0
	filter, err := readCompactSizeBytes(b, &off, FilterLoadMaxFilterBytes, "filterload", "filter")
	if err != nil {
		return nil, err
	}
	hashFuncs, err := readU32le(b, &off)
	if err != nil {
		return nil, err
	}
	if hashFuncs > FilterLoadMaxHashFuncs {
		return nil, codecErr(ErrTooLarge, "filterload", "nHashFuncs", "exceeds FILTERLOAD_MAX_HASH_FUNCS")
	}
	tweak, err := readU32le(b, &off)
	if err != nil {
		return nil, err
	}
	flags, err := readU8(b, &off)
	if err != nil {
		return nil, err
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "filterload", "", "bytes remain")
	}
	return &FilterLoadMessage{
		Filter:     append([]byte{}, filter...),
		NHashFuncs: hashFuncs,
		NTweak:     tweak,
		NFlags:     flags,
	}, nil
}

// FilterAddMessage is the `filteradd` payload: adds one element to the
// currently loaded bloom filter.
type FilterAddMessage struct {
	Element []byte
}

func (m *FilterAddMessage) Encode() ([]byte, error) {
	if len(m.Element) > FilterAddMaxElementBytes {
		return nil, codecErr(ErrTooLarge, "filteradd", "element", "exceeds FILTERADD_MAX_ELEMENT_BYTES")
	}
	out := appendCompactSize(nil, uint64(len(m.Element)))
	return append(out, m.Element...), nil
}

func DecodeFilterAddMessage(b []byte) (*FilterAddMessage, error) {
	off := 0
	element, err := readCompactSizeBytes(b, &off, FilterAddMaxElementBytes, "filteradd", "element")
	if err != nil {
		return nil, err
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "filteradd", "", "bytes remain")
	}
	return &FilterAddMessage{Element: append([]byte{}, element...)}, nil
}

// SendDSQMessage is the `senddsq` payload: opts the peer in/out of relaying
// PrivateSend queue messages.
type SendDSQMessage struct {
	Send bool
}

func (m *SendDSQMessage) Encode() []byte {
	if m.Send {
		return []byte{1}
	}
	return []byte{0}
}

func DecodeSendDSQMessage(b []byte) (*SendDSQMessage, error) {
	if len(b) != 1 {
		return nil, codecErr(ErrInvalidLength, "senddsq", "fSendDSQueue", "payload must be 1 byte")
	}
	return &SendDSQMessage{Send: b[0] != 0}, nil
}
