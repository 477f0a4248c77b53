package wire

// CLSigMessage is the `clsig` payload: an LLMQ-signed ChainLock.
type CLSigMessage struct {
	Height    uint32
	BlockHash [32]byte
	Signature [96]byte
}

func (m *CLSigMessage) Encode() []byte {
	out := make([]byte, 0, 4+32+96)
	out = appendU32le(out, m.Height)
	out = append(out, m.BlockHash[:]...)
	out = append(out, m.Signature[:]...)
	return out
}

func DecodeCLSigMessage(b []byte) (*CLSigMessage, error) {
	off := 0
	height, err := readU32le(b, &off)
	if err != nil {
		return nil, err
	}
	blockHashBytes, err := readBytes(b, &off, 32)
	if err != nil {
		return nil, err
	}
	sigBytes, err := readBytes(b, &off, 96)
	if err != nil {
		return nil, err
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "clsig", "", "bytes remain")
	}
	m := &CLSigMessage{Height: height}
	copy(m.BlockHash[:], blockHashBytes)
	copy(m.Signature[:], sigBytes)
	return m, nil
}

// RequestID computes the LLMQ signing request id: double-SHA-256("\x05clsig"
// || LE32(nHeight)).
func (m *CLSigMessage) RequestID() [32]byte {
	buf := append([]byte{}, "\x05clsig"...)
	buf = appendU32le(buf, m.Height)
	return doubleSHA256(buf)
}

// MsgHash computes the LLMQ signing digest: double-SHA-256(u8(llmqType) ||
// quorumHash || requestID || blockHash).
func (m *CLSigMessage) MsgHash(llmqType LLMQType, quorumHash [32]byte) [32]byte {
	reqID := m.RequestID()
	buf := make([]byte, 0, 1+32+32+32)
	buf = append(buf, byte(llmqType))
	buf = append(buf, quorumHash[:]...)
	buf = append(buf, reqID[:]...)
	buf = append(buf, m.BlockHash[:]...)
	return doubleSHA256(buf)
}
