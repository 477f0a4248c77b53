package wire

import "github.com/dashpay/dash-p2p-core/txmodel"

// ISLockMessage is the `islock` payload: an LLMQ-signed InstantSend lock.
type ISLockMessage struct {
	Inputs    []txmodel.OutPoint
	TxID      [32]byte
	Signature [96]byte
}

func (m *ISLockMessage) Encode() []byte {
	out := appendCompactSize(nil, uint64(len(m.Inputs)))
	for _, in := range m.Inputs {
		out = txmodel.EncodeOutPoint(out, in)
	}
	out = append(out, m.TxID[:]...)
	out = append(out, m.Signature[:]...)
	return out
}

func DecodeISLockMessage(b []byte) (*ISLockMessage, error) {
	off := 0
	count, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	inputs := make([]txmodel.OutPoint, 0, count)
	for i := uint64(0); i < count; i++ {
		op, err := txmodel.DecodeOutPoint(b, &off)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, op)
	}
	txidBytes, err := readBytes(b, &off, 32)
	if err != nil {
		return nil, err
	}
	sigBytes, err := readBytes(b, &off, 96)
	if err != nil {
		return nil, err
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "islock", "", "bytes remain")
	}
	m := &ISLockMessage{Inputs: inputs}
	copy(m.TxID[:], txidBytes)
	copy(m.Signature[:], sigBytes)
	return m, nil
}

// RequestID computes the LLMQ signing request id for this islock, per the
// reference client: double-SHA-256("\x06islock" || varint(len(inputs)) ||
// concat(serialize(outpoint_i))).
func (m *ISLockMessage) RequestID() [32]byte {
	buf := append([]byte{}, "\x06islock"...)
	buf = appendCompactSize(buf, uint64(len(m.Inputs)))
	for _, in := range m.Inputs {
		buf = txmodel.EncodeOutPoint(buf, in)
	}
	return doubleSHA256(buf)
}

// MsgHash computes the LLMQ signing digest: double-SHA-256(u8(llmqType) ||
// quorumHash || requestID || txid).
func (m *ISLockMessage) MsgHash(llmqType LLMQType, quorumHash [32]byte) [32]byte {
	reqID := m.RequestID()
	buf := make([]byte, 0, 1+32+32+32)
	buf = append(buf, byte(llmqType))
	buf = append(buf, quorumHash[:]...)
	buf = append(buf, reqID[:]...)
	buf = append(buf, m.TxID[:]...)
	return doubleSHA256(buf)
}
