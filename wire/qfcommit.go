package wire

import (
	"github.com/jrick/bitset"
)

// QFCommitMessage is the `qfcommit` payload: a quorum final commitment.
// The signers/validMembers membership bitfields are modeled with
// github.com/jrick/bitset.Bytes, the same bitset-over-[]byte primitive dcrd
// uses for vote-bit fields, rather than hand-rolled bit shifting.
type QFCommitMessage struct {
	Version          uint16
	LLMQType         LLMQType
	QuorumHash       [32]byte
	SignersCount     uint64
	Signers          bitset.Bytes
	ValidMembersCount uint64
	ValidMembers     bitset.Bytes
	QuorumPublicKey  [48]byte
	QuorumVvecHash   [32]byte
	QuorumSig        [96]byte
	Signature        [96]byte
}

func bitsetByteLen(n uint64) int {
	return int((n + 7) / 8)
}

// Encode returns the canonical wire-format bytes of m.
func (m *QFCommitMessage) Encode() ([]byte, error) {
	if len(m.Signers) != bitsetByteLen(m.SignersCount) {
		return nil, codecErr(ErrInvalidLength, "qfcommit", "signers", "byte length does not match signersSize")
	}
	if len(m.ValidMembers) != bitsetByteLen(m.ValidMembersCount) {
		return nil, codecErr(ErrInvalidLength, "qfcommit", "validMembers", "byte length does not match validMembersSize")
	}
	out := make([]byte, 0, 2+1+32+9+len(m.Signers)+9+len(m.ValidMembers)+48+32+96+96)
	out = append(out, byte(m.Version), byte(m.Version>>8))
	out = append(out, byte(m.LLMQType))
	out = append(out, m.QuorumHash[:]...)
	out = appendCompactSize(out, m.SignersCount)
	out = append(out, m.Signers...)
	out = appendCompactSize(out, m.ValidMembersCount)
	out = append(out, m.ValidMembers...)
	out = append(out, m.QuorumPublicKey[:]...)
	out = append(out, m.QuorumVvecHash[:]...)
	out = append(out, m.QuorumSig[:]...)
	out = append(out, m.Signature[:]...)
	return out, nil
}

// DecodeQFCommitMessage decodes one QFCommitMessage from the front of b and
// returns the number of bytes consumed (qfcommit records are concatenated
// without any outer length prefix inside `mnlistdiff.newQuorums`).
func DecodeQFCommitMessage(b []byte) (*QFCommitMessage, int, error) {
	off := 0
	version, err := readU16le(b, &off)
	if err != nil {
		return nil, 0, err
	}
	llmqTypeRaw, err := readU8(b, &off)
	if err != nil {
		return nil, 0, err
	}
	quorumHashBytes, err := readBytes(b, &off, 32)
	if err != nil {
		return nil, 0, err
	}

	signersCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, 0, err
	}
	signersBytes, err := readBytes(b, &off, bitsetByteLen(signersCount))
	if err != nil {
		return nil, 0, err
	}

	validCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, 0, err
	}
	validBytes, err := readBytes(b, &off, bitsetByteLen(validCount))
	if err != nil {
		return nil, 0, err
	}

	pubKeyBytes, err := readBytes(b, &off, 48)
	if err != nil {
		return nil, 0, err
	}
	vvecHashBytes, err := readBytes(b, &off, 32)
	if err != nil {
		return nil, 0, err
	}
	quorumSigBytes, err := readBytes(b, &off, 96)
	if err != nil {
		return nil, 0, err
	}
	sigBytes, err := readBytes(b, &off, 96)
	if err != nil {
		return nil, 0, err
	}

	m := &QFCommitMessage{
		Version:           version,
		LLMQType:          LLMQType(llmqTypeRaw),
		SignersCount:      signersCount,
		Signers:           append(bitset.Bytes{}, signersBytes...),
		ValidMembersCount: validCount,
		ValidMembers:      append(bitset.Bytes{}, validBytes...),
	}
	copy(m.QuorumHash[:], quorumHashBytes)
	copy(m.QuorumPublicKey[:], pubKeyBytes)
	copy(m.QuorumVvecHash[:], vvecHashBytes)
	copy(m.QuorumSig[:], quorumSigBytes)
	copy(m.Signature[:], sigBytes)
	return m, off, nil
}
