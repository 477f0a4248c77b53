package wire

import "github.com/dashpay/dash-p2p-core/txmodel"

// GetMNListDMessage requests a masternode-list diff between two blocks.
type GetMNListDMessage struct {
	BaseBlockHash [32]byte
	BlockHash     [32]byte
}

func (m *GetMNListDMessage) Encode() []byte {
	out := make([]byte, 0, 64)
	out = append(out, m.BaseBlockHash[:]...)
	return append(out, m.BlockHash[:]...)
}

func DecodeGetMNListDMessage(b []byte) (*GetMNListDMessage, error) {
	if len(b) != 64 {
		return nil, codecErr(ErrInvalidLength, "getmnlistd", "", "payload must be 64 bytes")
	}
	m := &GetMNListDMessage{}
	copy(m.BaseBlockHash[:], b[:32])
	copy(m.BlockHash[:], b[32:64])
	return m, nil
}

// MNListDiffMessage is the `mnlistdiff` response. DeletedQuorums/NewQuorums
// are optional trailing sections: pre-DIP-8 peers omit them, so they are
// only decoded if bytes remain after mnList.
type MNListDiffMessage struct {
	BaseBlockHash       [32]byte
	BlockHash           [32]byte
	TotalTransactions   uint32
	MerkleHashes        [][32]byte
	MerkleFlags         []byte
	CbTx                *txmodel.Transaction
	DeletedMNs          [][32]byte
	MnList              []*SMLEntry
	HasQuorums          bool
	DeletedQuorums      []*DeletedQuorum
	NewQuorums          []*QFCommitMessage
}

func (m *MNListDiffMessage) Encode() ([]byte, error) {
	out := make([]byte, 0, 256)
	out = append(out, m.BaseBlockHash[:]...)
	out = append(out, m.BlockHash[:]...)
	out = appendU32le(out, m.TotalTransactions)

	out = appendCompactSize(out, uint64(len(m.MerkleHashes)))
	for _, h := range m.MerkleHashes {
		out = append(out, h[:]...)
	}
	out = appendCompactSize(out, uint64(len(m.MerkleFlags)))
	out = append(out, m.MerkleFlags...)

	if m.CbTx == nil {
		return nil, codecErr(ErrInvalidLength, "mnlistdiff", "cbTx", "missing coinbase transaction")
	}
	out = append(out, m.CbTx.Encode()...)

	out = appendCompactSize(out, uint64(len(m.DeletedMNs)))
	for _, h := range m.DeletedMNs {
		out = append(out, h[:]...)
	}
	out = appendCompactSize(out, uint64(len(m.MnList)))
	for _, e := range m.MnList {
		out = e.Encode(out)
	}

	if !m.HasQuorums {
		return out, nil
	}
	out = appendCompactSize(out, uint64(len(m.DeletedQuorums)))
	for _, d := range m.DeletedQuorums {
		out = d.Encode(out)
	}
	out = appendCompactSize(out, uint64(len(m.NewQuorums)))
	for _, q := range m.NewQuorums {
		enc, err := q.Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

func DecodeMNListDiffMessage(b []byte) (*MNListDiffMessage, error) {
	off := 0
	m := &MNListDiffMessage{}

	if err := readFixed(b, &off, m.BaseBlockHash[:]); err != nil {
		return nil, err
	}
	if err := readFixed(b, &off, m.BlockHash[:]); err != nil {
		return nil, err
	}
	totalTx, err := readU32le(b, &off)
	if err != nil {
		return nil, err
	}
	m.TotalTransactions = totalTx

	merkleCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	m.MerkleHashes = make([][32]byte, 0, merkleCount)
	for i := uint64(0); i < merkleCount; i++ {
		hb, err := readBytes(b, &off, 32)
		if err != nil {
			return nil, err
		}
		var h [32]byte
		copy(h[:], hb)
		m.MerkleHashes = append(m.MerkleHashes, h)
	}

	flagsLen, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	flags, err := readBytes(b, &off, int(flagsLen))
	if err != nil {
		return nil, err
	}
	m.MerkleFlags = append([]byte{}, flags...)

	cbTx, n, err := txmodel.Decode(b[off:])
	if err != nil {
		return nil, err
	}
	off += n
	m.CbTx = cbTx

	deletedCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	m.DeletedMNs = make([][32]byte, 0, deletedCount)
	for i := uint64(0); i < deletedCount; i++ {
		hb, err := readBytes(b, &off, 32)
		if err != nil {
			return nil, err
		}
		var h [32]byte
		copy(h[:], hb)
		m.DeletedMNs = append(m.DeletedMNs, h)
	}

	mnCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	m.MnList = make([]*SMLEntry, 0, mnCount)
	for i := uint64(0); i < mnCount; i++ {
		e, err := DecodeSMLEntry(b, &off)
		if err != nil {
			return nil, err
		}
		m.MnList = append(m.MnList, e)
	}

	if off >= len(b) {
		return m, nil
	}
	m.HasQuorums = true

	delQCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	m.DeletedQuorums = make([]*DeletedQuorum, 0, delQCount)
	for i := uint64(0); i < delQCount; i++ {
		d, err := DecodeDeletedQuorum(b, &off)
		if err != nil {
			return nil, err
		}
		m.DeletedQuorums = append(m.DeletedQuorums, d)
	}

	newQCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	m.NewQuorums = make([]*QFCommitMessage, 0, newQCount)
	for i := uint64(0); i < newQCount; i++ {
		q, n, err := DecodeQFCommitMessage(b[off:])
		if err != nil {
			return nil, err
		}
		off += n
		m.NewQuorums = append(m.NewQuorums, q)
	}

	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "mnlistdiff", "", "bytes remain")
	}
	return m, nil
}
