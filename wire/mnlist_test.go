package wire

import (
	"testing"

	"github.com/dashpay/dash-p2p-core/txmodel"
	"github.com/jrick/bitset"
)

func sampleSMLEntry() *SMLEntry {
	e := &SMLEntry{Port: 9999, IsValid: true}
	e.ProRegTxHash[0] = 1
	e.ConfirmedHash[0] = 2
	e.IPAddress[10] = 0xff
	e.IPAddress[11] = 0xff
	e.IPAddress[15] = 1
	e.PubKeyOperator[0] = 3
	e.KeyIDVoting[0] = 4
	return e
}

func sampleQFCommit() *QFCommitMessage {
	return &QFCommitMessage{
		Version:           1,
		LLMQType:          LLMQ_50_60,
		SignersCount:      3,
		Signers:           bitset.Bytes{0x05},
		ValidMembersCount: 3,
		ValidMembers:      bitset.Bytes{0x07},
	}
}

func TestGetMNListDRoundTrip(t *testing.T) {
	m := &GetMNListDMessage{BaseBlockHash: [32]byte{1}, BlockHash: [32]byte{2}}
	enc := m.Encode()
	got, err := DecodeGetMNListDMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.BaseBlockHash != m.BaseBlockHash || got.BlockHash != m.BlockHash {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestMNListDiffRoundTripWithoutQuorums(t *testing.T) {
	m := &MNListDiffMessage{
		BaseBlockHash:     [32]byte{1},
		BlockHash:         [32]byte{2},
		TotalTransactions: 7,
		CbTx:              &txmodel.Transaction{Version: 3},
		MnList:            []*SMLEntry{sampleSMLEntry()},
	}
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeMNListDiffMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.HasQuorums {
		t.Fatalf("expected HasQuorums=false when no trailing bytes present")
	}
	if len(got.MnList) != 1 || got.MnList[0].Port != 9999 {
		t.Fatalf("mnList mismatch: %+v", got.MnList)
	}
}

func TestMNListDiffRoundTripWithQuorums(t *testing.T) {
	m := &MNListDiffMessage{
		BaseBlockHash:     [32]byte{1},
		BlockHash:         [32]byte{2},
		TotalTransactions: 7,
		CbTx:              &txmodel.Transaction{Version: 3},
		MnList:            []*SMLEntry{sampleSMLEntry()},
		HasQuorums:        true,
		DeletedQuorums:    []*DeletedQuorum{{LLMQType: LLMQ_50_60, QuorumHash: [32]byte{9}}},
		NewQuorums:        []*QFCommitMessage{sampleQFCommit()},
	}
	enc, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeMNListDiffMessage(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.HasQuorums {
		t.Fatalf("expected HasQuorums=true")
	}
	if len(got.DeletedQuorums) != 1 || len(got.NewQuorums) != 1 {
		t.Fatalf("quorum section mismatch: %+v", got)
	}
	if got.NewQuorums[0].SignersCount != 3 {
		t.Fatalf("qfcommit mismatch: %+v", got.NewQuorums[0])
	}
}

func TestQFCommitRejectsMismatchedBitsetLength(t *testing.T) {
	m := sampleQFCommit()
	m.Signers = bitset.Bytes{0x01, 0x02} // wrong length for SignersCount=3
	if _, err := m.Encode(); err == nil {
		t.Fatalf("expected error for mismatched signers bitset length")
	}
}
