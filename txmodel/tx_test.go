package txmodel

import "testing"

func sampleTx() *Transaction {
	return &Transaction{
		Version: 1,
		Inputs: []TxIn{
			{
				PrevOut:   OutPoint{Hash: [32]byte{1, 2, 3}, Index: 0},
				ScriptSig: []byte{0x01, 0x02},
				Sequence:  0xffffffff,
			},
		},
		Outputs: []TxOut{
			{Value: 100000, ScriptPubKey: []byte{0x76, 0xa9}},
		},
		Locktime: 0,
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	tx := sampleTx()
	encoded := tx.Encode()
	decoded, n, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != len(encoded) {
		t.Fatalf("consumed %d bytes, want %d", n, len(encoded))
	}
	if decoded.Version != tx.Version || decoded.Locktime != tx.Locktime {
		t.Fatalf("header mismatch: got %+v", decoded)
	}
	if len(decoded.Inputs) != 1 || decoded.Inputs[0].PrevOut != tx.Inputs[0].PrevOut {
		t.Fatalf("input mismatch: got %+v", decoded.Inputs)
	}
	if len(decoded.Outputs) != 1 || decoded.Outputs[0].Value != tx.Outputs[0].Value {
		t.Fatalf("output mismatch: got %+v", decoded.Outputs)
	}
	reencoded := decoded.Encode()
	if string(reencoded) != string(encoded) {
		t.Fatalf("re-encode mismatch:\n got  %x\n want %x", reencoded, encoded)
	}
}

func TestOutPointString(t *testing.T) {
	o := OutPoint{Hash: [32]byte{0xaa}, Index: 5}
	s := o.String()
	if len(s) == 0 {
		t.Fatalf("empty string")
	}
}

func TestDecodeTruncated(t *testing.T) {
	if _, _, err := Decode([]byte{0x01, 0x00, 0x00}); err == nil {
		t.Fatalf("expected error decoding truncated transaction")
	}
}
