// Package txmodel implements the minimal base transaction codec assumed by
// the Dash P2P wire messages (`dsa.txCollateral`, `dsi.vecTxDSIn`/
// `vecTxDSOut`, `dsf.txFinal`, `dstx.tx`, `mnlistdiff.cbTx`). The full
// transaction/script/signature validation system is out of scope for this
// module; only encode/decode and txid derivation are implemented, following
// the classic Bitcoin-family legacy (non-segwit) transaction layout that
// Dash Core itself still uses on the wire.
package txmodel

import (
	"encoding/binary"
	"fmt"
)

// OutPoint identifies a previous transaction output by txid and index. Hash
// is stored in internal (network) byte order.
type OutPoint struct {
	Hash  [32]byte
	Index uint32
}

func (o OutPoint) String() string {
	var reversed [32]byte
	for i := range o.Hash {
		reversed[i] = o.Hash[31-i]
	}
	return fmt.Sprintf("%x:%d", reversed, o.Index)
}

// TxIn is an unsigned or signed transaction input.
type TxIn struct {
	PrevOut   OutPoint
	ScriptSig []byte
	Sequence  uint32
}

// TxOut is a transaction output.
type TxOut struct {
	Value        int64
	ScriptPubKey []byte
}

// Transaction is the minimal base transaction record. SegWit/marker-flag
// encoding is not supported; Dash's PrivateSend/PrivateSend-mixing messages
// never carry witness data.
type Transaction struct {
	Version  int32
	Inputs   []TxIn
	Outputs  []TxOut
	Locktime uint32
}

func appendU32le(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

func appendI64le(dst []byte, v int64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return append(dst, buf[:]...)
}

func appendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		dst = append(dst, 0xfd)
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], uint16(n))
		return append(dst, b[:]...)
	case n <= 0xffff_ffff:
		dst = append(dst, 0xfe)
		return appendU32le(dst, uint32(n))
	default:
		dst = append(dst, 0xff)
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], n)
		return append(dst, b[:]...)
	}
}

func readCompactSize(b []byte, off *int) (uint64, error) {
	if *off+1 > len(b) {
		return 0, fmt.Errorf("txmodel: unexpected EOF reading compact_size tag")
	}
	tag := b[*off]
	*off++
	switch {
	case tag < 0xfd:
		return uint64(tag), nil
	case tag == 0xfd:
		if *off+2 > len(b) {
			return 0, fmt.Errorf("txmodel: unexpected EOF reading compact_size(u16)")
		}
		v := binary.LittleEndian.Uint16(b[*off : *off+2])
		*off += 2
		return uint64(v), nil
	case tag == 0xfe:
		if *off+4 > len(b) {
			return 0, fmt.Errorf("txmodel: unexpected EOF reading compact_size(u32)")
		}
		v := binary.LittleEndian.Uint32(b[*off : *off+4])
		*off += 4
		return uint64(v), nil
	default:
		if *off+8 > len(b) {
			return 0, fmt.Errorf("txmodel: unexpected EOF reading compact_size(u64)")
		}
		v := binary.LittleEndian.Uint64(b[*off : *off+8])
		*off += 8
		return v, nil
	}
}

func readBytes(b []byte, off *int, n int) ([]byte, error) {
	if n < 0 || *off+n > len(b) {
		return nil, fmt.Errorf("txmodel: unexpected EOF reading %d bytes", n)
	}
	v := b[*off : *off+n]
	*off += n
	return v, nil
}

func readU32le(b []byte, off *int) (uint32, error) {
	v, err := readBytes(b, off, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(v), nil
}

func readI32le(b []byte, off *int) (int32, error) {
	v, err := readU32le(b, off)
	return int32(v), err
}

func readI64le(b []byte, off *int) (int64, error) {
	v, err := readBytes(b, off, 8)
	if err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(v)), nil
}

// EncodeOutPoint appends the 36-byte wire encoding of o to dst.
func EncodeOutPoint(dst []byte, o OutPoint) []byte {
	dst = append(dst, o.Hash[:]...)
	return appendU32le(dst, o.Index)
}

// DecodeOutPoint decodes a 36-byte OutPoint starting at *off.
func DecodeOutPoint(b []byte, off *int) (OutPoint, error) {
	hashBytes, err := readBytes(b, off, 32)
	if err != nil {
		return OutPoint{}, err
	}
	var o OutPoint
	copy(o.Hash[:], hashBytes)
	idx, err := readU32le(b, off)
	if err != nil {
		return OutPoint{}, err
	}
	o.Index = idx
	return o, nil
}

// Encode returns the canonical wire-format bytes of tx.
func (tx *Transaction) Encode() []byte {
	out := make([]byte, 0, 64)
	out = appendU32le(out, uint32(tx.Version))
	out = appendCompactSize(out, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		out = EncodeOutPoint(out, in.PrevOut)
		out = appendCompactSize(out, uint64(len(in.ScriptSig)))
		out = append(out, in.ScriptSig...)
		out = appendU32le(out, in.Sequence)
	}
	out = appendCompactSize(out, uint64(len(tx.Outputs)))
	for _, o := range tx.Outputs {
		out = appendI64le(out, o.Value)
		out = appendCompactSize(out, uint64(len(o.ScriptPubKey)))
		out = append(out, o.ScriptPubKey...)
	}
	out = appendU32le(out, tx.Locktime)
	return out
}

// Decode parses a Transaction from the front of b, returning the number of
// bytes consumed.
func Decode(b []byte) (*Transaction, int, error) {
	off := 0
	version, err := readI32le(b, &off)
	if err != nil {
		return nil, 0, err
	}
	inCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, 0, err
	}
	inputs := make([]TxIn, 0, inCount)
	for i := uint64(0); i < inCount; i++ {
		prevOut, err := DecodeOutPoint(b, &off)
		if err != nil {
			return nil, 0, err
		}
		scriptLen, err := readCompactSize(b, &off)
		if err != nil {
			return nil, 0, err
		}
		script, err := readBytes(b, &off, int(scriptLen))
		if err != nil {
			return nil, 0, err
		}
		sequence, err := readU32le(b, &off)
		if err != nil {
			return nil, 0, err
		}
		inputs = append(inputs, TxIn{PrevOut: prevOut, ScriptSig: script, Sequence: sequence})
	}
	outCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, 0, err
	}
	outputs := make([]TxOut, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		value, err := readI64le(b, &off)
		if err != nil {
			return nil, 0, err
		}
		scriptLen, err := readCompactSize(b, &off)
		if err != nil {
			return nil, 0, err
		}
		script, err := readBytes(b, &off, int(scriptLen))
		if err != nil {
			return nil, 0, err
		}
		outputs = append(outputs, TxOut{Value: value, ScriptPubKey: script})
	}
	locktime, err := readU32le(b, &off)
	if err != nil {
		return nil, 0, err
	}
	return &Transaction{Version: version, Inputs: inputs, Outputs: outputs, Locktime: locktime}, off, nil
}
