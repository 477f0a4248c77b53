package wire

import "github.com/dashpay/dash-p2p-core/txmodel"

const dsqSignatureBytes = 96

// PrivatesendEntryMaxSize bounds the number of inputs/outputs a single dsi
// or dss entry may carry, matching PRIVATESEND_ENTRY_MAX_SIZE.
const PrivatesendEntryMaxSize = 9

// DSAMessage is the `dsa` payload: a client's accept request to join a
// mixing pool at a given denomination.
type DSAMessage struct {
	Denom       PSDenoms
	CollateralTx *txmodel.Transaction
}

func (m *DSAMessage) Encode() []byte {
	out := appendI32le(nil, int32(m.Denom))
	return append(out, m.CollateralTx.Encode()...)
}

func DecodeDSAMessage(b []byte) (*DSAMessage, error) {
	off := 0
	denom, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	tx, n, err := txmodel.Decode(b[off:])
	if err != nil {
		return nil, err
	}
	off += n
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "dsa", "", "bytes remain")
	}
	return &DSAMessage{Denom: PSDenoms(denom), CollateralTx: tx}, nil
}

// DSQMessage is the `dsq` payload: a masternode's broadcast announcing a
// mixing pool has reached the requested number of participants.
type DSQMessage struct {
	Denom             PSDenoms
	MasternodeOutPoint txmodel.OutPoint
	Time              int64
	Ready             bool
	Signature         []byte
}

// Command implements Message directly on the decoded pointer, so a dsq
// relayed to a mixing session can be type-switched on without an
// intermediate wrapper.
func (m *DSQMessage) Command() string { return "dsq" }

func (m *DSQMessage) Encode() []byte {
	out := appendI32le(nil, int32(m.Denom))
	out = txmodel.EncodeOutPoint(out, m.MasternodeOutPoint)
	out = appendI64le(out, m.Time)
	if m.Ready {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = appendCompactSize(out, uint64(len(m.Signature)))
	return append(out, m.Signature...)
}

func DecodeDSQMessage(b []byte) (*DSQMessage, error) {
	off := 0
	denom, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	outpoint, err := txmodel.DecodeOutPoint(b, &off)
	if err != nil {
		return nil, err
	}
	t, err := readI64le(b, &off)
	if err != nil {
		return nil, err
	}
	readyByte, err := readU8(b, &off)
	if err != nil {
		return nil, err
	}
	sig, err := readCompactSizeBytes(b, &off, dsqSignatureBytes, "dsq", "vchSig")
	if err != nil {
		return nil, err
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "dsq", "", "bytes remain")
	}
	if len(sig) != dsqSignatureBytes {
		return nil, codecErr(ErrInvalidLength, "dsq", "vchSig", "must be 96 bytes")
	}
	return &DSQMessage{
		Denom:              PSDenoms(denom),
		MasternodeOutPoint: outpoint,
		Time:               t,
		Ready:              readyByte != 0,
		Signature:          append([]byte{}, sig...),
	}, nil
}

// MsgHash computes the queue signing digest: double-SHA-256(LE32(nDenom) ||
// outpoint || LE64(nTime) || u8(fReady)).
func (m *DSQMessage) MsgHash() [32]byte {
	buf := appendI32le(nil, int32(m.Denom))
	buf = txmodel.EncodeOutPoint(buf, m.MasternodeOutPoint)
	buf = appendI64le(buf, m.Time)
	if m.Ready {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return doubleSHA256(buf)
}

// DSIMessage is the `dsi` payload: a client's mixing inputs/outputs entry.
type DSIMessage struct {
	Inputs       []txmodel.TxIn
	CollateralTx *txmodel.Transaction
	Outputs      []txmodel.TxOut
}

func (m *DSIMessage) Encode() ([]byte, error) {
	if len(m.Inputs) > PrivatesendEntryMaxSize {
		return nil, codecErr(ErrTooLarge, "dsi", "vecTxDSIn", "exceeds PRIVATESEND_ENTRY_MAX_SIZE")
	}
	if len(m.Outputs) > PrivatesendEntryMaxSize {
		return nil, codecErr(ErrTooLarge, "dsi", "vecTxDSOut", "exceeds PRIVATESEND_ENTRY_MAX_SIZE")
	}
	out := appendCompactSize(nil, uint64(len(m.Inputs)))
	for _, in := range m.Inputs {
		out = encodeTxIn(out, in)
	}
	out = append(out, m.CollateralTx.Encode()...)
	out = appendCompactSize(out, uint64(len(m.Outputs)))
	for _, o := range m.Outputs {
		out = encodeTxOut(out, o)
	}
	return out, nil
}

func DecodeDSIMessage(b []byte) (*DSIMessage, error) {
	off := 0
	inCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	if inCount > PrivatesendEntryMaxSize {
		return nil, codecErr(ErrTooLarge, "dsi", "vecTxDSIn", "exceeds PRIVATESEND_ENTRY_MAX_SIZE")
	}
	inputs := make([]txmodel.TxIn, 0, inCount)
	for i := uint64(0); i < inCount; i++ {
		in, err := decodeTxIn(b, &off)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	tx, n, err := txmodel.Decode(b[off:])
	if err != nil {
		return nil, err
	}
	off += n
	outCount, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	if outCount > PrivatesendEntryMaxSize {
		return nil, codecErr(ErrTooLarge, "dsi", "vecTxDSOut", "exceeds PRIVATESEND_ENTRY_MAX_SIZE")
	}
	outputs := make([]txmodel.TxOut, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		o, err := decodeTxOut(b, &off)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, o)
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "dsi", "", "bytes remain")
	}
	return &DSIMessage{Inputs: inputs, CollateralTx: tx, Outputs: outputs}, nil
}

// DSFMessage is the `dsf` payload: the masternode's proposed final
// transaction for the pool identified by sessionID.
type DSFMessage struct {
	SessionID int32
	FinalTx   *txmodel.Transaction
}

// Command implements Message directly on the decoded pointer, so a dsf
// relayed to a mixing session can be type-switched on without an
// intermediate wrapper.
func (m *DSFMessage) Command() string { return "dsf" }

func (m *DSFMessage) Encode() []byte {
	out := appendI32le(nil, m.SessionID)
	return append(out, m.FinalTx.Encode()...)
}

func DecodeDSFMessage(b []byte) (*DSFMessage, error) {
	off := 0
	sessionID, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	tx, n, err := txmodel.Decode(b[off:])
	if err != nil {
		return nil, err
	}
	off += n
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "dsf", "", "bytes remain")
	}
	return &DSFMessage{SessionID: sessionID, FinalTx: tx}, nil
}

// DSSMessage is the `dss` payload: a client's signed inputs for the final
// transaction.
type DSSMessage struct {
	Inputs []txmodel.TxIn
}

func (m *DSSMessage) Encode() ([]byte, error) {
	if len(m.Inputs) > PrivatesendEntryMaxSize {
		return nil, codecErr(ErrTooLarge, "dss", "vecTxDSIn", "exceeds PRIVATESEND_ENTRY_MAX_SIZE")
	}
	out := appendCompactSize(nil, uint64(len(m.Inputs)))
	for _, in := range m.Inputs {
		out = encodeTxIn(out, in)
	}
	return out, nil
}

func DecodeDSSMessage(b []byte) (*DSSMessage, error) {
	off := 0
	count, err := readCompactSize(b, &off)
	if err != nil {
		return nil, err
	}
	if count > PrivatesendEntryMaxSize {
		return nil, codecErr(ErrTooLarge, "dss", "vecTxDSIn", "exceeds PRIVATESEND_ENTRY_MAX_SIZE")
	}
	inputs := make([]txmodel.TxIn, 0, count)
	for i := uint64(0); i < count; i++ {
		in, err := decodeTxIn(b, &off)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "dss", "", "bytes remain")
	}
	return &DSSMessage{Inputs: inputs}, nil
}

// DSCMessage is the `dsc` payload: the masternode's completion notice.
type DSCMessage struct {
	SessionID int32
	MessageID DSMessageIDs
}

// Command implements Message directly on the decoded pointer, so a dsc
// relayed to a mixing session can be type-switched on without an
// intermediate wrapper.
func (m *DSCMessage) Command() string { return "dsc" }

func (m *DSCMessage) Encode() []byte {
	out := appendI32le(nil, m.SessionID)
	return appendI32le(out, int32(m.MessageID))
}

func DecodeDSCMessage(b []byte) (*DSCMessage, error) {
	if len(b) != 8 {
		return nil, codecErr(ErrInvalidLength, "dsc", "", "payload must be 8 bytes")
	}
	off := 0
	sessionID, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	msgID, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	return &DSCMessage{SessionID: sessionID, MessageID: DSMessageIDs(msgID)}, nil
}

// DSSUMessage is the `dssu` payload: a pool status update broadcast by the
// masternode while a session is open.
type DSSUMessage struct {
	SessionID     int32
	State         DSPoolState
	EntriesCount  int32
	StatusUpdate  DSPoolStatusUpdate
	MessageID     DSMessageIDs
}

// Command implements Message directly on the decoded pointer, so a dssu
// relayed to a mixing session can be type-switched on without an
// intermediate wrapper.
func (m *DSSUMessage) Command() string { return "dssu" }

func (m *DSSUMessage) Encode() []byte {
	out := appendI32le(nil, m.SessionID)
	out = appendI32le(out, int32(m.State))
	out = appendI32le(out, m.EntriesCount)
	out = appendI32le(out, int32(m.StatusUpdate))
	return appendI32le(out, int32(m.MessageID))
}

func DecodeDSSUMessage(b []byte) (*DSSUMessage, error) {
	if len(b) != 20 {
		return nil, codecErr(ErrInvalidLength, "dssu", "", "payload must be 20 bytes")
	}
	off := 0
	sessionID, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	state, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	entries, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	statusUpdate, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	msgID, err := readI32le(b, &off)
	if err != nil {
		return nil, err
	}
	return &DSSUMessage{
		SessionID:    sessionID,
		State:        DSPoolState(state),
		EntriesCount: entries,
		StatusUpdate: DSPoolStatusUpdate(statusUpdate),
		MessageID:    DSMessageIDs(msgID),
	}, nil
}

// DSTXMessage wraps a completed mixing transaction with the masternode's
// collateral-backed broadcast signature, per dstx.
type DSTXMessage struct {
	Tx               *txmodel.Transaction
	MasternodeOutPoint txmodel.OutPoint
	Signature        []byte
	SigTime          int64
}

func (m *DSTXMessage) Encode() []byte {
	out := append([]byte{}, m.Tx.Encode()...)
	out = txmodel.EncodeOutPoint(out, m.MasternodeOutPoint)
	out = appendCompactSize(out, uint64(len(m.Signature)))
	out = append(out, m.Signature...)
	return appendI64le(out, m.SigTime)
}

func DecodeDSTXMessage(b []byte) (*DSTXMessage, error) {
	off := 0
	tx, n, err := txmodel.Decode(b)
	if err != nil {
		return nil, err
	}
	off += n
	outpoint, err := txmodel.DecodeOutPoint(b, &off)
	if err != nil {
		return nil, err
	}
	sig, err := readCompactSizeBytes(b, &off, dsqSignatureBytes, "dstx", "vchSig")
	if err != nil {
		return nil, err
	}
	sigTime, err := readI64le(b, &off)
	if err != nil {
		return nil, err
	}
	if off != len(b) {
		return nil, codecErr(ErrTrailingBytes, "dstx", "", "bytes remain")
	}
	return &DSTXMessage{
		Tx:                 tx,
		MasternodeOutPoint: outpoint,
		Signature:          append([]byte{}, sig...),
		SigTime:            sigTime,
	}, nil
}

// MsgHash computes the broadcast-transaction signing digest:
// double-SHA-256(tx || outpoint || LE64(sigTime)).
func (m *DSTXMessage) MsgHash() [32]byte {
	buf := append([]byte{}, m.Tx.Encode()...)
	buf = txmodel.EncodeOutPoint(buf, m.MasternodeOutPoint)
	buf = appendI64le(buf, m.SigTime)
	return doubleSHA256(buf)
}

func encodeTxIn(dst []byte, in txmodel.TxIn) []byte {
	dst = txmodel.EncodeOutPoint(dst, in.PrevOut)
	dst = appendCompactSize(dst, uint64(len(in.ScriptSig)))
	dst = append(dst, in.ScriptSig...)
	return appendU32le(dst, in.Sequence)
}

func decodeTxIn(b []byte, off *int) (txmodel.TxIn, error) {
	prevOut, err := txmodel.DecodeOutPoint(b, off)
	if err != nil {
		return txmodel.TxIn{}, err
	}
	scriptLen, err := readCompactSize(b, off)
	if err != nil {
		return txmodel.TxIn{}, err
	}
	script, err := readBytes(b, off, int(scriptLen))
	if err != nil {
		return txmodel.TxIn{}, err
	}
	seq, err := readU32le(b, off)
	if err != nil {
		return txmodel.TxIn{}, err
	}
	return txmodel.TxIn{PrevOut: prevOut, ScriptSig: append([]byte{}, script...), Sequence: seq}, nil
}

func encodeTxOut(dst []byte, o txmodel.TxOut) []byte {
	dst = appendI64le(dst, o.Value)
	dst = appendCompactSize(dst, uint64(len(o.ScriptPubKey)))
	return append(dst, o.ScriptPubKey...)
}

func decodeTxOut(b []byte, off *int) (txmodel.TxOut, error) {
	value, err := readI64le(b, off)
	if err != nil {
		return txmodel.TxOut{}, err
	}
	scriptLen, err := readCompactSize(b, off)
	if err != nil {
		return txmodel.TxOut{}, err
	}
	script, err := readBytes(b, off, int(scriptLen))
	if err != nil {
		return txmodel.TxOut{}, err
	}
	return txmodel.TxOut{Value: value, ScriptPubKey: append([]byte{}, script...)}, nil
}
