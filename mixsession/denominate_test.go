package mixsession

import (
	"context"
	"testing"
	"time"

	"github.com/dashpay/dash-p2p-core/txmodel"
	"github.com/dashpay/dash-p2p-core/wire"
)

func newTestSession() *Session {
	return &Session{
		Denom: wire.Denom1,
		queue: make(chan sessionMsg, 4),
	}
}

func TestReadNextMsgDecodesDSSUAndLocksSessionID(t *testing.T) {
	s := newTestSession()
	s.queue <- sessionMsg{msg: &wire.DSSUMessage{
		SessionID:    5,
		StatusUpdate: wire.PoolStatusAccepted,
		MessageID:    wire.MsgEntriesAdded,
	}}

	res, err := s.ReadNextMsg(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("ReadNextMsg: %v", err)
	}
	if res.Command != "dssu" {
		t.Fatalf("expected dssu, got %q", res.Command)
	}
	if s.sessionID != 5 {
		t.Fatalf("expected session to lock onto session id 5, got %d", s.sessionID)
	}
}

func TestReadNextMsgDSSUMismatchedSessionIDFails(t *testing.T) {
	s := newTestSession()
	s.sessionID = 5
	s.queue <- sessionMsg{msg: &wire.DSSUMessage{SessionID: 9, StatusUpdate: wire.PoolStatusAccepted}}

	_, err := s.ReadNextMsg(context.Background(), time.Second)
	if _, ok := err.(*SessionIDMismatchError); !ok {
		t.Fatalf("expected *SessionIDMismatchError, got %T: %v", err, err)
	}
}

func TestReadNextMsgDSSUQueueFull(t *testing.T) {
	s := newTestSession()
	s.queue <- sessionMsg{msg: &wire.DSSUMessage{
		StatusUpdate: wire.PoolStatusAccepted,
		MessageID:    wire.ErrQueueFull,
	}}

	_, err := s.ReadNextMsg(context.Background(), time.Second)
	if _, ok := err.(MnQueueFull); !ok {
		t.Fatalf("expected MnQueueFull, got %T: %v", err, err)
	}
}

func TestReadNextMsgDSQWrongDenomFails(t *testing.T) {
	s := newTestSession()
	s.queue <- sessionMsg{msg: &wire.DSQMessage{Denom: wire.Denom10, Ready: true}}

	_, err := s.ReadNextMsg(context.Background(), time.Second)
	if _, ok := err.(*WrongDenomError); !ok {
		t.Fatalf("expected *WrongDenomError, got %T: %v", err, err)
	}
}

func TestReadNextMsgDSQRecordsMasternode(t *testing.T) {
	s := newTestSession()
	op := txmodel.OutPoint{Index: 3}
	s.queue <- sessionMsg{msg: &wire.DSQMessage{Denom: wire.Denom1, Ready: true, MasternodeOutPoint: op, Time: 123}}

	res, err := s.ReadNextMsg(context.Background(), time.Second)
	if err != nil {
		t.Fatalf("ReadNextMsg: %v", err)
	}
	if res.Command != "dsq" {
		t.Fatalf("expected dsq, got %q", res.Command)
	}
	if !s.ready || s.mnOutPoint == nil || *s.mnOutPoint != op {
		t.Fatalf("expected session to record the ready masternode outpoint")
	}
}

func TestReadNextMsgTimesOut(t *testing.T) {
	s := newTestSession()
	_, err := s.ReadNextMsg(context.Background(), 20*time.Millisecond)
	if _, ok := err.(MixSessionTimeout); !ok {
		t.Fatalf("expected MixSessionTimeout, got %T: %v", err, err)
	}
}

func TestReadNextMsgPeerClosed(t *testing.T) {
	s := newTestSession()
	s.PeerClosed()
	_, err := s.ReadNextMsg(context.Background(), time.Second)
	if _, ok := err.(MixSessionPeerClosed); !ok {
		t.Fatalf("expected MixSessionPeerClosed, got %T: %v", err, err)
	}
}

func TestVerifyFinalTxAcceptsExactMatch(t *testing.T) {
	s := newTestSession()
	s.sessionID = 1
	in1 := txmodel.OutPoint{Index: 1}
	in2 := txmodel.OutPoint{Index: 2}
	out1 := txmodel.TxOut{Value: 100000, ScriptPubKey: []byte{0x01, 0x02}}
	s.pendingSubmit = &PendingDenominate{
		Inputs:  []txmodel.OutPoint{in1, in2},
		Outputs: []txmodel.TxOut{out1},
	}

	finalTx := &txmodel.Transaction{
		Inputs: []txmodel.TxIn{
			{PrevOut: in1}, {PrevOut: in2}, {PrevOut: txmodel.OutPoint{Index: 99}},
		},
		Outputs: []txmodel.TxOut{out1, {Value: 1, ScriptPubKey: []byte{0xff}}},
	}

	res, err := s.onDSF(&wire.DSFMessage{SessionID: 1, FinalTx: finalTx})
	if err != nil {
		t.Fatalf("onDSF: %v", err)
	}
	if res != finalTx {
		t.Fatal("expected onDSF to return the verified final transaction")
	}
}

func TestVerifyFinalTxRejectsMissingInput(t *testing.T) {
	s := newTestSession()
	s.sessionID = 1
	in1 := txmodel.OutPoint{Index: 1}
	in2 := txmodel.OutPoint{Index: 2}
	s.pendingSubmit = &PendingDenominate{Inputs: []txmodel.OutPoint{in1, in2}}

	finalTx := &txmodel.Transaction{Inputs: []txmodel.TxIn{{PrevOut: in1}}}
	_, err := s.onDSF(&wire.DSFMessage{SessionID: 1, FinalTx: finalTx})
	if err != errWrongFinalTx {
		t.Fatalf("expected errWrongFinalTx, got %v", err)
	}
}

func TestOnDSCRejectsNonSuccessMessageID(t *testing.T) {
	s := newTestSession()
	s.sessionID = 1
	err := s.onDSC(&wire.DSCMessage{SessionID: 1, MessageID: wire.ErrSession})
	re, ok := err.(*RejectedError)
	if !ok {
		t.Fatalf("expected *RejectedError, got %T: %v", err, err)
	}
	if re.MessageID != wire.ErrSession {
		t.Fatalf("expected ErrSession, got %v", re.MessageID)
	}
}

func TestOnDSCAcceptsSuccess(t *testing.T) {
	s := newTestSession()
	s.sessionID = 1
	if err := s.onDSC(&wire.DSCMessage{SessionID: 1, MessageID: wire.MsgSuccess}); err != nil {
		t.Fatalf("onDSC: %v", err)
	}
}
