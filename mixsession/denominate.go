package mixsession

import (
	"bytes"
	"context"
	"time"

	"github.com/dashpay/dash-p2p-core/txmodel"
	"github.com/dashpay/dash-p2p-core/wire"
)

// PendingDenominate is the set of inputs and outputs a client submitted in
// a dsi message, kept around so the eventual dsf's txFinal can be checked
// against exactly what was offered.
type PendingDenominate struct {
	Inputs  []txmodel.OutPoint
	Outputs []txmodel.TxOut
}

// SendDSA sends the dsa message requesting to join or create a mixing
// queue at the session's denomination.
func (s *Session) SendDSA(collateralTx *txmodel.Transaction) error {
	msg := &wire.DSAMessage{Denom: s.Denom, CollateralTx: collateralTx}
	return s.peer.SendMsg("dsa", msg.Encode())
}

// SendDSI sends the dsi message offering inputs to mix and destination
// outputs, and records them as s.pendingSubmit so the later dsf can be
// verified against exactly this submission.
func (s *Session) SendDSI(inputs []txmodel.OutPoint, collateralTx *txmodel.Transaction, outputs []txmodel.TxOut) error {
	vecIn := make([]txmodel.TxIn, 0, len(inputs))
	for _, op := range inputs {
		vecIn = append(vecIn, txmodel.TxIn{PrevOut: op, Sequence: 0xffffffff})
	}
	msg := &wire.DSIMessage{Inputs: vecIn, CollateralTx: collateralTx, Outputs: outputs}
	enc, err := msg.Encode()
	if err != nil {
		return err
	}
	s.pendingSubmit = &PendingDenominate{Inputs: inputs, Outputs: outputs}
	return s.peer.SendMsg("dsi", enc)
}

// SendDSS sends the dss message with the final transaction's signed
// inputs, the last step of a successful mix.
func (s *Session) SendDSS(signedInputs []txmodel.TxIn) error {
	msg := &wire.DSSMessage{Inputs: signedInputs}
	enc, err := msg.Encode()
	if err != nil {
		return err
	}
	return s.peer.SendMsg("dss", enc)
}

// ReadResult carries the outcome of one ReadNextMsg call: the command
// string and a command-specific decoded value (nil for dssu/dsq/dsc, the
// verified *txmodel.Transaction for dsf).
type ReadResult struct {
	Command string
	FinalTx *txmodel.Transaction
}

// ReadNextMsg blocks for the next control message routed to this session
// by the attached Peer, applies the matching on_* handler, and returns its
// outcome. A zero timeout uses SessionMsgTimeout.
func (s *Session) ReadNextMsg(ctx context.Context, timeout time.Duration) (ReadResult, error) {
	if timeout <= 0 {
		timeout = SessionMsgTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ReadResult{}, ctx.Err()
	case <-timer.C:
		return ReadResult{}, MixSessionTimeout{}
	case item := <-s.queue:
		if item.peerClose {
			return ReadResult{}, MixSessionPeerClosed{}
		}
		if item.err != nil {
			return ReadResult{}, item.err
		}
		return s.handle(item.msg)
	}
}

func (s *Session) handle(msg wire.Message) (ReadResult, error) {
	switch m := msg.(type) {
	case *wire.DSSUMessage:
		if err := s.onDSSU(m); err != nil {
			return ReadResult{}, err
		}
		return ReadResult{Command: "dssu"}, nil
	case *wire.DSQMessage:
		if err := s.onDSQ(m); err != nil {
			return ReadResult{}, err
		}
		return ReadResult{Command: "dsq"}, nil
	case *wire.DSFMessage:
		tx, err := s.onDSF(m)
		if err != nil {
			return ReadResult{}, err
		}
		return ReadResult{Command: "dsf", FinalTx: tx}, nil
	case *wire.DSCMessage:
		if err := s.onDSC(m); err != nil {
			return ReadResult{}, err
		}
		return ReadResult{Command: "dsc"}, nil
	default:
		return ReadResult{Command: msg.Command()}, nil
	}
}

// onDSSU processes a dssu state update, locking the session onto its first
// reported session id and rejecting any later mismatch.
func (s *Session) onDSSU(m *wire.DSSUMessage) error {
	if s.sessionID == 0 && m.SessionID != 0 {
		s.sessionID = m.SessionID
	}
	if s.sessionID != m.SessionID {
		return &SessionIDMismatchError{Got: m.SessionID, Want: s.sessionID}
	}

	s.state = m.State
	s.msgID = m.MessageID
	s.entriesCount = m.EntriesCount

	switch {
	case m.StatusUpdate == wire.PoolStatusAccepted && m.MessageID == wire.ErrQueueFull:
		return MnQueueFull{}
	case m.StatusUpdate == wire.PoolStatusAccepted:
		return nil
	case m.StatusUpdate == wire.PoolStatusRejected:
		return &RejectedError{MessageID: m.MessageID}
	default:
		return &RejectedError{MessageID: m.MessageID}
	}
}

// onDSQ processes a dsq broadcast relayed to an attached session (always
// fReady, already BLS-verified by the peer's dispatch loop before
// delivery): it records the announcing masternode and rejects anything
// that contradicts the session's own state.
func (s *Session) onDSQ(m *wire.DSQMessage) error {
	if m.Denom != s.Denom {
		return &WrongDenomError{Got: m.Denom, Want: s.Denom}
	}
	if !m.Ready {
		return MixSessionTimeout{} // unreachable in practice: dispatch only forwards ready dsq to a session
	}
	if s.ready {
		return &RejectedError{MessageID: wire.ErrSession}
	}
	outpoint := m.MasternodeOutPoint
	s.mnOutPoint = &outpoint
	s.ready = m.Ready
	s.dsqTime = m.Time
	return nil
}

// onDSF processes the dsf message carrying the masternode's proposed final
// transaction, verifying it exactly matches the session's submitted
// inputs and outputs before returning it for signing.
func (s *Session) onDSF(m *wire.DSFMessage) (*txmodel.Transaction, error) {
	if s.sessionID != m.SessionID {
		return nil, &SessionIDMismatchError{Got: m.SessionID, Want: s.sessionID}
	}
	if !s.verifyFinalTx(m.FinalTx) {
		return nil, errWrongFinalTx
	}
	return m.FinalTx, nil
}

// onDSC processes the dsc completion notice; anything but MsgSuccess is
// surfaced as a RejectedError carrying the reported message id.
func (s *Session) onDSC(m *wire.DSCMessage) error {
	if s.sessionID != m.SessionID {
		return &SessionIDMismatchError{Got: m.SessionID, Want: s.sessionID}
	}
	if m.MessageID != wire.MsgSuccess {
		return &RejectedError{MessageID: m.MessageID}
	}
	return nil
}

// verifyFinalTx checks that every submitted outpoint appears as an input
// of tx and every submitted output appears as an output, with counts
// matching exactly, so a masternode cannot silently add or drop a
// participant's entry.
func (s *Session) verifyFinalTx(tx *txmodel.Transaction) bool {
	if s.pendingSubmit == nil {
		return false
	}
	want := s.pendingSubmit

	icnt := 0
	for _, in := range tx.Inputs {
		for _, wantIn := range want.Inputs {
			if in.PrevOut == wantIn {
				icnt++
				break
			}
		}
	}
	ocnt := 0
	for _, out := range tx.Outputs {
		for _, wantOut := range want.Outputs {
			if out.Value == wantOut.Value && bytes.Equal(out.ScriptPubKey, wantOut.ScriptPubKey) {
				ocnt++
				break
			}
		}
	}
	return icnt == len(want.Inputs) && ocnt == len(want.Outputs)
}
