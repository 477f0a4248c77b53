package peerconn

import (
	"net"
	"reflect"
	"testing"

	"github.com/dashpay/dash-p2p-core/txmodel"
	"github.com/dashpay/dash-p2p-core/wire"
)

// recordingSession is a MixSession double that records exactly what was
// delivered to it, so these tests can assert on the concrete message type a
// real mixsession.Session would type-switch on in its handle method.
type recordingSession struct {
	delivered []wire.Message
	errs      []error
	closed    bool
}

func (r *recordingSession) Deliver(msg wire.Message) { r.delivered = append(r.delivered, msg) }
func (r *recordingSession) DeliverError(err error)   { r.errs = append(r.errs, err) }
func (r *recordingSession) PeerClosed()              { r.closed = true }

func newTestPeer(t *testing.T) *Peer {
	t.Helper()
	client, remote := net.Pipe()
	t.Cleanup(func() {
		client.Close()
		remote.Close()
	})
	return newPeer(client, Config{})
}

// TestHandleDSQDeliversBareMessage drives a ready dsq through handleDSQ, the
// same path processMsgs takes, and checks the attached session receives the
// bare *wire.DSQMessage: exactly the type mixsession.Session.handle type
// switches on, with no wrapper in between.
func TestHandleDSQDeliversBareMessage(t *testing.T) {
	p := newTestPeer(t)
	sess := &recordingSession{}
	p.AttachSession(sess)

	msg := &wire.DSQMessage{Denom: wire.Denom1, Ready: true, Time: 123}
	if err := p.handleDSQ(msg); err != nil {
		t.Fatalf("handleDSQ: %v", err)
	}

	if len(sess.delivered) != 1 {
		t.Fatalf("expected exactly one delivery, got %d", len(sess.delivered))
	}
	got, ok := sess.delivered[0].(*wire.DSQMessage)
	if !ok {
		t.Fatalf("expected bare *wire.DSQMessage, got %T", sess.delivered[0])
	}
	if got != msg {
		t.Fatalf("expected the exact same pointer delivered, got a copy")
	}
}

// TestForwardToSessionDeliversBareMessages drives dssu/dsf/dsc envelopes
// through forwardToSession, the path handleEnvelope uses, and checks the
// attached session receives the bare decoded pointers rather than the
// unexported wrapper types wire.DecodePayload used to return for these
// commands.
func TestForwardToSessionDeliversBareMessages(t *testing.T) {
	finalTx := &txmodel.Transaction{
		Version: 1,
		Inputs:  []txmodel.TxIn{{PrevOut: txmodel.OutPoint{Index: 1}, Sequence: 0xffffffff}},
		Outputs: []txmodel.TxOut{{Value: 100000, ScriptPubKey: []byte{0x76, 0xa9}}},
	}
	dssuPayload := (&wire.DSSUMessage{SessionID: 1, State: wire.PoolStateSigning}).Encode()
	dsfPayload := (&wire.DSFMessage{SessionID: 1, FinalTx: finalTx}).Encode()
	dscPayload := (&wire.DSCMessage{SessionID: 1, MessageID: wire.MsgSuccess}).Encode()

	cases := []struct {
		command  string
		payload  []byte
		wantType reflect.Type
	}{
		{"dssu", dssuPayload, reflect.TypeOf(&wire.DSSUMessage{})},
		{"dsf", dsfPayload, reflect.TypeOf(&wire.DSFMessage{})},
		{"dsc", dscPayload, reflect.TypeOf(&wire.DSCMessage{})},
	}

	for _, tc := range cases {
		p := newTestPeer(t)
		sess := &recordingSession{}
		p.AttachSession(sess)

		env := &wire.Envelope{Command: tc.command, Payload: tc.payload}
		if err := p.forwardToSession(env); err != nil {
			t.Fatalf("forwardToSession(%s): %v", tc.command, err)
		}
		if len(sess.delivered) != 1 {
			t.Fatalf("%s: expected exactly one delivery, got %d", tc.command, len(sess.delivered))
		}
		if got := reflect.TypeOf(sess.delivered[0]); got != tc.wantType {
			t.Fatalf("%s: expected bare %v, got %v", tc.command, tc.wantType, got)
		}
	}
}
