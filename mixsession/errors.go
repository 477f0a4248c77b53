package mixsession

import (
	"fmt"

	"github.com/dashpay/dash-p2p-core/wire"
)

// MixSessionTimeout is raised when read_next_msg's wait for the next
// masternode message exceeds the session message timeout.
type MixSessionTimeout struct{}

func (MixSessionTimeout) Error() string { return "mixsession: session timeout, reset" }

// MixSessionPeerClosed is raised when the underlying peer connection closes
// while a read_next_msg call is waiting for a message.
type MixSessionPeerClosed struct{}

func (MixSessionPeerClosed) Error() string { return "mixsession: peer connection closed" }

// MnQueueFull is raised when the masternode reports its queue is full via
// dssu with statusUpdate=ACCEPTED and messageID=ERR_QUEUE_FULL.
type MnQueueFull struct{}

func (MnQueueFull) Error() string { return "mixsession: masternode queue is full" }

// RejectedError wraps the DSMessageIDs code a masternode returned alongside
// a rejection, so callers can branch on it without string-matching.
type RejectedError struct {
	MessageID wire.DSMessageIDs
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("mixsession: rejected: %s", e.MessageID)
}

// SessionIDMismatchError is raised when a dssu/dsf/dsc names a session id
// other than the one this session already locked onto.
type SessionIDMismatchError struct {
	Got, Want int32
}

func (e *SessionIDMismatchError) Error() string {
	return fmt.Sprintf("mixsession: wrong session id %d, was %d", e.Got, e.Want)
}

// WrongDenomError is raised when a dsq's denomination does not match the
// session's own.
type WrongDenomError struct {
	Got, Want wire.PSDenoms
}

func (e *WrongDenomError) Error() string {
	return fmt.Sprintf("mixsession: wrong denom in dsq: %d, session denom is %d", e.Got, e.Want)
}

var errWrongFinalTx = fmt.Errorf("mixsession: dsf final transaction does not match submitted inputs/outputs")
