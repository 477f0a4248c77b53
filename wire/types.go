package wire

// DashType identifies the kind of object referenced by an inventory vector
// (the `type` field of an `inv`/`getdata`/`notfound` entry).
type DashType uint32

const (
	MsgTx                       DashType = 1
	MsgBlock                    DashType = 2
	MsgFilteredBlock             DashType = 3
	MsgTxLockRequest            DashType = 4
	MsgTxLockVote               DashType = 5
	MsgSpork                    DashType = 6
	MsgMasternodePaymentVote    DashType = 7
	MsgMasternodePaymentBlock   DashType = 8
	MsgBudgetVote               DashType = 9
	MsgBudgetProposal           DashType = 10
	MsgBudgetFinalized          DashType = 11
	MsgBudgetFinalizedVote      DashType = 12
	MsgMasternodeQuorum         DashType = 13
	MsgMasternodeAnnounce       DashType = 14
	MsgMasternodePing           DashType = 15
	MsgDSTx                     DashType = 16
	MsgGovernanceObject         DashType = 17
	MsgGovernanceObjectVote     DashType = 18
	MsgMasternodeVerify         DashType = 19
	MsgCmpctBlock               DashType = 20
	MsgQuorumFinalCommitment    DashType = 21
	MsgQuorumDummyCommitment    DashType = 22
	MsgQuorumContrib            DashType = 23
	MsgQuorumComplaint          DashType = 24
	MsgQuorumJustification      DashType = 25
	MsgQuorumPrematureCommitment DashType = 26
	MsgQuorumDebugStatus        DashType = 27
	MsgQuorumRecoveredSig       DashType = 28
	MsgCLSig                    DashType = 29 // the hash is a ChainLock signature
	MsgISLock                   DashType = 30 // the hash is an LLMQ-based InstantSend lock
)

// SporkID enumerates the administratively-toggled network feature flags
// carried by a `spork` message. Applying a spork's value is the host's
// responsibility; this package only verifies the message's signature.
type SporkID int32

const (
	Spork2InstantSendEnabled           SporkID = 10001
	Spork3InstantSendBlockFiltering    SporkID = 10002
	Spork5InstantSendMaxValue          SporkID = 10004
	Spork6NewSigs                      SporkID = 10005
	Spork9SuperblocksEnabled           SporkID = 10008
	Spork12ReconsiderBlocks            SporkID = 10011
	Spork15DeterministicMNsEnabled     SporkID = 10014
	Spork16InstantSendAutolocks        SporkID = 10015
	Spork17QuorumDKGEnabled            SporkID = 10016
	Spork19ChainLocksEnabled           SporkID = 10018
	Spork20InstantSendLLMQBased        SporkID = 10019
)

// KnownSpork reports whether id is one of the SporkID values this module
// recognizes, mirroring the original client's IntEnumWithCheck guard.
func KnownSpork(id SporkID) bool {
	switch id {
	case Spork2InstantSendEnabled, Spork3InstantSendBlockFiltering,
		Spork5InstantSendMaxValue, Spork6NewSigs, Spork9SuperblocksEnabled,
		Spork12ReconsiderBlocks, Spork15DeterministicMNsEnabled,
		Spork16InstantSendAutolocks, Spork17QuorumDKGEnabled,
		Spork19ChainLocksEnabled, Spork20InstantSendLLMQBased:
		return true
	default:
		return false
	}
}

// LLMQType identifies a Long-Living Masternode Quorum configuration.
type LLMQType uint8

const (
	LLMQ_50_60  LLMQType = 1
	LLMQ_400_60 LLMQType = 2
	LLMQ_400_85 LLMQType = 3
	LLMQ_5_60   LLMQType = 100 // testing only
)

// DSPoolState is the PrivateSend mixing-pool state carried by `dssu`.
type DSPoolState int32

const (
	PoolStateIdle             DSPoolState = 0
	PoolStateQueue            DSPoolState = 1
	PoolStateAcceptingEntries DSPoolState = 2
	PoolStateSigning          DSPoolState = 3
	PoolStateError            DSPoolState = 4
)

var dsPoolStateStr = map[DSPoolState]string{
	PoolStateIdle:             "IDLE",
	PoolStateQueue:            "QUEUE",
	PoolStateAcceptingEntries: "ACCEPTING_ENTRIES",
	PoolStateSigning:          "SIGNING",
	PoolStateError:            "ERROR",
}

// String renders a DSPoolState the way the reference client logs it.
func (s DSPoolState) String() string {
	if str, ok := dsPoolStateStr[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// DSPoolStatusUpdate is the outcome flag carried by `dssu`.
type DSPoolStatusUpdate int32

const (
	PoolStatusRejected DSPoolStatusUpdate = 0
	PoolStatusAccepted DSPoolStatusUpdate = 1
)

// DSMessageIDs enumerates the PrivateSend protocol message/error codes
// carried by `dssu` and `dsc`.
type DSMessageIDs int32

const (
	ErrAlreadyHave        DSMessageIDs = 0x00
	ErrDenom              DSMessageIDs = 0x01
	ErrEntriesFull        DSMessageIDs = 0x02
	ErrExistingTx         DSMessageIDs = 0x03
	ErrFees               DSMessageIDs = 0x04
	ErrInvalidCollateral  DSMessageIDs = 0x05
	ErrInvalidInput       DSMessageIDs = 0x06
	ErrInvalidScript      DSMessageIDs = 0x07
	ErrInvalidTx          DSMessageIDs = 0x08
	ErrMaximum            DSMessageIDs = 0x09
	ErrMnList             DSMessageIDs = 0x0a
	ErrMode               DSMessageIDs = 0x0b
	ErrNonStandardPubkey  DSMessageIDs = 0x0c
	ErrNotAMn             DSMessageIDs = 0x0d // not used
	ErrQueueFull          DSMessageIDs = 0x0e
	ErrRecent             DSMessageIDs = 0x0f
	ErrSession            DSMessageIDs = 0x10
	ErrMissingTx          DSMessageIDs = 0x11
	ErrVersion            DSMessageIDs = 0x12
	MsgNoErr             DSMessageIDs = 0x13
	MsgSuccess           DSMessageIDs = 0x14
	MsgEntriesAdded      DSMessageIDs = 0x15
	ErrSizeMismatch       DSMessageIDs = 0x16
)

var dsMsgStr = map[DSMessageIDs]string{
	ErrAlreadyHave:       "Already have that input.",
	ErrDenom:             "No matching denominations found for mixing.",
	ErrEntriesFull:       "Entries are full.",
	ErrExistingTx:        "Not compatible with existing transactions.",
	ErrFees:              "Transaction fees are too high.",
	ErrInvalidCollateral: "Collateral not valid.",
	ErrInvalidInput:      "Input is not valid.",
	ErrInvalidScript:     "Invalid script detected.",
	ErrInvalidTx:         "Transaction not valid.",
	ErrMaximum:           "Entry exceeds maximum size.",
	ErrMnList:            "Not in the Masternode list.",
	ErrMode:              "Incompatible mode.",
	ErrNonStandardPubkey: "Non-standard public key detected.",
	ErrNotAMn:            "This is not a Masternode.",
	ErrQueueFull:         "Masternode queue is full.",
	ErrRecent:            "Last PrivateSend was too recent.",
	ErrSession:           "Session not complete!",
	ErrMissingTx:         "Missing input transaction information.",
	ErrVersion:           "Incompatible version.",
	MsgNoErr:             "No errors detected.",
	MsgSuccess:           "Transaction created successfully.",
	MsgEntriesAdded:      "Your entries added successfully.",
	ErrSizeMismatch:      "Inputs vs outputs size mismatch.",
}

// String renders a DSMessageIDs the way the reference client displays it
// to the user.
func (m DSMessageIDs) String() string {
	if str, ok := dsMsgStr[m]; ok {
		return str
	}
	return "Unknown response."
}

// PSDenoms are the PrivateSend denomination bit values named in a `dsq`'s
// or `dsa`'s `nDenom` field.
type PSDenoms int32

const (
	Denom10    PSDenoms = 1
	Denom1     PSDenoms = 2
	Denom0_1   PSDenoms = 4
	Denom0_01  PSDenoms = 8
	Denom0_001 PSDenoms = 16
)
