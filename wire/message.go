package wire

// Message is implemented by every decoded payload type that knows how to
// re-encode itself.
type Message interface {
	Command() string
}

// Opaque holds the raw payload of a command this package does not decode
// structurally (e.g. a forward-compatible message type). Peers that only
// relay traffic can pass these through untouched.
type Opaque struct {
	CommandName string
	Payload     []byte
}

func (o *Opaque) Command() string { return o.CommandName }

// DecodePayload decodes the payload of an envelope whose command has
// already been identified, dispatching on the command string the way the
// reference client's message router does. Unknown commands come back as
// *Opaque rather than an error, so callers can choose to relay, log, or
// discard them.
func DecodePayload(command string, payload []byte) (Message, error) {
	switch command {
	case "version":
		m, err := DecodeVersionMessage(payload)
		if err != nil {
			return nil, err
		}
		return versionMsg{m}, nil
	case "verack":
		if len(payload) != 0 {
			return nil, codecErr(ErrInvalidLength, "verack", "", "payload must be empty")
		}
		return verackMsg{}, nil
	case "ping":
		m, err := DecodePingMessage(payload)
		if err != nil {
			return nil, err
		}
		return pingMsg{m}, nil
	case "pong":
		m, err := DecodePongMessage(payload)
		if err != nil {
			return nil, err
		}
		return pongMsg{m}, nil
	case "addr":
		m, err := DecodeAddrMessage(payload)
		if err != nil {
			return nil, err
		}
		return addrMsg{m}, nil
	case "inv":
		m, err := DecodeInvMessage("inv", payload)
		if err != nil {
			return nil, err
		}
		return invMsg{"inv", m}, nil
	case "getdata":
		m, err := DecodeInvMessage("getdata", payload)
		if err != nil {
			return nil, err
		}
		return invMsg{"getdata", m}, nil
	case "spork":
		m, err := DecodeSporkMessage(payload)
		if err != nil {
			return nil, err
		}
		return sporkMsg{m}, nil
	case "islock":
		m, err := DecodeISLockMessage(payload)
		if err != nil {
			return nil, err
		}
		return islockMsg{m}, nil
	case "clsig":
		m, err := DecodeCLSigMessage(payload)
		if err != nil {
			return nil, err
		}
		return clsigMsg{m}, nil
	case "getmnlistd":
		m, err := DecodeGetMNListDMessage(payload)
		if err != nil {
			return nil, err
		}
		return getMNListDMsg{m}, nil
	case "mnlistdiff":
		m, err := DecodeMNListDiffMessage(payload)
		if err != nil {
			return nil, err
		}
		return mnListDiffMsg{m}, nil
	case "filterload":
		m, err := DecodeFilterLoadMessage(payload)
		if err != nil {
			return nil, err
		}
		return filterLoadMsg{m}, nil
	case "filteradd":
		m, err := DecodeFilterAddMessage(payload)
		if err != nil {
			return nil, err
		}
		return filterAddMsg{m}, nil
	case "senddsq":
		m, err := DecodeSendDSQMessage(payload)
		if err != nil {
			return nil, err
		}
		return sendDSQMsg{m}, nil
	case "dsa":
		m, err := DecodeDSAMessage(payload)
		if err != nil {
			return nil, err
		}
		return dsaMsg{m}, nil
	case "dsq":
		m, err := DecodeDSQMessage(payload)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "dsi":
		m, err := DecodeDSIMessage(payload)
		if err != nil {
			return nil, err
		}
		return dsiMsg{m}, nil
	case "dsf":
		m, err := DecodeDSFMessage(payload)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "dss":
		m, err := DecodeDSSMessage(payload)
		if err != nil {
			return nil, err
		}
		return dssMsg{m}, nil
	case "dsc":
		m, err := DecodeDSCMessage(payload)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "dssu":
		m, err := DecodeDSSUMessage(payload)
		if err != nil {
			return nil, err
		}
		return m, nil
	case "dstx":
		m, err := DecodeDSTXMessage(payload)
		if err != nil {
			return nil, err
		}
		return dstxMsg{m}, nil
	default:
		return &Opaque{CommandName: command, Payload: append([]byte{}, payload...)}, nil
	}
}

// EncodeMessage renders m's payload bytes, ready for EncodeEnvelope.
func EncodeMessage(m Message) ([]byte, error) {
	switch v := m.(type) {
	case versionMsg:
		return v.VersionMessage.Encode()
	case verackMsg:
		return nil, nil
	case pingMsg:
		return v.PingMessage.Encode(), nil
	case pongMsg:
		return v.PongMessage.Encode(), nil
	case addrMsg:
		return v.AddrMessage.Encode()
	case invMsg:
		return v.InvMessage.Encode()
	case sporkMsg:
		return v.SporkMessage.Encode(), nil
	case islockMsg:
		return v.ISLockMessage.Encode(), nil
	case clsigMsg:
		return v.CLSigMessage.Encode(), nil
	case getMNListDMsg:
		return v.GetMNListDMessage.Encode(), nil
	case mnListDiffMsg:
		return v.MNListDiffMessage.Encode()
	case filterLoadMsg:
		return v.FilterLoadMessage.Encode()
	case filterAddMsg:
		return v.FilterAddMessage.Encode()
	case sendDSQMsg:
		return v.SendDSQMessage.Encode(), nil
	case dsaMsg:
		return v.DSAMessage.Encode(), nil
	case *DSQMessage:
		return v.Encode(), nil
	case dsiMsg:
		return v.DSIMessage.Encode()
	case *DSFMessage:
		return v.Encode(), nil
	case dssMsg:
		return v.DSSMessage.Encode()
	case *DSCMessage:
		return v.Encode(), nil
	case *DSSUMessage:
		return v.Encode(), nil
	case dstxMsg:
		return v.DSTXMessage.Encode(), nil
	case *Opaque:
		return v.Payload, nil
	default:
		return nil, codecErr(ErrUnknownCommand, m.Command(), "", "no encoder registered for this message type")
	}
}

// The wrapper types below exist only to attach Command() to the already
// fully-fledged message structs above, so every decoded value satisfies
// Message without each wire type needing to know its own command string.

type versionMsg struct{ *VersionMessage }

func (versionMsg) Command() string { return "version" }

type verackMsg struct{}

func (verackMsg) Command() string { return "verack" }

type pingMsg struct{ *PingMessage }

func (pingMsg) Command() string { return "ping" }

type pongMsg struct{ *PongMessage }

func (pongMsg) Command() string { return "pong" }

type addrMsg struct{ *AddrMessage }

func (addrMsg) Command() string { return "addr" }

type invMsg struct {
	command string
	*InvMessage
}

func (m invMsg) Command() string { return m.command }

type sporkMsg struct{ *SporkMessage }

func (sporkMsg) Command() string { return "spork" }

type islockMsg struct{ *ISLockMessage }

func (islockMsg) Command() string { return "islock" }

type clsigMsg struct{ *CLSigMessage }

func (clsigMsg) Command() string { return "clsig" }

type getMNListDMsg struct{ *GetMNListDMessage }

func (getMNListDMsg) Command() string { return "getmnlistd" }

type mnListDiffMsg struct{ *MNListDiffMessage }

func (mnListDiffMsg) Command() string { return "mnlistdiff" }

type filterLoadMsg struct{ *FilterLoadMessage }

func (filterLoadMsg) Command() string { return "filterload" }

type filterAddMsg struct{ *FilterAddMessage }

func (filterAddMsg) Command() string { return "filteradd" }

type sendDSQMsg struct{ *SendDSQMessage }

func (sendDSQMsg) Command() string { return "senddsq" }

type dsaMsg struct{ *DSAMessage }

func (dsaMsg) Command() string { return "dsa" }

type dsiMsg struct{ *DSIMessage }

func (dsiMsg) Command() string { return "dsi" }

type dssMsg struct{ *DSSMessage }

func (dssMsg) Command() string { return "dss" }

type dstxMsg struct{ *DSTXMessage }

func (dstxMsg) Command() string { return "dstx" }
