// Package netparams defines the network-specific constants (magic bytes,
// default port, protocol version, user-agent) that parameterize the wire
// codec and peer connection for Dash mainnet, testnet, and devnet, in the
// same spirit as dcrd/btcd-style chaincfg network parameter tables.
package netparams

import "github.com/dashpay/dash-p2p-core/wire"

// DashProtocolVersion is the protocol version this module speaks.
const DashProtocolVersion = 70216

// Params describes one Dash network's wire-level identity.
type Params struct {
	Name        string
	Magic       wire.Magic
	DefaultPort uint16
}

// MainNetParams, TestNetParams, and DevNetParams mirror Dash Core's
// chainparams.cpp pchMessageStart values and default ports.
var (
	MainNetParams = Params{
		Name:        "mainnet",
		Magic:       wire.Magic{0xbf, 0x0c, 0x6b, 0xbd},
		DefaultPort: 9999,
	}
	TestNetParams = Params{
		Name:        "testnet",
		Magic:       wire.Magic{0xce, 0xe2, 0xca, 0xff},
		DefaultPort: 19999,
	}
	DevNetParams = Params{
		Name:        "devnet",
		Magic:       wire.Magic{0xe2, 0xca, 0xff, 0xce},
		DefaultPort: 19799,
	}
)

// ByName looks up a network's Params by its short name, as accepted by the
// --network flag of cmd/dash-p2p-probe.
func ByName(name string) (Params, bool) {
	switch name {
	case "mainnet":
		return MainNetParams, true
	case "testnet":
		return TestNetParams, true
	case "devnet":
		return DevNetParams, true
	default:
		return Params{}, false
	}
}

// UserAgent renders the local user-agent string, following the
// "/Dash Electrum:<VERSION>/" convention with this module's own identity.
func UserAgent(version string) string {
	return "/dash-p2p-core:" + version + "/"
}

// MinPeersLimit and MaxPeersLimit bound the accepted range of a caller's
// configured max_peers.
const (
	MinPeersLimit = 1
	MaxPeersLimit = 64
)

// PeerConfig configures one outbound connection attempt.
type PeerConfig struct {
	Network          Params
	Address          string
	UserAgent        string
	LocalStartHeight int32
	NetworkTimeoutS  int
}

// RuntimeConfig is the process-wide configuration surface: network
// selection, static peers, use_static_peers, and max_peers.
type RuntimeConfig struct {
	Network        string
	StaticPeers    []string
	UseStaticPeers bool
	MaxPeers       int
	LogLevel       string
}

// Validate checks RuntimeConfig invariants that are cheap to check eagerly
// rather than deep within connection setup.
func (c RuntimeConfig) Validate() error {
	if _, ok := ByName(c.Network); !ok {
		return errUnknownNetwork(c.Network)
	}
	if c.MaxPeers < MinPeersLimit || c.MaxPeers > MaxPeersLimit {
		return errMaxPeersOutOfRange(c.MaxPeers)
	}
	return nil
}

type unknownNetworkError string

func (e unknownNetworkError) Error() string { return "netparams: unknown network " + string(e) }

func errUnknownNetwork(name string) error { return unknownNetworkError(name) }

type maxPeersOutOfRangeError struct{ value int }

func (e maxPeersOutOfRangeError) Error() string {
	return "netparams: max_peers out of range"
}

func errMaxPeersOutOfRange(v int) error { return maxPeersOutOfRangeError{value: v} }
