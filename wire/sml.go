package wire

import (
	"fmt"
	"net"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// SMLEntry is one Simplified Masternode List entry, as carried in a
// `mnlistdiff.mnList` addition.
type SMLEntry struct {
	ProRegTxHash   [32]byte
	ConfirmedHash  [32]byte
	IPAddress      [16]byte
	Port           uint16
	PubKeyOperator [48]byte // BLS public key
	KeyIDVoting    [20]byte
	IsValid        bool
}

const smlEntryBytes = 32 + 32 + 16 + 2 + 48 + 20 + 1

// IP returns the entry's address as a net.IP (IPv4-mapped IPv6 is unwrapped
// when possible).
func (e *SMLEntry) IP() net.IP {
	ip := net.IP(e.IPAddress[:])
	if v4 := ip.To4(); v4 != nil {
		return v4
	}
	return ip
}

// String renders the entry the way the reference client logs masternodes:
// reversed-hex proRegTxHash, then the address as net.IP prints it (dotted
// IPv4, unbracketed IPv6) and the port.
func (e *SMLEntry) String() string {
	h := chainhash.Hash(e.ProRegTxHash)
	return fmt.Sprintf("%s@%s:%d", h.String(), e.IP(), e.Port)
}

// Encode appends the 151-byte wire encoding of e to dst.
func (e *SMLEntry) Encode(dst []byte) []byte {
	dst = append(dst, e.ProRegTxHash[:]...)
	dst = append(dst, e.ConfirmedHash[:]...)
	dst = append(dst, e.IPAddress[:]...)
	dst = appendPortBE(dst, e.Port)
	dst = append(dst, e.PubKeyOperator[:]...)
	dst = append(dst, e.KeyIDVoting[:]...)
	if e.IsValid {
		dst = append(dst, 1)
	} else {
		dst = append(dst, 0)
	}
	return dst
}

// DecodeSMLEntry decodes one SMLEntry starting at *off.
func DecodeSMLEntry(b []byte, off *int) (*SMLEntry, error) {
	if *off+smlEntryBytes > len(b) {
		return nil, codecErr(ErrTruncated, "mnlistdiff", "mnList", "truncated SMLEntry")
	}
	e := &SMLEntry{}
	if err := readFixed(b, off, e.ProRegTxHash[:]); err != nil {
		return nil, err
	}
	if err := readFixed(b, off, e.ConfirmedHash[:]); err != nil {
		return nil, err
	}
	if err := readFixed(b, off, e.IPAddress[:]); err != nil {
		return nil, err
	}
	port, err := readPortBE(b, off)
	if err != nil {
		return nil, err
	}
	e.Port = port
	if err := readFixed(b, off, e.PubKeyOperator[:]); err != nil {
		return nil, err
	}
	if err := readFixed(b, off, e.KeyIDVoting[:]); err != nil {
		return nil, err
	}
	valid, err := readU8(b, off)
	if err != nil {
		return nil, err
	}
	e.IsValid = valid != 0
	return e, nil
}

// DeletedQuorum identifies a quorum removed by a `mnlistdiff`'s optional
// trailing section.
type DeletedQuorum struct {
	LLMQType   LLMQType
	QuorumHash [32]byte
}

func (d *DeletedQuorum) Encode(dst []byte) []byte {
	dst = append(dst, byte(d.LLMQType))
	return append(dst, d.QuorumHash[:]...)
}

func DecodeDeletedQuorum(b []byte, off *int) (*DeletedQuorum, error) {
	t, err := readU8(b, off)
	if err != nil {
		return nil, err
	}
	hashBytes, err := readBytes(b, off, 32)
	if err != nil {
		return nil, err
	}
	d := &DeletedQuorum{LLMQType: LLMQType(t)}
	copy(d.QuorumHash[:], hashBytes)
	return d, nil
}

func appendPortBE(dst []byte, port uint16) []byte {
	return append(dst, byte(port>>8), byte(port))
}

func readPortBE(b []byte, off *int) (uint16, error) {
	raw, err := readBytes(b, off, 2)
	if err != nil {
		return 0, err
	}
	return uint16(raw[0])<<8 | uint16(raw[1]), nil
}
