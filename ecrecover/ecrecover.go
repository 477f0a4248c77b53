// Package ecrecover verifies the legacy ("old-style") spork and message
// signatures the Dash reference client falls back to when new_sigs is not
// active: an ECDSA signature over a double-SHA-256 digest, recovered to a
// public key and compared against a known key's hash160/address, the same
// way dash_peer.py's verify_message_hash uses ECPubkey.from_signature65.
package ecrecover

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/EXCCoin/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // address hashing requires the legacy primitive
)

// ErrSignatureLength is returned when a signature is not the 65-byte
// recoverable-ECDSA form Dash's legacy signing scheme uses.
var ErrSignatureLength = errors.New("ecrecover: signature must be 65 bytes")

// RecoverCompact recovers the public key that produced sig over hash, where
// sig is the 65-byte {recovery_id+27(+4), r, s} compact form used by the
// legacy "Bitcoin Signed Message" scheme.
func RecoverCompact(sig []byte, hash [32]byte) (*secp256k1.PublicKey, bool, error) {
	if len(sig) != 65 {
		return nil, false, ErrSignatureLength
	}
	pub, wasCompressed, err := ecdsa.RecoverCompact(sig, hash[:])
	if err != nil {
		return nil, false, fmt.Errorf("ecrecover: recover: %w", err)
	}
	return pub, wasCompressed, nil
}

// Hash160 computes RIPEMD-160(SHA-256(b)), the digest Dash/Bitcoin-family
// addresses are derived from.
func Hash160(b []byte) [20]byte {
	sum := sha256.Sum256(b)
	h := ripemd160.New()
	h.Write(sum[:])
	var out [20]byte
	copy(out[:], h.Sum(nil))
	return out
}

// VerifyAgainstKeyID reports whether sig recovers to a public key whose
// hash160 equals keyID, matching the reference client's verify_message_hash
// check against a known signer's keyID (e.g. a spork key or masternode
// voting key).
func VerifyAgainstKeyID(sig []byte, hash [32]byte, keyID [20]byte) bool {
	pub, compressed, err := RecoverCompact(sig, hash)
	if err != nil {
		return false
	}
	var encoded []byte
	if compressed {
		encoded = pub.SerializeCompressed()
	} else {
		encoded = pub.SerializeUncompressed()
	}
	return Hash160(encoded) == keyID
}

// Base58CheckAddress renders a hash160 as a base58check address with the
// given version byte, using the same encoding the reference client relies
// on for human-readable masternode/spork key logging.
func Base58CheckAddress(version byte, hash160 [20]byte) string {
	payload := append([]byte{version}, hash160[:]...)
	chk := sha256.Sum256(payload)
	chk = sha256.Sum256(chk[:])
	payload = append(payload, chk[:4]...)
	return base58.Encode(payload)
}
