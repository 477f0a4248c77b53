// Package blsverify verifies the 96-byte BLS12-381 signatures carried by
// qfcommit, dsq, dstx, islock and clsig, using the same scheme the
// reference client's PublicKey.from_bytes / Signature.from_bytes /
// AggregationInfo.from_msg_hash / verify chain implements: a single
// signer's public key (48 bytes, G1) verifying a single signature
// (96 bytes, G2) over one message hash, min-pubkey-size ("short
// signature") mode.
package blsverify

import (
	"errors"
	"fmt"

	bls "github.com/kilic/bls12-381"
)

// ErrKeyLength is returned when a public key is not the 48-byte G1 form.
var ErrKeyLength = errors.New("blsverify: public key must be 48 bytes")

// ErrSigLength is returned when a signature is not the 96-byte G2 form.
var ErrSigLength = errors.New("blsverify: signature must be 96 bytes")

// Verify reports whether sig is a valid BLS signature by pubKey over msg,
// using the standard (non-augmented) basic signature scheme with public keys
// in G1 and signatures in G2: e(G1gen, sig) == e(pubKey, H(msg)).
func Verify(pubKey [48]byte, msg [32]byte, sig [96]byte) (bool, error) {
	g1 := bls.NewG1()
	pub, err := g1.FromCompressed(pubKey[:])
	if err != nil {
		return false, fmt.Errorf("blsverify: decode public key: %w", err)
	}

	g2 := bls.NewG2()
	sigPoint, err := g2.FromCompressed(sig[:])
	if err != nil {
		return false, fmt.Errorf("blsverify: decode signature: %w", err)
	}

	hashPoint, err := g2.HashToCurve(msg[:], domainSeparationTag)
	if err != nil {
		return false, fmt.Errorf("blsverify: hash to curve: %w", err)
	}

	engine := bls.NewEngine()
	engine.AddPair(g1.One(), sigPoint)
	negPub := g1.New()
	g1.Neg(negPub, pub)
	engine.AddPair(negPub, hashPoint)
	return engine.Result().IsOne(), nil
}

// domainSeparationTag matches the reference client's BLS ciphersuite for
// signing PrivateSend/LLMQ messages.
var domainSeparationTag = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")
