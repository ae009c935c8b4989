package keychain

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnhd/eckey"
)

// NewPubKeyECDH wraps the given key of the key ring so it adheres to the
// SingleKeyECDH interface.
func NewPubKeyECDH(keyDesc KeyDescriptor, ecdh ECDHRing) *PubKeyECDH {
	return &PubKeyECDH{
		keyDesc: keyDesc,
		ecdh:    ecdh,
	}
}

// PubKeyECDH is a SingleKeyECDH for one key of an ECDHRing. The private key
// never leaves the ring.
type PubKeyECDH struct {
	keyDesc KeyDescriptor
	ecdh    ECDHRing
}

// PubKey returns the public key of the private key that is abstracted away by
// the interface.
//
// NOTE: This is part of the SingleKeyECDH interface.
func (p *PubKeyECDH) PubKey() *eckey.PublicKey {
	return p.keyDesc.PubKey
}

// ECDH performs the shared key generation with the private key held by the
// key ring.
//
// NOTE: This is part of the SingleKeyECDH interface.
func (p *PubKeyECDH) ECDH(pubKey *eckey.PublicKey) ([32]byte, error) {
	return p.ecdh.ECDH(p.keyDesc, pubKey)
}

// PrivKeyECDH is a SingleKeyECDH over a private key held in memory, such as
// an ephemeral key.
type PrivKeyECDH struct {
	PrivKey *eckey.PrivateKey
}

// PubKey returns the compressed public key of the wrapped private key.
//
// NOTE: This is part of the SingleKeyECDH interface.
func (p *PrivKeyECDH) PubKey() *eckey.PublicKey {
	return eckey.PublicKeyFromPrivate(p.PrivKey, true)
}

// ECDH returns sha256 of the compressed encoding of k*P, with k the wrapped
// key and P the remote key. The encoding of pub does not affect the result.
//
// NOTE: This is part of the SingleKeyECDH interface.
func (p *PrivKeyECDH) ECDH(pub *eckey.PublicKey) ([32]byte, error) {
	var (
		pubJacobian btcec.JacobianPoint
		s           btcec.JacobianPoint
	)
	pub.BtcecKey().AsJacobian(&pubJacobian)

	btcec.ScalarMultNonConst(&p.PrivKey.BtcecKey().Key, &pubJacobian, &s)
	s.ToAffine()
	sPubKey := btcec.NewPublicKey(&s.X, &s.Y)

	return sha256.Sum256(sPubKey.SerializeCompressed()), nil
}

var _ SingleKeyECDH = (*PubKeyECDH)(nil)
var _ SingleKeyECDH = (*PrivKeyECDH)(nil)
