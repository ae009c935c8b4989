package keychain

import (
	"fmt"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/lightningnetwork/lnhd/hdkeychain"
)

const (
	// BIP0043Purpose is the hardened purpose level every key of the ring
	// is derived below.
	BIP0043Purpose = 1017

	// externalBranch is the branch below each family that keys are
	// handed out from.
	externalBranch = 0
)

var (
	// MaxKeyRangeScan is the number of indexes DerivePrivKey searches
	// when only a public key is known.
	MaxKeyRangeScan = 100000

	// ErrCannotDerivePrivKey is returned when the public key scan of
	// DerivePrivKey finds no match.
	ErrCannotDerivePrivKey = fmt.Errorf("unable to derive private key")
)

// KeyFamily represents a "family" of keys. Families are distinct branches
// within the key tree of a master key, so that all keys of a use case can be
// restored from the master seed alone.
//
// The key derivation in this file follows the following hierarchy based on
// BIP43:
//
//   - m/1017'/coinType'/keyFamily'/0/index
type KeyFamily uint32

const (
	// KeyFamilyDefault is the family of general purpose keys.
	KeyFamilyDefault KeyFamily = 0

	// KeyFamilyIdentity is the family of long lived keys advertised to
	// identify the key holder.
	KeyFamilyIdentity KeyFamily = 1

	// KeyFamilyEncryption is the family of keys used to derive shared
	// secrets for encrypting data, mostly through ECDH.
	KeyFamilyEncryption KeyFamily = 2

	// KeyFamilySession is the family of short lived keys, rotated for
	// every new session.
	KeyFamilySession KeyFamily = 3
)

// KnownKeyFamilies is a slice of all the key families defined in this
// package.
var KnownKeyFamilies = []KeyFamily{
	KeyFamilyDefault,
	KeyFamilyIdentity,
	KeyFamilyEncryption,
	KeyFamilySession,
}

// String returns a human readable name of the family.
func (k KeyFamily) String() string {
	switch k {
	case KeyFamilyDefault:
		return "default"
	case KeyFamilyIdentity:
		return "identity"
	case KeyFamilyEncryption:
		return "encryption"
	case KeyFamilySession:
		return "session"
	default:
		return fmt.Sprintf("family(%d)", uint32(k))
	}
}

// KeyLocator identifies a key of the ring by its family and index, which
// together with the coin type fix the path
//
//   - m/1017'/coinType'/keyFamily'/0/index
type KeyLocator struct {
	Family KeyFamily
	Index  uint32
}

// IsEmpty reports whether the locator is the zero locator, which is also
// what a key learned from elsewhere carries.
func (k KeyLocator) IsEmpty() bool {
	return k.Family == 0 && k.Index == 0
}

// KeyPath returns the full derivation path of the key identified by loc for
// the given coin type.
func KeyPath(coinType uint32, loc KeyLocator) hdkeychain.Path {
	return hdkeychain.Path{
		hdkeychain.HardenedKeyStart + BIP0043Purpose,
		hdkeychain.HardenedKeyStart + coinType,
		hdkeychain.HardenedKeyStart + uint32(loc.Family),
		externalBranch,
		loc.Index,
	}
}

// KeyDescriptor is a KeyLocator optionally accompanied by the public key it
// resolves to. A descriptor with an empty locator needs the public key.
type KeyDescriptor struct {
	KeyLocator

	// PubKey is nil when only the locator is known.
	PubKey *eckey.PublicKey
}

// KeyRing derives public keys by locator. Below the family level only public
// derivation is involved.
type KeyRing interface {
	// DeriveNextKey returns the key at the next unused index of keyFam.
	DeriveNextKey(keyFam KeyFamily) (KeyDescriptor, error)

	// DeriveKey returns the key at keyLoc.
	DeriveKey(keyLoc KeyLocator) (KeyDescriptor, error)
}

// SecretKeyRing is a KeyRing that also hands out private keys.
type SecretKeyRing interface {
	KeyRing

	ECDHRing

	// DerivePrivKey returns the private key of keyDesc. If only the family
	// and the public key are known, the first MaxKeyRangeScan indexes of
	// the family are searched for it.
	DerivePrivKey(keyDesc KeyDescriptor) (*eckey.PrivateKey, error)
}

// ECDHRing computes shared secrets with keys of the ring.
type ECDHRing interface {
	// ECDH returns sha256 of the compressed point k*P, where k is the
	// private key of keyDesc and P is pubKey.
	ECDH(keyDesc KeyDescriptor, pubKey *eckey.PublicKey) ([32]byte, error)
}

// SingleKeyECDH computes shared secrets with one fixed private key.
type SingleKeyECDH interface {
	// PubKey returns the public key of the wrapped private key.
	PubKey() *eckey.PublicKey

	// ECDH returns sha256 of the compressed point k*P for the wrapped
	// key k.
	ECDH(pubKey *eckey.PublicKey) ([32]byte, error)
}
