package hdkeychain

// References:
//   [BIP32]: BIP0032 - Hierarchical Deterministic Wallets
//   https://github.com/bitcoin/bips/blob/master/bip-0032.mediawiki

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"github.com/lightningnetwork/lnhd/eckey"
)

const (
	// HardenedKeyStart is the index at which a hardened key starts. Each
	// extended key has 2^31 normal child keys and 2^31 hardened child
	// keys, so the range for normal child keys is [0, 2^31 - 1] and the
	// range for hardened child keys is [2^31, 2^32 - 1].
	HardenedKeyStart = 0x80000000 // 2^31

	// MaxDepth is the deepest a key can be. Its children would not fit in
	// the single depth byte of the serialization.
	MaxDepth = 255

	// ChainCodeLen is the length of a chain code.
	ChainCodeLen = 32
)

// ExtendedKey is the behavior shared by extended private and public keys. Both
// variants carry the same chain code, depth, parent fingerprint and child
// number and only differ in their key material.
type ExtendedKey interface {
	// IsPrivate returns true for extended private keys.
	IsPrivate() bool

	// Depth returns the number of derivation steps from the master key.
	Depth() uint8

	// ParentFingerprint returns the fingerprint of the parent's public
	// key, zero for a master key.
	ParentFingerprint() [eckey.FingerprintLen]byte

	// ChildIndex returns the index this key was derived at, hardened
	// indexes included.
	ChildIndex() uint32

	// ChainCode returns the chain code mixed into child derivation.
	ChainCode() [ChainCodeLen]byte

	// Versions returns the version pair used for serialization.
	Versions() Versions

	// PublicKey returns the compressed public key of this node.
	PublicKey() *eckey.PublicKey

	// Fingerprint returns the fingerprint children record as their
	// parent fingerprint.
	Fingerprint() [eckey.FingerprintLen]byte

	// Derive returns the child at the given index.
	Derive(index uint32) (ExtendedKey, error)

	// Neuter returns the public variant of this key.
	Neuter() *ExtendedPublicKey

	// Serialize returns the 78-byte binary form of the key.
	Serialize() [SerializedKeyLen]byte

	// String returns the base58check encoding of Serialize.
	String() string
}

// keyMeta holds the fields common to both variants of an extended key.
type keyMeta struct {
	versions   Versions
	chainCode  [ChainCodeLen]byte
	parentFP   [eckey.FingerprintLen]byte
	childIndex uint32
	depth      uint8
}

// Depth returns the number of derivation steps from the master key.
func (m *keyMeta) Depth() uint8 {
	return m.depth
}

// ParentFingerprint returns the fingerprint of the parent's public key.
func (m *keyMeta) ParentFingerprint() [eckey.FingerprintLen]byte {
	return m.parentFP
}

// ChildIndex returns the index this key was derived at.
func (m *keyMeta) ChildIndex() uint32 {
	return m.childIndex
}

// ChainCode returns the chain code of the key.
func (m *keyMeta) ChainCode() [ChainCodeLen]byte {
	return m.chainCode
}

// Versions returns the version pair used for serialization.
func (m *keyMeta) Versions() Versions {
	return m.versions
}

// checkDepth makes sure the key can still have children.
func (m *keyMeta) checkDepth() error {
	if m.depth == MaxDepth {
		return eckey.NewError(eckey.KindDepthOverflow,
			"key at depth %d cannot be derived from", m.depth)
	}

	return nil
}

// mix runs the keyed hash of a child derivation over data and returns the
// left and right halves, IL and IR in [BIP32].
func (m *keyMeta) mix(data []byte) ([]byte, []byte) {
	mac := hmac.New(sha512.New, m.chainCode[:])
	_, _ = mac.Write(data)
	ilr := mac.Sum(nil)

	return ilr[:len(ilr)/2], ilr[len(ilr)/2:]
}

// child returns the metadata of the child at index of a node whose public
// key is parentPub.
func (m *keyMeta) child(index uint32, parentPub *eckey.PublicKey,
	chainCode []byte) keyMeta {

	child := keyMeta{
		versions:   m.versions,
		parentFP:   eckey.Fingerprint(parentPub),
		childIndex: index,
		depth:      m.depth + 1,
	}
	copy(child.chainCode[:], chainCode)

	return child
}

// childData builds the hash input prefix || ser32(index).
func childData(prefix []byte, index uint32) []byte {
	data := make([]byte, len(prefix)+4)
	copy(data, prefix)
	binary.BigEndian.PutUint32(data[len(prefix):], index)

	return data
}

// ExtendedPrivateKey is an extended key holding a private scalar. It can
// derive both hardened and normal children.
type ExtendedPrivateKey struct {
	keyMeta

	key    *eckey.PrivateKey
	pubKey *eckey.PublicKey
}

// A compile time check to ensure ExtendedPrivateKey satisfies ExtendedKey.
var _ ExtendedKey = (*ExtendedPrivateKey)(nil)

func newExtendedPrivateKey(meta keyMeta,
	key *eckey.PrivateKey) *ExtendedPrivateKey {

	return &ExtendedPrivateKey{
		keyMeta: meta,
		key:     key,
		pubKey:  eckey.PublicKeyFromPrivate(key, true),
	}
}

// IsPrivate returns true.
func (k *ExtendedPrivateKey) IsPrivate() bool {
	return true
}

// PrivateKey returns the private scalar of the node.
func (k *ExtendedPrivateKey) PrivateKey() *eckey.PrivateKey {
	return k.key
}

// PublicKey returns the compressed public key k*G of the node.
func (k *ExtendedPrivateKey) PublicKey() *eckey.PublicKey {
	return k.pubKey
}

// Fingerprint returns the fingerprint of the node's public key.
func (k *ExtendedPrivateKey) Fingerprint() [eckey.FingerprintLen]byte {
	return eckey.Fingerprint(k.pubKey)
}

// Child returns the child private key at index, hardened when index is at
// least HardenedKeyStart.
//
// The child scalar is (IL + k) mod n. If IL is not less than n or the result
// is zero the child is invalid and an error of kind KindInvalidChildKey is
// returned; [BIP32] leaves it to the caller to continue with the next index.
func (k *ExtendedPrivateKey) Child(index uint32) (*ExtendedPrivateKey, error) {
	if err := k.checkDepth(); err != nil {
		return nil, err
	}

	// Hardened children mix in 0x00 || ser256(k), normal children the
	// compressed public key. Both end with ser32(index).
	var data []byte
	if index >= HardenedKeyStart {
		prefix := make([]byte, 1+eckey.ScalarLen)
		copy(prefix[1:], k.key.Bytes())
		data = childData(prefix, index)
	} else {
		data = childData(k.pubKey.Bytes(), index)
	}

	il, ir := k.mix(data)
	childKey, err := eckey.TweakAdd(k.key, il)
	if err != nil {
		log.Debugf("Private child %d of %x is invalid: %v", index,
			k.Fingerprint(), err)
		return nil, err
	}

	child := newExtendedPrivateKey(k.child(index, k.pubKey, ir), childKey)

	log.Tracef("Derived private child %d at depth %d from %x", index,
		child.depth, child.parentFP)

	return child, nil
}

// Derive returns the child at index as an ExtendedKey.
func (k *ExtendedPrivateKey) Derive(index uint32) (ExtendedKey, error) {
	child, err := k.Child(index)
	if err != nil {
		return nil, err
	}

	return child, nil
}

// Neuter returns the extended public key of this node. The chain code,
// depth, parent fingerprint and child number are kept, the private scalar is
// dropped.
func (k *ExtendedPrivateKey) Neuter() *ExtendedPublicKey {
	return &ExtendedPublicKey{
		keyMeta: k.keyMeta,
		key:     k.pubKey,
	}
}

// ExtendedPublicKey is an extended key holding only a public point. It can
// only derive normal children.
type ExtendedPublicKey struct {
	keyMeta

	key *eckey.PublicKey
}

// A compile time check to ensure ExtendedPublicKey satisfies ExtendedKey.
var _ ExtendedKey = (*ExtendedPublicKey)(nil)

// IsPrivate returns false.
func (k *ExtendedPublicKey) IsPrivate() bool {
	return false
}

// PublicKey returns the compressed public key of the node.
func (k *ExtendedPublicKey) PublicKey() *eckey.PublicKey {
	return k.key
}

// Fingerprint returns the fingerprint of the node's public key.
func (k *ExtendedPublicKey) Fingerprint() [eckey.FingerprintLen]byte {
	return eckey.Fingerprint(k.key)
}

// Child returns the normal child public key at index.
//
// Hardened indexes fail with KindCannotDeriveHardenedFromPublic, since their
// derivation requires the parent private scalar. The child point is
// IL*G + K and is invalid, with kind KindInvalidChildKey, when IL is not less
// than n or the sum is the point at infinity.
func (k *ExtendedPublicKey) Child(index uint32) (*ExtendedPublicKey, error) {
	if index >= HardenedKeyStart {
		return nil, eckey.NewError(
			eckey.KindCannotDeriveHardenedFromPublic,
			"index %d is hardened", index,
		)
	}
	if err := k.checkDepth(); err != nil {
		return nil, err
	}

	il, ir := k.mix(childData(k.key.Bytes(), index))
	childKey, err := eckey.TweakAddPoint(k.key, il)
	if err != nil {
		log.Debugf("Public child %d of %x is invalid: %v", index,
			k.Fingerprint(), err)
		return nil, err
	}

	child := &ExtendedPublicKey{
		keyMeta: k.child(index, k.key, ir),
		key:     childKey,
	}

	log.Tracef("Derived public child %d at depth %d from %x", index,
		child.depth, child.parentFP)

	return child, nil
}

// Derive returns the child at index as an ExtendedKey.
func (k *ExtendedPublicKey) Derive(index uint32) (ExtendedKey, error) {
	child, err := k.Child(index)
	if err != nil {
		return nil, err
	}

	return child, nil
}

// Neuter returns the key itself.
func (k *ExtendedPublicKey) Neuter() *ExtendedPublicKey {
	return k
}

// DeriveChild derives the child of parent at index. Hardened indexes require
// an extended private key.
func DeriveChild(parent ExtendedKey, index uint32) (ExtendedKey, error) {
	return parent.Derive(index)
}

// NewExtendedPrivateKey assembles an extended private key from its parts. It
// enforces that a key at depth zero has a zero parent fingerprint and child
// number.
func NewExtendedPrivateKey(versions Versions, key *eckey.PrivateKey,
	chainCode []byte, parentFP [eckey.FingerprintLen]byte, depth uint8,
	childIndex uint32) (*ExtendedPrivateKey, error) {

	meta, err := newKeyMeta(versions, chainCode, parentFP, depth, childIndex)
	if err != nil {
		return nil, err
	}

	// The key material of an extended key is always held compressed.
	if !key.Compress() {
		key, err = eckey.ParsePrivateKey(key.Bytes(), true)
		if err != nil {
			return nil, err
		}
	}

	return newExtendedPrivateKey(meta, key), nil
}

// NewExtendedPublicKey assembles an extended public key from its parts,
// applying the same master key checks as NewExtendedPrivateKey.
func NewExtendedPublicKey(versions Versions, key *eckey.PublicKey,
	chainCode []byte, parentFP [eckey.FingerprintLen]byte, depth uint8,
	childIndex uint32) (*ExtendedPublicKey, error) {

	meta, err := newKeyMeta(versions, chainCode, parentFP, depth, childIndex)
	if err != nil {
		return nil, err
	}

	return &ExtendedPublicKey{
		keyMeta: meta,
		key:     key.WithCompression(true),
	}, nil
}

func newKeyMeta(versions Versions, chainCode []byte,
	parentFP [eckey.FingerprintLen]byte, depth uint8,
	childIndex uint32) (keyMeta, error) {

	if len(chainCode) != ChainCodeLen {
		return keyMeta{}, eckey.NewError(eckey.KindInvalidLength,
			"chain code must be %d bytes, got %d", ChainCodeLen,
			len(chainCode))
	}

	if depth == 0 {
		if parentFP != [eckey.FingerprintLen]byte{} {
			return keyMeta{}, eckey.NewError(
				eckey.KindInvalidMasterKey,
				"zero depth with non-zero parent "+
					"fingerprint %x", parentFP,
			)
		}
		if childIndex != 0 {
			return keyMeta{}, eckey.NewError(
				eckey.KindInvalidMasterKey,
				"zero depth with non-zero child number %d",
				childIndex,
			)
		}
	}

	meta := keyMeta{
		versions:   versions,
		parentFP:   parentFP,
		childIndex: childIndex,
		depth:      depth,
	}
	copy(meta.chainCode[:], chainCode)

	return meta, nil
}
