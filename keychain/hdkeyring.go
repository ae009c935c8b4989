package keychain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/lightningnetwork/lnhd/hdkeychain"
	"github.com/lightningnetwork/lnhd/lnutils"
)

const (
	// CoinTypeBitcoin specifies the BIP44 coin type for Bitcoin key
	// derivation.
	CoinTypeBitcoin uint32 = 0

	// CoinTypeTestnet specifies the BIP44 coin type for all testnet key
	// derivation.
	CoinTypeTestnet = 1
)

// HDKeyRing is an implementation of both the KeyRing and SecretKeyRing
// interfaces backed by an in-memory master extended private key. It is safe
// for concurrent use.
type HDKeyRing struct {
	master   *hdkeychain.ExtendedPrivateKey
	coinType uint32

	// maxScan bounds the index scan of DerivePrivKey.
	maxScan int

	// branches caches the extended key at m/1017'/coinType'/family'/0
	// of each family, saving the three hardened steps on every
	// derivation.
	branches lnutils.SyncMap[KeyFamily, *hdkeychain.ExtendedPrivateKey]

	mu        sync.Mutex
	nextIndex map[KeyFamily]uint32
}

// A compile time check to ensure HDKeyRing implements the SecretKeyRing
// interface.
var _ SecretKeyRing = (*HDKeyRing)(nil)

// NewHDKeyRing creates a key ring deriving keys for coinType below master.
func NewHDKeyRing(master *hdkeychain.ExtendedPrivateKey,
	coinType uint32) *HDKeyRing {

	return &HDKeyRing{
		master:    master,
		coinType:  coinType,
		maxScan:   MaxKeyRangeScan,
		nextIndex: make(map[KeyFamily]uint32),
	}
}

// NewHDKeyRingForNet creates a key ring using the coin type of net.
func NewHDKeyRingForNet(master *hdkeychain.ExtendedPrivateKey,
	net *chaincfg.Params) *HDKeyRing {

	return NewHDKeyRing(master, net.HDCoinType)
}

// CoinType returns the coin type the ring derives keys for.
func (h *HDKeyRing) CoinType() uint32 {
	return h.coinType
}

// branch returns the extended key all keys of keyFam are derived from.
func (h *HDKeyRing) branch(keyFam KeyFamily) (*hdkeychain.ExtendedPrivateKey,
	error) {

	if branch, ok := h.branches.Load(keyFam); ok {
		return branch, nil
	}

	path := KeyPath(h.coinType, KeyLocator{Family: keyFam})
	key, err := hdkeychain.DerivePath(h.master, path[:len(path)-1])
	if err != nil {
		return nil, fmt.Errorf("unable to derive branch of family "+
			"%v: %w", keyFam, err)
	}

	// Concurrent callers derive the same key, so whichever is stored
	// first is as good as ours.
	branch, _ := h.branches.LoadOrStore(
		keyFam, key.(*hdkeychain.ExtendedPrivateKey),
	)

	log.DebugS(context.Background(), "Derived family branch",
		"family", keyFam, "path", path[:len(path)-1],
		lnutils.LogFingerprint("fingerprint", branch.Fingerprint()))

	return branch, nil
}

// child derives the key at keyLoc.
func (h *HDKeyRing) child(keyLoc KeyLocator) (*hdkeychain.ExtendedPrivateKey,
	error) {

	branch, err := h.branch(keyLoc.Family)
	if err != nil {
		return nil, err
	}

	return branch.Child(keyLoc.Index)
}

// DeriveNextKey attempts to derive the *next* key within the key family
// (account in BIP43) specified. Indexes whose key is invalid are skipped.
//
// NOTE: This is part of the keychain.KeyRing interface.
func (h *HDKeyRing) DeriveNextKey(keyFam KeyFamily) (KeyDescriptor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for index := h.nextIndex[keyFam]; ; index++ {
		if index >= hdkeychain.HardenedKeyStart {
			return KeyDescriptor{}, fmt.Errorf("family %v has no "+
				"unused keys left", keyFam)
		}

		keyLoc := KeyLocator{Family: keyFam, Index: index}
		key, err := h.child(keyLoc)
		switch {
		case errors.Is(err, eckey.ErrInvalidChildKey):
			log.Infof("Skipping invalid key %v", KeyPath(
				h.coinType, keyLoc,
			))
			continue

		case err != nil:
			return KeyDescriptor{}, err
		}

		h.nextIndex[keyFam] = index + 1

		keyDesc := KeyDescriptor{
			KeyLocator: keyLoc,
			PubKey:     key.PublicKey(),
		}

		log.DebugS(context.Background(), "Derived next key",
			"family", keyFam, "index", index,
			lnutils.LogPubKey("pubkey", keyDesc.PubKey))

		return keyDesc, nil
	}
}

// DeriveKey attempts to derive an arbitrary key specified by the passed
// KeyLocator.
//
// NOTE: This is part of the keychain.KeyRing interface.
func (h *HDKeyRing) DeriveKey(keyLoc KeyLocator) (KeyDescriptor, error) {
	key, err := h.child(keyLoc)
	if err != nil {
		return KeyDescriptor{}, err
	}

	return KeyDescriptor{
		KeyLocator: keyLoc,
		PubKey:     key.PublicKey(),
	}, nil
}

// DerivePrivKey attempts to derive the private key that corresponds to the
// passed key descriptor.
//
// NOTE: This is part of the keychain.SecretKeyRing interface.
func (h *HDKeyRing) DerivePrivKey(keyDesc KeyDescriptor) (*eckey.PrivateKey,
	error) {

	// If the public key isn't set or they have a non-zero index, then we
	// know they have the full key locator.
	if keyDesc.PubKey == nil || keyDesc.Index != 0 {
		key, err := h.child(keyDesc.KeyLocator)
		if err != nil {
			return nil, err
		}

		return key.PrivateKey(), nil
	}

	// Otherwise we only have the family and the public key, so we'll scan
	// the family until we find the key in question.
	branch, err := h.branch(keyDesc.Family)
	if err != nil {
		return nil, err
	}

	for i := 0; i < h.maxScan; i++ {
		key, err := branch.Child(uint32(i))
		switch {
		case errors.Is(err, eckey.ErrInvalidChildKey):
			continue

		case err != nil:
			return nil, err
		}

		if key.PublicKey().SamePoint(keyDesc.PubKey) {
			log.Debugf("Found key of family %v at index %d",
				keyDesc.Family, i)

			return key.PrivateKey(), nil
		}
	}

	return nil, ErrCannotDerivePrivKey
}

// ECDH performs a scalar multiplication (ECDH-like operation) between the
// target key descriptor and remote public key. The output returned will be
// the sha256 of the resulting shared point serialized in compressed format.
//
// NOTE: This is part of the keychain.ECDHRing interface.
func (h *HDKeyRing) ECDH(keyDesc KeyDescriptor,
	pub *eckey.PublicKey) ([32]byte, error) {

	privKey, err := h.DerivePrivKey(keyDesc)
	if err != nil {
		return [32]byte{}, err
	}

	return (&PrivKeyECDH{PrivKey: privKey}).ECDH(pub)
}
