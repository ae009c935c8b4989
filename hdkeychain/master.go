package hdkeychain

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/tyler-smith/go-bip39"
)

const (
	// RecommendedSeedLen is the recommended length in bytes for a seed
	// to a master node.
	RecommendedSeedLen = 32 // 256 bits

	// MinSeedBytes is the minimum number of bytes allowed for a seed to
	// a master node.
	MinSeedBytes = 16 // 128 bits

	// MaxSeedBytes is the maximum number of bytes allowed for a seed to
	// a master node.
	MaxSeedBytes = 64 // 512 bits
)

// masterKey is the HMAC key used to derive master nodes from a seed.
var masterKey = []byte("Bitcoin seed")

// NewMaster creates the master node of a key tree from seed. The seed must be
// between MinSeedBytes and MaxSeedBytes long. The rare seeds whose hash is not
// a valid private scalar fail with KindUnusableSeed and should be replaced by
// a new one.
func NewMaster(seed []byte, versions Versions) (*ExtendedPrivateKey, error) {
	if len(seed) < MinSeedBytes || len(seed) > MaxSeedBytes {
		return nil, eckey.NewError(eckey.KindInvalidSeedLength,
			"seed is %d bytes, must be between %d and %d",
			len(seed), MinSeedBytes, MaxSeedBytes)
	}

	// I = HMAC-SHA512(Key = "Bitcoin seed", Data = S)
	mac := hmac.New(sha512.New, masterKey)
	_, _ = mac.Write(seed)
	lr := mac.Sum(nil)

	// IL is the master secret key and IR the master chain code.
	secretKey := lr[:len(lr)/2]
	chainCode := lr[len(lr)/2:]

	key, err := eckey.ParsePrivateKey(secretKey, true)
	if err != nil {
		return nil, eckey.WrapError(eckey.KindUnusableSeed, err,
			"master secret")
	}

	meta := keyMeta{versions: versions}
	copy(meta.chainCode[:], chainCode)

	master := newExtendedPrivateKey(meta, key)
	log.Debugf("Created master key with fingerprint %x",
		master.Fingerprint())

	return master, nil
}

// GenerateSeed returns a cryptographically secure random seed of length
// bytes, for use with NewMaster.
func GenerateSeed(length uint8) ([]byte, error) {
	if length < MinSeedBytes || length > MaxSeedBytes {
		return nil, eckey.NewError(eckey.KindInvalidSeedLength,
			"seed length %d must be between %d and %d", length,
			MinSeedBytes, MaxSeedBytes)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// NewMnemonic returns a new BIP39 mnemonic encoding entropyBits bits of
// fresh entropy. entropyBits must be a multiple of 32 between 128 and 256.
func NewMnemonic(entropyBits int) (string, error) {
	entropy, err := bip39.NewEntropy(entropyBits)
	if err != nil {
		return "", eckey.WrapError(eckey.KindInvalidMnemonic, err,
			"entropy of %d bits", entropyBits)
	}

	return bip39.NewMnemonic(entropy)
}

// MnemonicToSeed validates a BIP39 mnemonic and stretches it into a 64-byte
// seed using passphrase.
func MnemonicToSeed(mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, eckey.WrapError(eckey.KindInvalidMnemonic, err,
			"mnemonic")
	}

	return seed, nil
}

// NewMasterFromMnemonic creates the master node of the seed encoded by a
// BIP39 mnemonic and passphrase.
func NewMasterFromMnemonic(mnemonic, passphrase string,
	versions Versions) (*ExtendedPrivateKey, error) {

	seed, err := MnemonicToSeed(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	return NewMaster(seed, versions)
}
