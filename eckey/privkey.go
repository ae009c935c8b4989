package eckey

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PrivateKey is a secp256k1 private scalar d with 1 <= d < n. It also records
// whether public keys produced from it should use the compressed encoding.
// A PrivateKey is never mutated after construction.
type PrivateKey struct {
	key      *btcec.PrivateKey
	compress bool
}

// NewPrivateKey generates a new random private key.
func NewPrivateKey(compress bool) (*PrivateKey, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	return &PrivateKey{key: key, compress: compress}, nil
}

// ParsePrivateKey decodes a 32-byte big-endian private scalar. Zero and
// values not less than the curve order fail with KindInvalidScalar.
func ParsePrivateKey(b []byte, compress bool) (*PrivateKey, error) {
	s, err := parsePrivScalar(b)
	if err != nil {
		return nil, err
	}

	return &PrivateKey{
		key:      secp256k1.NewPrivateKey(s),
		compress: compress,
	}, nil
}

// ParsePrivateKeyHex decodes a hex encoded private scalar.
func ParsePrivateKeyHex(s string, compress bool) (*PrivateKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, WrapError(KindParseHex, err, "private key")
	}

	return ParsePrivateKey(b, compress)
}

// Bytes returns the 32-byte big-endian encoding of the scalar.
func (p *PrivateKey) Bytes() []byte {
	return p.key.Serialize()
}

// Hex returns the hex encoding of Bytes.
func (p *PrivateKey) Hex() string {
	return hex.EncodeToString(p.Bytes())
}

// Compress returns whether public keys derived from this key use the
// compressed encoding.
func (p *PrivateKey) Compress() bool {
	return p.compress
}

// PubKey returns the public key d*G using the key's compression preference.
func (p *PrivateKey) PubKey() *PublicKey {
	return PublicKeyFromPrivate(p, p.compress)
}

// BtcecKey returns the underlying btcec private key.
func (p *PrivateKey) BtcecKey() *btcec.PrivateKey {
	return p.key
}

// IsEqual returns true if both keys hold the same scalar and compression
// preference.
func (p *PrivateKey) IsEqual(other *PrivateKey) bool {
	return p.compress == other.compress && p.key.Key.Equals(&other.key.Key)
}

// PublicKeyFromPrivate returns the public key d*G of priv encoded according to
// compress. It is pure and always succeeds for a valid private key.
func PublicKeyFromPrivate(priv *PrivateKey, compress bool) *PublicKey {
	return newPublicKey(priv.key.PubKey(), compress)
}
