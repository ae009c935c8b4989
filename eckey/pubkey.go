package eckey

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
)

// PublicKey is a point on secp256k1 held in its SEC1 serialization, either
// the 33-byte compressed or the 65-byte uncompressed form.
//
// Equality through IsEqual is representation based: the same point with a
// different compression flag is a different PublicKey. Use SamePoint to
// compare the points themselves.
type PublicKey struct {
	key        *btcec.PublicKey
	point      []byte
	compressed bool
}

func newPublicKey(key *btcec.PublicKey, compress bool) *PublicKey {
	point := key.SerializeUncompressed()
	if compress {
		point = key.SerializeCompressed()
	}

	return &PublicKey{
		key:        key,
		point:      point,
		compressed: compress,
	}
}

// ParsePublicKey decodes a SEC1 encoded point. Compressed, uncompressed and
// hybrid encodings are accepted; the stored form is chosen by compress.
// Anything that is not a valid point on the curve fails with
// KindInvalidPoint.
func ParsePublicKey(b []byte, compress bool) (*PublicKey, error) {
	key, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, WrapError(KindInvalidPoint, err, "public key")
	}

	return newPublicKey(key, compress), nil
}

// ParsePublicKeyHex decodes a hex encoded SEC1 point.
func ParsePublicKeyHex(s string, compress bool) (*PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, WrapError(KindParseHex, err, "public key")
	}

	return ParsePublicKey(b, compress)
}

// Bytes returns a copy of the serialized point.
func (p *PublicKey) Bytes() []byte {
	return append([]byte(nil), p.point...)
}

// Hex returns the hex encoding of Bytes.
func (p *PublicKey) Hex() string {
	return hex.EncodeToString(p.point)
}

// IsCompressed returns whether the key is held in compressed form.
func (p *PublicKey) IsCompressed() bool {
	return p.compressed
}

// Compressed returns the 33-byte compressed encoding regardless of the key's
// own compression flag.
func (p *PublicKey) Compressed() []byte {
	if p.compressed {
		return p.Bytes()
	}

	return p.key.SerializeCompressed()
}

// WithCompression returns the same point encoded according to compress.
func (p *PublicKey) WithCompression(compress bool) *PublicKey {
	if compress == p.compressed {
		return p
	}

	return newPublicKey(p.key, compress)
}

// BtcecKey returns the underlying btcec public key.
func (p *PublicKey) BtcecKey() *btcec.PublicKey {
	return p.key
}

// IsEqual returns true if both keys have identical serializations.
func (p *PublicKey) IsEqual(other *PublicKey) bool {
	return p.compressed == other.compressed &&
		bytes.Equal(p.point, other.point)
}

// SamePoint returns true if both keys are the same curve point, ignoring
// their compression flags.
func (p *PublicKey) SamePoint(other *PublicKey) bool {
	return p.key.IsEqual(other.key)
}

// Fingerprint returns the 4-byte identifier of the key used to reference
// parents in extended keys.
func (p *PublicKey) Fingerprint() [FingerprintLen]byte {
	return Fingerprint(p)
}

// Address returns the 20-byte hash of the key's serialization.
func (p *PublicKey) Address() [AddressLen]byte {
	return Address(p)
}

// String returns the hex encoding of the key.
func (p *PublicKey) String() string {
	return p.Hex()
}
