package hdkeychain

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnhd/eckey"
)

const (
	// SerializedKeyLen is the length of a serialized extended key.
	//
	// 4 bytes version || 1 byte depth || 4 bytes parent fingerprint ||
	// 4 bytes child number || 32 bytes chain code || 33 bytes key
	SerializedKeyLen = 4 + 1 + 4 + 4 + ChainCodeLen + eckey.CompressedLen

	// checksumLen is the length of the checksum appended before base58
	// encoding.
	checksumLen = 4
)

// Field offsets within a serialized extended key.
const (
	depthOffset     = 4
	parentFPOffset  = depthOffset + 1
	childOffset     = parentFPOffset + eckey.FingerprintLen
	chainCodeOffset = childOffset + 4
	keyOffset       = chainCodeOffset + ChainCodeLen
)

// serialize writes the common fields with the given version and key data.
func (m *keyMeta) serialize(version [4]byte,
	keyData []byte) [SerializedKeyLen]byte {

	var b [SerializedKeyLen]byte
	copy(b[:depthOffset], version[:])
	b[depthOffset] = m.depth
	copy(b[parentFPOffset:childOffset], m.parentFP[:])
	binary.BigEndian.PutUint32(b[childOffset:chainCodeOffset], m.childIndex)
	copy(b[chainCodeOffset:keyOffset], m.chainCode[:])
	copy(b[keyOffset:], keyData)

	return b
}

// Serialize returns the 78-byte binary form of the key. The key data is the
// private scalar prefixed with a zero byte.
func (k *ExtendedPrivateKey) Serialize() [SerializedKeyLen]byte {
	keyData := make([]byte, 1+eckey.ScalarLen)
	copy(keyData[1:], k.key.Bytes())

	return k.serialize(k.versions.Private, keyData)
}

// String returns the base58check encoding of the key, starting with "xprv"
// for mainnet keys.
func (k *ExtendedPrivateKey) String() string {
	b := k.Serialize()
	return encodeCheck(b[:])
}

// Serialize returns the 78-byte binary form of the key. The key data is the
// compressed public key.
func (k *ExtendedPublicKey) Serialize() [SerializedKeyLen]byte {
	return k.serialize(k.versions.Public, k.key.Bytes())
}

// String returns the base58check encoding of the key, starting with "xpub"
// for mainnet keys.
func (k *ExtendedPublicKey) String() string {
	b := k.Serialize()
	return encodeCheck(b[:])
}

// encodeCheck appends the first four bytes of the double SHA-256 of payload
// and base58 encodes the result.
func encodeCheck(payload []byte) string {
	checkSum := chainhash.DoubleHashB(payload)[:checksumLen]
	buf := make([]byte, 0, len(payload)+checksumLen)
	buf = append(buf, payload...)
	buf = append(buf, checkSum...)

	return base58.Encode(buf)
}

// decodeCheck reverses encodeCheck and returns the verified payload.
func decodeCheck(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, eckey.NewError(eckey.KindInvalidLength,
			"empty extended key")
	}

	// The decoder signals a character outside of the alphabet with an
	// empty result.
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return nil, eckey.NewError(eckey.KindBase58Decode,
			"invalid base58 character in extended key")
	}

	// A corrupted character usually changes the decoded length too, so
	// the checksum is verified over whatever was decoded before the length
	// is looked at.
	if len(decoded) <= checksumLen {
		return nil, eckey.NewError(eckey.KindInvalidLength,
			"decoded extended key is %d bytes, want %d",
			len(decoded), SerializedKeyLen+checksumLen)
	}

	split := len(decoded) - checksumLen
	payload, checkSum := decoded[:split], decoded[split:]
	expected := chainhash.DoubleHashB(payload)[:checksumLen]
	if !bytes.Equal(checkSum, expected) {
		return nil, eckey.NewError(eckey.KindInvalidChecksum,
			"extended key checksum %x, want %x", checkSum, expected)
	}

	if len(payload) != SerializedKeyLen {
		return nil, eckey.NewError(eckey.KindInvalidLength,
			"decoded extended key is %d bytes, want %d",
			len(decoded), SerializedKeyLen+checksumLen)
	}

	return payload, nil
}

// ParseExtendedKey decodes the base58check text form of an extended key. The
// version bytes decide whether an *ExtendedPrivateKey or an
// *ExtendedPublicKey is returned.
func ParseExtendedKey(s string) (ExtendedKey, error) {
	payload, err := decodeCheck(s)
	if err != nil {
		return nil, err
	}

	return DeserializeExtendedKey(payload)
}

// ParseExtendedPrivateKey is ParseExtendedKey restricted to private keys.
// Public keys fail with KindInvalidVersion.
func ParseExtendedPrivateKey(s string) (*ExtendedPrivateKey, error) {
	key, err := ParseExtendedKey(s)
	if err != nil {
		return nil, err
	}

	priv, ok := key.(*ExtendedPrivateKey)
	if !ok {
		return nil, eckey.NewError(eckey.KindInvalidVersion,
			"expected an extended private key")
	}

	return priv, nil
}

// ParseExtendedPublicKey is ParseExtendedKey restricted to public keys.
// Private keys fail with KindInvalidVersion.
func ParseExtendedPublicKey(s string) (*ExtendedPublicKey, error) {
	key, err := ParseExtendedKey(s)
	if err != nil {
		return nil, err
	}

	pub, ok := key.(*ExtendedPublicKey)
	if !ok {
		return nil, eckey.NewError(eckey.KindInvalidVersion,
			"expected an extended public key")
	}

	return pub, nil
}

// DeserializeExtendedKey decodes the 78-byte binary form of an extended key.
func DeserializeExtendedKey(payload []byte) (ExtendedKey, error) {
	if len(payload) != SerializedKeyLen {
		return nil, eckey.NewError(eckey.KindInvalidLength,
			"extended key is %d bytes, want %d", len(payload),
			SerializedKeyLen)
	}

	var version [4]byte
	copy(version[:], payload[:depthOffset])
	versions, isPrivate, ok := LookupVersion(version)
	if !ok {
		return nil, eckey.NewError(eckey.KindInvalidVersion,
			"unknown extended key version %x", version)
	}

	depth := payload[depthOffset]
	var parentFP [eckey.FingerprintLen]byte
	copy(parentFP[:], payload[parentFPOffset:childOffset])
	childIndex := binary.BigEndian.Uint32(
		payload[childOffset:chainCodeOffset],
	)
	chainCode := payload[chainCodeOffset:keyOffset]
	keyData := payload[keyOffset:]

	if isPrivate {
		if keyData[0] != 0x00 {
			return nil, eckey.NewError(eckey.KindInvalidScalar,
				"private key data has prefix %#02x", keyData[0])
		}

		key, err := eckey.ParsePrivateKey(keyData[1:], true)
		if err != nil {
			return nil, err
		}

		return NewExtendedPrivateKey(
			versions, key, chainCode, parentFP, depth, childIndex,
		)
	}

	key, err := eckey.ParsePublicKey(keyData, true)
	if err != nil {
		return nil, err
	}

	return NewExtendedPublicKey(
		versions, key, chainCode, parentFP, depth, childIndex,
	)
}
