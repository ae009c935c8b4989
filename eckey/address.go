package eckey

import "github.com/btcsuite/btcd/btcutil"

const (
	// FingerprintLen is the length of a key fingerprint.
	FingerprintLen = 4

	// AddressLen is the length of the raw address hash.
	AddressLen = 20
)

// Fingerprint returns the first four bytes of HASH160 of the compressed
// encoding of pub. The compressed form is always used, so a key's fingerprint
// does not depend on its compression flag.
func Fingerprint(pub *PublicKey) [FingerprintLen]byte {
	var fp [FingerprintLen]byte
	copy(fp[:], btcutil.Hash160(pub.Compressed()))

	return fp
}

// Address returns HASH160 (RIPEMD160 of SHA256) of the key's own
// serialization. A key flagged as uncompressed therefore yields the legacy
// uncompressed address hash.
func Address(pub *PublicKey) [AddressLen]byte {
	var addr [AddressLen]byte
	copy(addr[:], btcutil.Hash160(pub.point))

	return addr
}
