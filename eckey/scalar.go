package eckey

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// ScalarLen is the length of a serialized private scalar.
	ScalarLen = 32

	// CompressedLen is the length of a compressed SEC1 point.
	CompressedLen = btcec.PubKeyBytesLenCompressed

	// UncompressedLen is the length of an uncompressed SEC1 point.
	UncompressedLen = secp256k1.PubKeyBytesLenUncompressed
)

// ParseScalar interprets b as a 256-bit big-endian integer and returns it as
// a scalar mod the group order. Unlike btcec.PrivKeyFromBytes, values that
// are >= n are rejected rather than silently reduced.
func ParseScalar(b []byte) (*secp256k1.ModNScalar, error) {
	if len(b) != ScalarLen {
		return nil, NewError(KindInvalidScalar,
			"scalar must be %d bytes, got %d", ScalarLen, len(b))
	}

	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow {
		return nil, NewError(KindInvalidScalar,
			"scalar is not less than the curve order")
	}

	return &s, nil
}

// parsePrivScalar is ParseScalar with the additional requirement that the
// scalar is non-zero.
func parsePrivScalar(b []byte) (*secp256k1.ModNScalar, error) {
	s, err := ParseScalar(b)
	if err != nil {
		return nil, err
	}
	if s.IsZero() {
		return nil, NewError(KindInvalidScalar, "scalar is zero")
	}

	return s, nil
}

// parseTweak parses a 32-byte tweak produced by a child derivation. An out of
// range tweak makes the child unusable, so it is reported as an invalid
// child key rather than an invalid scalar.
func parseTweak(tweak []byte) (*secp256k1.ModNScalar, error) {
	s, err := ParseScalar(tweak)
	if err != nil {
		return nil, WrapError(KindInvalidChildKey, err, "tweak")
	}

	return s, nil
}

// TweakAdd returns the private key (tweak + d) mod n. It fails with
// KindInvalidChildKey if the tweak is not less than n or the sum is zero.
// The compression preference of priv carries over to the result.
func TweakAdd(priv *PrivateKey, tweak []byte) (*PrivateKey, error) {
	t, err := parseTweak(tweak)
	if err != nil {
		return nil, err
	}

	var sum secp256k1.ModNScalar
	sum.Set(&priv.key.Key)
	sum.Add(t)
	if sum.IsZero() {
		return nil, NewError(KindInvalidChildKey, "derived scalar is zero")
	}

	return &PrivateKey{
		key:      secp256k1.NewPrivateKey(&sum),
		compress: priv.compress,
	}, nil
}

// TweakAddPoint returns the public key tweak*G + P. It fails with
// KindInvalidChildKey if the tweak is not less than n or the sum is the point
// at infinity. The compression flag of pub carries over to the result.
func TweakAddPoint(pub *PublicKey, tweak []byte) (*PublicKey, error) {
	t, err := parseTweak(tweak)
	if err != nil {
		return nil, err
	}

	var tweakJ, pubJ, sumJ btcec.JacobianPoint
	btcec.ScalarBaseMultNonConst(t, &tweakJ)
	pub.key.AsJacobian(&pubJ)
	btcec.AddNonConst(&tweakJ, &pubJ, &sumJ)

	// ToAffine maps the point at infinity (Z = 0) to X = Y = 0, which is
	// not a valid affine point on this curve.
	sumJ.ToAffine()
	if sumJ.X.IsZero() && sumJ.Y.IsZero() {
		return nil, NewError(KindInvalidChildKey,
			"derived point is the point at infinity")
	}

	return newPublicKey(btcec.NewPublicKey(&sumJ.X, &sumJ.Y), pub.compressed), nil
}
