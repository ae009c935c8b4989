package eckey

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestParsePublicKey tests decoding of the accepted point encodings and the
// rejection of invalid ones.
func TestParsePublicKey(t *testing.T) {
	t.Parallel()

	compressedG, _ := hex.DecodeString(generatorCompressedHex)
	uncompressedG, _ := hex.DecodeString(generatorUncompressedHex)

	// Flipping the parity byte of G's uncompressed form to 0x03 or 0x02
	// leaves a valid compressed prefix on a 65-byte buffer, which must be
	// rejected.
	badPrefix := append([]byte(nil), uncompressedG...)
	badPrefix[0] = 0x03

	// x = 5 has no square root on secp256k1, so there is no point with
	// that x coordinate.
	offCurve := make([]byte, CompressedLen)
	offCurve[0] = 0x02
	offCurve[CompressedLen-1] = 0x05

	tests := []struct {
		name     string
		point    []byte
		compress bool
		wantHex  string
		wantErr  error
	}{
		{
			name:     "compressed to compressed",
			point:    compressedG,
			compress: true,
			wantHex:  generatorCompressedHex,
		},
		{
			name:     "compressed to uncompressed",
			point:    compressedG,
			compress: false,
			wantHex:  generatorUncompressedHex,
		},
		{
			name:     "uncompressed to compressed",
			point:    uncompressedG,
			compress: true,
			wantHex:  generatorCompressedHex,
		},
		{
			name:     "uncompressed to uncompressed",
			point:    uncompressedG,
			compress: false,
			wantHex:  generatorUncompressedHex,
		},
		{
			name:    "empty",
			point:   nil,
			wantErr: ErrInvalidPoint,
		},
		{
			name:    "truncated",
			point:   compressedG[:20],
			wantErr: ErrInvalidPoint,
		},
		{
			name:    "bad prefix",
			point:   badPrefix,
			wantErr: ErrInvalidPoint,
		},
		{
			name:    "not on curve",
			point:   offCurve,
			wantErr: ErrInvalidPoint,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			pub, err := ParsePublicKey(test.point, test.compress)
			if test.wantErr != nil {
				require.ErrorIs(t, err, test.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.compress, pub.IsCompressed())
			require.Equal(t, test.wantHex, pub.Hex())
			require.Equal(t, generatorCompressedHex,
				hex.EncodeToString(pub.Compressed()))
		})
	}
}

// TestParsePublicKeyHex makes sure text that is not hex fails as such.
func TestParsePublicKeyHex(t *testing.T) {
	t.Parallel()

	_, err := ParsePublicKeyHex("02xx", true)
	require.ErrorIs(t, err, ErrParseHex)

	pub, err := ParsePublicKeyHex(generatorUncompressedHex, false)
	require.NoError(t, err)
	require.Equal(t, generatorUncompressedHex, pub.String())
}

// TestPublicKeyEquality documents that equality is representation based.
func TestPublicKeyEquality(t *testing.T) {
	t.Parallel()

	a, err := ParsePublicKeyHex(generatorCompressedHex, true)
	require.NoError(t, err)
	b, err := ParsePublicKeyHex(generatorUncompressedHex, true)
	require.NoError(t, err)
	c, err := ParsePublicKeyHex(generatorCompressedHex, false)
	require.NoError(t, err)

	require.True(t, a.IsEqual(b))
	require.False(t, a.IsEqual(c))
	require.True(t, a.SamePoint(c))
	require.True(t, a.IsEqual(c.WithCompression(true)))
	require.Same(t, a, a.WithCompression(true))

	// Mutating the returned bytes must not affect the key.
	raw := a.Bytes()
	raw[1] ^= 0xff
	require.Equal(t, generatorCompressedHex, a.Hex())
}

// TestPublicKeyRoundTrip tests that a public key re-parsed from its own
// serialization is equal to the original for both compression settings.
func TestPublicKeyRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		keyBytes := rapid.SliceOfN(rapid.Byte(), 32, 32).Draw(
			rt, "privKey",
		)
		compress := rapid.Bool().Draw(rt, "compress")

		priv, err := ParsePrivateKey(keyBytes, compress)
		if err != nil {
			rt.Skip("scalar out of range")
		}

		pub := priv.PubKey()
		decoded, err := ParsePublicKey(pub.Bytes(), compress)
		require.NoError(rt, err)
		require.True(rt, pub.IsEqual(decoded))

		decoded, err = ParsePublicKeyHex(pub.Hex(), compress)
		require.NoError(rt, err)
		require.True(rt, pub.IsEqual(decoded))
	})
}
