package hdkeychain

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/stretchr/testify/require"
)

const (
	trezorMnemonic = "abandon abandon abandon abandon abandon abandon " +
		"abandon abandon abandon abandon abandon about"

	trezorSeed = "c55257c360c07c72029aebc1b53c05ed0362ada38ead3e3e9efa" +
		"3708e53495531f09a6987599d18264c1e1c92f2cf141630c7a3c4ab7c81b" +
		"2f001698e7463b04"

	trezorMaster = "xprv9s21ZrQH143K3h3fDYiay8mocZ3afhfULfb5GX8kCBdno77" +
		"K4HiA15Tg23wpbeF1pLfs1c5SPmYHrEpTuuRhxMwvKDwqdKiGJS9XFKzUsAF"
)

// TestNewMasterSeedLength checks the accepted range of seed lengths.
func TestNewMasterSeedLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int
		err  error
	}{
		{0, eckey.ErrInvalidSeedLength},
		{MinSeedBytes - 1, eckey.ErrInvalidSeedLength},
		{MinSeedBytes, nil},
		{RecommendedSeedLen, nil},
		{MaxSeedBytes, nil},
		{MaxSeedBytes + 1, eckey.ErrInvalidSeedLength},
	}

	for _, test := range tests {
		_, err := NewMaster(make([]byte, test.size), MainNetVersions)
		if test.err == nil {
			require.NoError(t, err, test.size)
			continue
		}

		require.ErrorIs(t, err, test.err, test.size)
	}
}

// TestGenerateSeed checks generated seeds have the requested length and
// differ between calls.
func TestGenerateSeed(t *testing.T) {
	t.Parallel()

	first, err := GenerateSeed(RecommendedSeedLen)
	require.NoError(t, err)
	require.Len(t, first, RecommendedSeedLen)

	second, err := GenerateSeed(RecommendedSeedLen)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = GenerateSeed(MinSeedBytes - 1)
	require.ErrorIs(t, err, eckey.ErrInvalidSeedLength)

	_, err = GenerateSeed(MaxSeedBytes + 1)
	require.ErrorIs(t, err, eckey.ErrInvalidSeedLength)
}

// TestMnemonic checks mnemonic seeds against the reference vector and the
// rejection of malformed mnemonics.
func TestMnemonic(t *testing.T) {
	t.Parallel()

	seed, err := MnemonicToSeed(trezorMnemonic, "TREZOR")
	require.NoError(t, err)
	require.Equal(t, trezorSeed, hex.EncodeToString(seed))

	master, err := NewMasterFromMnemonic(
		trezorMnemonic, "TREZOR", MainNetVersions,
	)
	require.NoError(t, err)
	require.Equal(t, trezorMaster, master.String())

	// Replacing the last word breaks the checksum.
	bad := strings.TrimSuffix(trezorMnemonic, "about") + "abandon"
	_, err = MnemonicToSeed(bad, "")
	require.ErrorIs(t, err, eckey.ErrInvalidMnemonic)

	_, err = NewMasterFromMnemonic("not a mnemonic", "", MainNetVersions)
	require.ErrorIs(t, err, eckey.ErrInvalidMnemonic)
}

// TestNewMnemonic checks fresh mnemonics are valid and that bad entropy sizes
// are refused.
func TestNewMnemonic(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{128, 160, 192, 224, 256} {
		mnemonic, err := NewMnemonic(bits)
		require.NoError(t, err)
		require.Len(t, strings.Fields(mnemonic), bits*3/32)

		_, err = NewMasterFromMnemonic(mnemonic, "", MainNetVersions)
		require.NoError(t, err)
	}

	_, err := NewMnemonic(100)
	require.ErrorIs(t, err, eckey.ErrInvalidMnemonic)
}
