package keychain

import (
	"testing"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/stretchr/testify/require"
)

func BenchmarkDerivePrivKey(t *testing.B) {
	keyRing := NewHDKeyRing(createTestMaster(t), CoinTypeBitcoin)

	var (
		privKey *eckey.PrivateKey
		err     error
	)

	keyDesc := KeyDescriptor{
		KeyLocator: KeyLocator{
			Family: KeyFamilyDefault,
			Index:  1,
		},
	}

	t.ReportAllocs()
	t.ResetTimer()

	for i := 0; i < t.N; i++ {
		privKey, err = keyRing.DerivePrivKey(keyDesc)
	}
	require.NoError(t, err)
	require.NotNil(t, privKey)
}
