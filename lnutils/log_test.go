package lnutils

import (
	"strings"
	"testing"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/stretchr/testify/require"
)

const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2" +
	"815b16f81798"

func TestLogAttrs(t *testing.T) {
	t.Parallel()

	priv, err := eckey.ParsePrivateKeyHex(
		strings.Repeat("0", 63)+"1", false,
	)
	require.NoError(t, err)

	// The compressed encoding is logged for an uncompressed key.
	attr := LogPubKey("pubkey", priv.PubKey())
	require.Equal(t, "pubkey", attr.Key)
	logged := attr.Value.String()
	require.NotEmpty(t, logged)
	require.True(t, strings.HasPrefix(generatorHex, logged), logged)

	attr = LogPubKey("pubkey", nil)
	require.Contains(t, attr.Value.String(), "nil")

	attr = LogFingerprint("fp", eckey.Fingerprint(priv.PubKey()))
	require.Equal(t, "751e76e8", attr.Value.String())
}

func TestSpewLogClosure(t *testing.T) {
	t.Parallel()

	closure := SpewLogClosure(struct{ Depth uint8 }{Depth: 3})
	require.Contains(t, closure.String(), "Depth: (uint8) 3")
}
