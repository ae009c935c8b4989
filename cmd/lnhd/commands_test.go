package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/stretchr/testify/require"
)

const (
	vectorOneMaster = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6" +
		"cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"

	vectorOneMasterPub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8" +
		"NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"

	vectorOneChildPub = "xpub68Gmy5EdvgibQVfPdqkBBCHxA5htiqg55crXYuXoQRKf" +
		"DBFA1WEjWgP6LHhwBZeNK1VTsfTFUHCdrfp1bgwQ9xv5ski8PX9rL2dZXvgGDnw"
)

// runApp runs the app with the given arguments against a missing config
// file and decodes the JSON output into resp.
func runApp(t *testing.T, resp interface{}, args ...string) error {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	configFile := filepath.Join(t.TempDir(), "lnhd.conf")
	fullArgs := append([]string{"lnhd", "--configfile", configFile}, args...)
	if err := app.Run(fullArgs); err != nil {
		return err
	}

	if resp != nil {
		require.NoError(t, json.Unmarshal(stdout.Bytes(), resp))
	}

	return nil
}

// TestNewMaster covers master creation from a seed, a mnemonic and fresh
// randomness.
func TestNewMaster(t *testing.T) {
	var resp masterResponse
	err := runApp(
		t, &resp, "newmaster", "--seed", "000102030405060708090a0b0c0d0e0f",
	)
	require.NoError(t, err)
	require.Equal(t, vectorOneMaster, resp.XPrv)
	require.Equal(t, vectorOneMasterPub, resp.XPub)
	require.Empty(t, resp.Seed)

	resp = masterResponse{}
	require.NoError(t, runApp(t, &resp, "--network", "testnet3", "newmaster"))
	require.Len(t, resp.Seed, 64)
	require.True(t, strings.HasPrefix(resp.XPrv, "tprv"))
	require.True(t, strings.HasPrefix(resp.XPub, "tpub"))

	var mnemonic mnemonicResponse
	require.NoError(t, runApp(
		t, &mnemonic, "newmnemonic", "--entropybits", "160",
	))
	require.Len(t, strings.Fields(mnemonic.Mnemonic), 15)

	resp = masterResponse{}
	require.NoError(t, runApp(
		t, &resp, "newmaster", "--mnemonic", mnemonic.Mnemonic,
		"--passphrase", "secret",
	))
	require.True(t, strings.HasPrefix(resp.XPrv, "xprv"))

	err = runApp(t, nil, "newmaster", "--seed", "0001")
	require.ErrorIs(t, err, eckey.ErrInvalidSeedLength)

	err = runApp(t, nil, "newmaster", "--mnemonic", "abandon abandon")
	require.ErrorIs(t, err, eckey.ErrInvalidMnemonic)

	err = runApp(t, nil, "newmaster", "--seed", "00", "--mnemonic", "a")
	require.Error(t, err)
}

// TestNewMasterPrompt checks that the mnemonic and passphrase are read from
// the terminal when their flags are absent.
func TestNewMasterPrompt(t *testing.T) {
	var mnemonic mnemonicResponse
	require.NoError(t, runApp(t, &mnemonic, "newmnemonic"))

	var fromFlags masterResponse
	require.NoError(t, runApp(
		t, &fromFlags, "newmaster", "--mnemonic", mnemonic.Mnemonic,
		"--passphrase", "secret",
	))

	var prompts []string
	answers := map[string]string{
		"Input mnemonic: ": "  " + strings.ReplaceAll(
			mnemonic.Mnemonic, " ", "   ",
		) + "\n",
		"Input passphrase (optional): ": "secret",
	}
	defaultReader := readPassword
	readPassword = func(_ io.Writer, prompt string) ([]byte, error) {
		prompts = append(prompts, prompt)
		return []byte(answers[prompt]), nil
	}
	t.Cleanup(func() { readPassword = defaultReader })

	var prompted masterResponse
	require.NoError(t, runApp(t, &prompted, "newmaster", "--prompt"))
	require.Equal(t, fromFlags, prompted)
	require.Len(t, prompts, 2)

	// A passphrase given as flag is not asked for.
	prompts = nil
	prompted = masterResponse{}
	require.NoError(t, runApp(
		t, &prompted, "newmaster", "--prompt", "--passphrase", "secret",
	))
	require.Equal(t, fromFlags, prompted)
	require.Equal(t, []string{"Input mnemonic: "}, prompts)

	err := runApp(t, nil, "newmaster", "--prompt", "--seed", "00")
	require.Error(t, err)

	readPassword = func(io.Writer, string) ([]byte, error) {
		return nil, errors.New("not a terminal")
	}
	err = runApp(t, nil, "newmaster", "--prompt")
	require.ErrorContains(t, err, "not a terminal")
}

// TestNewMnemonicDefault checks that the configured entropy is used when no
// flag is given.
func TestNewMnemonicDefault(t *testing.T) {
	var resp mnemonicResponse
	require.NoError(t, runApp(t, &resp, "newmnemonic"))
	require.Len(t, strings.Fields(resp.Mnemonic), 24)

	err := runApp(t, nil, "newmnemonic", "--entropybits", "100")
	require.ErrorIs(t, err, eckey.ErrInvalidMnemonic)
}

// TestDerive covers derivation by flags and positional arguments.
func TestDerive(t *testing.T) {
	var resp keyResponse
	require.NoError(t, runApp(
		t, &resp, "derive", "--public", vectorOneMaster, "m/0h",
	))
	require.Equal(t, vectorOneChildPub, resp.Key)
	require.Equal(t, "m/0'", resp.Path)

	var private keyResponse
	require.NoError(t, runApp(
		t, &private, "derive", "--key", vectorOneMaster, "--path",
		"m/0'",
	))

	var neutered keyResponse
	require.NoError(t, runApp(t, &neutered, "neuter", private.Key))
	require.Equal(t, vectorOneChildPub, neutered.Key)

	err := runApp(t, nil, "derive", vectorOneMasterPub, "m/0h")
	require.ErrorIs(t, err, eckey.ErrCannotDeriveHardenedFromPublic)

	err = runApp(t, nil, "derive", vectorOneMaster, "0/1")
	require.ErrorIs(t, err, eckey.ErrInvalidPath)

	err = runApp(t, nil, "derive", vectorOneMaster)
	require.ErrorIs(t, err, errMissingArg)
}

// TestInspect checks the fields reported for a master key.
func TestInspect(t *testing.T) {
	var resp inspectResponse
	require.NoError(t, runApp(t, &resp, "inspect", vectorOneMaster))

	require.Equal(t, inspectResponse{
		Private:           true,
		Version:           "0488ade4",
		Depth:             0,
		ParentFingerprint: "00000000",
		ChildIndex:        0,
		Hardened:          false,
		ChainCode: "873dff81c02f525623fd1fe5167eac3a55a049de3d314bb4" +
			"2ee227ffed37d508",
		PubKey: "0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050" +
			"e2e8ff49c85c2",
		Fingerprint: "3442193e",
		Address:     resp.Address,
	}, resp)
	require.Equal(t, "3442193e", resp.Address[:8])

	var pub inspectResponse
	require.NoError(t, runApp(t, &pub, "inspect", vectorOneMasterPub))
	require.False(t, pub.Private)
	require.Equal(t, "0488b21e", pub.Version)
	require.Equal(t, resp.PubKey, pub.PubKey)

	var child inspectResponse
	require.NoError(t, runApp(t, &child, "inspect", vectorOneChildPub))
	require.Equal(t, uint8(1), child.Depth)
	require.Equal(t, "3442193e", child.ParentFingerprint)
	require.True(t, child.Hardened)

	err := runApp(t, nil, "inspect", vectorOneMaster[:20])
	require.Error(t, err)
}

// TestPlainKeys covers the pubkey and address commands and the compression
// setting.
func TestPlainKeys(t *testing.T) {
	one := strings.Repeat("0", 63) + "1"

	var resp pubKeyResponse
	require.NoError(t, runApp(t, &resp, "pubkey", one))
	require.Equal(t, pubKeyResponse{
		PubKey: "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959" +
			"f2815b16f81798",
		Fingerprint: "751e76e8",
		Address:     "751e76e8199196d454941c45d1b3a323f1433bd6",
	}, resp)

	var uncompressed pubKeyResponse
	require.NoError(t, runApp(
		t, &uncompressed, "--uncompressed", "pubkey", one,
	))
	require.Len(t, uncompressed.PubKey, 130)
	require.Equal(t, "751e76e8", uncompressed.Fingerprint)
	require.Equal(
		t, "91b24bf9f5288532960ac687abb035127b1d28a5",
		uncompressed.Address,
	)

	var addr pubKeyResponse
	require.NoError(t, runApp(
		t, &addr, "address", "--pubkey", uncompressed.PubKey,
	))
	require.Equal(t, resp, addr)

	err := runApp(t, nil, "pubkey", strings.Repeat("f", 64))
	require.ErrorIs(t, err, eckey.ErrInvalidScalar)

	err = runApp(t, nil, "address", "0400")
	require.Error(t, err)
}

// TestBadConfig checks that config errors abort before any command runs.
func TestBadConfig(t *testing.T) {
	err := runApp(t, nil, "--network", "litecoin", "newmnemonic")
	require.Error(t, err)

	err = runApp(t, nil, "--debuglevel", "loud", "newmnemonic")
	require.Error(t, err)
}
