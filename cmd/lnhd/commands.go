package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/lightningnetwork/lnhd/hdkeychain"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

var errMissingArg = errors.New("missing argument")

// readPassword reads a secret from the terminal without echoing it, writing
// the prompt to w. This requires there to be an actual TTY.
var readPassword = func(w io.Writer, prompt string) ([]byte, error) {
	fmt.Fprint(w, prompt)

	// The variable syscall.Stdin is of a different type in the Windows API
	// that's why we need the explicit cast.
	pw, err := term.ReadPassword(int(syscall.Stdin)) // nolint:unconvert
	fmt.Fprintln(w)

	return pw, err
}

func printJSON(w io.Writer, resp interface{}) error {
	b, err := json.MarshalIndent(resp, "", "    ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", b)

	return err
}

// stringArg returns the flag of the given name if set, or else the next
// positional argument.
func stringArg(ctx *cli.Context, name string, args *cli.Args) (string,
	error) {

	if ctx.IsSet(name) {
		return ctx.String(name), nil
	}

	if !args.Present() {
		return "", fmt.Errorf("%w: %s", errMissingArg, name)
	}

	value := args.First()
	*args = args.Tail()

	return value, nil
}

type masterResponse struct {
	Seed string `json:"seed,omitempty"`
	XPrv string `json:"xprv"`
	XPub string `json:"xpub"`
}

type mnemonicResponse struct {
	Mnemonic string `json:"mnemonic"`
}

var newMasterCommand = cli.Command{
	Name:     "newmaster",
	Category: "Keys",
	Usage:    "Create a master extended key.",
	Description: `
	Create the master extended private key of a seed. The seed is either
	given as hex, derived from a BIP39 mnemonic or, if neither is set, 32
	fresh random bytes.

	With --prompt the mnemonic and its passphrase are read from the
	terminal, keeping them out of the shell history and the process list.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "seed",
			Usage: "the hex encoded seed of 16 to 64 bytes",
		},
		cli.BoolFlag{
			Name: "prompt",
			Usage: "read the mnemonic and passphrase from the " +
				"terminal unless given as flags",
		},
		cli.StringFlag{
			Name: "mnemonic",
			Usage: "a BIP39 mnemonic to derive the seed from, " +
				"prefer --prompt",
		},
		cli.StringFlag{
			Name:  "passphrase",
			Usage: "the optional passphrase of the mnemonic",
		},
	},
	Action: newMaster,
}

func newMaster(ctx *cli.Context) error {
	versions := getConfig(ctx).Versions()

	var (
		resp   masterResponse
		master *hdkeychain.ExtendedPrivateKey
		err    error
	)
	fromMnemonic := ctx.IsSet("mnemonic") || ctx.Bool("prompt")
	switch {
	case ctx.IsSet("seed") && fromMnemonic:
		return fmt.Errorf("seed and mnemonic are mutually exclusive")

	case fromMnemonic:
		var mnemonic, passphrase string
		mnemonic, passphrase, err = mnemonicSecrets(ctx)
		if err != nil {
			return err
		}

		master, err = hdkeychain.NewMasterFromMnemonic(
			mnemonic, passphrase, versions,
		)

	default:
		var seed []byte
		if ctx.IsSet("seed") {
			seed, err = hex.DecodeString(ctx.String("seed"))
			if err != nil {
				return fmt.Errorf("unable to decode seed: %w",
					err)
			}
		} else {
			seed, err = hdkeychain.GenerateSeed(
				hdkeychain.RecommendedSeedLen,
			)
			if err != nil {
				return err
			}
			resp.Seed = hex.EncodeToString(seed)
		}

		master, err = hdkeychain.NewMaster(seed, versions)
	}
	if err != nil {
		return err
	}

	resp.XPrv = master.String()
	resp.XPub = master.Neuter().String()

	return printJSON(ctx.App.Writer, resp)
}

// mnemonicSecrets returns the mnemonic and passphrase of newmaster, from
// their flags or else from the terminal.
func mnemonicSecrets(ctx *cli.Context) (string, string, error) {
	mnemonic := ctx.String("mnemonic")
	if !ctx.IsSet("mnemonic") {
		pw, err := readPassword(ctx.App.ErrWriter, "Input mnemonic: ")
		if err != nil {
			return "", "", fmt.Errorf("unable to read mnemonic: %w",
				err)
		}
		mnemonic = string(pw)
	}

	passphrase := ctx.String("passphrase")
	if !ctx.IsSet("passphrase") && ctx.Bool("prompt") {
		pw, err := readPassword(
			ctx.App.ErrWriter, "Input passphrase (optional): ",
		)
		if err != nil {
			return "", "", fmt.Errorf("unable to read passphrase: "+
				"%w", err)
		}
		passphrase = string(pw)
	}

	// Pasted mnemonics may carry stray whitespace.
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	return mnemonic, passphrase, nil
}

var newMnemonicCommand = cli.Command{
	Name:     "newmnemonic",
	Category: "Keys",
	Usage:    "Create a BIP39 mnemonic.",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name: "entropybits",
			Usage: "the bits of entropy, a multiple of 32 between " +
				"128 and 256 (default from config)",
		},
	},
	Action: newMnemonic,
}

func newMnemonic(ctx *cli.Context) error {
	bits := getConfig(ctx).EntropyBits
	if ctx.IsSet("entropybits") {
		bits = ctx.Int("entropybits")
	}

	mnemonic, err := hdkeychain.NewMnemonic(bits)
	if err != nil {
		return err
	}

	return printJSON(ctx.App.Writer, mnemonicResponse{Mnemonic: mnemonic})
}

type keyResponse struct {
	Key  string `json:"key"`
	Path string `json:"path,omitempty"`
}

var deriveCommand = cli.Command{
	Name:      "derive",
	Category:  "Keys",
	Usage:     "Derive a descendant of an extended key.",
	ArgsUsage: "key path",
	Description: `
	Derive the descendant of an encoded extended key at a path such as
	m/1017'/0'/1'/0/3. Hardened steps are marked with ', h or H and can
	only be derived from private keys.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the encoded extended key to derive from",
		},
		cli.StringFlag{
			Name:  "path",
			Usage: "the derivation path",
		},
		cli.BoolFlag{
			Name:  "public",
			Usage: "return the extended public key of the result",
		},
	},
	Action: derive,
}

func derive(ctx *cli.Context) error {
	args := ctx.Args()

	keyStr, err := stringArg(ctx, "key", &args)
	if err != nil {
		return err
	}
	pathStr, err := stringArg(ctx, "path", &args)
	if err != nil {
		return err
	}

	key, err := hdkeychain.ParseExtendedKey(keyStr)
	if err != nil {
		return err
	}
	path, err := hdkeychain.ParsePath(pathStr)
	if err != nil {
		return err
	}

	child, err := hdkeychain.DerivePath(key, path)
	if err != nil {
		return err
	}
	if ctx.Bool("public") {
		child = child.Neuter()
	}

	log.Debugf("Derived %v at depth %d", path, child.Depth())

	return printJSON(ctx.App.Writer, keyResponse{
		Key:  child.String(),
		Path: path.String(),
	})
}

var neuterCommand = cli.Command{
	Name:      "neuter",
	Category:  "Keys",
	Usage:     "Return the extended public key of an extended key.",
	ArgsUsage: "key",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the encoded extended key",
		},
	},
	Action: neuter,
}

func neuter(ctx *cli.Context) error {
	args := ctx.Args()
	keyStr, err := stringArg(ctx, "key", &args)
	if err != nil {
		return err
	}

	key, err := hdkeychain.ParseExtendedKey(keyStr)
	if err != nil {
		return err
	}

	return printJSON(ctx.App.Writer, keyResponse{
		Key: key.Neuter().String(),
	})
}

type inspectResponse struct {
	Private           bool   `json:"private"`
	Version           string `json:"version"`
	Depth             uint8  `json:"depth"`
	ParentFingerprint string `json:"parent_fingerprint"`
	ChildIndex        uint32 `json:"child_index"`
	Hardened          bool   `json:"hardened"`
	ChainCode         string `json:"chain_code"`
	PubKey            string `json:"pubkey"`
	Fingerprint       string `json:"fingerprint"`
	Address           string `json:"address"`
}

var inspectCommand = cli.Command{
	Name:      "inspect",
	Category:  "Keys",
	Usage:     "Show the fields of an extended key.",
	ArgsUsage: "key",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "key",
			Usage: "the encoded extended key",
		},
	},
	Action: inspect,
}

func inspect(ctx *cli.Context) error {
	args := ctx.Args()
	keyStr, err := stringArg(ctx, "key", &args)
	if err != nil {
		return err
	}

	key, err := hdkeychain.ParseExtendedKey(keyStr)
	if err != nil {
		return err
	}

	versions := key.Versions()
	version := versions.Public
	if key.IsPrivate() {
		version = versions.Private
	}

	pub := key.PublicKey().WithCompression(getConfig(ctx).Compress())
	parentFP := key.ParentFingerprint()
	chainCode := key.ChainCode()
	fp := key.Fingerprint()
	addr := eckey.Address(pub)

	return printJSON(ctx.App.Writer, inspectResponse{
		Private:           key.IsPrivate(),
		Version:           hex.EncodeToString(version[:]),
		Depth:             key.Depth(),
		ParentFingerprint: hex.EncodeToString(parentFP[:]),
		ChildIndex:        key.ChildIndex(),
		Hardened:          key.ChildIndex() >= hdkeychain.HardenedKeyStart,
		ChainCode:         hex.EncodeToString(chainCode[:]),
		PubKey:            pub.Hex(),
		Fingerprint:       hex.EncodeToString(fp[:]),
		Address:           hex.EncodeToString(addr[:]),
	})
}

type pubKeyResponse struct {
	PubKey      string `json:"pubkey"`
	Fingerprint string `json:"fingerprint"`
	Address     string `json:"address"`
}

func newPubKeyResponse(pub *eckey.PublicKey) pubKeyResponse {
	fp := eckey.Fingerprint(pub)
	addr := eckey.Address(pub)

	return pubKeyResponse{
		PubKey:      pub.Hex(),
		Fingerprint: hex.EncodeToString(fp[:]),
		Address:     hex.EncodeToString(addr[:]),
	}
}

var pubKeyCommand = cli.Command{
	Name:      "pubkey",
	Category:  "Plain keys",
	Usage:     "Compute the public key of a private key.",
	ArgsUsage: "privkey",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "privkey",
			Usage: "the hex encoded 32 byte private key",
		},
	},
	Action: pubKey,
}

func pubKey(ctx *cli.Context) error {
	args := ctx.Args()
	privStr, err := stringArg(ctx, "privkey", &args)
	if err != nil {
		return err
	}

	priv, err := eckey.ParsePrivateKeyHex(
		privStr, getConfig(ctx).Compress(),
	)
	if err != nil {
		return err
	}

	return printJSON(ctx.App.Writer, newPubKeyResponse(priv.PubKey()))
}

var addressCommand = cli.Command{
	Name:      "address",
	Category:  "Plain keys",
	Usage:     "Compute the HASH160 address of a public key.",
	ArgsUsage: "pubkey",
	Description: `
	Compute the HASH160 of a hex encoded public key. The key is hashed in
	its compressed form unless --uncompressed is set.`,
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "pubkey",
			Usage: "the hex encoded public key in any SEC1 encoding",
		},
	},
	Action: address,
}

func address(ctx *cli.Context) error {
	args := ctx.Args()
	pubStr, err := stringArg(ctx, "pubkey", &args)
	if err != nil {
		return err
	}

	pub, err := eckey.ParsePublicKeyHex(pubStr, getConfig(ctx).Compress())
	if err != nil {
		return err
	}

	return printJSON(ctx.App.Writer, newPubKeyResponse(pub))
}
