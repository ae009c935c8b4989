package lnhdmobile

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/lightningnetwork/lnd/fn/v2"
	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/lightningnetwork/lnhd/errorcodes"
	"github.com/lightningnetwork/lnhd/hdkeychain"
)

// BindingError is the error returned to the host. Code is one of the stable
// codes of the errorcodes package.
type BindingError struct {
	Code    string
	Message string
}

// Error returns the message of the error.
func (e *BindingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// errInvalidArgument is returned for arguments the host type system can not
// rule out, such as negative indexes.
var errInvalidArgument = errors.New("invalid argument")

// unpack converts a result for the host, translating failures into a
// *BindingError.
func unpack[T any](r fn.Result[T]) (T, error) {
	val, err := r.Unpack()
	if err == nil {
		return val, nil
	}

	code := errorcodes.ForError(err)
	if errors.Is(err, errInvalidArgument) {
		code = errorcodes.ErrCodeInvalidArgument
	}

	return val, &BindingError{Code: code, Message: err.Error()}
}

func newResult[T any](val T, err error) fn.Result[T] {
	if err != nil {
		return fn.Err[T](err)
	}

	return fn.Ok(val)
}

// versionsForNetwork resolves a btcd network name, mainnet when empty.
func versionsForNetwork(network string) fn.Result[hdkeychain.Versions] {
	if network == "" {
		return fn.Ok(hdkeychain.MainNetVersions)
	}

	net, ok := hdkeychain.NetForName(network)
	if !ok {
		return fn.Err[hdkeychain.Versions](fmt.Errorf(
			"%w: unknown network %q", errInvalidArgument, network,
		))
	}

	return fn.Ok(hdkeychain.VersionsForNet(net))
}

func parsePrivateKey(hexKey string,
	compress fn.Option[bool]) fn.Result[*eckey.PrivateKey] {

	return newResult(eckey.ParsePrivateKeyHex(
		hexKey, compress.UnwrapOr(true),
	))
}

func parsePublicKey(hexKey string,
	compress fn.Option[bool]) fn.Result[*eckey.PublicKey] {

	return newResult(eckey.ParsePublicKeyHex(
		hexKey, compress.UnwrapOr(true),
	))
}

// PrivateKeyFromHex validates a hex encoded private key and returns its
// canonical lower case encoding.
func PrivateKeyFromHex(hexKey string) (string, error) {
	return unpack(fn.AndThen(
		parsePrivateKey(hexKey, fn.None[bool]()),
		func(k *eckey.PrivateKey) fn.Result[string] {
			return fn.Ok(k.Hex())
		},
	))
}

func publicKeyFromPrivateKey(hexKey string,
	compress fn.Option[bool]) fn.Result[string] {

	return fn.AndThen(
		parsePrivateKey(hexKey, compress),
		func(k *eckey.PrivateKey) fn.Result[string] {
			return fn.Ok(k.PubKey().Hex())
		},
	)
}

// PublicKeyFromPrivateKey returns the compressed hex encoded public key of a
// hex encoded private key.
func PublicKeyFromPrivateKey(hexKey string) (string, error) {
	return unpack(publicKeyFromPrivateKey(hexKey, fn.None[bool]()))
}

// PublicKeyFromPrivateKeyWithCompression is PublicKeyFromPrivateKey with an
// explicit choice of encoding.
func PublicKeyFromPrivateKeyWithCompression(hexKey string,
	compressed bool) (string, error) {

	return unpack(publicKeyFromPrivateKey(hexKey, fn.Some(compressed)))
}

func publicKeyFromHex(hexKey string,
	compress fn.Option[bool]) fn.Result[string] {

	return fn.AndThen(
		parsePublicKey(hexKey, compress),
		func(k *eckey.PublicKey) fn.Result[string] {
			return fn.Ok(k.Hex())
		},
	)
}

// PublicKeyFromHex validates a hex encoded public key in any SEC1 encoding
// and returns it compressed.
func PublicKeyFromHex(hexKey string) (string, error) {
	return unpack(publicKeyFromHex(hexKey, fn.None[bool]()))
}

// PublicKeyFromHexWithCompression is PublicKeyFromHex with an explicit choice
// of encoding.
func PublicKeyFromHexWithCompression(hexKey string,
	compressed bool) (string, error) {

	return unpack(publicKeyFromHex(hexKey, fn.Some(compressed)))
}

// MasterFromSeed returns the extended private master key of seed for the
// given btcd network name, mainnet when empty.
func MasterFromSeed(seed []byte, network string) (string, error) {
	return unpack(fn.AndThen(
		versionsForNetwork(network),
		func(v hdkeychain.Versions) fn.Result[string] {
			master, err := hdkeychain.NewMaster(seed, v)
			if err != nil {
				return fn.Err[string](err)
			}

			return fn.Ok(master.String())
		},
	))
}

// MasterFromMnemonic returns the extended private master key of a BIP39
// mnemonic and passphrase.
func MasterFromMnemonic(mnemonic, passphrase,
	network string) (string, error) {

	return unpack(fn.AndThen(
		versionsForNetwork(network),
		func(v hdkeychain.Versions) fn.Result[string] {
			master, err := hdkeychain.NewMasterFromMnemonic(
				mnemonic, passphrase, v,
			)
			if err != nil {
				return fn.Err[string](err)
			}

			return fn.Ok(master.String())
		},
	))
}

// NewMnemonic returns a fresh BIP39 mnemonic of entropyBits bits.
func NewMnemonic(entropyBits int) (string, error) {
	return unpack(newResult(hdkeychain.NewMnemonic(entropyBits)))
}

// DeriveChild returns the child of an encoded extended key at index. Indexes
// of 2^31 and above are hardened.
func DeriveChild(extendedKey string, index int64) (string, error) {
	if index < 0 || index > 0xffffffff {
		return unpack(fn.Err[string](fmt.Errorf(
			"%w: index %d out of range", errInvalidArgument, index,
		)))
	}

	return unpack(fn.AndThen(
		newResult(hdkeychain.ParseExtendedKey(extendedKey)),
		func(k hdkeychain.ExtendedKey) fn.Result[string] {
			child, err := hdkeychain.DeriveChild(k, uint32(index))
			if err != nil {
				return fn.Err[string](err)
			}

			return fn.Ok(child.String())
		},
	))
}

// DerivePath returns the descendant of an encoded extended key at a textual
// path such as "m/0'/1".
func DerivePath(extendedKey, path string) (string, error) {
	return unpack(fn.AndThen(
		newResult(hdkeychain.ParseExtendedKey(extendedKey)),
		func(k hdkeychain.ExtendedKey) fn.Result[string] {
			p, err := hdkeychain.ParsePath(path)
			if err != nil {
				return fn.Err[string](err)
			}

			child, err := hdkeychain.DerivePath(k, p)
			if err != nil {
				return fn.Err[string](err)
			}

			return fn.Ok(child.String())
		},
	))
}

// Neuter returns the extended public key of an encoded extended key.
func Neuter(extendedKey string) (string, error) {
	return unpack(fn.AndThen(
		newResult(hdkeychain.ParseExtendedKey(extendedKey)),
		func(k hdkeychain.ExtendedKey) fn.Result[string] {
			return fn.Ok(k.Neuter().String())
		},
	))
}

// Fingerprint returns the hex encoded fingerprint of a hex encoded public key.
func Fingerprint(hexKey string) (string, error) {
	return unpack(fn.AndThen(
		parsePublicKey(hexKey, fn.None[bool]()),
		func(k *eckey.PublicKey) fn.Result[string] {
			fp := eckey.Fingerprint(k)
			return fn.Ok(hex.EncodeToString(fp[:]))
		},
	))
}

func address(hexKey string, compress fn.Option[bool]) fn.Result[string] {
	return fn.AndThen(
		parsePublicKey(hexKey, compress),
		func(k *eckey.PublicKey) fn.Result[string] {
			addr := eckey.Address(k)
			return fn.Ok(hex.EncodeToString(addr[:]))
		},
	)
}

// Address returns the hex encoded HASH160 of the compressed encoding of a hex
// encoded public key.
func Address(hexKey string) (string, error) {
	return unpack(address(hexKey, fn.None[bool]()))
}

// AddressWithCompression is Address with an explicit choice of the encoding
// that is hashed.
func AddressWithCompression(hexKey string, compressed bool) (string, error) {
	return unpack(address(hexKey, fn.Some(compressed)))
}
