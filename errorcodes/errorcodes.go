package errorcodes

import (
	"errors"

	"github.com/lightningnetwork/lnhd/eckey"
)

const (
	ErrCodeParseHex                       = "ParseHex"
	ErrCodeBase58Decode                   = "Base58Decode"
	ErrCodeInvalidChecksum                = "InvalidChecksum"
	ErrCodeInvalidLength                  = "InvalidLength"
	ErrCodeInvalidVersion                 = "InvalidVersion"
	ErrCodeInvalidPoint                   = "InvalidPoint"
	ErrCodeInvalidScalar                  = "InvalidScalar"
	ErrCodeInvalidChildKey                = "InvalidChildKey"
	ErrCodeCannotDeriveHardenedFromPublic = "CannotDeriveHardenedFromPublic"
	ErrCodeDepthOverflow                  = "DepthOverflow"
	ErrCodeInvalidMasterKey               = "InvalidMasterKey"
	ErrCodeInvalidSeedLength              = "InvalidSeedLength"
	ErrCodeUnusableSeed                   = "UnusableSeed"
	ErrCodeInvalidPath                    = "InvalidPath"
	ErrCodeInvalidMnemonic                = "InvalidMnemonic"
	ErrCodeInvalidArgument                = "InvalidArgument"
	ErrCodeInternal                       = "Internal"
)

// kindCodes maps every error kind to its stable code. Codes are part of the
// host facing interface and must never be renamed.
var kindCodes = map[eckey.ErrorKind]string{
	eckey.KindParseHex:                       ErrCodeParseHex,
	eckey.KindBase58Decode:                   ErrCodeBase58Decode,
	eckey.KindInvalidChecksum:                ErrCodeInvalidChecksum,
	eckey.KindInvalidLength:                  ErrCodeInvalidLength,
	eckey.KindInvalidVersion:                 ErrCodeInvalidVersion,
	eckey.KindInvalidPoint:                   ErrCodeInvalidPoint,
	eckey.KindInvalidScalar:                  ErrCodeInvalidScalar,
	eckey.KindInvalidChildKey:                ErrCodeInvalidChildKey,
	eckey.KindCannotDeriveHardenedFromPublic: ErrCodeCannotDeriveHardenedFromPublic,
	eckey.KindDepthOverflow:                  ErrCodeDepthOverflow,
	eckey.KindInvalidMasterKey:               ErrCodeInvalidMasterKey,
	eckey.KindInvalidSeedLength:              ErrCodeInvalidSeedLength,
	eckey.KindUnusableSeed:                   ErrCodeUnusableSeed,
	eckey.KindInvalidPath:                    ErrCodeInvalidPath,
	eckey.KindInvalidMnemonic:                ErrCodeInvalidMnemonic,
}

// ForKind returns the code of an error kind.
func ForKind(kind eckey.ErrorKind) string {
	if code, ok := kindCodes[kind]; ok {
		return code
	}

	return ErrCodeInternal
}

// ForError returns the code of the first *eckey.Error in the chain of err,
// or ErrCodeInternal if there is none.
func ForError(err error) string {
	var keyErr *eckey.Error
	if !errors.As(err, &keyErr) {
		return ErrCodeInternal
	}

	return ForKind(keyErr.Kind)
}
