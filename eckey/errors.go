package eckey

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the reason a key operation failed. The kinds are
// shared by every package built on top of eckey, so a caller only ever needs
// to switch over this one set.
type ErrorKind uint8

const (
	// KindParseHex is returned when text that should be hexadecimal is
	// not.
	KindParseHex ErrorKind = iota + 1

	// KindBase58Decode is returned when a string contains characters
	// outside of the base58 alphabet.
	KindBase58Decode

	// KindInvalidChecksum is returned when the trailing checksum of a
	// serialized extended key does not match its payload.
	KindInvalidChecksum

	// KindInvalidLength is returned when a serialized payload does not
	// have the expected size.
	KindInvalidLength

	// KindInvalidVersion is returned when a serialized extended key
	// carries unknown version bytes, or the variant it encodes is not the
	// one the caller asked for.
	KindInvalidVersion

	// KindInvalidPoint is returned when bytes do not encode a point on
	// the curve.
	KindInvalidPoint

	// KindInvalidScalar is returned when bytes do not encode a private
	// scalar in the range [1, n).
	KindInvalidScalar

	// KindInvalidChildKey is returned when a child derivation produces an
	// out of range tweak, a zero scalar or the point at infinity. Callers
	// are expected to move on to the next index.
	KindInvalidChildKey

	// KindCannotDeriveHardenedFromPublic is returned when a hardened child
	// is requested from a public extended key.
	KindCannotDeriveHardenedFromPublic

	// KindDepthOverflow is returned when deriving from a key that is
	// already at the maximum depth.
	KindDepthOverflow

	// KindInvalidMasterKey is returned when a decoded key claims depth
	// zero but has a non-zero parent fingerprint or child number.
	KindInvalidMasterKey

	// KindInvalidSeedLength is returned when a seed is shorter or longer
	// than the range accepted for master key generation.
	KindInvalidSeedLength

	// KindUnusableSeed is returned in the astronomically unlikely case a
	// seed hashes to an invalid master scalar.
	KindUnusableSeed

	// KindInvalidPath is returned when a textual derivation path cannot
	// be parsed.
	KindInvalidPath

	// KindInvalidMnemonic is returned when a mnemonic has unknown words
	// or a bad checksum.
	KindInvalidMnemonic
)

// String returns a human readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindParseHex:
		return "ParseHex"
	case KindBase58Decode:
		return "Base58Decode"
	case KindInvalidChecksum:
		return "InvalidChecksum"
	case KindInvalidLength:
		return "InvalidLength"
	case KindInvalidVersion:
		return "InvalidVersion"
	case KindInvalidPoint:
		return "InvalidPoint"
	case KindInvalidScalar:
		return "InvalidScalar"
	case KindInvalidChildKey:
		return "InvalidChildKey"
	case KindCannotDeriveHardenedFromPublic:
		return "CannotDeriveHardenedFromPublic"
	case KindDepthOverflow:
		return "DepthOverflow"
	case KindInvalidMasterKey:
		return "InvalidMasterKey"
	case KindInvalidSeedLength:
		return "InvalidSeedLength"
	case KindUnusableSeed:
		return "UnusableSeed"
	case KindInvalidPath:
		return "InvalidPath"
	case KindInvalidMnemonic:
		return "InvalidMnemonic"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// Error is the error type returned by every key operation in this module.
// Detail carries the context needed to format a message and Err the
// underlying cause, if any.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// Error returns the formatted error message.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. This lets callers
// match against the sentinel values below with errors.Is regardless of the
// detail attached at the point of failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// NewError creates an *Error of the given kind with a formatted detail
// message.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// WrapError creates an *Error of the given kind around cause.
func WrapError(kind ErrorKind, cause error, format string,
	args ...interface{}) *Error {

	return &Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
		Err:    cause,
	}
}

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var keyErr *Error
	if !errors.As(err, &keyErr) {
		return 0, false
	}

	return keyErr.Kind, true
}

var (
	// ErrParseHex matches errors of kind KindParseHex.
	ErrParseHex = &Error{Kind: KindParseHex}

	// ErrBase58Decode matches errors of kind KindBase58Decode.
	ErrBase58Decode = &Error{Kind: KindBase58Decode}

	// ErrInvalidChecksum matches errors of kind KindInvalidChecksum.
	ErrInvalidChecksum = &Error{Kind: KindInvalidChecksum}

	// ErrInvalidLength matches errors of kind KindInvalidLength.
	ErrInvalidLength = &Error{Kind: KindInvalidLength}

	// ErrInvalidVersion matches errors of kind KindInvalidVersion.
	ErrInvalidVersion = &Error{Kind: KindInvalidVersion}

	// ErrInvalidPoint matches errors of kind KindInvalidPoint.
	ErrInvalidPoint = &Error{Kind: KindInvalidPoint}

	// ErrInvalidScalar matches errors of kind KindInvalidScalar.
	ErrInvalidScalar = &Error{Kind: KindInvalidScalar}

	// ErrInvalidChildKey matches errors of kind KindInvalidChildKey.
	ErrInvalidChildKey = &Error{Kind: KindInvalidChildKey}

	// ErrCannotDeriveHardenedFromPublic matches errors of kind
	// KindCannotDeriveHardenedFromPublic.
	ErrCannotDeriveHardenedFromPublic = &Error{
		Kind: KindCannotDeriveHardenedFromPublic,
	}

	// ErrDepthOverflow matches errors of kind KindDepthOverflow.
	ErrDepthOverflow = &Error{Kind: KindDepthOverflow}

	// ErrInvalidMasterKey matches errors of kind KindInvalidMasterKey.
	ErrInvalidMasterKey = &Error{Kind: KindInvalidMasterKey}

	// ErrInvalidSeedLength matches errors of kind KindInvalidSeedLength.
	ErrInvalidSeedLength = &Error{Kind: KindInvalidSeedLength}

	// ErrUnusableSeed matches errors of kind KindUnusableSeed.
	ErrUnusableSeed = &Error{Kind: KindUnusableSeed}

	// ErrInvalidPath matches errors of kind KindInvalidPath.
	ErrInvalidPath = &Error{Kind: KindInvalidPath}

	// ErrInvalidMnemonic matches errors of kind KindInvalidMnemonic.
	ErrInvalidMnemonic = &Error{Kind: KindInvalidMnemonic}
)
