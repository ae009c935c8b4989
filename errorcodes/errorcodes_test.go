package errorcodes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lightningnetwork/lnhd/eckey"
	"github.com/stretchr/testify/require"
)

// TestCodes checks that every kind has a code matching its name.
func TestCodes(t *testing.T) {
	t.Parallel()

	for kind := eckey.KindParseHex; kind <= eckey.KindInvalidMnemonic; kind++ {
		require.Equal(t, kind.String(), ForKind(kind))
	}

	require.Equal(t, ErrCodeInternal, ForKind(0))
}

// TestForError checks that codes are found through wrapping.
func TestForError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("derive: %w", eckey.NewError(
		eckey.KindDepthOverflow, "depth %d", 255,
	))
	require.Equal(t, ErrCodeDepthOverflow, ForError(err))
	require.Equal(t, ErrCodeInternal, ForError(errors.New("boom")))
}
