package eckey

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestErrorMatching tests that errors match sentinels by kind only, also
// through fmt wrapping.
func TestErrorMatching(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := WrapError(KindInvalidPoint, cause, "parent %d", 7)
	require.Equal(t, "InvalidPoint: parent 7: boom", err.Error())

	wrapped := fmt.Errorf("unable to load key: %w", err)
	require.ErrorIs(t, wrapped, ErrInvalidPoint)
	require.ErrorIs(t, wrapped, cause)
	require.NotErrorIs(t, wrapped, ErrInvalidScalar)

	kind, ok := KindOf(wrapped)
	require.True(t, ok)
	require.Equal(t, KindInvalidPoint, kind)

	_, ok = KindOf(cause)
	require.False(t, ok)

	require.Equal(t, "DepthOverflow", NewError(KindDepthOverflow, "").Error())
	require.Equal(t, "ErrorKind(200)", ErrorKind(200).String())
}
