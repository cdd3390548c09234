package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInviteCodeShape(t *testing.T) {
	t.Parallel()

	code, err := NewInviteCode()
	require.NoError(t, err)
	require.Len(t, code, InviteCodeLength)

	for _, r := range code {
		require.True(t, strings.ContainsRune(inviteAlphabet, r), "unexpected rune %q in %q", r, code)
	}
}

func TestNewInviteCodeIsRandom(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 100 {
		code, err := NewInviteCode()
		require.NoError(t, err)
		_, dup := seen[code]
		require.False(t, dup, "duplicate code %q", code)
		seen[code] = struct{}{}
	}
}
