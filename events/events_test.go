package events

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var nameFormat = regexp.MustCompile(`^[a-z_]+:[a-z_]+(:(debug|raw))?$`)

func TestAllHasFortyEightEntries(t *testing.T) {
	require.Len(t, All, 48)
}

func TestAllEntriesAreUnique(t *testing.T) {
	seen := make(map[Name]struct{}, len(All))
	for _, n := range All {
		_, dup := seen[n]
		require.Falsef(t, dup, "duplicate event name %q", n)
		seen[n] = struct{}{}
	}
}

func TestAllEntriesMatchNameFormat(t *testing.T) {
	for _, n := range All {
		require.Truef(t, nameFormat.MatchString(string(n)), "event name %q does not match the canonical format", n)
	}
}
