package tgf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mthimm/taas-fudge-go/format/tgf"
)

func TestParseBasicFramework(t *testing.T) {
	input := "alice\nbob\ncarol\n#\nalice bob\nbob carol\n"
	a, err := tgf.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, a.N)
	require.Equal(t, []string{"alice", "bob", "carol"}, a.Names)
	require.True(t, a.HasAttack(0, 1))
	require.True(t, a.HasAttack(1, 2))
}

func TestParseDuplicateArgumentIsError(t *testing.T) {
	_, err := tgf.Parse(strings.NewReader("alice\nalice\n#\n"))
	require.ErrorIs(t, err, tgf.ErrDuplicateArgument)
}

func TestParseUnknownAttackerIsError(t *testing.T) {
	_, err := tgf.Parse(strings.NewReader("alice\n#\nbob alice\n"))
	require.ErrorIs(t, err, tgf.ErrUnknownArgument)
}

func TestParseMalformedAttackLineIsError(t *testing.T) {
	_, err := tgf.Parse(strings.NewReader("alice\nbob\n#\nalice\n"))
	require.ErrorIs(t, err, tgf.ErrMalformedLine)
}

func TestParseFrameworkWithNoAttacksHasNoSeparatorAttacks(t *testing.T) {
	a, err := tgf.Parse(strings.NewReader("alice\nbob\n#\n"))
	require.NoError(t, err)
	require.Equal(t, 0, a.NumAttacks())
}
