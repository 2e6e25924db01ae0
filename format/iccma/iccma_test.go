package iccma_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mthimm/taas-fudge-go/format/iccma"
)

func TestParseBasicFramework(t *testing.T) {
	input := "# a comment\np af 3\n1 2\n2 3\n"
	a, err := iccma.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, a.N)
	require.Equal(t, 2, a.NumAttacks())
	require.True(t, a.HasAttack(0, 1))
	require.True(t, a.HasAttack(1, 2))
}

func TestParseMissingHeaderIsError(t *testing.T) {
	_, err := iccma.Parse(strings.NewReader("1 2\n"))
	require.ErrorIs(t, err, iccma.ErrMissingHeader)
}

func TestParseOutOfRangeAttackIsError(t *testing.T) {
	_, err := iccma.Parse(strings.NewReader("p af 2\n1 3\n"))
	require.ErrorIs(t, err, iccma.ErrArgumentOutOfRange)
}

func TestParseMalformedAttackLineIsError(t *testing.T) {
	_, err := iccma.Parse(strings.NewReader("p af 2\n1\n"))
	require.ErrorIs(t, err, iccma.ErrMalformedLine)
}

func TestParseEmptyFrameworkHasNoArguments(t *testing.T) {
	a, err := iccma.Parse(strings.NewReader("p af 0\n"))
	require.NoError(t, err)
	require.Equal(t, 0, a.N)
}
