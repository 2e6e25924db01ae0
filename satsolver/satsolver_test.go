package satsolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mthimm/taas-fudge-go/satsolver"
)

func TestNewUnknownKindErrors(t *testing.T) {
	_, err := satsolver.New(satsolver.Kind(99), "")
	require.Error(t, err)
}

func TestNewExternalRequiresBinaryPath(t *testing.T) {
	_, err := satsolver.New(satsolver.KindExternal, "")
	require.ErrorIs(t, err, satsolver.ErrNoSATBinary)
}

func TestGiniSolvesSimpleSatisfiableFormula(t *testing.T) {
	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	// x1 OR x2; NOT x1 OR x2 -> x2 must be true
	s.Init(2)
	s.AddClause(1, 2)
	s.AddClause(-1, 2)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
	require.Equal(t, 2, s.Value(2))
}

func TestGiniDetectsUnsatisfiableFormula(t *testing.T) {
	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	s.Init(1)
	s.AddClause(1)
	s.AddClause(-1)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.UNSAT, outcome)
}

func TestGiniAssumeAffectsNextSolveOnly(t *testing.T) {
	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	s.Init(1)
	// No hard clauses: variable 1 is free.
	s.Assume(1)
	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
	require.Equal(t, 1, s.Value(1))

	// Assumption from the previous Solve must not persist.
	s.Assume(-1)
	outcome, err = s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
	require.Equal(t, -1, s.Value(1))
}

func TestBufferSessionSolvesSatisfiableFormula(t *testing.T) {
	s, err := satsolver.New(satsolver.KindBuffer, "")
	require.NoError(t, err)
	defer s.Free()

	s.Init(2)
	s.AddClause(1, 2)
	s.AddClause(-1, 2)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
	require.Equal(t, 2, s.Value(2))
}

func TestClauseNotClosedPanics(t *testing.T) {
	s, err := satsolver.New(satsolver.KindBuffer, "")
	require.NoError(t, err)
	defer s.Free()

	s.Init(2)
	s.Add(1) // opens a clause, never closed with 0
	require.Panics(t, func() { s.AddClause(2) })
}
