package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/grounded"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// threeCycle builds a0 -> a1 -> a2 -> a0, an AF with no stable extension
// and no admissible set other than the empty one.
func threeCycle(t *testing.T) *af.AF {
	t.Helper()
	a, err := af.New(3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.NoError(t, err)
	return a
}

// twoArgDefense builds a0 -> a1, a1 -> a2: a0 is unattacked, a2 is
// defended by a0 against a1, so the grounded extension is {a0, a2}.
func twoArgDefense(t *testing.T) *af.AF {
	t.Helper()
	a, err := af.New(3, [][2]int{{0, 1}, {1, 2}})
	require.NoError(t, err)
	return a
}

func newVars(a *af.AF, alloc *encoding.VarAlloc) (in, out []int) {
	return alloc.AllocN(a.N), alloc.AllocN(a.N)
}

func TestAdmissibleAllGroundedWhenFullyDecided(t *testing.T) {
	a := twoArgDefense(t)
	g := grounded.Compute(a)
	require.True(t, g.AllDecided())

	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	in, out := newVars(a, alloc)
	s.Init(alloc.Count())

	allGrounded := encoding.Admissible(s, a, g, in, out)
	require.True(t, allGrounded)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
	require.Equal(t, in[0], s.Value(in[0]))
	require.Equal(t, -in[1], s.Value(in[1]))
	require.Equal(t, in[2], s.Value(in[2]))
}

func TestAdmissibleOnThreeCycleOnlyEmptySetSatisfiable(t *testing.T) {
	a := threeCycle(t)
	g := grounded.Compute(a)
	require.False(t, g.AllDecided())

	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	in, out := newVars(a, alloc)
	s.Init(alloc.Count())
	encoding.Admissible(s, a, g, in, out)

	// Force a0 to be in: no admissible superset of {a0} exists in a
	// 3-cycle, so this must be UNSAT.
	s.Assume(in[0])
	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.UNSAT, outcome)
}

func TestStableOnThreeCycleIsUnsatisfiable(t *testing.T) {
	a := threeCycle(t)
	g := grounded.Compute(a)

	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	in := alloc.AllocN(a.N)
	s.Init(alloc.Count())
	encoding.Stable(s, a, g, in)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.UNSAT, outcome)
}

func TestStableOnDefenseChainAcceptsGroundedExtension(t *testing.T) {
	a := twoArgDefense(t)
	g := grounded.Compute(a)

	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	in := alloc.AllocN(a.N)
	s.Init(alloc.Count())
	encoding.Stable(s, a, g, in)

	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
	require.Equal(t, in[0], s.Value(in[0]))
	require.Equal(t, -in[1], s.Value(in[1]))
	require.Equal(t, in[2], s.Value(in[2]))
}

func TestConflictFreeDoesNotFixGroundedFacts(t *testing.T) {
	a := twoArgDefense(t)
	g := grounded.Compute(a)

	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	in, out := newVars(a, alloc)
	s.Init(alloc.Count())
	allGrounded := encoding.ConflictFree(s, a, g, in, out)
	require.True(t, allGrounded, "the grounded extension {a0, a2} decides every argument of the chain")

	// The empty set (everything out) is conflict-free even though it
	// disagrees with the grounded extension.
	for i := range in {
		s.Assume(-in[i])
	}
	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
}

func TestCompleteForcesUndecidedArgumentsToStayUndecidable(t *testing.T) {
	a := threeCycle(t)
	g := grounded.Compute(a)

	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	in, out := newVars(a, alloc)
	s.Init(alloc.Count())
	allGrounded := encoding.Complete(s, a, g, in, out)
	require.False(t, allGrounded)

	// The only complete extension of a 3-cycle is the empty one.
	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
	for _, v := range in {
		require.Equal(t, -v, s.Value(v))
	}
}

func TestCrossAttackDetectsAttackingPair(t *testing.T) {
	a := twoArgDefense(t) // a0 -> a1 -> a2
	g := grounded.Compute(a)
	_ = g

	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	inA := alloc.AllocN(a.N)
	inB := alloc.AllocN(a.N)
	aux := alloc.AllocN(a.NumAttacks())
	s.Init(alloc.Count())
	encoding.CrossAttack(s, a, inA, inB, aux)

	// Set A = {a0}, set B = {a1}: a0 attacks a1, so this must be SAT.
	s.Assume(inA[0])
	s.Assume(-inA[1])
	s.Assume(-inA[2])
	s.Assume(-inB[0])
	s.Assume(inB[1])
	s.Assume(-inB[2])
	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.SAT, outcome)
}

func TestCrossAttackUnsatisfiableWhenNoAttackBetweenSets(t *testing.T) {
	a := twoArgDefense(t) // a0 -> a1 -> a2, no attack a2 -> anything, a0 unattacked
	s, err := satsolver.New(satsolver.KindGini, "")
	require.NoError(t, err)
	defer s.Free()

	alloc := encoding.NewVarAlloc()
	inA := alloc.AllocN(a.N)
	inB := alloc.AllocN(a.N)
	aux := alloc.AllocN(a.NumAttacks())
	s.Init(alloc.Count())
	encoding.CrossAttack(s, a, inA, inB, aux)

	// Set A = {a2} (attacks nobody), set B = {a0}: no attack from A to B.
	s.Assume(-inA[0])
	s.Assume(-inA[1])
	s.Assume(inA[2])
	s.Assume(inB[0])
	s.Assume(-inB[1])
	s.Assume(-inB[2])
	outcome, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, satsolver.UNSAT, outcome)
}
