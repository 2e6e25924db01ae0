package reasoner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/reasoner"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// threeCycle is a0 -> a1 -> a2 -> a0: grounded is empty, the empty set is
// the unique complete and preferred extension, and there is no stable
// extension.
func threeCycle(t *testing.T) *af.AF {
	t.Helper()
	a, err := af.New(3, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	require.NoError(t, err)
	return a
}

// defenseChain is a0 -> a1 -> a2: a0 unattacked, a2 defended against a1.
// Grounded, complete, preferred, and stable all agree on {a0, a2}.
func defenseChain(t *testing.T) *af.AF {
	t.Helper()
	a, err := af.New(3, [][2]int{{0, 1}, {1, 2}})
	require.NoError(t, err)
	return a
}

// mutualPlusIsolated is a0 <-> a1 (mutual attack), a2 isolated: two
// preferred extensions {a0, a2} and {a1, a2}, grounded is {a2}.
func mutualPlusIsolated(t *testing.T) *af.AF {
	t.Helper()
	a, err := af.New(3, [][2]int{{0, 1}, {1, 0}})
	require.NoError(t, err)
	return a
}

func spec(track string, kind satsolver.Kind) reasoner.TaskSpec {
	tr, err := reasoner.ParseTrack(track)
	if err != nil {
		panic(err)
	}
	return reasoner.TaskSpec{Track: tr, SATKind: kind}
}

func withArg(s reasoner.TaskSpec, arg int) reasoner.TaskSpec {
	s.Arg, s.HasArg = arg, true
	return s
}

func withWitness(s reasoner.TaskSpec) reasoner.TaskSpec {
	s.Witness = true
	return s
}

func TestDispatchRejectsMissingQueryArgument(t *testing.T) {
	a := defenseChain(t)
	_, err := reasoner.Dispatch(spec("DC-CO", satsolver.KindGini), a)
	require.ErrorIs(t, err, reasoner.ErrMissingQueryArgument)
}

func TestDispatchRejectsOutOfRangeArgument(t *testing.T) {
	a := defenseChain(t)
	_, err := reasoner.Dispatch(withArg(spec("DC-CO", satsolver.KindGini), 99), a)
	require.ErrorIs(t, err, reasoner.ErrQueryArgumentNotFound)
}

func TestSEGRReturnsGroundedExtension(t *testing.T) {
	a := defenseChain(t)
	res, err := reasoner.Dispatch(spec("SE-GR", satsolver.KindGini), a)
	require.NoError(t, err)
	require.True(t, res.HasWitness)
	require.Equal(t, []int{0, 2}, res.Witness)
}

func TestEEGRReturnsGroundedExtension(t *testing.T) {
	a := defenseChain(t)
	res, err := reasoner.Dispatch(spec("EE-GR", satsolver.KindGini), a)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, res.Witness)
}

func TestDCCOOnGroundedInArgumentIsYes(t *testing.T) {
	a := defenseChain(t)
	res, err := reasoner.Dispatch(withArg(spec("DC-CO", satsolver.KindGini), 0), a)
	require.NoError(t, err)
	require.True(t, res.Decision)
}

func TestDCCOOnGroundedOutArgumentIsNo(t *testing.T) {
	a := defenseChain(t)
	res, err := reasoner.Dispatch(withArg(spec("DC-CO", satsolver.KindGini), 1), a)
	require.NoError(t, err)
	require.False(t, res.Decision)
}

func TestDCCOOnMutualAttackIsYesForBothSides(t *testing.T) {
	a := mutualPlusIsolated(t)
	res0, err := reasoner.Dispatch(withArg(spec("DC-CO", satsolver.KindGini), 0), a)
	require.NoError(t, err)
	require.True(t, res0.Decision)
	res1, err := reasoner.Dispatch(withArg(spec("DC-CO", satsolver.KindGini), 1), a)
	require.NoError(t, err)
	require.True(t, res1.Decision)
}

func TestDSCOOnMutualAttackIsNoForBothSides(t *testing.T) {
	a := mutualPlusIsolated(t)
	res0, err := reasoner.Dispatch(withArg(spec("DS-CO", satsolver.KindGini), 0), a)
	require.NoError(t, err)
	require.False(t, res0.Decision)
	res1, err := reasoner.Dispatch(withArg(spec("DS-CO", satsolver.KindGini), 1), a)
	require.NoError(t, err)
	require.False(t, res1.Decision)
}

func TestDSCOOnMutualAttackIsYesForIsolatedArgument(t *testing.T) {
	a := mutualPlusIsolated(t)
	res, err := reasoner.Dispatch(withArg(spec("DS-CO", satsolver.KindGini), 2), a)
	require.NoError(t, err)
	require.True(t, res.Decision)
}

func TestSEPROnThreeCycleReturnsEmptyExtension(t *testing.T) {
	a := threeCycle(t)
	res, err := reasoner.Dispatch(spec("SE-PR", satsolver.KindGini), a)
	require.NoError(t, err)
	require.True(t, res.HasWitness)
	// The only admissible set of a 3-cycle is the empty one, so it is the
	// unique preferred extension.
	require.Len(t, res.Witness, 0)
}

func TestDCSTOnThreeCycleIsNoForEveryArgument(t *testing.T) {
	a := threeCycle(t)
	for i := 0; i < 3; i++ {
		res, err := reasoner.Dispatch(withArg(spec("DC-ST", satsolver.KindGini), i), a)
		require.NoError(t, err)
		require.Falsef(t, res.Decision, "argument %d should not be credulously stable-accepted", i)
	}
}

func TestDSSTOnThreeCycleIsVacuouslyYes(t *testing.T) {
	a := threeCycle(t)
	res, err := reasoner.Dispatch(withArg(spec("DS-ST", satsolver.KindGini), 0), a)
	require.NoError(t, err)
	require.True(t, res.Decision)
}

func TestDSPROnMutualAttackMatchesDSCO(t *testing.T) {
	a := mutualPlusIsolated(t)
	res, err := reasoner.Dispatch(withArg(withWitness(spec("DS-PR", satsolver.KindGini)), 2), a)
	require.NoError(t, err)
	require.True(t, res.Decision)

	res0, err := reasoner.Dispatch(withArg(withWitness(spec("DS-PR", satsolver.KindGini)), 0), a)
	require.NoError(t, err)
	require.False(t, res0.Decision)
	require.True(t, res0.HasWitness)
}

func TestCECOOnMutualAttackCountsThreeCompleteExtensions(t *testing.T) {
	a := mutualPlusIsolated(t)
	res, err := reasoner.Dispatch(spec("CE-CO", satsolver.KindGini), a)
	require.NoError(t, err)
	require.True(t, res.HasCount)
	// {a2}, {a0,a2}, {a1,a2}: three complete extensions.
	require.Equal(t, 3, res.Count)
}

func TestCEPROnMutualAttackCountsTwoPreferredExtensions(t *testing.T) {
	a := mutualPlusIsolated(t)
	res, err := reasoner.Dispatch(spec("CE-PR", satsolver.KindGini), a)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
}

func TestCESTOnThreeCycleCountsNoStableExtensions(t *testing.T) {
	a := threeCycle(t)
	res, err := reasoner.Dispatch(spec("CE-ST", satsolver.KindGini), a)
	require.NoError(t, err)
	require.Equal(t, 0, res.Count)
}

func TestSEIDOnMutualAttackReturnsGroundedExtension(t *testing.T) {
	a := mutualPlusIsolated(t)
	res, err := reasoner.Dispatch(spec("SE-ID", satsolver.KindGini), a)
	require.NoError(t, err)
	require.Equal(t, []int{2}, res.Witness)
}

func TestEAPROnMutualAttackAcceptsOnlyIsolatedArgument(t *testing.T) {
	a := mutualPlusIsolated(t)
	res, err := reasoner.Dispatch(spec("EA-PR", satsolver.KindGini), a)
	require.NoError(t, err)
	require.Equal(t, []int{2}, res.Witness)
}

func TestDCSSTOnMutualAttackAcceptsBothMutualArguments(t *testing.T) {
	a := mutualPlusIsolated(t)
	res, err := reasoner.Dispatch(withArg(spec("DC-SST", satsolver.KindGini), 0), a)
	require.NoError(t, err)
	require.True(t, res.Decision)
}
