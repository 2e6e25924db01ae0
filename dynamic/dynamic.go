// Package dynamic implements the IPAFAIR-style incremental solver API:
// add/delete arguments and attacks, assume a query argument, and solve
// credulously or skeptically, all against an explicit state machine.
//
// The solve path is rebuild-from-scratch (§9 open question, resolved
// conservatively in favor of correctness over true incrementality): every
// SolveCredulous/SolveSkeptical call translates the live argument/attack
// set into a fresh af.AF and dispatches through the reasoner package. This
// keeps the state machine and the 10/20/-1 return codes faithful to the
// original adapter contract while being honest that edits cost O(current
// size) per solve rather than amortized incremental SAT.
package dynamic

import (
	"errors"
	"sort"

	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/grounded"
	"github.com/mthimm/taas-fudge-go/reasoner"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// State is the solver's current lifecycle state, mirroring ipafair.h.
type State int

const (
	Input State = iota
	Sat
	Unsat
	Error
)

// Semantics selects the argumentation semantics used by the next solve.
// Admissible has no single-extension meaning and is handled specially:
// DC-admissible reduces to "exists an admissible set containing q" and
// DS-admissible is vacuously false (the empty set is always admissible
// and contains no argument).
type Semantics int

const (
	Admissible Semantics = iota
	Complete
	Preferred
	Stable
	SemiStable
	Stage
	Ideal
)

var semToReasoner = map[Semantics]reasoner.Semantics{
	Complete:   reasoner.CO,
	Preferred:  reasoner.PR,
	Stable:     reasoner.ST,
	SemiStable: reasoner.SST,
	Stage:      reasoner.STG,
	Ideal:      reasoner.ID,
}

// Sentinel errors. ErrInvalidState is not returned by any Solver method:
// the IPAFAIR surface signals misuse by transitioning to Error and
// returning -1, and the Error state does not tell misuse apart from a
// SAT-backend failure.
var ErrInvalidState = errors.New("dynamic: operation invalid in current solver state")

// Solver is a mutable argumentation framework plus the IPAFAIR state
// machine. The zero value is not usable; construct with New.
type Solver struct {
	args    map[int32]bool
	attacks map[[2]int32]bool

	sem    Semantics
	state  State
	kind   satsolver.Kind
	satBin string

	pendingAssume  int32
	hasPending     bool
	lastResult     *reasoner.Result
	lastDense      map[int32]int
	resultValid    bool
	lastCredulous  bool
}

// New constructs a solver in state Input with the given SAT backend,
// defaulting to admissible semantics.
func New(kind satsolver.Kind, satBinaryPath string) *Solver {
	return &Solver{
		args:    make(map[int32]bool),
		attacks: make(map[[2]int32]bool),
		sem:     Admissible,
		state:   Input,
		kind:    kind,
		satBin:  satBinaryPath,
	}
}

// State reports the solver's current lifecycle state.
func (s *Solver) State() State { return s.state }

func (s *Solver) invalidate() {
	s.resultValid = false
}

// SetSemantics sets the semantics for the next solve call.
func (s *Solver) SetSemantics(sem Semantics) {
	if s.state == Error {
		return
	}
	s.sem = sem
	s.state = Input
	s.invalidate()
}

// AddArgument adds a fresh argument. Adding an existing argument is a
// misuse and moves the solver to Error.
func (s *Solver) AddArgument(arg int32) {
	if s.state == Error {
		return
	}
	if s.args[arg] {
		s.state = Error
		return
	}
	s.args[arg] = true
	s.state = Input
	s.invalidate()
}

// DelArgument removes an argument and every attack touching it. Deleting
// an argument that does not exist is a misuse and moves the solver to
// Error.
func (s *Solver) DelArgument(arg int32) {
	if s.state == Error {
		return
	}
	if !s.args[arg] {
		s.state = Error
		return
	}
	delete(s.args, arg)
	for k := range s.attacks {
		if k[0] == arg || k[1] == arg {
			delete(s.attacks, k)
		}
	}
	s.state = Input
	s.invalidate()
}

// AddAttack adds the attack (from, to). Adding a duplicate attack, or
// referencing an argument not yet added, is a misuse and moves the
// solver to Error.
func (s *Solver) AddAttack(from, to int32) {
	if s.state == Error {
		return
	}
	if !s.args[from] || !s.args[to] || s.attacks[[2]int32{from, to}] {
		s.state = Error
		return
	}
	s.attacks[[2]int32{from, to}] = true
	s.state = Input
	s.invalidate()
}

// DelAttack removes the attack (from, to). Deleting an attack that does
// not exist is a misuse and moves the solver to Error.
func (s *Solver) DelAttack(from, to int32) {
	if s.state == Error {
		return
	}
	if !s.attacks[[2]int32{from, to}] {
		s.state = Error
		return
	}
	delete(s.attacks, [2]int32{from, to})
	s.state = Input
	s.invalidate()
}

// Assume sets the query argument for the next solve call. Per §9, a
// second Assume before the following Solve/Val cycle is treated as
// misuse (the single-pending-assumption contract) and moves the solver
// to Error, rather than silently overwriting the first.
func (s *Solver) Assume(arg int32) {
	if s.state == Error {
		return
	}
	if !s.args[arg] || s.hasPending {
		s.state = Error
		return
	}
	s.pendingAssume = arg
	s.hasPending = true
	s.invalidate()
}

// buildAF translates the live argument/attack set into a dense af.AF,
// returning the external-id -> dense-id mapping alongside it.
func (s *Solver) buildAF() (*af.AF, map[int32]int) {
	ids := make([]int32, 0, len(s.args))
	for id := range s.args {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	dense := make(map[int32]int, len(ids))
	for i, id := range ids {
		dense[id] = i
	}

	edges := make([][2]int, 0, len(s.attacks))
	for k := range s.attacks {
		edges = append(edges, [2]int{dense[k[0]], dense[k[1]]})
	}

	a, _ := af.New(len(ids), edges)
	return a, dense
}

// solve is the shared implementation of SolveCredulous and SolveSkeptical;
// credulous selects which acceptance question is asked.
func (s *Solver) solve(credulous bool) int {
	if s.state == Error || !s.hasPending {
		s.state = Error
		return -1
	}
	a, dense := s.buildAF()
	denseArg, ok := dense[s.pendingAssume]
	if !ok {
		s.state = Error
		return -1
	}

	var decision bool
	var result *reasoner.Result
	if s.sem == Admissible {
		decision, result = s.solveAdmissible(a, denseArg, credulous)
	} else {
		sem, ok := semToReasoner[s.sem]
		if !ok {
			s.state = Error
			return -1
		}
		mode := reasoner.ModeDC
		if !credulous {
			mode = reasoner.ModeDS
		}
		spec := reasoner.TaskSpec{
			Track:   reasoner.Track{Mode: mode, Semantics: sem},
			Arg:     denseArg,
			HasArg:  true,
			Witness: true,
			SATKind: s.kind,
			SATBinaryPath: s.satBin,
		}
		res, err := reasoner.Dispatch(spec, a)
		if err != nil {
			s.state = Error
			return -1
		}
		decision, result = res.Decision, res
	}

	s.lastResult = result
	s.lastDense = dense
	s.resultValid = true
	s.hasPending = false
	s.lastCredulous = credulous

	if decision {
		s.state = Sat
		return 10
	}
	s.state = Unsat
	return 20
}

// solveAdmissible answers DC/DS under plain admissible semantics directly,
// without going through reasoner (admissible has no single-extension
// shape reasoner.Track models).
func (s *Solver) solveAdmissible(a *af.AF, denseArg int, credulous bool) (bool, *reasoner.Result) {
	if !credulous {
		// The empty set is always admissible and contains no argument.
		return false, &reasoner.Result{}
	}
	g := grounded.Compute(a)
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	sess, err := satsolver.New(s.kind, s.satBin)
	if err != nil {
		return false, &reasoner.Result{}
	}
	defer sess.Free()
	sess.Init(alloc.Count())
	encoding.Admissible(sess, a, g, in, out)
	sess.Assume(in[denseArg])
	outcome, err := sess.Solve()
	if err != nil || outcome != satsolver.SAT {
		return false, &reasoner.Result{}
	}
	var witness []int
	for i := 0; i < a.N; i++ {
		if sess.Value(in[i]) > 0 {
			witness = append(witness, i)
		}
	}
	return true, &reasoner.Result{Witness: witness, HasWitness: true}
}

// SolveCredulous decides whether the assumed argument is contained in
// some extension, returning 10 (yes), 20 (no), or -1 (misuse).
func (s *Solver) SolveCredulous() int { return s.solve(true) }

// SolveSkeptical decides whether the assumed argument is contained in
// every extension, returning 10 (yes), 20 (no), or -1 (misuse).
func (s *Solver) SolveSkeptical() int { return s.solve(false) }

// Val reports whether arg is in the witness extension from the last
// solve: arg if yes, -arg if no. Only valid immediately after a solve,
// with no intervening state-changing call.
func (s *Solver) Val(arg int32) int32 {
	if !s.resultValid || s.lastResult == nil {
		s.state = Error
		return 0
	}
	denseArg, ok := s.lastDense[arg]
	if !ok {
		s.state = Error
		return 0
	}
	for _, w := range s.lastResult.Witness {
		if w == denseArg {
			return arg
		}
	}
	return -arg
}

// Release discards the solver's state. Go's garbage collector reclaims
// the memory; Release exists to mirror the ipafair_release lifecycle
// call and to guard against further use.
func (s *Solver) Release() {
	s.args = nil
	s.attacks = nil
	s.lastResult = nil
	s.state = Error
}
