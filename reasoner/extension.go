package reasoner

import (
	"fmt"

	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/internal/raset"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// dispatchSE resolves a SE-* (single-extension) track once the easy cases
// (SE-GR, SE-CO) have been ruled out.
func dispatchSE(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	switch spec.Track.Semantics {
	case GR, CO:
		return &Result{Witness: witnessFromLabeling(g), HasWitness: true}, nil
	case ST:
		return solveSEST(spec, a, g, newSession)
	case PR:
		return solveSEPR(spec, a, g, newSession, nil)
	case SST:
		return maximizeDecidedExtension(a, g, newSession, encoding.Admissible)
	case STG:
		return maximizeDecidedExtension(a, g, newSession, encoding.ConflictFree)
	case ID:
		return solveSEID(spec, a, g, newSession)
	default:
		return nil, fmt.Errorf("%w: SE-%v", ErrUnknownTrack, spec.Track.Semantics)
	}
}

// solveSEPR computes a preferred extension by repeatedly absorbing a SAT
// model's newly-IN arguments into a growing admissible set and blocking
// every argument that came back OUT, terminating when no further growth
// is possible (spec §4.7). When initial is non-nil it seeds the search
// from an already-known admissible set (used by the DS-PR fudge, §4.8, to
// extract a preferred-extension witness around a known admissible core).
func solveSEPR(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory, initial []int) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()

	allGrounded := encoding.Admissible(s, a, g, in, out)
	if allGrounded {
		return &Result{Witness: g.INSet(), HasWitness: true}, nil
	}

	admSet := raset.NewEmpty(a.N)
	for _, x := range initial {
		admSet.Add(x)
	}

	var atLeastOne []int
	for i := 0; i < a.N; i++ {
		if !admSet.Contains(i) {
			atLeastOne = append(atLeastOne, in[i])
		}
	}
	s.AddClause(atLeastOne...)
	for _, x := range admSet.Elements() {
		s.AddClause(in[x])
	}

	temp := raset.NewEmpty(a.N)
	for {
		outcome, err := s.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			break
		}
		temp.Reset()
		var blockClause []int
		for i := 0; i < a.N; i++ {
			v := s.Value(in[i])
			if !admSet.Contains(i) && v > 0 {
				temp.Add(i)
			} else if v < 0 {
				blockClause = append(blockClause, in[i])
			}
		}
		s.AddClause(blockClause...)
		for _, x := range temp.Elements() {
			admSet.Add(x)
			s.AddClause(in[x])
		}
	}
	return &Result{Witness: sortedCopy(admSet.Elements()), HasWitness: true}, nil
}

// maximizeDecidedExtension computes a semi-stable (encode=Admissible) or
// stage (encode=ConflictFree) extension by the same absorb-or-block loop
// as solveSEPR, but maximizing the decided set `in[i] ∨ out[i]` instead of
// the IN set directly (spec §4.7).
func maximizeDecidedExtension(a *af.AF, g *labeling.Labeling, newSession sessionFactory, encode baseEncoder) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()

	allGrounded := encode(s, a, g, in, out)
	if allGrounded {
		return &Result{Witness: g.INSet(), HasWitness: true}, nil
	}

	var atLeastOneDecided []int
	for i := 0; i < a.N; i++ {
		atLeastOneDecided = append(atLeastOneDecided, in[i], out[i])
	}
	s.AddClause(atLeastOneDecided...)

	notUndec := raset.NewEmpty(a.N)
	inArg := raset.NewEmpty(a.N)
	temp := raset.NewEmpty(a.N)

	for {
		outcome, err := s.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			break
		}
		temp.Reset()
		inArg.Reset()
		var blockClause []int
		for i := 0; i < a.N; i++ {
			vIn, vOut := s.Value(in[i]), s.Value(out[i])
			if !notUndec.Contains(i) && (vIn > 0 || vOut > 0) {
				temp.Add(i)
			} else if vIn < 0 && vOut < 0 {
				blockClause = append(blockClause, in[i], out[i])
			}
			if vIn > 0 {
				inArg.Add(i)
			}
		}
		s.AddClause(blockClause...)
		for _, x := range temp.Elements() {
			notUndec.Add(x)
			s.AddClause(in[x], out[x])
		}
	}
	return &Result{Witness: sortedCopy(inArg.Elements()), HasWitness: true}, nil
}
