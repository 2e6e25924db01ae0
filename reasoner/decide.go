package reasoner

import (
	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// dispatchDC resolves a DC-* (credulous decide) track once the easy cases
// have been ruled out.
func dispatchDC(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	switch spec.Track.Semantics {
	case CO, PR:
		return solveDCviaADM(spec, a, g, newSession)
	case ST:
		return solveDCviaSTB(spec, a, g, newSession)
	case ID:
		return solveDCDSIdeal(spec, a, g, newSession)
	case SST:
		return solveDCSST(spec, a, g, newSession)
	case STG:
		return solveDCSTG(spec, a, g, newSession)
	default:
		return solveDCviaADM(spec, a, g, newSession)
	}
}

// dispatchDS resolves a DS-* (skeptical decide) track once the easy cases
// have been ruled out.
func dispatchDS(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	switch spec.Track.Semantics {
	case ST:
		return solveDSST(spec, a, g, newSession)
	case PR:
		return solveDSPR(spec, a, g, newSession)
	case ID:
		return solveDCDSIdeal(spec, a, g, newSession)
	case SST:
		return solveDSSST(spec, a, g, newSession)
	case STG:
		return solveDSSTG(spec, a, g, newSession)
	default:
		return solveDSST(spec, a, g, newSession)
	}
}

// solveDCviaADM implements "ADM; assume in[q]; SAT ⇒ YES", the reduction
// shared by DC-CO and DC-PR (spec §4.5): credulous acceptance under
// complete and under preferred coincide, both being "exists an admissible
// set containing q".
func solveDCviaADM(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Admissible(s, a, g, in, out)

	s.Assume(in[spec.Arg])
	outcome, err := s.Solve()
	if err != nil {
		return nil, err
	}
	res := &Result{Decision: outcome == satsolver.SAT, HasDecision: true}
	if res.Decision && spec.Witness {
		res.Witness, res.HasWitness = extractINFromModel(s, in, a.N), true
	}
	return res, nil
}

// solveDCviaSTB implements "STB; assume in[q]; SAT ⇒ YES" (DC-ST, §4.5).
func solveDCviaSTB(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in := alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Stable(s, a, g, in)

	s.Assume(in[spec.Arg])
	outcome, err := s.Solve()
	if err != nil {
		return nil, err
	}
	res := &Result{Decision: outcome == satsolver.SAT, HasDecision: true}
	if res.Decision && spec.Witness {
		res.Witness, res.HasWitness = extractINFromModel(s, in, a.N), true
	}
	return res, nil
}

// solveSEST implements "STB; one SAT call; UNSAT ⇒ NO" (SE-ST, §4.5).
func solveSEST(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in := alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Stable(s, a, g, in)

	outcome, err := s.Solve()
	if err != nil {
		return nil, err
	}
	if outcome == satsolver.UNSAT {
		return &Result{}, nil
	}
	return &Result{Witness: extractINFromModel(s, in, a.N), HasWitness: true}, nil
}

// solveDSST implements "STB; if UNSAT ⇒ YES (skeptical vacuously); else
// assume ¬in[q]; UNSAT ⇒ YES" (DS-ST, §4.5).
func solveDSST(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in := alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Stable(s, a, g, in)

	outcome, err := s.Solve()
	if err != nil {
		return nil, err
	}
	if outcome == satsolver.UNSAT {
		return &Result{Decision: true, HasDecision: true}, nil
	}

	s.Assume(-in[spec.Arg])
	outcome, err = s.Solve()
	if err != nil {
		return nil, err
	}
	res := &Result{Decision: outcome == satsolver.UNSAT, HasDecision: true}
	if !res.Decision && spec.Witness {
		res.Witness, res.HasWitness = extractINFromModel(s, in, a.N), true
	}
	return res, nil
}

// extractINFromModel reads off the IN set of a just-solved model over a
// width-a.N block of in-variables starting at in[0].
func extractINFromModel(s satsolver.Session, in []int, n int) []int {
	var out []int
	for i := 0; i < n; i++ {
		if s.Value(in[i]) > 0 {
			out = append(out, i)
		}
	}
	return out
}
