package reasoner

import (
	"sort"

	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/internal/raset"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// baseEncoder is either encoding.Admissible (semi-stable) or
// encoding.ConflictFree (stage): the two base encodings DC/DS-SST and
// DC/DS-STG share the same nested-SAT control flow over.
type baseEncoder func(s satsolver.Session, a *af.AF, g *labeling.Labeling, in, out []int) bool

func solveDCSST(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	return nestedDecide(spec, a, g, newSession, encoding.Admissible, true)
}

func solveDSSST(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	return nestedDecide(spec, a, g, newSession, encoding.Admissible, false)
}

func solveDCSTG(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	return nestedDecide(spec, a, g, newSession, encoding.ConflictFree, true)
}

func solveDSSTG(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	return nestedDecide(spec, a, g, newSession, encoding.ConflictFree, false)
}

// nestedDecide implements the outer/inner two-nested-SAT state machine of
// spec §4.10: the outer loop enumerates base-encoding candidates whose IN
// set does (credulous) or does not (skeptical) contain the query argument;
// the inner loop refines a candidate to one with minimal UNDEC, which is a
// semi-stable extension for the admissible base encoding or a stage
// extension for the conflict-free one.
func nestedDecide(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory, encode baseEncoder, credulous bool) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	outer, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer outer.Free()

	allGrounded := encode(outer, a, g, in, out)
	if allGrounded {
		decision := g.Get(spec.Arg) == labeling.IN
		res := &Result{Decision: decision, HasDecision: true}
		if spec.Witness {
			res.Witness, res.HasWitness = g.INSet(), true
		}
		return res, nil
	}

	for {
		assumeLit := in[spec.Arg]
		if !credulous {
			assumeLit = -in[spec.Arg]
		}
		outer.Assume(assumeLit)
		outcome, err := outer.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			return &Result{Decision: !credulous, HasDecision: true}, nil
		}

		notUndec := raset.NewEmpty(a.N)
		inArg := raset.NewEmpty(a.N)
		inner, err := newSession(alloc.Count())
		if err != nil {
			return nil, err
		}
		encode(inner, a, g, in, out)

		var undecClause []int
		for i := 0; i < a.N; i++ {
			vIn, vOut := outer.Value(in[i]), outer.Value(out[i])
			if vIn > 0 || vOut > 0 {
				notUndec.Add(i)
				if vIn > 0 {
					inArg.Add(i)
				}
				inner.AddClause(in[i], out[i])
			} else {
				undecClause = append(undecClause, in[i], out[i])
			}
		}
		inner.AddClause(undecClause...)

		for {
			innerAssume := in[spec.Arg]
			if !credulous {
				innerAssume = -in[spec.Arg]
			}
			inner.Assume(innerAssume)
			outcome, err = inner.Solve()
			if err != nil {
				inner.Free()
				return nil, err
			}
			if outcome == satsolver.UNSAT {
				bareOutcome, err := inner.Solve()
				if err != nil {
					inner.Free()
					return nil, err
				}
				if bareOutcome == satsolver.UNSAT {
					inner.Free()
					witness := sortedCopy(inArg.Elements())
					res := &Result{Decision: credulous, HasDecision: true}
					if spec.Witness {
						res.Witness, res.HasWitness = witness, true
					}
					return res, nil
				}
				var outerGrow []int
				for i := 0; i < a.N; i++ {
					if !notUndec.Contains(i) {
						outerGrow = append(outerGrow, in[i], out[i])
					}
				}
				outer.AddClause(outerGrow...)
				inner.Free()
				break
			}

			undecClause = nil
			inArg.Reset()
			for i := 0; i < a.N; i++ {
				vIn, vOut := inner.Value(in[i]), inner.Value(out[i])
				if vIn > 0 || vOut > 0 {
					if !notUndec.Contains(i) && i != spec.Arg {
						inner.AddClause(in[i], out[i])
						notUndec.Add(i)
					}
					if vIn > 0 {
						inArg.Add(i)
					}
				} else {
					undecClause = append(undecClause, in[i], out[i])
				}
			}
			inner.AddClause(undecClause...)
		}
	}
}

func sortedCopy(elems []int) []int {
	out := make([]int, len(elems))
	copy(out, elems)
	sort.Ints(out)
	return out
}
