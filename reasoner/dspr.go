package reasoner

import (
	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// solveDSPR decides skeptical acceptance under preferred semantics: NP-hard
// above the second level of the polynomial hierarchy, so it cannot reduce
// to a single SAT call. Spec §4.8 realizes the characterization "q is not
// skeptically accepted iff some admissible set attacks every admissible
// set containing q" with two cooperating SAT sessions: admTest decides
// plain admissibility questions, attAdmTest searches for an admissible set
// attacking an admissible set that contains q.
func solveDSPR(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	inAtt, outAtt := alloc.AllocN(a.N), alloc.AllocN(a.N)
	aux := alloc.AllocN(a.NumAttacks())

	admTest, err := newSession(2 * a.N)
	if err != nil {
		return nil, err
	}
	defer admTest.Free()
	encoding.Admissible(admTest, a, g, in, out)

	attAdmTest, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer attAdmTest.Free()
	encoding.Admissible(attAdmTest, a, g, in, out)
	encoding.Admissible(attAdmTest, a, g, inAtt, outAtt)
	encoding.CrossAttack(attAdmTest, a, in, inAtt, aux)

	// q must be at least credulously accepted, or there is no hope.
	admTest.Assume(in[spec.Arg])
	outcome, err := admTest.Solve()
	if err != nil {
		return nil, err
	}
	if outcome == satsolver.UNSAT {
		return dsprNo(spec, a, g, newSession, nil)
	}

	for i := 0; i < a.N; i++ {
		if admTest.Value(in[i]) < 0 {
			attAdmTest.Add(in[i])
		}
	}
	attAdmTest.Add(0)

	// If some admissible set has q OUT, q is directly attacked by an
	// admissible set and cannot be skeptically accepted.
	admTest.Assume(out[spec.Arg])
	outcome, err = admTest.Solve()
	if err != nil {
		return nil, err
	}
	if outcome == satsolver.SAT {
		var initial []int
		for i := 0; i < a.N; i++ {
			if admTest.Value(in[i]) > 0 {
				initial = append(initial, i)
			}
		}
		return dsprNo(spec, a, g, newSession, initial)
	}

	// Search for an admissible set attacking an admissible set containing q.
	attAdmTest.AddClause(inAtt[spec.Arg])
	for {
		outcome, err = attAdmTest.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			// No admissible attacker exists against any admissible set
			// containing q: q is skeptically accepted.
			return &Result{Decision: true, HasDecision: true}, nil
		}

		// Try to extend the attacker (the in copy) to an admissible set
		// that also contains q.
		admTest.Assume(in[spec.Arg])
		for i := 0; i < a.N; i++ {
			if attAdmTest.Value(in[i]) > 0 {
				admTest.Assume(in[i])
			}
		}
		outcome, err = admTest.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			var initial []int
			for i := 0; i < a.N; i++ {
				if attAdmTest.Value(in[i]) > 0 {
					initial = append(initial, i)
				}
			}
			return dsprNo(spec, a, g, newSession, initial)
		}
		for i := 0; i < a.N; i++ {
			if admTest.Value(in[i]) < 0 {
				attAdmTest.Add(in[i])
			}
		}
		attAdmTest.Add(0)
	}
}

// dsprNo builds the NO result for solveDSPR, optionally extracting a
// preferred-extension witness starting from an admissible core already
// known not to contain q (spec §4.8: "witness: maximize the admissible
// set into a preferred extension with SE-PR").
func dsprNo(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory, initialAdmSet []int) (*Result, error) {
	res := &Result{Decision: false, HasDecision: true}
	if !spec.Witness {
		return res, nil
	}
	witness, err := solveSEPR(spec, a, g, newSession, initialAdmSet)
	if err != nil {
		return nil, err
	}
	res.Witness, res.HasWitness = witness.Witness, true
	return res, nil
}
