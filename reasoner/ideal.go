package reasoner

import (
	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/internal/raset"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// computeIdeal computes the unique ideal extension: the greatest
// admissible set contained in the preferred super-core (PSC). Spec §4.7
// SE-ID, in four steps:
//
//  1. PSC starts as every argument not in G_out.
//  2. Repeatedly ask whether an admissible set attacks some PSC member; if
//     so, drop every argument that admissible set's IN arguments attack
//     from PSC, and repeat; if not, PSC is final.
//  3. The initial ideal candidate is PSC minus arguments attacked from
//     within PSC.
//  4. Drop any candidate member not defended by the candidate itself,
//     repeating to a fixpoint.
func computeIdeal(a *af.AF, g *labeling.Labeling, newSession sessionFactory) ([]int, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Admissible(s, a, g, in, out)

	psc := raset.NewEmpty(a.N)
	for i := 0; i < a.N; i++ {
		if g.Get(i) != labeling.OUT {
			psc.Add(i)
		}
	}

	onerunonly := true
	for {
		var clause []int
		for _, i := range psc.Elements() {
			for _, p := range a.Attackers(i) {
				clause = append(clause, in[p])
			}
		}
		if len(clause) == 0 {
			break
		}
		s.AddClause(clause...)
		outcome, err := s.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			break
		}
		for i := 0; i < a.N; i++ {
			if s.Value(in[i]) > 0 {
				for _, c := range a.Attacked(i) {
					psc.Remove(c)
				}
			}
		}
		onerunonly = false
	}

	if onerunonly {
		return g.INSet(), nil
	}
	if psc.Len() == 0 {
		return nil, nil
	}

	ideal := raset.NewEmpty(a.N)
	for _, i := range psc.Elements() {
		attackedWithinPSC := false
		for _, p := range a.Attackers(i) {
			if psc.Contains(p) {
				attackedWithinPSC = true
				break
			}
		}
		if !attackedWithinPSC {
			ideal.Add(i)
		}
	}

	for {
		changed := false
		for _, arg := range append([]int(nil), ideal.Elements()...) {
			keep := true
			for _, attacker := range a.Attackers(arg) {
				defended := false
				for _, defender := range a.Attackers(attacker) {
					if ideal.Contains(defender) {
						defended = true
						break
					}
				}
				if !defended {
					keep = false
					break
				}
			}
			if !keep {
				ideal.Remove(arg)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return sortedCopy(ideal.Elements()), nil
}

// solveSEID answers SE-ID with the ideal extension as witness.
func solveSEID(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	ideal, err := computeIdeal(a, g, newSession)
	if err != nil {
		return nil, err
	}
	return &Result{Witness: ideal, HasWitness: true}, nil
}

// solveDCDSIdeal answers both DC-ID and DS-ID: since the ideal extension
// is unique, credulous and skeptical acceptance under ideal semantics
// coincide with plain membership in it.
func solveDCDSIdeal(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	ideal, err := computeIdeal(a, g, newSession)
	if err != nil {
		return nil, err
	}
	inIdeal := false
	for _, x := range ideal {
		if x == spec.Arg {
			inIdeal = true
			break
		}
	}
	res := &Result{Decision: inIdeal, HasDecision: true}
	if spec.Witness {
		res.Witness, res.HasWitness = ideal, true
	}
	return res, nil
}
