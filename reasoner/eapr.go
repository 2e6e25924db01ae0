package reasoner

import (
	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/internal/raset"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// solveEAPR enumerates every skeptically-accepted argument under preferred
// semantics (spec §4.9). It repeats computeIdeal's PSC and ideal-extension
// steps inline, takes the resulting ideal extension as a starting
// accepted core ACC, grows a "strong PSC" of arguments that occur IN in
// some admissible set but are not yet in ACC, and finally decides each
// strong-PSC member with the DS-PR fudge procedure (§4.8), seeded so that
// ACC is always forced IN.
func solveEAPR(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	outerSolver, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer outerSolver.Free()
	encoding.Admissible(outerSolver, a, g, in, out)

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
		outerSolver.AddClause(clause...)
		outcome, err := outerSolver.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			break
		}
		for i := 0; i < a.N; i++ {
			if outerSolver.Value(in[i]) > 0 {
				for _, c := range a.Attacked(i) {
					psc.Remove(c)
				}
			}
		}
		onerunonly = false
	}

	if onerunonly {
		return &Result{Witness: g.INSet(), HasWitness: true}, nil
	}

	for i := 0; i < a.N; i++ {
		if g.Get(i) == labeling.IN {
			psc.Add(i)
		}
	}
	if psc.Len() == 0 {
		return &Result{Witness: nil, HasWitness: true}, nil
	}

	acc := raset.NewEmpty(a.N)
	for _, i := range psc.Elements() {
		attackedWithinPSC := false
		for _, p := range a.Attackers(i) {
			if psc.Contains(p) {
				attackedWithinPSC = true
				break
			}
		}
		if !attackedWithinPSC {
			acc.Add(i)
		}
	}
	for {
		changed := false
		for _, arg := range append([]int(nil), acc.Elements()...) {
			keep := true
			for _, attacker := range a.Attackers(arg) {
				defended := false
				for _, defender := range a.Attackers(attacker) {
					if acc.Contains(defender) {
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
				acc.Remove(arg)
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	// Strong PSC: undecided arguments in psc \ acc that occur IN in some
	// admissible set.
	admTest2, err := newSession(2 * a.N)
	if err != nil {
		return nil, err
	}
	defer admTest2.Free()
	encoding.Admissible(admTest2, a, g, in, out)

	spsc := raset.NewEmpty(a.N)
	for {
		var clause []int
		for _, i := range psc.Elements() {
			if !acc.Contains(i) && !spsc.Contains(i) {
				clause = append(clause, in[i])
			}
		}
		if len(clause) == 0 {
			break
		}
		admTest2.AddClause(clause...)
		outcome, err := admTest2.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			break
		}
		for i := 0; i < a.N; i++ {
			if g.Get(i) != labeling.UNDEC {
				continue
			}
			if admTest2.Value(in[i]) > 0 && psc.Contains(i) && !acc.Contains(i) {
				spsc.Add(i)
			}
		}
	}

	for _, arg := range spsc.Elements() {
		accepted, err := dsprOnce(spec, a, g, newSession, arg, acc)
		if err != nil {
			return nil, err
		}
		if accepted {
			acc.Add(arg)
		}
	}

	return &Result{Witness: sortedCopy(acc.Elements()), HasWitness: true}, nil
}

// dsprOnce runs the DS-PR fudge procedure for a single argument, forcing
// every member of forceIn into every admissible set considered (spec §4.9:
// "run the DS-PR procedure seeded with ACC forced IN").
func dsprOnce(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory, arg int, forceIn *raset.Set) (bool, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	inAtt, outAtt := alloc.AllocN(a.N), alloc.AllocN(a.N)
	aux := alloc.AllocN(a.NumAttacks())

	admTest, err := newSession(2 * a.N)
	if err != nil {
		return false, err
	}
	defer admTest.Free()
	encoding.Admissible(admTest, a, g, in, out)

	attAdmTest, err := newSession(alloc.Count())
	if err != nil {
		return false, err
	}
	defer attAdmTest.Free()
	encoding.Admissible(attAdmTest, a, g, in, out)
	encoding.Admissible(attAdmTest, a, g, inAtt, outAtt)
	encoding.CrossAttack(attAdmTest, a, in, inAtt, aux)

	for _, x := range forceIn.Elements() {
		admTest.AddClause(in[x])
		attAdmTest.AddClause(in[x])
		attAdmTest.AddClause(inAtt[x])
	}
	attAdmTest.AddClause(inAtt[arg])

	for {
		attAdmTest.Assume(inAtt[arg])
		outcome, err := attAdmTest.Solve()
		if err != nil {
			return false, err
		}
		if outcome == satsolver.UNSAT {
			return true, nil
		}
		admTest.Assume(in[arg])
		for i := 0; i < a.N; i++ {
			if attAdmTest.Value(in[i]) > 0 {
				admTest.Assume(in[i])
			}
		}
		outcome, err = admTest.Solve()
		if err != nil {
			return false, err
		}
		if outcome == satsolver.UNSAT {
			return false, nil
		}
		for i := 0; i < a.N; i++ {
			if admTest.Value(in[i]) < 0 {
				attAdmTest.Add(in[i])
			}
		}
		attAdmTest.Add(0)
	}
}
