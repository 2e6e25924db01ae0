package reasoner

import (
	"fmt"

	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/encoding"
	"github.com/mthimm/taas-fudge-go/internal/raset"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// dispatchCE resolves a CE-* (count extensions) track.
func dispatchCE(spec TaskSpec, a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	switch spec.Track.Semantics {
	case CO:
		return countComplete(a, g, newSession)
	case ST:
		return countStable(a, g, newSession)
	case PR:
		return countPreferred(a, g, newSession)
	default:
		return nil, fmt.Errorf("%w: CE-%v", ErrUnknownTrack, spec.Track.Semantics)
	}
}

// countComplete implements CE-CO (spec §4.6): repeatedly solve the complete
// encoding; each model counts one extension and is blocked by negating its
// exact IN vector.
func countComplete(a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Complete(s, a, g, in, out)

	count := 0
	for {
		outcome, err := s.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			break
		}
		count++
		var block []int
		for i := 0; i < a.N; i++ {
			if s.Value(in[i]) > 0 {
				block = append(block, -in[i])
			} else {
				block = append(block, in[i])
			}
		}
		if len(block) == 0 {
			break
		}
		s.AddClause(block...)
	}
	return &Result{Count: count, HasCount: true}, nil
}

// countStable implements CE-ST (spec §4.6): repeatedly solve the stable
// encoding; each model counts one extension and is blocked by requiring
// some previously-OUT argument to become IN.
func countStable(a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in := alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Stable(s, a, g, in)

	count := 0
	for {
		outcome, err := s.Solve()
		if err != nil {
			return nil, err
		}
		if outcome == satsolver.UNSAT {
			break
		}
		count++
		var block []int
		for i := 0; i < a.N; i++ {
			if s.Value(in[i]) < 0 {
				block = append(block, in[i])
			}
		}
		if len(block) == 0 {
			break
		}
		s.AddClause(block...)
	}
	return &Result{Count: count, HasCount: true}, nil
}

// countPreferred implements CE-PR (spec §4.6): for each preferred
// extension, an inner absorb-or-block loop (identical in shape to
// solveSEPR) grows a candidate IN set to a maximal admissible set, then an
// outer blocking clause forbids any future superset of that maximal set,
// forcing the next outer iteration to drop at least one of its members.
// If zero non-empty preferred extensions are found, the empty set is the
// unique preferred extension, and the count is reported as 1.
func countPreferred(a *af.AF, g *labeling.Labeling, newSession sessionFactory) (*Result, error) {
	alloc := encoding.NewVarAlloc()
	in, out := alloc.AllocN(a.N), alloc.AllocN(a.N)
	s, err := newSession(alloc.Count())
	if err != nil {
		return nil, err
	}
	defer s.Free()
	encoding.Admissible(s, a, g, in, out)

	var atLeastOne []int
	for i := 0; i < a.N; i++ {
		atLeastOne = append(atLeastOne, in[i])
	}
	s.AddClause(atLeastOne...)

	count := 0
	admSet := raset.NewEmpty(a.N)
	temp := raset.NewEmpty(a.N)
	for {
		admSet.Reset()
		foundAny := false
		for {
			temp.Reset()
			outcome, err := s.Solve()
			if err != nil {
				return nil, err
			}
			if outcome == satsolver.UNSAT {
				break
			}
			foundAny = true
			var block []int
			for i := 0; i < a.N; i++ {
				if s.Value(in[i]) > 0 {
					temp.Add(i)
				} else {
					block = append(block, in[i])
				}
			}
			s.AddClause(block...)
			for _, x := range temp.Elements() {
				admSet.Add(x)
				s.Assume(in[x])
			}
		}
		if !foundAny {
			break
		}
		count++
		var forbidSuperset []int
		for i := 0; i < a.N; i++ {
			if !admSet.Contains(i) {
				forbidSuperset = append(forbidSuperset, in[i])
			}
		}
		s.AddClause(forbidSuperset...)
	}
	if count == 0 {
		count = 1
	}
	return &Result{Count: count, HasCount: true}, nil
}
