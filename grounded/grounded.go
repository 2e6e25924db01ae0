// Package grounded computes the grounded extension of an AF: the
// ⊆-least complete extension, unique and computable in polynomial time.
//
// It is used both as a standalone answer for the GR-family tracks and as
// a pre-solver whose result is injected as hard facts into every SAT
// encoding (an argument already known IN or OUT never needs its own
// variable-level case analysis).
package grounded

import (
	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/labeling"
)

// Compute runs the Dung-characteristic fixpoint starting from the
// framework's initial (unattacked) arguments.
//
// The algorithm: seed In with the initial arguments and a worklist with
// the same; while the worklist is non-empty, pop an argument, mark every
// argument it attacks as Out (if not already), and for each argument
// attacked by that now-defeated attacker, decrement a remaining-attacker
// counter — once it reaches zero the argument is defended on every side
// and is promoted to In and enqueued. This terminates because each
// argument enters In at most once, and runs in O(|arguments|+|attacks|).
//
// The counter is a private copy (af.AF.InDegreeSnapshot), so the AF passed
// in is never mutated by this computation.
func Compute(a *af.AF) *labeling.Labeling {
	g := labeling.New(a.N, false)
	remaining := a.InDegreeSnapshot()

	// Flat slice worklist (LIFO), replacing the source's linked-list stack
	// per the design note on removing per-edge allocation.
	worklist := make([]int, 0, a.N)
	for i := a.Initial.NextSetBit(0); i != -1; i = a.Initial.NextSetBit(i + 1) {
		g.SetIn(i)
		worklist = append(worklist, i)
	}

	for len(worklist) > 0 {
		last := len(worklist) - 1
		arg := worklist[last]
		worklist = worklist[:last]

		for _, child := range a.Attacked(arg) {
			if g.Out.Get(child) {
				continue
			}
			g.SetOut(child)
			for _, grandchild := range a.Attacked(child) {
				if remaining[grandchild] == 0 {
					continue
				}
				remaining[grandchild]--
				if remaining[grandchild] == 0 && !g.Out.Get(grandchild) {
					g.SetIn(grandchild)
					worklist = append(worklist, grandchild)
				}
			}
		}
	}

	return g
}
