// Package encoding builds the propositional clause sets the task solvers
// reduce acceptance/extension problems to: conflict-free, admissible,
// complete, stable, and a cross-pair "set A attacks set B" encoding used
// by the two-session DS-PR and EA-PR procedures.
//
// Every generator that introduces an in[i]/out[i] variable pair also
// injects the grounded extension as hard unit-clause facts (an argument
// already known IN or OUT from the grounded pre-solve never needs its own
// case analysis downstream), except ConflictFree, which deliberately
// leaves grounded facts out: a conflict-free set need not contain the
// grounded extension (stage semantics, §4.7 SE-STG, is defined over
// conflict-free sets precisely so it can disagree with grounded).
package encoding

import (
	"github.com/mthimm/taas-fudge-go/af"
	"github.com/mthimm/taas-fudge-go/labeling"
	"github.com/mthimm/taas-fudge-go/satsolver"
)

// VarAlloc hands out sequential 1-based SAT variable ids, so encodings
// that need multiple disjoint variable-copy ranges (DS-PR, EA-PR) lay
// them out from a single base offset instead of parallel arrays with
// hand-managed offsets (spec §9 design note).
type VarAlloc struct {
	next int
}

// NewVarAlloc returns an allocator starting at variable 1.
func NewVarAlloc() *VarAlloc { return &VarAlloc{next: 1} }

// Alloc returns the next free variable id.
func (v *VarAlloc) Alloc() int {
	id := v.next
	v.next++
	return id
}

// AllocN returns n fresh, contiguous variable ids.
func (v *VarAlloc) AllocN(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v.Alloc()
	}
	return out
}

// Count returns the number of variables allocated so far.
func (v *VarAlloc) Count() int { return v.next - 1 }

// ConflictFree adds clauses asserting a model represents a conflict-free
// set: no argument is both in and out, out[i] requires some attacker in,
// and two mutually-attacking arguments cannot both be in. Grounded facts
// are intentionally not injected (see package doc). Returns true iff the
// grounded extension alone already decides every argument.
func ConflictFree(s satsolver.Session, a *af.AF, g *labeling.Labeling, inVars, outVars []int) bool {
	allGrounded := true
	for i := 0; i < a.N; i++ {
		s.AddClause(-inVars[i], -outVars[i])
		if g.Get(i) == labeling.UNDEC {
			allGrounded = false
		}
		outClause := []int{-outVars[i]}
		for _, parent := range a.Attackers(i) {
			s.AddClause(-inVars[parent], outVars[i])
			outClause = append(outClause, inVars[parent])
		}
		s.AddClause(outClause...)
	}
	return allGrounded
}

// Admissible adds clauses asserting a model represents an admissible set:
// conflict-free, plus every attacker of an in-labeled argument is out.
// Grounded facts are injected as unit clauses. Returns true iff the
// grounded extension alone already decides every argument.
func Admissible(s satsolver.Session, a *af.AF, g *labeling.Labeling, inVars, outVars []int) bool {
	allGrounded := true
	for i := 0; i < a.N; i++ {
		s.AddClause(-inVars[i], -outVars[i])
		switch g.Get(i) {
		case labeling.IN:
			s.AddClause(inVars[i])
			continue
		case labeling.OUT:
			s.AddClause(outVars[i])
			continue
		}
		allGrounded = false
		outClause := []int{-outVars[i]}
		for _, parent := range a.Attackers(i) {
			s.AddClause(-inVars[i], outVars[parent])
			outClause = append(outClause, inVars[parent])
		}
		s.AddClause(outClause...)
	}
	return allGrounded
}

// Complete adds clauses asserting a model represents a complete
// extension: admissible, plus every argument all of whose attackers are
// out must itself be in. Returns true iff the grounded extension alone
// already decides every argument.
func Complete(s satsolver.Session, a *af.AF, g *labeling.Labeling, inVars, outVars []int) bool {
	allGrounded := true
	for i := 0; i < a.N; i++ {
		s.AddClause(-inVars[i], -outVars[i])
		switch g.Get(i) {
		case labeling.IN:
			s.AddClause(inVars[i])
			continue
		case labeling.OUT:
			s.AddClause(outVars[i])
			continue
		}
		allGrounded = false
		forceOut := []int{-outVars[i]}
		forceIn := []int{inVars[i]}
		for _, parent := range a.Attackers(i) {
			s.AddClause(-inVars[i], outVars[parent])
			s.AddClause(-inVars[parent], outVars[i])
			forceOut = append(forceOut, inVars[parent])
			forceIn = append(forceIn, -outVars[parent])
		}
		s.AddClause(forceOut...)
		s.AddClause(forceIn...)
	}
	return allGrounded
}

// Stable adds clauses asserting a model represents a stable extension:
// every argument with at least one attacker is in, or attacked by one
// that is in; no two mutual attackers are both in. Only in-variables are
// used (every argument is implicitly in or out).
func Stable(s satsolver.Session, a *af.AF, g *labeling.Labeling, inVars []int) {
	for i := 0; i < a.N; i++ {
		switch g.Get(i) {
		case labeling.IN:
			s.AddClause(inVars[i])
		case labeling.OUT:
			s.AddClause(-inVars[i])
		}
		parents := a.Attackers(i)
		if len(parents) == 0 {
			continue
		}
		clause := []int{inVars[i]}
		for _, parent := range parents {
			s.AddClause(-inVars[i], -inVars[parent])
			clause = append(clause, inVars[parent])
		}
		s.AddClause(clause...)
	}
}

// CrossAttack adds clauses asserting that the set encoded by inVarsA
// attacks the set encoded by inVarsB: one auxiliary boolean e_jk per
// attack j->k (e_jk <-> inVarsA[j] && inVarsB[k]), plus an at-least-one
// clause over all e_jk. auxVars must hold exactly a.NumAttacks() ids,
// already allocated and passed to the session's Init before this is
// called (CrossAttack only emits clauses, never allocates variables
// itself, so the caller's variable count is known before Init).
func CrossAttack(s satsolver.Session, a *af.AF, inVarsA, inVarsB, auxVars []int) {
	atLeastOne := make([]int, 0, len(auxVars))
	next := 0
	for i := 0; i < a.N; i++ {
		for _, parent := range a.Attackers(i) {
			e := auxVars[next]
			next++
			atLeastOne = append(atLeastOne, e)
			// e -> inVarsA[parent]
			s.AddClause(-e, inVarsA[parent])
			// e -> inVarsB[i]
			s.AddClause(-e, inVarsB[i])
			// inVarsA[parent] && inVarsB[i] -> e
			s.AddClause(e, -inVarsB[i], -inVarsA[parent])
		}
	}
	if len(atLeastOne) > 0 {
		s.AddClause(atLeastOne...)
	}
}
