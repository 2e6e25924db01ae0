package satsolver

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// bufferSession accumulates clauses and assumptions into plain slices and
// hands them to a freshly constructed one-shot gini instance on every
// Solve. Unlike giniSession it never carries solver-internal state (no
// learned clauses, no decision heuristics) across Solve calls — useful
// when a caller wants a guaranteed-clean re-solve of a growing clause set
// without the process-spawn overhead of the external backend.
type bufferSession struct {
	nVars       int
	clauses     [][]int
	cur         []int
	assumptions []int
	model       []bool
}

func newBufferSession() *bufferSession {
	return &bufferSession{}
}

func (s *bufferSession) Init(nVars int) {
	s.nVars = nVars
	s.clauses = nil
	s.cur = nil
	s.assumptions = nil
}

func (s *bufferSession) Add(lit int) {
	if lit == 0 {
		s.clauses = append(s.clauses, s.cur)
		s.cur = nil
		return
	}
	s.cur = append(s.cur, lit)
}

func (s *bufferSession) AddClause(lits ...int) {
	if len(s.cur) != 0 {
		panic(ErrClauseNotClosed)
	}
	clause := make([]int, len(lits))
	copy(clause, lits)
	s.clauses = append(s.clauses, clause)
}

func (s *bufferSession) Assume(lit int) {
	s.assumptions = append(s.assumptions, lit)
}

func (s *bufferSession) Solve() (Outcome, error) {
	g := gini.New()
	for i := 0; i < s.nVars; i++ {
		g.Lit()
	}
	for _, clause := range s.clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}
	assumeLits := make([]z.Lit, len(s.assumptions))
	for i, a := range s.assumptions {
		assumeLits[i] = z.Dimacs2Lit(a)
	}
	g.Assume(assumeLits...)
	s.assumptions = nil

	var outcome Outcome
	switch g.Solve() {
	case 1:
		outcome = SAT
	case -1:
		outcome = UNSAT
	default:
		return 0, ErrSATBackend
	}

	if outcome == SAT {
		s.model = make([]bool, s.nVars+1)
		for v := 1; v <= s.nVars; v++ {
			s.model[v] = g.Value(z.Dimacs2Lit(v))
		}
	}
	return outcome, nil
}

func (s *bufferSession) Value(v int) int {
	if s.model[v] {
		return v
	}
	return -v
}

func (s *bufferSession) Free() {
	s.clauses = nil
	s.cur = nil
	s.assumptions = nil
	s.model = nil
}
