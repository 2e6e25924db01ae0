package satsolver

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"
)

// giniSession wraps github.com/irifrance/gini, the only incremental SAT
// solver available in the retrieval pack, bridging our signed-int DIMACS
// literal convention through z.Dimacs2Lit.
type giniSession struct {
	g          *gini.Gini
	lastClosed bool
}

func newGiniSession() *giniSession {
	return &giniSession{lastClosed: true}
}

func (s *giniSession) Init(nVars int) {
	s.g = gini.New()
	// Pre-allocate variables 1..nVars so callers can freely reference ids
	// up to nVars without per-variable setup calls.
	for i := 0; i < nVars; i++ {
		s.g.Lit()
	}
	s.lastClosed = true
}

func (s *giniSession) Add(lit int) {
	if lit == 0 {
		s.g.Add(z.LitNull)
		s.lastClosed = true
		return
	}
	if s.lastClosed {
		s.lastClosed = false
	}
	s.g.Add(z.Dimacs2Lit(lit))
}

func (s *giniSession) AddClause(lits ...int) {
	if !s.lastClosed {
		panic(ErrClauseNotClosed)
	}
	for _, l := range lits {
		s.g.Add(z.Dimacs2Lit(l))
	}
	s.g.Add(z.LitNull)
}

func (s *giniSession) Assume(lit int) {
	s.g.Assume(z.Dimacs2Lit(lit))
}

func (s *giniSession) Solve() (Outcome, error) {
	switch s.g.Solve() {
	case 1:
		return SAT, nil
	case -1:
		return UNSAT, nil
	default:
		return 0, ErrSATBackend
	}
}

func (s *giniSession) Value(v int) int {
	if s.g.Value(z.Dimacs2Lit(v)) {
		return v
	}
	return -v
}

func (s *giniSession) Free() {
	s.g = nil
}
