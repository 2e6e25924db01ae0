// Package satsolver defines the minimal incremental SAT contract the
// reasoning core needs — init/add/assume/solve/value/free — and three
// backends that satisfy it: a live incremental solver (gini), an
// out-of-process DIMACS adapter, and a buffering one-shot adapter.
//
// Variable ids are 1-based, matching DIMACS and the IPASIR convention the
// original solver's adapters are built against; a literal is a signed int,
// and 0 closes the clause under construction in the streaming Add API.
package satsolver

import (
	"errors"
	"fmt"
)

// Outcome is the result of a Solve call.
type Outcome int

const (
	// UNSAT and SAT intentionally mirror the DIMACS/IPASIR return codes
	// (20/10) used throughout the spec's external interfaces, so callers
	// translating to/from those codes don't need a separate table.
	UNSAT Outcome = 20
	SAT   Outcome = 10
)

// Sentinel errors. ErrClauseNotClosed is a programmer error (an
// add_clause* call interleaved with an open streaming Add) and is raised
// as a panic, not returned, mirroring the source's abort-on-assertion
// behavior (spec §7: "Assertion violation").
var (
	ErrNoSATBinary = errors.New("satsolver: external backend requires a SAT binary path")
	ErrSATBackend  = errors.New("satsolver: SAT backend returned neither SAT nor UNSAT")
)

// ErrClauseNotClosed is panicked when a batched AddClause call is issued
// while a streaming clause (opened via Add) has not yet been closed with
// a terminating 0.
var ErrClauseNotClosed = errors.New("satsolver: previous clause not closed")

// Session is the adapter contract every task solver programs against.
type Session interface {
	// Init starts a fresh problem with variable ids in [1, nVars].
	Init(nVars int)
	// Add appends a literal to the clause under construction; lit == 0
	// closes it.
	Add(lit int)
	// AddClause appends a whole clause in one call.
	AddClause(lits ...int)
	// Assume assumes lit for the next Solve call only.
	Assume(lit int)
	// Solve consumes all pending assumptions (clearing them) and returns
	// SAT, UNSAT, or an error.
	Solve() (Outcome, error)
	// Value returns +v if variable v is true in the last SAT model, -v if
	// false. Only valid immediately after a SAT outcome.
	Value(v int) int
	// Free releases any resources held by the session.
	Free()
}

// Kind selects which Session implementation New constructs.
type Kind int

const (
	// KindGini is the live incremental backend (adapter (a) in spec §4.3),
	// the one the reasoning core is written against.
	KindGini Kind = iota
	// KindExternal spawns an external SAT binary per Solve call (adapter (b)).
	KindExternal
	// KindBuffer accumulates clauses and flushes into a fresh one-shot
	// solver on every Solve (adapter (c)).
	KindBuffer
)

// New constructs a Session of the given kind. satBinaryPath is required
// (and otherwise ignored) for KindExternal.
func New(kind Kind, satBinaryPath string) (Session, error) {
	switch kind {
	case KindGini:
		return newGiniSession(), nil
	case KindExternal:
		if satBinaryPath == "" {
			return nil, ErrNoSATBinary
		}
		return newExternalSession(satBinaryPath), nil
	case KindBuffer:
		return newBufferSession(), nil
	default:
		return nil, fmt.Errorf("satsolver: unknown backend kind %d", kind)
	}
}
