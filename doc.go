// Package taasfudge is a reasoning engine for abstract argumentation
// frameworks (AFs).
//
// An AF is a directed graph of arguments and attacks. Given an AF, a query
// argument, and a choice of extension semantics, the engine decides whether
// the argument is credulously or skeptically accepted, and can compute
// extensions (witnesses) on demand.
//
// Packages, leaves first:
//
//	internal/bitset — fixed-width bit vector with ascending iteration
//	internal/raset  — O(1) random-access set over [0,n)
//	af              — the AF model (dense int ids, CSR attack arrays)
//	labeling        — partial 3-valued labelings
//	grounded        — the grounded-extension fixpoint
//	satsolver       — the SAT adapter contract and its three backends
//	encoding        — conflict-free/admissible/complete/stable clause generators
//	reasoner        — the 18 task/semantics solvers plus the easy-case dispatcher
//	dynamic         — the incremental (IPAFAIR-shaped) API
//	format/iccma    — the ICCMA-23 "p af" input format
//	format/tgf      — the tgf text graph format
//	cmd/taasfudge   — the competition-style CLI
//
// See SPEC_FULL.md and DESIGN.md at the repository root for the full
// requirements and the grounding ledger behind each package.
package taasfudge
