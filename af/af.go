// Package af defines the central AF (abstract argumentation framework)
// type: a directed graph of dense-integer arguments and attacks, built
// once per input file and read-only afterward for every solver.
//
// Attacks are stored twice, forward and reverse, as CSR-style (offsets +
// targets) dense arrays rather than per-argument linked lists: the whole
// framework is known before any solver runs, so there is no benefit to a
// growable representation, and CSR removes per-edge allocation entirely.
package af

import (
	"errors"
	"fmt"

	"github.com/mthimm/taas-fudge-go/internal/bitset"
)

// Sentinel errors for malformed construction input.
var (
	ErrInvalidArgumentCount = errors.New("af: number of arguments must be non-negative")
	ErrArgumentOutOfRange   = errors.New("af: attack references an argument id outside [0,N)")
)

// AF is an abstract argumentation framework over dense argument ids
// 0..N-1.
type AF struct {
	N int

	// Names optionally maps an argument id back to its source name, for
	// frameworks parsed from tgf. Nil when ids are already canonical
	// (e.g. i23, where output uses the original 1..N numbering directly).
	Names []string

	// CSR forward (attacker -> attacked) and reverse (attacked -> attacker)
	// adjacency.
	outOffsets []int // len N+1
	outTargets []int // len = number of attacks
	inOffsets  []int // len N+1
	inTargets  []int // len = number of attacks

	inDegree []int // inDegree[i] = number of distinct attackers of i

	Initial *bitset.Set // arguments with no attacker
	Loops   *bitset.Set // arguments that attack themselves

	numAttacks int
}

// New builds an AF with n arguments (ids 0..n-1) and the given attack
// pairs [attacker, attacked]. Duplicate pairs collapse to a single attack,
// matching ICCMA tooling behavior (spec data model: "attack multiplicity
// is 1").
func New(n int, attacks [][2]int) (*AF, error) {
	if n < 0 {
		return nil, ErrInvalidArgumentCount
	}
	// Dedup while preserving per-source stable ordering, so CSR construction
	// below is a single deterministic pass.
	seen := make(map[[2]int]struct{}, len(attacks))
	dedup := make([][2]int, 0, len(attacks))
	for _, a := range attacks {
		if a[0] < 0 || a[0] >= n || a[1] < 0 || a[1] >= n {
			return nil, fmt.Errorf("%w: (%d,%d)", ErrArgumentOutOfRange, a[0], a[1])
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		dedup = append(dedup, a)
	}

	out := &AF{N: n, numAttacks: len(dedup)}
	out.buildCSR(n, dedup)
	out.computeInitialAndLoops(dedup)
	return out, nil
}

func (a *AF) buildCSR(n int, attacks [][2]int) {
	outDeg := make([]int, n)
	inDeg := make([]int, n)
	for _, e := range attacks {
		outDeg[e[0]]++
		inDeg[e[1]]++
	}

	a.outOffsets = make([]int, n+1)
	a.inOffsets = make([]int, n+1)
	for i := 0; i < n; i++ {
		a.outOffsets[i+1] = a.outOffsets[i] + outDeg[i]
		a.inOffsets[i+1] = a.inOffsets[i] + inDeg[i]
	}
	a.outTargets = make([]int, len(attacks))
	a.inTargets = make([]int, len(attacks))

	outCursor := append([]int(nil), a.outOffsets[:n]...)
	inCursor := append([]int(nil), a.inOffsets[:n]...)
	for _, e := range attacks {
		from, to := e[0], e[1]
		a.outTargets[outCursor[from]] = to
		outCursor[from]++
		a.inTargets[inCursor[to]] = from
		inCursor[to]++
	}
	a.inDegree = inDeg
}

func (a *AF) computeInitialAndLoops(attacks [][2]int) {
	a.Initial = bitset.New(a.N)
	a.Loops = bitset.New(a.N)
	for i := 0; i < a.N; i++ {
		if a.inDegree[i] == 0 {
			a.Initial.Set(i)
		}
	}
	for _, e := range attacks {
		if e[0] == e[1] {
			a.Loops.Set(e[0])
		}
	}
}

// NumAttacks returns the number of distinct attacks in the framework.
func (a *AF) NumAttacks() int { return a.numAttacks }

// Attackers returns the ids of arguments attacking a, in no particular
// order, as a view into the CSR target array; callers must not mutate it.
func (a *AF) Attackers(arg int) []int {
	return a.inTargets[a.inOffsets[arg]:a.inOffsets[arg+1]]
}

// Attacked returns the ids of arguments attacked by a, as a view into the
// CSR target array; callers must not mutate it.
func (a *AF) Attacked(arg int) []int {
	return a.outTargets[a.outOffsets[arg]:a.outOffsets[arg+1]]
}

// InDegreeSnapshot returns a defensive copy of the in-degree counters. The
// grounded engine decrements a working copy as it simulates attacker
// defeat; handing out a copy here means the AF itself is never mutated by
// that process, regardless of caller discipline.
func (a *AF) InDegreeSnapshot() []int {
	out := make([]int, len(a.inDegree))
	copy(out, a.inDegree)
	return out
}

// HasAttack reports whether from attacks to.
func (a *AF) HasAttack(from, to int) bool {
	for _, t := range a.Attacked(from) {
		if t == to {
			return true
		}
	}
	return false
}

// Name returns the source name for argument id, falling back to its
// 1-based number (id+1) when the AF carries no name table (i.e. it was
// parsed from i23, where the numbers 1..N are the canonical labels).
func (a *AF) Name(id int) string {
	if a.Names != nil && id >= 0 && id < len(a.Names) {
		return a.Names[id]
	}
	return fmt.Sprintf("%d", id+1)
}
