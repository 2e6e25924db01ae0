// Package raset implements a "random access set": a set of integers in
// [0,n) supporting O(1) Contains, Add, Remove, and uniform Random, plus
// Reset, which clears the membership bitset word by word.
//
// It is the packed-array counterpart to bitset.Set: the bitset answers
// "is x a member" in O(1), while raset additionally answers "give me
// element i" and "give me a random member" in O(1), at the cost of
// carrying both a bitset and two int arrays.
package raset

import (
	"math/rand/v2"

	"github.com/mthimm/taas-fudge-go/internal/bitset"
)

// Set is a random-access set over [0, max).
type Set struct {
	members *bitset.Set
	elems   []int // elems[0:n] are the current members, in insertion/swap order
	index   []int // index[x] is the position of x within elems, valid only while x is a member
	n       int
	max     int
}

// NewEmpty returns an empty Set capable of holding elements in [0, max).
func NewEmpty(max int) *Set {
	return &Set{
		members: bitset.New(max),
		elems:   make([]int, max),
		index:   make([]int, max),
		max:     max,
	}
}

// Reset removes every element, in O(max/64) time (one pass over the
// membership bitset's words).
func (s *Set) Reset() {
	s.members.UnsetAll()
	s.n = 0
}

// Contains reports whether x is a member.
func (s *Set) Contains(x int) bool { return s.members.Get(x) }

// Len returns the number of members.
func (s *Set) Len() int { return s.n }

// Add inserts x, returning true iff the set was modified.
func (s *Set) Add(x int) bool {
	if s.Contains(x) {
		return false
	}
	s.members.Set(x)
	s.elems[s.n] = x
	s.index[x] = s.n
	s.n++
	return true
}

// Remove deletes x, returning true iff the set was modified. O(1) via the
// swap-with-last trick: the removed slot is filled with the current last
// element, whose index entry is then corrected.
func (s *Set) Remove(x int) bool {
	if !s.Contains(x) {
		return false
	}
	s.members.Unset(x)
	last := s.n - 1
	pos := s.index[x]
	moved := s.elems[last]
	s.elems[pos] = moved
	s.index[moved] = pos
	s.n = last
	return true
}

// At returns the element stored at position i (0 <= i < Len()). Order is
// insertion/swap order, not sorted order.
func (s *Set) At(i int) int { return s.elems[i] }

// Elements returns a read-only view of the current members. The backing
// array is shared with the Set and invalidated by the next Add/Remove;
// callers that need a stable copy must clone it themselves.
func (s *Set) Elements() []int { return s.elems[:s.n] }

// Random returns a uniformly random member, or -1 if the set is empty.
func (s *Set) Random() int {
	if s.n == 0 {
		return -1
	}
	return s.elems[rand.IntN(s.n)]
}

// RandomExcluding returns a uniformly random member not present in ignore,
// or -1 if no such member exists.
func (s *Set) RandomExcluding(ignore *bitset.Set) int {
	candidates := make([]int, 0, s.n)
	for i := 0; i < s.n; i++ {
		if e := s.elems[i]; !ignore.Get(e) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[rand.IntN(len(candidates))]
}
