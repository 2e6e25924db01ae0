// Package labeling implements the partial 3-valued argument labeling
// {IN, OUT, UNDEC} that every task solver in this module passes by
// reference: the grounded extension, encoding "hard facts", and witness
// extensions are all labelings.
package labeling

import (
	"bytes"
	"fmt"

	"github.com/mthimm/taas-fudge-go/internal/bitset"
)

// Label is one of the three argument labels.
type Label int

const (
	UNDEC Label = iota
	IN
	OUT
)

// Labeling is a partial 3-valued labeling over an AF's argument ids. In
// two-valued mode only In is meaningful and every argument is implicitly
// IN or OUT; otherwise an argument with neither bit set is UNDEC. There is
// no separate "unlabeled" state: Get reports IN for an argument whose In
// and Out bits are both set.
type Labeling struct {
	In        *bitset.Set
	Out       *bitset.Set
	TwoValued bool
	numArgs   int
}

// New allocates a Labeling over n arguments with every bit initially
// unset, so every argument starts UNDEC (OUT in two-valued mode).
func New(n int, twoValued bool) *Labeling {
	return &Labeling{
		In:        bitset.New(n),
		Out:       bitset.New(n),
		TwoValued: twoValued,
		numArgs:   n,
	}
}

// Get returns the label of argument a.
func (l *Labeling) Get(a int) Label {
	if l.TwoValued {
		if l.In.Get(a) {
			return IN
		}
		return OUT
	}
	switch {
	case l.In.Get(a):
		return IN
	case l.Out.Get(a):
		return OUT
	default:
		return UNDEC
	}
}

// SetIn labels a as IN.
func (l *Labeling) SetIn(a int) { l.In.Set(a) }

// SetOut labels a as OUT.
func (l *Labeling) SetOut(a int) {
	if l.TwoValued {
		l.In.Unset(a)
		return
	}
	l.Out.Set(a)
}

// Clone returns an independent copy.
func (l *Labeling) Clone() *Labeling {
	c := New(l.numArgs, l.TwoValued)
	l.In.CloneInto(c.In)
	l.Out.CloneInto(c.Out)
	return c
}

// AllDecided reports whether every argument is IN or OUT (no UNDEC
// remains). Always true in two-valued mode.
func (l *Labeling) AllDecided() bool {
	if l.TwoValued {
		return true
	}
	for i := 0; i < l.numArgs; i++ {
		if l.Get(i) == UNDEC {
			return false
		}
	}
	return true
}

// INSet returns the ids labeled IN, in ascending order.
func (l *Labeling) INSet() []int {
	var out []int
	for i := l.In.NextSetBit(0); i != -1; i = l.In.NextSetBit(i + 1) {
		out = append(out, i)
	}
	return out
}

// String renders the IN set in the ICCMA "w id1 id2 ..." witness format,
// translating each id through the caller-supplied nameOf function (for
// example af.AF.Name).
func (l *Labeling) String(nameOf func(int) string) string {
	var buf bytes.Buffer
	buf.WriteString("w")
	for _, a := range l.INSet() {
		buf.WriteByte(' ')
		buf.WriteString(nameOf(a))
	}
	return buf.String()
}

// GoString supports %#v style debug printing without a name table.
func (l *Labeling) GoString() string {
	return fmt.Sprintf("Labeling{in=%v}", l.INSet())
}
