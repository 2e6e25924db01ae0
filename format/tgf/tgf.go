// Package tgf parses the Trivial Graph Format used for named
// argumentation frameworks: one argument name per line, a bare "#"
// separator, then one "attacker attacked" pair per line.
package tgf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mthimm/taas-fudge-go/af"
)

// Sentinel errors for malformed tgf input.
var (
	ErrDuplicateArgument = errors.New("tgf: duplicate argument name")
	ErrUnknownArgument   = errors.New("tgf: attack references an undeclared argument")
	ErrMalformedLine     = errors.New("tgf: malformed attack line")
)

// Parse reads a tgf-formatted framework. Argument names are interned
// once, in file order, into the dense 0..N-1 id space af.AF uses; the
// resulting AF.Names preserves the mapping so output can be rendered
// back in the original vocabulary.
func Parse(r io.Reader) (*af.AF, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var names []string
	ids := make(map[string]int)
	inArgumentSection := true

	var edges [][2]int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "#" {
			inArgumentSection = false
			continue
		}
		if inArgumentSection {
			name := strings.Fields(line)[0]
			if _, exists := ids[name]; exists {
				return nil, fmt.Errorf("%w: %q", ErrDuplicateArgument, name)
			}
			ids[name] = len(names)
			names = append(names, name)
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		s, ok1 := ids[fields[0]]
		t, ok2 := ids[fields[1]]
		if !ok1 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArgument, fields[0])
		}
		if !ok2 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownArgument, fields[1])
		}
		edges = append(edges, [2]int{s, t})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	a, err := af.New(len(names), edges)
	if err != nil {
		return nil, err
	}
	a.Names = names
	return a, nil
}
