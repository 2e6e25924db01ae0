// Package iccma parses the ICCMA23 ("i23") abstract argumentation
// framework format: a single "p af N" header line declaring the argument
// count, arguments numbered 1..N implicitly, and "i j" attack lines.
// Comment lines start with '#'.
package iccma

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mthimm/taas-fudge-go/af"
)

// Sentinel errors for malformed i23 input.
var (
	ErrMissingHeader  = errors.New("iccma: missing \"p af N\" header line")
	ErrMalformedLine  = errors.New("iccma: malformed line")
	ErrArgumentOutOfRange = errors.New("iccma: attack references an argument id outside [1,N]")
)

// Parse reads an i23-formatted framework. Argument ids are translated
// from the file's 1-based numbering to the dense 0..N-1 space af.AF uses;
// the returned framework's Names field is left nil since i23 arguments
// have no names beyond their number.
func Parse(r io.Reader) (*af.AF, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	n := -1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "p af") {
			return nil, fmt.Errorf("%w: expected \"p af N\", got %q", ErrMissingHeader, line)
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		count, err := strconv.Atoi(fields[2])
		if err != nil || count < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		n = count
		break
	}
	if n < 0 {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, ErrMissingHeader
	}

	var edges [][2]int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		s, errS := strconv.Atoi(fields[0])
		t, errT := strconv.Atoi(fields[1])
		if errS != nil || errT != nil {
			return nil, fmt.Errorf("%w: %q", ErrMalformedLine, line)
		}
		if s < 1 || s > n || t < 1 || t > n {
			return nil, fmt.Errorf("%w: %q", ErrArgumentOutOfRange, line)
		}
		edges = append(edges, [2]int{s - 1, t - 1})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return af.New(n, edges)
}
