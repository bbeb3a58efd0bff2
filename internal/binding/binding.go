// Package binding stores gesture-to-command bindings and dispatches candidate
// gestures against them.
package binding

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/quadtap/quadtap/internal/zone"
)

// Pattern length limits, and the separator between pattern and action in a
// binding spec like "gh-notify-send hi".
const (
	MinPatternLen = 2
	MaxPatternLen = 5
	separator     = '-'
)

// ErrMalformedPattern reports a binding spec whose gesture pattern is invalid.
var ErrMalformedPattern = errors.New("malformed gesture pattern")

// Binding pairs a gesture pattern with the shell command it triggers.
type Binding struct {
	Pattern string
	Action  string
}

// Table is an ordered collection of bindings. Bindings declared later are
// matched first, so Dispatch scans in reverse insertion order.
type Table struct {
	bindings []Binding
	exec     Executor
	out      io.Writer
}

// NewTable creates an empty table. Matched actions run through exec, and one
// match line per dispatch is written to out.
func NewTable(exec Executor, out io.Writer) *Table {
	return &Table{exec: exec, out: out}
}

// Add parses a "<pattern>-<action>" spec and stores the binding. The pattern
// must be 2 to 5 zone symbols followed by the separator; everything after the
// separator is the action, taken verbatim. Returns the parsed binding or an
// error wrapping ErrMalformedPattern.
func (t *Table) Add(spec string) (Binding, error) {
	sep := strings.IndexByte(spec, separator)
	if sep < 0 || sep > MaxPatternLen {
		return Binding{}, fmt.Errorf("%w: no separator within the first %d characters of %q",
			ErrMalformedPattern, MaxPatternLen, spec)
	}
	pattern := spec[:sep]
	if len(pattern) < MinPatternLen {
		return Binding{}, fmt.Errorf("%w: pattern %q shorter than %d symbols",
			ErrMalformedPattern, pattern, MinPatternLen)
	}
	for i := 0; i < len(pattern); i++ {
		if !zone.Symbol(pattern[i]).Valid() {
			return Binding{}, fmt.Errorf("%w: %q is not a zone symbol",
				ErrMalformedPattern, pattern[i:i+1])
		}
	}
	b := Binding{Pattern: pattern, Action: spec[sep+1:]}
	t.bindings = append(t.bindings, b)
	return b, nil
}

// Len returns the number of configured bindings.
func (t *Table) Len() int {
	return len(t.bindings)
}

// Dispatch looks up the first binding whose pattern exactly equals candidate,
// scanning newest-declared first. On a match it writes the match line, runs
// the action and returns the binding. Patterns only match on exact equality,
// never as a prefix, so a shorter binding can fire before a longer compatible
// one finishes landing.
func (t *Table) Dispatch(candidate string) (Binding, bool) {
	for i := len(t.bindings) - 1; i >= 0; i-- {
		b := t.bindings[i]
		if b.Pattern != candidate {
			continue
		}
		fmt.Fprintf(t.out, "%s -> %s\n", b.Pattern, b.Action)
		if err := t.exec.Run(b.Action); err != nil {
			log.Printf("action %q: %v", b.Action, err)
		}
		return b, true
	}
	return Binding{}, false
}
