// Package puzzle defines puzzle identities and the puzzle data model.
// A puzzle is identified by a (year, day) pair and accumulates state in
// two halves: the part-two prompt only exists once part one is solved.
package puzzle

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FirstYear is the first year puzzles were published.
const FirstYear = 2015

// Part identifies one half of a puzzle.
const (
	Part1 = 1
	Part2 = 2
)

// ErrInvalidRange is returned when a year or day is outside the accepted bounds.
var ErrInvalidRange = errors.New("puzzle identity out of range")

// ID uniquely identifies one daily puzzle.
type ID struct {
	Year int
	Day  int
}

// String returns the identity in "year/day" form, matching the cache layout.
func (id ID) String() string {
	return fmt.Sprintf("%d/%d", id.Year, id.Day)
}

// Validate checks that the identity is within the accepted bounds:
// year in [2015, current year], day in [1, 25].
func (id ID) Validate() error {
	maxYear := time.Now().UTC().Year()
	if id.Year < FirstYear || id.Year > maxYear {
		return fmt.Errorf("%w: year %d not in [%d, %d]", ErrInvalidRange, id.Year, FirstYear, maxYear)
	}
	if id.Day < 1 || id.Day > 25 {
		return fmt.Errorf("%w: day %d not in [1, 25]", ErrInvalidRange, id.Day)
	}
	return nil
}

// Text is an optional string. The zero value is absent, which is distinct
// from a present empty string: a cached answer file may exist and be empty.
type Text struct {
	value   string
	present bool
}

// NewText returns a present Text holding s.
func NewText(s string) Text {
	return Text{value: s, present: true}
}

// Get returns the value and whether it is present.
func (t Text) Get() (string, bool) {
	return t.value, t.present
}

// Present reports whether the value exists, even if empty.
func (t Text) Present() bool {
	return t.present
}

// Value returns the value, or "" when absent.
func (t Text) Value() string {
	return t.value
}

// Puzzle is the known state of one puzzle. Prompt and answer fields are
// individually optional: they fill in over time as the puzzle is fetched
// and its parts are solved.
type Puzzle struct {
	ID ID
	Q1 Text // part-one prompt
	Q2 Text // part-two prompt, revealed only after part one is solved
	A1 Text // part-one answer, present once submitted correctly
	A2 Text // part-two answer
}

// NeedsRefresh reports whether the cached state is stale or inconsistent.
// A solved part one without a part-two prompt means the page now shows
// more than we have; a part-two prompt without a part-one answer can only
// be a corrupt entry. Either way the puzzle should be refetched.
func (p *Puzzle) NeedsRefresh() bool {
	return p.A1.Present() != p.Q2.Present()
}

// InferPart returns the part a submission should target when the caller
// did not specify one: part two once a non-empty part-one answer is known,
// part one otherwise.
func (p *Puzzle) InferPart() int {
	if a, ok := p.A1.Get(); ok && a != "" {
		return Part2
	}
	return Part1
}

// Answer returns the recorded answer for the given part.
func (p *Puzzle) Answer(part int) Text {
	if part == Part2 {
		return p.A2
	}
	return p.A1
}

// SetAnswer records an answer for the given part.
func (p *Puzzle) SetAnswer(part int, answer string) {
	if part == Part2 {
		p.A2 = NewText(answer)
		return
	}
	p.A1 = NewText(answer)
}

// View renders the known prompts as one readable document. When
// withAnswers is set, recorded answers follow their part.
func (p *Puzzle) View(withAnswers bool) string {
	var b strings.Builder
	if q, ok := p.Q1.Get(); ok {
		b.WriteString(strings.TrimRight(q, "\n"))
		b.WriteString("\n")
	}
	if withAnswers {
		if a, ok := p.A1.Get(); ok && a != "" {
			fmt.Fprintf(&b, "\nYour answer: %s\n", a)
		}
	}
	if q, ok := p.Q2.Get(); ok {
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(q, "\n"))
		b.WriteString("\n")
	}
	if withAnswers {
		if a, ok := p.A2.Get(); ok && a != "" {
			fmt.Fprintf(&b, "\nYour answer: %s\n", a)
		}
	}
	return b.String()
}
