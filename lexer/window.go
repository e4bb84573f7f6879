package lexer

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"
)

// triggerLiterals are the bytes whose counts decide that the window may end
// in the middle of a token. A line comment opener is a pair of slashes.
var triggerLiterals = []string{" ", "\n", "\t", "\r", "/", "{", "}", "'"}

// tally counts trigger occurrences in a span of the window.
type tally struct {
	blanks   int
	newlines int
	comments int // "//" pairs, counted at their second slash
	opens    int
	closes   int
	quotes   int
}

func (t *tally) add(o tally, sign int) {
	t.blanks += sign * o.blanks
	t.newlines += sign * o.newlines
	t.comments += sign * o.comments
	t.opens += sign * o.opens
	t.closes += sign * o.closes
	t.quotes += sign * o.quotes
}

// incomplete reports whether the window has no blank, has a line comment
// opener but no newline, has an open brace but no closing one, or has an
// unpaired quote. In each case the token at the front may continue past the
// end of the window.
func (t *tally) incomplete() bool {
	return t.blanks == 0 ||
		(t.comments > 0 && t.newlines == 0) ||
		(t.opens > 0 && t.closes == 0) ||
		t.quotes%2 == 1
}

// triggers scans spans of text for triggerLiterals in a single pass.
type triggers struct {
	ac *ahocorasick.Automaton
}

func newTriggers() (*triggers, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range triggerLiterals {
		builder.AddPattern([]byte(lit))
	}
	ac, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &triggers{ac: ac}, nil
}

// count tallies the triggers at byte offsets [from, to) of text. A slash
// pair is counted when its second slash is in the span and its first one is
// anywhere before it, so tallies of adjacent spans add up to the tally of
// their union.
func (t *triggers) count(text string, from, to int) tally {
	var c tally
	if from >= to {
		return c
	}
	span := []byte(text[from:to])
	for at := 0; at < len(span); {
		m := t.ac.Find(span, at)
		if m == nil {
			break
		}
		switch span[m.Start] {
		case '\n':
			c.newlines++
			c.blanks++
		case ' ', '\t', '\r':
			c.blanks++
		case '/':
			if p := from + m.Start; p > 0 && text[p-1] == '/' {
				c.comments++
			}
		case '{':
			c.opens++
		case '}':
			c.closes++
		case '\'':
			c.quotes++
		}
		at = m.End
	}
	return c
}

// window is the unconsumed front of the input. counts always holds the
// tally of all of text.
type window struct {
	src      *bufio.Reader
	chunk    int
	triggers *triggers

	text   string
	runes  int
	counts tally
	eof    bool
}

func newWindow(r io.Reader, chunk int) (*window, error) {
	t, err := newTriggers()
	if err != nil {
		return nil, err
	}
	return &window{
		src:      bufio.NewReader(r),
		chunk:    chunk,
		triggers: t,
	}, nil
}

// fill reads chunks until the window holds at least one chunk of runes and
// no token at its front can run past its end, or the input is exhausted.
// It returns the number of chunks read.
func (w *window) fill() (int, error) {
	reads := 0
	for !w.eof && (w.runes < w.chunk || w.counts.incomplete()) {
		if err := w.read(); err != nil {
			return reads, err
		}
		reads++
	}
	return reads, nil
}

func (w *window) read() error {
	var b strings.Builder
	b.WriteString(w.text)
	var readErr error
	for i := 0; i < w.chunk; i++ {
		r, _, err := w.src.ReadRune()
		if errors.Is(err, io.EOF) {
			w.eof = true
			break
		}
		if err != nil {
			readErr = &Error{Kind: ReadFailed, Message: "read input", Cause: err}
			break
		}
		b.WriteRune(r)
		w.runes++
	}

	old := len(w.text)
	w.text = b.String()
	w.counts.add(w.triggers.count(w.text, old, len(w.text)), 1)
	return readErr
}

// consume drops the lexeme, a prefix of the window text.
func (w *window) consume(lexeme string) {
	n := len(lexeme)
	gone := w.triggers.count(w.text, 0, n)
	// A slash pair split by the cut loses its first slash.
	if n > 0 && n < len(w.text) && w.text[n-1] == '/' && w.text[n] == '/' {
		gone.comments++
	}
	w.counts.add(gone, -1)

	w.text = w.text[n:]
	w.runes -= utf8.RuneCountInString(lexeme)
}

func (w *window) empty() bool {
	return w.text == ""
}
