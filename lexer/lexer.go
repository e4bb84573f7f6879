// Package lexer splits text into tokens using one compiled matcher per token
// type.
//
// A Table lists token types in priority order. At every position the lexer
// asks each type's matcher for a prefix of the remaining input and takes the
// first non-empty one, subject to the Bounded and MaxLen rules of the type.
// Input is read in chunks into a window that is extended while the token at
// its front could still be cut short by the end of the window.
package lexer

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"

	"github.com/coregx/relex"
	"github.com/coregx/relex/registry"
)

// delimiters are the runes that may surround a lexeme of a Bounded type.
const delimiters = " \n\t\r\"()+-;:,.[]{}*/'\u00a0<>="

func isDelimiter(r rune) bool {
	return strings.ContainsRune(delimiters, r)
}

type compiledType struct {
	TokenType
	m *relex.Matcher
}

// Lexer produces tokens from a reader. It is not safe for concurrent use.
type Lexer struct {
	types  []compiledType
	hidden []glob.Glob
	win    *window
	logger *slog.Logger

	line, column int
	prev         rune // last rune of the previous lexeme
	started      bool
}

// New creates a lexer reading r with the token types of table.
//
// Every pattern is compiled up front; the first one that fails is reported
// as ErrBadPattern naming the token type.
func New(r io.Reader, table *Table, cfg Config) (*Lexer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		table = DefaultTable()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Registry == nil {
		cfg.Registry = registry.Default()
	}

	types := make([]compiledType, 0, len(table.Tokens))
	for _, tt := range table.Tokens {
		m, err := cfg.Registry.Get(tt.Pattern)
		if err != nil {
			return nil, &Error{
				Kind:    BadPattern,
				Message: "token type " + tt.Name,
				Cause:   err,
			}
		}
		types = append(types, compiledType{TokenType: tt, m: m})
	}

	hidden, err := cfg.hidden()
	if err != nil {
		return nil, err
	}
	win, err := newWindow(r, cfg.ChunkSize)
	if err != nil {
		return nil, err
	}

	return &Lexer{
		types:  types,
		hidden: hidden,
		win:    win,
		logger: cfg.Logger,
		line:   1,
		column: 1,
	}, nil
}

// Next returns the next token, or io.EOF once the input is exhausted.
//
// Next never fails on malformed input: text no type accepts comes back one
// rune at a time as Bad tokens.
func (l *Lexer) Next() (Token, error) {
	reads, err := l.win.fill()
	if reads > 0 {
		metricRefills.Add(float64(reads))
		l.logger.Debug("refilled window", "chunks", reads, "runes", l.win.runes, "eof", l.win.eof)
	}
	if err != nil {
		return Token{}, err
	}
	if l.win.empty() {
		return Token{}, io.EOF
	}

	text := l.win.text
	for i := range l.types {
		ct := &l.types[i]
		lexeme := ct.m.Match(text)
		if ct.TrimSuffix != "" {
			lexeme = strings.TrimSuffix(lexeme, ct.TrimSuffix)
		}
		if lexeme == "" {
			continue
		}
		if ct.Bounded && !l.wrapped(text, lexeme) {
			continue
		}

		name := ct.Name
		if ct.Bad || (ct.MaxLen > 0 && utf8.RuneCountInString(lexeme) > ct.MaxLen) {
			name = Bad
		}
		return l.emit(name, lexeme), nil
	}

	_, size := utf8.DecodeRuneInString(text)
	return l.emit(Bad, text[:size]), nil
}

// Tokens drains the lexer.
//
// Runs of consecutive Bad tokens are merged into one at the position of the
// first. Types matching a Hide glob are dropped after merging, so a hidden
// token between two Bad tokens still separates them.
func (l *Lexer) Tokens() ([]Token, error) {
	var (
		out     []Token
		pending *Token
	)
	flush := func() {
		if pending != nil {
			if !l.isHidden(pending.Type) {
				out = append(out, *pending)
			}
			pending = nil
		}
	}

	for {
		tok, err := l.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			flush()
			return out, err
		}

		if tok.Type == Bad {
			if pending == nil {
				pending = &tok
			} else {
				pending.Value += tok.Value
			}
			continue
		}

		flush()
		if !l.isHidden(tok.Type) {
			out = append(out, tok)
		}
	}
	flush()
	return out, nil
}

// wrapped reports whether lexeme, a prefix of text, sits between
// delimiters. The start and the end of the input count as delimiters.
func (l *Lexer) wrapped(text, lexeme string) bool {
	if l.started && !isDelimiter(l.prev) {
		return false
	}
	if len(text) > len(lexeme) {
		next, _ := utf8.DecodeRuneInString(text[len(lexeme):])
		if !isDelimiter(next) {
			return false
		}
	}
	return true
}

func (l *Lexer) emit(name, lexeme string) Token {
	tok := Token{Type: name, Value: lexeme, Line: l.line, Column: l.column}

	for _, r := range lexeme {
		if r == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.prev = r
	}
	l.started = true
	l.win.consume(lexeme)

	metricTokens.WithLabelValues(name).Inc()
	l.logger.Debug("token", "type", name, "line", tok.Line, "column", tok.Column, "runes", utf8.RuneCountInString(lexeme))
	return tok
}

func (l *Lexer) isHidden(name string) bool {
	for _, g := range l.hidden {
		if g.Match(name) {
			return true
		}
	}
	return false
}
