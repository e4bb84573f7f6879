package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"

	"github.com/coregx/relex/lexer"
	"github.com/coregx/relex/nfa"
	"github.com/coregx/relex/registry"
)

type tokensCmd struct {
	Input     string   `arg:"" type:"existingfile" help:"File to tokenize"`
	Output    string   `short:"o" type:"path" help:"Write tokens to this file instead of stdout"`
	Table     string   `short:"t" type:"existingfile" help:"YAML token table (default: built-in Pascal-like table)"`
	Hide      []string `default:"SPACE,*_COMMENT" help:"Glob patterns of token types to leave out"`
	ChunkSize int      `default:"1024" env:"RELEX_CHUNK_SIZE" help:"Runes read per window refill"`
}

func (c *tokensCmd) Run(ctx *runContext) error {
	table := lexer.DefaultTable()
	if c.Table != "" {
		var err error
		table, err = lexer.LoadTable(c.Table)
		if err != nil {
			return err
		}
	}

	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer in.Close()

	cfg := lexer.DefaultConfig().
		WithChunkSize(c.ChunkSize).
		WithHide(c.Hide...).
		WithLogger(ctx.logger)
	l, err := lexer.New(decodedReader(in), table, cfg)
	if err != nil {
		return err
	}
	toks, err := l.Tokens()
	if err != nil {
		return err
	}

	out := ctx.out
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	w := bufio.NewWriter(out)
	for _, tok := range toks {
		fmt.Fprintln(w, tok)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write tokens: %w", err)
	}
	ctx.logger.Info("tokenized", "input", c.Input, "tokens", len(toks))
	return nil
}

type matchCmd struct {
	Pattern string   `arg:"" help:"Pattern to compile"`
	Texts   []string `arg:"" optional:"" help:"Texts to match against"`
}

func (c *matchCmd) Run(ctx *runContext) error {
	m, err := registry.Default().Get(c.Pattern)
	if err != nil {
		return err
	}
	for _, text := range c.Texts {
		fmt.Fprintf(ctx.out, "%q\n", m.Match(norm.NFC.String(text)))
	}
	return nil
}

type dumpCmd struct {
	Pattern string `arg:"" help:"Pattern to compile"`
	NFA     bool   `name:"nfa" help:"Also print the epsilon-NFA"`
}

func (c *dumpCmd) Run(ctx *runContext) error {
	m, err := registry.Default().Get(c.Pattern)
	if err != nil {
		return err
	}
	if c.NFA {
		n, err := nfa.CompilePattern(c.Pattern)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.out, "NFA (%d states):\n%s\n", n.Len(), n)
	}
	a := m.Automaton()
	fmt.Fprintf(ctx.out, "DFA (%d states):\n%s", a.Len(), a)
	return nil
}
