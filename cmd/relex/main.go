// Command relex compiles patterns to minimal DFAs and runs them.
//
//	relex match '(a|b)*c' ababc abx   prints the prefix each text matches
//	relex dump '(a|b)*abb'            prints the minimal transition table
//	relex tokens prog.pas             splits a file into tokens
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type cli struct {
	LogLevel string `name:"log-level" default:"warn" enum:"debug,info,warn,error" env:"RELEX_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`

	Tokens tokensCmd `cmd:"" help:"Split a file into tokens, one per line"`
	Match  matchCmd  `cmd:"" help:"Print the prefix of each text the pattern matches"`
	Dump   dumpCmd   `cmd:"" help:"Print the automata compiled from a pattern"`
}

// runContext is bound into every command's Run method.
type runContext struct {
	out    io.Writer
	logger *slog.Logger
}

func main() {
	var params cli
	kctx := kong.Parse(&params,
		kong.Name("relex"),
		kong.Description("Compile patterns to minimal DFAs and match or tokenize with them."),
		kong.UsageOnError(),
	)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(params.LogLevel),
	}))
	slog.SetDefault(logger)

	err := kctx.Run(&runContext{out: os.Stdout, logger: logger})
	kctx.FatalIfErrorf(err)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
