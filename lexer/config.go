package lexer

import (
	"log/slog"

	"github.com/gobwas/glob"

	"github.com/coregx/relex/registry"
)

// Config configures a Lexer.
type Config struct {
	// ChunkSize is the number of runes read from the input per refill. The
	// window is refilled until it holds at least this many runes, and
	// further while it ends inside a comment or has no blank.
	//
	// Default: 1024 runes
	ChunkSize int

	// Hide lists glob patterns of token type names that Tokens drops from
	// its result. Next still returns every token.
	//
	// Default: SPACE and *_COMMENT
	Hide []string

	// Logger receives refill and token events at debug level.
	//
	// Default: slog.Default()
	Logger *slog.Logger

	// Registry caches the compiled token patterns.
	//
	// Default: registry.Default()
	Registry *registry.Registry
}

// DefaultConfig returns a configuration that reads 1 KiB rune chunks and
// hides blanks and comments.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 1024,
		Hide:      []string{"SPACE", "*_COMMENT"},
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return &Error{
			Kind:    InvalidConfig,
			Message: "ChunkSize must be > 0",
		}
	}

	_, err := c.hidden()
	return err
}

// WithChunkSize returns a new config with the specified chunk size
func (c Config) WithChunkSize(n int) Config {
	c.ChunkSize = n
	return c
}

// WithHide returns a new config hiding the given token type globs
func (c Config) WithHide(patterns ...string) Config {
	c.Hide = patterns
	return c
}

// WithLogger returns a new config logging to logger
func (c Config) WithLogger(logger *slog.Logger) Config {
	c.Logger = logger
	return c
}

func (c *Config) hidden() ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(c.Hide))
	for _, p := range c.Hide {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, &Error{
				Kind:    InvalidConfig,
				Message: "bad Hide pattern " + p,
				Cause:   err,
			}
		}
		globs = append(globs, g)
	}
	return globs, nil
}
