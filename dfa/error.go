package dfa

import "errors"

// ErrInvalidTable indicates a Table that does not describe a total DFA.
var ErrInvalidTable = errors.New("invalid DFA table")
