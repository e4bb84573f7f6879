package main

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decodedReader strips a leading byte order mark, decoding UTF-16 input
// when the mark says so, and normalizes the text to NFC so that composed and
// decomposed accents lex alike.
func decodedReader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		norm.NFC,
	))
}
