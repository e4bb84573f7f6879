// Package syntax parses patterns of the relex regex dialect into a syntax tree.
//
// The dialect is deliberately small:
//
//	c      literal rune
//	\c     literal rune, also for the operators + * ( ) | . ^ \
//	.      wildcard, any single rune
//	^x     negation of the primary x (see Not)
//	xy     concatenation
//	x|y    alternation
//	x*     zero or more
//	x+     one or more
//	(x)    grouping
//
// There are no character classes, anchors, counted repetitions or captures.
package syntax

import "strings"

// Node is a node of the pattern syntax tree.
//
// The tree is produced by Parse and consumed by the NFA compiler; nothing
// keeps it alive afterwards.
type Node interface {
	// String renders the node back into pattern syntax.
	String() string

	node()
}

// Literal matches exactly one rune.
type Literal struct {
	Rune rune
}

// Any matches any single rune.
type Any struct{}

// Not is the negation of a primary.
//
// Negation is not a set complement. It matches one arbitrary rune; the
// operand is compiled too, but its exit edge is labelled with a symbol no
// input carries, so the operand can only steer a walk into states that never
// accept. In effect ^x matches any single rune other than the literal runes
// x can start with.
type Not struct {
	Sub Node
}

// Concat matches Left followed by Right.
type Concat struct {
	Left, Right Node
}

// Alternate matches either Left or Right.
type Alternate struct {
	Left, Right Node
}

// Star matches zero or more repetitions of Sub.
type Star struct {
	Sub Node
}

// Plus matches one or more repetitions of Sub.
type Plus struct {
	Sub Node
}

func (*Literal) node()   {}
func (*Any) node()       {}
func (*Not) node()       {}
func (*Concat) node()    {}
func (*Alternate) node() {}
func (*Star) node()      {}
func (*Plus) node()      {}

// IsOperator reports whether r has a meaning of its own in a pattern and
// needs a backslash to be matched literally.
func IsOperator(r rune) bool {
	return strings.ContainsRune(`+*()|.^\`, r)
}

func (n *Literal) String() string {
	if IsOperator(n.Rune) {
		return `\` + string(n.Rune)
	}
	return string(n.Rune)
}

func (*Any) String() string { return "." }

func (n *Not) String() string { return "^" + atom(n.Sub) }

func (n *Concat) String() string {
	return n.Left.String() + n.Right.String()
}

func (n *Alternate) String() string {
	return "(" + n.Left.String() + "|" + n.Right.String() + ")"
}

func (n *Star) String() string { return atom(n.Sub) + "*" }

func (n *Plus) String() string { return atom(n.Sub) + "+" }

// atom renders n so that a postfix operator or a leading ^ applies to all of it.
func atom(n Node) string {
	switch n.(type) {
	case *Literal, *Any, *Alternate:
		return n.String()
	}
	return "(" + n.String() + ")"
}
