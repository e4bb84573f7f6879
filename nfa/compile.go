package nfa

import (
	"fmt"

	"github.com/coregx/relex/syntax"
)

// Compiler compiles syntax trees into Thompson NFAs.
//
// Every node becomes a fragment with one entry and one exit state; fragments
// are wired together with epsilon edges. A Compiler may be reused, each
// Compile call starts from an empty arena.
type Compiler struct {
	builder *Builder
}

// NewCompiler creates a new NFA compiler
func NewCompiler() *Compiler {
	return &Compiler{}
}

// fragment is a partially built automaton with a single entry and exit.
type fragment struct {
	start, accept StateID
}

// Compile compiles a syntax tree into an NFA.
//
// Compilation is total for any tree produced by syntax.Parse; the only
// error is a nil or unknown node.
func Compile(node syntax.Node) (*NFA, error) {
	return NewCompiler().Compile(node)
}

// CompilePattern parses pattern and compiles it into an NFA.
func CompilePattern(pattern string) (*NFA, error) {
	node, err := syntax.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return Compile(node)
}

// Compile compiles a syntax tree into an NFA.
func (c *Compiler) Compile(node syntax.Node) (*NFA, error) {
	if node == nil {
		return nil, &BuildError{Message: "nothing to compile", StateID: InvalidState, Err: ErrNilNode}
	}
	c.builder = NewBuilder()

	frag, err := c.compile(node)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(frag.start, frag.accept)
}

func (c *Compiler) compile(node syntax.Node) (fragment, error) {
	switch n := node.(type) {
	case *syntax.Literal:
		return c.compileSymbol(n.Rune), nil
	case *syntax.Any:
		return c.compileSymbol(Any), nil
	case *syntax.Not:
		return c.compileNot(n.Sub)
	case *syntax.Concat:
		return c.compileConcat(n.Left, n.Right)
	case *syntax.Alternate:
		return c.compileAlternate(n.Left, n.Right)
	case *syntax.Star:
		return c.compileRepeat(n.Sub, true)
	case *syntax.Plus:
		return c.compileRepeat(n.Sub, false)
	default:
		return fragment{}, &BuildError{
			Message: fmt.Sprintf("unsupported syntax node %T", node),
			StateID: InvalidState,
		}
	}
}

// compileSymbol compiles a literal rune or the wildcard: start --label--> accept
func (c *Compiler) compileSymbol(label rune) fragment {
	start := c.builder.AddState()
	accept := c.builder.AddState()
	c.builder.link(start, label, accept)
	return fragment{start, accept}
}

// compileNot compiles ^x.
//
//	start --ε--> x.start
//	x.accept --NOT--> accept
//	start --ANY--> accept
//
// The NOT edge is never taken, so the fragment accepts exactly one rune and
// only through the ANY edge.
func (c *Compiler) compileNot(sub syntax.Node) (fragment, error) {
	start := c.builder.AddState()
	accept := c.builder.AddState()
	inner, err := c.compile(sub)
	if err != nil {
		return fragment{}, err
	}

	c.builder.linkEpsilon(start, inner.start)
	c.builder.link(inner.accept, Not, accept)
	c.builder.link(start, Any, accept)
	return fragment{start, accept}, nil
}

// compileConcat compiles xy: x.accept --ε--> y.start
func (c *Compiler) compileConcat(left, right syntax.Node) (fragment, error) {
	l, err := c.compile(left)
	if err != nil {
		return fragment{}, err
	}
	r, err := c.compile(right)
	if err != nil {
		return fragment{}, err
	}

	c.builder.linkEpsilon(l.accept, r.start)
	return fragment{l.start, r.accept}, nil
}

// compileAlternate compiles x|y with an epsilon fan-out and fan-in.
func (c *Compiler) compileAlternate(left, right syntax.Node) (fragment, error) {
	start := c.builder.AddState()
	accept := c.builder.AddState()
	l, err := c.compile(left)
	if err != nil {
		return fragment{}, err
	}
	r, err := c.compile(right)
	if err != nil {
		return fragment{}, err
	}

	c.builder.linkEpsilon(start, l.start)
	c.builder.linkEpsilon(start, r.start)
	c.builder.linkEpsilon(l.accept, accept)
	c.builder.linkEpsilon(r.accept, accept)
	return fragment{start, accept}, nil
}

// compileRepeat compiles x* (bypass set) or x+.
//
//	start --ε--> x.start
//	start --ε--> accept        (x* only)
//	x.accept --ε--> x.start    (loop)
//	x.accept --ε--> accept
func (c *Compiler) compileRepeat(sub syntax.Node, bypass bool) (fragment, error) {
	start := c.builder.AddState()
	accept := c.builder.AddState()
	inner, err := c.compile(sub)
	if err != nil {
		return fragment{}, err
	}

	c.builder.linkEpsilon(start, inner.start)
	if bypass {
		c.builder.linkEpsilon(start, accept)
	}
	c.builder.linkEpsilon(inner.accept, inner.start)
	c.builder.linkEpsilon(inner.accept, accept)
	return fragment{start, accept}, nil
}
