package jsast

import (
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Kind discriminates the node variants.
type Kind uint8

// Node kinds.
const (
	KindInvalid Kind = iota
	KindRegexLiteral
	KindStringLiteral
	KindIdentifier
	KindConstructorCall
	KindFunctionCall
	KindExpression
)

var kindNames = map[Kind]string{
	KindInvalid:         "invalid",
	KindRegexLiteral:    "regex-literal",
	KindStringLiteral:   "string-literal",
	KindIdentifier:      "identifier",
	KindConstructorCall: "constructor-call",
	KindFunctionCall:    "function-call",
	KindExpression:      "expression",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is implemented by every syntax node variant.
type Node interface {
	Kind() Kind
	Span() token.Span
}

// PatternSource is implemented by literals whose value can serve as
// regular-expression source text.
type PatternSource interface {
	Node
	PatternText() string
}

// Call is implemented by ConstructorCall and FunctionCall.
type Call interface {
	Node
	CalleeNode() Node
	Args() []Node
}

// RegexLiteral is an inline regular expression, /Pattern/Flags.
// Pattern is the source text between the slashes, escapes not decoded.
type RegexLiteral struct {
	Pattern string
	Flags   string
	Loc     token.Span
}

func (n *RegexLiteral) Kind() Kind       { return KindRegexLiteral }
func (n *RegexLiteral) Span() token.Span { return n.Loc }

// String mirrors the runtime string conversion of a RegExp object.
func (n *RegexLiteral) String() string {
	return "/" + n.Pattern + "/" + n.Flags
}

// PatternText returns the value's string conversion, delimiters and flags included.
func (n *RegexLiteral) PatternText() string { return n.String() }

// StringLiteral is a quoted string. Value holds the decoded value.
type StringLiteral struct {
	Value string
	Raw   string
	Loc   token.Span
}

func (n *StringLiteral) Kind() Kind          { return KindStringLiteral }
func (n *StringLiteral) Span() token.Span    { return n.Loc }
func (n *StringLiteral) PatternText() string { return n.Value }

// Identifier is a bare name reference.
type Identifier struct {
	Name string
	Loc  token.Span
}

func (n *Identifier) Kind() Kind       { return KindIdentifier }
func (n *Identifier) Span() token.Span { return n.Loc }

// ConstructorCall is new Callee(Arguments...).
type ConstructorCall struct {
	Callee    Node
	Arguments []Node
	Loc       token.Span
}

func (n *ConstructorCall) Kind() Kind       { return KindConstructorCall }
func (n *ConstructorCall) Span() token.Span { return n.Loc }
func (n *ConstructorCall) CalleeNode() Node { return n.Callee }
func (n *ConstructorCall) Args() []Node     { return n.Arguments }

// FunctionCall is Callee(Arguments...).
type FunctionCall struct {
	Callee    Node
	Arguments []Node
	Loc       token.Span
}

func (n *FunctionCall) Kind() Kind       { return KindFunctionCall }
func (n *FunctionCall) Span() token.Span { return n.Loc }
func (n *FunctionCall) CalleeNode() Node { return n.Callee }
func (n *FunctionCall) Args() []Node     { return n.Arguments }

// Expression stands for any expression rules cannot inspect statically:
// variables behind member access, templates, concatenations and the like.
type Expression struct {
	Loc token.Span
}

func (n *Expression) Kind() Kind       { return KindExpression }
func (n *Expression) Span() token.Span { return n.Loc }

// IdentifierName returns the name of n when it is a plain identifier.
func IdentifierName(n Node) (string, bool) {
	id, ok := n.(*Identifier)
	if !ok || id == nil {
		return "", false
	}
	return id.Name, true
}
