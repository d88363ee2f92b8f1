package jsast

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrNilNode       = errors.New("nil node")
	ErrUnknownKind   = errors.New("unknown node kind")
	ErrMissingCallee = errors.New("call without callee")
	ErrNilArgument   = errors.New("nil argument")
)

// Validate checks that n carries the fields its variant requires.
// Rules may assume a validated node is well formed.
func Validate(n Node) error {
	if isNil(n) {
		return ErrNilNode
	}

	switch n := n.(type) {
	case *RegexLiteral, *StringLiteral, *Identifier, *Expression:
		return nil
	case *ConstructorCall:
		return validateCall(n.Kind(), n.Callee, n.Arguments)
	case *FunctionCall:
		return validateCall(n.Kind(), n.Callee, n.Arguments)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, n)
	}
}

func validateCall(kind Kind, callee Node, args []Node) error {
	if isNil(callee) {
		return fmt.Errorf("%s: %w", kind, ErrMissingCallee)
	}
	for i, arg := range args {
		if isNil(arg) {
			return fmt.Errorf("%s: argument %d: %w", kind, i, ErrNilArgument)
		}
	}
	return nil
}

// isNil catches both nil interfaces and typed nil pointers.
func isNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *RegexLiteral:
		return v == nil
	case *StringLiteral:
		return v == nil
	case *Identifier:
		return v == nil
	case *ConstructorCall:
		return v == nil
	case *FunctionCall:
		return v == nil
	case *Expression:
		return v == nil
	default:
		return false
	}
}
