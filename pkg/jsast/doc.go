// Package jsast defines the syntax node contract that lint rules consume,
// and adapts JavaScript parsed by goja into it.
//
// # Node Variants
//
// Rules never see goja's AST directly. The host converts the expressions
// rules care about into a closed set of variants:
//
//   - RegexLiteral: /pattern/flags written inline
//   - StringLiteral: a quoted string, carrying its decoded value
//   - Identifier: a bare name
//   - ConstructorCall: new X(...)
//   - FunctionCall: X(...)
//   - Expression: anything else, opaque to rules
//
// Every variant reports its Kind and source Span. Validate checks the
// required fields of a variant before the node is handed to a rule.
//
// # Traversal
//
// Parse produces a File. File.Walk visits each call, construction and
// regular-expression literal exactly once:
//
//	f, err := jsast.Parse("app.js", src)
//	if err != nil {
//		return err
//	}
//	f.Walk(func(n jsast.Node) {
//		// dispatch on n.Kind()
//	})
package jsast
