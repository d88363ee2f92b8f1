// Package rules registers the built-in lint rules.
//
// Rules are organized by category:
//   - possible: code that is likely a mistake (no-control-regex)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/leaplint/pkg/lint/rules"
package rules
