// Package possible provides lint rules for code that is likely a mistake.
//
// Rules in this package:
//   - no-control-regex: control characters in regular expressions
package possible
