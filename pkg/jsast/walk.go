package jsast

import (
	"reflect"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/file"

	"github.com/leapstack-labs/leaplint/pkg/token"
)

// astPkgPath scopes the reflective walk to goja's AST types.
var astPkgPath = reflect.TypeOf(ast.Program{}).PkgPath()

// Walk calls fn for every constructor call, function call and regular
// expression literal in the file, in source order. Each syntax node is
// visited exactly once per call to Walk.
func (f *File) Walk(fn func(Node)) {
	if f == nil || f.program == nil {
		return
	}

	c := newConverter(f)
	w := &walker{
		seen: make(map[ast.Node]struct{}),
		visit: func(n ast.Node) {
			switch n.(type) {
			case *ast.RegExpLiteral, *ast.NewExpression, *ast.CallExpression:
				if e, ok := n.(ast.Expression); ok {
					fn(c.expression(e))
				}
			}
		},
	}
	w.walk(reflect.ValueOf(f.program))
}

// walker performs a preorder traversal over goja's AST. goja exposes no
// visitor, so children are discovered through exported struct fields.
// Declaration lists alias statements already present in bodies; the seen
// set keeps those from being visited twice.
type walker struct {
	seen  map[ast.Node]struct{}
	visit func(ast.Node)
}

func (w *walker) walk(v reflect.Value) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		w.walk(v.Elem())

	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		elem := v.Elem()
		if elem.Kind() != reflect.Struct || elem.Type().PkgPath() != astPkgPath {
			return
		}
		if n, ok := v.Interface().(ast.Node); ok {
			if _, dup := w.seen[n]; dup {
				return
			}
			w.seen[n] = struct{}{}
			w.visit(n)
		}
		w.walk(elem)

	case reflect.Struct:
		if v.Type().PkgPath() != astPkgPath {
			return
		}
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			w.walk(v.Field(i))
		}

	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			w.walk(v.Index(i))
		}
	}
}

// converter maps goja expressions onto node variants. Conversions are
// memoized so a goja node always maps to the same Node value.
type converter struct {
	file *File
	memo map[ast.Expression]Node
}

func newConverter(f *File) *converter {
	return &converter{file: f, memo: make(map[ast.Expression]Node)}
}

func (c *converter) expression(e ast.Expression) Node {
	if e == nil {
		return nil
	}
	if n, ok := c.memo[e]; ok {
		return n
	}

	var n Node
	switch e := e.(type) {
	case *ast.RegExpLiteral:
		n = &RegexLiteral{Pattern: e.Pattern, Flags: e.Flags, Loc: c.span(e)}
	case *ast.StringLiteral:
		lit := &StringLiteral{Value: e.Value.String(), Raw: e.Literal, Loc: c.span(e)}
		if keep := c.file.literalFilter; keep != nil && !keep(lit) {
			n = &Expression{Loc: lit.Loc}
		} else {
			n = lit
		}
	case *ast.Identifier:
		n = &Identifier{Name: e.Name.String(), Loc: c.span(e)}
	case *ast.NewExpression:
		n = &ConstructorCall{
			Callee:    c.expression(e.Callee),
			Arguments: c.arguments(e.ArgumentList),
			Loc:       c.span(e),
		}
	case *ast.CallExpression:
		n = &FunctionCall{
			Callee:    c.expression(unwrapOptional(e.Callee)),
			Arguments: c.arguments(e.ArgumentList),
			Loc:       c.span(e),
		}
	default:
		n = &Expression{Loc: c.span(e)}
	}

	c.memo[e] = n
	return n
}

// unwrapOptional strips the ?. marker from an optional call's callee, so
// fn?.(x) has the same callee as fn(x).
func unwrapOptional(e ast.Expression) ast.Expression {
	if opt, ok := e.(*ast.Optional); ok {
		return opt.Expression
	}
	return e
}

func (c *converter) arguments(list []ast.Expression) []Node {
	if len(list) == 0 {
		return nil
	}
	args := make([]Node, 0, len(list))
	for _, a := range list {
		if n := c.expression(a); n != nil {
			args = append(args, n)
		}
	}
	return args
}

func (c *converter) span(n ast.Node) token.Span {
	return c.file.lines.Span(c.offset(n.Idx0()), c.offset(n.Idx1()))
}

func (c *converter) offset(idx file.Idx) int {
	return int(idx) - c.file.base
}
