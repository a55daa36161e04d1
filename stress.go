package soundshift

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// StressRule decides whether the syllable at index (0-based) of a word
// with count syllables carries a stress level.
type StressRule interface {
	Applies(index, count int) (bool, error)
}

// StressFunc adapts a plain predicate to StressRule.
type StressFunc func(index, count int) bool

func (f StressFunc) Applies(index, count int) (bool, error) { return f(index, count), nil }

// Never stresses no syllable.
var Never StressRule = StressFunc(func(int, int) bool { return false })

// ErrDivisionByZero is returned by a stress expression dividing by zero.
var ErrDivisionByZero = errors.New("division by zero")

// StressExpr is a compiled stress expression, e.g. "i == l - 1" (last
// syllable) or "i % 2 == 0 and i != 0".
//
// The variables i (or index) and l (or n, count) hold the syllable index
// and the syllable count. Integer arithmetic (+ - * / %, with division and
// modulo rounding towards negative infinity), comparisons (chains such as
// "0 < i < l" are allowed), and, or, not and the constants True and False
// are supported. Any non-zero result counts as true.
type StressExpr struct {
	source string
	root   *orExpr
}

//nolint:govet // participle grammar tags are not standard struct tags
type orExpr struct {
	Left  *andExpr   `@@`
	Right []*andExpr `( ( "or" | "||" ) @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type andExpr struct {
	Left  *notExpr   `@@`
	Right []*notExpr `( ( "and" | "&&" ) @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type notExpr struct {
	Not *notExpr `  ( "not" | "!" ) @@`
	Cmp *cmpExpr `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type cmpExpr struct {
	Left *sumExpr   `@@`
	Tail []*cmpTail `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type cmpTail struct {
	Op    string   `@( "==" | "!=" | "<=" | ">=" | "<" | ">" )`
	Right *sumExpr `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type sumExpr struct {
	Left *termExpr  `@@`
	Tail []*sumTail `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type sumTail struct {
	Op    string    `@( "+" | "-" )`
	Right *termExpr `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type termExpr struct {
	Left *unaryExpr  `@@`
	Tail []*termTail `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type termTail struct {
	Op    string     `@( "*" | "/" | "%" )`
	Right *unaryExpr `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type unaryExpr struct {
	Neg  *unaryExpr `  "-" @@`
	Atom *atomExpr  `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type atomExpr struct {
	Number *int    `  @Int`
	Name   *string `| @Ident`
	Sub    *orExpr `| "(" @@ ")"`
}

var stressLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Operator", Pattern: `==|!=|<=|>=|&&|\|\||[-+*/%<>!()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var stressParser = participle.MustBuild[orExpr](
	participle.Lexer(stressLexer),
	participle.Elide("Whitespace"),
)

// stressVars maps the accepted variable names to their slot.
var stressVars = map[string]int{
	"i": 0, "index": 0,
	"l": 1, "n": 1, "count": 1,
}

var stressConsts = map[string]int{"True": 1, "False": 0, "true": 1, "false": 0}

// ParseStressRule compiles a stress expression. Unknown names are
// reported here rather than at evaluation.
func ParseStressRule(source string) (*StressExpr, error) {
	source = strings.TrimSpace(source)
	root, err := stressParser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("stress expression %q: %w", source, err)
	}
	e := &StressExpr{source: source, root: root}
	if name, ok := e.root.unknownName(); ok {
		return nil, fmt.Errorf("stress expression %q: unknown name %q", source, name)
	}
	return e, nil
}

// Applies evaluates the expression for one syllable.
func (e *StressExpr) Applies(index, count int) (bool, error) {
	v, err := e.root.eval([2]int{index, count})
	if err != nil {
		return false, fmt.Errorf("stress expression %q: %w", e.source, err)
	}
	return v != 0, nil
}

func (e *StressExpr) String() string { return e.source }

type env = [2]int

func truth(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (x *orExpr) eval(vars env) (int, error) {
	v, err := x.Left.eval(vars)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		if v != 0 {
			return v, nil
		}
		if v, err = r.eval(vars); err != nil {
			return 0, err
		}
	}
	return v, nil
}

func (x *andExpr) eval(vars env) (int, error) {
	v, err := x.Left.eval(vars)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Right {
		if v == 0 {
			return v, nil
		}
		if v, err = r.eval(vars); err != nil {
			return 0, err
		}
	}
	return v, nil
}

func (x *notExpr) eval(vars env) (int, error) {
	if x.Not != nil {
		v, err := x.Not.eval(vars)
		return truth(v == 0), err
	}
	return x.Cmp.eval(vars)
}

func (x *cmpExpr) eval(vars env) (int, error) {
	left, err := x.Left.eval(vars)
	if err != nil || len(x.Tail) == 0 {
		return left, err
	}
	for _, t := range x.Tail {
		right, err := t.Right.eval(vars)
		if err != nil {
			return 0, err
		}
		var ok bool
		switch t.Op {
		case "==":
			ok = left == right
		case "!=":
			ok = left != right
		case "<":
			ok = left < right
		case "<=":
			ok = left <= right
		case ">":
			ok = left > right
		case ">=":
			ok = left >= right
		}
		if !ok {
			return 0, nil
		}
		left = right
	}
	return 1, nil
}

func (x *sumExpr) eval(vars env) (int, error) {
	v, err := x.Left.eval(vars)
	if err != nil {
		return 0, err
	}
	for _, t := range x.Tail {
		r, err := t.Right.eval(vars)
		if err != nil {
			return 0, err
		}
		if t.Op == "+" {
			v += r
		} else {
			v -= r
		}
	}
	return v, nil
}

func (x *termExpr) eval(vars env) (int, error) {
	v, err := x.Left.eval(vars)
	if err != nil {
		return 0, err
	}
	for _, t := range x.Tail {
		r, err := t.Right.eval(vars)
		if err != nil {
			return 0, err
		}
		switch t.Op {
		case "*":
			v *= r
		case "/":
			if r == 0 {
				return 0, ErrDivisionByZero
			}
			v = floorDiv(v, r)
		case "%":
			if r == 0 {
				return 0, ErrDivisionByZero
			}
			v -= r * floorDiv(v, r)
		}
	}
	return v, nil
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func (x *unaryExpr) eval(vars env) (int, error) {
	if x.Neg != nil {
		v, err := x.Neg.eval(vars)
		return -v, err
	}
	return x.Atom.eval(vars)
}

func (x *atomExpr) eval(vars env) (int, error) {
	switch {
	case x.Number != nil:
		return *x.Number, nil
	case x.Name != nil:
		if slot, ok := stressVars[*x.Name]; ok {
			return vars[slot], nil
		}
		if c, ok := stressConsts[*x.Name]; ok {
			return c, nil
		}
		return 0, fmt.Errorf("unknown name %q", *x.Name)
	default:
		return x.Sub.eval(vars)
	}
}

// unknownName walks the tree looking for a name that is neither a
// variable nor a constant.
func (x *orExpr) unknownName() (string, bool) {
	for _, a := range append([]*andExpr{x.Left}, x.Right...) {
		for _, n := range append([]*notExpr{a.Left}, a.Right...) {
			if name, ok := n.unknownName(); ok {
				return name, true
			}
		}
	}
	return "", false
}

func (x *notExpr) unknownName() (string, bool) {
	if x.Not != nil {
		return x.Not.unknownName()
	}
	sums := []*sumExpr{x.Cmp.Left}
	for _, t := range x.Cmp.Tail {
		sums = append(sums, t.Right)
	}
	for _, s := range sums {
		terms := []*termExpr{s.Left}
		for _, t := range s.Tail {
			terms = append(terms, t.Right)
		}
		for _, t := range terms {
			units := []*unaryExpr{t.Left}
			for _, u := range t.Tail {
				units = append(units, u.Right)
			}
			for _, u := range units {
				if name, ok := u.unknownName(); ok {
					return name, true
				}
			}
		}
	}
	return "", false
}

func (x *unaryExpr) unknownName() (string, bool) {
	if x.Neg != nil {
		return x.Neg.unknownName()
	}
	a := x.Atom
	switch {
	case a.Name != nil:
		_, isVar := stressVars[*a.Name]
		_, isConst := stressConsts[*a.Name]
		if !isVar && !isConst {
			return *a.Name, true
		}
	case a.Sub != nil:
		return a.Sub.unknownName()
	}
	return "", false
}
