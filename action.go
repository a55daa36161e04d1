package soundshift

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The action language is the right-hand side of a rule. It can only touch
// the phonemes of the matched window, addressed as p[0], p[1], ...
// (negative indices count from the end of the window):
//
//	p[1].rem()                      delete p[1] (also .del(), .delete())
//	p[0]["length"] = "long"         set a feature
//	p[0].voicing = voiced           same, short form
//	p[0]["place"] = p[1]["place"]   copy a feature from another phoneme
//
// Statements are separated by ';'.

//nolint:govet // participle grammar tags are not standard struct tags
type actionGrammar struct {
	Statements []*statementGrammar `( @@ ";"? )+`
}

//nolint:govet // participle grammar tags are not standard struct tags
type statementGrammar struct {
	Target int            `"p" "[" @Int "]"`
	Remove *removeGrammar `( @@`
	Set    *assignGrammar `| @@ )`
}

//nolint:govet // participle grammar tags are not standard struct tags
type removeGrammar struct {
	Method string `"." @( "rem" | "del" | "delete" ) "(" ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type assignGrammar struct {
	Key   string        `( "[" @String "]" | "." @Ident )`
	Value *valueGrammar `"=" @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type valueGrammar struct {
	Ref     *refGrammar `  @@`
	Literal string      `| @( String | Ident )`
}

//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	Index int    `"p" "[" @Int "]"`
	Key   string `( "[" @String "]" | "." @Ident )`
}

var actionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[\[\]().=;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var actionParser = participle.MustBuild[actionGrammar](
	participle.Lexer(actionLexer),
	participle.Elide("Whitespace"),
	participle.Map(func(t lexer.Token) (lexer.Token, error) {
		t.Value = t.Value[1 : len(t.Value)-1]
		return t, nil
	}, "String"),
	participle.UseLookahead(2),
)

type opCode uint8

const (
	opDelete opCode = iota
	opSet
	opCopy
)

// instruction is one compiled statement.
type instruction struct {
	op    opCode
	index int
	key   string
	// value is the member name written by opSet.
	value string
	// from is the window index read by opCopy.
	from int
}

// Action is a compiled rule action: a closed list of edits on the matched
// window.
type Action struct {
	source  string
	program []instruction
}

// CompileAction parses source against pattern, which fixes the window
// size and, where a slot pins it, the kind of each phoneme.
func CompileAction(source string, pattern Pattern) (*Action, error) {
	source = strings.TrimSpace(source)
	malformed := func(reason string, err error) error {
		return &MalformedRuleActionError{Action: source, Reason: reason, Err: err}
	}
	if source == "" {
		return nil, malformed("empty action", nil)
	}
	parsed, err := actionParser.ParseString("", source)
	if err != nil {
		return nil, malformed("syntax error", err)
	}

	a := &Action{source: source, program: make([]instruction, 0, len(parsed.Statements))}
	for _, st := range parsed.Statements {
		idx, ok := windowIndex(st.Target, len(pattern))
		if !ok {
			return nil, malformed(fmt.Sprintf("p[%d] is outside a window of %d", st.Target, len(pattern)), nil)
		}
		if st.Remove != nil {
			a.program = append(a.program, instruction{op: opDelete, index: idx})
			continue
		}

		key := st.Set.Key
		if !IsFeatureKey(key) {
			return nil, malformed(fmt.Sprintf("unknown feature %q", key), nil)
		}
		if kind, pinned := pattern[idx].pinnedKind(); pinned && !FeatureAppliesTo(key, kind) {
			return nil, malformed(fmt.Sprintf("feature %q does not apply to the %s matched by p[%d]", key, kind, idx), nil)
		}

		if ref := st.Set.Value.Ref; ref != nil {
			from, ok := windowIndex(ref.Index, len(pattern))
			if !ok {
				return nil, malformed(fmt.Sprintf("p[%d] is outside a window of %d", ref.Index, len(pattern)), nil)
			}
			if ref.Key != key {
				return nil, malformed(fmt.Sprintf("cannot assign %q to %q", ref.Key, key), nil)
			}
			a.program = append(a.program, instruction{op: opCopy, index: idx, key: key, from: from})
			continue
		}

		value := st.Set.Value.Literal
		if !ValidFeatureValue(key, value) {
			return nil, malformed(fmt.Sprintf("%q is not a valid %s", value, key), nil)
		}
		a.program = append(a.program, instruction{op: opSet, index: idx, key: key, value: value})
	}
	return a, nil
}

// windowIndex resolves a possibly negative index into a window of size n.
func windowIndex(i, n int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

// mutablePhoneme stands in for a matched phoneme while an action runs.
type mutablePhoneme struct {
	Phoneme
	deleted bool
}

// Run executes the action on a copy of window. It returns the edited
// phonemes and, for each of them, whether it was deleted.
func (a *Action) Run(window []Phoneme) ([]Phoneme, []bool, error) {
	proxies := make([]mutablePhoneme, len(window))
	for i, p := range window {
		proxies[i] = mutablePhoneme{Phoneme: p}
	}

	for _, in := range a.program {
		if in.index >= len(proxies) || in.from >= len(proxies) {
			return nil, nil, &MalformedRuleActionError{Action: a.source, Reason: "window too small"}
		}
		target := &proxies[in.index]
		switch in.op {
		case opDelete:
			target.deleted = true
		case opSet, opCopy:
			value := in.value
			if in.op == opCopy {
				v, ok := proxies[in.from].Feature(in.key)
				if !ok {
					return nil, nil, &MalformedRuleActionError{
						Action: a.source,
						Reason: fmt.Sprintf("p[%d] is a %s without %q", in.from, proxies[in.from].Kind, in.key),
					}
				}
				value = v
			}
			p, err := target.WithFeature(in.key, value)
			if err != nil {
				return nil, nil, &MalformedRuleActionError{Action: a.source, Reason: fmt.Sprintf("p[%d]", in.index), Err: err}
			}
			target.Phoneme = p
		}
	}

	out := make([]Phoneme, len(proxies))
	deleted := make([]bool, len(proxies))
	for i, mp := range proxies {
		out[i] = mp.Phoneme
		deleted[i] = mp.deleted
	}
	return out, deleted, nil
}

// String returns the action source.
func (a *Action) String() string { return a.source }
