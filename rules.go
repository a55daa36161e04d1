package soundshift

import (
	"fmt"
	"strings"
	"unicode"
)

// Rule is one sound change: a pattern and the action run on the first
// window it matches. Rules are immutable once parsed.
type Rule struct {
	Pattern Pattern
	Action  *Action
}

// ParseRule reads a rule line "pattern<sep><sep>action", where the two
// separators are consecutive tabs or spaces, e.g.
//
//	(vowel)(vowel)		p[1].rem(); p[0]["length"] = "long"
func ParseRule(line string, chart *Chart) (*Rule, error) {
	patternSrc, actionSrc, ok := splitRule(strings.TrimSpace(line))
	if !ok {
		return nil, fmt.Errorf("%w: missing double separator between pattern and action", ErrMalformedRule)
	}
	pattern, err := ParsePattern(patternSrc, chart)
	if err != nil {
		return nil, err
	}
	action, err := CompileAction(actionSrc, pattern)
	if err != nil {
		return nil, err
	}
	return &Rule{Pattern: pattern, Action: action}, nil
}

// splitRule cuts line at the first pair of consecutive whitespace
// characters.
func splitRule(line string) (string, string, bool) {
	runes := []rune(line)
	for i := 1; i < len(runes); i++ {
		if unicode.IsSpace(runes[i-1]) && unicode.IsSpace(runes[i]) {
			return strings.TrimSpace(string(runes[:i-1])), strings.TrimSpace(string(runes[i+1:])), true
		}
	}
	return "", "", false
}

// Apply runs the rule once: it finds the leftmost matching window, runs
// the action on it and removes deleted phonemes. It reports whether the
// rule matched. seq itself is never modified.
func (r *Rule) Apply(seq Sequence) (Sequence, bool, error) {
	start, ok := r.Pattern.Match(seq)
	if !ok {
		return seq, false, nil
	}
	end := start + len(r.Pattern)
	edited, deleted, err := r.Action.Run(seq[start:end])
	if err != nil {
		return seq, true, err
	}

	out := make(Sequence, 0, len(seq))
	out = append(out, seq[:start]...)
	for i, p := range edited {
		if !deleted[i] {
			out = append(out, p)
		}
	}
	out = append(out, seq[end:]...)
	return out, true, nil
}

func (r *Rule) String() string {
	return r.Pattern.String() + "\t\t" + r.Action.String()
}

// RuleSet is an ordered list of rules. Order is application order.
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet returns a rule set applying rules in the given order.
func NewRuleSet(rules ...*Rule) *RuleSet {
	return &RuleSet{rules: append([]*Rule(nil), rules...)}
}

// Rules returns the rules in application order.
func (rs *RuleSet) Rules() []*Rule {
	if rs == nil {
		return nil
	}
	return append([]*Rule(nil), rs.rules...)
}

// Len returns the number of rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Apply runs every rule exactly once, in order, each on the output of the
// previous one. A rule that matches nothing leaves the sequence alone;
// earlier rules are never revisited.
func (rs *RuleSet) Apply(seq Sequence) (Sequence, error) {
	out, _, err := rs.apply(seq, nil)
	return out, err
}

// RuleStep records the effect of one rule during a traced application.
type RuleStep struct {
	Rule    *Rule
	Matched bool
	Result  Sequence
}

// Trace applies the rules like Apply and returns the sequence after every
// rule.
func (rs *RuleSet) Trace(seq Sequence) (Sequence, []RuleStep, error) {
	steps := make([]RuleStep, 0, rs.Len())
	out, steps, err := rs.apply(seq, steps)
	return out, steps, err
}

func (rs *RuleSet) apply(seq Sequence, steps []RuleStep) (Sequence, []RuleStep, error) {
	out := seq.Clone()
	if rs == nil {
		return out, steps, nil
	}
	for i, r := range rs.rules {
		next, matched, err := r.Apply(out)
		if err != nil {
			return out, steps, fmt.Errorf("rule %d %s: %w", i+1, r.Pattern, err)
		}
		out = next
		if steps != nil {
			steps = append(steps, RuleStep{Rule: r, Matched: matched, Result: out.Clone()})
		}
	}
	return out, steps, nil
}
