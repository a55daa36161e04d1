package soundshift

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// FilterMode is the way a PropertyFilter tests a phoneme.
type FilterMode uint8

const (
	// MustHave requires a capability (see Phoneme.HasCapability).
	MustHave FilterMode = iota
	// MustBe requires the phoneme to be a literal IPA segment.
	MustBe
	// At requires the phoneme to sit at the start or end of the sequence.
	At
)

// PropertyFilter is a single test of a pattern slot.
type PropertyFilter struct {
	Key    string
	Mode   FilterMode
	Invert bool
	// literal is the parsed segment of a MustBe filter.
	literal Phoneme
}

// Matches tests p. isFirst and isLast describe the position of p in the
// whole sequence, not in the matched window.
func (f PropertyFilter) Matches(p Phoneme, isFirst, isLast bool) bool {
	var ok bool
	switch f.Mode {
	case MustHave:
		ok = p.HasCapability(f.Key)
	case MustBe:
		ok = p.sameSegment(f.literal)
	case At:
		ok = (f.Key == KeyStart && isFirst) || (f.Key == KeyEnd && isLast)
	}
	return ok != f.Invert
}

func (f PropertyFilter) String() string {
	var sb strings.Builder
	if f.Invert {
		sb.WriteByte('!')
	}
	if f.Mode == MustBe {
		sb.WriteByte('*')
	}
	sb.WriteString(f.Key)
	return sb.String()
}

// PhonemeMatch is one slot of a pattern: all of its filters must hold.
type PhonemeMatch struct {
	Filters []PropertyFilter
}

// Matches tests p against every filter of the slot.
func (m PhonemeMatch) Matches(p Phoneme, isFirst, isLast bool) bool {
	for _, f := range m.Filters {
		if !f.Matches(p, isFirst, isLast) {
			return false
		}
	}
	return true
}

// pinnedKind returns the kind the slot requires, if any.
func (m PhonemeMatch) pinnedKind() (Kind, bool) {
	for _, f := range m.Filters {
		switch {
		case f.Invert:
		case f.Mode == MustBe:
			return f.literal.Kind, true
		case f.Key == "vowel":
			return Vowel, true
		case f.Key == "consonant":
			return Consonant, true
		}
	}
	return 0, false
}

func (m PhonemeMatch) String() string {
	parts := make([]string, len(m.Filters))
	for i, f := range m.Filters {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Pattern is the fixed-length left-hand side of a rule.
type Pattern []PhonemeMatch

// Match returns the start of the leftmost window of seq matching every
// slot of the pattern.
func (pt Pattern) Match(seq Sequence) (int, bool) {
	n := len(pt)
	if n == 0 {
		return 0, false
	}
	last := len(seq) - 1
	for start := 0; start+n <= len(seq); start++ {
		found := true
		for i, m := range pt {
			pos := start + i
			if !m.Matches(seq[pos], pos == 0, pos == last) {
				found = false
				break
			}
		}
		if found {
			return start, true
		}
	}
	return 0, false
}

func (pt Pattern) String() string {
	var sb strings.Builder
	for _, m := range pt {
		sb.WriteString(m.String())
	}
	return sb.String()
}

// patternGrammar is the participle grammar of a rule's left-hand side,
// e.g. "(vowel !long)(*n end)".
//
//nolint:govet // participle grammar tags are not standard struct tags
type patternGrammar struct {
	Slots []*slotGrammar `@@+`
}

//nolint:govet // participle grammar tags are not standard struct tags
type slotGrammar struct {
	Filters []*filterGrammar `"(" @@+ ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type filterGrammar struct {
	Invert  bool   `@"!"?`
	Literal bool   `@"*"?`
	Key     string `@Key`
}

var patternLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Punct", Pattern: `[()!*]`},
	{Name: "Key", Pattern: `[^()!*\s]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var patternParser = participle.MustBuild[patternGrammar](
	participle.Lexer(patternLexer),
	participle.Elide("Whitespace"),
)

// ParsePattern compiles the left-hand side of a rule. Capability keys may
// be abbreviated (see CompleteKey); literal segments are written after a
// '*' and must be known to chart.
func ParsePattern(s string, chart *Chart) (Pattern, error) {
	parsed, err := patternParser.ParseString("", strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %w", ErrMalformedRule, s, err)
	}
	pattern := make(Pattern, 0, len(parsed.Slots))
	for _, slot := range parsed.Slots {
		m := PhonemeMatch{Filters: make([]PropertyFilter, 0, len(slot.Filters))}
		for _, fg := range slot.Filters {
			f, err := fg.build(chart)
			if err != nil {
				return nil, err
			}
			m.Filters = append(m.Filters, f)
		}
		pattern = append(pattern, m)
	}
	return pattern, nil
}

func (fg *filterGrammar) build(chart *Chart) (PropertyFilter, error) {
	if fg.Literal {
		p, err := chart.Phoneme(fg.Key)
		if err != nil {
			return PropertyFilter{}, err
		}
		sym, err := chart.Symbol(p)
		if err != nil {
			return PropertyFilter{}, err
		}
		return PropertyFilter{Key: sym, Mode: MustBe, Invert: fg.Invert, literal: p}, nil
	}
	key, err := CompleteKey(fg.Key)
	if err != nil {
		return PropertyFilter{}, err
	}
	mode := MustHave
	if key == KeyStart || key == KeyEnd {
		mode = At
	}
	return PropertyFilter{Key: key, Mode: mode, Invert: fg.Invert}, nil
}
