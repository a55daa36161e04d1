package soundshift

import (
	"fmt"
	"regexp"
	"strings"
)

// Template describes the syllables of a language: how many consonants an
// onset and a coda may hold, and which syllables carry stress.
type Template struct {
	MinOnset, MaxOnset int
	MinCoda, MaxCoda   int
	Primary            StressRule
	Secondary          StressRule

	// syllableRe matches a whole skeleton; its first group captures the
	// last syllable.
	syllableRe *regexp.Regexp
}

// NewTemplate builds a template from required and optional consonant
// counts. Nil stress rules never stress anything.
func NewTemplate(reqOnset, optOnset, reqCoda, optCoda int, primary, secondary StressRule) (*Template, error) {
	if reqOnset < 0 || optOnset < 0 || reqCoda < 0 || optCoda < 0 {
		return nil, fmt.Errorf("negative consonant count in syllable template")
	}
	if primary == nil {
		primary = Never
	}
	if secondary == nil {
		secondary = Never
	}
	// The coda quantifier is lazy: when a consonant could close one
	// syllable or open the next, the onset gets it.
	expr := fmt.Sprintf("^(c{%d,%d}vc{%d,%d}?)+$", reqOnset, reqOnset+optOnset, reqCoda, reqCoda+optCoda)
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("syllable template: %w", err)
	}
	return &Template{
		MinOnset:   reqOnset,
		MaxOnset:   reqOnset + optOnset,
		MinCoda:    reqCoda,
		MaxCoda:    reqCoda + optCoda,
		Primary:    primary,
		Secondary:  secondary,
		syllableRe: re,
	}, nil
}

// ParseTemplate reads a syllable shape such as "(c)cv(c)": every 'c'
// before the 'v' is an onset slot, every one after it a coda slot, and
// each '(' makes one slot optional.
func ParseTemplate(shape string, primary, secondary StressRule) (*Template, error) {
	shape = strings.ToLower(strings.TrimSpace(shape))
	onset, coda, ok := strings.Cut(shape, "v")
	if !ok || strings.Contains(coda, "v") {
		return nil, fmt.Errorf("syllable template %q must contain exactly one 'v'", shape)
	}
	optOnset := strings.Count(onset, "(")
	optCoda := strings.Count(coda, "(")
	reqOnset := strings.Count(onset, "c") - optOnset
	reqCoda := strings.Count(coda, "c") - optCoda
	if reqOnset < 0 || reqCoda < 0 {
		return nil, fmt.Errorf("syllable template %q has an optional group without a 'c'", shape)
	}
	return NewTemplate(reqOnset, optOnset, reqCoda, optCoda, primary, secondary)
}

// Syllabify splits seq into syllables, left to right.
//
// Syllables are found from the end: the whole remaining skeleton is
// matched against the template, the last syllable of that match is cut
// off, and the rest is matched again. An empty sequence has no syllables.
func (t *Template) Syllabify(seq Sequence) ([]Sequence, error) {
	skeleton := seq.Skeleton()
	rest := skeleton
	var syllables []Sequence
	end := len(seq)

	for len(rest) > 0 {
		m := t.syllableRe.FindStringSubmatchIndex(rest)
		if m == nil {
			return nil, &InvalidSyllableStructureError{Skeleton: skeleton, Remaining: rest}
		}
		n := m[3] - m[2]
		syllables = append(syllables, seq.Slice(end-n, end))
		end -= n
		rest = rest[:end]
	}

	// found last-first
	for i, j := 0, len(syllables)-1; i < j; i, j = i+1, j-1 {
		syllables[i], syllables[j] = syllables[j], syllables[i]
	}
	return syllables, nil
}

// Boundaries returns the index in seq where every syllable starts.
func (t *Template) Boundaries(seq Sequence) ([]int, error) {
	syllables, err := t.Syllabify(seq)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(syllables))
	pos := 0
	for i, s := range syllables {
		out[i] = pos
		pos += len(s)
	}
	return out, nil
}

// AssignStress sets the stress of every phoneme of seq in place: for each
// syllable the primary rule is asked first, then the secondary one.
func (t *Template) AssignStress(seq Sequence) error {
	starts, err := t.Boundaries(seq)
	if err != nil {
		return err
	}
	count := len(starts)
	for i, start := range starts {
		end := len(seq)
		if i+1 < count {
			end = starts[i+1]
		}
		level, err := t.stressOf(i, count)
		if err != nil {
			return fmt.Errorf("syllable %d of %d: %w", i, count, err)
		}
		for j := start; j < end; j++ {
			seq[j].Stress = level
		}
	}
	return nil
}

func (t *Template) stressOf(index, count int) (Stress, error) {
	ok, err := t.Primary.Applies(index, count)
	if err != nil {
		return Unstressed, err
	}
	if ok {
		return Stressed, nil
	}
	ok, err = t.Secondary.Applies(index, count)
	if err != nil {
		return Unstressed, err
	}
	if ok {
		return SecondaryStressed, nil
	}
	return Unstressed, nil
}

// Shape returns the template in the notation read by ParseTemplate.
func (t *Template) Shape() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("(c)", t.MaxOnset-t.MinOnset))
	sb.WriteString(strings.Repeat("c", t.MinOnset))
	sb.WriteByte('v')
	sb.WriteString(strings.Repeat("c", t.MinCoda))
	sb.WriteString(strings.Repeat("(c)", t.MaxCoda-t.MinCoda))
	return sb.String()
}
