package soundshift

import (
	"strings"
)

// Roman stress and length marks.
const (
	romanPrimary   = "`"
	romanSecondary = ","
	romanLong      = ":"
)

var romanStressMarks = [3]string{"", romanSecondary, romanPrimary}

// RomanEntry is one line of a romanization table.
type RomanEntry struct {
	Roman  string
	Symbol string
}

// Romanization converts between a language's spelling and phonemes.
// It is immutable once built.
type Romanization struct {
	chart *Chart
	// toPhoneme maps a roman letter (or letter group) to its phoneme.
	toPhoneme map[string]Phoneme
	// toRoman maps a full IPA symbol to the first roman letter declared for it.
	toRoman map[string]string
	// maxRunes is the length of the longest roman key.
	maxRunes int
	entries  []RomanEntry
}

// NewRomanization builds a table from entries in declaration order. When
// several letters share a symbol, the first one is used for encoding.
func NewRomanization(chart *Chart, entries []RomanEntry) (*Romanization, error) {
	r := &Romanization{
		chart:     chart,
		toPhoneme: make(map[string]Phoneme, len(entries)),
		toRoman:   make(map[string]string, len(entries)),
		entries:   append([]RomanEntry(nil), entries...),
	}
	for _, e := range entries {
		p, err := chart.Phoneme(e.Symbol)
		if err != nil {
			return nil, err
		}
		sym, err := chart.Symbol(p)
		if err != nil {
			return nil, err
		}
		r.toPhoneme[e.Roman] = p
		if _, ok := r.toRoman[sym]; !ok {
			r.toRoman[sym] = e.Roman
		}
		if n := len([]rune(e.Roman)); n > r.maxRunes {
			r.maxRunes = n
		}
	}
	return r, nil
}

// Entries returns the table in declaration order.
func (r *Romanization) Entries() []RomanEntry {
	return append([]RomanEntry(nil), r.entries...)
}

// Decode converts romanized text into phonemes. Letters are matched
// longest first, a ':' after a letter lengthens it, and '`' / ','
// open and close primary / secondary stressed runs.
func (r *Romanization) Decode(text string) (Sequence, error) {
	runes := []rune(text)
	seq := make(Sequence, 0, len(runes))
	stress := Unstressed

	for i := 0; i < len(runes); {
		n := r.matchRoman(runes[i:])
		if n == 0 {
			switch string(runes[i]) {
			case romanPrimary:
				stress = toggleStress(stress, Stressed)
				i++
				continue
			case romanSecondary:
				stress = toggleStress(stress, SecondaryStressed)
				i++
				continue
			case romanLong:
				if len(seq) > 0 {
					seq[len(seq)-1].Length = Long
					i++
					continue
				}
			}
			return nil, &UnmappedCharacterError{Char: string(runes[i]), Text: text}
		}
		p := r.toPhoneme[string(runes[i:i+n])]
		p.Stress = stress
		seq = append(seq, p)
		i += n
	}
	return seq, nil
}

// matchRoman returns the rune length of the longest table key at the start
// of runes, or 0.
func (r *Romanization) matchRoman(runes []rune) int {
	for n := min(r.maxRunes, len(runes)); n > 0; n-- {
		if _, ok := r.toPhoneme[string(runes[:n])]; ok {
			return n
		}
	}
	return 0
}

// Encode spells seq in the romanization. Long phonemes without a letter of
// their own get the short letter followed by ':'. Stress marks bracket
// stressed runs exactly like Chart.Transcribe.
func (r *Romanization) Encode(seq Sequence) (string, error) {
	var sb strings.Builder
	prev := Unstressed
	for _, p := range seq {
		letter, err := r.letter(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(stressTransition(prev, p.Stress, romanStressMarks))
		sb.WriteString(letter)
		prev = p.Stress
	}
	sb.WriteString(stressTransition(prev, Unstressed, romanStressMarks))
	return sb.String(), nil
}

func (r *Romanization) letter(p Phoneme) (string, error) {
	sym, err := r.chart.Symbol(p)
	if err != nil {
		return "", err
	}
	if l, ok := r.toRoman[sym]; ok {
		return l, nil
	}
	base, err := r.chart.BaseSymbol(p)
	if err != nil {
		return "", err
	}
	l, ok := r.toRoman[base]
	if !ok {
		return "", &UnmappedPhonemeError{Symbol: sym}
	}
	if p.Length == Long {
		l += romanLong
	}
	return l, nil
}
