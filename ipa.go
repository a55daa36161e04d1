package soundshift

import (
	"cmp"
	"strings"
)

// ipaStressMarks holds the marker of every stress level, unstressed first.
var ipaStressMarks = [3]string{"", secondaryMark, primaryMark}

// BaseSymbol returns the IPA symbol of p without its length mark.
//
// A consonant whose voicing has no cell of its own is written with the
// symbol of the opposite voicing plus a voicing diacritic, so a voiceless
// nasal comes out as m̥.
func (c *Chart) BaseSymbol(p Phoneme) (string, error) {
	if p.Kind == Vowel {
		if int(p.Height) < numHeights && int(p.Frontness) < numFronts && p.Rounding <= Rounded {
			if s := c.vowels[p.Height][p.Frontness][p.Rounding]; s != "" {
				return s, nil
			}
		}
		return "", &UnknownSymbolError{Phoneme: &p}
	}
	if int(p.Manner) >= numManners || int(p.Place) >= numPlaces || p.Voicing > Voiced {
		return "", &UnknownSymbolError{Phoneme: &p}
	}
	cell := c.consonants[p.Manner][p.Place]
	if s := cell[p.Voicing]; s != "" {
		return s, nil
	}
	if p.Voicing == Unvoiced && cell[Voiced] != "" {
		return cell[Voiced] + devoiceBelow, nil
	}
	if p.Voicing == Voiced && cell[Unvoiced] != "" {
		return cell[Unvoiced] + voiceMark, nil
	}
	return "", &UnknownSymbolError{Phoneme: &p}
}

// Symbol returns the IPA symbol of p including the length mark.
func (c *Chart) Symbol(p Phoneme) (string, error) {
	s, err := c.BaseSymbol(p)
	if err != nil {
		return "", err
	}
	if p.Length == Long {
		s += lengthMark
	}
	return s, nil
}

// Phoneme parses a single IPA symbol. Devoicing, voicing and length marks
// are stripped before the lookup and then applied to the result, which is
// otherwise short and unstressed.
func (c *Chart) Phoneme(symbol string) (Phoneme, error) {
	sym := NormalizeSymbol(strings.TrimSpace(symbol))
	sym, devoiced := stripMarks(sym, devoiceBelow, devoiceAbove)
	sym, voiced := stripMarks(sym, voiceMark)
	sym, long := stripMarks(sym, lengthMark)

	p, ok := c.phonemes[sym]
	if !ok {
		return Phoneme{}, &UnknownSymbolError{Symbol: symbol}
	}
	if p.Kind == Consonant {
		if devoiced {
			p.Voicing = Unvoiced
		}
		if voiced {
			p.Voicing = Voiced
		}
	}
	if long {
		p.Length = Long
	}
	return p, nil
}

// Transcribe renders seq in IPA. Every stressed run is enclosed in the
// marker of its level (ˈ primary, ˌ secondary): one before its first
// phoneme and one after its last.
func (c *Chart) Transcribe(seq Sequence) (string, error) {
	var sb strings.Builder
	prev := Unstressed
	for _, p := range seq {
		s, err := c.Symbol(p)
		if err != nil {
			return "", err
		}
		sb.WriteString(stressTransition(prev, p.Stress, ipaStressMarks))
		sb.WriteString(s)
		prev = p.Stress
	}
	sb.WriteString(stressTransition(prev, Unstressed, ipaStressMarks))
	return sb.String(), nil
}

// Parse reads an IPA string written the way Transcribe writes it.
// Symbols are matched longest first; stress markers open and close
// stressed runs.
func (c *Chart) Parse(ipa string) (Sequence, error) {
	runes := []rune(NormalizeSymbol(ipa))
	seq := make(Sequence, 0, len(runes))
	stress := Unstressed

	for i := 0; i < len(runes); {
		switch string(runes[i]) {
		case primaryMark:
			stress = toggleStress(stress, Stressed)
			i++
			continue
		case secondaryMark:
			stress = toggleStress(stress, SecondaryStressed)
			i++
			continue
		}

		n := c.matchSymbol(runes[i:])
		if n == 0 {
			return nil, &UnknownSymbolError{Symbol: string(runes[i])}
		}
		j := i + n
		for j < len(runes) && isSymbolModifier(runes[j]) {
			j++
		}
		p, err := c.Phoneme(string(runes[i:j]))
		if err != nil {
			return nil, err
		}
		p.Stress = stress
		seq = append(seq, p)
		i = j
	}
	return seq, nil
}

// matchSymbol returns the rune length of the longest chart symbol at the
// start of runes, or 0.
func (c *Chart) matchSymbol(runes []rune) int {
	for n := min(c.maxRunes, len(runes)); n > 0; n-- {
		if _, ok := c.phonemes[string(runes[:n])]; ok {
			return n
		}
	}
	return 0
}

// Compare orders sequences the way the dictionary keeps them: phoneme by
// phoneme on the rendered symbol, then shorter first.
func (c *Chart) Compare(a, b Sequence) (int, error) {
	for i := 0; i < len(a) && i < len(b); i++ {
		sa, err := c.Symbol(a[i])
		if err != nil {
			return 0, err
		}
		sb, err := c.Symbol(b[i])
		if err != nil {
			return 0, err
		}
		if r := strings.Compare(sa, sb); r != 0 {
			return r, nil
		}
	}
	return cmp.Compare(len(a), len(b)), nil
}
