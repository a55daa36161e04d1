package soundshift

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IPA diacritics and suprasegmentals handled by the codecs.
const (
	devoiceBelow = "\u0325" // ring below
	devoiceAbove = "\u030a" // ring above, used under descenders
	voiceMark    = "\u032c" // caron below
	lengthMark   = "\u02d0" // ː

	primaryMark   = "\u02c8" // ˈ
	secondaryMark = "\u02cc" // ˌ
)

// lookalikeReplacer maps characters commonly typed in place of their IPA
// counterparts. It runs after NFD decomposition.
var lookalikeReplacer = strings.NewReplacer(
	"g", "\u0261", // g → ɡ
	"'", "\u02bc", // ' → ʼ (ejective)
	"\u2019", "\u02bc", // ’ → ʼ
	"\u02d1", lengthMark, // ˑ half-long is read as long
	"\u035c", "\u0361", // tie bar below → tie bar above
)

// NormalizeSymbol brings an IPA string into the form used by the chart:
// canonical decomposition (NFD), so that precomposed letters such as ç and
// a trailing diacritic compare equal however they were typed, followed by
// the replacement of ASCII look-alikes.
func NormalizeSymbol(s string) string {
	return lookalikeReplacer.Replace(norm.NFD.String(s))
}

// stripMarks removes every occurrence of the given marks from s and
// reports whether any was present.
func stripMarks(s string, marks ...string) (string, bool) {
	found := false
	for _, m := range marks {
		if strings.Contains(s, m) {
			found = true
			s = strings.ReplaceAll(s, m, "")
		}
	}
	return s, found
}

// isSymbolModifier reports whether r is a diacritic the symbol codec
// strips before looking a symbol up.
func isSymbolModifier(r rune) bool {
	switch string(r) {
	case devoiceBelow, devoiceAbove, voiceMark, lengthMark:
		return true
	}
	return false
}

// stressTransition returns the markers to write between a phoneme with
// stress prev and the next one with stress cur. Stressed runs are
// bracketed: the run's marker opens it and the same marker closes it.
func stressTransition(prev, cur Stress, marks [3]string) string {
	if prev == cur {
		return ""
	}
	var out string
	if prev != Unstressed {
		out += marks[prev]
	}
	if cur != Unstressed {
		out += marks[cur]
	}
	return out
}

// toggleStress updates the current stress level after reading the marker
// of level lvl: a marker of the open level closes the run.
func toggleStress(current, lvl Stress) Stress {
	if current == lvl {
		return Unstressed
	}
	return lvl
}
