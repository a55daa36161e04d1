package soundshift

import "strings"

// Morpheme is a unit of meaning wrapped around a stem: its prefix goes
// before, its postfix after. A morpheme without a prefix is free and can
// stand alone as a word.
type Morpheme struct {
	Tag         string
	Prefix      Sequence
	Postfix     Sequence
	Definitions []string
}

// Apply wraps seq in the morpheme. The result never shares storage with
// seq or with the morpheme.
func (m *Morpheme) Apply(seq Sequence) Sequence {
	out := make(Sequence, 0, len(m.Prefix)+len(seq)+len(m.Postfix))
	out = append(out, m.Prefix...)
	out = append(out, seq...)
	out = append(out, m.Postfix...)
	return out
}

// Free reports whether the morpheme has no prefix.
func (m *Morpheme) Free() bool { return len(m.Prefix) == 0 }

// Word is an ordered composition of morphemes. Its pronounced form is
// derived on demand by a Language and never cached on the word.
type Word struct {
	Morphemes   []*Morpheme
	Definitions []string
}

// RawPhonemes folds the morphemes over an empty sequence, innermost first.
func (w *Word) RawPhonemes() Sequence {
	var seq Sequence
	for _, m := range w.Morphemes {
		seq = m.Apply(seq)
	}
	if seq == nil {
		seq = Sequence{}
	}
	return seq
}

// Tags returns the morpheme tags of the word.
func (w *Word) Tags() []string {
	tags := make([]string, len(w.Morphemes))
	for i, m := range w.Morphemes {
		tags[i] = m.Tag
	}
	return tags
}

// Spelling returns the tags joined the way dictionary files write them,
// e.g. "root+plural".
func (w *Word) Spelling() string { return strings.Join(w.Tags(), "+") }
