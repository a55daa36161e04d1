// Package soundshift derives the pronunciation of constructed-language
// words from feature-based phonemes, declarative sound-change rules and a
// syllable template, and renders the result as IPA or in a custom
// romanization.
package soundshift

import "fmt"

// Language holds everything needed to derive and render the words of one
// language. Chart, Romanization, Template and Rules are read-only once the
// language is built; use SetRules to swap the rule set.
type Language struct {
	Chart        *Chart
	Romanization *Romanization
	Template     *Template
	Rules        *RuleSet

	// Dictionary is nil for languages loaded WithoutDictionary.
	Dictionary *Dictionary
}

// NewLanguage assembles a language with an empty dictionary. A nil rule
// set applies no rules.
func NewLanguage(chart *Chart, romanization *Romanization, template *Template, rules *RuleSet) *Language {
	if rules == nil {
		rules = NewRuleSet()
	}
	l := &Language{
		Chart:        chart,
		Romanization: romanization,
		Template:     template,
		Rules:        rules,
	}
	l.Dictionary = NewDictionary(l)
	return l
}

// Derive returns the pronounced form of w: the morphemes are folded into
// raw phonemes, stress is assigned, the rules run once each, and stress
// is assigned again on the result. Nothing is cached.
func (l *Language) Derive(w *Word) (Sequence, error) {
	seq, err := l.DeriveSequence(w.RawPhonemes())
	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", w.Spelling(), err)
	}
	return seq, nil
}

// DeriveSequence runs the derivation pipeline on a raw phoneme sequence.
// raw is not modified.
func (l *Language) DeriveSequence(raw Sequence) (Sequence, error) {
	seq := raw.Clone()
	if err := l.Template.AssignStress(seq); err != nil {
		return nil, err
	}
	seq, err := l.Rules.Apply(seq)
	if err != nil {
		return nil, err
	}
	// rules may have moved syllable boundaries
	if err := l.Template.AssignStress(seq); err != nil {
		return nil, err
	}
	return seq, nil
}

// DeriveText decodes romanized text and derives it as a single stem.
func (l *Language) DeriveText(text string) (Sequence, error) {
	raw, err := l.Romanization.Decode(text)
	if err != nil {
		return nil, err
	}
	return l.DeriveSequence(raw)
}

// Word builds a word from morpheme tags known to the dictionary.
func (l *Language) Word(tags []string, definitions []string) (*Word, error) {
	if l.Dictionary == nil {
		return nil, fmt.Errorf("%w: language has no dictionary", ErrUnknownMorpheme)
	}
	return l.Dictionary.NewWord(tags, definitions)
}

// IPA renders seq with stress marks.
func (l *Language) IPA(seq Sequence) (string, error) {
	return l.Chart.Transcribe(seq)
}

// Romanize renders seq in the language's romanization.
func (l *Language) Romanize(seq Sequence) (string, error) {
	return l.Romanization.Encode(seq)
}

// SetRules replaces the rule set and re-sorts the dictionary, whose order
// depends on derived forms.
func (l *Language) SetRules(rules *RuleSet) error {
	if rules == nil {
		rules = NewRuleSet()
	}
	l.Rules = rules
	if l.Dictionary == nil {
		return nil
	}
	return l.Dictionary.Rebuild()
}
