package soundshift

import "fmt"

// Derivation records every stage of a traced derivation.
type Derivation struct {
	// Word is nil when a bare sequence was traced.
	Word *Word
	// Raw is the folded morpheme sequence before any processing.
	Raw Sequence
	// Stressed is Raw after the first stress pass.
	Stressed Sequence
	// Steps holds one entry per rule, in application order.
	Steps []RuleStep
	// Surface is the final, restressed form.
	Surface Sequence
}

// Changed returns the steps whose rule matched.
func (d *Derivation) Changed() []RuleStep {
	var out []RuleStep
	for _, s := range d.Steps {
		if s.Matched {
			out = append(out, s)
		}
	}
	return out
}

// DeriveTrace derives w like Derive and keeps the intermediate forms.
func (l *Language) DeriveTrace(w *Word) (*Derivation, error) {
	d, err := l.traceSequence(w.RawPhonemes())
	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", w.Spelling(), err)
	}
	d.Word = w
	return d, nil
}

// TraceText traces the derivation of romanized text as a single stem.
func (l *Language) TraceText(text string) (*Derivation, error) {
	raw, err := l.Romanization.Decode(text)
	if err != nil {
		return nil, err
	}
	return l.traceSequence(raw)
}

func (l *Language) traceSequence(raw Sequence) (*Derivation, error) {
	d := &Derivation{Raw: raw.Clone()}

	stressed := raw.Clone()
	if err := l.Template.AssignStress(stressed); err != nil {
		return nil, err
	}
	d.Stressed = stressed

	seq, steps, err := l.Rules.Trace(stressed)
	if err != nil {
		return nil, err
	}
	d.Steps = steps

	if err := l.Template.AssignStress(seq); err != nil {
		return nil, err
	}
	d.Surface = seq
	return d, nil
}
