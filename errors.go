package soundshift

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below unwraps to one of them, so
// callers can use errors.Is without caring about the details.
var (
	ErrUnknownSymbol            = errors.New("unknown symbol")
	ErrUnmappedCharacter        = errors.New("unmapped character")
	ErrUnmappedPhoneme          = errors.New("unmapped phoneme")
	ErrInvalidSyllableStructure = errors.New("invalid syllable structure")
	ErrUnknownCapabilityKey     = errors.New("unknown capability key")
	ErrMalformedRuleAction      = errors.New("malformed rule action")
	ErrMalformedRule            = errors.New("malformed rule")
	ErrUnknownMorpheme          = errors.New("unknown morpheme")
	ErrWordNotFound             = errors.New("word not found")
)

// UnknownSymbolError is returned when an IPA symbol is not in the chart,
// or a phoneme has no symbol.
type UnknownSymbolError struct {
	Symbol  string
	Phoneme *Phoneme
}

func (e *UnknownSymbolError) Error() string {
	if e.Phoneme != nil {
		return fmt.Sprintf("no symbol for %#v", *e.Phoneme)
	}
	return fmt.Sprintf("unknown symbol %q", e.Symbol)
}

func (e *UnknownSymbolError) Unwrap() error { return ErrUnknownSymbol }

// UnmappedCharacterError is returned when romanized text holds a character
// the romanization table does not know.
type UnmappedCharacterError struct {
	Char string
	Text string
}

func (e *UnmappedCharacterError) Error() string {
	return fmt.Sprintf("unmapped character %q in %q", e.Char, e.Text)
}

func (e *UnmappedCharacterError) Unwrap() error { return ErrUnmappedCharacter }

// UnmappedPhonemeError is returned when a phoneme has no romanization.
type UnmappedPhonemeError struct {
	Symbol string
}

func (e *UnmappedPhonemeError) Error() string {
	return fmt.Sprintf("no romanization for /%s/", e.Symbol)
}

func (e *UnmappedPhonemeError) Unwrap() error { return ErrUnmappedPhoneme }

// InvalidSyllableStructureError is returned when a sequence cannot be split
// into syllables of the template.
type InvalidSyllableStructureError struct {
	Skeleton  string
	Remaining string
}

func (e *InvalidSyllableStructureError) Error() string {
	if e.Remaining != "" && e.Remaining != e.Skeleton {
		return fmt.Sprintf("%s could not be broken into syllables (stuck at %s)", e.Skeleton, e.Remaining)
	}
	return fmt.Sprintf("%s could not be broken into syllables", e.Skeleton)
}

func (e *InvalidSyllableStructureError) Unwrap() error { return ErrInvalidSyllableStructure }

// UnknownCapabilityKeyError is returned when a filter key cannot be completed.
type UnknownCapabilityKeyError struct {
	Key string
}

func (e *UnknownCapabilityKeyError) Error() string {
	return fmt.Sprintf("unknown key %q", e.Key)
}

func (e *UnknownCapabilityKeyError) Unwrap() error { return ErrUnknownCapabilityKey }

// MalformedRuleActionError reports a rule action that cannot be compiled
// or that does not fit the phonemes it was applied to.
type MalformedRuleActionError struct {
	Action string
	Reason string
	Err    error
}

func (e *MalformedRuleActionError) Error() string {
	msg := fmt.Sprintf("malformed action %q: %s", e.Action, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRuleActionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedRuleAction, e.Err}
	}
	return []error{ErrMalformedRuleAction}
}

// RuleError locates a rule loading failure.
type RuleError struct {
	Line int
	Text string
	Err  error
}

func (e *RuleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("rule at line %d (%q): %v", e.Line, e.Text, e.Err)
	}
	return fmt.Sprintf("rule %q: %v", e.Text, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }
