package soundshift

import (
	"fmt"
	"strings"
)

// Kind tells vowels and consonants apart.
type Kind uint8

const (
	Vowel Kind = iota
	Consonant
)

func (k Kind) String() string {
	if k == Vowel {
		return "vowel"
	}
	return "consonant"
}

// Phoneme is a single speech sound described by its articulatory features.
//
// It is a value type: assigning or appending it copies every field, so two
// positions of a Sequence never share state. Height, Frontness and Rounding
// are meaningful for vowels only; Place, Manner and Voicing for consonants
// only.
type Phoneme struct {
	Kind Kind

	Height    Height
	Frontness Frontness
	Rounding  Rounding

	Place   Place
	Manner  Manner
	Voicing Voicing

	Length Length
	// Stress is suprasegmental: it is assigned per syllable and never takes
	// part in phoneme identity.
	Stress Stress
}

// NewVowel returns a short, unstressed vowel.
func NewVowel(h Height, f Frontness, r Rounding) Phoneme {
	return Phoneme{Kind: Vowel, Height: h, Frontness: f, Rounding: r}
}

// NewConsonant returns a short, unstressed consonant.
func NewConsonant(p Place, m Manner, v Voicing) Phoneme {
	return Phoneme{Kind: Consonant, Place: p, Manner: m, Voicing: v}
}

// IsVowel reports whether p is a vowel.
func (p Phoneme) IsVowel() bool { return p.Kind == Vowel }

// Equal compares the contrastive features of two phonemes. Vowels also
// compare length; stress is ignored for both kinds.
func (p Phoneme) Equal(o Phoneme) bool {
	if p.Kind != o.Kind {
		return false
	}
	if p.Kind == Vowel {
		return p.Height == o.Height &&
			p.Frontness == o.Frontness &&
			p.Rounding == o.Rounding &&
			p.Length == o.Length
	}
	return p.Place == o.Place && p.Manner == o.Manner && p.Voicing == o.Voicing
}

// sameSegment compares identity features and length for both kinds.
// Literal symbol filters use it since the rendered symbol carries length.
func (p Phoneme) sameSegment(o Phoneme) bool {
	return p.Equal(o) && p.Length == o.Length
}

// HasCapability reports whether the phoneme has the named property.
//
// Keys are tried in this order: the current stress or length member name,
// "vowel"/"consonant", any member name of the kind's own features, and for
// consonants the derived classes obstruent, sibilant, sonorant, vibrant,
// lateral and occlusive. Any other key yields false.
func (p Phoneme) HasCapability(key string) bool {
	if key == p.Stress.String() || key == p.Length.String() {
		return true
	}
	switch key {
	case "vowel":
		return p.Kind == Vowel
	case "consonant":
		return p.Kind == Consonant
	}
	if p.Kind == Vowel {
		return key == p.Height.String() || key == p.Frontness.String() || key == p.Rounding.String()
	}
	if key == p.Place.String() || key == p.Manner.String() || key == p.Voicing.String() {
		return true
	}
	return p.consonantClass(key)
}

func (p Phoneme) consonantClass(key string) bool {
	m := p.Manner
	switch key {
	case "obstruent":
		return m == Plosive || m == Fricative || m == Affricate
	case "sibilant":
		return m == Fricative && (p.Place == Alveolar || p.Place == Postalveolar || p.Place == Retroflex)
	case "sonorant":
		return m == Approximant || m == Nasal || m == Tap || m == Trill
	case "vibrant":
		return m == Tap || m == Trill
	case "lateral":
		return m == LateralApproximant || m == LateralFricative
	case "occlusive":
		return m == Plosive || m == Nasal || m == Affricate || m == Implosive || m == Ejective || m == Click
	}
	return false
}

// Feature returns the member name of the feature key, or false when the key
// does not exist on this kind of phoneme.
func (p Phoneme) Feature(key string) (string, bool) {
	if !FeatureAppliesTo(key, p.Kind) {
		return "", false
	}
	switch key {
	case KeyHeight:
		return p.Height.String(), true
	case KeyFrontness:
		return p.Frontness.String(), true
	case KeyRounding:
		return p.Rounding.String(), true
	case KeyPlace:
		return p.Place.String(), true
	case KeyManner:
		return p.Manner.String(), true
	case KeyVoicing:
		return p.Voicing.String(), true
	case KeyLength:
		return p.Length.String(), true
	case KeyStress:
		return p.Stress.String(), true
	}
	return "", false
}

// Features returns every feature of the phoneme keyed by feature name.
func (p Phoneme) Features() map[string]string {
	out := make(map[string]string, 5)
	for key := range featureValues {
		if v, ok := p.Feature(key); ok {
			out[key] = v
		}
	}
	return out
}

// WithFeature returns a copy of p with one feature replaced. The kind of a
// phoneme can never change, so vowel features on consonants (and the
// reverse) are rejected, as are unknown keys and values.
func (p Phoneme) WithFeature(key, value string) (Phoneme, error) {
	if !IsFeatureKey(key) {
		return p, fmt.Errorf("unknown feature %q", key)
	}
	if !FeatureAppliesTo(key, p.Kind) {
		return p, fmt.Errorf("feature %q does not apply to a %s", key, p.Kind)
	}
	i := enumIndex(featureValues[key], value)
	if i < 0 {
		return p, fmt.Errorf("invalid %s value %q", key, value)
	}
	switch key {
	case KeyHeight:
		p.Height = Height(i)
	case KeyFrontness:
		p.Frontness = Frontness(i)
	case KeyRounding:
		p.Rounding = Rounding(i)
	case KeyPlace:
		p.Place = Place(i)
	case KeyManner:
		p.Manner = Manner(i)
	case KeyVoicing:
		p.Voicing = Voicing(i)
	case KeyLength:
		p.Length = Length(i)
	case KeyStress:
		p.Stress = Stress(i)
	}
	return p, nil
}

// GoString lists the features, e.g. "consonant<alveolar plosive unvoiced normal unstressed>".
func (p Phoneme) GoString() string {
	var parts []string
	if p.Kind == Vowel {
		parts = []string{p.Height.String(), p.Frontness.String(), p.Rounding.String()}
	} else {
		parts = []string{p.Place.String(), p.Manner.String(), p.Voicing.String()}
	}
	parts = append(parts, p.Length.String(), p.Stress.String())
	return p.Kind.String() + "<" + strings.Join(parts, " ") + ">"
}

// Sequence is an ordered run of phonemes.
type Sequence []Phoneme

// Concat returns a new sequence holding copies of s followed by o.
func (s Sequence) Concat(o Sequence) Sequence {
	out := make(Sequence, 0, len(s)+len(o))
	out = append(out, s...)
	return append(out, o...)
}

// Slice returns a copy of s[i:j].
func (s Sequence) Slice(i, j int) Sequence {
	return s[i:j].Clone()
}

// Clone returns a copy of s. A nil sequence clones to an empty one.
func (s Sequence) Clone() Sequence {
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equal compares both sequences phoneme by phoneme with Phoneme.Equal.
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Contains reports whether a phoneme equal to p occurs in s.
func (s Sequence) Contains(p Phoneme) bool {
	for _, q := range s {
		if q.Equal(p) {
			return true
		}
	}
	return false
}

// Skeleton returns the consonant/vowel shape of s, one 'c' or 'v' per phoneme.
func (s Sequence) Skeleton() string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, p := range s {
		if p.Kind == Vowel {
			sb.WriteByte('v')
		} else {
			sb.WriteByte('c')
		}
	}
	return sb.String()
}

// StressLevels returns the stress of every phoneme in order.
func (s Sequence) StressLevels() []Stress {
	out := make([]Stress, len(s))
	for i, p := range s {
		out[i] = p.Stress
	}
	return out
}
