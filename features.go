package soundshift

// Height is the vertical tongue position of a vowel, closest first.
type Height uint8

const (
	Close Height = iota
	NearClose
	CloseMid
	Mid
	OpenMid
	NearOpen
	Open
)

var heightNames = []string{"close", "near_close", "close_mid", "mid", "open_mid", "near_open", "open"}

func (h Height) String() string { return enumName(heightNames, int(h)) }

// Frontness is the horizontal tongue position of a vowel.
type Frontness uint8

const (
	Front Frontness = iota
	Central
	Back
)

var frontnessNames = []string{"front", "central", "back"}

func (f Frontness) String() string { return enumName(frontnessNames, int(f)) }

// Rounding tells whether the lips are rounded.
type Rounding uint8

const (
	Unrounded Rounding = iota
	Rounded
)

var roundingNames = []string{"unrounded", "rounded"}

func (r Rounding) String() string { return enumName(roundingNames, int(r)) }

// Place is the place of articulation of a consonant, front of the mouth first.
type Place uint8

const (
	Bilabial Place = iota
	Labiodental
	Dental
	Alveolar
	Postalveolar
	Retroflex
	Palatal
	Velar
	Uvular
	Pharyngeal
	Glottal
)

var placeNames = []string{
	"bilabial", "labiodental", "dental", "alveolar", "postalveolar", "retroflex",
	"palatal", "velar", "uvular", "pharyngeal", "glottal",
}

func (p Place) String() string { return enumName(placeNames, int(p)) }

// Manner is the manner of articulation of a consonant.
// The order follows the rows of the IPA consonant chart, then the
// non-pulmonic and affricate rows.
type Manner uint8

const (
	Plosive Manner = iota
	Nasal
	Trill
	Tap
	Fricative
	LateralFricative
	Approximant
	LateralApproximant
	Click
	Implosive
	Ejective
	Affricate
)

var mannerNames = []string{
	"plosive", "nasal", "trill", "tap", "fricative", "lateral_fricative",
	"approximant", "lateral_approximant", "click", "implosive", "ejective", "affricate",
}

func (m Manner) String() string { return enumName(mannerNames, int(m)) }

// Voicing tells whether the vocal folds vibrate.
type Voicing uint8

const (
	Unvoiced Voicing = iota
	Voiced
)

var voicingNames = []string{"unvoiced", "voiced"}

func (v Voicing) String() string { return enumName(voicingNames, int(v)) }

// Length is the duration of a segment.
type Length uint8

const (
	Normal Length = iota
	Long
)

var lengthNames = []string{"normal", "long"}

func (l Length) String() string { return enumName(lengthNames, int(l)) }

// Stress is the suprasegmental stress level a phoneme carries inside its syllable.
type Stress uint8

const (
	Unstressed Stress = iota
	SecondaryStressed
	Stressed
)

var stressNames = []string{"unstressed", "secondary_stressed", "stressed"}

func (s Stress) String() string { return enumName(stressNames, int(s)) }

// Feature keys understood by Phoneme.Feature and Phoneme.WithFeature.
const (
	KeyHeight    = "height"
	KeyFrontness = "frontness"
	KeyRounding  = "rounding"
	KeyPlace     = "place"
	KeyManner    = "manner"
	KeyVoicing   = "voicing"
	KeyLength    = "length"
	KeyStress    = "stress"
)

// featureValues lists the member names accepted for every feature key.
var featureValues = map[string][]string{
	KeyHeight:    heightNames,
	KeyFrontness: frontnessNames,
	KeyRounding:  roundingNames,
	KeyPlace:     placeNames,
	KeyManner:    mannerNames,
	KeyVoicing:   voicingNames,
	KeyLength:    lengthNames,
	KeyStress:    stressNames,
}

// vowelOnly and consonantOnly are the feature keys bound to a single kind.
var (
	vowelOnly     = map[string]bool{KeyHeight: true, KeyFrontness: true, KeyRounding: true}
	consonantOnly = map[string]bool{KeyPlace: true, KeyManner: true, KeyVoicing: true}
)

// IsFeatureKey reports whether key names a phoneme feature.
func IsFeatureKey(key string) bool {
	_, ok := featureValues[key]
	return ok
}

// FeatureAppliesTo reports whether the feature key exists on phonemes of kind k.
func FeatureAppliesTo(key string, k Kind) bool {
	switch {
	case vowelOnly[key]:
		return k == Vowel
	case consonantOnly[key]:
		return k == Consonant
	default:
		return IsFeatureKey(key)
	}
}

// ValidFeatureValue reports whether value is a member name of the feature key.
func ValidFeatureValue(key, value string) bool {
	return enumIndex(featureValues[key], value) >= 0
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "invalid"
	}
	return names[i]
}

// enumIndex returns the position of name in names, or -1.
func enumIndex(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
