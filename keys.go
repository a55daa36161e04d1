package soundshift

import "strings"

// Boundary keys of the pattern language. They are not phoneme capabilities:
// a filter using them checks the position of the phoneme in the sequence.
const (
	KeyStart = "start"
	KeyEnd   = "end"
)

// completionKeys is searched in order when a key is abbreviated, so the
// common classes come first: "v" is "vowel", "c" is "consonant".
var completionKeys = []string{
	"vowel",
	"consonant",
	"front",
	"central",
	"back",
	"close",
	"close_mid",
	"mid",
	"open_mid",
	"open",
	"obstruent",
	"plosive",
	"affricate",
	"fricative",
	"sibilant",
	"sonorant",
	"nasal",
	"approximant",
	"vibrant",
	"tap",
	"trill",
	"occlusive",
	"voiced",
	"unvoiced",
	"velar",
	"unstressed",
	"stressed",
	KeyStart,
	KeyEnd,
	// everything below is only reachable by a longer prefix
	"secondary_stressed",
	"long",
	"normal",
	"near_close",
	"near_open",
	"unrounded",
	"rounded",
	"bilabial",
	"labiodental",
	"dental",
	"alveolar",
	"postalveolar",
	"retroflex",
	"palatal",
	"uvular",
	"pharyngeal",
	"glottal",
	"lateral_fricative",
	"lateral_approximant",
	"lateral",
	"click",
	"implosive",
	"ejective",
}

// CompleteKey expands a possibly abbreviated capability key. An exact key
// always wins; otherwise the first known key starting with prefix is
// returned.
func CompleteKey(prefix string) (string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", &UnknownCapabilityKeyError{Key: prefix}
	}
	for _, k := range completionKeys {
		if k == prefix {
			return k, nil
		}
	}
	for _, k := range completionKeys {
		if strings.HasPrefix(k, prefix) {
			return k, nil
		}
	}
	return "", &UnknownCapabilityKeyError{Key: prefix}
}

// Keys returns all capability and boundary keys CompleteKey knows about.
func Keys() []string {
	out := make([]string, len(completionKeys))
	copy(out, completionKeys)
	return out
}
