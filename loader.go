package soundshift

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// File names of a language directory.
const (
	RomanizationFile = "romanization.txt"
	AttributesFile   = "attributes.txt"
	RulesFile        = "rules.txt"
	DictionaryFile   = "proto_dictionary.txt"
)

// Option configures Load.
type Option func(*loadConfig)

type loadConfig struct {
	chart    *Chart
	skipDict bool
}

// WithChart uses chart instead of the built-in IPA chart.
func WithChart(chart *Chart) Option {
	return func(c *loadConfig) {
		c.chart = chart
	}
}

// WithoutDictionary skips the dictionary file; the language then has no
// dictionary.
func WithoutDictionary() Option {
	return func(c *loadConfig) {
		c.skipDict = true
	}
}

// Load reads a language from dir. The dictionary file is optional: when it
// is missing the language starts with an empty dictionary.
func Load(dir string, opts ...Option) (*Language, error) {
	cfg := loadConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.chart == nil {
		cfg.chart = NewChart()
	}

	var romanization *Romanization
	err := withFile(dir, RomanizationFile, func(r io.Reader) (err error) {
		romanization, err = LoadRomanization(r, cfg.chart)
		return err
	})
	if err != nil {
		return nil, err
	}

	var template *Template
	err = withFile(dir, AttributesFile, func(r io.Reader) (err error) {
		template, err = LoadAttributes(r)
		return err
	})
	if err != nil {
		return nil, err
	}

	var rules *RuleSet
	err = withFile(dir, RulesFile, func(r io.Reader) (err error) {
		rules, err = LoadRules(r, cfg.chart)
		return err
	})
	if err != nil {
		return nil, err
	}

	lang := NewLanguage(cfg.chart, romanization, template, rules)
	if cfg.skipDict {
		lang.Dictionary = nil
		log.Debug().Str("dir", dir).Msg("language loaded without dictionary")
		return lang, nil
	}

	err = withFile(dir, DictionaryFile, func(r io.Reader) error {
		return LoadDictionary(r, lang)
	})
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("dir", dir).Msg("no dictionary file")
		err = nil
	}
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("dir", dir).
		Int("rules", rules.Len()).
		Int("words", lang.Dictionary.Len()).
		Msg("language loaded")
	return lang, nil
}

// withFile opens dir/name and hands it to fn, prefixing errors with the
// file name.
func withFile(dir, name string, fn func(io.Reader) error) error {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	if err := fn(f); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	return nil
}

// scanLines calls fn with the 1-based number and the trimmed text of every
// line that is neither blank nor a '#' comment.
func scanLines(r io.Reader, fn func(lineNum int, line string) error) error {
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNum, line); err != nil {
			return err
		}
	}
	return sc.Err()
}

// LoadRomanization reads a romanization table: one entry per line, the
// first whitespace-separated column is the roman letter, the last one the
// IPA symbol.
func LoadRomanization(r io.Reader, chart *Chart) (*Romanization, error) {
	var entries []RomanEntry
	err := scanLines(r, func(lineNum int, line string) error {
		cells := strings.Fields(line)
		if len(cells) < 2 {
			return fmt.Errorf("line %d: expected a roman letter and a symbol, got %q", lineNum, line)
		}
		entries = append(entries, RomanEntry{Roman: cells[0], Symbol: cells[len(cells)-1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	rom, err := NewRomanization(chart, entries)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("entries", len(entries)).Msg("romanization loaded")
	return rom, nil
}

// LoadAttributes reads the "key: value" attributes of a language and
// returns its syllable template. Recognised keys are syllable (required),
// primary_stress and secondary_stress; other keys are ignored.
func LoadAttributes(r io.Reader) (*Template, error) {
	var shape string
	var primary, secondary StressRule
	err := scanLines(r, func(lineNum int, line string) error {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return fmt.Errorf("line %d: expected key: value, got %q", lineNum, line)
		}
		k = strings.ToLower(strings.TrimSpace(k))
		v = strings.TrimSpace(v)

		switch k {
		case "syllable":
			shape = v
		case "primary_stress", "secondary_stress":
			rule, err := ParseStressRule(v)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
			if k == "primary_stress" {
				primary = rule
			} else {
				secondary = rule
			}
		default:
			log.Debug().Str("key", k).Int("line", lineNum).Msg("ignoring attribute")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if shape == "" {
		return nil, errors.New("missing syllable attribute")
	}
	return ParseTemplate(shape, primary, secondary)
}

// LoadRules reads one rule per line; rules apply in file order.
func LoadRules(r io.Reader, chart *Chart) (*RuleSet, error) {
	var rules []*Rule
	err := scanLines(r, func(lineNum int, line string) error {
		rule, err := ParseRule(line, chart)
		if err != nil {
			return &RuleError{Line: lineNum, Text: line, Err: err}
		}
		rules = append(rules, rule)
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Int("rules", len(rules)).Msg("rules loaded")
	return NewRuleSet(rules...), nil
}

// LoadDictionary reads dictionary lines into lang's dictionary. Columns are
// separated by a tab or two spaces:
//
//	text	tag	definitions      a morpheme ("ka-" is a prefix)
//	tag+tag	definitions          a word built from known morphemes
//
// Definitions are comma-separated. Morphemes must be declared before the
// words using them.
func LoadDictionary(r io.Reader, lang *Language) error {
	dict := lang.Dictionary
	if dict == nil {
		dict = NewDictionary(lang)
		lang.Dictionary = dict
	}
	return scanLines(r, func(lineNum int, line string) error {
		cells := splitCells(line)
		definitions := splitDefinitions(cells[len(cells)-1])

		switch len(cells) {
		case 2:
			w, err := dict.NewWord(strings.Split(cells[0], "+"), definitions)
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
			if err := dict.AddWord(w); err != nil {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
		case 3:
			if _, err := dict.AddMorpheme(cells[1], cells[0], definitions); err != nil {
				return fmt.Errorf("line %d: %w", lineNum, err)
			}
		default:
			return fmt.Errorf("line %d: expected 2 or 3 columns, got %d", lineNum, len(cells))
		}
		return nil
	})
}

// splitCells splits a dictionary line on tabs and runs of two or more
// spaces.
func splitCells(line string) []string {
	var cells []string
	for _, c := range strings.Split(strings.ReplaceAll(line, "  ", "\t"), "\t") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

func splitDefinitions(s string) []string {
	parts := strings.Split(s, ",")
	defs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			defs = append(defs, p)
		}
	}
	return defs
}
