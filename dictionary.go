package soundshift

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

// dictEntry is a word with its derived form, the sort key of the
// dictionary.
type dictEntry struct {
	word    *Word
	surface Sequence
}

// Dictionary stores the morphemes of a language and its words, kept sorted
// by derived form in the order of Chart.Compare. It is not safe for
// concurrent mutation.
type Dictionary struct {
	lang      *Language
	morphemes map[string]*Morpheme
	entries   []dictEntry
}

// NewDictionary returns an empty dictionary deriving through lang.
func NewDictionary(lang *Language) *Dictionary {
	return &Dictionary{
		lang:      lang,
		morphemes: make(map[string]*Morpheme),
	}
}

// AddMorpheme registers a morpheme under tag. text is romanized; a hyphen
// separates the prefix from the postfix ("ka-" prefixes, "-ta" suffixes,
// "ka-ta" circumfixes). Text without a hyphen is a free morpheme and is
// also added as a word of its own.
func (d *Dictionary) AddMorpheme(tag, text string, definitions []string) (*Morpheme, error) {
	pre, post := "", text
	hyphen := strings.Contains(text, "-")
	if hyphen {
		pre, post, _ = strings.Cut(text, "-")
	}
	prefix, err := d.lang.Romanization.Decode(pre)
	if err != nil {
		return nil, fmt.Errorf("morpheme %s: %w", tag, err)
	}
	postfix, err := d.lang.Romanization.Decode(post)
	if err != nil {
		return nil, fmt.Errorf("morpheme %s: %w", tag, err)
	}

	m := &Morpheme{Tag: tag, Prefix: prefix, Postfix: postfix, Definitions: definitions}
	d.morphemes[tag] = m
	if !hyphen {
		if err := d.AddWord(&Word{Morphemes: []*Morpheme{m}, Definitions: definitions}); err != nil {
			return m, err
		}
	}
	return m, nil
}

// Morpheme returns the morpheme registered under tag.
func (d *Dictionary) Morpheme(tag string) (*Morpheme, bool) {
	m, ok := d.morphemes[tag]
	return m, ok
}

// Morphemes returns the registered tags in sorted order.
func (d *Dictionary) Morphemes() []string {
	tags := make([]string, 0, len(d.morphemes))
	for tag := range d.morphemes {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// NewWord composes a word from registered morpheme tags, innermost first.
// The word is not added to the dictionary.
func (d *Dictionary) NewWord(tags []string, definitions []string) (*Word, error) {
	w := &Word{Morphemes: make([]*Morpheme, 0, len(tags)), Definitions: definitions}
	for _, tag := range tags {
		m, ok := d.morphemes[strings.TrimSpace(tag)]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownMorpheme, tag)
		}
		w.Morphemes = append(w.Morphemes, m)
	}
	return w, nil
}

// AddWord derives w and inserts it before any word with an equal derived
// form.
func (d *Dictionary) AddWord(w *Word) error {
	surface, err := d.lang.Derive(w)
	if err != nil {
		return err
	}
	i, err := d.search(surface)
	if err != nil {
		return fmt.Errorf("insert %s: %w", w.Spelling(), err)
	}
	d.entries = slices.Insert(d.entries, i, dictEntry{word: w, surface: surface})
	return nil
}

// search returns the index of the first entry not ordered before seq.
func (d *Dictionary) search(seq Sequence) (int, error) {
	lo, hi := 0, len(d.entries)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		c, err := d.lang.Chart.Compare(d.entries[mid].surface, seq)
		if err != nil {
			return 0, err
		}
		if c < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, nil
}

// Lookup finds the word whose derived form is spelled text.
func (d *Dictionary) Lookup(text string) (*Word, error) {
	seq, err := d.lang.Romanization.Decode(text)
	if err != nil {
		return nil, err
	}
	i, err := d.search(seq)
	if err != nil {
		return nil, err
	}
	if i < len(d.entries) && d.entries[i].surface.Equal(seq) {
		return d.entries[i].word, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrWordNotFound, text)
}

// tokenRe matches a romanized token: anything but whitespace and sentence
// punctuation. ',' and ':' belong to the romanization.
var tokenRe = regexp.MustCompile(`[^\s.!?;"()]+`)

// LookupText splits text into tokens and looks up each of them.
func (d *Dictionary) LookupText(text string) []LookupResult {
	tokens := tokenRe.FindAllString(text, -1)
	results := make([]LookupResult, 0, len(tokens))
	for _, token := range tokens {
		w, err := d.Lookup(token)
		results = append(results, LookupResult{Token: token, Word: w, Err: err})
	}
	return results
}

// Len returns the number of words.
func (d *Dictionary) Len() int { return len(d.entries) }

// Entries returns the words in dictionary order.
func (d *Dictionary) Entries() []*Word {
	out := make([]*Word, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.word
	}
	return out
}

// Rebuild derives every word again and restores the order. Words that no
// longer derive are dropped; their errors are joined in the result.
func (d *Dictionary) Rebuild() error {
	old := d.entries
	d.entries = make([]dictEntry, 0, len(old))
	var errs []error
	for _, e := range old {
		if err := d.AddWord(e.word); err != nil {
			log.Warn().Err(err).Str("word", e.word.Spelling()).Msg("dropping word from dictionary")
			errs = append(errs, err)
		}
	}
	log.Debug().Int("words", len(d.entries)).Int("dropped", len(errs)).Msg("dictionary rebuilt")
	return errors.Join(errs...)
}

// Listing renders every word. A word that fails to render is reported in
// its entry and logged; the listing always covers the whole dictionary.
func (d *Dictionary) Listing() []ListingEntry {
	out := make([]ListingEntry, 0, len(d.entries))
	failed := 0
	for _, e := range d.entries {
		entry := d.render(e)
		if entry.Err != nil {
			failed++
			log.Warn().Err(entry.Err).Str("word", entry.Spelling).Msg("cannot render word")
		}
		out = append(out, entry)
	}
	if failed > 0 {
		log.Info().Int("words", len(out)).Int("failed", failed).Msg("listing done with errors")
	}
	return out
}

func (d *Dictionary) render(e dictEntry) ListingEntry {
	entry := ListingEntry{Spelling: e.word.Spelling(), Definitions: e.word.Definitions}
	var err error
	if entry.RawRoman, err = d.lang.Romanize(e.word.RawPhonemes()); err != nil {
		entry.Err = err
		return entry
	}
	if entry.Roman, err = d.lang.Romanize(e.surface); err != nil {
		entry.Err = err
		return entry
	}
	if entry.IPA, err = d.lang.IPA(e.surface); err != nil {
		entry.Err = err
	}
	return entry
}
