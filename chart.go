package soundshift

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"
)

//go:embed chart/vowels.tsv
var defaultVowelChart string

//go:embed chart/consonants.tsv
var defaultConsonantChart string

const (
	numHeights = int(Open) + 1
	numFronts  = int(Back) + 1
	numPlaces  = int(Glottal) + 1
	numManners = int(Affricate) + 1
)

// emptyCell marks a chart cell without a symbol.
const emptyCell = "-"

// Chart is the two-way table between articulatory features and IPA
// symbols. It is immutable once built and safe for concurrent use.
type Chart struct {
	vowels     [numHeights][numFronts][2]string
	consonants [numManners][numPlaces][2]string
	// phonemes maps a normalised base symbol to its phoneme.
	phonemes map[string]Phoneme
	// maxRunes is the length of the longest base symbol.
	maxRunes int
}

// NewChart builds the chart from the built-in IPA tables.
func NewChart() *Chart {
	c, err := ParseChart(strings.NewReader(defaultVowelChart), strings.NewReader(defaultConsonantChart))
	if err != nil {
		panic(fmt.Sprintf("built-in IPA chart: %v", err))
	}
	return c
}

// ParseChart reads a vowel and a consonant table.
//
// Both are tab-separated with one header row. Vowel rows start with a
// height name followed by six cells: front unrounded, front rounded,
// central unrounded, central rounded, back unrounded, back rounded.
// Consonant rows start with a manner name followed by two cells (unvoiced,
// voiced) per place of articulation, bilabial first. "-" marks an empty
// cell.
func ParseChart(vowels, consonants io.Reader) (*Chart, error) {
	c := &Chart{phonemes: make(map[string]Phoneme)}
	err := readChartRows(vowels, heightNames, numFronts*2, func(row int, cells []string) error {
		for x, cell := range cells {
			p := NewVowel(Height(row), Frontness(x/2), Rounding(x%2))
			sym, err := c.register(cell, p)
			if err != nil {
				return err
			}
			c.vowels[row][x/2][x%2] = sym
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vowel chart: %w", err)
	}
	err = readChartRows(consonants, mannerNames, numPlaces*2, func(row int, cells []string) error {
		for x, cell := range cells {
			p := NewConsonant(Place(x/2), Manner(row), Voicing(x%2))
			sym, err := c.register(cell, p)
			if err != nil {
				return err
			}
			c.consonants[row][x/2][x%2] = sym
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("consonant chart: %w", err)
	}
	return c, nil
}

// readChartRows calls fn for every data row of a chart table. Rows are
// matched to their feature value by the name in the first column.
func readChartRows(r io.Reader, rowNames []string, width int, fn func(row int, cells []string) error) error {
	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		if lineNum == 1 {
			continue // header
		}
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		row := enumIndex(rowNames, strings.TrimSpace(cols[0]))
		if row < 0 {
			return fmt.Errorf("line %d: unknown row %q", lineNum, cols[0])
		}
		if len(cols)-1 != width {
			return fmt.Errorf("line %d: expected %d cells, got %d", lineNum, width, len(cols)-1)
		}
		if err := fn(row, cols[1:]); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
	}
	return sc.Err()
}

// register adds one cell to the symbol index and returns the normalised
// symbol to store in the grid.
func (c *Chart) register(cell string, p Phoneme) (string, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" || cell == emptyCell {
		return "", nil
	}
	sym := NormalizeSymbol(cell)
	if prev, ok := c.phonemes[sym]; ok {
		return "", fmt.Errorf("symbol %q used for both %#v and %#v", cell, prev, p)
	}
	c.phonemes[sym] = p
	if n := len([]rune(sym)); n > c.maxRunes {
		c.maxRunes = n
	}
	return sym, nil
}

// Symbols returns every base symbol of the chart.
func (c *Chart) Symbols() []string {
	out := make([]string, 0, len(c.phonemes))
	for s := range c.phonemes {
		out = append(out, s)
	}
	return out
}
