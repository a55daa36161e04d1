package soundshift

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolRoundTrip(t *testing.T) {
	c := NewChart()
	symbols := c.Symbols()
	require.NotEmpty(t, symbols)

	for _, sym := range symbols {
		p, err := c.Phoneme(sym)
		require.NoError(t, err, sym)

		got, err := c.Symbol(p)
		require.NoError(t, err, sym)
		assert.Equal(t, sym, got)

		long := p
		long.Length = Long
		longSym, err := c.Symbol(long)
		require.NoError(t, err, sym)
		assert.Equal(t, sym+"ː", longSym)

		back, err := c.Phoneme(longSym)
		require.NoError(t, err, longSym)
		assert.True(t, back.sameSegment(long), "%s: length must round-trip", longSym)
		assert.Equal(t, Unstressed, back.Stress)
	}
}

func TestPhonemeRoundTripEveryCell(t *testing.T) {
	c := NewChart()
	// every feature combination that renders at all must parse back
	for m := Plosive; m <= Affricate; m++ {
		for pl := Bilabial; pl <= Glottal; pl++ {
			for v := Unvoiced; v <= Voiced; v++ {
				p := NewConsonant(pl, m, v)
				sym, err := c.Symbol(p)
				if err != nil {
					assert.ErrorIs(t, err, ErrUnknownSymbol)
					continue
				}
				back, err := c.Phoneme(sym)
				require.NoError(t, err, sym)
				assert.True(t, back.Equal(p), "%s: got %#v want %#v", sym, back, p)
			}
		}
	}
}

func TestSymbolVoicingDiacritics(t *testing.T) {
	c := NewChart()

	m := NewConsonant(Bilabial, Nasal, Unvoiced)
	sym, err := c.Symbol(m)
	require.NoError(t, err)
	assert.Equal(t, "m\u0325", sym)

	glottal := NewConsonant(Glottal, Plosive, Voiced)
	sym, err = c.Symbol(glottal)
	require.NoError(t, err)
	assert.Equal(t, "ʔ\u032c", sym)

	p, err := c.Phoneme("n\u030a")
	require.NoError(t, err)
	assert.True(t, p.Equal(NewConsonant(Alveolar, Nasal, Unvoiced)))

	_, err = c.Symbol(NewConsonant(Pharyngeal, Nasal, Voiced))
	var symErr *UnknownSymbolError
	require.True(t, errors.As(err, &symErr))
	require.NotNil(t, symErr.Phoneme)
	assert.Equal(t, Pharyngeal, symErr.Phoneme.Place)

	_, err = c.Symbol(NewVowel(Mid, Front, Unrounded))
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestPhonemeNormalisation(t *testing.T) {
	c := NewChart()

	g, err := c.Phoneme("g")
	require.NoError(t, err)
	assert.True(t, g.Equal(NewConsonant(Velar, Plosive, Voiced)))

	ej, err := c.Phoneme("p'")
	require.NoError(t, err)
	assert.Equal(t, Ejective, ej.Manner)

	ts, err := c.Phoneme("t\u035cs")
	require.NoError(t, err)
	assert.Equal(t, Affricate, ts.Manner)

	_, err = c.Phoneme("☃")
	var symErr *UnknownSymbolError
	require.True(t, errors.As(err, &symErr))
	assert.Equal(t, "☃", symErr.Symbol)
}

func TestTranscribeStressMarks(t *testing.T) {
	c := NewChart()
	seq := Sequence{
		withStress(pT, Stressed), withStress(pA, Stressed),
		pT, pA,
		withStress(pN, SecondaryStressed), withStress(pI, SecondaryStressed),
	}
	got, err := c.Transcribe(seq)
	require.NoError(t, err)
	assert.Equal(t, "ˈtaˈtaˌniˌ", got)

	back, err := c.Parse(got)
	require.NoError(t, err)
	assert.True(t, back.Equal(seq))
	assert.Equal(t, seq.StressLevels(), back.StressLevels())
}

func TestTranscribeAdjacentLevels(t *testing.T) {
	c := NewChart()
	seq := Sequence{withStress(pA, Stressed), withStress(pI, SecondaryStressed)}
	got, err := c.Transcribe(seq)
	require.NoError(t, err)
	assert.Equal(t, "ˈaˈˌiˌ", got)

	back, err := c.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, seq.StressLevels(), back.StressLevels())
}

func TestParse(t *testing.T) {
	c := NewChart()

	seq, err := c.Parse("t\u0361ʃaːŋ")
	require.NoError(t, err)
	require.Len(t, seq, 3)
	assert.Equal(t, Affricate, seq[0].Manner)
	assert.Equal(t, Postalveolar, seq[0].Place)
	assert.Equal(t, Long, seq[1].Length)
	assert.Equal(t, Velar, seq[2].Place)

	empty, err := c.Parse("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = c.Parse("ta☃")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestCompare(t *testing.T) {
	c := NewChart()
	ta := Sequence{pT, pA}
	tan := Sequence{pT, pA, pN}
	ti := Sequence{pT, pI}

	tests := []struct {
		a, b Sequence
		want int
	}{
		{ta, ta, 0},
		{ta, tan, -1},
		{tan, ta, 1},
		{ta, ti, -1},
		{Sequence{}, ta, -1},
		{Sequence{withStress(pT, Stressed), pA}, ta, 0},
	}
	for _, tt := range tests {
		got, err := c.Compare(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseChartErrors(t *testing.T) {
	header := "h\ta\tb\tc\td\te\tf\n"
	cons := strings.NewReader(defaultConsonantChart)

	_, err := ParseChart(strings.NewReader(header+"tall\ti\ty\t-\t-\t-\tu\n"), cons)
	assert.ErrorContains(t, err, "line 2")

	_, err = ParseChart(strings.NewReader(header+"close\ti\ty\n"), strings.NewReader(defaultConsonantChart))
	assert.ErrorContains(t, err, "expected 6 cells")

	_, err = ParseChart(strings.NewReader(header+"close\ti\ti\t-\t-\t-\tu\n"), strings.NewReader(defaultConsonantChart))
	assert.ErrorContains(t, err, "used for both")

	c, err := ParseChart(strings.NewReader(header+"close\ti\ty\t-\t-\t-\tu\n"), strings.NewReader(defaultConsonantChart))
	require.NoError(t, err)
	_, err = c.Phoneme("a")
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}
