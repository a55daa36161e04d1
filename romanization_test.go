package soundshift

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRomanization(t *testing.T, c *Chart, pairs ...string) *Romanization {
	t.Helper()
	var entries []RomanEntry
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, RomanEntry{Roman: pairs[i], Symbol: pairs[i+1]})
	}
	r, err := NewRomanization(c, entries)
	require.NoError(t, err)
	return r
}

func TestTatoScenario(t *testing.T) {
	c := NewChart()
	rom := newTestRomanization(t, c, "a", "a", "t", "t", "o", "o")

	seq, err := rom.Decode("tato")
	require.NoError(t, err)
	require.Len(t, seq, 4)
	assert.Equal(t, "cvcv", seq.Skeleton())

	last := func(i, n int) bool { return i == n-1 }
	tmpl, err := NewTemplate(0, 1, 0, 0, StressFunc(last), nil)
	require.NoError(t, err)

	syllables, err := tmpl.Syllabify(seq)
	require.NoError(t, err)
	require.Len(t, syllables, 2)
	assert.True(t, syllables[0].Equal(seq[:2]))
	assert.True(t, syllables[1].Equal(seq[2:]))

	require.NoError(t, tmpl.AssignStress(seq))
	assert.Equal(t, []Stress{Unstressed, Unstressed, Stressed, Stressed}, seq.StressLevels())

	text, err := rom.Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, "ta`to`", text)

	back, err := rom.Decode(text)
	require.NoError(t, err)
	assert.True(t, back.Equal(seq))
	assert.Equal(t, seq.StressLevels(), back.StressLevels())
}

func TestRomanizationLongestMatch(t *testing.T) {
	c := NewChart()
	rom := newTestRomanization(t, c, "s", "s", "h", "h", "sh", "ʃ", "a", "a", "aa", "aː")

	seq, err := rom.Decode("shasaa")
	require.NoError(t, err)
	require.Len(t, seq, 4)
	assert.Equal(t, Postalveolar, seq[0].Place)
	assert.Equal(t, Normal, seq[1].Length)
	assert.Equal(t, Alveolar, seq[2].Place)
	assert.Equal(t, Long, seq[3].Length)

	text, err := rom.Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, "shasaa", text, "a long vowel with its own letter uses it")
}

func TestRomanizationLengthMark(t *testing.T) {
	c := NewChart()
	rom := newTestRomanization(t, c, "k", "k", "i", "i")

	seq, err := rom.Decode("ki:k:")
	require.NoError(t, err)
	require.Len(t, seq, 3)
	assert.Equal(t, Long, seq[1].Length)
	assert.Equal(t, Long, seq[2].Length)

	text, err := rom.Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, "ki:k:", text)

	_, err = rom.Decode(":k")
	assert.ErrorIs(t, err, ErrUnmappedCharacter)
}

func TestRomanizationSecondaryStress(t *testing.T) {
	c := NewChart()
	rom := newTestRomanization(t, c, "k", "k", "i", "i", "a", "a")

	seq, err := rom.Decode("`ka`,ki,")
	require.NoError(t, err)
	assert.Equal(t, []Stress{Stressed, Stressed, SecondaryStressed, SecondaryStressed}, seq.StressLevels())

	text, err := rom.Encode(seq)
	require.NoError(t, err)
	assert.Equal(t, "`ka`,ki,", text)
}

func TestRomanizationErrors(t *testing.T) {
	c := NewChart()
	rom := newTestRomanization(t, c, "t", "t", "a", "a")

	_, err := rom.Decode("tax")
	var charErr *UnmappedCharacterError
	require.True(t, errors.As(err, &charErr))
	assert.Equal(t, "x", charErr.Char)
	assert.Equal(t, "tax", charErr.Text)

	_, err = rom.Encode(Sequence{pT, pI})
	var phErr *UnmappedPhonemeError
	require.True(t, errors.As(err, &phErr))
	assert.Equal(t, "i", phErr.Symbol)
	assert.ErrorIs(t, err, ErrUnmappedPhoneme)

	_, err = NewRomanization(c, []RomanEntry{{Roman: "x", Symbol: "☃"}})
	assert.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestRomanizationDecodeCopies(t *testing.T) {
	c := NewChart()
	rom := newTestRomanization(t, c, "t", "t", "a", "a")

	a, err := rom.Decode("ta")
	require.NoError(t, err)
	a[0].Voicing = Voiced

	b, err := rom.Decode("ta")
	require.NoError(t, err)
	assert.Equal(t, Unvoiced, b[0].Voicing)
	assert.Len(t, rom.Entries(), 2)
}
