package soundshift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStressExpr(t *testing.T) {
	tests := []struct {
		expr         string
		index, count int
		want         bool
	}{
		{"i == 0", 0, 3, true},
		{"i == 0", 1, 3, false},
		{"i == l - 1", 2, 3, true},
		{"index == count - 1", 1, 3, false},
		{"i == n - 2", 1, 3, true},
		{"i % 2 == 0 and i != 0", 2, 5, true},
		{"i % 2 == 0 and i != 0", 0, 5, false},
		{"i % 2 == 0 && i != 0", 4, 5, true},
		{"i == 0 or i == l - 1", 4, 5, true},
		{"i == 0 || i == l - 1", 2, 5, false},
		{"not i", 0, 1, true},
		{"!(i == 0)", 0, 1, false},
		{"0 < i < l - 1", 1, 3, true},
		{"0 < i < l - 1", 2, 3, false},
		{"True", 3, 4, true},
		{"false", 0, 4, false},
		{"i", 0, 2, false},
		{"i", 1, 2, true},
		{"-1 / 2 == -1", 0, 1, true},
		{"-1 % 3 == 2", 0, 1, true},
		{"(i - l) % 3 == 0", 0, 3, true},
		{"2 * i + 1 >= l", 1, 3, true},
		{"l > 2 and i == l - 3", 0, 3, true},
		{"l > 2 and i == l - 3", 0, 2, false},
	}
	for _, tt := range tests {
		e, err := ParseStressRule(tt.expr)
		require.NoError(t, err, tt.expr)
		got, err := e.Applies(tt.index, tt.count)
		require.NoError(t, err, tt.expr)
		assert.Equal(t, tt.want, got, "%s with i=%d l=%d", tt.expr, tt.index, tt.count)
	}
}

func TestStressExprErrors(t *testing.T) {
	_, err := ParseStressRule("i == syllables")
	assert.ErrorContains(t, err, `unknown name "syllables"`)

	_, err = ParseStressRule("not (x > 1)")
	assert.ErrorContains(t, err, `unknown name "x"`)

	_, err = ParseStressRule("i ==")
	assert.Error(t, err)

	_, err = ParseStressRule("__import__('os')")
	assert.Error(t, err)

	e, err := ParseStressRule("l / i == 1")
	require.NoError(t, err)
	_, err = e.Applies(0, 2)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	ok, err := e.Applies(2, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	// short circuit keeps the division from running
	e, err = ParseStressRule("i == 0 or l % i == 0")
	require.NoError(t, err)
	ok, err = e.Applies(0, 3)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStressExprString(t *testing.T) {
	e, err := ParseStressRule("  i == 0 ")
	require.NoError(t, err)
	assert.Equal(t, "i == 0", e.String())
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(7, 3))
	assert.Equal(t, -3, floorDiv(-7, 3))
	assert.Equal(t, -3, floorDiv(7, -3))
	assert.Equal(t, 2, floorDiv(-7, -3))
	assert.Equal(t, -2, floorDiv(-6, 3))
}
