package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLang = "../../testdata/lang1"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("soundshift"))
	require.NoError(t, err)
	ctx, err := parser.Parse(append([]string{"--lang", testLang}, args...))
	require.NoError(t, err)

	var buf bytes.Buffer
	cli.out = &buf
	err = ctx.Run(&cli.Globals)
	return buf.String(), err
}

func TestListCmd(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"kiru", "`ki`ru", "ˈkiˈru", "water"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[3], "house, home")
}

func TestDeriveCmd(t *testing.T) {
	out, err := run(t, "derive", "house+pl", "egg")
	require.NoError(t, err)
	assert.Equal(t, "house+pl\t/ˈtaˈman/\t`ta`man\negg\t/ˈuːˈ/\t`u:`\n", out)

	out, err = run(t, "derive", "--text", "--trace", "rag")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "rag\t/ˈrakˈ/\t`rak`", lines[0])
	assert.Contains(t, lines[1], "(stressed)")
	assert.Contains(t, lines[1], "/ˈraɡˈ/")
	assert.Contains(t, lines[2], "(voiced obstruent end)")

	_, err = run(t, "derive", "moon")
	assert.ErrorContains(t, err, "moon")
}

func TestIPACmd(t *testing.T) {
	out, err := run(t, "ipa", "shanga", "u:")
	require.NoError(t, err)
	assert.Equal(t, "ʃaŋa uː\n", out)

	out, err = run(t, "ipa", "--reverse", "ˈʃaˈŋa")
	require.NoError(t, err)
	assert.Equal(t, "`sha`nga\n", out)

	_, err = run(t, "ipa", "x")
	assert.Error(t, err)
}

func TestLookupCmd(t *testing.T) {
	out, err := run(t, "lookup", "kodama", "moo")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "kodama\tdim+house\tlittle house", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "moo\t?\t"))
}

func TestRulesCmd(t *testing.T) {
	out, err := run(t, "rules")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "syllable: (c)v(c)", lines[0])
	assert.Equal(t, "  1  (vowel)(vowel)\t\tp[1].rem(); p[0][\"length\"] = \"long\"", lines[1])
}

func TestExportCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.db")
	out, err := run(t, "export", "--db", path)
	require.NoError(t, err)
	assert.Equal(t, "exported 6 words to "+path+"\n", out)
}
