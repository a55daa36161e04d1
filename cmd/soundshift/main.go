// Command soundshift derives and renders the words of a constructed
// language from its language directory (romanization.txt, attributes.txt,
// rules.txt, proto_dictionary.txt).
//
//	soundshift --lang lang1 list
//	soundshift --lang lang1 derive root+plural
//	soundshift --lang lang1 derive --text --trace tato
//	soundshift --lang lang1 ipa tato
//	soundshift --lang lang1 lookup "tato kiru"
//	soundshift --lang lang1 rules
//	soundshift --lang lang1 export --db lexicon.db
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/cours-de-latin/soundshift"
	"github.com/cours-de-latin/soundshift/internal/logging"
	"github.com/cours-de-latin/soundshift/lexdb"
)

// Globals are the flags shared by every command.
type Globals struct {
	Lang     string `name:"lang" short:"l" help:"Language directory" type:"existingdir" default:"." env:"SOUNDSHIFT_LANG"`
	LogLevel string `name:"log-level" help:"Logging level (${enum})" enum:"debug,info,warning,warn,error" default:"warn" env:"SOUNDSHIFT_LOG_LEVEL"`
	LogPath  string `name:"log-path" help:"Log file, stderr when empty" type:"path"`

	out io.Writer
}

// load reads the language directory.
func (g *Globals) load(opts ...soundshift.Option) (*soundshift.Language, error) {
	lang, err := soundshift.Load(g.Lang, opts...)
	if err != nil {
		return nil, fmt.Errorf("load language %s: %w", g.Lang, err)
	}
	return lang, nil
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	List   ListCmd   `cmd:"" help:"List the dictionary with raw and derived forms"`
	Derive DeriveCmd `cmd:"" help:"Derive words given as morpheme tags (tag+tag)"`
	IPA    IPACmd    `cmd:"" name:"ipa" help:"Transcribe romanized text to IPA without derivation"`
	Lookup LookupCmd `cmd:"" help:"Look up derived romanized words in the dictionary"`
	Rules  RulesCmd  `cmd:"" help:"Print the sound-change rules in application order"`
	Export ExportCmd `cmd:"" help:"Export the derived lexicon to SQLite"`
}

// ListCmd prints every dictionary word.
type ListCmd struct{}

func (c *ListCmd) Run(g *Globals) error {
	lang, err := g.load()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(g.out, 0, 4, 2, ' ', 0)
	for _, e := range lang.Dictionary.Listing() {
		if e.Err != nil {
			fmt.Fprintf(tw, "FAIL: %s\t%v\n", e.Spelling, e.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.RawRoman, e.Roman, e.IPA, strings.Join(e.Definitions, ", "))
	}
	return tw.Flush()
}

// DeriveCmd derives words and prints their IPA and romanization.
type DeriveCmd struct {
	Words []string `arg:"" help:"Words as morpheme tags joined with '+', or romanized stems with --text"`
	Text  bool     `help:"Treat arguments as romanized stems instead of morpheme tags"`
	Trace bool     `help:"Print the form after every rule that changed it"`
}

func (c *DeriveCmd) Run(g *Globals) error {
	opts := []soundshift.Option{}
	if c.Text {
		opts = append(opts, soundshift.WithoutDictionary())
	}
	lang, err := g.load(opts...)
	if err != nil {
		return err
	}

	for _, arg := range c.Words {
		var d *soundshift.Derivation
		if c.Text {
			d, err = lang.TraceText(arg)
		} else {
			var w *soundshift.Word
			if w, err = lang.Word(strings.Split(arg, "+"), nil); err == nil {
				d, err = lang.DeriveTrace(w)
			}
		}
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		if err := c.print(g.out, lang, arg, d); err != nil {
			return err
		}
	}
	return nil
}

func (c *DeriveCmd) print(w io.Writer, lang *soundshift.Language, arg string, d *soundshift.Derivation) error {
	ipa, err := lang.IPA(d.Surface)
	if err != nil {
		return fmt.Errorf("%s: %w", arg, err)
	}
	roman, err := lang.Romanize(d.Surface)
	if err != nil {
		return fmt.Errorf("%s: %w", arg, err)
	}
	fmt.Fprintf(w, "%s\t/%s/\t%s\n", arg, ipa, roman)
	if !c.Trace {
		return nil
	}

	raw, err := lang.IPA(d.Stressed)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  %-40s /%s/\n", "(stressed)", raw)
	for _, step := range d.Changed() {
		s, err := lang.IPA(step.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %-40s /%s/\n", step.Rule.Pattern, s)
	}
	return nil
}

// IPACmd transcribes romanized text, or romanizes IPA with --reverse.
type IPACmd struct {
	Text    []string `arg:"" help:"Romanized text (IPA with --reverse)"`
	Reverse bool     `short:"r" help:"Read IPA and print the romanization"`
}

func (c *IPACmd) Run(g *Globals) error {
	lang, err := g.load(soundshift.WithoutDictionary())
	if err != nil {
		return err
	}
	out := make([]string, 0, len(c.Text))
	for _, text := range c.Text {
		var s string
		if c.Reverse {
			seq, err := lang.Chart.Parse(text)
			if err != nil {
				return err
			}
			s, err = lang.Romanize(seq)
			if err != nil {
				return err
			}
		} else {
			seq, err := lang.Romanization.Decode(text)
			if err != nil {
				return err
			}
			s, err = lang.IPA(seq)
			if err != nil {
				return err
			}
		}
		out = append(out, s)
	}
	_, err = fmt.Fprintln(g.out, strings.Join(out, " "))
	return err
}

// LookupCmd finds the dictionary words of a romanized text.
type LookupCmd struct {
	Text []string `arg:"" help:"Derived romanized text"`
}

func (c *LookupCmd) Run(g *Globals) error {
	lang, err := g.load()
	if err != nil {
		return err
	}
	for _, res := range lang.Dictionary.LookupText(strings.Join(c.Text, " ")) {
		if res.Err != nil {
			fmt.Fprintf(g.out, "%s\t?\t%v\n", res.Token, res.Err)
			continue
		}
		fmt.Fprintf(g.out, "%s\t%s\t%s\n", res.Token, res.Word.Spelling(), strings.Join(res.Word.Definitions, ", "))
	}
	return nil
}

// RulesCmd prints the loaded rules.
type RulesCmd struct{}

func (c *RulesCmd) Run(g *Globals) error {
	lang, err := g.load(soundshift.WithoutDictionary())
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "syllable: %s\n", lang.Template.Shape())
	for i, r := range lang.Rules.Rules() {
		fmt.Fprintf(g.out, "%3d  %s\n", i+1, r)
	}
	return nil
}

// ExportCmd writes the derived lexicon to a SQLite database.
type ExportCmd struct {
	DB string `name:"db" help:"SQLite database file" type:"path" default:"lexicon.db"`
}

func (c *ExportCmd) Run(g *Globals) error {
	lang, err := g.load()
	if err != nil {
		return err
	}
	ctx := context.Background()
	db, err := lexdb.Open(ctx, c.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	n, err := lexdb.Export(ctx, db, lang)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "exported %d words to %s\n", n, c.DB)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("soundshift"),
		kong.Description("Derive constructed-language words through sound-change rules"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	if err := logging.Setup(cli.LogPath, cli.LogLevel); err != nil {
		ctx.FatalIfErrorf(err)
	}
	cli.out = os.Stdout
	log.Debug().Str("lang", cli.Lang).Str("command", ctx.Command()).Msg("starting")

	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
