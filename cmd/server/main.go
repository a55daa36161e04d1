// Command server exposes a soundshift language as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/derive?word=<tag+tag>[&trace=true]
//	GET  /api/derive?text=<romanized stem>[&trace=true]
//	GET  /api/ipa?text=<romanized text>
//	GET  /api/lookup?text=<derived romanized text>
//	GET  /api/words
//	POST /api/words   body: {"tags":["root","plural"],"definitions":["..."]}
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/cours-de-latin/soundshift"
	"github.com/cours-de-latin/soundshift/internal/logging"
)

// ---- JSON response types ------------------------------------------------

type phonemeJSON struct {
	Symbol   string            `json:"symbol"`
	Kind     string            `json:"kind"`
	Features map[string]string `json:"features"`
}

type stepJSON struct {
	Rule   string `json:"rule"`
	Result string `json:"result"`
}

type deriveResponse struct {
	Word     string        `json:"word"`
	IPA      string        `json:"ipa"`
	Roman    string        `json:"roman"`
	RawIPA   string        `json:"raw_ipa"`
	Phonemes []phonemeJSON `json:"phonemes"`
	Steps    []stepJSON    `json:"steps,omitempty"`
}

type ipaResponse struct {
	Text string `json:"text"`
	IPA  string `json:"ipa"`
}

type wordJSON struct {
	Spelling    string   `json:"spelling"`
	RawRoman    string   `json:"raw_roman"`
	Roman       string   `json:"roman"`
	IPA         string   `json:"ipa"`
	Definitions []string `json:"definitions"`
	Error       string   `json:"error,omitempty"`
}

type lookupResultJSON struct {
	Token string    `json:"token"`
	Word  *wordJSON `json:"word"`
	Error string    `json:"error,omitempty"`
}

type lookupResponse struct {
	Results []lookupResultJSON `json:"results"`
}

type wordsResponse struct {
	Words []wordJSON `json:"words"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

// service guards the language: derivations read it, POST /api/words
// inserts into its dictionary.
type service struct {
	mu   sync.RWMutex
	lang *soundshift.Language
}

func toWordJSON(e soundshift.ListingEntry) wordJSON {
	w := wordJSON{
		Spelling:    e.Spelling,
		RawRoman:    e.RawRoman,
		Roman:       e.Roman,
		IPA:         e.IPA,
		Definitions: e.Definitions,
	}
	if w.Definitions == nil {
		w.Definitions = []string{}
	}
	if e.Err != nil {
		w.Error = e.Err.Error()
	}
	return w
}

func toPhonemesJSON(lang *soundshift.Language, seq soundshift.Sequence) ([]phonemeJSON, error) {
	out := make([]phonemeJSON, 0, len(seq))
	for _, p := range seq {
		sym, err := lang.Chart.Symbol(p)
		if err != nil {
			return nil, err
		}
		out = append(out, phonemeJSON{Symbol: sym, Kind: p.Kind.String(), Features: p.Features()})
	}
	return out, nil
}

// statusOf maps engine errors to HTTP statuses: bad input is the
// client's fault, anything else means a broken language definition.
func statusOf(err error) int {
	switch {
	case errors.Is(err, soundshift.ErrWordNotFound):
		return http.StatusNotFound
	case errors.Is(err, soundshift.ErrUnknownMorpheme),
		errors.Is(err, soundshift.ErrUnmappedCharacter),
		errors.Is(err, soundshift.ErrUnknownSymbol),
		errors.Is(err, soundshift.ErrInvalidSyllableStructure):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// ---- handlers -----------------------------------------------------------

func handleDerive(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		q := r.URL.Query()
		word, text := q.Get("word"), q.Get("text")
		if word == "" && text == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' or 'text' query parameter")
			return
		}
		trace, _ := strconv.ParseBool(q.Get("trace"))

		svc.mu.RLock()
		defer svc.mu.RUnlock()
		lang := svc.lang

		var d *soundshift.Derivation
		var err error
		label := word
		if word != "" {
			var wd *soundshift.Word
			if wd, err = lang.Word(strings.Split(word, "+"), nil); err == nil {
				d, err = lang.DeriveTrace(wd)
			}
		} else {
			label = text
			d, err = lang.TraceText(text)
		}
		if err != nil {
			writeError(w, statusOf(err), err.Error())
			return
		}

		resp, err := buildDeriveResponse(lang, label, d, trace)
		if err != nil {
			writeError(w, statusOf(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func buildDeriveResponse(lang *soundshift.Language, label string, d *soundshift.Derivation, trace bool) (*deriveResponse, error) {
	resp := &deriveResponse{Word: label}
	var err error
	if resp.IPA, err = lang.IPA(d.Surface); err != nil {
		return nil, err
	}
	if resp.Roman, err = lang.Romanize(d.Surface); err != nil {
		return nil, err
	}
	if resp.RawIPA, err = lang.IPA(d.Raw); err != nil {
		return nil, err
	}
	if resp.Phonemes, err = toPhonemesJSON(lang, d.Surface); err != nil {
		return nil, err
	}
	if !trace {
		return resp, nil
	}
	for _, step := range d.Changed() {
		s, err := lang.IPA(step.Result)
		if err != nil {
			return nil, err
		}
		resp.Steps = append(resp.Steps, stepJSON{Rule: step.Rule.String(), Result: s})
	}
	return resp, nil
}

func handleIPA(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		text := r.URL.Query().Get("text")
		if text == "" {
			writeError(w, http.StatusBadRequest, "missing 'text' query parameter")
			return
		}
		svc.mu.RLock()
		defer svc.mu.RUnlock()

		seq, err := svc.lang.Romanization.Decode(text)
		if err != nil {
			writeError(w, statusOf(err), err.Error())
			return
		}
		ipa, err := svc.lang.IPA(seq)
		if err != nil {
			writeError(w, statusOf(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, ipaResponse{Text: text, IPA: ipa})
	}
}

func handleLookup(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "GET required")
			return
		}
		text := r.URL.Query().Get("text")
		if text == "" {
			writeError(w, http.StatusBadRequest, "missing 'text' query parameter")
			return
		}
		svc.mu.RLock()
		defer svc.mu.RUnlock()

		results := svc.lang.Dictionary.LookupText(text)
		out := make([]lookupResultJSON, 0, len(results))
		found := 0
		for _, res := range results {
			item := lookupResultJSON{Token: res.Token}
			if res.Err != nil {
				item.Error = res.Err.Error()
			} else {
				found++
				item.Word = &wordJSON{
					Spelling:    res.Word.Spelling(),
					Definitions: res.Word.Definitions,
				}
			}
			out = append(out, item)
		}
		status := http.StatusOK
		if found == 0 {
			status = http.StatusNotFound
		}
		writeJSON(w, status, lookupResponse{Results: out})
	}
}

func handleWords(svc *service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			svc.mu.RLock()
			defer svc.mu.RUnlock()
			listing := svc.lang.Dictionary.Listing()
			out := make([]wordJSON, 0, len(listing))
			for _, e := range listing {
				out = append(out, toWordJSON(e))
			}
			writeJSON(w, http.StatusOK, wordsResponse{Words: out})

		case http.MethodPost:
			var body struct {
				Tags        []string `json:"tags"`
				Definitions []string `json:"definitions"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.Tags) == 0 {
				writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'tags' field")
				return
			}
			svc.mu.Lock()
			defer svc.mu.Unlock()
			word, err := svc.lang.Dictionary.NewWord(body.Tags, body.Definitions)
			if err == nil {
				err = svc.lang.Dictionary.AddWord(word)
			}
			if err != nil {
				writeError(w, statusOf(err), err.Error())
				return
			}
			log.Info().Str("word", word.Spelling()).Msg("word added")
			writeJSON(w, http.StatusCreated, wordJSON{
				Spelling:    word.Spelling(),
				Definitions: body.Definitions,
			})

		default:
			writeError(w, http.StatusMethodNotAllowed, "GET or POST required")
		}
	}
}

// newHandler routes the API and wraps it in a permissive CORS policy.
func newHandler(svc *service) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/derive", handleDerive(svc))
	mux.HandleFunc("/api/ipa", handleIPA(svc))
	mux.HandleFunc("/api/lookup", handleLookup(svc))
	mux.HandleFunc("/api/words", handleWords(svc))
	return cors.Default().Handler(mux)
}

// ---- main ---------------------------------------------------------------

var cli struct {
	Lang     string `name:"lang" short:"l" help:"Language directory" type:"existingdir" default:"." env:"SOUNDSHIFT_LANG"`
	Addr     string `name:"addr" help:"Listen address" default:":8080"`
	LogLevel string `name:"log-level" help:"Logging level" enum:"debug,info,warning,warn,error" default:"info" env:"SOUNDSHIFT_LOG_LEVEL"`
	LogPath  string `name:"log-path" help:"Log file, stderr when empty" type:"path"`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("server"),
		kong.Description("Serve a soundshift language over HTTP"),
	)
	if err := logging.Setup(cli.LogPath, cli.LogLevel); err != nil {
		ctx.FatalIfErrorf(err)
	}

	log.Info().Str("lang", cli.Lang).Msg("loading language")
	lang, err := soundshift.Load(cli.Lang)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load language")
	}
	log.Info().
		Int("rules", lang.Rules.Len()).
		Int("words", lang.Dictionary.Len()).
		Msg("language loaded")

	svc := &service{lang: lang}
	log.Info().Msgf("listening on %s", cli.Addr)
	if err := http.ListenAndServe(cli.Addr, newHandler(svc)); err != nil {
		log.Fatal().Err(fmt.Errorf("server error: %w", err)).Send()
	}
}
