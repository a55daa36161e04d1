package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cours-de-latin/soundshift"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	lang, err := soundshift.Load("../../testdata/lang1")
	require.NoError(t, err)
	srv := httptest.NewServer(newHandler(&service{lang: lang}))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestDerive(t *testing.T) {
	srv := newTestServer(t)

	var resp deriveResponse
	status := getJSON(t, srv.URL+"/api/derive?word=dim%2Bhouse&trace=true", &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "dim+house", resp.Word)
	assert.Equal(t, "ˈkoˈdaˌmaˌ", resp.IPA)
	assert.Equal(t, "`ko`da,ma,", resp.Roman)
	assert.Equal(t, "kotama", resp.RawIPA)
	require.Len(t, resp.Phonemes, 6)
	assert.Equal(t, "d", resp.Phonemes[2].Symbol)
	assert.Equal(t, "consonant", resp.Phonemes[2].Kind)
	assert.Equal(t, "voiced", resp.Phonemes[2].Features["voicing"])
	require.Len(t, resp.Steps, 1)
	assert.Equal(t, "ˈkoˈdaˌmaˌ", resp.Steps[0].Result)

	resp = deriveResponse{}
	status = getJSON(t, srv.URL+"/api/derive?text=rag", &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "`rak`", resp.Roman)
	assert.Empty(t, resp.Steps)
}

func TestDeriveErrors(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		query  string
		status int
	}{
		{"", http.StatusBadRequest},
		{"word=moon", http.StatusUnprocessableEntity},
		{"text=xyz", http.StatusUnprocessableEntity},
		{"text=stra", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		var resp errorResponse
		status := getJSON(t, srv.URL+"/api/derive?"+tt.query, &resp)
		assert.Equal(t, tt.status, status, tt.query)
		assert.NotEmpty(t, resp.Error, tt.query)
	}

	resp, err := http.Post(srv.URL+"/api/derive?word=house", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestIPA(t *testing.T) {
	srv := newTestServer(t)
	var resp ipaResponse
	status := getJSON(t, srv.URL+"/api/ipa?text=shanga", &resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ʃaŋa", resp.IPA)

	var errResp errorResponse
	status = getJSON(t, srv.URL+"/api/ipa", &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLookup(t *testing.T) {
	srv := newTestServer(t)

	var resp lookupResponse
	status := getJSON(t, srv.URL+"/api/lookup?text=kodama+moo", &resp)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, resp.Results, 2)
	require.NotNil(t, resp.Results[0].Word)
	assert.Equal(t, "dim+house", resp.Results[0].Word.Spelling)
	assert.Nil(t, resp.Results[1].Word)
	assert.Contains(t, resp.Results[1].Error, "word not found")

	resp = lookupResponse{}
	status = getJSON(t, srv.URL+"/api/lookup?text=kotama", &resp)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestWords(t *testing.T) {
	srv := newTestServer(t)

	var list wordsResponse
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/words", &list))
	require.Len(t, list.Words, 6)
	assert.Equal(t, "water", list.Words[0].Spelling)

	body := `{"tags":["water","pl"],"definitions":["waters"]}`
	resp, err := http.Post(srv.URL+"/api/words", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	var created wordJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "water+pl", created.Spelling)

	list = wordsResponse{}
	require.Equal(t, http.StatusOK, getJSON(t, srv.URL+"/api/words", &list))
	require.Len(t, list.Words, 7)
	assert.Equal(t, "water+pl", list.Words[1].Spelling)
	assert.Equal(t, "`ki`run", list.Words[1].Roman)

	for body, want := range map[string]int{
		`{"tags":[]}`:         http.StatusBadRequest,
		`not json`:            http.StatusBadRequest,
		`{"tags":["nobody"]}`: http.StatusUnprocessableEntity,
	} {
		resp, err := http.Post(srv.URL+"/api/words", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, body)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/words", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusOf(soundshift.ErrWordNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(soundshift.ErrUnknownMorpheme))
	assert.Equal(t, http.StatusInternalServerError, statusOf(soundshift.ErrMalformedRuleAction))
}
