// Package lexdb exports the derived lexicon of a language to a SQLite
// database, using the pure Go modernc.org/sqlite driver.
package lexdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/cours-de-latin/soundshift"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const schema = `
	CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY,
		raw_roman TEXT NOT NULL,
		roman TEXT NOT NULL,
		ipa TEXT NOT NULL,
		definitions TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS morphemes (
		word_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		tag TEXT NOT NULL,
		PRIMARY KEY (word_id, position),
		FOREIGN KEY (word_id) REFERENCES words(id)
	);
	CREATE INDEX IF NOT EXISTS idx_words_roman ON words(roman);
`

// Row is one exported word.
type Row struct {
	ID          int64
	RawRoman    string
	Roman       string
	IPA         string
	Definitions []string
	Tags        []string
}

// Open opens (creating if needed) the database at path and makes sure the
// schema exists.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// Export replaces the content of db with the dictionary of lang, in
// dictionary order. Words that fail to render are skipped and logged. It
// returns the number of rows written.
func Export(ctx context.Context, db *sql.DB, lang *soundshift.Language) (int, error) {
	if lang.Dictionary == nil {
		return 0, fmt.Errorf("language has no dictionary")
	}
	listing := lang.Dictionary.Listing()
	words := lang.Dictionary.Entries()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"morphemes", "words"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return 0, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	written := 0
	for i, entry := range listing {
		if entry.Err != nil {
			continue
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO words (raw_roman, roman, ipa, definitions) VALUES (?, ?, ?, ?)",
			entry.RawRoman, entry.Roman, entry.IPA, strings.Join(entry.Definitions, ", "))
		if err != nil {
			return written, fmt.Errorf("insert %s: %w", entry.Spelling, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return written, fmt.Errorf("insert %s: %w", entry.Spelling, err)
		}
		for pos, tag := range words[i].Tags() {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO morphemes (word_id, position, tag) VALUES (?, ?, ?)",
				id, pos, tag); err != nil {
				return written, fmt.Errorf("insert %s: %w", entry.Spelling, err)
			}
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	log.Info().Int("words", written).Int("skipped", len(listing)-written).Msg("lexicon exported")
	return written, nil
}

// Words reads the exported rows back in insertion order.
func Words(ctx context.Context, db *sql.DB) ([]Row, error) {
	return query(ctx, db, "SELECT id, raw_roman, roman, ipa, definitions FROM words ORDER BY id")
}

// FindRoman returns the rows whose derived romanization is roman.
func FindRoman(ctx context.Context, db *sql.DB, roman string) ([]Row, error) {
	return query(ctx, db, "SELECT id, raw_roman, roman, ipa, definitions FROM words WHERE roman = ? ORDER BY id", roman)
}

func query(ctx context.Context, db *sql.DB, q string, args ...any) ([]Row, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var defs string
		if err := rows.Scan(&r.ID, &r.RawRoman, &r.Roman, &r.IPA, &defs); err != nil {
			return nil, err
		}
		if defs != "" {
			r.Definitions = strings.Split(defs, ", ")
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if out[i].Tags, err = tagsOf(ctx, db, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func tagsOf(ctx context.Context, db *sql.DB, id int64) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT tag FROM morphemes WHERE word_id = ? ORDER BY position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
