// Package crosscheck compares a decoded header with the values the SQLite
// engine reports for the same file.
//
// The engine sees committed write-ahead log frames that have not been
// checkpointed yet, so for a WAL database the commit counters in the
// on-disk header may lag. Compare skips those fields (see WALSkipped).
package crosscheck

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/wilhasse/go-sqlitehdr/format"
	"github.com/wilhasse/go-sqlitehdr/header"
)

const driverName = "sqlite"

// WALSkipped lists the fields Compare leaves out for WAL databases.
var WALSkipped = []string{"schema_cookie", "freelist_count", "database_size"}

// Mismatch is one field on which the header and the engine disagree.
type Mismatch struct {
	Field  string `json:"field" yaml:"field"`
	Header string `json:"header" yaml:"header"`
	Engine string `json:"engine" yaml:"engine"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: header=%s engine=%s", m.Field, m.Header, m.Engine)
}

// OpenReadOnly opens path through the pure Go SQLite driver without
// allowing writes.
func OpenReadOnly(path string) (*sql.DB, error) {
	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// readOnlyDSN builds a file: URI for path. The path is made absolute and
// percent-escaped so '#', '?' and '%' stay part of the file name.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrapf(err, "resolve %s", path)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

type intCheck struct {
	field  string
	pragma string
	want   int64
}

// Compare runs the header-backed PRAGMAs against db and returns every
// field that differs from h. The database size is only compared when the
// header marks it valid, and the WALSkipped fields only when h is not in
// WAL mode.
func Compare(ctx context.Context, db *sql.DB, h *header.DatabaseHeader) ([]Mismatch, error) {
	var out []Mismatch
	check := func(field, hv, ev string) {
		if hv != ev {
			out = append(out, Mismatch{Field: field, Header: hv, Engine: ev})
		}
	}

	ints := []intCheck{
		{"page_size", "page_size", int64(h.PageSize)},
		{"user_version", "user_version", int64(h.UserVersion)},
		{"application_id", "application_id", int64(int32(h.ApplicationID))},
		{"auto_vacuum", "auto_vacuum", autoVacuum(h.Vacuum)},
	}
	if !h.WAL() {
		ints = append(ints,
			intCheck{"schema_cookie", "schema_version", int64(h.SchemaCookie)},
			intCheck{"freelist_count", "freelist_count", int64(h.FreePages())},
		)
		if h.DatabaseSizeValid() {
			ints = append(ints, intCheck{"database_size", "page_count", int64(*h.DatabaseSize)})
		}
	}
	for _, c := range ints {
		got, err := pragmaInt(ctx, db, c.pragma)
		if err != nil {
			return nil, err
		}
		check(c.field, strconv.FormatInt(c.want, 10), strconv.FormatInt(got, 10))
	}

	var enc string
	if err := db.QueryRowContext(ctx, "PRAGMA encoding").Scan(&enc); err != nil {
		return nil, errors.Wrap(err, "pragma encoding")
	}
	check("text_encoding", h.TextEncoding.String(), enc)
	return out, nil
}

func pragmaInt(ctx context.Context, db *sql.DB, name string) (int64, error) {
	var v int64
	if err := db.QueryRowContext(ctx, "PRAGMA "+name).Scan(&v); err != nil {
		return 0, errors.Wrapf(err, "pragma %s", name)
	}
	return v, nil
}

// autoVacuum maps the vacuum setting onto PRAGMA auto_vacuum numbering.
func autoVacuum(v *format.VacuumSetting) int64 {
	if v == nil {
		return 0
	}
	if v.Mode == format.VacuumIncremental {
		return 2
	}
	return 1
}
