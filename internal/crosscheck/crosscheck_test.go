package crosscheck

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilhasse/go-sqlitehdr/format"
	"github.com/wilhasse/go-sqlitehdr/header"
	"github.com/wilhasse/go-sqlitehdr/internal/headertest"
)

func decode(t *testing.T, path string) *header.DatabaseHeader {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	l, _ := logtest.NewNullLogger()
	h, _, err := header.NewDecoder(header.WithLogger(l)).Parse(b)
	require.NoError(t, err)
	return h
}

func TestCompareMatches(t *testing.T) {
	tests := []struct {
		name  string
		stmts []string
	}{
		{"defaults", []string{"CREATE TABLE t (x)"}},
		{"pragmas", []string{
			"PRAGMA page_size = 2048",
			"PRAGMA user_version = 42",
			"PRAGMA application_id = -1",
			"PRAGMA auto_vacuum = INCREMENTAL",
			"CREATE TABLE t (x)",
		}},
		{"freelist", []string{
			"CREATE TABLE big (b BLOB)",
			"INSERT INTO big SELECT randomblob(2000) FROM (WITH RECURSIVE c(i) AS (SELECT 1 UNION ALL SELECT i + 1 FROM c WHERE i < 50) SELECT i FROM c)",
			"DROP TABLE big",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := headertest.CreateDatabase(t, tt.stmts...)
			h := decode(t, path)

			db, err := OpenReadOnly(path)
			require.NoError(t, err)
			defer db.Close()

			mismatches, err := Compare(context.Background(), db, h)
			require.NoError(t, err)
			assert.Empty(t, mismatches)
		})
	}
}

func TestCompareReportsDifferences(t *testing.T) {
	path := headertest.CreateDatabase(t, "PRAGMA user_version = 3", "CREATE TABLE t (x)")
	h := decode(t, path)

	db, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer db.Close()

	tampered := *h
	tampered.UserVersion = 4
	tampered.TextEncoding = format.UTF16BE

	mismatches, err := Compare(context.Background(), db, &tampered)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Mismatch{
		{Field: "user_version", Header: "4", Engine: "3"},
		{Field: "text_encoding", Header: "UTF-16be", Engine: "UTF-8"},
	}, mismatches)
}

func TestAutoVacuum(t *testing.T) {
	assert.Equal(t, int64(0), autoVacuum(nil))
	assert.Equal(t, int64(1), autoVacuum(format.VacuumSettingFrom(3, 0)))
	assert.Equal(t, int64(2), autoVacuum(format.VacuumSettingFrom(3, 1)))
}

func TestReadOnlyDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/data/app.db", "file:///data/app.db?mode=ro"},
		{"/data/run#1/app.db", "file:///data/run%231/app.db?mode=ro"},
		{"/data/what?/app.db", "file:///data/what%3F/app.db?mode=ro"},
		{"/data/50%/app.db", "file:///data/50%25/app.db?mode=ro"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := readOnlyDSN(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadOnlyDSNRelative(t *testing.T) {
	got, err := readOnlyDSN("app.db")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "file:///"), got)
	assert.True(t, strings.HasSuffix(got, "/app.db?mode=ro"), got)
}

func TestCompareEscapedPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run#1")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "x.db")
	headertest.CreateDatabaseAt(t, path, "CREATE TABLE t (x)")
	h := decode(t, path)

	db, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer db.Close()

	mismatches, err := Compare(context.Background(), db, h)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestCompareSkipsCountersInWAL(t *testing.T) {
	path := headertest.CreateDatabase(t, "CREATE TABLE t (x)")
	h := decode(t, path)

	db, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer db.Close()

	stale := *h
	stale.WriteVersion, stale.ReadVersion = format.WriteAheadLog, format.WriteAheadLog
	stale.SchemaCookie += 5
	stale.FreePageList = format.FreePageListFrom(2, 9)
	size := *h.DatabaseSize + 3
	stale.DatabaseSize = &size

	mismatches, err := Compare(context.Background(), db, &stale)
	require.NoError(t, err)
	assert.Empty(t, mismatches)

	// the same counters are still checked outside WAL mode
	stale.WriteVersion, stale.ReadVersion = format.Legacy, format.Legacy
	mismatches, err = Compare(context.Background(), db, &stale)
	require.NoError(t, err)
	var fields []string
	for _, m := range mismatches {
		fields = append(fields, m.Field)
	}
	assert.ElementsMatch(t, WALSkipped, fields)
}

func TestCompareLiveWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.db")
	writer, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	writer.SetMaxOpenConns(1)
	defer writer.Close()
	for _, s := range []string{
		"CREATE TABLE t (x)",
		"PRAGMA journal_mode = WAL",
		"CREATE TABLE u (y)",
		"INSERT INTO u VALUES (1)",
	} {
		_, err := writer.Exec(s)
		require.NoError(t, err, s)
	}

	h := decode(t, path)
	require.True(t, h.WAL())

	db, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer db.Close()

	mismatches, err := Compare(context.Background(), db, h)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}
