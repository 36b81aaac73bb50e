// Package headertest builds database headers and database files for tests.
package headertest

import (
	"database/sql"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/wilhasse/go-sqlitehdr/format"
)

// Fixture is a raw 100 byte header.
type Fixture [format.HeaderSize]byte

// Default field values written by New.
const (
	PageSize       = 4096
	ChangeCounter  = 7
	DatabaseSize   = 3
	SchemaCookie   = 2
	SchemaFormat   = 4
	LibraryVersion = 3045001
	ApplicationID  = 0x0d15ea5e
	UserVersion    = -12
)

// New returns a valid header: 4096 byte pages, rollback journal, UTF-8,
// no freelist and no auto-vacuum.
func New() *Fixture {
	f := &Fixture{}
	copy(f[format.OffMagic:], format.Magic[:])
	f.PutU16(format.OffPageSize, PageSize)
	f[format.OffWriteVersion] = uint8(format.Legacy)
	f[format.OffReadVersion] = uint8(format.Legacy)
	f[format.OffMaxPayloadFrac] = format.MaxPayloadFraction
	f[format.OffMinPayloadFrac] = format.MinPayloadFraction
	f[format.OffLeafPayloadFrac] = format.LeafPayloadFraction
	f.PutU32(format.OffChangeCounter, ChangeCounter)
	f.PutU32(format.OffDatabaseSize, DatabaseSize)
	f.PutU32(format.OffSchemaCookie, SchemaCookie)
	f.PutU32(format.OffSchemaFormat, SchemaFormat)
	f.PutU32(format.OffTextEncoding, uint32(format.UTF8))
	uv := int32(UserVersion)
	f.PutU32(format.OffUserVersion, uint32(uv))
	f.PutU32(format.OffApplicationID, ApplicationID)
	f.PutU32(format.OffVersionValidFor, ChangeCounter)
	f.PutU32(format.OffLibraryVersion, LibraryVersion)
	return f
}

func (f *Fixture) PutU8(off int, v uint8) *Fixture {
	f[off] = v
	return f
}

func (f *Fixture) PutU16(off int, v uint16) *Fixture {
	binary.BigEndian.PutUint16(f[off:], v)
	return f
}

func (f *Fixture) PutU32(off int, v uint32) *Fixture {
	binary.BigEndian.PutUint32(f[off:], v)
	return f
}

// Bytes returns a copy of the header bytes.
func (f *Fixture) Bytes() []byte {
	b := make([]byte, format.HeaderSize)
	copy(b, f[:])
	return b
}

// CreateDatabase creates a database file under t.TempDir(), runs stmts on
// a single connection and closes it so the header is on disk.
func CreateDatabase(t testing.TB, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	CreateDatabaseAt(t, path, stmts...)
	return path
}

// CreateDatabaseAt is CreateDatabase for a caller-chosen path. The parent
// directory must exist.
func CreateDatabaseAt(t testing.TB, path string, stmts ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err, s)
	}
	require.NoError(t, db.Close())
}
