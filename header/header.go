// header.go - Decoded SQLite database header
package header

import (
	"fmt"

	"github.com/wilhasse/go-sqlitehdr/format"
)

// DatabaseHeader is the decoded first 100 bytes of a database file.
// A value is built once by a Decoder and not modified afterwards.
type DatabaseHeader struct {
	Magic               [format.MagicSize]byte
	PageSize            format.PageSize
	WriteVersion        format.FormatVersion
	ReadVersion         format.FormatVersion
	ReservedBytes       uint8 // unused bytes at the end of each page
	MaxPayloadFraction  uint8
	MinPayloadFraction  uint8
	LeafPayloadFraction uint8
	ChangeCounter       uint32
	DatabaseSize        *uint32 // in pages, nil when not recorded
	FreePageList        *format.FreePageList
	SchemaCookie        uint32
	SchemaVersion       format.SchemaVersion
	CacheSize           uint32 // suggested, in pages
	Vacuum              *format.VacuumSetting
	TextEncoding        format.TextEncoding
	UserVersion         int32
	ApplicationID       uint32
	Reserved            [format.ReservedSize]byte
	VersionValidFor     uint32
	LibraryWriteVersion uint32
}

// UsablePageSize is the page size less the per-page reserved bytes.
func (h *DatabaseHeader) UsablePageSize() int {
	return h.PageSize.Bytes() - int(h.ReservedBytes)
}

// DatabaseSizeValid reports whether DatabaseSize can be trusted. Writers
// older than 3.7.0 do not maintain it, which shows as a version-valid-for
// number that lags the change counter.
func (h *DatabaseHeader) DatabaseSizeValid() bool {
	return h.DatabaseSize != nil && h.ChangeCounter == h.VersionValidFor
}

// FreePages is the freelist length, 0 when there is no freelist.
func (h *DatabaseHeader) FreePages() uint32 {
	if h.FreePageList == nil {
		return 0
	}
	return h.FreePageList.Length
}

// WAL reports whether the file is in write-ahead log mode.
func (h *DatabaseHeader) WAL() bool {
	return h.WriteVersion == format.WriteAheadLog && h.ReadVersion == format.WriteAheadLog
}

// LibraryVersion renders LibraryWriteVersion (X*1000000 + Y*1000 + Z) as X.Y.Z.
func (h *DatabaseHeader) LibraryVersion() string {
	return libraryVersionString(h.LibraryWriteVersion)
}

func libraryVersionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v/1000000, v/1000%1000, v%1000)
}
