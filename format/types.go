// types.go - Typed header values and raw-value converters
package format

import "fmt"

// PageSize is a validated page size in bytes: a power of two in
// [MinPageSize, MaxPageSize].
type PageSize uint32

func (p PageSize) Bytes() int { return int(p) }

// FormatVersion is the file format write or read version byte.
// Values other than Legacy and WriteAheadLog are preserved as read.
type FormatVersion uint8

const (
	Legacy        FormatVersion = 1 // rollback journal
	WriteAheadLog FormatVersion = 2
)

func (v FormatVersion) Known() bool { return v == Legacy || v == WriteAheadLog }

func (v FormatVersion) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case WriteAheadLog:
		return "wal"
	}
	return fmt.Sprintf("unknown(%d)", uint8(v))
}

func (v FormatVersion) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// SchemaVersion is the schema format number. Zero is never a valid value;
// construct it with SchemaVersionFrom.
type SchemaVersion uint32

const (
	SchemaOne   SchemaVersion = 1 // all SQLite 3 versions
	SchemaTwo   SchemaVersion = 2 // 3.1.3 and later
	SchemaThree SchemaVersion = 3 // 3.1.4 and later
	SchemaFour  SchemaVersion = 4 // 3.3.0 and later
)

// SchemaVersionFrom converts the raw schema format number.
func SchemaVersionFrom(raw uint32) (SchemaVersion, error) {
	if raw == 0 {
		return 0, &Error{
			Kind:   KindUnexpectedZero,
			Field:  "schema format number",
			Offset: OffSchemaFormat,
			Msg:    "schema format must be set",
		}
	}
	return SchemaVersion(raw), nil
}

func (v SchemaVersion) Known() bool { return v >= SchemaOne && v <= SchemaFour }

func (v SchemaVersion) String() string {
	if v.Known() {
		return fmt.Sprintf("%d", uint32(v))
	}
	return fmt.Sprintf("unknown(%d)", uint32(v))
}

func (v SchemaVersion) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// TextEncoding is the database text encoding. Unrecognised values are
// preserved as read.
type TextEncoding uint32

const (
	UTF8    TextEncoding = 1
	UTF16LE TextEncoding = 2
	UTF16BE TextEncoding = 3
)

func (e TextEncoding) Known() bool { return e >= UTF8 && e <= UTF16BE }

// String uses the spelling of PRAGMA encoding.
func (e TextEncoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16LE:
		return "UTF-16le"
	case UTF16BE:
		return "UTF-16be"
	}
	return fmt.Sprintf("unknown(%d)", uint32(e))
}

func (e TextEncoding) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

type VacuumMode uint8

const (
	VacuumFull        VacuumMode = 1
	VacuumIncremental VacuumMode = 2
)

func (m VacuumMode) String() string {
	switch m {
	case VacuumFull:
		return "full"
	case VacuumIncremental:
		return "incremental"
	}
	return fmt.Sprintf("unknown(%d)", uint8(m))
}

func (m VacuumMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// VacuumSetting is present only for auto-vacuum databases.
// LargestRootPage is never zero.
type VacuumSetting struct {
	Mode            VacuumMode `json:"mode" yaml:"mode"`
	LargestRootPage uint32     `json:"largest_root_page" yaml:"largest_root_page"`
}

// VacuumSettingFrom returns nil when largestRoot is zero (auto-vacuum off).
func VacuumSettingFrom(largestRoot, incremental uint32) *VacuumSetting {
	if largestRoot == 0 {
		return nil
	}
	mode := VacuumFull
	if incremental != 0 {
		mode = VacuumIncremental
	}
	return &VacuumSetting{Mode: mode, LargestRootPage: largestRoot}
}

// FreePageList describes the freelist; StartPage is never zero.
type FreePageList struct {
	StartPage uint32 `json:"start_page" yaml:"start_page"`
	Length    uint32 `json:"length" yaml:"length"`
}

// FreePageListFrom returns nil for an empty freelist (start page zero).
func FreePageListFrom(start, length uint32) *FreePageList {
	if start == 0 {
		return nil
	}
	return &FreePageList{StartPage: start, Length: length}
}

// NonZero returns nil for 0 and a pointer to v otherwise.
func NonZero(v uint32) *uint32 {
	if v == 0 {
		return nil
	}
	return &v
}
