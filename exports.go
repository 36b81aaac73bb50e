// exports.go - Re-exports for main package API
package gosqlitehdr

import (
	"github.com/wilhasse/go-sqlitehdr/format"
	"github.com/wilhasse/go-sqlitehdr/header"
)

// Re-export types from format package
type (
	PageSize      = format.PageSize
	FormatVersion = format.FormatVersion
	SchemaVersion = format.SchemaVersion
	TextEncoding  = format.TextEncoding
	VacuumMode    = format.VacuumMode
	VacuumSetting = format.VacuumSetting
	FreePageList  = format.FreePageList
	Error         = format.Error
	Kind          = format.Kind
)

// Re-export constants from format package
const (
	HeaderSize        = format.HeaderSize
	Legacy            = format.Legacy
	WriteAheadLog     = format.WriteAheadLog
	SchemaOne         = format.SchemaOne
	SchemaTwo         = format.SchemaTwo
	SchemaThree       = format.SchemaThree
	SchemaFour        = format.SchemaFour
	UTF8              = format.UTF8
	UTF16LE           = format.UTF16LE
	UTF16BE           = format.UTF16BE
	VacuumFull        = format.VacuumFull
	VacuumIncremental = format.VacuumIncremental
)

// Re-export error sentinels from format package
var (
	ErrMagicMismatch     = format.ErrMagicMismatch
	ErrInvalidPageSize   = format.ErrInvalidPageSize
	ErrInvalidFraction   = format.ErrInvalidFraction
	ErrUnexpectedZero    = format.ErrUnexpectedZero
	ErrUnexpectedNonZero = format.ErrUnexpectedNonZero
	ErrShortRead         = format.ErrShortRead
	ErrIO                = format.ErrIO
)

// Re-export types from header package
type (
	DatabaseHeader = header.DatabaseHeader
	Decoder        = header.Decoder
	Findings       = header.Findings
)

// Re-export functions from header package
var (
	NewDecoder = header.NewDecoder
	WithLogger = header.WithLogger
	Decode     = header.Decode
	Parse      = header.Parse
)
