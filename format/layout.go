// layout.go - SQLite database header layout
package format

// Sizes and constants
const (
	HeaderSize   = 100
	MagicSize    = 16
	ReservedSize = 20

	MinPageSize = 512
	MaxPageSize = 65536

	// Stored in the two page size bytes in place of 65536.
	MaxPageSizeRaw = 1

	MaxPayloadFraction  = 64
	MinPayloadFraction  = 32
	LeafPayloadFraction = 32
)

// Magic is "SQLite format 3" followed by a NUL byte.
var Magic = [MagicSize]byte{
	0x53, 0x51, 0x4c, 0x69, 0x74, 0x65, 0x20, 0x66,
	0x6f, 0x72, 0x6d, 0x61, 0x74, 0x20, 0x33, 0x00,
}

// Header field offsets
const (
	OffMagic             = 0
	OffPageSize          = 16
	OffWriteVersion      = 18
	OffReadVersion       = 19
	OffReservedBytes     = 20
	OffMaxPayloadFrac    = 21
	OffMinPayloadFrac    = 22
	OffLeafPayloadFrac   = 23
	OffChangeCounter     = 24
	OffDatabaseSize      = 28
	OffFreelistTrunk     = 32
	OffFreelistCount     = 36
	OffSchemaCookie      = 40
	OffSchemaFormat      = 44
	OffDefaultCacheSize  = 48
	OffLargestRootPage   = 52
	OffTextEncoding      = 56
	OffUserVersion       = 60
	OffIncrementalVacuum = 64
	OffApplicationID     = 68
	OffReserved          = 72
	OffVersionValidFor   = 92
	OffLibraryVersion    = 96
)
