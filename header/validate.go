// validate.go - Domain checks on raw header fields
package header

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wilhasse/go-sqlitehdr/format"
)

// ValidateMagic checks the 16 byte magic string. The offending bytes are
// rendered lossily so an arbitrary binary prefix never fails a second time.
func ValidateMagic(b []byte) error {
	if bytes.Equal(b, format.Magic[:]) {
		return nil
	}
	return &format.Error{
		Kind:   format.KindMagicMismatch,
		Field:  "magic string",
		Offset: format.OffMagic,
		Msg:    fmt.Sprintf("expected %q, found %q", format.Magic[:], strings.ToValidUTF8(string(b), "�")),
	}
}

// ValidatePageSize maps the raw two byte page size onto a PageSize.
// Raw 1 stands for 65536, which does not fit in 16 bits.
func ValidatePageSize(raw uint16) (format.PageSize, error) {
	switch {
	case raw == format.MaxPageSizeRaw:
		return format.MaxPageSize, nil
	case raw < format.MinPageSize:
		return 0, pageSizeErr("must be >= %d, found: %d", format.MinPageSize, raw)
	case raw&(raw-1) != 0:
		return 0, pageSizeErr("must be a power of 2, found: %d", raw)
	}
	return format.PageSize(raw), nil
}

func pageSizeErr(msg string, args ...any) error {
	return &format.Error{
		Kind:   format.KindInvalidPageSize,
		Field:  "page size",
		Offset: format.OffPageSize,
		Msg:    fmt.Sprintf(msg, args...),
	}
}

// ValidateFraction requires one of the fixed payload fraction bytes to
// hold exactly want.
func ValidateFraction(name string, off int, got, want uint8) error {
	if got == want {
		return nil
	}
	return &format.Error{
		Kind:   format.KindInvalidFraction,
		Field:  name,
		Offset: off,
		Msg:    fmt.Sprintf("must be %d, found: %d", want, got),
	}
}

// ValidateReserved reports the first non-zero byte of the reserved region.
// The returned error is of kind KindUnexpectedNonZero, which is not fatal.
func ValidateReserved(b []byte) error {
	for i, c := range b {
		if c != 0 {
			return &format.Error{
				Kind:   format.KindUnexpectedNonZero,
				Field:  "reserved region",
				Offset: format.OffReserved + i,
				Msg:    fmt.Sprintf("byte %d is 0x%02x", i, c),
			}
		}
	}
	return nil
}
