// errors.go - Header decode error taxonomy
package format

import (
	"errors"
	"fmt"
)

// Kind classifies a decode failure.
type Kind uint8

const (
	KindMagicMismatch Kind = iota + 1
	KindInvalidPageSize
	KindInvalidFraction
	KindUnexpectedZero
	KindUnexpectedNonZero
	KindShortRead
	KindIO
)

// Sentinels for errors.Is. A *Error matches the sentinel of its Kind.
var (
	ErrMagicMismatch     = errors.New("magic string mismatch")
	ErrInvalidPageSize   = errors.New("invalid page size")
	ErrInvalidFraction   = errors.New("invalid payload fraction")
	ErrUnexpectedZero    = errors.New("unexpected zero")
	ErrUnexpectedNonZero = errors.New("unexpected non-zero")
	ErrShortRead         = errors.New("short read")
	ErrIO                = errors.New("i/o failure")
)

func (k Kind) sentinel() error {
	switch k {
	case KindMagicMismatch:
		return ErrMagicMismatch
	case KindInvalidPageSize:
		return ErrInvalidPageSize
	case KindInvalidFraction:
		return ErrInvalidFraction
	case KindUnexpectedZero:
		return ErrUnexpectedZero
	case KindUnexpectedNonZero:
		return ErrUnexpectedNonZero
	case KindShortRead:
		return ErrShortRead
	case KindIO:
		return ErrIO
	}
	return nil
}

func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Fatal reports whether an error of this kind aborts a decode.
func (k Kind) Fatal() bool { return k != KindUnexpectedNonZero }

// Error is returned for every header field that cannot be read or fails
// validation. Field is a human-readable field name and Offset the byte
// offset within the header where the field (or the offending byte) starts.
type Error struct {
	Kind   Kind
	Field  string
	Offset int
	Msg    string
	Err    error // underlying cause, if any
}

func (e *Error) Error() string {
	var s string
	switch e.Kind {
	case KindShortRead, KindIO:
		s = fmt.Sprintf("read %s at offset %d: %s", e.Field, e.Offset, e.Kind)
	default:
		s = fmt.Sprintf("%s: %s", e.Field, e.Kind)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}
