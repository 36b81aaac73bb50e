// endian.go - Big-endian field reading from a sequential byte source
package format

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// Reader consumes fixed-width big-endian fields from r. It never reads
// ahead, so after a failure the source is positioned just past the bytes
// of the last successful field plus whatever the failed read consumed.
type Reader struct {
	r   io.Reader
	off int
	buf [4]byte
}

func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// Offset is the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

func (r *Reader) fill(p []byte, field string) error {
	start := r.off
	n, err := io.ReadFull(r.r, p)
	r.off += n
	if err == nil {
		return nil
	}
	kind := KindIO
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		kind = KindShortRead
	}
	return &Error{
		Kind:   kind,
		Field:  field,
		Offset: start,
		Msg:    fmt.Sprintf("wanted %d bytes, got %d", len(p), n),
		Err:    errors.WithStack(err),
	}
}

func (r *Reader) Uint8(field string) (uint8, error) {
	if err := r.fill(r.buf[:1], field); err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

func (r *Reader) Uint16(field string) (uint16, error) {
	if err := r.fill(r.buf[:2], field); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

func (r *Reader) Uint32(field string) (uint32, error) {
	if err := r.fill(r.buf[:4], field); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(r.buf[:4]), nil
}

func (r *Reader) Int32(field string) (int32, error) {
	v, err := r.Uint32(field)
	return int32(v), err
}

// Bytes returns a fresh slice of exactly n bytes.
func (r *Reader) Bytes(n int, field string) ([]byte, error) {
	p := make([]byte, n)
	if err := r.fill(p, field); err != nil {
		return nil, err
	}
	return p, nil
}
