package gosqlitehdr

import (
	"io"

	"github.com/wilhasse/go-sqlitehdr/format"
	"github.com/wilhasse/go-sqlitehdr/header"
)

// HeaderReader reads the header at the start of a database file. Each
// ReadHeader call decodes a fresh copy, so a live file can be polled
// without seeking the underlying handle.
type HeaderReader struct {
	r   io.ReaderAt
	dec *header.Decoder
}

func NewHeaderReader(r io.ReaderAt, opts ...header.Option) *HeaderReader {
	return &HeaderReader{r: r, dec: header.NewDecoder(opts...)}
}

func (hr *HeaderReader) ReadHeader() (*DatabaseHeader, Findings, error) {
	return hr.dec.Decode(io.NewSectionReader(hr.r, 0, format.HeaderSize))
}
