// decoder.go - Sequential assembly of the database header
package header

import (
	"bytes"
	"errors"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/wilhasse/go-sqlitehdr/format"
)

// Findings are non-fatal problems seen during a successful decode.
type Findings []*format.Error

// Decoder decodes database headers. It holds no per-decode state and may
// be shared between goroutines.
type Decoder struct {
	log logrus.FieldLogger
}

type Option func(*Decoder)

// WithLogger sets the logger that findings are reported to.
func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Decoder) { d.log = l }
}

func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{log: logrus.StandardLogger()}
	for _, o := range opts {
		o(d)
	}
	return d
}

var defaultDecoder = NewDecoder()

// Decode reads one header from r with the default decoder.
func Decode(r io.Reader) (*DatabaseHeader, Findings, error) {
	return defaultDecoder.Decode(r)
}

// Parse decodes the header at the start of b with the default decoder.
func Parse(b []byte) (*DatabaseHeader, Findings, error) {
	return defaultDecoder.Parse(b)
}

// Parse decodes the header at the start of b. Bytes past the header are
// ignored; fewer than HeaderSize bytes is a short read.
func (d *Decoder) Parse(b []byte) (*DatabaseHeader, Findings, error) {
	return d.Decode(bytes.NewReader(b))
}

// Decode reads exactly HeaderSize bytes from r, field by field. The first
// fatal error stops the decode and nil is returned for the header; the
// remaining bytes are left unread.
func (d *Decoder) Decode(r io.Reader) (*DatabaseHeader, Findings, error) {
	h, findings, err := decode(format.NewReader(r))
	if err != nil {
		return nil, nil, err
	}
	for _, f := range findings {
		d.log.WithFields(logrus.Fields{
			"field":  f.Field,
			"offset": f.Offset,
		}).Warn(f.Error())
	}
	d.log.WithFields(logrus.Fields{
		"page_size":      h.PageSize,
		"change_counter": h.ChangeCounter,
	}).Debug("decoded database header")
	return h, findings, nil
}

func decode(r *format.Reader) (*DatabaseHeader, Findings, error) {
	var (
		h        DatabaseHeader
		findings Findings
	)

	magic, err := r.Bytes(format.MagicSize, "magic string")
	if err != nil {
		return nil, nil, err
	}
	if err := ValidateMagic(magic); err != nil {
		return nil, nil, err
	}
	copy(h.Magic[:], magic)

	rawPageSize, err := r.Uint16("page size")
	if err != nil {
		return nil, nil, err
	}
	if h.PageSize, err = ValidatePageSize(rawPageSize); err != nil {
		return nil, nil, err
	}

	wv, err := r.Uint8("write version")
	if err != nil {
		return nil, nil, err
	}
	rv, err := r.Uint8("read version")
	if err != nil {
		return nil, nil, err
	}
	h.WriteVersion, h.ReadVersion = format.FormatVersion(wv), format.FormatVersion(rv)

	if h.ReservedBytes, err = r.Uint8("reserved bytes per page"); err != nil {
		return nil, nil, err
	}

	fractions := []struct {
		name string
		off  int
		want uint8
		dst  *uint8
	}{
		{"maximum payload fraction", format.OffMaxPayloadFrac, format.MaxPayloadFraction, &h.MaxPayloadFraction},
		{"minimum payload fraction", format.OffMinPayloadFrac, format.MinPayloadFraction, &h.MinPayloadFraction},
		{"leaf payload fraction", format.OffLeafPayloadFrac, format.LeafPayloadFraction, &h.LeafPayloadFraction},
	}
	for _, f := range fractions {
		v, err := r.Uint8(f.name)
		if err != nil {
			return nil, nil, err
		}
		if err := ValidateFraction(f.name, f.off, v, f.want); err != nil {
			return nil, nil, err
		}
		*f.dst = v
	}

	if h.ChangeCounter, err = r.Uint32("change counter"); err != nil {
		return nil, nil, err
	}
	dbSize, err := r.Uint32("database size")
	if err != nil {
		return nil, nil, err
	}
	h.DatabaseSize = format.NonZero(dbSize)

	trunk, err := r.Uint32("first freelist trunk page")
	if err != nil {
		return nil, nil, err
	}
	freeCount, err := r.Uint32("freelist page count")
	if err != nil {
		return nil, nil, err
	}
	h.FreePageList = format.FreePageListFrom(trunk, freeCount)

	if h.SchemaCookie, err = r.Uint32("schema cookie"); err != nil {
		return nil, nil, err
	}
	rawSchema, err := r.Uint32("schema format number")
	if err != nil {
		return nil, nil, err
	}
	if h.SchemaVersion, err = format.SchemaVersionFrom(rawSchema); err != nil {
		return nil, nil, err
	}

	if h.CacheSize, err = r.Uint32("default cache size"); err != nil {
		return nil, nil, err
	}
	largestRoot, err := r.Uint32("largest root b-tree page")
	if err != nil {
		return nil, nil, err
	}
	enc, err := r.Uint32("text encoding")
	if err != nil {
		return nil, nil, err
	}
	h.TextEncoding = format.TextEncoding(enc)

	if h.UserVersion, err = r.Int32("user version"); err != nil {
		return nil, nil, err
	}
	incremental, err := r.Uint32("incremental vacuum")
	if err != nil {
		return nil, nil, err
	}
	h.Vacuum = format.VacuumSettingFrom(largestRoot, incremental)

	if h.ApplicationID, err = r.Uint32("application id"); err != nil {
		return nil, nil, err
	}

	reserved, err := r.Bytes(format.ReservedSize, "reserved region")
	if err != nil {
		return nil, nil, err
	}
	if findings, err = note(findings, ValidateReserved(reserved)); err != nil {
		return nil, nil, err
	}
	copy(h.Reserved[:], reserved)

	if h.VersionValidFor, err = r.Uint32("version valid for"); err != nil {
		return nil, nil, err
	}
	if h.LibraryWriteVersion, err = r.Uint32("library write version"); err != nil {
		return nil, nil, err
	}
	return &h, findings, nil
}

// note appends err to findings when it is a non-fatal *format.Error and
// returns it otherwise.
func note(findings Findings, err error) (Findings, error) {
	if err == nil {
		return findings, nil
	}
	var fe *format.Error
	if !errors.As(err, &fe) || fe.Kind.Fatal() {
		return findings, err
	}
	return append(findings, fe), nil
}
