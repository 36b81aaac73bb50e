// Package gosqlitehdr decodes the 100-byte header at the start of every
// SQLite 3 database file.
//
// The library is organized into logical groups of functionality:
//
// Layout and Values:
//   - format/layout.go: header size, field offsets and fixed constants
//   - format/endian.go: sequential big-endian field reader
//   - format/types.go: page size, journal mode, schema format, text encoding,
//     vacuum setting and freelist values
//   - format/errors.go: error kinds shared by every decode step
//
// Decoding:
//   - header/validate.go: magic, page size, payload fraction and reserved region checks
//   - header/decoder.go: field-by-field assembly of a DatabaseHeader
//
// I/O Operations:
//   - reader.go: header reader for database files
//
// Basic usage:
//
//	file, _ := os.Open("app.db")
//	defer file.Close()
//
//	hdr, findings, err := gosqlitehdr.NewHeaderReader(file).ReadHeader()
//	if err != nil {
//	    if errors.Is(err, gosqlitehdr.ErrMagicMismatch) {
//	        // not a SQLite 3 database
//	    }
//	}
//	fmt.Println(hdr.PageSize, hdr.SchemaVersion, len(findings))
package gosqlitehdr
