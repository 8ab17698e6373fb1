package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

type csvReader struct{}

func (csvReader) CanRead(filename string) bool { return hasExt(filename, ".csv", ".tsv") }

func (csvReader) Read(path string, opt Options) (*record.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = ','
		if hasExt(path, ".tsv") {
			delim = '\t'
		}
	}
	return ReadDelimited(f, delim, opt)
}

// ReadDelimited decodes delimited text with a header row.
func ReadDelimited(r io.Reader, delim rune, opt Options) (*record.Set, error) {
	dec, err := decoderFor(opt.Encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &record.Set{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var rows [][]string
	for {
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			break
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return buildSet(header, rows, opt.MaxRows), nil
}

// decoderFor resolves an encoding name. The default strips a UTF-8 BOM and
// switches to UTF-16 when a UTF-16 BOM is present.
func decoderFor(name string) (transform.Transformer, error) {
	var enc encoding.Encoding
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "utf-16", "utf16":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "utf-16be":
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case "latin1", "latin-1", "iso-8859-1":
		enc = charmap.ISO8859_1
	case "windows-1252", "cp1252":
		enc = charmap.Windows1252
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc.NewDecoder(), nil
}

// WriteCSV encodes the set with a header row in column order.
func WriteCSV(w io.Writer, set *record.Set) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(set.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(set.Columns))
	for _, r := range set.Rows {
		for i, col := range set.Columns {
			row[i] = r.Get(col).String()
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
