// Package source loads tabular exports into record sets. Readers are
// selected by file extension.
package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

// Options controls how a file is read.
type Options struct {
	// Sheet selects a workbook sheet by name; empty means the first sheet.
	Sheet string
	// Encoding of delimited text: "" or "utf-8" (BOM aware), "utf-16", "latin1", "windows-1252".
	Encoding string
	// Delimiter for delimited text. If 0, ',' or '\t' by extension.
	Delimiter rune
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
}

// Reader decodes one file format.
type Reader interface {
	CanRead(filename string) bool
	Read(path string, opt Options) (*record.Set, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates no registered reader handles the file.
var ErrUnsupported = errors.New("unsupported file format")

// ReadFile picks a reader by filename and loads the file.
func ReadFile(path string, opt Options) (*record.Set, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	for _, r := range registry {
		if r.CanRead(path) {
			set, err := r.Read(path, opt)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
			}
			return set, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
}

// Supported lists the extensions the registry handles.
func Supported() []string { return []string{".csv", ".tsv", ".xlsx", ".json"} }

func init() {
	Register(csvReader{})
	Register(xlsxReader{})
	Register(jsonReader{})
}

func hasExt(name string, exts ...string) bool {
	name = strings.ToLower(name)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

// typed converts a raw text cell the way spreadsheet-to-JSON export does:
// blank is absent, TRUE/FALSE are booleans, plain decimals are numbers.
// Numbers with a leading zero stay text so identifiers like 007 survive.
func typed(raw string) record.Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return record.Null()
	}
	switch strings.ToLower(s) {
	case "true":
		return record.BoolValue(true)
	case "false":
		return record.BoolValue(false)
	}
	if looksNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return record.Num(f)
		}
	}
	return record.Str(raw)
}

func looksNumeric(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if digits == "" {
		return false
	}
	if len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return false
	}
	for _, r := range digits {
		switch {
		case r >= '0' && r <= '9', r == '.', r == 'e', r == 'E', r == '+', r == '-':
		default:
			return false
		}
	}
	return true
}

// headerNames trims header cells, names blank ones and de-duplicates.
func headerNames(raw []string) []string {
	out := make([]string, len(raw))
	seen := map[string]int{}
	for i, h := range raw {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = "Column " + strconv.Itoa(i+1)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n)
		} else {
			seen[name] = 1
		}
		out[i] = name
	}
	return out
}

// buildSet turns a header row and data rows into a record set. Blank rows
// are skipped and every column is present on every record.
func buildSet(header []string, rows [][]string, maxRows int) *record.Set {
	set := &record.Set{Columns: headerNames(header)}
	for _, row := range rows {
		if maxRows > 0 && len(set.Rows) >= maxRows {
			break
		}
		blank := true
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}
		rec := make(record.Record, len(set.Columns))
		for i, col := range set.Columns {
			if i < len(row) {
				rec[col] = typed(row[i])
			} else {
				rec[col] = record.Null()
			}
		}
		set.Rows = append(set.Rows, rec)
	}
	return set
}
