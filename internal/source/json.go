package source

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dhivya90m/LogiSight-Analytics/internal/record"
)

type jsonReader struct{}

func (jsonReader) CanRead(filename string) bool { return hasExt(filename, ".json") }

func (jsonReader) Read(path string, opt Options) (*record.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}
	defer f.Close()
	return ReadJSON(f, opt)
}

// ReadJSON decodes an array of flat objects. Columns keep the order in
// which keys are first seen; keys missing from a record are absent.
func ReadJSON(r io.Reader, opt Options) (*record.Set, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}
	set := &record.Set{}
	known := map[string]bool{}
	for dec.More() {
		if opt.MaxRows > 0 && len(set.Rows) >= opt.MaxRows {
			break
		}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(set.Rows)+1, err)
		}
		rec := record.Record{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", len(set.Rows)+1, err)
			}
			key, _ := tok.(string)
			var v record.Value
			if err := dec.Decode(&v); err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", len(set.Rows)+1, key, err)
			}
			rec[key] = v
			if !known[key] {
				known[key] = true
				set.Columns = append(set.Columns, key)
			}
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("record %d: %w", len(set.Rows)+1, err)
		}
		set.Rows = append(set.Rows, rec)
	}
	return set, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("decode json: expected %q, got %v", want, tok)
	}
	return nil
}

// WriteJSON encodes the set as an array of objects.
func WriteJSON(w io.Writer, set *record.Set) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	rows := set.Rows
	if rows == nil {
		rows = []record.Record{}
	}
	return enc.Encode(rows)
}
