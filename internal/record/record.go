package record

import (
	"sort"
)

// Record is one row keyed by column name.
type Record map[string]Value

// Get returns the cell for col. Unknown columns and the empty column name
// yield an absent cell.
func (r Record) Get(col string) Value {
	if col == "" || r == nil {
		return Value{}
	}
	return r[col]
}

// Clone returns a shallow copy; cells are values so the copy is independent.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Set is an ordered batch of records with the source column order.
type Set struct {
	Columns []string
	Rows    []Record
}

// Len returns the number of records.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// Column returns the cells of a single column in record order.
func (s *Set) Column(name string) []Value {
	out := make([]Value, 0, s.Len())
	if s == nil {
		return out
	}
	for _, r := range s.Rows {
		out = append(out, r.Get(name))
	}
	return out
}

// HasColumn reports whether name is one of the source columns.
func (s *Set) HasColumn(name string) bool {
	if s == nil {
		return false
	}
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Clone deep-copies columns and rows.
func (s *Set) Clone() *Set {
	if s == nil {
		return &Set{}
	}
	out := &Set{
		Columns: append([]string(nil), s.Columns...),
		Rows:    make([]Record, len(s.Rows)),
	}
	for i, r := range s.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

// Where returns a new Set holding the records for which keep is true.
func (s *Set) Where(keep func(Record) bool) *Set {
	out := &Set{}
	if s == nil {
		return out
	}
	out.Columns = append([]string(nil), s.Columns...)
	for _, r := range s.Rows {
		if keep(r) {
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// Head returns at most n leading records.
func (s *Set) Head(n int) []Record {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.Rows) {
		n = len(s.Rows)
	}
	return s.Rows[:n]
}

// Distinct returns the sorted distinct non-empty display values of a column.
func (s *Set) Distinct(col string) []string {
	if s == nil || col == "" {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, r := range s.Rows {
		v := r.Get(col)
		if v.IsMissing() {
			continue
		}
		k := v.String()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
