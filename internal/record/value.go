package record

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the dynamic type of a cell.
type Kind int

const (
	Absent Kind = iota
	Bool
	Number
	Text
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case Text:
		return "text"
	default:
		return "absent"
	}
}

// Value is a single cell as produced by a record source: absent, boolean,
// number or text. The zero Value is Absent.
type Value struct {
	Kind Kind
	B    bool
	N    float64
	S    string
}

func Null() Value            { return Value{} }
func BoolValue(b bool) Value { return Value{Kind: Bool, B: b} }
func Num(f float64) Value    { return Value{Kind: Number, N: f} }
func Str(s string) Value     { return Value{Kind: Text, S: s} }

// Of converts a decoded JSON or database/sql value into a Value.
func Of(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return BoolValue(x)
	case float64:
		return Num(x)
	case float32:
		return Num(float64(x))
	case int:
		return Num(float64(x))
	case int64:
		return Num(float64(x))
	case int32:
		return Num(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Num(f)
		}
		return Str(x.String())
	case string:
		return Str(x)
	case []byte:
		return Str(string(x))
	default:
		return Str(fmt.Sprint(x))
	}
}

// IsMissing reports whether the cell is absent or the empty string.
func (v Value) IsMissing() bool {
	return v.Kind == Absent || (v.Kind == Text && v.S == "")
}

// String is the display form used for grouping keys and labels.
func (v Value) String() string {
	switch v.Kind {
	case Bool:
		return strconv.FormatBool(v.B)
	case Number:
		return formatNumber(v.N)
	case Text:
		return v.S
	default:
		return ""
	}
}

// Float coerces the cell to a number. Unparsable text and absent cells are 0.
func (v Value) Float() float64 {
	f, _ := v.FloatOK()
	return f
}

// FloatOK coerces the cell to a number and reports whether the coercion was
// meaningful. Absent cells report false.
func (v Value) FloatOK() (float64, bool) {
	switch v.Kind {
	case Number:
		return v.N, true
	case Bool:
		if v.B {
			return 1, true
		}
		return 0, true
	case Text:
		return ParseDecimal(v.S)
	default:
		return 0, false
	}
}

// ParseDecimal parses a plain decimal number. Surrounding whitespace is
// ignored and a blank string parses as 0.
func ParseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Any returns the natural Go value for JSON encoding and SQL binding.
func (v Value) Any() any {
	switch v.Kind {
	case Bool:
		return v.B
	case Number:
		return v.N
	case Text:
		return v.S
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) { return json.Marshal(v.Any()) }

func (v *Value) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = Of(raw)
	return nil
}
