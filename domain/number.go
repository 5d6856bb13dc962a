package domain

import (
	"bytes"
	"strconv"
	"strings"
)

// Number is a loosely typed numeric form field. It accepts a JSON number, a
// numeric string, null or absence. Text that does not parse is kept so the
// normalizer can report it against the right field.
type Number struct {
	value float64
	raw   string
	set   bool
	valid bool
}

// Num returns a set, valid Number.
func Num(v float64) Number {
	return Number{value: v, set: true, valid: true}
}

// IsSet reports whether the caller supplied the field.
func (n Number) IsSet() bool { return n.set }

// Valid reports whether a supplied value parsed as a number.
func (n Number) Valid() bool { return n.set && n.valid }

// Float returns the parsed value; ok is false when the field is absent or
// malformed.
func (n Number) Float() (v float64, ok bool) {
	return n.value, n.Valid()
}

// Raw returns the text of a value that failed to parse.
func (n Number) Raw() string { return n.raw }

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	text := string(data)
	if data[0] == '"' {
		s, err := strconv.Unquote(text)
		if err != nil {
			*n = Number{raw: text, set: true}
			return nil
		}
		text = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
		if text == "" {
			return nil
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*n = Number{raw: text, set: true}
		return nil
	}
	*n = Number{value: v, set: true, valid: true}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	switch {
	case !n.set:
		return []byte("null"), nil
	case !n.valid:
		return []byte(strconv.Quote(n.raw)), nil
	}
	return []byte(strconv.FormatFloat(n.value, 'f', -1, 64)), nil
}
