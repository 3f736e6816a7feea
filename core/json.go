package core

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Number is a numeric field that the backend may send either as a JSON
// number or as a numeric string. Unparseable strings decode to zero.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// Int returns the value truncated to an int.
func (n Number) Int() int {
	return int(n)
}

// Flag is a boolean-like field: true, "yes", "true", "on" and "1" are set.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "true", "on", "1":
			*f = true
		default:
			*f = false
		}
		return nil
	default:
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			var num float64
			if numErr := json.Unmarshal(data, &num); numErr != nil {
				return err
			}
			b = num != 0
		}
		*f = Flag(b)
		return nil
	}
}

// MarshalJSON writes the flag the way the backend does, as "yes" or "no".
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte(`"yes"`), nil
	}
	return []byte(`"no"`), nil
}

// Engines is an ordered list of source-engine names. It decodes from either a
// JSON array or a comma-joined string.
type Engines []string

// UnmarshalJSON implements json.Unmarshaler.
func (e *Engines) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*e = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = ParseEngines(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*e = Engines(list)
	return nil
}

// ParseEngines splits a comma-joined engine set, dropping empty names.
func ParseEngines(s string) Engines {
	var out Engines
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// String joins the engine names with commas. An empty set means "all".
func (e Engines) String() string {
	return strings.Join(e, ",")
}

// UnmarshalJSON accepts ids sent as strings or as numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*id = ID(num.String())
	return nil
}
