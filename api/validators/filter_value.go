package validators

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const maxFilterValues = 500

// FilterValue accepts either a single string or an array of strings.
// A JSON null or missing field yields no values. Entries are trimmed but never shortened.
type FilterValue []string

func (f *FilterValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = nil
		return nil
	}

	var raw []string
	switch data[0] {
	case '"':
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		raw = []string{single}
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for _, item := range items {
			value, err := scalarString(item)
			if err != nil {
				return err
			}
			raw = append(raw, value)
		}
	default:
		value, err := scalarString(data)
		if err != nil {
			return err
		}
		raw = []string{value}
	}

	if len(raw) > maxFilterValues {
		return fmt.Errorf("filter_value accepts at most %d entries", maxFilterValues)
	}
	out := make([]string, 0, len(raw))
	for _, value := range raw {
		out = append(out, strings.TrimSpace(value))
	}
	*f = out
	return nil
}

// Values returns the entries as a plain slice.
func (f FilterValue) Values() []string {
	return []string(f)
}

// scalarString renders a JSON string or number as text; ids are often posted as numbers.
func scalarString(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("filter_value entries must be strings or numbers")
}
