package output

import (
	"encoding/json"
	"io"
	"strings"
)

// JSONFormatter writes indented JSON. Payloads are printed as stored, so
// HTML characters are not escaped.
type JSONFormatter struct{}

// Format encodes data. A Table is written as an array of objects keyed by
// the lowercased column headers.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	switch t := data.(type) {
	case *Table:
		data = tableObjects(t)
	case Table:
		data = tableObjects(&t)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

func tableObjects(t *Table) []map[string]string {
	out := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		obj := make(map[string]string, len(row))
		for i, cell := range row {
			if i < len(t.Headers) {
				obj[strings.ToLower(t.Headers[i])] = cell
			}
		}
		out = append(out, obj)
	}
	return out
}
