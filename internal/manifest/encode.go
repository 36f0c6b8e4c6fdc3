package manifest

import (
	"encoding/json"
	"io"
)

// Encode writes the result as indented UTF-8 JSON without escaping slashes or
// HTML characters.
func Encode(w io.Writer, r Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(r)
}
