package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"
)

// jsonToken matches, in order: keys (quoted string plus colon), string
// values, literals and numbers.
var jsonToken = regexp.MustCompile(`("(\\u[a-zA-Z0-9]{4}|\\[^u]|[^\\"])*"(\s*:)?|\b(true|false|null)\b|-?\d+(?:\.\d*)?(?:[eE][+\-]?\d+)?)`)

// HighlightJSON applies ANSI colors to a JSON document, minified or indented.
func HighlightJSON(doc string) string {
	if !enabled {
		return doc
	}

	return jsonToken.ReplaceAllStringFunc(doc, func(token string) string {
		switch {
		case strings.HasSuffix(token, ":"):
			return Blue + token[:len(token)-1] + ResetCode + ":"
		case strings.HasPrefix(token, `"`):
			return Green + token + ResetCode
		case token == "true" || token == "false":
			return Yellow + token + ResetCode
		case token == "null":
			return DimCode + token + ResetCode
		default:
			return Purple + token + ResetCode
		}
	})
}

// PrintJSON writes v as indented JSON and a newline to w. Colors are only
// applied when w is a terminal so piped output stays valid JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	doc := string(b)
	if IsTerminal(w) {
		doc = HighlightJSON(doc)
	}
	_, err = fmt.Fprintln(w, doc)
	return err
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
