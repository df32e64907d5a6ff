package sectlink

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeStyle is the chroma style used when none is configured.
const DefaultCodeStyle = "monokai"

// Highlight writes the rendered markup to w with terminal colors.
// Unknown style names fall back to the chroma default style.
func Highlight(w io.Writer, markup string, styleName string) error {

	// The section blocks are HTML-like, with markdown headers inside
	l := lexers.Get("html")
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	if styleName == "" {
		styleName = DefaultCodeStyle
	}
	s := styles.Get(styleName)

	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}

	it, err := l.Tokenise(nil, markup)
	if err != nil {
		return err
	}

	return f.Format(w, s, it)
}
