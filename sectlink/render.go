package sectlink

import (
	"bytes"
	"encoding/json"

	"github.com/hesusruiz/sectlink/sliceedit"
)

// RenderOptions control the serialization of the registry.
type RenderOptions struct {
	// Escape escapes the name and type attribute values.
	// Without it the output keeps the historical unescaped format,
	// and a quote in a name breaks the markup.
	Escape bool
}

var attrEscapes = []string{
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
}

// Render serializes every registry entry, in id order, as a section block:
//
//	<section id="id1" name="Intro" type="overview" links={[]}>
//	# Intro
//
//	Welcome text.
//
//	</section>
//
// Blocks are separated by a newline. The registry should have been linked first;
// entries without LinkIDs render an empty array.
func Render(reg *Registry, opts RenderOptions) string {
	br := &ByteRenderer{}

	for i, entry := range reg.Entries() {
		if i > 0 {
			br.Render("\n")
		}
		renderEntry(br, entry, opts)
	}

	return br.String()
}

func renderEntry(br *ByteRenderer, entry *Entry, opts RenderOptions) {
	name, typ := entry.Name, entry.Type
	if opts.Escape {
		name = escapeAttr(name)
		typ = escapeAttr(typ)
	}

	br.Renderln(`<section id="`, entry.Anchor(), `" name="`, name, `" type="`, typ, `" links={`, linkIDsJSON(entry.LinkIDs), `}>`)
	br.Renderln(headerPrefix, entry.Name)
	br.Renderln()
	br.Renderln(entry.Content)
	br.Renderln()
	br.Render("</section>")
}

func escapeAttr(s string) string {
	return sliceedit.ReplaceString(s, attrEscapes...)
}

// linkIDsJSON encodes the ids like JSON.stringify would, without HTML escaping.
func linkIDsJSON(linkIDs []string) []byte {
	if linkIDs == nil {
		linkIDs = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	// Encoding a slice of strings can not fail
	_ = enc.Encode(linkIDs)

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
