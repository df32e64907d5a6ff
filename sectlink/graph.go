package sectlink

import (
	"context"
	"fmt"
	"strings"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// GraphD2 describes the reference graph of a linked registry in the D2 language.
// Each entry is a shape keyed by its anchor and labelled with its name, and each
// resolved link is a connection from the linking section to the linked one.
func GraphD2(reg *Registry) string {
	br := &ByteRenderer{}

	br.Renderln("direction: right")

	for _, entry := range reg.Entries() {
		br.Renderln(entry.Anchor(), ": ", d2Quote(entry.Name), " {tooltip: ", d2Quote(entry.Type), "}")
	}

	for _, entry := range reg.Entries() {
		for _, target := range entry.LinkIDs {
			br.Renderln(entry.Anchor(), " -> ", target)
		}
	}

	return br.String()
}

// GraphSVG renders the reference graph of a linked registry as an SVG image.
func GraphSVG(ctx context.Context, reg *Registry) ([]byte, error) {

	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, fmt.Errorf("creating text ruler: %w", err)
	}

	defaultLayout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(ctx, GraphD2(reg), &d2lib.CompileOptions{
		Layout: defaultLayout,
		Ruler:  ruler,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling reference graph: %w", err)
	}

	body, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering reference graph: %w", err)
	}

	return body, nil
}

var d2Escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func d2Quote(s string) string {
	return `"` + d2Escaper.Replace(s) + `"`
}
