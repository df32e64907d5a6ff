package sectlink

import (
	"github.com/hesusruiz/vcutils/yaml"
	"go.uber.org/zap"
)

// Options configure a full run of the pipeline.
type Options struct {
	Render     RenderOptions
	Unresolved UnresolvedPolicy
	Logger     *zap.SugaredLogger
}

// WithConfig returns the options updated with the settings found in the front matter.
// Settings can only be switched on, so command line flags keep precedence.
func (o Options) WithConfig(config *yaml.YAML) Options {
	if config == nil {
		return o
	}
	if config.Bool("sectlink.escape") {
		o.Render.Escape = true
	}
	if config.Bool("sectlink.skipUnresolved") {
		o.Unresolved = SkipUnresolved
	}
	return o
}

// CodeStyle returns the chroma style configured in the front matter.
func CodeStyle(config *yaml.YAML) string {
	if config == nil {
		return DefaultCodeStyle
	}
	return config.String("sectlink.codeStyle", DefaultCodeStyle)
}

// Convert parses text, links the registry and renders it.
// The phases run strictly in sequence; the first error stops the run.
func Convert(fileName string, text string, opts Options) (*Document, string, error) {

	doc, err := Parse(fileName, text, WithLogger(opts.Logger))
	if err != nil {
		return nil, "", err
	}

	opts = opts.WithConfig(doc.Config)

	if _, err := NewLinker(opts.Unresolved, opts.Logger).Link(doc.Registry); err != nil {
		return nil, "", err
	}

	return doc, Render(doc.Registry, opts.Render), nil
}
