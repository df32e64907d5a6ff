package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/hesusruiz/sectlink/docio"
	"github.com/hesusruiz/sectlink/sectlink"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Default input file name
const defaultInputFileName = "index.md"

// The first argument selecting the clipboard as source
const clipboardArg = "cb"

// run holds everything needed to process a document once.
type run struct {
	source    docio.Source
	dest      docio.Destination
	graphFile string
	opts      sectlink.Options
	color     bool
	style     string
	dryrun    bool
	stdout    io.Writer
	log       *zap.SugaredLogger
}

// newLogger is replaced in tests to observe the log entries
var newLogger = func(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newRun builds the run from the command line flags and arguments.
func newRun(c *cli.Context, sugar *zap.SugaredLogger) (*run, error) {

	r := &run{
		graphFile: c.String("graph"),
		color:     c.Bool("color"),
		style:     c.String("style"),
		dryrun:    c.Bool("dryrun"),
		stdout:    c.App.Writer,
		log:       sugar,
	}

	r.opts = sectlink.Options{
		Render: sectlink.RenderOptions{
			Escape: c.Bool("escape"),
		},
		Logger: sugar,
	}
	if c.Bool("skip-unresolved") {
		r.opts.Unresolved = sectlink.SkipUnresolved
	}

	// Get the source of the document
	switch {
	case c.Bool("clipboard") || c.Args().First() == clipboardArg:
		r.source = docio.ClipboardSource{}
	case c.Args().Present():
		r.source = docio.FileSource{Path: c.Args().First()}
	default:
		sugar.Infow("no input file provided, using default", "file", defaultInputFileName)
		r.source = docio.FileSource{Path: defaultInputFileName}
	}

	// And where the result goes
	outputFileName := c.String("output")
	switch {
	case len(outputFileName) > 0 && c.Bool("copy"):
		return nil, errors.New("--output and --copy can not be used together")
	case len(outputFileName) > 0:
		r.dest = docio.FileDestination{Path: outputFileName}
	case c.Bool("copy"):
		r.dest = docio.ClipboardDestination{}
	default:
		r.dest = docio.WriterDestination{W: r.stdout, Name: "stdout"}
	}

	return r, nil
}

// processOnce runs the pipeline on the source and delivers the result.
func (r *run) processOnce(ctx context.Context) error {

	text, err := r.source.Load()
	if err != nil {
		return err
	}

	doc, markup, err := sectlink.Convert(r.source.String(), text, r.opts)
	if err != nil {
		return err
	}

	r.log.Debugw("document processed",
		"source", r.source.String(),
		"sections", len(doc.Sections),
		"registered", doc.Registry.Len(),
	)

	// Do nothing else if flag dryrun was specified
	if r.dryrun {
		return nil
	}

	if len(r.graphFile) > 0 {
		if err := writeGraph(ctx, r.graphFile, doc.Registry); err != nil {
			return err
		}
	}

	if _, toStdout := r.dest.(docio.WriterDestination); toStdout && r.color {
		style := r.style
		if len(style) == 0 {
			style = sectlink.CodeStyle(doc.Config)
		}
		return sectlink.Highlight(r.stdout, markup, style)
	}

	return r.dest.Emit(markup)
}

// writeGraph writes the reference graph, as D2 source for a ".d2" file or as SVG otherwise.
func writeGraph(ctx context.Context, fileName string, reg *sectlink.Registry) error {
	dest := docio.FileDestination{Path: fileName}

	if filepath.Ext(fileName) == ".d2" {
		return dest.Emit(sectlink.GraphD2(reg))
	}

	svg, err := sectlink.GraphSVG(ctx, reg)
	if err != nil {
		return err
	}
	return dest.Emit(string(svg))
}

// process is the main entry point of the program
func process(c *cli.Context) error {

	// Setup the logging system
	z, err := newLogger(c.Bool("debug"))
	if err != nil {
		return err
	}
	sugar := z.Sugar()
	defer sugar.Sync()

	r, err := newRun(c, sugar)
	if err != nil {
		return err
	}

	// This is useful for development.
	// If the user specified to watch, loop processing the input file when modified
	if c.Bool("watch") {
		return r.watch(c.Context, time.Second)
	}

	// The error is reported by main
	return r.processOnce(c.Context)
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "sectlink",
		Version:  "v0.1.0",
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "Jesus Ruiz",
				Email: "hesus.ruiz@gmail.com",
			},
		},
		Usage:     "link the sections of a document and render them as markup",
		UsageText: "sectlink [options] [INPUT_FILE|cb] (default input file is index.md, 'cb' reads the clipboard)",
		Action:    process,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the markup to `FILE` (default is stdout)",
			},
			&cli.BoolFlag{
				Name:    "clipboard",
				Aliases: []string{"c"},
				Usage:   "read the document from the clipboard",
			},
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "copy the markup to the clipboard instead of printing it",
			},
			&cli.BoolFlag{
				Name:    "escape",
				Aliases: []string{"e"},
				Usage:   "escape the name and type attributes",
			},
			&cli.BoolFlag{
				Name:  "skip-unresolved",
				Usage: "drop links to unknown sections instead of failing",
			},
			&cli.StringFlag{
				Name:  "graph",
				Usage: "also write the reference graph to `FILE` (D2 source if the extension is .d2, SVG otherwise)",
			},
			&cli.BoolFlag{
				Name:  "color",
				Usage: "highlight the markup printed on stdout",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "chroma `STYLE` used with --color",
			},
			&cli.BoolFlag{
				Name:    "dryrun",
				Aliases: []string{"n"},
				Usage:   "process the document without writing output",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "run in debug mode",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "watch the file for changes",
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
