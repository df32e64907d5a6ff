package sectlink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hesusruiz/vcutils/yaml"
	"go.uber.org/zap"
	yamlv3 "gopkg.in/yaml.v3"
)

const (
	headerPrefix         = "# "
	typeMarker           = "type="
	linksMarker          = "links="
	frontMatterDelimiter = "---"
)

// Document is the result of parsing a source text.
type Document struct {
	FileName string

	// Sections holds every section in source order, duplicates included
	Sections []Section

	// Registry holds the first occurrence of each name
	Registry *Registry

	// Config is the YAML front matter, or an empty config if there is none
	Config *yaml.YAML
}

// Parser scans a document one line at a time.
// A Parser is used for a single document and holds no state afterwards.
type Parser struct {
	// the name of the file being processed, for error messages
	fileName string

	// The lines of the document. Line numbers are used to provide meaningful error messages
	lines []string

	log *zap.SugaredLogger

	Config *yaml.YAML
}

type Option func(*Parser)

// WithLogger sets the logger used to trace the parsing.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.log = logger
		}
	}
}

// NewParser prepares the parsing of text. fileName is for logging/tracing purposes.
func NewParser(fileName string, text string, opts ...Option) *Parser {
	p := &Parser{
		fileName: fileName,
		lines:    strings.Split(text, "\n"),
		log:      zap.NewNop().Sugar(),
	}

	for _, opt := range opts {
		opt(p)
	}

	// Initialise the config just in case we do not find a suitable one
	p.Config, _ = yaml.ParseYaml("")

	return p
}

// Parse parses text in a single call.
func Parse(fileName string, text string, opts ...Option) (*Document, error) {
	return NewParser(fileName, text, opts...).Parse()
}

// Parse scans the whole document and builds the ordered list of sections and
// the registry. Any malformed section aborts parsing and no partial result is returned.
func (p *Parser) Parse() (*Document, error) {

	start := p.preprocessYAMLHeader()

	doc := &Document{
		FileName: p.fileName,
		Sections: []Section{},
		Registry: NewRegistry(),
		Config:   p.Config,
	}

	// Anything before the first header is ignored
	lineNum := p.nextHeader(start)

	for !p.AtEOF(lineNum) {

		section, next, err := p.parseSection(lineNum)
		if err != nil {
			return nil, err
		}

		doc.Sections = append(doc.Sections, section)

		entry, isNew := doc.Registry.Register(section)
		if isNew {
			p.log.Debugw("section found", "name", section.Name, "id", entry.ID, "line", section.LineNumber)
		} else {
			p.log.Debugw("duplicate section not registered", "name", section.Name, "line", section.LineNumber, "firstLine", entry.LineNumber)
		}

		lineNum = next
	}

	return doc, nil
}

// AtEOF reports if lineNum is past the last line of the document.
func (p *Parser) AtEOF(lineNum int) bool {
	return lineNum >= len(p.lines)
}

func (p *Parser) startsWithHeader(lineNum int) bool {
	return strings.HasPrefix(p.lines[lineNum], headerPrefix)
}

// nextHeader returns the number of the first header line starting at lineNum,
// or the number of lines if there are no more headers.
func (p *Parser) nextHeader(lineNum int) int {
	for ; lineNum < len(p.lines); lineNum++ {
		if p.startsWithHeader(lineNum) {
			return lineNum
		}
	}
	return len(p.lines)
}

// parseSection parses the section whose header is at headerLineNum.
// It returns the section and the line number where scanning must resume.
func (p *Parser) parseSection(headerLineNum int) (Section, int, error) {

	section := Section{
		Name:       strings.TrimPrefix(p.lines[headerLineNum], headerPrefix),
		LineNumber: headerLineNum + 1,
	}

	typeLineNum := headerLineNum + 1
	linksLineNum := headerLineNum + 2

	if p.AtEOF(linksLineNum) {
		return section, 0, p.malformed(section.Name, headerLineNum, "header must be followed by a type line and a links line")
	}

	_, typ, found := strings.Cut(p.lines[typeLineNum], typeMarker)
	if !found {
		return section, 0, p.malformed(section.Name, typeLineNum, "missing "+typeMarker+" marker")
	}
	section.Type = typ

	_, rawLinks, found := strings.Cut(p.lines[linksLineNum], linksMarker)
	if !found {
		return section, 0, p.malformed(section.Name, linksLineNum, "missing "+linksMarker+" marker")
	}

	links, err := decodeLinks(rawLinks)
	if err != nil {
		return section, 0, p.malformed(section.Name, linksLineNum, err.Error())
	}
	section.Links = links

	// The content runs up to the next header or the end of the document
	contentStart := linksLineNum + 1
	end := p.nextHeader(contentStart)
	section.Content = strings.Join(p.lines[contentStart:end], "\n")

	return section, end, nil
}

func (p *Parser) malformed(name string, lineNum int, msg string) error {
	return &MalformedSectionError{
		Filename: p.fileName,
		Line:     lineNum + 1,
		Name:     name,
		Msg:      msg,
	}
}

// preprocessYAMLHeader parses the front matter, if there is one, into p.Config.
// It returns the number of the first line after the front matter, or 0 when the
// document has none. A region that is not valid front matter is just preamble,
// so it never hides sections nor fails the parse.
func (p *Parser) preprocessYAMLHeader() int {

	// We accept YAML data only at the beginning of the file
	if !isFrontMatterDelimiter(p.lines[0]) {
		p.log.Debugln("no YAML metadata found")
		return 0
	}

	end := 0
	for lineNum := 1; lineNum < len(p.lines); lineNum++ {
		if isFrontMatterDelimiter(p.lines[lineNum]) {
			end = lineNum
			break
		}
		// Sections win over YAML comments
		if p.startsWithHeader(lineNum) {
			p.log.Debugw("section header before end of YAML section, no front matter", "line", lineNum+1)
			return 0
		}
	}

	if end == 0 {
		p.log.Debugln("no end of YAML section found, scanning from the start")
		return 0
	}

	config, err := parseFrontMatter(strings.Join(p.lines[1:end], "\n"))
	if err == nil && config == nil {
		err = errors.New("empty YAML document")
	}
	if err != nil {
		p.log.Debugw("YAML section is not front matter, scanning from the start", "error", err)
		return 0
	}
	p.Config = config

	p.log.Debugw("front matter found", "lines", end+1)
	return end + 1
}

// parseFrontMatter accepts only a YAML mapping. The YAML libraries may panic on
// some malformed input, which is reported as an error.
func parseFrontMatter(frontMatter string) (config *yaml.YAML, err error) {
	defer func() {
		if r := recover(); r != nil {
			config, err = nil, fmt.Errorf("malformed YAML: %v", r)
		}
	}()

	var mapping map[string]any
	if err := yamlv3.Unmarshal([]byte(frontMatter), &mapping); err != nil {
		return nil, err
	}

	return yaml.ParseYaml(frontMatter)
}

func isFrontMatterDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == frontMatterDelimiter
}
