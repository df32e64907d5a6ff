// Package docio reads source documents and delivers rendered markup.
// Files, the system clipboard and any io.Writer are supported.
// The content is passed through unchanged in both directions.
package docio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

var (
	ErrSourceUnavailable      = errors.New("source unavailable")
	ErrDestinationUnavailable = errors.New("destination unavailable")
	ErrNoContent              = errors.New("no content")
)

// Replaced in tests, where no clipboard is available
var (
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
)

// SourceUnavailableError is returned when a document can not be loaded.
type SourceUnavailableError struct {
	Op     string
	Target string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *SourceUnavailableError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}

// DestinationUnavailableError is returned when the result can not be delivered.
type DestinationUnavailableError struct {
	Op     string
	Target string
	Err    error
}

func (e *DestinationUnavailableError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *DestinationUnavailableError) Unwrap() []error {
	return []error{ErrDestinationUnavailable, e.Err}
}

// Source supplies the full text of a document.
type Source interface {
	Load() (string, error)
	String() string
}

// Destination receives the rendered markup.
type Destination interface {
	Emit(markup string) error
	String() string
}

// FileSource loads the document from a file.
type FileSource struct {
	Path string
}

func (s FileSource) Load() (string, error) {
	src, err := os.ReadFile(s.Path)
	if err != nil {
		return "", &SourceUnavailableError{Op: "read", Target: s.Path, Err: err}
	}
	if len(src) == 0 {
		return "", &SourceUnavailableError{Op: "read", Target: s.Path, Err: ErrNoContent}
	}
	return string(src), nil
}

func (s FileSource) String() string {
	return s.Path
}

// ClipboardSource loads the document from the system clipboard.
type ClipboardSource struct{}

func (ClipboardSource) Load() (string, error) {
	text, err := readClipboard()
	if err != nil {
		return "", &SourceUnavailableError{Op: "read", Target: "clipboard", Err: err}
	}
	if len(text) == 0 {
		return "", &SourceUnavailableError{Op: "read", Target: "clipboard", Err: ErrNoContent}
	}
	return text, nil
}

func (ClipboardSource) String() string {
	return "clipboard"
}

// FileDestination writes the markup to a file, replacing its contents.
type FileDestination struct {
	Path string
}

func (d FileDestination) Emit(markup string) error {
	if err := os.WriteFile(d.Path, []byte(markup), 0664); err != nil {
		return &DestinationUnavailableError{Op: "write", Target: d.Path, Err: err}
	}
	return nil
}

func (d FileDestination) String() string {
	return d.Path
}

// ClipboardDestination copies the markup to the system clipboard.
type ClipboardDestination struct{}

func (ClipboardDestination) Emit(markup string) error {
	if err := writeClipboard(markup); err != nil {
		return &DestinationUnavailableError{Op: "write", Target: "clipboard", Err: err}
	}
	return nil
}

func (ClipboardDestination) String() string {
	return "clipboard"
}

// WriterDestination writes the markup to an io.Writer, like os.Stdout.
type WriterDestination struct {
	W    io.Writer
	Name string
}

func (d WriterDestination) Emit(markup string) error {
	if _, err := io.WriteString(d.W, markup); err != nil {
		return &DestinationUnavailableError{Op: "write", Target: d.String(), Err: err}
	}
	return nil
}

func (d WriterDestination) String() string {
	if d.Name == "" {
		return "writer"
	}
	return d.Name
}
