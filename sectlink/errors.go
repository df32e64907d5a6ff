package sectlink

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSection    = errors.New("malformed section")
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// MalformedSectionError reports a header whose metadata lines can not be parsed.
// A single malformed section aborts the whole parse.
type MalformedSectionError struct {
	Filename string
	Line     int
	Name     string
	Msg      string
}

func (e *MalformedSectionError) Error() string {
	return fmt.Sprintf("%s:%d: section %q: %s", e.Filename, e.Line, e.Name, e.Msg)
}

func (e *MalformedSectionError) Unwrap() error {
	return ErrMalformedSection
}

// UnresolvedReferenceError reports a link to a name that is not in the registry.
type UnresolvedReferenceError struct {
	Section string
	Link    string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("section %q links to unknown section %q", e.Section, e.Link)
}

func (e *UnresolvedReferenceError) Unwrap() error {
	return ErrUnresolvedReference
}
