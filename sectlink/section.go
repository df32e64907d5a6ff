package sectlink

// Section is one occurrence of a section in the source document, exactly as
// declared. The same name may appear in several Sections.
type Section struct {
	Name    string
	Type    string
	Links   []string
	Content string

	// LineNumber is the 1-based line of the header in the source
	LineNumber int
}

// Entry is the canonical, registered version of a section.
// Only the first occurrence of a name becomes an Entry.
type Entry struct {
	Section

	// ID is assigned in order of first appearance, starting at 1
	ID int

	// LinkIDs holds the resolved identifiers of Links, filled by Link
	LinkIDs []string
}

// Anchor returns the identifier used in the rendered markup, like "id3".
func (e *Entry) Anchor() string {
	return anchorFor(e.ID)
}

// Registry maps section names to their entries, keeping the order in which
// names were first seen. Ids are dense: 1..Len().
type Registry struct {
	entries []*Entry
	byName  map[string]*Entry
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Entry),
	}
}

// Register adds the section if its name is not already known and returns the
// entry for the name. The boolean is false when the name was already present,
// in which case the existing entry is returned untouched.
func (r *Registry) Register(s Section) (*Entry, bool) {
	if e, ok := r.byName[s.Name]; ok {
		return e, false
	}

	e := &Entry{
		Section: s,
		ID:      len(r.entries) + 1,
	}
	r.entries = append(r.entries, e)
	r.byName[s.Name] = e

	return e, true
}

// Lookup returns the entry registered with name.
func (r *Registry) Lookup(name string) (*Entry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// Entries returns the entries in id order. The slice is shared with the registry.
func (r *Registry) Entries() []*Entry {
	return r.entries
}

func (r *Registry) Len() int {
	return len(r.entries)
}
