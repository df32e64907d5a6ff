package sectlink

import (
	"strconv"

	"go.uber.org/zap"
)

// UnresolvedPolicy decides what Link does with a link to an unknown name.
type UnresolvedPolicy int

const (
	// FailOnUnresolved aborts linking with an UnresolvedReferenceError
	FailOnUnresolved UnresolvedPolicy = iota

	// SkipUnresolved drops the link. LinkIDs then no longer matches Links position by position.
	SkipUnresolved
)

func (u UnresolvedPolicy) String() string {
	switch u {
	case FailOnUnresolved:
		return "fail"
	case SkipUnresolved:
		return "skip"
	}
	return "Invalid(" + strconv.Itoa(int(u)) + ")"
}

// Linker resolves the links of every registered section into identifiers.
type Linker struct {
	Policy UnresolvedPolicy
	log    *zap.SugaredLogger
}

func NewLinker(policy UnresolvedPolicy, logger *zap.SugaredLogger) *Linker {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Linker{Policy: policy, log: logger}
}

// Link resolves links with the default policy: any unknown name is an error.
func Link(reg *Registry) (*Registry, error) {
	return NewLinker(FailOnUnresolved, nil).Link(reg)
}

// Link sets LinkIDs on every entry of the registry and returns it.
// The registry must be complete, since a section may link to one declared later.
// On error the registry is left as it was.
func (l *Linker) Link(reg *Registry) (*Registry, error) {

	resolved := make([][]string, reg.Len())

	for i, entry := range reg.Entries() {
		linkIDs := make([]string, 0, len(entry.Links))

		for _, name := range entry.Links {
			target, found := reg.Lookup(name)
			if !found {
				if l.Policy == SkipUnresolved {
					l.log.Warnw("skipping unresolved link", "section", entry.Name, "link", name)
					continue
				}
				return nil, &UnresolvedReferenceError{Section: entry.Name, Link: name}
			}
			linkIDs = append(linkIDs, target.Anchor())
		}

		resolved[i] = linkIDs
	}

	for i, entry := range reg.Entries() {
		entry.LinkIDs = resolved[i]
	}

	return reg, nil
}

func anchorFor(id int) string {
	return "id" + strconv.Itoa(id)
}
