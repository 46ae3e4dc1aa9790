package resource

import (
	"errors"
	"slices"
)

// Sentinel errors for conditions the CLI branches on.
var (
	// ErrImmutable means the entity forbids edits; no request is made.
	ErrImmutable = errors.New("records of this entity cannot be edited")

	// ErrUnknownField means a filter was set on a field the entity does
	// not declare as searchable.
	ErrUnknownField = errors.New("unknown filter field")

	// ErrNoPage means a page step was requested past either end of the
	// collection.
	ErrNoPage = errors.New("no such page")

	// ErrBadFormat means an export was requested in a format the backend
	// does not produce.
	ErrBadFormat = errors.New("unsupported export format")
)

// Descriptor declares one managed collection. It is configuration as
// data: adding an entity to the client means writing a descriptor, not an
// engine.
type Descriptor struct {
	// Name is the entity name used in commands and messages, e.g.
	// "clients".
	Name string
	// Path is the collection path on the API, e.g. "/clients".
	Path string
	// Search lists the JSON field names filters may target.
	Search []string
	// Immutable forbids updates; invoices are append-only.
	Immutable bool
}

func (d Descriptor) searchable(field string) bool {
	return slices.Contains(d.Search, field)
}
