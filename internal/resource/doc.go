// Package resource implements the generic query engine behind every
// managed collection.
//
// # Overview
//
// One Engine is instantiated per entity from a Descriptor, which is pure
// data: the collection path, the set of searchable fields, and whether
// records are immutable. The engine owns the list state (items, counts,
// page, loading flag, last error) and the filter model.
//
// Filters live in two copies. The draft is what the operator edits, one
// field at a time, and editing it never touches the network. Applying
// copies the draft over the applied set, resets to the first page and
// fetches; clearing empties both copies at once. Requests are always built
// from the applied copy, so a half-edited draft can never leak into a
// query.
//
// Queries put the searchable fields JSON-encoded under a single "search"
// parameter, always carry "page" and "limit", and carry "startDate",
// "endDate", "orderBy" and "orderDirection" only when set. Blank values
// are stripped, never sent as empty parameters.
package resource
