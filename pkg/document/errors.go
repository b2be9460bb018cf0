// Package document implements an in-memory structured-document model: an
// arena of typed nodes addressed by stable ids, text properties carrying
// overlapping range annotations, and a range-queryable annotation index.
package document

import "errors"

var (
	// ErrInvalidArgument indicates a programming-contract violation, e.g.
	// updating an annotation range from a non-property selection or
	// inserting before a reference node that is not an actual child.
	// These fail immediately and loudly to prevent silent data corruption.
	ErrInvalidArgument = errors.New("document: invalid argument")

	// ErrUnsupported indicates an operation invoked on a selection or
	// annotation kind a code path does not handle. Recoverable: callers
	// receive a defined "no result" and keep functioning.
	ErrUnsupported = errors.New("document: unsupported operation")

	// ErrIntegrity indicates corrupted source data, e.g. a cycle among
	// owning references. Fatal for the operation; never silently truncated.
	ErrIntegrity = errors.New("document: data integrity fault")

	// ErrNodeNotFound indicates a node id with no record in the arena.
	ErrNodeNotFound = errors.New("document: node not found")

	// ErrNoSuchProperty indicates a path that does not address a property
	// the node's schema declares.
	ErrNoSuchProperty = errors.New("document: no such property")
)
