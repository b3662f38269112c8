// Package source tracks the minimal positional bookkeeping the contract
// engine needs to attach a diagnostic span to a label: a set of named
// in-memory buffers and byte ranges within them. It does not read or
// watch files on disk — that belongs to whatever front end decodes a
// document (see internal/cexpr, internal/jsonvalue).
package source

// FileID identifies one buffer registered with a FileSet.
type FileID uint32

// NoFileID is the zero value, used for spans that are not tied to any
// particular source (synthetic contracts, for example).
const NoFileID FileID = 0

// LineCol is a human-readable 1-based line/column position.
type LineCol struct {
	Line uint32
	Col  uint32
}
