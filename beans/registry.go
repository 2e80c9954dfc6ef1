// Package beans loads bean type descriptions and serves them as a completion registry.
//
// Descriptions come from .beans files, a small declaration language:
//
//	toplevel type Math "math helpers" {
//	    field PI: double "the ratio of a circle's circumference to its diameter"
//	    method abs(x: double): double
//	}
//	type Person extends Named {
//	    field friends: Person[]
//	    deprecated method age(): int
//	}
//	enum Color { RED, GREEN, BLUE }
//	global field out: PrintStream
//
// or from YAML and JSON files following Schema.
package beans

import (
	"fmt"
	"slices"

	"github.com/rlch/beancomplete"
)

// TypeDef is a declared type.
type TypeDef struct {
	Name        string
	Description string
	TopLevel    bool
	Enum        bool
	Extends     []string

	// Members are the declared members, without inherited ones.
	Members []beancomplete.Entry

	// File, Line and Column locate the declaration. Line and Column are 1-based and zero
	// for YAML and JSON descriptions.
	File   string
	Line   int
	Column int
}

// Source renders the declaration location as file:line:col, or just the file name when the
// line is unknown.
func (t *TypeDef) Source() string {
	if t.Line == 0 {
		return t.File
	}

	return fmt.Sprintf("%s:%d:%d", t.File, t.Line, t.Column)
}

// Registry is an immutable set of bean types. It implements beancomplete.TypeRegistry.
type Registry struct {
	types    map[string]*TypeDef
	members  map[string][]beancomplete.Entry
	topLevel []beancomplete.Entry
	names    []string
}

var _ beancomplete.TypeRegistry = (*Registry)(nil)

// IsTypeName reports whether name is a declared type.
func (r *Registry) IsTypeName(name string) bool {
	_, ok := r.types[name]

	return ok
}

// IsTopLevelTypeName reports whether name is a top-level type or an enum.
func (r *Registry) IsTopLevelTypeName(name string) bool {
	t, ok := r.types[name]

	return ok && (t.TopLevel || t.Enum)
}

// EntriesForType returns the members of name including inherited ones, or the top-level
// entries for beancomplete.TopLevel. The returned slice must not be modified.
func (r *Registry) EntriesForType(name string) []beancomplete.Entry {
	if name == beancomplete.TopLevel {
		return r.topLevel
	}

	return r.members[name]
}

// TypeNames returns all type names in sorted order.
func (r *Registry) TypeNames() []string {
	return slices.Clone(r.names)
}

// Describe returns the declaration of a type.
func (r *Registry) Describe(name string) (TypeDef, bool) {
	t, ok := r.types[name]
	if !ok {
		return TypeDef{}, false
	}

	return *t, true
}

// Len returns the number of types.
func (r *Registry) Len() int {
	return len(r.types)
}
