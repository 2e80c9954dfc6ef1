package beancomplete

import "strings"

// TopLevel is the type name that asks a TypeRegistry for entries usable without a receiver.
const TopLevel = ""

// ArrayTypeName is the type of array literals such as []. Array-typed values ("T[]")
// complete with the members registered under this name.
const ArrayTypeName = "Array"

// TypeRegistry answers questions about the known bean types.
type TypeRegistry interface {
	// IsTypeName reports whether name is a known type.
	IsTypeName(name string) bool

	// IsTopLevelTypeName reports whether name can be referenced without a receiver,
	// like a class with static members or an enum.
	IsTopLevelTypeName(name string) bool

	// EntriesForType returns the sorted members of a type, or the top-level entries
	// when name is TopLevel. Unknown types return nil.
	EntriesForType(name string) []Entry
}

// IsArrayType reports whether a type name denotes an array.
func IsArrayType(name string) bool {
	return strings.HasSuffix(name, "[]")
}

// ElementType strips one trailing "[]" from an array type name.
func ElementType(name string) string {
	return strings.TrimSuffix(name, "[]")
}

// memberType returns the registry name whose members apply to values of typ.
func memberType(typ string) string {
	if IsArrayType(typ) {
		return ArrayTypeName
	}

	return typ
}
