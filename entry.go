package beancomplete

import (
	"cmp"
	"slices"
	"strings"
)

// EntryKind classifies a completion entry.
type EntryKind int

// Entry kinds.
const (
	KindField EntryKind = iota
	KindMethod
	KindEnumConstant
	KindType
	KindVariable
)

func (k EntryKind) String() string {
	switch k {
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindEnumConstant:
		return "constant"
	case KindType:
		return "type"
	case KindVariable:
		return "variable"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k EntryKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Param is a method parameter.
type Param struct {
	Name     string `json:"name"`
	TypeName string `json:"type,omitempty"`
}

// Entry is one completion candidate: a field, method, enum constant or type.
type Entry struct {
	// Name is the identifier inserted into the document.
	Name string `json:"name"`

	// TypeName is the field type, the method return type or the enum type. For type
	// entries it is the type itself. Array types end in "[]".
	TypeName string `json:"type,omitempty"`

	// Owner is the declaring type, empty for globals.
	Owner string `json:"owner,omitempty"`

	Description string    `json:"description,omitempty"`
	Kind        EntryKind `json:"kind"`
	Params      []Param   `json:"params,omitempty"`
	Deprecated  bool      `json:"deprecated,omitempty"`
}

// String renders the parameter as "name" or "name: Type".
func (p Param) String() string {
	if p.TypeName == "" {
		return p.Name
	}

	return p.Name + ": " + p.TypeName
}

// ParamCount returns the number of method parameters.
func (e Entry) ParamCount() int {
	return len(e.Params)
}

// Signature renders the name with its parameter list for methods, the bare name otherwise.
func (e Entry) Signature() string {
	if e.Kind != KindMethod {
		return e.Name
	}

	params := make([]string, len(e.Params))
	for i, p := range e.Params {
		params[i] = p.String()
	}

	return e.Name + "(" + strings.Join(params, ", ") + ")"
}

// Label is how the entry renders in a completion popup.
func (e Entry) Label() string {
	sig := e.Signature()
	if e.Kind == KindType || e.TypeName == "" {
		return sig
	}

	return sig + " : " + e.TypeName
}

// CompareEntries orders entries alphabetically by label, ignoring case first.
func CompareEntries(a, b Entry) int {
	la, lb := a.Label(), b.Label()

	return cmp.Or(
		strings.Compare(strings.ToLower(la), strings.ToLower(lb)),
		strings.Compare(la, lb),
		strings.Compare(a.Owner, b.Owner),
		cmp.Compare(a.Kind, b.Kind),
	)
}

// SortEntries sorts entries in display order and removes duplicates, in place.
func SortEntries(entries []Entry) []Entry {
	slices.SortFunc(entries, CompareEntries)

	return slices.CompactFunc(entries, func(a, b Entry) bool {
		return CompareEntries(a, b) == 0
	})
}

// Result is the outcome of a completion request: the offset where the replacement starts
// and the sorted candidates.
type Result struct {
	Offset  int
	Entries []Entry
}

// Equal reports whether both results have the same offset and entries.
func (r Result) Equal(o Result) bool {
	return r.Offset == o.Offset && slices.EqualFunc(r.Entries, o.Entries, func(a, b Entry) bool {
		return CompareEntries(a, b) == 0 && a.Description == b.Description
	})
}

// Names returns the entry names in order.
func (r Result) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Name
	}

	return names
}

// Empty reports whether there are no candidates.
func (r Result) Empty() bool {
	return len(r.Entries) == 0
}
