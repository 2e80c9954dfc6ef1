package beans

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
)

// Builder collects type declarations from any number of sources and resolves them into a
// Registry.
type Builder struct {
	logger  *zap.Logger
	types   map[string]*TypeDef
	globals []beancomplete.Entry
}

// NewBuilder creates an empty Builder. A nil logger discards output.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Builder{
		logger: logger,
		types:  make(map[string]*TypeDef),
	}
}

// IsSchemaFile reports whether path holds a YAML or JSON description rather than .beans
// source.
func IsSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return true
	default:
		return false
	}
}

// AddFile reads and adds a description file.
func (b *Builder) AddFile(path string) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}

	return b.AddSource(path, data)
}

// AddSource adds declarations from data. The format is chosen by the name's extension.
func (b *Builder) AddSource(name string, data []byte) error {
	if IsSchemaFile(name) {
		schema, err := ParseSchema(name, data)
		if err != nil {
			return err
		}

		return b.AddSchema(name, schema)
	}

	file, err := Parse(name, data)
	if err != nil {
		return err
	}

	return b.AddAST(file)
}

// AddAST adds the declarations of a parsed .beans file.
func (b *Builder) AddAST(file *File) error {
	for _, decl := range file.Decls {
		var err error

		switch {
		case decl.Type != nil:
			err = b.addType(typeFromDecl(decl.Type))
		case decl.Enum != nil:
			err = b.addType(enumFromDecl(decl.Enum))
		case decl.Global != nil:
			b.globals = append(b.globals, globalEntry(memberEntry(decl.Global.Member, "")))
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// AddSchema adds the declarations of a decoded YAML or JSON description.
func (b *Builder) AddSchema(source string, schema *Schema) error {
	for i, ts := range schema.Types {
		if ts.Name == "" {
			return fmt.Errorf("%w: %s: type %d has no name", ErrInvalidName, source, i)
		}

		err := b.addType(typeFromSchema(source, ts))
		if err != nil {
			return err
		}
	}

	for _, e := range schemaMembers(schema.Globals, "") {
		b.globals = append(b.globals, globalEntry(e))
	}

	return nil
}

func (b *Builder) addType(t *TypeDef) error {
	if prev, ok := b.types[t.Name]; ok {
		return fmt.Errorf("%w: %s at %s, first declared at %s", ErrDuplicateType, t.Name, t.Source(), prev.Source())
	}

	b.types[t.Name] = t

	return nil
}

// Build resolves inheritance and returns the registry. The Builder may keep being used;
// later sources do not affect registries already built.
func (b *Builder) Build() *Registry {
	r := &Registry{
		types:   make(map[string]*TypeDef, len(b.types)),
		members: make(map[string][]beancomplete.Entry, len(b.types)),
	}

	for name, t := range b.types {
		r.types[name] = t
		r.names = append(r.names, name)
	}

	slices.Sort(r.names)

	for _, name := range r.names {
		r.members[name] = beancomplete.SortEntries(b.collect(name))
	}

	top := slices.Clone(b.globals)

	for _, name := range r.names {
		t := r.types[name]
		if t.TopLevel || t.Enum {
			top = append(top, beancomplete.Entry{
				Name:        t.Name,
				TypeName:    t.Name,
				Description: t.Description,
				Kind:        beancomplete.KindType,
			})
		}
	}

	r.topLevel = beancomplete.SortEntries(top)

	b.logger.Debug("Built bean registry",
		zap.Int("types", len(r.names)),
		zap.Int("topLevel", len(r.topLevel)))

	return r
}

// collect returns the members of name followed by inherited members whose label is not
// already taken. Parents are visited depth-first in declaration order; each type is visited
// once, which cuts inheritance cycles.
func (b *Builder) collect(name string) []beancomplete.Entry {
	var (
		out    []beancomplete.Entry
		seen   = make(map[string]bool)
		labels = make(map[string]bool)
	)

	var visit func(string, string)
	visit = func(n, child string) {
		if seen[n] {
			return
		}

		seen[n] = true

		t, ok := b.types[n]
		if !ok {
			b.logger.Warn("Unknown supertype", zap.String("type", child), zap.String("extends", n))

			return
		}

		for _, e := range t.Members {
			if labels[e.Label()] {
				continue
			}

			labels[e.Label()] = true
			out = append(out, e)
		}

		for _, parent := range t.Extends {
			visit(parent, n)
		}
	}

	visit(name, name)

	return out
}

// Load builds a registry from description files.
func Load(logger *zap.Logger, paths ...string) (*Registry, error) {
	b := NewBuilder(logger)

	for _, p := range paths {
		err := b.AddFile(p)
		if err != nil {
			return nil, err
		}
	}

	return b.Build(), nil
}

func typeFromDecl(d *TypeDecl) *TypeDef {
	t := &TypeDef{
		Name:        d.Name,
		Description: deref(d.Description),
		TopLevel:    d.TopLevel,
		File:        d.Pos.Filename,
		Line:        d.Pos.Line,
		Column:      d.Pos.Column,
	}

	for _, ext := range d.Extends {
		t.Extends = append(t.Extends, ext.String())
	}

	for _, m := range d.Members {
		t.Members = append(t.Members, memberEntry(m, d.Name))
	}

	return t
}

func enumFromDecl(d *EnumDecl) *TypeDef {
	t := &TypeDef{
		Name:        d.Name,
		Description: deref(d.Description),
		Enum:        true,
		File:        d.Pos.Filename,
		Line:        d.Pos.Line,
		Column:      d.Pos.Column,
	}

	for _, c := range d.Constants {
		t.Members = append(t.Members, constantEntry(d.Name, c.Name, deref(c.Description)))
	}

	return t
}

func memberEntry(m *Member, owner string) beancomplete.Entry {
	switch {
	case m.Field != nil:
		return beancomplete.Entry{
			Name:        m.Field.Name,
			TypeName:    m.Field.Type.String(),
			Owner:       owner,
			Description: deref(m.Field.Description),
			Kind:        beancomplete.KindField,
			Deprecated:  m.Deprecated,
		}
	default:
		e := beancomplete.Entry{
			Name:        m.Method.Name,
			TypeName:    m.Method.Returns.String(),
			Owner:       owner,
			Description: deref(m.Method.Description),
			Kind:        beancomplete.KindMethod,
			Deprecated:  m.Deprecated,
		}

		for _, p := range m.Method.Params {
			e.Params = append(e.Params, beancomplete.Param{Name: p.Name, TypeName: p.Type.String()})
		}

		return e
	}
}

func constantEntry(enum, name, description string) beancomplete.Entry {
	return beancomplete.Entry{
		Name:        name,
		TypeName:    enum,
		Owner:       enum,
		Description: description,
		Kind:        beancomplete.KindEnumConstant,
	}
}

// globalEntry turns a global field into a variable entry; global methods stay methods.
func globalEntry(e beancomplete.Entry) beancomplete.Entry {
	if e.Kind == beancomplete.KindField {
		e.Kind = beancomplete.KindVariable
	}

	return e
}

func typeFromSchema(source string, ts TypeSchema) *TypeDef {
	t := &TypeDef{
		Name:        ts.Name,
		Description: ts.Description,
		TopLevel:    ts.TopLevel,
		Enum:        ts.Enum,
		Extends:     ts.Extends,
		Members:     schemaMembers(ts.MembersSchema, ts.Name),
		File:        source,
	}

	for _, c := range ts.Constants {
		t.Members = append(t.Members, constantEntry(ts.Name, c.Name, c.Description))
	}

	return t
}

func schemaMembers(ms MembersSchema, owner string) []beancomplete.Entry {
	out := make([]beancomplete.Entry, 0, len(ms.Fields)+len(ms.Methods))

	for _, f := range ms.Fields {
		out = append(out, beancomplete.Entry{
			Name:        f.Name,
			TypeName:    f.Type,
			Owner:       owner,
			Description: f.Description,
			Kind:        beancomplete.KindField,
			Deprecated:  f.Deprecated,
		})
	}

	for _, m := range ms.Methods {
		e := beancomplete.Entry{
			Name:        m.Name,
			TypeName:    m.Returns,
			Owner:       owner,
			Description: m.Description,
			Kind:        beancomplete.KindMethod,
			Deprecated:  m.Deprecated,
		}

		for _, p := range m.Params {
			e.Params = append(e.Params, beancomplete.Param{Name: p.Name, TypeName: p.Type})
		}

		out = append(out, e)
	}

	return out
}
