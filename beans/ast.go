package beans

import "github.com/alecthomas/participle/v2/lexer"

// File is a parsed .beans file.
type File struct {
	Decls []*Decl `parser:"@@*"`
}

// Decl is one top-level declaration.
type Decl struct {
	Type   *TypeDecl   `parser:"  @@"`
	Enum   *EnumDecl   `parser:"| @@"`
	Global *GlobalDecl `parser:"| @@"`
}

// TypeDecl declares a bean type and its members.
//
//	toplevel type Math extends Object "math helpers" { ... }
type TypeDecl struct {
	Pos lexer.Position

	TopLevel    bool       `parser:"@'toplevel'? 'type'"`
	Name        string     `parser:"@Ident"`
	Extends     []*TypeRef `parser:"( 'extends' @@ ( ',' @@ )* )?"`
	Description *string    `parser:"@String?"`
	Members     []*Member  `parser:"'{' @@* '}'"`
}

// EnumDecl declares an enum. Enums are always top-level.
type EnumDecl struct {
	Pos lexer.Position

	Name        string      `parser:"'enum' @Ident"`
	Description *string     `parser:"@String?"`
	Constants   []*Constant `parser:"'{' ( @@ ','? )* '}'"`
}

// Constant is an enum constant.
type Constant struct {
	Name        string  `parser:"@Ident"`
	Description *string `parser:"@String?"`
}

// GlobalDecl declares a field or method usable without a receiver.
type GlobalDecl struct {
	Pos lexer.Position

	Member *Member `parser:"'global' @@"`
}

// Member is a field or method of a type.
type Member struct {
	Deprecated bool        `parser:"@'deprecated'?"`
	Field      *FieldDecl  `parser:"( @@"`
	Method     *MethodDecl `parser:"| @@ )"`
}

// FieldDecl is `field name: Type "description"`.
type FieldDecl struct {
	Name        string   `parser:"'field' @Ident"`
	Type        *TypeRef `parser:"':' @@"`
	Description *string  `parser:"@String?"`
}

// MethodDecl is `method name(a: A, b): Ret "description"`. A missing return type means the
// method returns nothing useful to complete on.
type MethodDecl struct {
	Name        string       `parser:"'method' @Ident '('"`
	Params      []*ParamDecl `parser:"( @@ ( ',' @@ )* )? ')'"`
	Returns     *TypeRef     `parser:"( ':' @@ )?"`
	Description *string      `parser:"@String?"`
}

// ParamDecl is a method parameter with an optional type.
type ParamDecl struct {
	Name string   `parser:"@Ident"`
	Type *TypeRef `parser:"( ':' @@ )?"`
}

// TypeRef is a possibly qualified type name with array suffixes, e.g. java.util.List[].
type TypeRef struct {
	Name string `parser:"@Ident ( @'.' @Ident )* @Array*"`
}

// String returns the type name, or "" for a nil reference.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}

	return t.Name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
