// Package beancomplete completes member-access chains in scripts that use bean types.
//
// Given a cursor position, an Autocompleter reads the buffer backwards to recover the
// dotted chain before the cursor, substitutes variables whose types it has inferred from
// earlier assignments, walks the chain through a TypeRegistry and returns the members of
// the final type.
package beancomplete

import (
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

// Default resolution budgets.
const (
	DefaultMaxDepth         = 100
	DefaultMaxSubstitutions = 10
)

// Option configures an Autocompleter.
type Option func(*Autocompleter)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Autocompleter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxDepth sets the recursion budget for resolving variables through other variables.
func WithMaxDepth(n int) Option {
	return func(a *Autocompleter) {
		if n > 0 {
			a.maxDepth = n
		}
	}
}

// WithMaxSubstitutions sets the number of variable substitution rounds per resolution.
func WithMaxSubstitutions(n int) Option {
	return func(a *Autocompleter) {
		if n > 0 {
			a.maxSubstitutions = n
		}
	}
}

// WithMatcher sets how a typed prefix selects entries.
func WithMatcher(m Matcher) Option {
	return func(a *Autocompleter) {
		if m != nil {
			a.matcher = m
		}
	}
}

// WithEntryFilter drops entries for which keep returns false.
func WithEntryFilter(keep func(Entry) bool) Option {
	return func(a *Autocompleter) {
		a.keep = keep
	}
}

// Autocompleter produces completions for one editing session. It owns the session's map of
// inferred variable types, so calls on one Autocompleter must not run concurrently.
type Autocompleter struct {
	registry TypeRegistry
	logger   *zap.Logger

	// known maps a variable name to the expression most recently assigned to it.
	known map[string]*Expression

	maxDepth         int
	maxSubstitutions int
	matcher          Matcher
	keep             func(Entry) bool
}

// New creates an Autocompleter backed by registry.
func New(registry TypeRegistry, opts ...Option) *Autocompleter {
	a := &Autocompleter{
		registry:         registry,
		logger:           zap.NewNop(),
		known:            make(map[string]*Expression),
		maxDepth:         DefaultMaxDepth,
		maxSubstitutions: DefaultMaxSubstitutions,
		matcher:          PrefixMatcher,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	return a
}

// Expression reads the member-access chain ending at the stream's position.
func (a *Autocompleter) Expression(stream CharStream) *Expression {
	return scanExpression(stream)
}

// scanExpression consumes characters from the stream into segments until a delimiter ends
// the chain. The delimiter itself is left in the stream.
func scanExpression(stream CharStream) *Expression {
	expr := NewExpression()
	seg := expr.Segment(0)

	for {
		ch, ok := stream.Peek()
		if !ok {
			break
		}

		if seg.IsDefinitelyInvalid() {
			break
		}

		if seg.IsValid() && (isDelimiter(ch) || seg.delimitedBySpace(ch)) {
			break
		}

		stream.Next()

		if ch == '.' && seg.IsValid() {
			seg = &Segment{}
			expr.Push(seg)

			continue
		}

		seg.Prepend(ch)
	}

	return expr
}

// isDelimiter reports whether ch ends a chain when every bracket in the current segment is
// closed. Opening brackets only reach this check in that state.
func isDelimiter(ch rune) bool {
	switch ch {
	case ';', ',', '=', '+', '-', '*', '/', '%', '!', '&', '|', '^', '~', '<', '>', '?', ':',
		'{', '}', '(', '[':
		return true
	default:
		return false
	}
}

// ResolveType walks expr through the registry and returns the type it evaluates to, or ""
// when any step is unknown.
func (a *Autocompleter) ResolveType(expr *Expression) string {
	return a.resolve(expr, a.maxDepth)
}

func (a *Autocompleter) resolve(expr *Expression, depth int) string {
	if depth <= 0 {
		a.logger.Debug("Resolution depth exhausted", zap.String("expression", expr.String()))

		return ""
	}

	expr = expr.MakeSubstitutions(a.maxSubstitutions, a.known)

	first := expr.Segment(0)
	name := first.Value()

	var typ string

	switch {
	case first.IsRawArray():
		typ = ArrayTypeName
	case name != "" && a.registry.IsTopLevelTypeName(name):
		typ = name
	default:
		bound, ok := a.known[name]
		if !ok || name == "" {
			return ""
		}

		typ = a.resolve(bound, depth-1)
		if first.IsArrayElement() {
			typ = ElementType(typ)
		}
	}

	for i := 1; i < expr.Len(); i++ {
		if typ == "" {
			return ""
		}

		seg := expr.Segment(i)

		member, ok := a.member(typ, seg.Value())
		if !ok {
			return ""
		}

		typ = member.TypeName
		if seg.IsArrayElement() {
			typ = ElementType(typ)
		}
	}

	return typ
}

// Member finds the entry called name among the members of typ. Array types look in the
// members registered under ArrayTypeName. An empty typ has no members.
func (a *Autocompleter) Member(typ, name string) (Entry, bool) {
	return a.member(typ, name)
}

func (a *Autocompleter) member(typ, name string) (Entry, bool) {
	if typ == "" || name == "" {
		return Entry{}, false
	}

	for _, e := range a.registry.EntriesForType(memberType(typ)) {
		if e.Name == name {
			return e, true
		}
	}

	return Entry{}, false
}

// Registry returns the registry the Autocompleter resolves against.
func (a *Autocompleter) Registry() TypeRegistry {
	return a.registry
}

// isKnownType reports whether typ can be completed.
func (a *Autocompleter) isKnownType(typ string) bool {
	if typ == "" {
		return false
	}

	if typ == ArrayTypeName || IsArrayType(typ) {
		return true
	}

	return a.registry.IsTypeName(typ)
}

// entries returns the members of typ (or the top-level entries) that match prefix and pass
// the entry filter.
func (a *Autocompleter) entries(typ, prefix string) []Entry {
	all := a.registry.EntriesForType(memberType(typ))

	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if prefix != "" && !a.matcher(prefix, e.Name) {
			continue
		}

		if a.keep != nil && !a.keep(e) {
			continue
		}

		out = append(out, e)
	}

	return SortEntries(out)
}

// MatchingEntries completes the members of the chain before the cursor, which sits right
// after the member-access dot as it does when the dot has just been typed. A stream that
// starts before the dot is accepted too. The replacement starts at the cursor. Unknown
// chains produce an empty result.
func (a *Autocompleter) MatchingEntries(cursorPos int, stream CharStream) (Result, error) {
	if cursorPos < 0 {
		return Result{}, fmt.Errorf("%w: negative cursor position %d", ErrInvalidArgument, cursorPos)
	}

	if ch, ok := stream.Peek(); ok && ch == '.' {
		stream.Next()
	}

	expr := a.Expression(stream)

	typ := a.ResolveType(expr)
	if !a.isKnownType(typ) {
		return Result{Offset: cursorPos}, nil
	}

	return Result{Offset: cursorPos, Entries: a.entries(typ, "")}, nil
}

// EntriesForIncompleteString completes the identifier being typed at the cursor. After a
// dot it offers the members of the chain before the dot; otherwise it offers top-level
// entries. The replacement starts where the identifier starts.
func (a *Autocompleter) EntriesForIncompleteString(cursorPos int, stream CharStream) (Result, error) {
	if cursorPos < 0 {
		return Result{}, fmt.Errorf("%w: negative cursor position %d", ErrInvalidArgument, cursorPos)
	}

	prefix := readPrefix(stream)

	offset := cursorPos - len([]rune(prefix))
	if offset < 0 {
		return Result{}, fmt.Errorf("%w: prefix %q longer than cursor position %d", ErrInvalidArgument, prefix, cursorPos)
	}

	skipSpace(stream)

	if ch, ok := stream.Peek(); ok && ch == '.' {
		stream.Next()

		typ := a.ResolveType(a.Expression(stream))
		if !a.isKnownType(typ) {
			return Result{Offset: offset}, nil
		}

		return Result{Offset: offset, Entries: a.entries(typ, prefix)}, nil
	}

	return Result{Offset: offset, Entries: a.entries(TopLevel, prefix)}, nil
}

// readPrefix consumes the identifier characters directly before the stream position.
func readPrefix(stream CharStream) string {
	var rev []rune

	for {
		ch, ok := stream.Peek()
		if !ok || !IsIdentifierChar(ch) {
			break
		}

		stream.Next()
		rev = append(rev, ch)
	}

	return reverse(rev)
}

func skipSpace(stream CharStream) {
	for {
		ch, ok := stream.Peek()
		if !ok || !unicode.IsSpace(ch) {
			return
		}

		stream.Next()
	}
}

func reverse(rev []rune) string {
	out := make([]rune, len(rev))
	for i, r := range rev {
		out[len(rev)-1-i] = r
	}

	return string(out)
}

// Bind records that name holds the value of expr, replacing any previous binding.
func (a *Autocompleter) Bind(name string, expr *Expression) {
	name = strings.TrimSpace(name)
	if name == "" || expr == nil {
		return
	}

	a.known[name] = expr
	a.logger.Debug("Bound variable", zap.String("name", name), zap.String("expression", expr.String()))
}

// Variables returns a copy of the inferred variable bindings.
func (a *Autocompleter) Variables() map[string]*Expression {
	out := make(map[string]*Expression, len(a.known))
	for k, v := range a.known {
		out[k] = v
	}

	return out
}

// TypeOf resolves the type of a bound variable, or "" when it is unbound or unresolvable.
func (a *Autocompleter) TypeOf(name string) string {
	expr, ok := a.known[name]
	if !ok {
		return ""
	}

	return a.resolve(expr, a.maxDepth-1)
}
