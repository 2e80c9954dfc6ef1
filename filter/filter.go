// Package filter hides completion entries matching user-supplied expressions.
//
// Expressions use the expr language (https://expr-lang.org) over Env, for example
//
//	Deprecated
//	Name startsWith "_"
//	Owner == "Object" && Kind == "method"
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
)

// ErrCompile is returned when a hide expression does not compile.
var ErrCompile = errors.New("filter: invalid expression")

// Env is what a hide expression sees for one entry.
type Env struct {
	Name        string
	Type        string
	Owner       string
	Kind        string
	Description string
	Params      int
	Deprecated  bool
}

// EnvFor builds the expression environment for an entry.
func EnvFor(e beancomplete.Entry) Env {
	return Env{
		Name:        e.Name,
		Type:        e.TypeName,
		Owner:       e.Owner,
		Kind:        e.Kind.String(),
		Description: e.Description,
		Params:      e.ParamCount(),
		Deprecated:  e.Deprecated,
	}
}

type rule struct {
	source  string
	program *vm.Program
}

// Filter is a compiled set of hide expressions. It is safe for concurrent use.
type Filter struct {
	rules  []rule
	logger *zap.Logger
}

// Compile compiles hide expressions. Blank expressions are ignored.
func Compile(exprs []string, logger *zap.Logger) (*Filter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := &Filter{logger: logger}

	for _, src := range exprs {
		if strings.TrimSpace(src) == "" {
			continue
		}

		program, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrCompile, src, err)
		}

		f.rules = append(f.rules, rule{source: src, program: program})
	}

	return f, nil
}

// Len returns the number of compiled expressions.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}

	return len(f.rules)
}

// Keep reports whether e should be offered: false when any expression evaluates to true.
// An expression that fails at runtime does not hide the entry.
func (f *Filter) Keep(e beancomplete.Entry) bool {
	if f == nil || len(f.rules) == 0 {
		return true
	}

	env := EnvFor(e)

	for _, r := range f.rules {
		out, err := expr.Run(r.program, env)
		if err != nil {
			f.logger.Debug("Hide expression failed", zap.String("expression", r.source), zap.Error(err))

			continue
		}

		if hide, ok := out.(bool); ok && hide {
			return false
		}
	}

	return true
}

// Option returns the Autocompleter option applying the filter, or nil when the filter
// hides nothing.
func (f *Filter) Option() beancomplete.Option {
	if f.Len() == 0 {
		return nil
	}

	return beancomplete.WithEntryFilter(f.Keep)
}
