package env

import (
	"os"
	"regexp"
	"strings"
)

var variablePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\{\{\s*\$([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// WarnFunc receives a message for every reference that could not be
// resolved.
type WarnFunc func(format string, args ...any)

// Resolver expands ${VAR} and {{$VAR}} references. Variables set on the
// resolver take precedence over the process environment.
type Resolver struct {
	vars     Vars
	warnFunc WarnFunc
}

func NewResolver(vars Vars) *Resolver {
	if vars == nil {
		vars = Vars{}
	}
	return &Resolver{vars: vars}
}

func (r *Resolver) SetWarnFunc(fn WarnFunc) {
	r.warnFunc = fn
}

func (r *Resolver) lookup(name string) (string, bool) {
	if v, ok := r.vars[name]; ok {
		return v, true
	}
	return os.LookupEnv(name)
}

// Resolve expands every reference in input. Unresolved references are
// left as written.
func (r *Resolver) Resolve(input string) string {
	if !strings.ContainsAny(input, "${") {
		return input
	}
	return variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		m := variablePattern.FindStringSubmatch(match)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if v, ok := r.lookup(name); ok {
			return v
		}
		if r.warnFunc != nil {
			r.warnFunc("unresolved environment variable: %s", name)
		}
		return match
	})
}

// Unresolved lists the variable names in input that cannot be resolved.
func (r *Resolver) Unresolved(input string) []string {
	var names []string
	for _, m := range variablePattern.FindAllStringSubmatch(input, -1) {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if _, ok := r.lookup(name); !ok {
			names = append(names, name)
		}
	}
	return names
}
