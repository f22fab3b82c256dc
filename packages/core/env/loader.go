package env

import (
	"os"
	"strings"
)

// Vars is a set of environment variables keyed by name.
type Vars map[string]string

// LoadSystemEnv returns the process variables whose name starts with
// prefix, with the prefix removed. An empty prefix returns everything.
func LoadSystemEnv(prefix string) Vars {
	result := make(Vars)
	for _, e := range os.Environ() {
		key, value, found := strings.Cut(e, "=")
		if !found {
			continue
		}
		if prefix == "" {
			result[key] = value
		} else if len(key) > len(prefix) && strings.HasPrefix(key, prefix) {
			result[key[len(prefix):]] = value
		}
	}
	return result
}

// Merge combines sources left to right; later sources win.
func Merge(sources ...Vars) Vars {
	result := make(Vars)
	for _, src := range sources {
		for k, v := range src {
			result[k] = v
		}
	}
	return result
}

// First returns the first non-empty value among names.
func (v Vars) First(names ...string) (string, bool) {
	for _, name := range names {
		if val := v[name]; val != "" {
			return val, true
		}
	}
	return "", false
}
