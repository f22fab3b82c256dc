package env

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadDotEnv reads a .env file such as the one holding TEST_CONSUMER_KEY
// and friends for the integration suite. Nothing is exported to the
// process environment; pass the result to NewResolver or FromVars.
func LoadDotEnv(path string) (Vars, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open env file: %w", err)
	}
	defer file.Close()

	vars, err := ParseDotEnv(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vars, nil
}

// ParseDotEnv parses KEY=value lines. Supported forms:
//
//	KEY=value             # trailing comment
//	export KEY=value
//	KEY='literal ${NOT_EXPANDED}'
//	KEY="line\nbreak, ${EARLIER_KEY} expanded"
//
// Unquoted and double-quoted values expand ${VAR} from keys defined
// earlier in the file, then from the process environment. Unresolved
// references are kept as written.
func ParseDotEnv(r io.Reader) (Vars, error) {
	vars := make(Vars)
	resolver := NewResolver(vars)
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, raw, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		value, err := parseValue(strings.TrimSpace(raw), resolver)
		if err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", lineNo, key, err)
		}
		vars[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading env file: %w", err)
	}
	return vars, nil
}

func parseValue(raw string, resolver *Resolver) (string, error) {
	if raw == "" {
		return "", nil
	}
	switch raw[0] {
	case '\'':
		end := strings.IndexByte(raw[1:], '\'')
		if end < 0 {
			return "", fmt.Errorf("unterminated single quote")
		}
		return raw[1 : end+1], nil
	case '"':
		value, ok := unquoteDouble(raw[1:])
		if !ok {
			return "", fmt.Errorf("unterminated double quote")
		}
		return resolver.Resolve(value), nil
	}
	if i := strings.Index(raw, " #"); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	return resolver.Resolve(raw), nil
}

// unquoteDouble reads up to the closing quote, handling \n, \t, \" and \\.
func unquoteDouble(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			return b.String(), true
		case c == '\\' && i+1 < len(s):
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", false
}
