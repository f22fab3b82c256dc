package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	t.Setenv("TWITTEROAUTH_TEST_SECRET", "from-os")

	tests := []struct {
		name     string
		input    string
		vars     Vars
		expected string
	}{
		{"no references", "plain-value", nil, "plain-value"},
		{"dollar brace", "${CONSUMER_KEY}", Vars{"CONSUMER_KEY": "ck"}, "ck"},
		{"mustache", "{{ $CONSUMER_KEY }}", Vars{"CONSUMER_KEY": "ck"}, "ck"},
		{"process environment", "${TWITTEROAUTH_TEST_SECRET}", nil, "from-os"},
		{"vars win over os", "${TWITTEROAUTH_TEST_SECRET}", Vars{"TWITTEROAUTH_TEST_SECRET": "local"}, "local"},
		{"embedded", "http://${HOST}:8080", Vars{"HOST": "proxy"}, "http://proxy:8080"},
		{"unresolved kept", "${TWITTEROAUTH_SURELY_UNSET_VAR}", nil, "${TWITTEROAUTH_SURELY_UNSET_VAR}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewResolver(tt.vars).Resolve(tt.input))
		})
	}
}

func TestResolver_WarnsOnUnresolved(t *testing.T) {
	var warnings []string
	r := NewResolver(nil)
	r.SetWarnFunc(func(format string, args ...any) {
		warnings = append(warnings, format)
	})

	r.Resolve("${TWITTEROAUTH_SURELY_UNSET_VAR}")
	assert.Len(t, warnings, 1)
	assert.Equal(t, []string{"TWITTEROAUTH_SURELY_UNSET_VAR"}, r.Unresolved("a ${TWITTEROAUTH_SURELY_UNSET_VAR} b"))
	assert.Empty(t, NewResolver(Vars{"A": "1"}).Unresolved("${A}"))
}

func TestLoadSystemEnv(t *testing.T) {
	t.Setenv("TWITTEROAUTH_CONSUMER_KEY", "ck")
	t.Setenv("TWITTEROAUTH_TIMEOUT", "9")

	vars := LoadSystemEnv("TWITTEROAUTH_")
	assert.Equal(t, "ck", vars["CONSUMER_KEY"])
	assert.Equal(t, "9", vars["TIMEOUT"])
	assert.NotContains(t, vars, "TWITTEROAUTH_CONSUMER_KEY")

	all := LoadSystemEnv("")
	assert.Equal(t, "ck", all["TWITTEROAUTH_CONSUMER_KEY"])
}

func TestVars_FirstAndMerge(t *testing.T) {
	v := Merge(Vars{"A": "1", "B": ""}, Vars{"B": "2"}, nil)
	assert.Equal(t, Vars{"A": "1", "B": "2"}, v)

	got, ok := Vars{"X": "", "Y": "y"}.First("X", "Y")
	assert.True(t, ok)
	assert.Equal(t, "y", got)

	_, ok = Vars{}.First("X")
	assert.False(t, ok)
}
