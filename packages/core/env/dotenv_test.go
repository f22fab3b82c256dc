package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
	}{
		{
			name:    "simple key-value",
			content: "TEST_ACCESS_TOKEN=12345-abcde",
			expected: map[string]string{
				"TEST_ACCESS_TOKEN": "12345-abcde",
			},
		},
		{
			name:    "multiple keys",
			content: "KEY1=value1\nKEY2=value2\nKEY3=value3",
			expected: map[string]string{
				"KEY1": "value1",
				"KEY2": "value2",
				"KEY3": "value3",
			},
		},
		{
			name:    "double quoted value",
			content: `API_KEY="secret with spaces"`,
			expected: map[string]string{
				"API_KEY": "secret with spaces",
			},
		},
		{
			name:    "single quoted value",
			content: `API_KEY='secret with spaces'`,
			expected: map[string]string{
				"API_KEY": "secret with spaces",
			},
		},
		{
			name:    "comments are skipped",
			content: "# This is a comment\nAPI_KEY=secret",
			expected: map[string]string{
				"API_KEY": "secret",
			},
		},
		{
			name:    "empty lines are skipped",
			content: "KEY1=value1\n\n\nKEY2=value2",
			expected: map[string]string{
				"KEY1": "value1",
				"KEY2": "value2",
			},
		},
		{
			name:    "whitespace trimmed",
			content: "  API_KEY  =  secret  ",
			expected: map[string]string{
				"API_KEY": "secret",
			},
		},
		{
			name:    "value with equals sign",
			content: "TEST_OAUTH_CALLBACK=https://example.com/cb?state=a=b",
			expected: map[string]string{
				"TEST_OAUTH_CALLBACK": "https://example.com/cb?state=a=b",
			},
		},
		{
			name:    "export prefix",
			content: "export TEST_CONSUMER_KEY=abc\nexport TEST_CONSUMER_SECRET='s e c'",
			expected: map[string]string{
				"TEST_CONSUMER_KEY":    "abc",
				"TEST_CONSUMER_SECRET": "s e c",
			},
		},
		{
			name:     "empty file",
			content:  "",
			expected: map[string]string{},
		},
		{
			name:     "only comments",
			content:  "# comment 1\n# comment 2",
			expected: map[string]string{},
		},
		{
			name:    "inline comment stripped",
			content: "API_KEY=secret # consumer key from the developer portal",
			expected: map[string]string{
				"API_KEY": "secret",
			},
		},
		{
			name:    "hash inside quotes kept",
			content: `API_KEY="secret # kept"`,
			expected: map[string]string{
				"API_KEY": "secret # kept",
			},
		},
		{
			name:    "double quote escapes",
			content: `GREETING="line one\nsay \"hi\" \\ done"`,
			expected: map[string]string{
				"GREETING": "line one\nsay \"hi\" \\ done",
			},
		},
		{
			name:    "earlier keys expanded",
			content: "TEST_CURLOPT_PROXY=proxy.local\nPROXY_URL=http://${TEST_CURLOPT_PROXY}:3128\nQUOTED=\"${TEST_CURLOPT_PROXY}\"",
			expected: map[string]string{
				"TEST_CURLOPT_PROXY": "proxy.local",
				"PROXY_URL":          "http://proxy.local:3128",
				"QUOTED":             "proxy.local",
			},
		},
		{
			name:    "single quotes are literal",
			content: "A=1\nB='${A}'",
			expected: map[string]string{
				"A": "1",
				"B": "${A}",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Create temp file
			tmpDir := t.TempDir()
			envFile := filepath.Join(tmpDir, ".env")
			if err := os.WriteFile(envFile, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write temp file: %v", err)
			}

			result, err := LoadDotEnv(envFile)
			if err != nil {
				t.Fatalf("LoadDotEnv() error = %v", err)
			}

			if len(result) != len(tt.expected) {
				t.Errorf("LoadDotEnv() returned %d keys, want %d", len(result), len(tt.expected))
			}

			for k, v := range tt.expected {
				if got, ok := result[k]; !ok {
					t.Errorf("LoadDotEnv() missing key %q", k)
				} else if got != v {
					t.Errorf("LoadDotEnv()[%q] = %q, want %q", k, got, v)
				}
			}
		})
	}
}

func TestLoadDotEnvFileNotFound(t *testing.T) {
	_, err := LoadDotEnv("/nonexistent/path/.env")
	if err == nil {
		t.Error("LoadDotEnv() expected error for non-existent file")
	}
}

func TestParseDotEnv_ProcessEnvFallback(t *testing.T) {
	t.Setenv("TWITTEROAUTH_DOTENV_HOST", "api.example.com")

	vars, err := ParseDotEnv(strings.NewReader("TWITTEROAUTH_HOST=https://${TWITTEROAUTH_DOTENV_HOST}\nMISSING=${TWITTEROAUTH_SURELY_UNSET_VAR}"))
	if err != nil {
		t.Fatalf("ParseDotEnv() error = %v", err)
	}
	if got := vars["TWITTEROAUTH_HOST"]; got != "https://api.example.com" {
		t.Errorf("TWITTEROAUTH_HOST = %q, want %q", got, "https://api.example.com")
	}
	if got := vars["MISSING"]; got != "${TWITTEROAUTH_SURELY_UNSET_VAR}" {
		t.Errorf("MISSING = %q, want reference kept", got)
	}
}

func TestParseDotEnv_Unterminated(t *testing.T) {
	for _, content := range []string{`A="open`, "A='open"} {
		if _, err := ParseDotEnv(strings.NewReader(content)); err == nil {
			t.Errorf("ParseDotEnv(%q) expected error", content)
		}
	}
}
