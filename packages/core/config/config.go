package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/twitteroauth/packages/core/env"
	"github.com/abdul-hamid-achik/twitteroauth/packages/http"
)

// ErrMissingConsumer is returned by Validate when the consumer key pair is
// incomplete.
var ErrMissingConsumer = errors.New("consumer key and consumer secret are required")

// Proxy mirrors http.Proxy for config files.
type Proxy struct {
	Host         string `json:"host,omitempty" yaml:"host,omitempty"`
	Port         int    `json:"port,omitempty" yaml:"port,omitempty"`
	UserPassword string `json:"userPassword,omitempty" yaml:"userPassword,omitempty"` // user:password
}

// Config represents the twitteroauth configuration
type Config struct {
	ConsumerKey       string `json:"consumerKey,omitempty" yaml:"consumerKey,omitempty"`
	ConsumerSecret    string `json:"consumerSecret,omitempty" yaml:"consumerSecret,omitempty"`
	AccessToken       string `json:"accessToken,omitempty" yaml:"accessToken,omitempty"`
	AccessTokenSecret string `json:"accessTokenSecret,omitempty" yaml:"accessTokenSecret,omitempty"`
	Callback          string `json:"callback,omitempty" yaml:"callback,omitempty"`

	Host       string `json:"host,omitempty" yaml:"host,omitempty"`
	UploadHost string `json:"uploadHost,omitempty" yaml:"uploadHost,omitempty"`
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	UserAgent  string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	// Headers are sent with every request. They are not signed.
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`

	Proxy             *Proxy `json:"proxy,omitempty" yaml:"proxy,omitempty"`
	ConnectionTimeout int    `json:"connectionTimeout,omitempty" yaml:"connectionTimeout,omitempty"` // seconds
	Timeout           int    `json:"timeout,omitempty" yaml:"timeout,omitempty"`                     // seconds
	ValidateSSL       *bool  `json:"validateSSL,omitempty" yaml:"validateSSL,omitempty"`
	Verbose           *bool  `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor           *bool  `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetValidateSSL returns the validate SSL setting, defaulting to true
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}

func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

func (c *Config) GetConnectionTimeout() time.Duration {
	return time.Duration(c.ConnectionTimeout) * time.Second
}

func (c *Config) GetTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

// GetProxy returns the transport proxy, or nil when none is configured.
func (c *Config) GetProxy() *http.Proxy {
	if c.Proxy == nil || c.Proxy.Host == "" {
		return nil
	}
	return &http.Proxy{
		Host:         c.Proxy.Host,
		Port:         c.Proxy.Port,
		UserPassword: c.Proxy.UserPassword,
	}
}

// HasAccessToken reports whether a user token pair is configured.
func (c *Config) HasAccessToken() bool {
	return c.AccessToken != "" && c.AccessTokenSecret != ""
}

func (c *Config) Validate() error {
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return ErrMissingConsumer
	}
	if c.Proxy != nil && c.Proxy.Port < 0 {
		return fmt.Errorf("invalid proxy port %d", c.Proxy.Port)
	}
	return nil
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".twitteroauth.yaml",
	".twitteroauth.yml",
	".twitteroauth.json",
}

// LoadConfig loads configuration from the specified path or searches for
// config files. References in string values are expanded with r, which
// may be nil to use the process environment only.
func LoadConfig(path string, r *env.Resolver) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path, r)
	}

	return FindAndLoadConfig(".", r)
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string, r *env.Resolver) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath, r)
		}
	}

	return DefaultConfig(), nil
}

// loadConfigFromFile reads a YAML or JSON file over the defaults and
// expands ${VAR} references in its string values.
func loadConfigFromFile(path string, r *env.Resolver) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, config)
	default:
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if r == nil {
		r = env.NewResolver(nil)
	}
	config.expand(r)
	return config, nil
}

// expand resolves references in string values. A value that still holds
// an unresolved reference is treated as unset so that an environment
// override can fill it.
func (c *Config) expand(r *env.Resolver) {
	fields := []*string{
		&c.ConsumerKey, &c.ConsumerSecret, &c.AccessToken, &c.AccessTokenSecret,
		&c.Callback, &c.Host, &c.UploadHost, &c.APIVersion, &c.UserAgent,
	}
	if c.Proxy != nil {
		fields = append(fields, &c.Proxy.Host, &c.Proxy.UserPassword)
	}
	for name, value := range c.Headers {
		if len(r.Unresolved(value)) > 0 {
			delete(c.Headers, name)
			continue
		}
		c.Headers[name] = r.Resolve(value)
	}
	for _, s := range fields {
		resolved := r.Resolve(*s)
		if len(r.Unresolved(*s)) > 0 {
			resolved = ""
		}
		*s = resolved
	}
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	for _, f := range []struct{ dst, src *string }{
		{&result.ConsumerKey, &other.ConsumerKey},
		{&result.ConsumerSecret, &other.ConsumerSecret},
		{&result.AccessToken, &other.AccessToken},
		{&result.AccessTokenSecret, &other.AccessTokenSecret},
		{&result.Callback, &other.Callback},
		{&result.Host, &other.Host},
		{&result.UploadHost, &other.UploadHost},
		{&result.APIVersion, &other.APIVersion},
		{&result.UserAgent, &other.UserAgent},
	} {
		if *f.src != "" {
			*f.dst = *f.src
		}
	}

	if other.ConnectionTimeout > 0 {
		result.ConnectionTimeout = other.ConnectionTimeout
	}
	if other.Timeout > 0 {
		result.Timeout = other.Timeout
	}

	if len(other.Headers) > 0 {
		headers := make(map[string]string, len(result.Headers)+len(other.Headers))
		for k, v := range result.Headers {
			headers[k] = v
		}
		for k, v := range other.Headers {
			headers[k] = v
		}
		result.Headers = headers
	}

	if other.Proxy != nil {
		merged := Proxy{}
		if result.Proxy != nil {
			merged = *result.Proxy
		}
		if other.Proxy.Host != "" {
			merged.Host = other.Proxy.Host
		}
		if other.Proxy.Port > 0 {
			merged.Port = other.Proxy.Port
		}
		if other.Proxy.UserPassword != "" {
			merged.UserPassword = other.Proxy.UserPassword
		}
		result.Proxy = &merged
	}

	// Boolean flags - only override if explicitly set in other config
	if other.ValidateSSL != nil {
		result.ValidateSSL = other.ValidateSSL
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig writes the configuration as YAML, or JSON for a .json path.
// Files holding secrets are written user-readable only.
func (c *Config) SaveConfig(path string) error {
	var data []byte
	var err error
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
