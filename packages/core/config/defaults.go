package config

import (
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/twitteroauth/packages/core/env"
)

const (
	DefaultHost              = "https://api.twitter.com"
	DefaultUploadHost        = "https://upload.twitter.com"
	DefaultAPIVersion        = "1.1"
	DefaultConnectionTimeout = 5 // seconds
	DefaultTimeout           = 5 // seconds

	// EnvPrefix prefixes every variable read by FromVars.
	EnvPrefix = "TWITTEROAUTH_"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Host:              DefaultHost,
		UploadHost:        DefaultUploadHost,
		APIVersion:        DefaultAPIVersion,
		ConnectionTimeout: DefaultConnectionTimeout,
		Timeout:           DefaultTimeout,
		ValidateSSL:       BoolPtr(true),
		Verbose:           BoolPtr(false),
		NoColor:           BoolPtr(false),
	}
}

// envNames maps a setting to the variables that may hold it, most specific
// first. Names without the prefix are the integration suite's.
var envNames = map[string][]string{
	"consumerKey":       {EnvPrefix + "CONSUMER_KEY", "TEST_CONSUMER_KEY"},
	"consumerSecret":    {EnvPrefix + "CONSUMER_SECRET", "TEST_CONSUMER_SECRET"},
	"accessToken":       {EnvPrefix + "ACCESS_TOKEN", "TEST_ACCESS_TOKEN"},
	"accessTokenSecret": {EnvPrefix + "ACCESS_TOKEN_SECRET", "TEST_ACCESS_TOKEN_SECRET"},
	"callback":          {EnvPrefix + "OAUTH_CALLBACK", "TEST_OAUTH_CALLBACK"},
	"host":              {EnvPrefix + "HOST"},
	"uploadHost":        {EnvPrefix + "UPLOAD_HOST"},
	"apiVersion":        {EnvPrefix + "API_VERSION"},
	"userAgent":         {EnvPrefix + "USER_AGENT"},
	"proxyHost":         {EnvPrefix + "PROXY", "TEST_CURLOPT_PROXY"},
	"proxyPort":         {EnvPrefix + "PROXY_PORT", "TEST_CURLOPT_PROXYPORT"},
	"proxyUserPassword": {EnvPrefix + "PROXY_USERPWD", "TEST_CURLOPT_PROXYUSERPWD"},
	"connectionTimeout": {EnvPrefix + "CONNECTION_TIMEOUT"},
	"timeout":           {EnvPrefix + "TIMEOUT"},
}

// FromVars builds a partial config from environment variables, suitable
// for Merge over a file config.
func FromVars(vars env.Vars) *Config {
	get := func(setting string) string {
		v, _ := vars.First(envNames[setting]...)
		return strings.TrimSpace(v)
	}

	c := &Config{
		ConsumerKey:       get("consumerKey"),
		ConsumerSecret:    get("consumerSecret"),
		AccessToken:       get("accessToken"),
		AccessTokenSecret: get("accessTokenSecret"),
		Callback:          get("callback"),
		Host:              get("host"),
		UploadHost:        get("uploadHost"),
		APIVersion:        get("apiVersion"),
		UserAgent:         get("userAgent"),
		ConnectionTimeout: atoi(get("connectionTimeout")),
		Timeout:           atoi(get("timeout")),
	}

	if host := get("proxyHost"); host != "" {
		c.Proxy = &Proxy{
			Host:         host,
			Port:         atoi(get("proxyPort")),
			UserPassword: get("proxyUserPassword"),
		}
	}
	return c
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
