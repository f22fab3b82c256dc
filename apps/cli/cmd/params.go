package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/twitteroauth/packages/core/config"
	"github.com/abdul-hamid-achik/twitteroauth/packages/twitteroauth"
)

// parseParams turns key=value arguments into call parameters, keeping
// their order. Only the first '=' separates key from value.
func parseParams(args []string) (twitteroauth.Params, error) {
	params := make(twitteroauth.Params, 0, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", arg)
		}
		params = append(params, twitteroauth.NewParams(key, value)...)
	}
	return params, nil
}

// parseProxy accepts [scheme://][user:password@]host[:port].
func parseProxy(s string) (*config.Proxy, error) {
	raw := s
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy %q: %w", s, err)
	}
	if u.Hostname() == "" {
		return nil, fmt.Errorf("invalid proxy %q: missing host", s)
	}

	p := &config.Proxy{Host: u.Hostname()}
	if u.Scheme != "http" {
		p.Host = u.Scheme + "://" + u.Hostname()
	}
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy port %q", port)
		}
		p.Port = n
	}
	if u.User != nil {
		p.UserPassword = u.User.String()
		if pw, ok := u.User.Password(); ok {
			p.UserPassword = u.User.Username() + ":" + pw
		}
	}
	return p, nil
}

// parseHeaders turns "Name: value" arguments into a header map.
func parseHeaders(args []string) (map[string]string, error) {
	headers := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, found := strings.Cut(arg, ":")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, fmt.Errorf("invalid header %q (expected 'Name: value')", arg)
		}
		if strings.EqualFold(name, "Authorization") {
			return nil, fmt.Errorf("the Authorization header is set by the OAuth signer")
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// minArgs is cobra.MinimumNArgs reporting a usage error.
func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError(err)
	}
	return nil
}
