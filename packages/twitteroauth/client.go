package twitteroauth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/twitteroauth/packages/http"
	"github.com/abdul-hamid-achik/twitteroauth/packages/oauth1"
)

const (
	DefaultHost       = "https://api.twitter.com"
	DefaultUploadHost = "https://upload.twitter.com"
	DefaultAPIVersion = "1.1"
)

// DefaultFileFields are the Upload parameters that name local files.
var DefaultFileFields = []string{"media"}

// Params is an ordered list of call parameters.
type Params = oauth1.Params

// NewParams builds Params from alternating keys and values.
func NewParams(kv ...string) Params {
	return oauth1.NewParams(kv...)
}

// Transport performs a fully formed request. *http.Client satisfies it.
type Transport interface {
	Execute(req *http.Request, opts http.Options) (*http.Response, error)
}

type Client struct {
	builder    *oauth1.Builder
	transport  Transport
	host       string
	uploadHost string
	apiVersion string
	userAgent  string
	fileFields []string
	logger     *slog.Logger

	builderOpts []oauth1.BuilderOption

	mu   sync.Mutex
	opts http.Options
	last LastResult
}

type Option func(*Client)

// New creates a client. Leave token and tokenSecret empty for two-legged
// calls such as oauth/request_token.
func New(consumerKey, consumerSecret, token, tokenSecret string, opts ...Option) *Client {
	c := &Client{
		host:       DefaultHost,
		uploadHost: DefaultUploadHost,
		apiVersion: DefaultAPIVersion,
		fileFields: DefaultFileFields,
		logger:     slog.New(slog.DiscardHandler),
		opts: http.Options{
			ConnectTimeout: http.DefaultConnectTimeout,
			Timeout:        http.DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = http.NewClient()
	}
	c.builder = oauth1.NewBuilder(oauth1.Credentials{
		ConsumerKey:    consumerKey,
		ConsumerSecret: consumerSecret,
		Token:          token,
		TokenSecret:    tokenSecret,
	}, c.builderOpts...)
	return c
}

func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithHost sets the API host, e.g. "https://api.twitter.com".
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = strings.TrimRight(host, "/")
	}
}

func WithUploadHost(host string) Option {
	return func(c *Client) {
		c.uploadHost = strings.TrimRight(host, "/")
	}
}

func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = strings.Trim(version, "/")
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithConnectionTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.opts.ConnectTimeout = d
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.opts.Timeout = d
	}
}

func WithProxy(p *http.Proxy) Option {
	return func(c *Client) {
		c.opts.Proxy = p
	}
}

// WithFileFields replaces the parameter names Upload treats as files.
func WithFileFields(fields ...string) Option {
	return func(c *Client) {
		c.fileFields = fields
	}
}

// WithBuilderOptions passes options to the request signer.
func WithBuilderOptions(opts ...oauth1.BuilderOption) Option {
	return func(c *Client) {
		c.builderOpts = append(c.builderOpts, opts...)
	}
}

// SetProxy routes the following calls through p; nil disables proxying.
func (c *Client) SetProxy(p *http.Proxy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Proxy = p
}

func (c *Client) SetConnectionTimeout(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.ConnectTimeout = time.Duration(seconds) * time.Second
}

func (c *Client) SetTimeout(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Timeout = time.Duration(seconds) * time.Second
}

func (c *Client) options() http.Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	opts := c.opts
	if opts.Proxy != nil {
		p := *opts.Proxy
		opts.Proxy = &p
	}
	return opts
}

// URL builds an unsigned URL on the API host, e.g. for sending a user to
// oauth/authorize. Parameters keep their insertion order.
func (c *Client) URL(path string, params Params) string {
	u := c.host + "/" + strings.TrimLeft(path, "/")
	if len(params) > 0 {
		u += "?" + params.Query()
	}
	return u
}

// AuthorizeURL is the page a user visits to approve requestToken.
func (c *Client) AuthorizeURL(requestToken string) string {
	return c.URL("oauth/authorize", NewParams("oauth_token", requestToken))
}

// OAuth calls an OAuth handshake endpoint such as oauth/request_token or
// oauth/access_token. The body is form decoded. A non-2xx status is an
// AuthenticationError.
func (c *Client) OAuth(path string, params Params) (Body, error) {
	url := c.host + "/" + strings.TrimLeft(path, "/")
	resp, err := c.call("POST", path, url, params, false)
	if err != nil {
		return Body{}, err
	}

	body := decodeForm(resp)
	c.record("POST", path, resp.StatusCode, body, resp.Headers)
	if !resp.IsSuccess() {
		return body, newAuthenticationError(resp)
	}
	return body, nil
}

// Get calls GET <host>/<version>/<path>.json with params in the query
// string.
func (c *Client) Get(path string, params Params) (Body, error) {
	return c.api("GET", path, c.apiURL(c.host, path), params, false)
}

// Post calls POST <host>/<version>/<path>.json with a form encoded body.
func (c *Client) Post(path string, params Params) (Body, error) {
	return c.api("POST", path, c.apiURL(c.host, path), params, false)
}

// Upload posts a multipart body to the upload host. Parameters named in
// the file fields (by default "media") must be paths to readable files;
// they are sent as binary parts and are not signed.
func (c *Client) Upload(path string, params Params) (Body, error) {
	params = params.Clone()
	for i, p := range params {
		if c.isFileField(p.Key) {
			params[i].File = true
		}
	}
	for _, p := range params {
		if !p.File {
			continue
		}
		if err := checkReadable(p.Key, p.Value); err != nil {
			c.record("POST", path, 0, Body{}, nil)
			return Body{}, err
		}
	}
	return c.api("POST", path, c.apiURL(c.uploadHost, path), params, true)
}

func (c *Client) isFileField(key string) bool {
	for _, f := range c.fileFields {
		if f == key {
			return true
		}
	}
	return false
}

func checkReadable(param, path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return &FileNotFoundError{Param: param, Path: path, Err: err}
	}
	if fi.IsDir() {
		return &FileNotFoundError{Param: param, Path: path, Err: fmt.Errorf("is a directory")}
	}
	f, err := os.Open(path)
	if err != nil {
		return &FileNotFoundError{Param: param, Path: path, Err: err}
	}
	return f.Close()
}

func (c *Client) apiURL(host, path string) string {
	return fmt.Sprintf("%s/%s/%s.json", host, c.apiVersion, strings.Trim(path, "/"))
}

func (c *Client) api(method, path, url string, params Params, multipart bool) (Body, error) {
	resp, err := c.call(method, path, url, params, multipart)
	if err != nil {
		return Body{}, err
	}

	body, err := decodeJSON(resp)
	c.record(method, path, resp.StatusCode, body, resp.Headers)
	return body, err
}

// call signs and sends one request. On failure the last result is set to
// the path and method with no status before the error is returned.
func (c *Client) call(method, path, url string, params Params, multipart bool) (*http.Response, error) {
	signed, err := c.builder.Build(method, url, params)
	if err != nil {
		c.record(method, path, 0, Body{}, nil)
		return nil, err
	}

	req := http.NewRequest(signed.Method, url)
	req.SetHeader("Authorization", signed.Header())
	if c.userAgent != "" {
		req.SetHeader("User-Agent", c.userAgent)
	}

	switch {
	case multipart:
		for _, p := range signed.Params {
			req.AddField(p.Key, p.Value)
		}
		for _, f := range signed.Files {
			req.AddFile(f.Key, f.Value)
		}
	case signed.Method == "GET":
		if len(signed.Params) > 0 {
			req.URL += "?" + signed.Params.Query()
		}
	case len(signed.Params) > 0:
		req.SetFormBody(signed.Params.Query())
	}

	resp, err := c.transport.Execute(req, c.options())
	if err != nil {
		var fe *http.FileError
		if errors.As(err, &fe) {
			err = &FileNotFoundError{Param: fe.Field, Path: fe.Path, Err: fe.Err}
		}
		c.record(method, path, 0, Body{}, nil)
		c.logger.Debug("twitter call failed", "method", method, "path", path, "error", err)
		return nil, err
	}

	c.logger.Debug("twitter call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", resp.DurationMs(),
	)
	return resp, nil
}

func headerValue(headers map[string]string, key string) string {
	return (&http.Response{Headers: headers}).Header(key)
}
