package twitteroauth

import "github.com/abdul-hamid-achik/twitteroauth/packages/http"

// LastResult is the outcome of the most recent call made by a Client.
// The zero value is the unset state.
type LastResult struct {
	HTTPCode   int
	APIPath    string
	HTTPMethod string
	Response   Body
	// Headers holds the raw response headers, including x-rate-limit-*.
	Headers map[string]string
}

// Status returns the status line and headers as a transport response, for
// its IsSuccess, IsClientError, IsServerError and RateLimit helpers.
func (r LastResult) Status() *http.Response {
	return &http.Response{StatusCode: r.HTTPCode, Headers: r.Headers}
}

func (c *Client) record(method, path string, code int, body Body, headers map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = LastResult{
		HTTPCode:   code,
		APIPath:    path,
		HTTPMethod: method,
		Response:   body,
		Headers:    headers,
	}
}

func (c *Client) LastHTTPCode() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.HTTPCode
}

func (c *Client) LastAPIPath() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.APIPath
}

func (c *Client) LastHTTPMethod() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.HTTPMethod
}

func (c *Client) LastResponse() Body {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.Response
}

// LastHeader returns a response header of the last call, matched
// case-insensitively.
func (c *Client) LastHeader(key string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return headerValue(c.last.Headers, key)
}

// LastRateLimit returns the x-rate-limit-* headers of the last call, if
// the server sent them.
func (c *Client) LastRateLimit() (http.RateLimit, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last.Status().RateLimit()
}

// LastResult returns a copy of the whole result of the last call.
func (c *Client) LastResult() LastResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// ResetLastResult clears the last call's result back to the unset state.
func (c *Client) ResetLastResult() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = LastResult{}
}
