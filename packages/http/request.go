package http

import (
	"fmt"
	neturl "net/url"
	"strconv"
	"strings"
	"time"
)

type Request struct {
	Method    string
	URL       string
	Headers   map[string]string
	Body      string
	Multipart []*MultipartField
}

// MultipartField is one part of a multipart/form-data body. File parts
// read their content from Path.
type MultipartField struct {
	Name  string
	Value string
	Path  string
	File  bool
}

func NewRequest(method, requestURL string) *Request {
	return &Request{
		Method:  method,
		URL:     requestURL,
		Headers: make(map[string]string),
	}
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// SetFormBody sets an application/x-www-form-urlencoded body.
func (r *Request) SetFormBody(body string) *Request {
	r.Body = body
	r.Headers["Content-Type"] = "application/x-www-form-urlencoded"
	return r
}

func (r *Request) AddField(name, value string) *Request {
	r.Multipart = append(r.Multipart, &MultipartField{Name: name, Value: value})
	return r
}

func (r *Request) AddFile(name, path string) *Request {
	r.Multipart = append(r.Multipart, &MultipartField{Name: name, Path: path, File: true})
	return r
}

// Proxy describes an outbound HTTP proxy.
type Proxy struct {
	Host string
	Port int
	// UserPassword is "user:password"; empty means no proxy auth.
	UserPassword string
}

// URL renders the proxy as a URL usable by http.ProxyURL. A Host without
// a scheme is treated as http.
func (p *Proxy) URL() (*neturl.URL, error) {
	if p == nil || p.Host == "" {
		return nil, nil
	}
	raw := p.Host
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := neturl.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy: %w", err)
	}
	if p.Port > 0 {
		u.Host = u.Hostname() + ":" + strconv.Itoa(p.Port)
	}
	if p.UserPassword != "" {
		user, pass, found := strings.Cut(p.UserPassword, ":")
		if found {
			u.User = neturl.UserPassword(user, pass)
		} else {
			u.User = neturl.User(user)
		}
	}
	return u, nil
}

// Options are the per-call transport settings.
type Options struct {
	ConnectTimeout time.Duration
	Timeout        time.Duration
	Proxy          *Proxy
}

func (o Options) key() string {
	var proxy string
	if o.Proxy != nil {
		proxy = fmt.Sprintf("%s|%d|%s", o.Proxy.Host, o.Proxy.Port, o.Proxy.UserPassword)
	}
	return fmt.Sprintf("%d|%s", o.ConnectTimeout, proxy)
}

// ParseFormBody decodes an application/x-www-form-urlencoded body.
// Malformed pairs are skipped.
func ParseFormBody(body string) map[string]string {
	result := make(map[string]string)
	pairs := strings.Split(body, "&")
	for _, pair := range pairs {
		kv := strings.SplitN(pair, "=", 2)
		if kv[0] == "" {
			continue
		}
		key, err := neturl.QueryUnescape(kv[0])
		if err != nil {
			continue
		}
		var value string
		if len(kv) == 2 {
			if value, err = neturl.QueryUnescape(kv[1]); err != nil {
				continue
			}
		}
		result[key] = value
	}
	return result
}
