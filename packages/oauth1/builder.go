package oauth1

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Version is the oauth_version sent with every request.
const Version = "1.0"

// Credentials holds the consumer pair and, for three-legged requests, the
// access (or request) token pair.
type Credentials struct {
	ConsumerKey    string
	ConsumerSecret string
	Token          string
	TokenSecret    string
}

// TwoLegged reports whether no token is present.
func (c Credentials) TwoLegged() bool {
	return c.Token == ""
}

// Noncer produces single-use nonces.
type Noncer interface {
	Nonce() (string, error)
}

// NoncerFunc adapts a function to Noncer.
type NoncerFunc func() (string, error)

func (f NoncerFunc) Nonce() (string, error) {
	return f()
}

// UUIDNoncer returns 32 lower-case hex characters taken from a random
// (version 4) UUID.
type UUIDNoncer struct{}

func (UUIDNoncer) Nonce() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("oauth1: generate nonce: %w", err)
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

type Builder struct {
	creds  Credentials
	now    func() time.Time
	noncer Noncer
}

type BuilderOption func(*Builder)

// WithClock overrides the time source used for oauth_timestamp.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

// WithNoncer overrides the nonce source.
func WithNoncer(n Noncer) BuilderOption {
	return func(b *Builder) {
		b.noncer = n
	}
}

func NewBuilder(creds Credentials, opts ...BuilderOption) *Builder {
	b := &Builder{
		creds:  creds,
		now:    time.Now,
		noncer: UUIDNoncer{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Signed is a request that has been through the builder.
type Signed struct {
	Method string
	URL    string
	// OAuth holds the protocol parameters, oauth_signature included.
	OAuth Params
	// Params holds the scalar call parameters, in caller order.
	Params Params
	// Files holds the upload parameters, which are not signed.
	Files Params
}

// Build assembles the protocol parameters for one request, signs them
// together with the scalar call parameters and returns the result.
// Call parameters prefixed with "oauth_" (oauth_callback, oauth_verifier)
// are protocol parameters and move to the OAuth set.
func (b *Builder) Build(method, endpoint string, params Params) (*Signed, error) {
	method = strings.ToUpper(method)

	nonce, err := b.noncer.Nonce()
	if err != nil {
		return nil, err
	}

	oauth := NewParams(
		"oauth_consumer_key", b.creds.ConsumerKey,
		"oauth_nonce", nonce,
		"oauth_signature_method", SignatureMethod,
		"oauth_timestamp", strconv.FormatInt(b.now().Unix(), 10),
		"oauth_version", Version,
	)
	if !b.creds.TwoLegged() {
		oauth = oauth.Set("oauth_token", b.creds.Token)
	}

	signable, files := params.Clone().Split()
	var call Params
	for _, p := range signable {
		if strings.HasPrefix(p.Key, "oauth_") {
			oauth = oauth.Set(p.Key, p.Value)
			continue
		}
		call = append(call, p)
	}

	set := append(oauth.Clone(), call...)
	signature, err := Sign(method, endpoint, set, b.creds.ConsumerSecret, b.creds.TokenSecret)
	if err != nil {
		return nil, err
	}

	return &Signed{
		Method: method,
		URL:    endpoint,
		OAuth:  oauth.Set("oauth_signature", signature),
		Params: call,
		Files:  files,
	}, nil
}

func (s *Signed) Signature() string {
	v, _ := s.OAuth.Get("oauth_signature")
	return v
}

func (s *Signed) Nonce() string {
	v, _ := s.OAuth.Get("oauth_nonce")
	return v
}

// Merged returns the protocol and call parameters as one list, for
// requests that carry OAuth in the query string or form body.
func (s *Signed) Merged() Params {
	return append(s.OAuth.Clone(), s.Params...)
}

// Header renders the Authorization header value:
//
//	OAuth oauth_consumer_key="...", oauth_nonce="...", ...
func (s *Signed) Header() string {
	pairs := make([]string, len(s.OAuth))
	for i, p := range s.OAuth {
		pairs[i] = p.EncodeQuoted()
	}
	sort.Strings(pairs)
	return "OAuth " + strings.Join(pairs, ", ")
}
