package oauth1

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	dghubble "github.com/dghubble/oauth1"
)

// SignatureMethod is the only signature method supported.
const SignatureMethod = "HMAC-SHA1"

// ErrSignature is matched by every SignatureError.
var ErrSignature = errors.New("oauth1: signature failed")

// SignatureError reports a failure to compute the request signature.
type SignatureError struct {
	Err error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("oauth1: compute signature: %v", e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

func (e *SignatureError) Is(target error) bool {
	return target == ErrSignature
}

// NormalizeURL returns the base string URI for rawURL: lower-case scheme
// and host, default port removed, no query or fragment.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("oauth1: parse url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	if port := u.Port(); (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		host = strings.ToLower(u.Hostname())
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return scheme + "://" + host + path, nil
}

// BaseString builds the signature base string for method, baseURL and
// params. Query parameters on baseURL are folded into the signed set.
func BaseString(method, baseURL string, params Params) (string, error) {
	uri, err := NormalizeURL(baseURL)
	if err != nil {
		return "", err
	}
	all := params.Clone()
	if u, err := url.Parse(baseURL); err == nil && u.RawQuery != "" {
		q, err := url.ParseQuery(u.RawQuery)
		if err != nil {
			return "", fmt.Errorf("oauth1: parse query: %w", err)
		}
		for k, vs := range q {
			for _, v := range vs {
				all = append(all, Pair{Key: k, Value: v})
			}
		}
	}
	return strings.ToUpper(method) + "&" + Encode(uri) + "&" + Encode(all.Normalize()), nil
}

// SigningKey joins the encoded consumer secret and token secret. The token
// secret is empty for two-legged requests.
func SigningKey(consumerSecret, tokenSecret string) string {
	return Encode(consumerSecret) + "&" + Encode(tokenSecret)
}

// Sign computes the HMAC-SHA1 signature of a request. File parameters
// must already be removed from params.
func Sign(method, baseURL string, params Params, consumerSecret, tokenSecret string) (string, error) {
	base, err := BaseString(method, baseURL, params)
	if err != nil {
		return "", &SignatureError{Err: err}
	}
	signer := &dghubble.HMACSigner{ConsumerSecret: consumerSecret}
	sig, err := signer.Sign(tokenSecret, base)
	if err != nil {
		return "", &SignatureError{Err: err}
	}
	return sig, nil
}
