package twitteroauth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/twitteroauth/packages/http"
	"github.com/abdul-hamid-achik/twitteroauth/packages/oauth1"
)

var (
	// ErrAuthentication is matched by every AuthenticationError.
	ErrAuthentication = errors.New("twitteroauth: authentication failed")
	// ErrFileNotFound is matched by every FileNotFoundError.
	ErrFileNotFound = errors.New("twitteroauth: upload file not found")
	// ErrTransport is matched by connection and timeout failures.
	ErrTransport = http.ErrTransport
	// ErrSignature is matched by signing failures.
	ErrSignature = oauth1.ErrSignature
)

// AuthenticationError is returned when an OAuth handshake endpoint
// answers with a non-2xx status.
type AuthenticationError struct {
	StatusCode int
	// Message is the server's reason, e.g. "Invalid request token".
	Message string
	Body    []byte
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthentication
}

func newAuthenticationError(resp *http.Response) *AuthenticationError {
	return &AuthenticationError{
		StatusCode: resp.StatusCode,
		Message:    serverMessage(resp),
		Body:       resp.Body,
	}
}

// serverMessage pulls the human readable reason out of an error body. The
// OAuth endpoints answer in JSON, XML or plain text depending on the
// failure.
func serverMessage(resp *http.Response) string {
	raw := strings.TrimSpace(resp.BodyString())
	if raw == "" {
		return fmt.Sprintf("oauth endpoint returned %d", resp.StatusCode)
	}

	if json.Valid([]byte(raw)) {
		for _, path := range []string{"errors.0.message", "error", "message"} {
			if m := gjson.Get(raw, path); m.Exists() && m.String() != "" {
				return m.String()
			}
		}
		return raw
	}

	if strings.HasPrefix(raw, "<") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
		if err == nil {
			if msg := strings.TrimSpace(doc.Find("error").First().Text()); msg != "" {
				return msg
			}
		}
	}

	return raw
}

// FileNotFoundError is returned by Upload when a file parameter does not
// name a readable regular file. No request is sent.
type FileNotFoundError struct {
	Param string
	Path  string
	Err   error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("twitteroauth: %s file %q: %v", e.Param, e.Path, e.Err)
}

func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}

func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}
