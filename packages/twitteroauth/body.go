package twitteroauth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dghubble/go-twitter/twitter"
	"github.com/tidwall/gjson"

	"github.com/abdul-hamid-achik/twitteroauth/packages/http"
)

// BodyKind tags the shape of a decoded response body.
type BodyKind int

const (
	// BodyEmpty is an unset result, an empty body or a body that is neither
	// JSON nor form encoded. Raw still holds the bytes.
	BodyEmpty BodyKind = iota
	BodyObject
	BodyArray
	// BodyForm is an application/x-www-form-urlencoded body, as returned by
	// the OAuth handshake endpoints.
	BodyForm
)

func (k BodyKind) String() string {
	switch k {
	case BodyObject:
		return "object"
	case BodyArray:
		return "array"
	case BodyForm:
		return "form"
	default:
		return "empty"
	}
}

// Body is a decoded response. Exactly one of Object, Array or Form is set,
// according to Kind. JSON numbers are kept as json.Number so ids do not
// lose precision.
type Body struct {
	Kind        BodyKind
	Object      map[string]any
	Array       []any
	Form        map[string]string
	ContentType string
	Raw         []byte
}

func (b Body) IsEmpty() bool {
	return b.Kind == BodyEmpty
}

// Get looks up a gjson path (e.g. "statuses.0.id_str") in the body.
func (b Body) Get(path string) gjson.Result {
	switch b.Kind {
	case BodyObject, BodyArray:
		return gjson.GetBytes(b.Raw, path)
	case BodyForm:
		data, err := json.Marshal(b.Form)
		if err != nil {
			return gjson.Result{}
		}
		return gjson.GetBytes(data, path)
	default:
		return gjson.Result{}
	}
}

// Value returns a top-level string field of an object or form body.
func (b Body) Value(key string) (string, bool) {
	switch b.Kind {
	case BodyForm:
		v, ok := b.Form[key]
		return v, ok
	case BodyObject:
		r := b.Get(gjsonEscape(key))
		return r.String(), r.Exists()
	}
	return "", false
}

// Decode unmarshals the body into v.
func (b Body) Decode(v any) error {
	switch b.Kind {
	case BodyObject, BodyArray:
		return json.Unmarshal(b.Raw, v)
	case BodyForm:
		data, err := json.Marshal(b.Form)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("twitteroauth: cannot decode %s body", b.Kind)
	}
}

// APIError returns the errors array of a Twitter error body, or nil when
// the body has none.
func (b Body) APIError() *twitter.APIError {
	if b.Kind != BodyObject || !b.Get("errors").IsArray() {
		return nil
	}
	apiErr := &twitter.APIError{}
	if err := json.Unmarshal(b.Raw, apiErr); err != nil || apiErr.Empty() {
		return nil
	}
	return apiErr
}

// decodeJSON decodes an API response by its declared content type. Bodies
// not declared as JSON or form are kept raw under BodyEmpty.
func decodeJSON(resp *http.Response) (Body, error) {
	body := Body{ContentType: resp.ContentType(), Raw: resp.Body}
	trimmed := bytes.TrimSpace(resp.Body)
	if len(trimmed) == 0 {
		return body, nil
	}
	if resp.IsForm() {
		return decodeForm(resp), nil
	}
	if !resp.IsJSON() {
		return body, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return body, fmt.Errorf("twitteroauth: decode response: %w", err)
	}

	switch val := v.(type) {
	case map[string]any:
		body.Kind = BodyObject
		body.Object = val
	case []any:
		body.Kind = BodyArray
		body.Array = val
	}
	return body, nil
}

func decodeForm(resp *http.Response) Body {
	return Body{
		Kind:        BodyForm,
		Form:        http.ParseFormBody(strings.TrimSpace(resp.BodyString())),
		ContentType: resp.ContentType(),
		Raw:         resp.Body,
	}
}

var gjsonSpecial = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func gjsonEscape(key string) string {
	return gjsonSpecial.Replace(key)
}
