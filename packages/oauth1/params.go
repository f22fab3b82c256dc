package oauth1

import (
	"sort"
	"strings"

	dghubble "github.com/dghubble/oauth1"
)

// Encode percent-encodes s as required by RFC 3986 section 2.1.
// Only unreserved characters are left as-is; a space becomes %20.
func Encode(s string) string {
	return dghubble.PercentEncode(s)
}

// Pair is a single request parameter. When File is set, Value holds the
// path of a local file to upload.
type Pair struct {
	Key   string
	Value string
	File  bool
}

func (p Pair) Encode() string {
	return Encode(p.Key) + "=" + Encode(p.Value)
}

func (p Pair) EncodeQuoted() string {
	return Encode(p.Key) + `="` + Encode(p.Value) + `"`
}

// Params is an ordered parameter list. Keys are expected to be unique;
// Set replaces an existing key in place.
type Params []Pair

// NewParams builds Params from alternating keys and values.
// A trailing key without a value is given an empty value.
func NewParams(kv ...string) Params {
	p := make(Params, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		var v string
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		p = p.Set(kv[i], v)
	}
	return p
}

// FromMap builds Params from m in key order.
func FromMap(m map[string]string) Params {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	p := make(Params, 0, len(m))
	for _, k := range keys {
		p = append(p, Pair{Key: k, Value: m[k]})
	}
	return p
}

func (p Params) Set(key, value string) Params {
	return p.set(Pair{Key: key, Value: value})
}

// SetFile adds or replaces key as a file upload parameter.
func (p Params) SetFile(key, path string) Params {
	return p.set(Pair{Key: key, Value: path, File: true})
}

func (p Params) set(pair Pair) Params {
	for i := range p {
		if p[i].Key == pair.Key {
			p[i] = pair
			return p
		}
	}
	return append(p, pair)
}

func (p Params) Get(key string) (string, bool) {
	for _, v := range p {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	c := make(Params, len(p))
	copy(c, p)
	return c
}

// Split separates scalar parameters from file upload parameters,
// preserving order within each bucket.
func (p Params) Split() (signable, files Params) {
	for _, v := range p {
		if v.File {
			files = append(files, v)
		} else {
			signable = append(signable, v)
		}
	}
	return signable, files
}

// Query encodes p in insertion order, as used for navigable URLs and
// form bodies.
func (p Params) Query() string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = v.Encode()
	}
	return strings.Join(parts, "&")
}

// Normalize encodes p sorted by encoded key, then encoded value. The
// comparison is byte-wise so the result does not depend on locale.
func (p Params) Normalize() string {
	enc := make([][2]string, len(p))
	for i, v := range p {
		enc[i] = [2]string{Encode(v.Key), Encode(v.Value)}
	}
	sort.Slice(enc, func(i, j int) bool {
		if enc[i][0] != enc[j][0] {
			return enc[i][0] < enc[j][0]
		}
		return enc[i][1] < enc[j][1]
	})

	parts := make([]string, len(enc))
	for i, kv := range enc {
		parts[i] = kv[0] + "=" + kv[1]
	}
	return strings.Join(parts, "&")
}
