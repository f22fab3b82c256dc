package oauth1

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedBuilder(creds Credentials) *Builder {
	return NewBuilder(creds,
		WithClock(func() time.Time { return time.Unix(1318622958, 0) }),
		WithNoncer(NoncerFunc(func() (string, error) { return "kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg", nil })),
	)
}

func TestBuilder_DocsExample(t *testing.T) {
	b := fixedBuilder(Credentials{
		ConsumerKey:    "xvz1evFS4wEEPTGEFPHBog",
		ConsumerSecret: docsConsumerSecret,
		Token:          "370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb",
		TokenSecret:    docsTokenSecret,
	})

	signed, err := b.Build("post", docsURL, NewParams(
		"status", "Hello Ladies + Gentlemen, a signed OAuth request!",
		"include_entities", "true",
	))
	require.NoError(t, err)

	assert.Equal(t, "POST", signed.Method)
	assert.Equal(t, "hCtSmYh+iHYCEqBWrE7C7hYmtUk=", signed.Signature())
	assert.Equal(t, `OAuth oauth_consumer_key="xvz1evFS4wEEPTGEFPHBog", `+
		`oauth_nonce="kYjzVBB8Y0ZFabxSWbWovY3uYSQ2pTgmZeNu2VS4cg", `+
		`oauth_signature="hCtSmYh%2BiHYCEqBWrE7C7hYmtUk%3D", `+
		`oauth_signature_method="HMAC-SHA1", `+
		`oauth_timestamp="1318622958", `+
		`oauth_token="370773112-GmHxMAgYyLbNEtIKZeRNFsMKPR9EyMZeS9weJAEb", `+
		`oauth_version="1.0"`, signed.Header())
	assert.Equal(t, "status=Hello%20Ladies%20%2B%20Gentlemen%2C%20a%20signed%20OAuth%20request%21&include_entities=true", signed.Params.Query())
}

func TestBuilder_TwoLeggedEmptyParams(t *testing.T) {
	creds := Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"}
	require.True(t, creds.TwoLegged())
	b := NewBuilder(creds)

	signed, err := b.Build("POST", "https://api.twitter.com/oauth/request_token", nil)
	require.NoError(t, err)

	header := signed.Header()
	require.True(t, strings.HasPrefix(header, "OAuth "))
	for _, field := range []string{
		"oauth_consumer_key", "oauth_nonce", "oauth_signature",
		"oauth_signature_method", "oauth_timestamp", "oauth_version",
	} {
		assert.Regexp(t, regexp.MustCompile(field+`="[^"]+"`), header)
	}
	assert.NotContains(t, header, "oauth_token=")

	raw, err := base64.StdEncoding.DecodeString(signed.Signature())
	require.NoError(t, err)
	assert.Len(t, raw, 20)
	assert.Empty(t, signed.Params)
	assert.Empty(t, signed.Files)
}

func TestBuilder_OAuthCallParamsMoveToHeader(t *testing.T) {
	b := NewBuilder(Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"})

	signed, err := b.Build("POST", "https://api.twitter.com/oauth/request_token",
		NewParams("oauth_callback", "https://example.com/cb"))
	require.NoError(t, err)

	v, ok := signed.OAuth.Get("oauth_callback")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/cb", v)
	assert.Empty(t, signed.Params)
	assert.Contains(t, signed.Header(), `oauth_callback="https%3A%2F%2Fexample.com%2Fcb"`)
}

func TestBuilder_FilesExcludedFromSignature(t *testing.T) {
	creds := Credentials{ConsumerKey: "ck", ConsumerSecret: "cs", Token: "t", TokenSecret: "ts"}

	withFile, err := fixedBuilder(creds).Build("POST", "https://upload.twitter.com/1.1/media/upload.json",
		NewParams("media_category", "tweet_image").SetFile("media", "/tmp/kitten.jpg"))
	require.NoError(t, err)
	without, err := fixedBuilder(creds).Build("POST", "https://upload.twitter.com/1.1/media/upload.json",
		NewParams("media_category", "tweet_image"))
	require.NoError(t, err)

	assert.Equal(t, without.Signature(), withFile.Signature())
	assert.Len(t, withFile.Files, 1)
	assert.Equal(t, "media", withFile.Files[0].Key)
}

func TestBuilder_NonceUnique(t *testing.T) {
	b := NewBuilder(Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		signed, err := b.Build("GET", "https://api.twitter.com/1.1/x.json", nil)
		require.NoError(t, err)
		nonce := signed.Nonce()
		assert.Regexp(t, `^[0-9a-f]{32}$`, nonce)
		assert.False(t, seen[nonce], "nonce reused: %s", nonce)
		seen[nonce] = true
	}
}

func TestBuilder_DoesNotMutateCallerParams(t *testing.T) {
	b := NewBuilder(Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"})
	params := NewParams("oauth_verifier", "v", "a", "1")

	_, err := b.Build("POST", "https://api.twitter.com/oauth/access_token", params)
	require.NoError(t, err)
	assert.Equal(t, NewParams("oauth_verifier", "v", "a", "1"), params)
}

func TestBuilder_NoncerError(t *testing.T) {
	boom := errors.New("entropy exhausted")
	b := NewBuilder(Credentials{ConsumerKey: "ck"}, WithNoncer(NoncerFunc(func() (string, error) { return "", boom })))

	_, err := b.Build("GET", "https://api.twitter.com/1.1/x.json", nil)
	assert.ErrorIs(t, err, boom)
}

func TestSigned_Merged(t *testing.T) {
	signed, err := fixedBuilder(Credentials{ConsumerKey: "ck", ConsumerSecret: "cs"}).
		Build("GET", "https://api.twitter.com/1.1/x.json", NewParams("q", "go"))
	require.NoError(t, err)

	merged := signed.Merged()
	assert.Len(t, merged, len(signed.OAuth)+1)
	v, ok := merged.Get("q")
	assert.True(t, ok)
	assert.Equal(t, "go", v)
	_, ok = merged.Get("oauth_signature")
	assert.True(t, ok)
}
