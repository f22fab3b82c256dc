// Package twitteroauth is an OAuth 1.0a client for the Twitter REST API.
//
// A Client signs every call with the consumer and token credentials it was
// built with and exposes generic operations rather than per-endpoint
// methods:
//
//	client := twitteroauth.New(consumerKey, consumerSecret, token, tokenSecret)
//	body, err := client.Get("search/tweets", twitteroauth.NewParams("q", "golang"))
//	if err != nil {
//		return err
//	}
//	if apiErr := body.APIError(); apiErr != nil {
//		log.Printf("%d: %v", client.LastHTTPCode(), apiErr)
//	}
//
// Non-2xx responses from API endpoints are returned as decoded bodies; the
// caller checks LastHTTPCode. The OAuth handshake endpoints are the
// exception and fail with an AuthenticationError.
//
// The outcome of the most recent call is kept on the client (LastHTTPCode,
// LastAPIPath, LastHTTPMethod, LastResponse) until the next call or
// ResetLastResult.
package twitteroauth
