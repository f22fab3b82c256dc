// Package oauth1 implements OAuth 1.0a request signing.
//
// It provides:
//   - RFC 3986 percent encoding
//   - Ordered request parameters
//   - HMAC-SHA1 signature base strings and signatures
//   - A request builder that adds the protocol parameters (nonce, timestamp,
//     consumer key, token) and renders the Authorization header
//
// File upload parameters are carried alongside the signed set but never
// contribute to the signature.
package oauth1
