// Package http is the transport used by the OAuth client.
//
// It wraps the standard library's http package with:
//   - Per-call connection and total timeouts
//   - Outbound proxies with optional credentials
//   - Form and multipart/form-data bodies
//   - Response capture (status, headers, body, duration)
//
// Requests arrive fully formed and signed; this package never inspects or
// alters the Authorization header.
package http
