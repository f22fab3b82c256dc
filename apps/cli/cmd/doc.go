// Package cmd implements the twitteroauth CLI commands using Cobra.
//
// Available commands:
//   - get, post, upload: Signed calls to REST endpoints
//   - request-token, authorize-url, access-token: The three OAuth steps
//   - verify: Check the configured credentials
//   - tokens: List and delete access tokens saved with access-token --save
//   - version: Show version information
//
// Credentials come from a .twitteroauth.yaml file, a .env file or the
// environment. A token saved under a name can be selected with --account.
package cmd
