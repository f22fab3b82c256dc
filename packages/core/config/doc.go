// Package config handles configuration loading for twitteroauth.
//
// It provides functionality for:
//   - Loading credentials and transport settings from .twitteroauth.yaml,
//     .twitteroauth.yml or .twitteroauth.json files
//   - Default configuration values
//   - Environment overrides (TWITTEROAUTH_* and the TEST_* names used by
//     the integration suite)
package config
