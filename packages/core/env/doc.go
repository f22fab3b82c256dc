// Package env loads credentials and settings from the process environment
// and from .env files.
//
// It provides functionality for:
//   - Parsing .env files (LoadDotEnv, ParseDotEnv)
//   - Collecting prefixed system variables (LoadSystemEnv)
//   - Expanding ${VAR} and {{$VAR}} references in config values
package env
