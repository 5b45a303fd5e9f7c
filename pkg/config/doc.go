// Package config loads service configuration from an optional YAML file and
// READINGLIST_* environment variables, with env taking precedence.
package config
