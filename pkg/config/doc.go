// Package config handles configuration management for scriptext.
// It loads the embedded defaults, a TOML or YAML config file and
// SCRIPTEXT_ environment variables, in that order, and compiles the result
// into a selector.Config.
package config
