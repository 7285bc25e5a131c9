// Package render encodes command output as JSON, YAML or TOML.
package render
