// Package cli implements the numcli command tree.
//
// Each command maps to one numeric tool. Tools run in-process through a
// service registry, or remotely through the HTTP client when --server is
// set. Results are rendered as JSON, YAML or TOML; a failed tool prints its
// message on stderr and makes the process exit with status 1.
package cli
