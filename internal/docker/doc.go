// Package docker provides a Docker Engine API connectivity probe for the
// nestgen doctor command.
//
// This package handles:
//   - Docker client initialization with automatic socket detection
//     (Linux, macOS, Windows)
//   - A time-bounded daemon ping
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
