// Package project answers questions about the directory nestgen runs in.
//
// The only gating question is whether a directory is the root of a project
// produced by `nestgen init`. The external generator always writes a
// package.json manifest at the project root, so its presence is the marker.
// The manifest contents are read for informational logging only and never
// influence whether a command may proceed.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// ManifestName is the file that marks a generated project root.
const ManifestName = "package.json"

// nestCorePackage is the dependency every generated NestJS project carries.
const nestCorePackage = "@nestjs/core"

// IsGeneratedProjectRoot reports whether path contains a project manifest.
//
// This is a single existence check with no side effects. A directory named
// package.json does not count.
func IsGeneratedProjectRoot(path string) bool {
	info, err := os.Stat(filepath.Join(path, ManifestName))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Manifest holds the subset of package.json that nestgen reports on.
type Manifest struct {
	// Name is the npm package name, normally the project name given to init.
	Name string `json:"name"`

	// Version is the npm package version.
	Version string `json:"version"`

	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

// IsNestProject reports whether the manifest depends on @nestjs/core.
func (m *Manifest) IsNestProject() bool {
	if _, ok := m.Dependencies[nestCorePackage]; ok {
		return true
	}
	_, ok := m.DevDependencies[nestCorePackage]
	return ok
}

// ReadManifest parses the package.json at the root of path.
//
// Comments and trailing commas are tolerated: some editors and tools
// leave them in package.json even though npm rejects them, and nestgen
// only reads the file for reporting.
func ReadManifest(path string) (*Manifest, error) {
	manifestPath := filepath.Join(path, ManifestName)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifestPath, err)
	}

	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", manifestPath, err)
	}
	return &m, nil
}
