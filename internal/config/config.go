// Package config builds the ExecutionContext for one nestgen invocation.
//
// The generator toolkit root is resolved with the following precedence:
//  1. NESTGEN_ROOT environment variable
//  2. `root` key of the YAML config file (--config flag or NESTGEN_CONFIG)
//  3. nestjs-generator/ next to the nestgen executable
//
// The result is frozen into a model.ExecutionContext; nothing here is
// consulted again after startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/shinji-kodama/nestgen/internal/model"
)

const (
	// EnvRoot overrides the generator toolkit location.
	EnvRoot = "NESTGEN_ROOT"

	// EnvConfig points at an optional YAML config file.
	EnvConfig = "NESTGEN_CONFIG"

	// ToolkitDirName is the toolkit directory shipped next to the binary.
	ToolkitDirName = "nestjs-generator"

	keyRoot   = "root"
	keyConfig = "config"
)

// Loader resolves an ExecutionContext. The zero value is not usable;
// use NewLoader or set every function field.
type Loader struct {
	// ConfigFile is an explicit config file path (from --config).
	ConfigFile string

	// Executable returns the path of the running binary.
	Executable func() (string, error)

	// Getwd returns the invocation directory.
	Getwd func() (string, error)
}

// NewLoader creates a Loader backed by the real process state.
func NewLoader(configFile string) *Loader {
	return &Loader{
		ConfigFile: configFile,
		Executable: os.Executable,
		Getwd:      os.Getwd,
	}
}

// Load resolves the toolkit root and derives every script path from it.
func (l *Loader) Load() (model.ExecutionContext, error) {
	workDir, err := l.Getwd()
	if err != nil {
		return model.ExecutionContext{}, fmt.Errorf("failed to get current directory: %w", err)
	}

	entryPoint, err := l.entryPoint()
	if err != nil {
		return model.ExecutionContext{}, err
	}

	v := viper.New()
	if err := v.BindEnv(keyRoot, EnvRoot); err != nil {
		return model.ExecutionContext{}, err
	}
	if err := v.BindEnv(keyConfig, EnvConfig); err != nil {
		return model.ExecutionContext{}, err
	}

	configFile := l.ConfigFile
	if configFile == "" {
		configFile = v.GetString(keyConfig)
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return model.ExecutionContext{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	root := v.GetString(keyRoot)
	if root == "" {
		if entryPoint == "" {
			return model.ExecutionContext{}, errors.New("cannot locate the generator toolkit: set " + EnvRoot)
		}
		root = filepath.Join(filepath.Dir(entryPoint), ToolkitDirName)
	}
	if !filepath.IsAbs(root) {
		root = filepath.Join(workDir, root)
	}

	return model.NewExecutionContext(filepath.Clean(root), entryPoint, workDir), nil
}

// entryPoint returns the executable path with symlinks resolved, so a
// binary linked into /usr/local/bin still finds its toolkit. An
// unresolvable symlink falls back to the unresolved path.
func (l *Loader) entryPoint() (string, error) {
	exe, err := l.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate nestgen executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		return resolved, nil
	}
	return exe, nil
}
