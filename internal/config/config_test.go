package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLoader returns a Loader whose executable lives in binDir and whose
// working directory is workDir.
func testLoader(binDir, workDir string) *Loader {
	return &Loader{
		Executable: func() (string, error) { return filepath.Join(binDir, "nestgen"), nil },
		Getwd:      func() (string, error) { return workDir, nil },
	}
}

func TestLoad_DefaultNextToExecutable(t *testing.T) {
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvConfig, "")
	binDir := t.TempDir()
	workDir := t.TempDir()

	ec, err := testLoader(binDir, workDir).Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(binDir, "nestjs-generator"), ec.RootPath)
	assert.Equal(t, filepath.Join(binDir, "nestjs-generator", "generate_project.sh"), ec.GeneratorScriptPath)
	assert.Equal(t, filepath.Join(binDir, "nestjs-generator", "features", "add_module.sh"), ec.ModuleScriptPath)
	assert.Equal(t, filepath.Join(binDir, "nestgen"), ec.EntryPoint)
	assert.Equal(t, workDir, ec.WorkDir)
}

func TestLoad_EnvOverride(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvRoot, root)
	t.Setenv(EnvConfig, "")

	ec, err := testLoader(t.TempDir(), t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, root, ec.RootPath)
	assert.Equal(t, filepath.Join(root, "features"), ec.FeaturesPath)
}

func TestLoad_RelativeEnvOverride(t *testing.T) {
	workDir := t.TempDir()
	t.Setenv(EnvRoot, "toolkit")
	t.Setenv(EnvConfig, "")

	ec, err := testLoader(t.TempDir(), workDir).Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workDir, "toolkit"), ec.RootPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvConfig, "")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nestgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: /opt/nestgen/toolkit\n"), 0644))

	l := testLoader(t.TempDir(), t.TempDir())
	l.ConfigFile = cfgPath

	ec, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/opt/nestgen/toolkit"), ec.RootPath)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	t.Setenv(EnvRoot, "")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nestgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: /srv/toolkit\n"), 0644))
	t.Setenv(EnvConfig, cfgPath)

	ec, err := testLoader(t.TempDir(), t.TempDir()).Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/srv/toolkit"), ec.RootPath)
}

// TestLoad_EnvBeatsConfigFile checks the documented precedence.
func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	envRoot := t.TempDir()
	t.Setenv(EnvRoot, envRoot)
	t.Setenv(EnvConfig, "")

	cfgPath := filepath.Join(t.TempDir(), "nestgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("root: /from/file\n"), 0644))

	l := testLoader(t.TempDir(), t.TempDir())
	l.ConfigFile = cfgPath

	ec, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, envRoot, ec.RootPath)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvConfig, "")

	l := testLoader(t.TempDir(), t.TempDir())
	l.ConfigFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := l.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("getwd fails", func(t *testing.T) {
		l := testLoader(t.TempDir(), "")
		l.Getwd = func() (string, error) { return "", errors.New("boom") }
		_, err := l.Load()
		assert.Error(t, err)
	})

	t.Run("executable fails", func(t *testing.T) {
		l := testLoader("", t.TempDir())
		l.Executable = func() (string, error) { return "", errors.New("boom") }
		_, err := l.Load()
		assert.Error(t, err)
	})
}

// TestLoad_FollowsSymlink checks that a symlinked binary resolves its
// toolkit next to the real executable.
func TestLoad_FollowsSymlink(t *testing.T) {
	t.Setenv(EnvRoot, "")
	t.Setenv(EnvConfig, "")

	realDir := t.TempDir()
	realExe := filepath.Join(realDir, "nestgen")
	require.NoError(t, os.WriteFile(realExe, []byte(""), 0755))

	linkDir := t.TempDir()
	link := filepath.Join(linkDir, "nestgen")
	if err := os.Symlink(realExe, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	l := &Loader{
		Executable: func() (string, error) { return link, nil },
		Getwd:      func() (string, error) { return linkDir, nil },
	}
	ec, err := l.Load()
	require.NoError(t, err)

	resolvedDir, err := filepath.EvalSymlinks(realDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resolvedDir, "nestjs-generator"), ec.RootPath)
}
