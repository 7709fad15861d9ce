package doctor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/nestgen/internal/model"
)

// fakeProbes returns probes that answer from fixed sets instead of the
// real filesystem, PATH and Docker.
func fakeProbes(existing map[string]bool, dirs map[string]bool, onPath map[string]bool, docker bool) Probes {
	return Probes{
		Exists: func(path string) bool { return existing[path] || dirs[path] },
		IsDir:  func(path string) bool { return dirs[path] },
		LookPath: func(name string) (string, error) {
			if onPath[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
		DockerReachable: func(context.Context) bool { return docker },
	}
}

func testContext() model.ExecutionContext {
	return model.NewExecutionContext("/opt/nestgen/nestjs-generator", "/opt/nestgen/nestgen", "/work")
}

func labels(r Report) []string {
	out := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res.Label)
	}
	return out
}

// TestRun_Order pins the battery order so output stays deterministic.
func TestRun_Order(t *testing.T) {
	ec := testContext()
	report := New(ec, fakeProbes(nil, nil, nil, false)).Run(context.Background())

	assert.Equal(t, []string{
		"nestgen entry point",
		"generate_project.sh",
		"features/",
		"add_module.sh",
		"nestgen command (global)",
		"bash on PATH",
		"node on PATH",
		"git on PATH",
		"Docker daemon reachable",
	}, labels(report))
	assert.Equal(t, ec.RootPath, report.Root)
}

func TestRun_AllPass(t *testing.T) {
	ec := testContext()
	probes := fakeProbes(
		map[string]bool{ec.EntryPoint: true, ec.GeneratorScriptPath: true, ec.ModuleScriptPath: true},
		map[string]bool{ec.FeaturesPath: true},
		map[string]bool{"nestgen": true, "bash": true, "node": true, "git": true},
		true,
	)

	report := New(ec, probes).Run(context.Background())
	for _, res := range report.Results {
		assert.True(t, res.OK, res.Label)
	}
	assert.True(t, report.AllOK())
}

// TestRun_AllFail checks that doctor reports instead of failing when
// nothing is in place.
func TestRun_AllFail(t *testing.T) {
	report := New(testContext(), fakeProbes(nil, nil, nil, false)).Run(context.Background())

	require.Len(t, report.Results, 9)
	for _, res := range report.Results {
		assert.False(t, res.OK, res.Label)
	}
	assert.False(t, report.AllOK())
}

// TestRun_OptionalDoNotAffectVerdict checks that missing optional tools
// leave the aggregate verdict green.
func TestRun_OptionalDoNotAffectVerdict(t *testing.T) {
	ec := testContext()
	probes := fakeProbes(
		map[string]bool{ec.EntryPoint: true, ec.GeneratorScriptPath: true, ec.ModuleScriptPath: true},
		map[string]bool{ec.FeaturesPath: true},
		map[string]bool{"nestgen": true},
		false,
	)

	report := New(ec, probes).Run(context.Background())
	assert.True(t, report.AllOK())
}

// TestRun_FeaturesMustBeDirectory checks that a plain file named features
// does not pass the directory check.
func TestRun_FeaturesMustBeDirectory(t *testing.T) {
	ec := testContext()
	probes := fakeProbes(map[string]bool{ec.FeaturesPath: true}, nil, nil, false)

	report := New(ec, probes).Run(context.Background())
	assert.False(t, report.Results[2].OK)
}

func TestRun_EmptyEntryPoint(t *testing.T) {
	ec := model.NewExecutionContext("/root", "", "/work")
	probes := fakeProbes(map[string]bool{"": true}, nil, nil, false)

	report := New(ec, probes).Run(context.Background())
	assert.False(t, report.Results[0].OK)
}

// TestRun_Unresolved checks that a toolkit that could not be located is
// reported as a failed check instead of an error.
func TestRun_Unresolved(t *testing.T) {
	probed := false
	probes := fakeProbes(nil, nil, map[string]bool{"nestgen": true, "bash": true}, false)
	probes.Exists = func(string) bool {
		probed = true
		return true
	}

	report := NewUnresolved(errors.New("config file missing"), probes).Run(context.Background())

	require.Len(t, report.Results, 10)
	assert.Equal(t, LabelToolkitResolved, report.Results[0].Label)
	assert.False(t, report.Results[0].OK)
	assert.False(t, report.Results[0].Optional)
	for _, res := range report.Results[1:5] {
		assert.False(t, res.OK, res.Label)
	}
	assert.True(t, report.Results[5].OK, "global command is still looked up")
	assert.True(t, report.Results[6].OK, "bash is still looked up")
	assert.False(t, probed, "toolkit paths must not be probed")
	assert.Equal(t, "config file missing", report.Problem)
	assert.False(t, report.AllOK())

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, FormatText))
	assert.Contains(t, buf.String(), "❌ "+LabelToolkitResolved)
	assert.Contains(t, buf.String(), "Toolkit: config file missing")
}

// TestDefaultProbes exercises the real probes against a temporary toolkit.
func TestDefaultProbes(t *testing.T) {
	root := t.TempDir()
	ec := model.NewExecutionContext(root, filepath.Join(root, "nestgen"), root)
	require.NoError(t, os.WriteFile(ec.EntryPoint, nil, 0755))
	require.NoError(t, os.MkdirAll(ec.FeaturesPath, 0755))
	require.NoError(t, os.WriteFile(ec.GeneratorScriptPath, nil, 0755))

	probes := DefaultProbes()
	probes.DockerReachable = func(context.Context) bool { return false }

	report := New(ec, probes).Run(context.Background())
	assert.True(t, report.Results[0].OK, "entry point")
	assert.True(t, report.Results[1].OK, "generate_project.sh")
	assert.True(t, report.Results[2].OK, "features/")
	assert.False(t, report.Results[3].OK, "add_module.sh is missing")
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", " yaml "} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func sampleReport() Report {
	return Report{
		Root: "/opt/nestgen/nestjs-generator",
		Results: []model.DiagnosticResult{
			{Label: "generate_project.sh", OK: true},
			{Label: "add_module.sh", OK: false},
			{Label: "node on PATH", OK: false, Optional: true},
		},
	}
}

func TestRender_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Render(&buf, FormatText))

	out := buf.String()
	assert.Contains(t, out, "✅ generate_project.sh")
	assert.Contains(t, out, "❌ add_module.sh")
	assert.Contains(t, out, "Optional tools")
	assert.Contains(t, out, "node on PATH")
	assert.Contains(t, out, "some checks need attention")
}

func TestRender_TextAllOK(t *testing.T) {
	r := Report{Results: []model.DiagnosticResult{{Label: "generate_project.sh", OK: true}}}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatText))
	assert.Contains(t, buf.String(), "everything is OK")
	assert.NotContains(t, buf.String(), "Optional tools")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Render(&buf, FormatJSON))

	var got struct {
		Root   string `json:"root"`
		OK     bool   `json:"ok"`
		Checks []struct {
			Label    string `json:"label"`
			OK       bool   `json:"ok"`
			Optional bool   `json:"optional"`
		} `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/opt/nestgen/nestjs-generator", got.Root)
	assert.False(t, got.OK)
	require.Len(t, got.Checks, 3)
	assert.Equal(t, "add_module.sh", got.Checks[1].Label)
	assert.True(t, got.Checks[2].Optional)
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport().Render(&buf, FormatYAML))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "/opt/nestgen/nestjs-generator", got["root"])
	assert.Equal(t, false, got["ok"])
	checks, ok := got["checks"].([]any)
	require.True(t, ok)
	assert.Len(t, checks, 3)
	_, hasProblem := got["problem"]
	assert.False(t, hasProblem)
}

func TestRender_JSONProblem(t *testing.T) {
	r := sampleReport()
	r.Problem = "boom"

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "boom", got["problem"])
}
