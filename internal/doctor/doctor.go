// Package doctor runs nestgen's environment diagnostics.
//
// The battery is fixed and always runs in the same order. A failing check
// is reported, never raised: diagnostics are advisory and `nestgen doctor`
// exits successfully regardless of the verdict.
package doctor

import (
	"context"
	"os"
	"os/exec"

	"github.com/shinji-kodama/nestgen/internal/docker"
	"github.com/shinji-kodama/nestgen/internal/model"
)

// GlobalCommand is the binary name looked up on PATH.
const GlobalCommand = "nestgen"

// LabelToolkitResolved is the check reported when the ExecutionContext
// itself could not be resolved.
const LabelToolkitResolved = "generator toolkit resolved"

// Probes holds the side-effecting lookups a Doctor performs, so tests can
// substitute them.
type Probes struct {
	// Exists reports whether a file or directory exists at path.
	Exists func(path string) bool

	// IsDir reports whether path is an existing directory.
	IsDir func(path string) bool

	// LookPath resolves a binary on PATH.
	LookPath func(name string) (string, error)

	// DockerReachable reports whether a Docker daemon answers.
	DockerReachable func(ctx context.Context) bool
}

// DefaultProbes returns probes backed by the real filesystem, PATH and
// Docker daemon.
func DefaultProbes() Probes {
	return Probes{
		Exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		IsDir: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && info.IsDir()
		},
		LookPath:        exec.LookPath,
		DockerReachable: docker.Reachable,
	}
}

// Doctor runs the diagnostic battery against one ExecutionContext.
type Doctor struct {
	ec         model.ExecutionContext
	probes     Probes
	resolveErr error
}

// New creates a Doctor.
func New(ec model.ExecutionContext, probes Probes) *Doctor {
	return &Doctor{ec: ec, probes: probes}
}

// NewUnresolved creates a Doctor for an invocation whose toolkit location
// could not be resolved. The toolkit checks are reported as failed without
// probing; the PATH and Docker checks still run.
func NewUnresolved(err error, probes Probes) *Doctor {
	return &Doctor{probes: probes, resolveErr: err}
}

// Run executes every check in order and returns the report. It never fails.
//
// Required checks, in order: entry point, project generator script,
// features directory, module generator script, global nestgen command.
// Optional checks follow: bash, node, git and the Docker daemon. An
// unresolved toolkit adds a failed LabelToolkitResolved line first.
func (d *Doctor) Run(ctx context.Context) Report {
	resolved := d.resolveErr == nil
	exists := func(path string) bool {
		return resolved && path != "" && d.probes.Exists(path)
	}
	isDir := func(path string) bool {
		return resolved && path != "" && d.probes.IsDir(path)
	}
	onPath := func(name string) bool {
		_, err := d.probes.LookPath(name)
		return err == nil
	}

	var results []model.DiagnosticResult
	if !resolved {
		results = append(results, model.DiagnosticResult{Label: LabelToolkitResolved})
	}

	results = append(results,
		model.DiagnosticResult{Label: "nestgen entry point", OK: exists(d.ec.EntryPoint)},
		model.DiagnosticResult{Label: model.GeneratorScriptName, OK: exists(d.ec.GeneratorScriptPath)},
		model.DiagnosticResult{Label: model.FeaturesDirName + "/", OK: isDir(d.ec.FeaturesPath)},
		model.DiagnosticResult{Label: model.ModuleScriptName, OK: exists(d.ec.ModuleScriptPath)},
		model.DiagnosticResult{Label: GlobalCommand + " command (global)", OK: onPath(GlobalCommand)},
	)

	for _, tool := range []string{"bash", "node", "git"} {
		results = append(results, model.DiagnosticResult{
			Label:    tool + " on PATH",
			OK:       onPath(tool),
			Optional: true,
		})
	}

	results = append(results, model.DiagnosticResult{
		Label:    "Docker daemon reachable",
		OK:       d.probes.DockerReachable(ctx),
		Optional: true,
	})

	report := Report{Root: d.ec.RootPath, Results: results}
	if !resolved {
		report.Problem = d.resolveErr.Error()
	}
	return report
}
