package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/nestgen/internal/doctor"
	"github.com/shinji-kodama/nestgen/internal/model"
)

// doctorFlags holds the flag values for the doctor command.
type doctorFlags struct {
	format string // --format: text, json or yaml
}

// newDoctorCommand creates the "doctor" cobra command.
func newDoctorCommand(inv *invocation) *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the nestgen environment",
		Long: `Check that the generator toolkit is installed and nestgen is on PATH.

Failed checks are reported, not raised: doctor exits 0 whatever the checks
find, including when the toolkit itself cannot be located. Missing optional
tools (bash, node, git, Docker) are shown but do not change the verdict.
An invalid --format value is a usage error and exits 1.

Examples:
  nestgen doctor
  nestgen doctor --format yaml
  nestgen doctor --json`,

		// Extra arguments are ignored.
		Args: cobra.ArbitraryArgs,

		Annotations: map[string]string{annotationAdvisory: "true"},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd.Context(), inv, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(doctor.FormatText), "Output format: text, json, yaml (invalid values exit 1)")

	return cmd
}

func runDoctor(ctx context.Context, inv *invocation, flags *doctorFlags) error {
	app := inv.app

	format, err := doctor.ParseFormat(flags.format)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "invalid --format", err)
	}
	if IsJSONOutput() {
		format = doctor.FormatJSON
	}

	if format == doctor.FormatText {
		printBanner(app.Stdout)
	}

	d := doctor.New(inv.ec, app.Probes)
	if inv.loadErr != nil {
		d = doctor.NewUnresolved(inv.loadErr, app.Probes)
	}

	report := d.Run(ctx)
	VerboseLog("Doctor verdict for %s: ok=%t", report.Root, report.AllOK())

	if err := report.Render(app.Stdout, format); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to render report", err)
	}
	return nil
}
