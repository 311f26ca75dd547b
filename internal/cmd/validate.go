package cmd

import (
	"fmt"

	"svcparams/internal/requirements"

	"github.com/spf13/cobra"
)

// newValidateCmd creates the "validate" command.
func newValidateCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the parameters the SDK requires",
		Long: `Check that the parameters required to initialize the SDK are present:
directoryServerId and publicKey in the threeDS2DirectoryServerInformation
group. Exits non-zero when something is missing.

Examples:
  svcparams validate
  svcparams validate --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			problems := requirements.Check(app.Params.Params())

			if app.JSON {
				if problems == nil {
					problems = []requirements.Problem{}
				}
				if err := app.writeJSON(map[string]interface{}{
					"valid":    len(problems) == 0,
					"problems": problems,
				}); err != nil {
					return err
				}
				if len(problems) > 0 {
					return fmt.Errorf("parameters have %d problem(s)", len(problems))
				}
				return nil
			}

			if len(problems) == 0 {
				fmt.Fprintln(app.Out, app.SuccessColor("Parameters are valid."))
				return nil
			}

			fmt.Fprintln(app.Out, app.WarnColor("Parameter problems:"))
			for _, p := range problems {
				fmt.Fprintf(app.Out, "  %s\n", p)
			}
			return requirements.Error(problems)
		},
	}

	return cmd
}
