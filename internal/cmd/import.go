package cmd

import (
	"fmt"

	"svcparams/internal/config"
	"svcparams/internal/params"
	"svcparams/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// importResult is the JSON output of the import command.
type importResult struct {
	File     string   `json:"file"`
	Prefix   string   `json:"prefix"`
	Group    string   `json:"group"`
	Imported int      `json:"imported"`
	Ignored  int      `json:"ignored"`
	Skipped  []string `json:"skipped,omitempty"`
	Replaced bool     `json:"replaced"`
}

// newImportCmd creates the "import" command.
func newImportCmd(provider *AppProvider) *cobra.Command {
	var (
		prefix  string
		group   string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import parameters from payment additional data",
		Long: `Import the additional data returned with a payment request.

Every entry whose key starts with the prefix (import.prefix, default
"threeds2.") is stored in the target group (import.group, default
threeDS2DirectoryServerInformation) with the prefix removed. Other entries
are ignored.

The file may be the flat additional-data object or a payment response
holding it under "additionalData", as JSON (.json), YAML (.yaml, .yml) or
TOML (.toml). Use "-" to read JSON from stdin. Bare dotted TOML keys
(threeds2.publicKey = "...") and quoted ones import the same way.
Numbers are copied digit for digit.

Examples:
  svcparams import payment-response.json
  svcparams import additional-data.yaml --replace
  curl ... | svcparams import -
  svcparams import data.json --prefix custom. --group sandbox`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			log := app.log()

			settings := config.Resolve(app.Settings)
			if cmd.Flags().Changed("prefix") {
				settings.ImportPrefix = prefix
			}
			if cmd.Flags().Changed("group") {
				settings.ImportGroup = params.Group(group)
			}

			path := args[0]
			doc, err := source.Load(path, app.In)
			if err != nil {
				return err
			}
			for _, k := range doc.Skipped {
				log.Debug("skipping non-scalar entry", zap.String("key", k))
			}

			n, err := app.Params.Import(doc.Data, settings.ImportPrefix, settings.ImportGroup, replace)
			if err != nil {
				return fmt.Errorf("importing parameters: %w", err)
			}
			log.Info("imported additional data",
				zap.String("file", path),
				zap.String("group", groupLabel(settings.ImportGroup)),
				zap.Int("imported", n),
				zap.Int("ignored", len(doc.Data)-n),
				zap.Bool("replace", replace))

			if app.JSON {
				return app.writeJSON(importResult{
					File:     path,
					Prefix:   settings.ImportPrefix,
					Group:    string(settings.ImportGroup),
					Imported: n,
					Ignored:  len(doc.Data) - n,
					Skipped:  doc.Skipped,
					Replaced: replace,
				})
			}

			if n == 0 {
				fmt.Fprintf(app.Out, "%s no entries with prefix %q in %s\n",
					app.WarnColor("Warning:"), settings.ImportPrefix, path)
				return nil
			}
			fmt.Fprintf(app.Out, "%s %d parameter(s) into %s\n",
				app.SuccessColor("Imported"), n, groupLabel(settings.ImportGroup))
			return nil
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix to import (default: import.prefix setting)")
	cmd.Flags().StringVarP(&group, "group", "g", "", "Target group (default: import.group setting)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Clear the target group before importing")

	return cmd
}
