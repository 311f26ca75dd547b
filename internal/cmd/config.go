package cmd

import (
	"fmt"

	"svcparams/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage svcparams settings",
		Long: `Manage svcparams settings.

Settings are stored as flat key-value pairs in .svcparams/settings.yaml.
They control the CLI itself, not the SDK parameters.

Keys:
  import.prefix  Additional-data key prefix to import (default "threeds2.")
  import.group   Group imports are written to
  params.file    Parameters file, relative to .svcparams
  log.level      debug, info, warn or error
  log.file       Rotate logs into this file instead of stderr

Environment variables SVCPARAMS_PREFIX, SVCPARAMS_GROUP,
SVCPARAMS_LOG_LEVEL and SVCPARAMS_LOG_FILE override settings without
changing the file. A .env file in .svcparams is loaded first.

Subcommands:
  get       Get a setting
  set       Set a setting
  list      List all settings
  unset     Remove a setting
  validate  Validate settings`,
	}

	cmd.AddCommand(newConfigGetCmd(provider))
	cmd.AddCommand(newConfigSetCmd(provider))
	cmd.AddCommand(newConfigListCmd(provider))
	cmd.AddCommand(newConfigUnsetCmd(provider))
	cmd.AddCommand(newConfigValidateCmd(provider))

	return cmd
}

// newConfigGetCmd creates the "config get" subcommand.
func newConfigGetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a setting",
		Long: `Get the value of a setting, including environment overrides.

Prints the bare value if the key is set, or "key (not set)" if missing.

Examples:
  svcparams config get import.prefix
  svcparams config get log.level`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := app.Settings.Get(key)

			if app.JSON {
				return app.writeJSON(map[string]interface{}{
					"key":   key,
					"value": value,
					"set":   ok,
				})
			}

			if ok {
				fmt.Fprintln(app.Out, value)
			} else {
				fmt.Fprintf(app.Out, "%s (not set)\n", key)
			}
			return nil
		},
	}

	return cmd
}

// newConfigSetCmd creates the "config set" subcommand.
func newConfigSetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a setting",
		Long: `Set a setting to a value.

Examples:
  svcparams config set log.level debug
  svcparams config set import.group sandbox`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]
			value := args[1]

			if err := config.ValidateValue(key, value); err != nil {
				return err
			}
			if err := app.Settings.Set(key, value); err != nil {
				return fmt.Errorf("setting config: %w", err)
			}

			if app.JSON {
				return app.writeJSON(map[string]string{
					"key":   key,
					"value": value,
				})
			}

			fmt.Fprintf(app.Out, "Set %s = %s\n", key, value)
			return nil
		},
	}

	return cmd
}

// newConfigListCmd creates the "config list" subcommand.
func newConfigListCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		Long: `List all settings, with defaults filled in for unset core keys.

Entries are sorted alphabetically by key.

Examples:
  svcparams config list
  svcparams config list --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			all := app.Settings.All()
			for k, v := range config.DefaultValues() {
				if _, exists := all[k]; !exists {
					all[k] = v
				}
			}

			if app.JSON {
				return app.writeJSON(all)
			}

			fmt.Fprintln(app.Out, "Configuration:")
			for _, k := range sortedKeys(all) {
				fmt.Fprintf(app.Out, "  %s = %s\n", k, all[k])
			}
			return nil
		},
	}

	return cmd
}

// newConfigUnsetCmd creates the "config unset" subcommand.
func newConfigUnsetCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a setting",
		Long: `Remove a setting. Core keys fall back to their defaults.

Examples:
  svcparams config unset log.file`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			key := args[0]

			if err := app.Settings.Unset(key); err != nil {
				return fmt.Errorf("unsetting config: %w", err)
			}

			if app.JSON {
				return app.writeJSON(map[string]string{
					"key": key,
				})
			}

			fmt.Fprintf(app.Out, "Unset %s\n", key)
			return nil
		},
	}

	return cmd
}

// newConfigValidateCmd creates the "config validate" subcommand.
func newConfigValidateCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate settings",
		Long: `Validate the current settings.

Checks that known keys have valid values. Unknown keys are always
accepted.

Examples:
  svcparams config validate
  svcparams config validate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			verr := config.Validate(app.Settings)

			if app.JSON {
				result := map[string]interface{}{
					"valid": verr == nil,
				}
				if verr != nil {
					result["error"] = verr.Error()
				}
				return app.writeJSON(result)
			}

			if verr != nil {
				return verr
			}
			fmt.Fprintln(app.Out, "Configuration is valid.")
			return nil
		},
	}

	return cmd
}
