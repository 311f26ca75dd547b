package cmd

import (
	"fmt"

	"svcparams/internal/params"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newGetCmd creates the "get" command.
func newGetCmd(provider *AppProvider) *cobra.Command {
	var gf groupFlags

	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get a parameter value",
		Long: `Get the value of a parameter.

Prints the bare value if the key is set, or "key (not set)" if missing.
A group that was never written reads like an empty group.

Examples:
  svcparams get locale
  svcparams get directoryServerId --service
  svcparams get publicKey --group threeDS2DirectoryServerInformation`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			group, err := gf.resolve(app)
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := app.Params.Get(key, group)

			if app.JSON {
				return app.writeJSON(map[string]interface{}{
					"group": string(group),
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

	gf.register(cmd)
	return cmd
}

// newSetCmd creates the "set" command.
func newSetCmd(provider *AppProvider) *cobra.Command {
	var gf groupFlags

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a parameter value",
		Long: `Set a parameter to a value. The group is created on first write.

Examples:
  svcparams set locale en-GB
  svcparams set directoryServerId F013371337 --service`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			group, err := gf.resolve(app)
			if err != nil {
				return err
			}

			key, value := args[0], args[1]
			if err := app.Params.Set(key, params.Some(value), group); err != nil {
				return fmt.Errorf("setting parameter: %w", err)
			}
			app.log().Debug("parameter set", zap.String("group", groupLabel(group)), zap.String("key", key))

			if app.JSON {
				return app.writeJSON(map[string]string{
					"group": string(group),
					"key":   key,
					"value": value,
				})
			}

			fmt.Fprintf(app.Out, "Set %s/%s = %s\n", groupLabel(group), key, value)
			return nil
		},
	}

	gf.register(cmd)
	return cmd
}

// newUnsetCmd creates the "unset" command.
func newUnsetCmd(provider *AppProvider) *cobra.Command {
	var gf groupFlags

	cmd := &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a parameter",
		Long: `Remove a parameter.

The key is removed regardless of whether it was set.

Examples:
  svcparams unset locale
  svcparams unset publicKey --service`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}
			group, err := gf.resolve(app)
			if err != nil {
				return err
			}

			key := args[0]
			if err := app.Params.Remove(key, group); err != nil {
				return fmt.Errorf("removing parameter: %w", err)
			}
			app.log().Debug("parameter removed", zap.String("group", groupLabel(group)), zap.String("key", key))

			if app.JSON {
				return app.writeJSON(map[string]string{
					"group": string(group),
					"key":   key,
				})
			}

			fmt.Fprintf(app.Out, "Unset %s/%s\n", groupLabel(group), key)
			return nil
		},
	}

	gf.register(cmd)
	return cmd
}

// newListCmd creates the "list" command.
func newListCmd(provider *AppProvider) *cobra.Command {
	var gf groupFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parameters",
		Long: `List parameters grouped by group, sorted by key.

Without --group or --service every group is listed.

Examples:
  svcparams list
  svcparams list --service
  svcparams list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			p := app.Params.Params()
			groups := p.Groups()
			if cmd.Flags().Changed("group") || gf.service {
				group, err := gf.resolve(app)
				if err != nil {
					return err
				}
				groups = []params.Group{group}
			}

			if app.JSON {
				result := map[string]interface{}{}
				named := map[string]map[string]string{}
				for _, g := range groups {
					if g == params.DefaultGroup {
						result["default"] = p.Group(g)
						continue
					}
					named[string(g)] = p.Group(g)
				}
				if len(named) > 0 {
					result["groups"] = named
				}
				return app.writeJSON(result)
			}

			printed := 0
			for _, g := range groups {
				keys := p.Keys(g)
				if len(keys) == 0 {
					continue
				}
				fmt.Fprintf(app.Out, "[%s]\n", groupLabel(g))
				for _, k := range keys {
					v, _ := p.GetIn(k, g)
					fmt.Fprintf(app.Out, "  %s = %s\n", k, v)
				}
				printed++
			}
			if printed == 0 {
				fmt.Fprintln(app.Out, "No parameters set")
			}
			return nil
		},
	}

	gf.register(cmd)
	return cmd
}

// newGroupsCmd creates the "groups" command.
func newGroupsCmd(provider *AppProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List parameter groups",
		Long: `List the groups holding at least one parameter.

The default group is shown as "(default)" (or "" in JSON output).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := provider.Get()
			if err != nil {
				return err
			}

			groups := app.Params.Params().Groups()

			if app.JSON {
				names := make([]string, len(groups))
				for i, g := range groups {
					names[i] = string(g)
				}
				return app.writeJSON(map[string][]string{"groups": names})
			}

			if len(groups) == 0 {
				fmt.Fprintln(app.Out, "No parameters set")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintln(app.Out, groupLabel(g))
			}
			return nil
		},
	}

	return cmd
}
