package cmd

import (
	"errors"
	"sort"

	"svcparams/internal/params"

	"github.com/spf13/cobra"
)

// defaultGroupLabel is how the default group is shown to users. The
// parentheses keep it apart from a named group called "default".
const defaultGroupLabel = "(default)"

// groupFlags selects the group a parameter command works on.
type groupFlags struct {
	group   string
	service bool
}

// register adds --group and --service to cmd.
func (f *groupFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.group, "group", "g", "", "Parameter group (default: the default group)")
	cmd.Flags().BoolVarP(&f.service, "service", "s", false, "Use the service group (import.group setting)")
}

// resolve returns the selected group. --group and --service are exclusive.
func (f *groupFlags) resolve(app *App) (params.Group, error) {
	if f.service {
		if f.group != "" {
			return "", errors.New("--group and --service cannot be combined")
		}
		return app.ImportGroup, nil
	}
	return params.Group(f.group), nil
}

// groupLabel returns the display name of g.
func groupLabel(g params.Group) string {
	if g == params.DefaultGroup {
		return defaultGroupLabel
	}
	return string(g)
}

// sortedKeys returns the sorted keys of a map.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
