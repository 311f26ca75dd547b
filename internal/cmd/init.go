package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"svcparams/internal/config"
	"svcparams/internal/config/yamlstore"
	"svcparams/internal/configservice"
	"svcparams/internal/params"
	paramstore "svcparams/internal/params/yamlstore"

	"github.com/spf13/cobra"
)

// newInitCmd creates the init command.
// Note: init doesn't use the provider's App since it creates the workspace.
func newInitCmd(provider *AppProvider) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new svcparams workspace",
		Long: `Initialize a new svcparams workspace.

Creates .svcparams/ with default settings and an empty parameters file in
--path, SVCPARAMS_DIR or the current directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := provider.Out
			if out == nil {
				out = os.Stdout
			}
			return runInit(out, provider.WorkspacePath, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Reinitialize even if .svcparams exists")

	return cmd
}

func runInit(out io.Writer, base string, force bool) error {
	// Path resolution: --path > SVCPARAMS_DIR > CWD
	if base == "" {
		base = os.Getenv(config.EnvDir)
	}
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
		base = cwd
	}

	dir, err := configservice.NormalizeDir(base)
	if err != nil {
		return err
	}
	paths := config.PathsFor(dir)

	if _, err := os.Stat(paths.SettingsFile); err == nil {
		if !force {
			return errors.New("svcparams workspace already exists (use --force to reinitialize)")
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", config.DirName, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s directory: %w", config.DirName, err)
	}

	settings, err := yamlstore.New(paths.SettingsFile)
	if err != nil {
		return fmt.Errorf("creating settings store: %w", err)
	}
	if err := config.ApplyDefaults(settings); err != nil {
		return fmt.Errorf("writing default settings: %w", err)
	}

	// Existing parameters survive --force; the file is only rewritten.
	store, err := paramstore.New(paths.ParamsFile(settings))
	if err != nil {
		return fmt.Errorf("opening params file: %w", err)
	}
	if err := store.Update(func(*params.Parameters) {}); err != nil {
		return fmt.Errorf("writing params file: %w", err)
	}

	fmt.Fprintf(out, "Initialized svcparams workspace at %s\n", dir)
	return nil
}
