// Package cmd implements the svcparams command-line interface.
package cmd

import (
	"fmt"
	"io"
	"os"
	"sync"

	"svcparams/internal/config"
	"svcparams/internal/configservice"
	"svcparams/internal/logging"
	paramstore "svcparams/internal/params/yamlstore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// AppProvider lazily initializes the App on first use.
type AppProvider struct {
	once sync.Once
	app  *App
	err  error

	// Config captured from flags before Execute()
	WorkspacePath string
	JSONOutput    bool
	Verbose       bool
	In            io.Reader
	Out           io.Writer
	Err           io.Writer
}

// Get returns the App, initializing it on first call.
func (p *AppProvider) Get() (*App, error) {
	p.once.Do(func() {
		if p.app == nil {
			p.app, p.err = p.init()
		}
	})
	return p.app, p.err
}

// NewTestProvider creates a provider pre-initialized with the given App.
// Used for testing commands with a test App.
func NewTestProvider(app *App) *AppProvider {
	return &AppProvider{
		app:        app,
		JSONOutput: app.JSON,
		In:         app.In,
		Out:        app.Out,
		Err:        app.Err,
	}
}

func (p *AppProvider) init() (*App, error) {
	paths, err := configservice.ResolvePaths(p.WorkspacePath)
	if err != nil {
		return nil, err
	}

	settingsStore, err := configservice.OpenSettings(paths)
	if err != nil {
		return nil, err
	}
	settings := config.Resolve(settingsStore)

	in := p.In
	if in == nil {
		in = os.Stdin
	}
	out := p.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := p.Err
	if errOut == nil {
		errOut = os.Stderr
	}

	level := settings.LogLevel
	if p.Verbose {
		level = "debug"
	}
	logOpts := logging.Options{Level: level, File: settings.LogFile, Out: errOut}
	if _, err := logging.ParseLevel(level); err != nil {
		// Fall back so "config set log.level" can still repair the setting.
		fmt.Fprintf(errOut, "warning: %v; using warn\n", err)
		logOpts.Level = "warn"
	}
	logger, err := logging.New(logOpts)
	if err != nil {
		return nil, err
	}

	paramsFile := paths.ParamsFile(settingsStore)
	store, err := paramstore.New(paramsFile)
	if err != nil {
		return nil, err
	}
	logger.Debug("workspace opened",
		zap.String("dir", paths.Dir),
		zap.String("params", store.Path()))

	return &App{
		Params:      store,
		Settings:    settingsStore,
		Paths:       paths,
		ImportGroup: settings.ImportGroup,
		Logger:      logger,
		In:          in,
		Out:         out,
		Err:         errOut,
		JSON:        p.JSONOutput,
	}, nil
}

// Execute runs the CLI.
func Execute() error {
	provider := &AppProvider{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}

	rootCmd := newRootCmd(provider)
	err := rootCmd.Execute()
	if provider.app != nil && provider.app.Logger != nil {
		_ = provider.app.Logger.Sync()
	}
	return err
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(provider *AppProvider) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "svcparams",
		Short: "Manage 3-D Secure 2 SDK service parameters",
		Long: `svcparams keeps the parameters a 3-D Secure 2 SDK reads at
initialization. Parameters are grouped key/value pairs stored in
.svcparams/params.yaml; the SDK reads its directory server information
(directoryServerId, publicKey) from the threeDS2DirectoryServerInformation
group, usually filled by importing the additional data of a payment
response.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags - these populate the provider config
	rootCmd.PersistentFlags().BoolVar(&provider.JSONOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&provider.WorkspacePath, "path", "", "Path to workspace or .svcparams directory (default: search from cwd)")
	rootCmd.PersistentFlags().BoolVarP(&provider.Verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	rootCmd.AddCommand(newInitCmd(provider))
	rootCmd.AddCommand(newImportCmd(provider))
	rootCmd.AddCommand(newGetCmd(provider))
	rootCmd.AddCommand(newSetCmd(provider))
	rootCmd.AddCommand(newUnsetCmd(provider))
	rootCmd.AddCommand(newListCmd(provider))
	rootCmd.AddCommand(newGroupsCmd(provider))
	rootCmd.AddCommand(newValidateCmd(provider))
	rootCmd.AddCommand(newConfigCmd(provider))
	rootCmd.AddCommand(newVersionCmd(provider))

	return rootCmd
}
