package cmd

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-quasargen/internal/config"
	"github.com/goliatone/go-quasargen/internal/output"
)

// globalOptions holds the persistent flags and the configuration loaded
// before any subcommand runs.
type globalOptions struct {
	configFile string
	verbose    bool
	config     *config.Config
}

// NewRootCmd creates the root command for the quasargen CLI.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "quasargen",
		Short: "Quasar CRUD scaffolding generator",
		Long: `quasargen reads the OpenAPI description of an API Platform backend and
generates Quasar (Vue 3 + Pinia) list, show, create and update screens for
its resources.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to config file (default "+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(newGenerateCmd(opts, nil))
	rootCmd.AddCommand(newResourcesCmd(opts))
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func (o *globalOptions) initialize() error {
	output.SetupLogging(o.verbose)

	cfg, err := config.NewLoader().Load(o.configFile)
	if err != nil {
		return &ExitError{Code: ExitUsageError, Err: err}
	}
	o.config = cfg
	output.Debug("configuration loaded", "source", cfg.Source, "output", cfg.Output)
	return nil
}
