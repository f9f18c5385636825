package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-quasargen/internal/config"
	"github.com/goliatone/go-quasargen/internal/output"
	"github.com/goliatone/go-quasargen/pkg/emit"
	"github.com/goliatone/go-quasargen/pkg/generator"
	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
	"github.com/goliatone/go-quasargen/pkg/prompt"
)

type generateOptions struct {
	resources    []string
	interactive  bool
	dryRun       bool
	force        bool
	templatesDir string
	concurrency  int
	hydraPrefix  string
	driver       prompt.Driver
}

// newGenerateCmd builds the generate command. driver replaces the terminal
// prompts of --interactive when non-nil.
func newGenerateCmd(opts *globalOptions, driver prompt.Driver) *cobra.Command {
	genOpts := &generateOptions{driver: driver}

	cmd := &cobra.Command{
		Use:   "generate [source] [output]",
		Short: "Generate Quasar screens for API resources",
		Long: `Generate Quasar list, show, create and update screens, Pinia stores,
routes and translations for the resources of an OpenAPI document.

The source is a file path or an http(s) URL, the output is the source
directory of the Quasar project. Both fall back to the config file.

Resource files are always regenerated. Shared utilities, types and
translations are only created when missing unless --force is given.`,
		Example: `  quasargen generate https://demo.api-platform.com/docs.jsonopenapi src
  quasargen generate openapi.json src --resource books --resource reviews
  quasargen generate openapi.json src --dry-run`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitError(runGenerate(cmd, opts, genOpts, args))
		},
	}

	cmd.Flags().StringSliceVarP(&genOpts.resources, "resource", "r", nil, "Resource to generate, by name or title (repeatable, default all)")
	cmd.Flags().BoolVarP(&genOpts.interactive, "interactive", "i", false, "Pick resources and options interactively")
	cmd.Flags().BoolVar(&genOpts.dryRun, "dry-run", false, "Print the file plan without writing")
	cmd.Flags().BoolVar(&genOpts.force, "force", false, "Overwrite shared files that already exist")
	cmd.Flags().StringVar(&genOpts.templatesDir, "templates-dir", "", "Directory with template overrides")
	cmd.Flags().IntVar(&genOpts.concurrency, "concurrency", 0, "Resources generated in parallel")
	cmd.Flags().StringVar(&genOpts.hydraPrefix, "hydra-prefix", "", "Prefix of Hydra collection keys")

	return cmd
}

// resolveSettings layers arguments and changed flags over the config file.
func resolveSettings(cmd *cobra.Command, base *config.Config, genOpts *generateOptions, args []string) (*config.Config, error) {
	cfg := base.WithDefaults()
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if len(args) > 1 {
		cfg.Output = args[1]
	}

	flags := cmd.Flags()
	if flags.Changed("resource") {
		cfg.Resources = genOpts.resources
	}
	if flags.Changed("force") {
		cfg.Force = genOpts.force
	}
	if flags.Changed("templates-dir") {
		cfg.TemplatesDir = genOpts.templatesDir
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = genOpts.concurrency
	}
	if flags.Changed("hydra-prefix") {
		cfg.HydraPrefix = genOpts.hydraPrefix
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: ExitUsageError, Err: err}
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, opts *globalOptions, genOpts *generateOptions, args []string) error {
	cfg, err := resolveSettings(cmd, opts.config, genOpts, args)
	if err != nil {
		return err
	}

	src, err := pkgopenapi.ParseSource(cfg.Source)
	if err != nil {
		return &ExitError{Code: ExitUsageError, Err: err}
	}

	ctx := cmd.Context()
	describer := generator.New(generator.WithLogger(output.Logger), generator.WithTimeout(cfg.Timeout))
	var api pkgopenapi.API
	err = output.RunWithSpinner(ctx, "Loading "+cfg.Source, func(ctx context.Context) error {
		var err error
		api, err = describer.Describe(ctx, generator.Request{Source: src})
		return err
	})
	if err != nil {
		return err
	}

	if genOpts.interactive {
		session := prompt.NewSession(prompt.WithDriver(genOpts.driver))
		answers, err := session.Run(ctx, api, prompt.Defaults{
			OutputDir: cfg.Output,
			Resources: cfg.Resources,
			Force:     cfg.Force,
		})
		if err != nil {
			return err
		}
		cfg.Output = answers.OutputDir
		cfg.Resources = answers.Resources
		cfg.Force = answers.Force
	}

	out := cmd.OutOrStdout()
	options := []generator.Option{
		generator.WithLogger(output.Logger),
		generator.WithConcurrency(cfg.Concurrency),
		generator.WithHydraPrefix(cfg.HydraPrefix),
		generator.WithForce(cfg.Force),
		generator.WithTemplatesDir(cfg.TemplatesDir),
		generator.WithDryRun(genOpts.dryRun),
	}
	if !genOpts.dryRun {
		options = append(options, generator.OnResourceGenerated(func(res generator.ResourceResult) {
			printReport(out, cfg.Output, res.Report)
			output.PrintHelp(out, res.Title, res.LowercaseName)
		}))
	}

	output.Debug("generating", "source", cfg.Source, "output", cfg.Output, "resources", resourceList(cfg.Resources))
	result, err := generator.New(options...).Generate(ctx, generator.Request{
		API:       &api,
		Resources: cfg.Resources,
		OutputDir: cfg.Output,
	})
	if err != nil {
		return err
	}

	if genOpts.dryRun {
		for _, res := range result.Resources {
			if res.Err == nil {
				fmt.Fprintln(out, output.StyleAction.Render("plan")+" "+output.StyleNoun.Render(res.Resource))
				printReport(out, cfg.Output, res.Report)
			}
		}
	}

	written, skipped, failed := result.Totals()
	fmt.Fprintln(out, output.FormatSummary(written, skipped, failed))

	if failedResources := result.Failed(); len(failedResources) > 0 {
		names := make([]string, len(failedResources))
		for i, res := range failedResources {
			names[i] = res.Resource
		}
		return &ExitError{
			Code:    ExitPartialFailure,
			Err:     fmt.Errorf("generation failed for %s: %w", strings.Join(names, ", "), errors.Join(errorsOf(failedResources)...)),
			Printed: true,
		}
	}
	return nil
}

func printReport(w io.Writer, outputDir string, report emit.Report) {
	for _, file := range report.Files {
		path := file.OutputPath
		if rel, err := filepath.Rel(outputDir, path); err == nil {
			path = filepath.ToSlash(rel)
		}
		fmt.Fprintln(w, output.FormatFileLine(path, string(file.Outcome)))
	}
}

func errorsOf(results []generator.ResourceResult) []error {
	out := make([]error, 0, len(results))
	for _, res := range results {
		out = append(out, res.Err)
	}
	return out
}
