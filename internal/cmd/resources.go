package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-quasargen/internal/output"
	"github.com/goliatone/go-quasargen/pkg/generator"
	pkgopenapi "github.com/goliatone/go-quasargen/pkg/openapi"
)

func newResourcesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resources [source]",
		Short: "List the resources of an OpenAPI document",
		Long: `List the resources quasargen can generate from an OpenAPI document.

The source is a file path or an http(s) URL. When omitted, the source from
the config file (or QUASARGEN_SOURCE) is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitError(runResources(cmd, opts, args))
		},
	}
}

func runResources(cmd *cobra.Command, opts *globalOptions, args []string) error {
	cfg := opts.config.WithDefaults()
	if len(args) > 0 {
		cfg.Source = args[0]
	}
	if cfg.Source == "" {
		return &ExitError{Code: ExitUsageError, Err: errors.New("a source document is required")}
	}

	src, err := pkgopenapi.ParseSource(cfg.Source)
	if err != nil {
		return &ExitError{Code: ExitUsageError, Err: err}
	}

	gen := generator.New(generator.WithLogger(output.Logger), generator.WithTimeout(cfg.Timeout))
	var api pkgopenapi.API
	err = output.RunWithSpinner(cmd.Context(), "Loading "+cfg.Source, func(ctx context.Context) error {
		var err error
		api, err = gen.Describe(ctx, generator.Request{Source: src})
		return err
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if api.Title != "" {
		fmt.Fprintln(out, output.StyleSummary.Render(api.Title))
	}
	if api.Entrypoint != "" {
		fmt.Fprintln(out, output.StyleDim.Render("entrypoint: ")+api.Entrypoint)
	}
	for _, res := range api.Resources {
		name := fmt.Sprintf("%-24s", res.Name)
		fmt.Fprintf(out, "%s %-24s %s\n", output.StyleNoun.Render(name), res.Title, output.StyleDim.Render(res.Path))
	}
	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("%d resources", len(api.Resources))))
	if len(api.Resources) == 0 {
		return generator.ErrNoResources
	}
	return nil
}

func resourceList(names []string) string {
	if len(names) == 0 {
		return "all"
	}
	return strings.Join(names, ", ")
}
