package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information, set with -ldflags "-X".
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show quasargen version, commit, build date and Go toolchain.`,
		RunE:  runVersion,
	}
}

func runVersion(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "quasargen version %s\n", Version)
	fmt.Fprintf(out, "  Commit:    %s\n", GitCommit)
	fmt.Fprintf(out, "  Built:     %s\n", BuildDate)
	fmt.Fprintf(out, "  Go:        %s\n", runtime.Version())
	return nil
}
