// Package cli implements the gallctl command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/gallformers/internal/version"
)

// DefaultDataFile is the dataset used when --file is not given.
const DefaultDataFile = "data/seed.yaml"

// NewRootCmd builds the gallctl command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gallctl",
		Short: "gallformers toolbox",
		Long: `gallctl seeds gallformers storage and runs the glossary linker and
gall filter offline against a YAML dataset.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.AddCommand(
		newVersionCmd(),
		newSeedCmd(),
		newLinkCmd(),
		newSearchCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gallctl %s (%s, %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
