package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewBuildCommand creates the build subcommand.
func NewBuildCommand(options *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Generate entry file with discovered components and bundle the project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := options.Logger(cmd.ErrOrStderr())

			generator, err := options.Generator(logger)
			if err != nil {
				return err
			}
			defer generator.Close()

			result, err := generator.Build(cmd.Context())
			if err != nil {
				color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "Build failed: %v\n", err)

				return err
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Build completed successfully.\n")
			fmt.Fprintf(cmd.OutOrStdout(), "  Components: %d (%s bootstrap, %s imports)\n",
				len(result.Names), result.Shape, result.Style)

			return nil
		},
	}
}
