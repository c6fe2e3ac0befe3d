package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/viant/asenabuild/builder"
)

// NewPreviewCommand creates the preview subcommand.
func NewPreviewCommand(options *Options) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show differences between the root file and the generated entry file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := options.Logger(cmd.ErrOrStderr())

			generator, err := options.Generator(logger)
			if err != nil {
				return err
			}
			defer generator.Close()

			result, err := generator.Generate(cmd.Context())
			if err != nil {
				return err
			}

			printDiff(cmd, builder.Diff(result.Source, result.Code))

			if !write {
				return nil
			}

			written, err := generator.Write(cmd.Context(), result)
			if err != nil {
				return err
			}
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "Entry file written: %s\n", generator.EntryPath())
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "keep the generated entry file")

	return cmd
}

func printDiff(cmd *cobra.Command, diff string) {
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case len(line) > 0 && line[0] == '+':
			added.Fprintln(cmd.OutOrStdout(), line)
		case len(line) > 0 && line[0] == '-':
			removed.Fprintln(cmd.OutOrStdout(), line)
		default:
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
	}
}
