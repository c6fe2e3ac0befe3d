package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/asenabuild/builder/bootstrap"
	"github.com/viant/asenabuild/inspector/repository"
)

// NewBootstrapCommand creates the bootstrap subcommand.
func NewBootstrapCommand(options *Options) *cobra.Command {
	template := bootstrap.Template{}

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Print an empty bootstrap block matching the project framework version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := repository.New().DetectProject(cmd.Context(), options.ProjectDir)
			if err != nil {
				return err
			}

			template.Shape = project.Shape()
			_, err = fmt.Fprintln(cmd.OutOrStdout(), bootstrap.Empty(template))

			return err
		},
	}

	cmd.Flags().StringVar(&template.Adapter, "adapter", "adapter", "adapter variable name")
	cmd.Flags().StringVar(&template.Logger, "logger", "logger", "logger variable name")
	cmd.Flags().IntVar(&template.Port, "port", bootstrap.DefaultPort, "server port")

	return cmd
}
