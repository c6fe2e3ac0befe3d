package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/viant/asenabuild/builder"
	"github.com/viant/asenabuild/inspector/graph"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
)

// ErrUnknownFormat is returned for unsupported --format values.
var ErrUnknownFormat = errors.New("unknown format")

// NewDiscoverCommand creates the discover subcommand.
func NewDiscoverCommand(options *Options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List IoC components discovered in the source folder",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := options.Logger(cmd.ErrOrStderr())

			cfg, err := options.Config()
			if err != nil {
				return err
			}

			discoverer, closer, err := builder.NewDiscoverer(cfg, logger)
			if err != nil {
				return err
			}
			if closer != nil {
				defer closer()
			}

			components, err := discoverer.Discover(cmd.Context(), cfg.SourceFolder, cfg.RootFile)
			if err != nil {
				return err
			}

			return renderComponents(cmd.OutOrStdout(), components, format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table or yaml")

	return cmd
}

func renderComponents(w io.Writer, components *graph.ComponentMap, format string) error {
	switch format {
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()

		return encoder.Encode(components)
	case formatTable, "":
		tbl := table.NewWriter()
		tbl.SetStyle(table.StyleLight)
		tbl.AppendHeader(table.Row{"File", "Component", "Decorators"})

		for _, path := range components.Paths() {
			classes, _ := components.Lookup(path)
			for _, class := range classes {
				tbl.AppendRow(table.Row{path, class.Name, strings.Join(class.Decorators, ", ")})
			}
		}

		tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d components", components.Count())})
		_, err := fmt.Fprintln(w, tbl.Render())

		return err
	}

	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}
