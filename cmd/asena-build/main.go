// Package main provides the entry point for the asena-build CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/viant/asenabuild/cmd/asena-build/commands"
)

func main() {
	options := &commands.Options{}

	rootCmd := &cobra.Command{
		Use:   "asena-build",
		Short: "Asena build - component discovery and entry file generation",
		Long: `Asena build discovers IoC components of an Asena project and wires them
into the server bootstrap block of a generated entry file.

Commands:
  build      Generate entry file and bundle the project
  discover   List discovered components
  preview    Show generated entry file changes
  bootstrap  Print an empty bootstrap block for the project framework version`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&options.ProjectDir, "project", "p", ".", "project directory")
	rootCmd.PersistentFlags().StringVarP(&options.ConfigPath, "config", "c", "", "config file (default .asenarc.json in project directory)")
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(commands.NewBuildCommand(options))
	rootCmd.AddCommand(commands.NewDiscoverCommand(options))
	rootCmd.AddCommand(commands.NewPreviewCommand(options))
	rootCmd.AddCommand(commands.NewBootstrapCommand(options))

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
