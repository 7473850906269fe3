package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"thumbnailer/config"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

// run is replaced in tests so the root command can be exercised without a display.
var run = runEditor

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "thumbnailer",
		Short:         "Thumbnail editor with live preview",
		Long:          "Type a title, subtitle and category, pick a background and see the thumbnail update as you go.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to config.yaml (default ~/.config/thumbnailer/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log at debug level and mirror the log to stderr")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), config.BuildInfo())
			return nil
		},
	}

	return cmd
}
