package cmd

import (
	"os"

	"github.com/lifegpc/circus-crx-tool/internal/crx"
	"github.com/lifegpc/circus-crx-tool/internal/logger"
	"github.com/lifegpc/circus-crx-tool/internal/pck"
	"github.com/spf13/cobra"
)

const AppName = "crxtool"

var logLevel string

// Execute builds and runs the root cobra command. A bare invocation
// with a single positional path argument runs auto mode; every other
// operation is one of the explicit subcommands below.
func Execute() error {
	rootCmd := &cobra.Command{
		Use:          AppName,
		Short:        AppName + " - CIRCUS CRX/PCK image and archive tool",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l := logger.New(os.Stderr, logger.ParseLevel(logLevel))
			crx.SetLogger(l)
			pck.SetLogger(l)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runAuto(args[0])
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "INFO", "log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(DefineExportCommand())
	rootCmd.AddCommand(DefineImportCommand())
	rootCmd.AddCommand(DefineUnpackCommand())
	rootCmd.AddCommand(DefinePackCommand())

	return rootCmd.Execute()
}
