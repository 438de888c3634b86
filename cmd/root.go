package cmd

import (
	"github.com/bnema/yzterm/internal/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "yz",
		Short:         "yz: SSH terminal sessions, saved hosts and file transfers",
		Long:          "yz keeps a list of SSH hosts with passwords in your secret store, opens interactive shells on them, browses remote directories and copies files with scp.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	app, err := wireApp(stderrWriter{cmd: rootCmd})
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		if logLevel == "" {
			return nil
		}
		level, err := config.ParseLogLevel(logLevel)
		if err != nil {
			return err
		}
		app.logLevel.Set(level)
		return nil
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newHostCmd(app),
		newVaultCmd(app),
		newConnectCmd(app),
		newLsCmd(app),
		newUploadCmd(app),
		newDownloadCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}

// stderrWriter follows the command's configured error stream.
type stderrWriter struct {
	cmd *cobra.Command
}

func (w stderrWriter) Write(p []byte) (int, error) {
	return w.cmd.ErrOrStderr().Write(p)
}
