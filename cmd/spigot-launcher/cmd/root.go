package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/spigot-launcher/internal/logger"
	"github.com/oshokin/spigot-launcher/internal/service/launch"
	"github.com/oshokin/spigot-launcher/internal/version"
)

var (
	// configPath to the configuration file, empty means the default inside dir.
	configPath string
	// dir is the server directory.
	dir string
	// exitCode is the server exit status forwarded to the shell.
	exitCode int

	// rootCmd resolves the server jar and runs it.
	rootCmd = &cobra.Command{
		Use:   version.Name,
		Short: "Select, update and run a Minecraft server jar.",
		Long: `Loads SpigotLauncher.toml (creating it with defaults on first run) and picks the jar to run.

With auto update enabled the newest build of the configured channel is downloaded when
the installed one is older. Otherwise the server directory is searched for a file whose
name contains the configured prefix. The jar is then started with java using the
configured heap sizes, and the launcher exits with the server's exit status.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &launch.Options{
				ConfigPath: configPath,
				Dir:        dir,
				Stdin:      cmd.InOrStdin(),
				Stdout:     cmd.OutOrStdout(),
				Stderr:     cmd.ErrOrStderr(),
			}

			code, err := launch.Run(ctx, options)
			exitCode = code

			return err
		},
	}
)

// Execute runs the launcher CLI and exits with the server's status,
// or with 1 when nothing could be launched.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorKV(context.Background(), "Program will now halt", "error", err)
		os.Exit(1)
	}

	os.Exit(exitCode)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: SpigotLauncher.toml in --dir)")
	rootCmd.Flags().StringVarP(&dir, "dir", "d", ".", "server directory holding the jars")
}
