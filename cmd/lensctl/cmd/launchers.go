package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contractlens/contractlens/cmd/launcher"
	"github.com/contractlens/contractlens/cmd/launcher/api"
	"github.com/contractlens/contractlens/cmd/launcher/webui"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [launcher flags]",
	Short: "Run the analysis REST server in this process",
	Long: `Start the contractlens REST API locally instead of talking to a remote server.
Arguments after the command are passed to the api launcher, e.g. -port.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSublauncher(cmd, api.BuildLauncher, args)
	},
}

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:   "launch [launcher flags]",
	Short: "Start the web interface",
	Long: `Start the web interface through the external runner with a UTF-8 environment.
Arguments after the command are passed to the webui launcher, e.g. -runner.`,
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSublauncher(cmd, webui.BuildLauncher, args)
	},
}

func runSublauncher(cmd *cobra.Command, build func([]string) (launcher.Launcher, []string, error), args []string) error {
	l, leftover, err := build(args)
	if err != nil {
		return err
	}
	if len(leftover) > 0 {
		return fmt.Errorf("unexpected arguments: %v", leftover)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return l.Run(ctx, &launcher.Config{})
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(launchCmd)
}
