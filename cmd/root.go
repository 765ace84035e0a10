package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/giantswarm/kube-dispatch/internal/logging"
)

// appConfig holds the merged flag, environment and config file settings. It is
// populated before any subcommand runs.
var appConfig = viper.New()

// rootCmd represents the base command for the kube-dispatch application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kube-dispatch",
	Short: "Raw Kubernetes API client and MCP server",
	Long: `kube-dispatch sends requests straight to the Kubernetes API server and decodes
the responses into typed models. Streaming endpoints (watches, log follows) are
delivered line by line as they arrive.

It can be used directly from the command line (request, watch, resolve, models)
or as a Model Context Protocol (MCP) server exposing the same operations as tools.

When run without subcommands, it starts the MCP server (equivalent to 'kube-dispatch serve').`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := newViper(cmd.Flags())
		if err != nil {
			return err
		}
		appConfig = v

		logging.Setup(v.GetString(keyLogFormat), v.GetString(keyLogLevel))
		return nil
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
// It initializes and executes the root command, which in turn handles subcommands and flags.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "kube-dispatch version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String(keyConfig, "", "Config file (YAML, JSON or TOML); keys match the flag names")
	flags.String(keyLogFormat, "text", "Log format: text or json")
	flags.String(keyLogLevel, "info", "Log level: debug, info, warn or error")
	addConnectionFlags(flags)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRequestCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newResolveCmd())
	rootCmd.AddCommand(newModelsCmd())
	rootCmd.AddCommand(newGenRegistryCmd())
}

// writeLine writes s and a newline to the command output.
func writeLine(cmd *cobra.Command, s string) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
}
