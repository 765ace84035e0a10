package cmd

import (
	"fmt"
	"runtime"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

// newVersionCmd creates the Cobra command for displaying the application version.
func newVersionCmd() *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kube-dispatch",
		Long:  `All software has versions. This is kube-dispatch's.`,
		Run: func(cmd *cobra.Command, args []string) {
			if !detailed {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kube-dispatch version %s\n", rootCmd.Version)
				return
			}
			writeLine(cmd, versionTable(rootCmd.Version))
		},
	}

	cmd.Flags().BoolVar(&detailed, "detailed", false, "Also print the Go runtime and platform")
	return cmd
}

// versionTable renders the version together with the build environment.
func versionTable(version string) string {
	table := uitable.New()
	table.RightAlign(0)
	table.MaxColWidth = 80
	table.Separator = " "
	table.AddRow("version:", version)
	table.AddRow("goVersion:", runtime.Version())
	table.AddRow("compiler:", runtime.Compiler)
	table.AddRow("platform:", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
	return table.String()
}
