package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/giantswarm/kube-dispatch/internal/models"
)

func newResolveCmd() *cobra.Command {
	var unsafe bool

	cmd := &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Map schema names to model identifiers",
		Long: `Print the model identifier for each schema name.

In the default safe mode only registered names resolve; others print
"no mapping". With --unsafe an identifier is derived for any name.

Example:
  kube-dispatch resolve io.k8s.api.apps.v1.Deployment
  Models.Api.Apps.V1.Deployment`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := models.Safe
			if unsafe {
				mode = models.Unsafe
			}
			return runResolve(cmd.OutOrStdout(), models.NewResolver(nil), args, mode)
		},
	}

	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "Derive identifiers for unregistered names")
	return cmd
}

func runResolve(out io.Writer, resolver *models.Resolver, names []string, mode models.Mode) error {
	for _, name := range names {
		id, ok := resolver.Resolve(name, mode)
		result := id.String()
		if !ok {
			result = "no mapping"
		}
		if len(names) > 1 {
			result = fmt.Sprintf("%s\t%s", name, result)
		}
		if _, err := fmt.Fprintln(out, result); err != nil {
			return err
		}
	}
	return nil
}
