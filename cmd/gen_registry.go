package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
	"github.com/giantswarm/kube-dispatch/internal/models/gen"
)

// openAPIPath serves the swagger 2.0 document of an API server.
const openAPIPath = "/openapi/v2"

// genRegistryOptions holds the flags of the gen-registry command.
type genRegistryOptions struct {
	Swagger string
	Out     string
	Package string
}

func newGenRegistryCmd() *cobra.Command {
	var opts genRegistryOptions

	cmd := &cobra.Command{
		Use:   "gen-registry",
		Short: "Generate the model registry from a swagger document",
		Long: `Read a Kubernetes swagger 2.0 document (JSON or YAML) and write the Go source
of the model registry.

Without --swagger the document is fetched from the configured API server at
` + openAPIPath + `.

Example:
  kube-dispatch gen-registry --swagger swagger.json --out internal/models/zz_generated_registry.go`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readSwagger(cmd.Context(), opts.Swagger, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return runGenRegistry(raw, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Swagger, "swagger", "", "Swagger document file, '-' reads stdin (default: fetch from the API server)")
	cmd.Flags().StringVar(&opts.Out, "out", "-", "Output file, '-' writes stdout")
	cmd.Flags().StringVar(&opts.Package, "package", "models", "Package name of the generated file")

	return cmd
}

func readSwagger(ctx context.Context, path string, stdin io.Reader) ([]byte, error) {
	switch path {
	case "":
		dispatcher, err := dispatcherFromConfig(nil)
		if err != nil {
			return nil, err
		}
		return fetchSwagger(ctx, dispatcher)
	case "-":
		return io.ReadAll(stdin)
	default:
		return os.ReadFile(path)
	}
}

// fetchSwagger downloads the swagger document from the default server.
func fetchSwagger(ctx context.Context, dispatcher *k8s.Dispatcher) ([]byte, error) {
	if _, ok := dispatcher.DefaultServer(); !ok {
		return nil, errNoDefaultServer
	}
	result, err := dispatcher.Run(ctx, k8s.Request{Method: k8s.MethodGet, Path: openAPIPath})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", openAPIPath, err)
	}
	return result.Body, nil
}

func runGenRegistry(raw []byte, opts genRegistryOptions, stdout io.Writer) error {
	registry, err := gen.LoadModels(raw)
	if err != nil {
		return err
	}

	src, err := gen.Render(opts.Package, registry)
	if err != nil {
		return err
	}

	if opts.Out == "" || opts.Out == "-" {
		_, err := stdout.Write(src)
		return err
	}
	if err := os.WriteFile(opts.Out, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.Out, err)
	}
	return nil
}
