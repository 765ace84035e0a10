package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/giantswarm/kube-dispatch/internal/k8s"
)

// requestOptions holds the flags of the request command.
type requestOptions struct {
	Method      string
	Path        string
	Query       []string
	BodyFile    string
	ContentType string
	PatchType   string
	Schema      string
	Output      string
	Raw         bool
}

func newRequestCmd() *cobra.Command {
	var opts requestOptions

	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send one request to the API server",
		Long: `Send one request to the Kubernetes API server and print the response.

With --schema the response is decoded into the named model before printing;
without it the response is printed as plain JSON.

Examples:
  kube-dispatch request GET /api/v1/namespaces/default/pods --query limit=5
  kube-dispatch request GET /api/v1/namespaces/default/pods/web-0 --schema io.k8s.api.core.v1.Pod -o yaml
  kube-dispatch request PATCH /apis/apps/v1/namespaces/default/deployments/web --body-file patch.json
  kube-dispatch request PATCH /api/v1/namespaces/default/pods/web-0 -f patch.json --patch-type strategic`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Method = args[0]
			opts.Path = args[1]

			dispatcher, err := dispatcherFromConfig(nil)
			if err != nil {
				return err
			}
			return runRequest(cmd.Context(), dispatcher, opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Query, "query", "q", nil, "Query parameter as name=value (repeatable, order is kept)")
	cmd.Flags().StringVarP(&opts.BodyFile, "body-file", "f", "", "File with the request body, '-' reads stdin")
	cmd.Flags().StringVar(&opts.ContentType, "content-type", "", "Content-Type of the body (default: merge patch for PATCH, JSON otherwise)")
	cmd.Flags().StringVar(&opts.PatchType, "patch-type", "", "Shorthand for the PATCH content type: merge, strategic, json or apply")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "Schema name of the response, e.g. io.k8s.api.core.v1.Pod")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", outputJSON, "Output format: json or yaml")
	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print the response body unmodified")

	return cmd
}

// patchContentTypes maps --patch-type names to PATCH content types.
var patchContentTypes = map[string]string{
	"merge":     k8s.ContentTypeMergePatch,
	"strategic": k8s.ContentTypeStrategicMerge,
	"json":      k8s.ContentTypeJSONPatch,
	"apply":     k8s.ContentTypeApplyPatch,
}

// build turns the options into a Request, reading the body from stdin when
// BodyFile is "-".
func (o requestOptions) build(stdin io.Reader) (k8s.Request, error) {
	method, err := k8s.ParseMethod(o.Method)
	if err != nil {
		return k8s.Request{}, err
	}

	req := k8s.Request{
		Method:         method,
		Path:           o.Path,
		ContentType:    o.ContentType,
		ResponseSchema: o.Schema,
	}

	if o.PatchType != "" {
		if method != k8s.MethodPatch {
			return k8s.Request{}, fmt.Errorf("--patch-type only applies to PATCH, got %s", method)
		}
		if o.ContentType != "" {
			return k8s.Request{}, fmt.Errorf("--patch-type and --content-type are mutually exclusive")
		}
		contentType, ok := patchContentTypes[o.PatchType]
		if !ok {
			return k8s.Request{}, fmt.Errorf("unknown --patch-type %q, want merge, strategic, json or apply", o.PatchType)
		}
		req.ContentType = contentType
	}

	for _, raw := range o.Query {
		param, err := k8s.ParseQueryParam(raw)
		if err != nil {
			return k8s.Request{}, err
		}
		req.Query = append(req.Query, param)
	}

	switch o.BodyFile {
	case "":
	case "-":
		if req.Body, err = io.ReadAll(stdin); err != nil {
			return k8s.Request{}, fmt.Errorf("reading body from stdin: %w", err)
		}
	default:
		if req.Body, err = os.ReadFile(o.BodyFile); err != nil {
			return k8s.Request{}, fmt.Errorf("reading body file: %w", err)
		}
	}

	if len(req.Body) > 0 && req.ContentType == "" {
		req.ContentType = k8s.ContentTypeJSON
		if method == k8s.MethodPatch {
			req.ContentType = k8s.ContentTypeMergePatch
		}
	}

	return req, nil
}

func runRequest(ctx context.Context, dispatcher *k8s.Dispatcher, opts requestOptions, stdin io.Reader, out io.Writer) error {
	req, err := opts.build(stdin)
	if err != nil {
		return err
	}

	result, err := dispatcher.Run(ctx, req)
	if err != nil {
		return err
	}

	if opts.Raw || result.Object == nil {
		_, err := out.Write(result.Body)
		return err
	}
	return writeObject(out, opts.Output, result.Object)
}
