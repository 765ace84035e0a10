package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/giantswarm/kube-dispatch/internal/models"
)

func newModelsCmd() *cobra.Command {
	var (
		filter    string
		kindsOnly bool
		id        string
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the registered schema names",
		Long: `List every schema name known to the model registry together with its model
identifier and, for top-level API kinds, its group, version and kind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id != "" {
				return runModelByID(cmd.OutOrStdout(), models.Default, models.ModelID(id))
			}
			return runModels(cmd.OutOrStdout(), models.Default, filter, kindsOnly)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only list schema names containing this text")
	cmd.Flags().BoolVar(&kindsOnly, "kinds", false, "Only list top-level API kinds")
	cmd.Flags().StringVar(&id, "id", "", "Show the entry with this model identifier, e.g. Models.Api.Core.V1.Pod")
	return cmd
}

func runModels(out io.Writer, registry *models.Registry, filter string, kindsOnly bool) error {
	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("SCHEMA", "MODEL", "GROUP/VERSION", "KIND")

	for _, name := range registry.Names() {
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}
		model, _ := registry.Lookup(name)
		if kindsOnly && model.GroupVersionKind.Empty() {
			continue
		}

		addModelRow(table, name, model)
	}

	_, err := fmt.Fprintln(out, table)
	return err
}

// runModelByID prints the single registry entry whose identifier is id.
func runModelByID(out io.Writer, registry *models.Registry, id models.ModelID) error {
	name, model, ok := registry.ByID(id)
	if !ok {
		return fmt.Errorf("no model with identifier %q", id)
	}

	table := uitable.New()
	table.MaxColWidth = 80
	table.AddRow("SCHEMA", "MODEL", "GROUP/VERSION", "KIND")
	addModelRow(table, name, model)

	_, err := fmt.Fprintln(out, table)
	return err
}

func addModelRow(table *uitable.Table, name string, model models.Model) {
	gvk := model.GroupVersionKind
	groupVersion, kind := "-", "-"
	if !gvk.Empty() {
		groupVersion = gvk.GroupVersion().String()
		kind = gvk.Kind
	}
	table.AddRow(name, model.ID, groupVersion, kind)
}
