package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/uicontracts/uic/internal/model"
)

var (
	listManifest   string
	listType       string
	listRoute      string
	listComponent  string
	listRoutes     bool
	listComponents bool
	listJSON       bool
)

// listCmd filters a manifest's elements by type/route/component, or prints
// the distinct set of routes/components when asked.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a manifest's elements, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := model.ReadManifestFile(listManifest)
		if err != nil {
			return err
		}

		if listRoutes {
			return printDistinct(manifest, func(el model.NamedElement) string { return el.Route })
		}
		if listComponents {
			return printDistinct(manifest, func(el model.NamedElement) string { return el.ComponentName })
		}

		var matched []model.NamedElement
		for _, el := range manifest.Elements {
			if listType != "" && string(el.Type) != listType {
				continue
			}
			if listRoute != "" && el.Route != listRoute {
				continue
			}
			if listComponent != "" && el.ComponentName != listComponent {
				continue
			}
			matched = append(matched, el)
		}

		if listJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(matched)
		}
		for _, el := range matched {
			fmt.Printf("%-50s %-8s %s\n", el.AgentID, el.Type, el.FilePath)
		}
		return nil
	},
}

func printDistinct(m *model.Manifest, key func(model.NamedElement) string) error {
	seen := map[string]bool{}
	var out []string
	for _, el := range m.Elements {
		k := key(el)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	for _, v := range out {
		fmt.Println(v)
	}
	return nil
}

func init() {
	listCmd.Flags().StringVar(&listManifest, "manifest", "", "manifest file to read (required)")
	listCmd.Flags().StringVar(&listType, "type", "", "filter by element type")
	listCmd.Flags().StringVar(&listRoute, "route", "", "filter by route")
	listCmd.Flags().StringVar(&listComponent, "component", "", "filter by component name")
	listCmd.Flags().BoolVar(&listRoutes, "routes", false, "print the distinct set of routes")
	listCmd.Flags().BoolVar(&listComponents, "components", false, "print the distinct set of component names")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "emit JSON instead of a table")
	listCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(listCmd)
}
