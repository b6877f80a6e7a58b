package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/uicontracts/uic/internal/model"
)

var (
	findManifest string
	findTop      int
	findJSON     bool
)

// findCmd fuzzy-searches a manifest's elements by a composite searchable
// string (agentId + label + handler + componentName).
var findCmd = &cobra.Command{
	Use:   "find <query>",
	Short: "Fuzzy-search a manifest's elements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := model.ReadManifestFile(findManifest)
		if err != nil {
			return err
		}

		haystack := make([]string, len(manifest.Elements))
		for i, el := range manifest.Elements {
			haystack[i] = searchableString(el)
		}

		matches := fuzzy.Find(args[0], haystack)
		if findTop > 0 && len(matches) > findTop {
			matches = matches[:findTop]
		}

		results := make([]model.NamedElement, 0, len(matches))
		for _, m := range matches {
			results = append(results, manifest.Elements[m.Index])
		}

		if findJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		for i, el := range results {
			fmt.Printf("%2d. %-50s %-8s %s\n", matches[i].Score, el.AgentID, el.Type, el.FilePath)
		}
		return nil
	},
}

func searchableString(el model.NamedElement) string {
	return el.AgentID + " " + el.Label + " " + el.Handler + " " + el.ComponentName
}

func init() {
	findCmd.Flags().StringVar(&findManifest, "manifest", "", "manifest file to search (required)")
	findCmd.Flags().IntVar(&findTop, "top", 10, "maximum number of results (0 = unlimited)")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "emit JSON instead of a table")
	findCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(findCmd)
}
