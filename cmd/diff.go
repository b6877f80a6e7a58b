package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uicontracts/uic/internal/diff"
	"github.com/uicontracts/uic/internal/model"
)

var diffJSON bool

// diffCmd compares two manifests and classifies the changes between them as
// breaking, additive, or neutral. Exits 1 iff the diff contains any
// breaking change.
var diffCmd = &cobra.Command{
	Use:   "diff <old-manifest> <new-manifest>",
	Short: "Compare two manifests and classify the changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := model.ReadManifestFile(args[0])
		if err != nil {
			return err
		}
		b, err := model.ReadManifestFile(args[1])
		if err != nil {
			return err
		}

		result := diff.Diff(a, b)

		if diffJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return err
			}
		} else {
			for _, c := range result.Changes {
				fmt.Printf("%-9s %-8s %s\n", c.Category, c.Kind, c.AgentID)
			}
			fmt.Printf("\n%d breaking, %d additive, %d neutral\n",
				result.Summary.Breaking, result.Summary.Additive, result.Summary.Neutral)
		}

		log.Info().
			Int("breaking", result.Summary.Breaking).
			Int("additive", result.Summary.Additive).
			Int("neutral", result.Summary.Neutral).
			Msg("diff complete")

		if result.Breaking {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	diffCmd.Flags().BoolVar(&diffJSON, "json", false, "emit JSON result instead of a table")
	rootCmd.AddCommand(diffCmd)
}
