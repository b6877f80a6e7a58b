package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/uicontracts/uic/internal/model"
	"github.com/uicontracts/uic/internal/naming"
)

var nameOut string

// nameCmd re-runs naming over an existing manifest's elements, producing
// fresh agent ids from the same RawElement fields. Useful after
// hand-editing a manifest's routes or component names.
var nameCmd = &cobra.Command{
	Use:   "name <manifest>",
	Short: "Re-derive agent ids for a manifest's elements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := model.ReadManifestFile(args[0])
		if err != nil {
			return err
		}

		raw := make([]model.RawElement, len(manifest.Elements))
		for i, el := range manifest.Elements {
			raw[i] = el.RawElement
		}
		renamed := naming.Name(raw)

		changed := 0
		for i := range renamed {
			if i < len(manifest.Elements) && renamed[i].AgentID != manifest.Elements[i].AgentID {
				changed++
			}
		}

		manifest.Elements = renamed
		manifest.GeneratedAt = time.Now().UTC().Format(time.RFC3339)

		log.Info().Int("elements", len(renamed)).Int("changed", changed).Msg("renamed")

		if nameOut == "" {
			return model.WriteManifest(os.Stdout, manifest)
		}
		return model.WriteManifestFile(nameOut, manifest)
	},
}

func init() {
	nameCmd.Flags().StringVarP(&nameOut, "out", "o", "", "write manifest to file instead of stdout")
	rootCmd.AddCommand(nameCmd)
}
