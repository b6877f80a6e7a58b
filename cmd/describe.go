package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uicontracts/uic/internal/model"
	"github.com/uicontracts/uic/internal/uicerr"
)

var describeManifest string

// describeCmd prints one element's full record by agent id.
var describeCmd = &cobra.Command{
	Use:   "describe <agentId>",
	Short: "Print one element's full record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifest, err := model.ReadManifestFile(describeManifest)
		if err != nil {
			return err
		}

		for _, el := range manifest.Elements {
			if el.AgentID == args[0] {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(el)
			}
		}
		return uicerr.New(uicerr.Unknown, fmt.Sprintf("no element with agentId %q", args[0]), "agentId", args[0])
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeManifest, "manifest", "", "manifest file to read (required)")
	describeCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(describeCmd)
}
