package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uicontracts/uic/internal/annotate"
	"github.com/uicontracts/uic/internal/logging"
	"github.com/uicontracts/uic/internal/model"
	"github.com/uicontracts/uic/internal/uicerr"
)

var (
	annotateManifest  string
	annotateDryRun    bool
	annotateWrite     bool
	annotateBackupDir string
	annotateJSON      bool
)

// annotateCmd patches data-agent-id attributes back into source per a
// manifest's elements. Dry-run by default; --write always requires an
// explicit opt-in and --dry-run always wins if both are set.
var annotateCmd = &cobra.Command{
	Use:   "annotate [dir]",
	Short: "Patch data-agent-id attributes into source files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		manifest, err := model.ReadManifestFile(annotateManifest)
		if err != nil {
			return err
		}

		opts := annotate.Options{
			// --dry-run overrides --write only when passed explicitly; its
			// default of true does not block --write on its own.
			DryRun:    !annotateWrite || (cmd.Flags().Changed("dry-run") && annotateDryRun),
			Write:     annotateWrite,
			BackupDir: annotateBackupDir,
		}
		result, err := annotate.Annotate(root, manifest.Elements, opts)
		if err != nil {
			return err
		}

		for _, f := range result.Files {
			for _, w := range f.Warnings {
				logging.LogWarning(log, uicerr.Code(w.Code), "annotation warning",
					map[string]any{"filePath": w.FilePath, "agentId": w.AgentID})
			}
		}
		log.Info().
			Int("applied", result.TotalApplied).
			Int("skipped", result.TotalSkipped).
			Bool("dryRun", opts.DryRun).
			Msg("annotate complete")

		if annotateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		for _, f := range result.Files {
			if f.Patch == nil {
				continue
			}
			fmt.Println(f.Patch.Diff)
		}
		if opts.DryRun {
			fmt.Fprintf(os.Stderr, "dry run: %d insertions across %d files (rerun with --write to apply)\n",
				result.TotalApplied, len(result.Files))
		} else if result.BackupDir != "" {
			fmt.Fprintf(os.Stderr, "wrote changes, originals backed up to %s\n", result.BackupDir)
		}
		return nil
	},
}

func init() {
	annotateCmd.Flags().StringVar(&annotateManifest, "manifest", "manifest.json", "manifest file to annotate from")
	annotateCmd.Flags().BoolVar(&annotateDryRun, "dry-run", true, "preview edits without writing (default)")
	annotateCmd.Flags().BoolVar(&annotateWrite, "write", false, "write patched files to disk")
	annotateCmd.Flags().StringVar(&annotateBackupDir, "backup-dir", "", "directory to back up originals into (default .uic-backup)")
	annotateCmd.Flags().BoolVar(&annotateJSON, "json", false, "emit JSON result instead of diffs")
	rootCmd.AddCommand(annotateCmd)
}
