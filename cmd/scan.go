package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/uicontracts/uic/internal/discovery"
	"github.com/uicontracts/uic/internal/framework"
	"github.com/uicontracts/uic/internal/logging"
	"github.com/uicontracts/uic/internal/model"
	"github.com/uicontracts/uic/internal/naming"
	"github.com/uicontracts/uic/internal/uicerr"
)

var (
	scanOut       string
	scanFramework string
	scanInclude   []string
	scanExclude   []string
	scanMaxDepth  int
	scanJSON      bool
)

// scanCmd walks a source tree, discovers interactive elements, names them,
// and writes a versioned manifest.
var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Discover interactive elements and write a manifest",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		} else if cfg.Root != "" {
			root = cfg.Root
		}

		if !cmd.Flags().Changed("out") && scanOut == "" && cfg.Out != "" {
			scanOut = cfg.Out
		}
		if !cmd.Flags().Changed("framework") && scanFramework == "" && cfg.Framework != "" {
			scanFramework = cfg.Framework
		}
		if !cmd.Flags().Changed("include") && len(cfg.Include) > 0 {
			scanInclude = cfg.Include
		}
		if !cmd.Flags().Changed("exclude") && len(cfg.Exclude) > 0 {
			scanExclude = cfg.Exclude
		}
		if !cmd.Flags().Changed("max-depth") && cfg.MaxDepth != 0 {
			scanMaxDepth = cfg.MaxDepth
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		opts := discovery.Options{
			Include:  scanInclude,
			Exclude:  scanExclude,
			MaxDepth: scanMaxDepth,
		}
		if len(cfg.ComponentMap) > 0 {
			opts.ComponentMap = make(map[string]model.ElementType, len(cfg.ComponentMap))
			for k, v := range cfg.ComponentMap {
				opts.ComponentMap[k] = model.ElementType(v)
			}
		}
		if scanFramework != "" {
			opts.Framework = framework.Convention(scanFramework)
		}

		res, err := discovery.Discover(ctx, root, opts)
		if err != nil {
			return err
		}

		named := naming.Name(res.Elements)

		warnings := make([]string, 0, len(res.Warnings))
		for _, w := range res.Warnings {
			if w.FilePath != "" {
				warnings = append(warnings, fmt.Sprintf("%s: %s", w.Code, w.FilePath))
			} else {
				warnings = append(warnings, w.Code)
			}
			logging.LogWarning(log, uicerr.Code(w.Code), w.Message, map[string]any{"filePath": w.FilePath})
		}

		manifest := &model.Manifest{
			SchemaVersion: model.SchemaVersion,
			GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
			Generator:     model.GeneratorInfo{Name: "uic", Version: version, RunID: uuid.NewString()},
			Metadata: model.ManifestMetadata{
				Framework:          string(res.Metadata.Framework),
				ProjectRoot:        root,
				FilesScanned:       res.Metadata.FilesScanned,
				ElementsDiscovered: len(named),
				Warnings:           warnings,
			},
			Elements: named,
		}

		log.Info().
			Str("runId", manifest.Generator.RunID).
			Int("filesScanned", res.Metadata.FilesScanned).
			Int("elements", len(named)).
			Int("warnings", len(warnings)).
			Msg("scan complete")

		if scanOut == "" {
			return model.WriteManifest(os.Stdout, manifest)
		}
		if err := model.WriteManifestFile(scanOut, manifest); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", scanOut)
		if scanJSON {
			return model.WriteManifest(os.Stdout, manifest)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanOut, "out", "o", "", "write manifest to file instead of stdout")
	scanCmd.Flags().StringVar(&scanFramework, "framework", "", "override framework detection (app-router|pages-router|generic)")
	scanCmd.Flags().StringSliceVar(&scanInclude, "include", discovery.DefaultInclude, "glob patterns to include")
	scanCmd.Flags().StringSliceVar(&scanExclude, "exclude", discovery.DefaultExclude, "glob patterns to exclude")
	scanCmd.Flags().IntVar(&scanMaxDepth, "max-depth", 0, "maximum directory depth (0 = unlimited)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "force JSON to stdout even when --out is set")
	rootCmd.AddCommand(scanCmd)
}
