// Package annotate implements the annotation patcher: an offset-preserving
// source editor that inserts or updates a data-agent-id="…" attribute on the
// correct JSX opening tag.
package annotate

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/uicontracts/uic/internal/model"
	"github.com/uicontracts/uic/internal/uicerr"
)

// Warning is one recovered-locally annotation diagnostic.
type Warning struct {
	Code     string
	FilePath string
	AgentID  string
}

// Options controls one Annotate run.
type Options struct {
	// DryRun always takes precedence over Write. Its zero value is false;
	// the annotate command's --dry-run flag defaults to true.
	DryRun    bool
	Write     bool
	BackupDir string // defaults to ".uic-backup"; a relative path resolves against projectRoot
}

// FileOutcome is the per-file result of one Annotate run.
type FileOutcome struct {
	FilePath string
	Patch    *model.Patch
	Applied  int
	Skipped  int
	Warnings []Warning
}

// Result is the full output of one Annotate run.
type Result struct {
	Files        []FileOutcome
	BackupDir    string // "" if no backup was created, else Options.BackupDir as given
	TotalApplied int
	TotalSkipped int
}

// Annotate groups elements by file, computes each file's edits, and — per
// Options — either returns a dry-run diff or writes the patched files to
// disk after taking a pre-pass backup.
func Annotate(projectRoot string, elements []model.NamedElement, opts Options) (*Result, error) {
	if opts.BackupDir == "" {
		opts.BackupDir = ".uic-backup"
	}

	byFile := groupByFile(elements)
	files := make([]string, 0, len(byFile))
	for f := range byFile {
		files = append(files, f)
	}
	sort.Strings(files)

	result := &Result{}
	type pending struct {
		relPath string
		absPath string
		edited  []byte
	}
	var writes []pending

	for _, relPath := range files {
		absPath := filepath.Join(projectRoot, relPath)
		original, err := os.ReadFile(absPath)
		if err != nil {
			result.Files = append(result.Files, FileOutcome{
				FilePath: relPath,
				Warnings: []Warning{{Code: "FILE_READ_ERROR", FilePath: relPath}},
			})
			continue
		}

		edits, outcomes, err := buildEdits(original, byFile[relPath])
		if err != nil {
			return nil, err
		}
		edited := applyEdits(original, edits)

		outcome := FileOutcome{FilePath: relPath}
		for _, o := range outcomes {
			switch {
			case o.warning != nil:
				outcome.Warnings = append(outcome.Warnings, *o.warning)
			case o.applied:
				outcome.Applied++
			case o.skipped:
				outcome.Skipped++
			}
		}
		result.TotalApplied += outcome.Applied
		result.TotalSkipped += outcome.Skipped

		diffText, err := unifiedDiff(relPath, original, edited)
		if err != nil {
			return nil, uicerr.Wrap(uicerr.AnnotationFailed, err, "render diff", "filePath", relPath)
		}
		if diffText != "" {
			outcome.Patch = &model.Patch{FilePath: relPath, Diff: diffText, Insertions: outcome.Applied}
			if !opts.DryRun && opts.Write {
				writes = append(writes, pending{relPath: relPath, absPath: absPath, edited: edited})
			}
		}
		result.Files = append(result.Files, outcome)
	}

	if len(writes) == 0 || opts.DryRun || !opts.Write {
		return result, nil
	}

	backupRoot := opts.BackupDir
	if !filepath.IsAbs(backupRoot) {
		backupRoot = filepath.Join(projectRoot, backupRoot)
	}
	if err := os.MkdirAll(backupRoot, 0o755); err != nil {
		return nil, uicerr.Wrap(uicerr.FileWriteError, err, "create backup dir", "backupDir", opts.BackupDir)
	}
	result.BackupDir = opts.BackupDir

	var written []pending
	rollback := func() {
		for _, w := range written {
			backupPath := filepath.Join(backupRoot, w.relPath)
			if data, err := os.ReadFile(backupPath); err == nil {
				_ = os.WriteFile(w.absPath, data, 0o644)
			}
		}
	}

	for _, w := range writes {
		backupPath := filepath.Join(backupRoot, w.relPath)
		if err := os.MkdirAll(filepath.Dir(backupPath), 0o755); err != nil {
			rollback()
			return nil, uicerr.Wrap(uicerr.FileWriteError, err, "create backup subdir", "path", backupPath)
		}
		original, err := os.ReadFile(w.absPath)
		if err != nil {
			rollback()
			return nil, uicerr.Wrap(uicerr.FileWriteError, err, "read file for backup", "path", w.absPath)
		}
		if err := os.WriteFile(backupPath, original, 0o644); err != nil {
			rollback()
			return nil, uicerr.Wrap(uicerr.FileWriteError, err, "write backup", "path", backupPath)
		}
	}

	for _, w := range writes {
		if err := atomicWrite(w.absPath, w.edited); err != nil {
			rollback()
			return nil, uicerr.Wrap(uicerr.FileWriteError, err, "write annotated file", "path", w.absPath)
		}
		written = append(written, w)
	}

	return result, nil
}

func groupByFile(elements []model.NamedElement) map[string][]model.NamedElement {
	out := map[string][]model.NamedElement{}
	for _, el := range elements {
		out[el.FilePath] = append(out[el.FilePath], el)
	}
	return out
}

// atomicWrite writes data to a temp sibling of path and renames it into
// place. The temp name carries a random suffix so two Annotate runs racing
// on the same file (or a leftover temp from a killed prior run) never
// collide.
func atomicWrite(path string, data []byte) error {
	tmp := path + ".uic-tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
