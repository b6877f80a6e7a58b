// Package discovery implements the element-discovery stage of the pipeline:
// file selection, per-file tree-sitter parsing, the interactivity rule, and
// context extraction.
package discovery

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/uicontracts/uic/internal/framework"
	"github.com/uicontracts/uic/internal/model"
	"github.com/uicontracts/uic/internal/uicerr"
)

// Warning is one recovered-locally diagnostic.
type Warning struct {
	Code     string `json:"code"`
	FilePath string `json:"filePath,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Options configures one discovery run.
type Options struct {
	Include      []string
	Exclude      []string
	ComponentMap map[string]model.ElementType
	MaxDepth     int
	Framework    framework.Convention // empty means auto-detect
}

// Metadata summarizes a discovery run independent of the elements found.
type Metadata struct {
	Framework    framework.Convention
	FilesScanned int
	FilesSkipped int
}

// Result is the full output of one Discover call.
type Result struct {
	Elements []model.RawElement
	Warnings []Warning
	Metadata Metadata
}

type fileResult struct {
	path     string
	elements []model.RawElement
	mappedNoHandler bool
	err      error
}

// Discover walks root per Options, parses every matched file concurrently
// with a bounded worker pool (the naming package re-sorts the element list
// before assigning ids, so the concurrent, unordered aggregation here never
// affects the final result), and aggregates the results. An invalid project
// root is SCAN_FAILED; per-file parse/read errors are warn-and-skip.
func Discover(ctx context.Context, root string, opts Options) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, uicerr.Wrap(uicerr.ScanFailed, err, "project root is not a directory", "root", root)
	}

	conv := opts.Framework
	if conv == "" {
		conv = framework.Detect(root)
	}

	files, err := selectFiles(root, opts.Include, opts.Exclude, opts.MaxDepth)
	if err != nil {
		return nil, uicerr.Wrap(uicerr.ScanFailed, err, "failed to walk project root", "root", root)
	}

	componentMap := opts.ComponentMap
	if componentMap == nil {
		componentMap = map[string]model.ElementType{}
	}

	jobs := make(chan string, len(files))
	for _, f := range files {
		jobs <- f
	}
	close(jobs)

	results := make(chan fileResult, len(files))
	workers := runtime.NumCPU()
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for rel := range jobs {
				select {
				case <-ctx.Done():
					results <- fileResult{path: rel, err: ctx.Err()}
					continue
				default:
				}
				abs := filepath.Join(root, rel)
				data, readErr := os.ReadFile(abs)
				if readErr != nil {
					results <- fileResult{path: rel, err: readErr}
					continue
				}
				route := framework.RouteForFile(conv, rel)
				elements, mappedNoHandler, parseErr := parseFile(rel, data, route, componentMap)
				results <- fileResult{path: rel, elements: elements, mappedNoHandler: mappedNoHandler, err: parseErr}
			}
		}()
	}

	go func() { wg.Wait(); close(results) }()

	res := &Result{Metadata: Metadata{Framework: conv}}
	for r := range results {
		if r.err == errParse {
			res.Warnings = append(res.Warnings, Warning{Code: "PARSE_ERROR", FilePath: r.path})
			res.Metadata.FilesSkipped++
			continue
		}
		if r.err != nil {
			res.Warnings = append(res.Warnings, Warning{Code: "FILE_READ_ERROR", FilePath: r.path, Message: r.err.Error()})
			res.Metadata.FilesSkipped++
			continue
		}
		res.Metadata.FilesScanned++
		res.Elements = append(res.Elements, r.elements...)
		if r.mappedNoHandler {
			res.Warnings = append(res.Warnings, Warning{Code: "MAPPED_COMPONENT_NO_HANDLER", FilePath: r.path})
		}
	}

	return res, nil
}
