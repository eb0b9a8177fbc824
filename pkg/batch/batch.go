// 19 Oct 2026

// Package batch reads lots of structure files at once. Each file is read
// by its own ssfile.LoadFile call, so nothing is shared between them.
// One bad file does not stop the others.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/andrew-torda/sstruct/pkg/ssfile"
	"github.com/andrew-torda/sstruct/pkg/ssmodel"
)

// DefaultWorkers is the number of files read at once if not told
// otherwise.
const DefaultWorkers = 4

// Result is what happened to one file.
type Result struct {
	Path   string
	Models []*ssmodel.Model
	Err    error
}

// Files returns the regular files under root, sorted. Files and
// directories whose names start with "." are skipped.
func Files(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}
	slices.Sort(paths)
	return paths, nil
}

// Load reads paths with at most workers files open at a time. Results
// come back in the same order as paths. The error is only non-nil if
// ctx was cancelled. Problems with single files are in their Result.
func Load(ctx context.Context, paths []string, workers int, hint ssfile.Format, opts ssfile.Options) ([]Result, error) {
	if workers < 1 {
		workers = DefaultWorkers
	}
	results := make([]Result, len(paths))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, p := range paths {
		g.Go(func() error {
			results[i].Path = p
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Models, results[i].Err = ssfile.LoadFile(ctx, p, hint, opts)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors
	return results, ctx.Err()
}

// LoadDir reads every file under root.
func LoadDir(ctx context.Context, root string, workers int, hint ssfile.Format, opts ssfile.Options) ([]Result, error) {
	paths, err := Files(root)
	if err != nil {
		return nil, err
	}
	return Load(ctx, paths, workers, hint, opts)
}

// Count adds up the results: files read, models found and files that
// failed.
func Count(results []Result) (nOK, nModel, nFail int) {
	for _, r := range results {
		if r.Err != nil {
			nFail++
			continue
		}
		nOK++
		nModel += len(r.Models)
	}
	return nOK, nModel, nFail
}
