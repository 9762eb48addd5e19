package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"restyle/internal/diag"
	"restyle/internal/source"
)

// Directories that never hold first-party sources.
var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
}

// ListFiles returns the sorted *.tsx files under root. A root that is itself
// a file is returned as a single-element list without extension checks, so
// explicit arguments always win.
func ListFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".tsx") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// CheckDir analyzes every *.tsx file under root in parallel. The result slice
// follows the sorted file order regardless of goroutine completion order.
func CheckDir(ctx context.Context, root string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListFiles(root)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(root)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indices are unique per goroutine, so no mutex around results.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, bad := loadErrors[path]; bad {
				bag := diag.NewBag(opts.maxDiagnostics())
				bag.Add(diag.New(diag.SevError, diag.IOLoadFileError, source.Span{},
					"failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, Bag: bag}
				opts.emit(path, StatusError)
				return nil
			}

			id := fileIDs[path]
			file := fileSet.Get(id)

			if opts.Cache != nil && opts.Cache.IsClean(file.Hash, opts.Settings) {
				results[i] = FileResult{
					Path:      path,
					FileID:    id,
					Bag:       diag.NewBag(opts.maxDiagnostics()),
					FromCache: true,
				}
				opts.emit(path, StatusCached)
				return nil
			}

			opts.emit(path, StatusChecking)
			bag := AnalyzeFile(fileSet, id, opts.Settings, opts.maxDiagnostics())
			if opts.Cache != nil && bag.Len() == 0 {
				// Best effort: a write failure only costs a re-analysis.
				_ = opts.Cache.MarkClean(file.Hash, opts.Settings, path)
			}
			results[i] = FileResult{Path: path, FileID: id, Bag: bag}
			if bag.Len() == 0 {
				opts.emit(path, StatusClean)
			} else {
				opts.emit(path, StatusIssues)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
