package cmdutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	oerrors "github.com/opmodel/svgi/internal/errors"
	"github.com/opmodel/svgi/internal/output"
	"github.com/opmodel/svgi/internal/svgi"
)

// FileResult is the outcome of transforming one file.
type FileResult struct {
	// Path is the absolute file path passed to the plugin as its id.
	Path string

	// ID is Path relative to the base directory, slash separated.
	ID string

	// Result is nil when the plugin skipped the file.
	Result *svgi.Result
}

// Skipped reports whether the plugin declined the file.
func (r FileResult) Skipped() bool {
	return r.Result == nil
}

// TransformFiles reads and transforms every file concurrently. Results keep
// the order of paths. The first failure cancels the remaining work.
func TransformFiles(ctx context.Context, p *svgi.Plugin, paths []string, baseDir string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		results[i] = FileResult{Path: abs, ID: RelativeID(baseDir, abs)}

		g.Go(func() error {
			res, err := transformFile(gctx, p, abs, results[i].ID)
			if err != nil {
				return err
			}
			results[i].Result = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func transformFile(ctx context.Context, p *svgi.Plugin, path, id string) (*svgi.Result, error) {
	// Skipped files are never read.
	if !p.Match(path) {
		output.Debug(output.FormatFileLine(id, output.StatusSkipped))
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, oerrors.NewNotFoundError("file not found", path, "")
		case os.IsPermission(err):
			return nil, oerrors.NewPermissionError("cannot read file", path, "")
		default:
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	log := output.FileLogger(id)
	res, err := p.Transform(ctx, string(data), path, svgi.WithWarn(func(msg string) {
		log.Warn(msg)
	}))
	if err != nil {
		return nil, err
	}
	if res == nil {
		output.Debug(output.FormatFileLine(id, output.StatusSkipped))
	} else {
		output.Debug(output.FormatFileLine(id, output.StatusGenerated))
	}
	return res, nil
}

// RelativeID returns path relative to baseDir with forward slashes, or the
// slash form of path when it lies outside baseDir.
func RelativeID(baseDir, path string) string {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
