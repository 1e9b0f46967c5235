package driver

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"questc/pkg/source"
)

// Result is the outcome of one file of a batch build.
type Result struct {
	Path    string
	Written *Written
	Err     error
}

// Build generates JavaScript for every file concurrently. A failing file
// does not stop the others; all failures are returned together. Outputs are
// named after the input's base name, so a later file whose output is already
// claimed fails without being compiled.
func Build(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	results := make([]Result, len(paths))

	var (
		mu   sync.Mutex
		merr *multierror.Error
	)
	owners := make(map[string]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		out := OutputPath(opts.OutDir, source.FromFile(path, ""))
		if owner, taken := owners[out]; taken {
			err := &UsageError{Msg: fmt.Sprintf("%s: output %s is already written by %s", path, out, owner)}
			results[i] = Result{Path: path, Err: err}
			mu.Lock()
			merr = multierror.Append(merr, err)
			mu.Unlock()
			continue
		}
		owners[out] = path

		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Result{Path: path}
			w, err := buildOne(path, opts)
			if err != nil {
				results[i].Err = err
				mu.Lock()
				merr = multierror.Append(merr, err)
				mu.Unlock()
				return nil
			}
			results[i].Written = w
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	opts.Logger.Debug("Build finished", zap.Int("files", len(paths)), zap.Int("failed", failures(merr)))
	return results, merr.ErrorOrNil()
}

func buildOne(path string, opts Options) (*Written, error) {
	src, err := ReadSource(opts.Fs, path)
	if err != nil {
		return nil, err
	}
	artifact, err := Compile(src, StageGenerate, opts)
	if err != nil {
		return nil, err
	}
	return artifact.(*Written), nil
}

func failures(merr *multierror.Error) int {
	if merr == nil {
		return 0
	}
	return len(merr.Errors)
}
