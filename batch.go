package scriba

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome for one file of a batch. Err is set when
// extraction failed for that file; the rest of the batch is unaffected.
type BatchResult struct {
	// FilePath is the input path this entry belongs to.
	FilePath string

	// Result is the extraction record, nil when Err is set.
	Result *Result

	// Warnings are the non-fatal problems hit while processing the file.
	Warnings []Warning

	// Err is the fatal error for this file, nil on success.
	Err error
}

// BatchOptions configures BatchExtract.
type BatchOptions struct {
	// Concurrency caps the number of files processed at once. Zero or
	// negative means runtime.NumCPU().
	Concurrency int

	// Configure adjusts the Extractor for every file, for example to
	// disable link reports. Nil leaves defaults in place.
	Configure func(*Extractor) *Extractor
}

// BatchExtract runs the extraction pipeline over many files
// concurrently. Results come back in input order. A file that fails is
// reported through its entry's Err field and never aborts the batch.
// Cancelling ctx skips files that have not started; their entries
// carry the context's error.
func BatchExtract(ctx context.Context, paths []string, opts BatchOptions) []BatchResult {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	results := make([]BatchResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = BatchResult{FilePath: path, Err: err}
				return nil
			}
			ext := Open(path)
			if opts.Configure != nil {
				ext = opts.Configure(ext)
			}
			res, warnings, err := ext.Result()
			results[i] = BatchResult{
				FilePath: path,
				Result:   res,
				Warnings: warnings,
				Err:      err,
			}
			return nil
		})
	}
	// Workers always return nil; failures live in the result entries.
	_ = g.Wait()

	return results
}
