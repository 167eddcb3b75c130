package ovr

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"ovrprep/internal/fileutil"
	"ovrprep/internal/logging"
	"ovrprep/internal/services"
)

// Source is one split's parsed labels and the file name of its target stream.
type Source struct {
	Split          string
	TargetFilename string
	Labels         []int
}

// Job is a single OVR file to write.
type Job struct {
	Split  string
	Class  int
	Path   string
	Source *Source
}

// FileName returns the OVR file name for class and a split's target file.
func FileName(class int, targetFilename string) string {
	return fmt.Sprintf("%d_%s", class, targetFilename)
}

// Plan returns one job per class and source, classes outermost.
func Plan(outputDir string, classes ClassSet, sources []*Source) []Job {
	jobs := make([]Job, 0, classes.Len()*len(sources))
	for _, class := range classes.Classes {
		for _, src := range sources {
			jobs = append(jobs, Job{
				Split:  src.Split,
				Class:  class,
				Path:   fileutil.JoinUnder(outputDir, FileName(class, src.TargetFilename)),
				Source: src,
			})
		}
	}
	return jobs
}

// Writer persists OVR label files with bounded concurrency.
type Writer struct {
	workers int
	opts    fileutil.WriteOptions
	logger  *slog.Logger
}

// NewWriter constructs a writer. workers below one is treated as one.
func NewWriter(workers int, opts fileutil.WriteOptions, logger *slog.Logger) *Writer {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Writer{workers: workers, opts: opts, logger: logger}
}

// WriteAll writes every job and returns the number of files written. The first
// failure cancels jobs not yet started; files already written are left in place.
func (w *Writer) WriteAll(ctx context.Context, jobs []Job) (int, error) {
	var written atomic.Int64
	p := pool.New().
		WithMaxGoroutines(w.workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, job := range jobs {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines := Binarize(job.Source.Labels, job.Class)
			if err := fileutil.WriteLines(job.Path, lines, w.opts); err != nil {
				// fileutil already tags the error with ErrWrite.
				return services.Wrap(nil, "ovr-expand", job.Split, fmt.Sprintf("class %d", job.Class), err)
			}
			written.Add(1)
			w.logger.Debug("ovr file written",
				logging.Split(job.Split),
				logging.Int("class", job.Class),
				logging.String("path", job.Path),
				logging.Int("records", len(lines)),
			)
			return nil
		})
	}

	err := p.Wait()
	return int(written.Load()), err
}
