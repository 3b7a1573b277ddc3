// Package source resolves input paths and parses every file into tasks.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/calvinalkan/taskstat/internal/org"
	"github.com/calvinalkan/taskstat/internal/task"
	"github.com/calvinalkan/taskstat/internal/ticket"
)

// Error variables for input resolution.
var (
	ErrPathNotFound = errors.New("path not found")
	ErrNoInputFiles = errors.New("no .org or .md files found")
)

const parseWorkers = 8

// Options configures Load.
type Options struct {
	States task.States
	Logger *slog.Logger
}

// Issue is a file that could not be parsed. Issues do not abort loading.
type Issue struct {
	Path string
	Err  error
}

// Collection is the result of loading every input file.
type Collection struct {
	Files []string
	Tasks []*task.Task
	// States is the configured vocabulary merged with keywords declared in files.
	States task.States
	Issues []Issue
}

type parseJob struct {
	idx      int
	path     string
	explicit bool
}

type parseResult struct {
	tasks   []*task.Task
	states  task.States
	err     error
	skipped bool
}

// Load parses every file named by paths. Directories contribute their .org
// and .md files, sorted by name, without recursing. Empty paths means ".".
func Load(ctx context.Context, paths []string, opts Options) (*Collection, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if len(paths) == 0 {
		paths = []string{"."}
	}

	jobs, err := resolve(paths)
	if err != nil {
		return nil, err
	}

	results := make([]parseResult, len(jobs))

	workerCount := min(len(jobs), parseWorkers)
	jobCh := make(chan parseJob, workerCount)

	var waitGroup sync.WaitGroup

	worker := func() {
		defer waitGroup.Done()

		for job := range jobCh {
			if ctx.Err() != nil {
				results[job.idx] = parseResult{err: ctx.Err()}

				continue
			}

			logger.Debug("parsing", "path", job.path)
			results[job.idx] = parse(job, opts.States)
		}
	}

	waitGroup.Add(workerCount)

	for range workerCount {
		go worker()
	}

	for _, job := range jobs {
		jobCh <- job
	}

	close(jobCh)

	waitGroup.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	coll := &Collection{States: opts.States}

	for i, res := range results {
		path := jobs[i].path

		switch {
		case res.skipped:
			logger.Debug("skipping file without frontmatter", "path", path)
		case res.err != nil:
			logger.Debug("parse failed", "path", path, "error", res.err)
			coll.Issues = append(coll.Issues, Issue{Path: path, Err: res.err})
		default:
			coll.Files = append(coll.Files, path)
			coll.Tasks = append(coll.Tasks, res.tasks...)
			coll.States = coll.States.Merge(res.states)
		}
	}

	logger.Debug("loaded", "files", len(coll.Files), "tasks", len(coll.Tasks), "issues", len(coll.Issues))

	return coll, nil
}

func resolve(paths []string) ([]parseJob, error) {
	var jobs []parseJob

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
			}

			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if !info.IsDir() {
			jobs = append(jobs, parseJob{idx: len(jobs), path: path, explicit: true})

			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("reading directory %s: %w", path, err)
		}

		names := make([]string, 0, len(entries))

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || strings.HasPrefix(name, ".") || !Supported(name) {
				continue
			}

			names = append(names, name)
		}

		slices.Sort(names)

		for _, name := range names {
			jobs = append(jobs, parseJob{idx: len(jobs), path: filepath.Join(path, name)})
		}
	}

	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputFiles, strings.Join(paths, ", "))
	}

	return jobs, nil
}

// Supported reports whether name has an extension Load picks from directories.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".org", ".md", ".markdown":
		return true
	default:
		return false
	}
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	default:
		return false
	}
}

func parse(job parseJob, states task.States) parseResult {
	if isMarkdown(job.path) {
		t, err := ticket.ParseFile(job.path, ticket.Options{States: states})
		if errors.Is(err, ticket.ErrNoFrontmatter) && !job.explicit {
			return parseResult{skipped: true}
		}

		if err != nil {
			return parseResult{err: err}
		}

		return parseResult{tasks: []*task.Task{t}}
	}

	doc, err := org.ParseFile(job.path, org.Options{States: states})
	if err != nil {
		return parseResult{err: err}
	}

	return parseResult{tasks: doc.Tasks, states: doc.States}
}
