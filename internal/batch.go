package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// BatchParser turns raw file bytes into a conversation. It is satisfied by
// adapter.Registry; kept as a small interface here to avoid an import cycle.
type BatchParser interface {
	Parse(data []byte) (*Conversation, error)
}

// BatchOutcome records the result of processing one input file.
type BatchOutcome struct {
	Path         string
	Conversation *Conversation
	Err          error
}

// BatchRunner parses many export files concurrently. One bad file never
// aborts the run; its error is reported in the outcome instead.
type BatchRunner struct {
	Parser  BatchParser
	Workers int
}

// NewBatchRunner creates a runner with the given parser and worker count.
// Worker counts below 1 are treated as 1.
func NewBatchRunner(parser BatchParser, workers int) *BatchRunner {
	if workers < 1 {
		workers = 1
	}
	return &BatchRunner{Parser: parser, Workers: workers}
}

// Run processes each path and returns one outcome per path, in input order.
func (r *BatchRunner) Run(ctx context.Context, paths []string) []BatchOutcome {
	outcomes := make([]BatchOutcome, len(paths))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = r.processFile(ctx, paths[i])
			}
		}()
	}

	for i := range paths {
		select {
		case <-ctx.Done():
			// Mark the remaining files as cancelled rather than leave
			// zero-valued outcomes.
			for j := i; j < len(paths); j++ {
				outcomes[j] = BatchOutcome{Path: paths[j], Err: ctx.Err()}
			}
			close(jobs)
			wg.Wait()
			return outcomes
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (r *BatchRunner) processFile(ctx context.Context, path string) BatchOutcome {
	outcome := BatchOutcome{Path: path}

	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	data, err := os.ReadFile(path)
	if err != nil {
		outcome.Err = fmt.Errorf("failed to read %s: %w", path, err)
		return outcome
	}

	conv, err := r.Parser.Parse(data)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	if conv.ID == "" {
		conv.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	outcome.Conversation = conv
	return outcome
}

// CollectInputs expands the given paths into a sorted list of files. A
// directory contributes its immediate children with known export extensions.
func CollectInputs(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(entry.Name())) {
			case ".json", ".txt":
				files = append(files, filepath.Join(p, entry.Name()))
			}
		}
	}
	sort.Strings(files)
	return files, nil
}
