package bin2art

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bodgit/bin2art/source"
	"github.com/vchimishuk/chub/cue"
)

// ErrOutputCollision is returned by Scan for a file whose image would
// overwrite the image of another file found in the same scan.
var ErrOutputCollision = errors.New("bin2art: output collision")

// Stats counts the outcome of a Scan.
type Stats struct {
	Rendered int64
	Skipped  int64
	Failed   int64
}

type job struct {
	file string
	out  string
}

type outcome struct {
	file   string
	result Result
	err    error
}

// cueReferences returns the lower case names of the files referenced by the
// CUE sheets in dir. A sheet that can't be parsed references nothing, it
// fails later when it is rendered itself.
func cueReferences(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	refs := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".cue") {
			continue
		}

		sheet, err := cue.ParseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}

		for _, f := range sheet.Files {
			refs[strings.ToLower(filepath.Base(f.Name))] = true
		}
	}

	return refs, nil
}

// outputPath mirrors the directory of file relative to base under the
// output directory so sources with the same name in different directories
// don't share an image.
func (g *Generator) outputPath(base, file string) (string, error) {
	rel, err := filepath.Rel(base, filepath.Dir(file))
	if err != nil {
		return "", err
	}
	return filepath.Join(g.opts.OutputDir, rel, source.Name(file)+"."+g.opts.Format.Ext()), nil
}

// findFiles walks base sending a job for every file to render. Files that
// can't be given an output of their own are reported straight to results.
func (g *Generator) findFiles(base string, jobs chan<- job, results chan<- outcome) error {
	refs := make(map[string]map[string]bool)
	claimed := make(map[string]string)

	return filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
		if info.Name()[0] == '.' && file != base {
			if info.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() || !g.included(file) {
			return nil
		}

		// A track referenced by a CUE sheet is rendered through the sheet
		dir := filepath.Dir(file)
		if _, ok := refs[dir]; !ok {
			if refs[dir], err = cueReferences(dir); err != nil {
				return err
			}
		}
		if !strings.EqualFold(filepath.Ext(file), ".cue") && refs[dir][strings.ToLower(info.Name())] {
			g.logger.Printf("Skipping %s, it is a track of a CUE sheet\n", file)
			return nil
		}

		out, err := g.outputPath(base, file)
		if err != nil {
			return err
		}

		if other, ok := claimed[out]; ok {
			results <- outcome{file: file, err: fmt.Errorf("%w: %s and %s both render to %s", ErrOutputCollision, other, file, out)}
			return nil
		}
		claimed[out] = file

		jobs <- job{file: file, out: out}

		return nil
	})
}

func (g *Generator) renderWorker(jobs <-chan job, results chan<- outcome) {
	for j := range jobs {
		result, err := g.renderTo(j.file, j.out)
		results <- outcome{file: j.file, result: result, err: err}
	}
}

// tally counts every outcome until results is closed. One bad file never
// stops the rest of the batch.
func (g *Generator) tally(results <-chan outcome) Stats {
	var stats Stats
	for o := range results {
		switch {
		case o.err != nil:
			g.logger.Printf("Failed %s: %v\n", o.file, o.err)
			stats.Failed++
		case o.result.Skipped:
			stats.Skipped++
		default:
			stats.Rendered++
		}
	}
	return stats
}

// Scan walks the directory tree at path and renders every file with an
// included extension. Images are written under the output directory in the
// same relative directory as their source. Files that fail are logged and
// counted, the scan only stops early if the walk itself fails.
func (g *Generator) Scan(path string) (Stats, error) {
	base, err := filepath.Abs(path)
	if err != nil {
		return Stats{}, err
	}

	workers := g.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan job)
	results := make(chan outcome)

	var wg sync.WaitGroup
	var walkErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		walkErr = g.findFiles(base, jobs, results)
	}()

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			g.renderWorker(jobs, results)
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	stats := g.tally(results)
	if walkErr != nil {
		return stats, walkErr
	}

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%d of %d files failed", stats.Failed, stats.Failed+stats.Rendered+stats.Skipped)
	}

	return stats, nil
}
