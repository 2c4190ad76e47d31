// Package audio produces the per-entry sound files the game page looks up
// by fileKey (<fileKey>.mp3 in the assets directory).
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/pinyin-game/internal/pinyin"
)

// Synthesizer turns text into encoded audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Generator writes one audio file per catalog entry.
type Generator struct {
	Synth     Synthesizer
	Dir       string
	Overwrite bool // regenerate files that already exist
	Workers   int  // concurrent requests; <= 0 means 4
}

// Result summarises a Generate run.
type Result struct {
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
}

// FileName returns the asset file name for an entry.
func FileName(e pinyin.Entry) string { return e.FileKey + ".mp3" }

// Generate synthesises each entry's Reading into g.Dir. Existing files are
// skipped unless Overwrite is set. Entries without a reading are rejected
// before any request is made; the first synthesis failure cancels the rest.
func (g *Generator) Generate(ctx context.Context, entries []pinyin.Entry) (Result, error) {
	var missing []string
	for _, e := range entries {
		if e.Reading == "" {
			missing = append(missing, e.FileKey)
		}
	}
	if len(missing) > 0 {
		return Result{}, fmt.Errorf("no reading for %s", strings.Join(missing, ", "))
	}
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("mkdir %s: %w", g.Dir, err)
	}

	workers := g.Workers
	if workers <= 0 {
		workers = 4
	}

	written := make([]bool, len(entries))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, e := range entries {
		path := filepath.Join(g.Dir, FileName(e))
		if !g.Overwrite {
			if _, err := os.Stat(path); err == nil {
				log.Debug().Str("path", path).Msg("audio file exists")
				continue
			}
		}
		i, e := i, e // per-iteration copies; go directive is below 1.22
		eg.Go(func() error {
			data, err := g.Synth.Synthesize(ctx, e.Reading)
			if err != nil {
				return fmt.Errorf("synthesize %q: %w", e.FileKey, err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			written[i] = true
			log.Debug().Str("path", path).Msg("audio file written")
			return nil
		})
	}
	err := eg.Wait()

	var res Result
	for i, e := range entries {
		if written[i] {
			res.Written = append(res.Written, e.FileKey)
		} else if err == nil {
			res.Skipped = append(res.Skipped, e.FileKey)
		}
	}
	return res, err
}
