// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package categorize runs the two-stage contributor categorization pipeline:
// per-row AI categorization to an interim file, then fuzzy-match
// standardization against the canonical category set to the final file.
package categorize

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/civicdata/contribcat/internal/contrib"
	"github.com/civicdata/contribcat/internal/progress"
	"github.com/civicdata/contribcat/pkg/types"
)

const defaultSaveInterval = 50

// Backend abstracts the categorization API so tests can supply a mock.
type Backend interface {
	Categorize(ctx context.Context, c types.Contributor) (string, error)
}

// Pipeline orchestrates a categorization run.
type Pipeline struct {
	// Backend produces a category per contributor.
	Backend Backend

	// Store persists per-row progress for resume. Nil disables resume.
	Store *progress.Store

	// Processing holds threshold and save-interval settings.
	Processing types.ProcessingConfig

	// Dirs holds the interim and processed output directories.
	Dirs types.PipelineConfig

	// Categories is the canonical set; nil means DefaultCategories.
	Categories []string

	// Logger receives per-row warnings. Nil means no logging.
	Logger *zap.Logger
}

// RunSummary holds counts from a pipeline run.
type RunSummary struct {
	Rows        int
	Resumed     int
	Categorized int
	Failed      int
}

// RunResult reports where a run wrote its outputs.
type RunResult struct {
	InterimPath string
	FinalPath   string
	Summary     RunSummary
}

func (p *Pipeline) categories() []string {
	if len(p.Categories) > 0 {
		return p.Categories
	}
	return DefaultCategories
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}

// Run executes the full pipeline on inputPath. finalPath overrides the
// auto-generated location of the standardized output; pass "" for the
// default. Per-row API failures do not abort the run; those rows fall back
// to Other. Stage progress and category distributions are streamed to w.
func (p *Pipeline) Run(ctx context.Context, inputPath, finalPath string, w io.Writer) (RunResult, error) {
	f, err := contrib.ReadFile(inputPath)
	if err != nil {
		return RunResult{}, err
	}
	if err := contrib.Validate(f); err != nil {
		return RunResult{}, err
	}

	log := p.logger()
	summary := RunSummary{Rows: len(f.Rows)}
	fmt.Fprintf(w, "categorizing %d rows from %s\n", len(f.Rows), inputPath)

	var inputSHA string
	done := map[int]string{}
	if p.Store != nil {
		inputSHA, err = progress.FileSHA256(inputPath)
		if err != nil {
			return RunResult{}, err
		}
		done, err = p.Store.Load(ctx, inputSHA)
		if err != nil {
			return RunResult{}, err
		}
		if len(done) > 0 {
			fmt.Fprintf(w, "resuming: %d rows already categorized\n", len(done))
		}
	}

	interval := p.Processing.ProgressSaveInterval
	if interval <= 0 {
		interval = defaultSaveInterval
	}

	pending := map[int]string{}
	flush := func() error {
		if p.Store == nil || len(pending) == 0 {
			return nil
		}
		if err := p.Store.SaveBatch(ctx, inputSHA, pending); err != nil {
			return err
		}
		pending = map[int]string{}
		return nil
	}

	for i := range f.Rows {
		if category, ok := done[i]; ok {
			f.SetCategory(i, category)
			summary.Resumed++
			continue
		}

		c := f.Contributor(i)
		category, err := p.Backend.Categorize(ctx, c)
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled mid-run; keep what we have for resume.
				if ferr := flush(); ferr != nil {
					log.Warn("saving progress on cancel", zap.Error(ferr))
				}
				return RunResult{}, ctx.Err()
			}
			log.Warn("categorization failed, using fallback",
				zap.Int("row", i+2),
				zap.String("contributor", c.Name),
				zap.Error(err))
			category = types.CategoryOther
			summary.Failed++
		} else {
			summary.Categorized++
		}

		f.SetCategory(i, category)
		pending[i] = category

		if len(pending) >= interval {
			if err := flush(); err != nil {
				return RunResult{}, err
			}
			fmt.Fprintf(w, "categorized %d/%d rows\n", i+1, len(f.Rows))
		}
	}

	if err := flush(); err != nil {
		return RunResult{}, err
	}

	interimPath := OutputPath(p.Dirs.InterimDir, inputPath, "_categorized")
	if err := contrib.WriteFile(interimPath, f); err != nil {
		return RunResult{}, err
	}
	fmt.Fprintf(w, "wrote interim results to %s\n", interimPath)
	Stats(f).Write(w, "Raw AI categorization")

	p.standardizeRows(f)

	if finalPath == "" {
		finalPath = OutputPath(p.Dirs.ProcessedDir, inputPath, "_standardized")
	}
	if err := contrib.WriteFile(finalPath, f); err != nil {
		return RunResult{}, err
	}
	fmt.Fprintf(w, "wrote standardized results to %s\n", finalPath)
	Stats(f).Write(w, "Standardized category")

	if p.Store != nil {
		if err := p.Store.Clear(ctx, inputSHA); err != nil {
			log.Warn("clearing progress after run", zap.Error(err))
		}
	}

	return RunResult{
		InterimPath: interimPath,
		FinalPath:   finalPath,
		Summary:     summary,
	}, nil
}

// StandardizeFile runs stage two only: it reads an already-categorized CSV,
// standardizes the category column, and writes the result. outPath "" means
// the default processed location.
func (p *Pipeline) StandardizeFile(inputPath, outPath string, w io.Writer) (string, error) {
	f, err := contrib.ReadFile(inputPath)
	if err != nil {
		return "", err
	}
	if err := contrib.ValidateCategorized(f); err != nil {
		return "", err
	}

	fmt.Fprintf(w, "standardizing %d rows from %s\n", len(f.Rows), inputPath)
	Stats(f).Write(w, "Original category")

	p.standardizeRows(f)

	if outPath == "" {
		outPath = OutputPath(p.Dirs.ProcessedDir, inputPath, "_standardized")
	}
	if err := contrib.WriteFile(outPath, f); err != nil {
		return "", err
	}
	fmt.Fprintf(w, "wrote standardized results to %s\n", outPath)
	Stats(f).Write(w, "Standardized category")

	return outPath, nil
}

func (p *Pipeline) standardizeRows(f *contrib.File) {
	canonical := p.categories()
	log := p.logger()
	for i := range f.Rows {
		raw := f.Value(i, contrib.ColCategory)
		std := Standardize(raw, canonical, p.Processing.FuzzyMatchThreshold)
		if std == types.CategoryOther && raw != "" && raw != types.CategoryOther {
			log.Debug("category fell back to Other",
				zap.Int("row", i+2),
				zap.String("raw", raw))
		}
		f.SetCategory(i, std)
	}
}

// OutputPath builds the output location for inputPath under dir, appending
// suffix to the base name: data/raw/x.csv → <dir>/x<suffix>.csv.
func OutputPath(dir, inputPath, suffix string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+suffix+".csv")
}
