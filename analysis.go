package trkntuple

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Source delivers events one at a time, in file order.
type Source interface {
	Name() string
	Scan(ctx context.Context, fn func(Event) error) error
}

// Analysis is the per-run lifecycle around a Builder: Initialize declares the
// output table, Process builds and commits one row per event and Finalize
// hands the staged table to the writer exactly once.
//
// An Analysis owns its table and must not be shared between goroutines.
type Analysis struct {
	Builder *Builder
	Writer  TableWriter
	Logger  *slog.Logger

	table     *Table
	nEvents   int
	nFindable int
	finalized bool
}

func NewAnalysis(w TableWriter) *Analysis {
	return &Analysis{
		Builder: NewBuilder(),
		Writer:  w,
		Logger:  slog.Default().With(slog.String("component", "trkntuple")),
	}
}

func (a *Analysis) Initialize(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("could not initialize analysis: %w", err)
	}
	if a.Builder == nil {
		a.Builder = NewBuilder()
	}
	if a.Logger == nil {
		a.Logger = slog.Default()
	}
	a.Builder.Collections = cfg.Collections
	a.table = NewTable(cfg.Tree)
	a.nEvents, a.nFindable = 0, 0
	a.finalized = false

	a.Logger.Debug("analysis initialized",
		slog.String("tree", cfg.Tree),
		slog.String("particles", cfg.Collections.SimParticles),
		slog.String("hits", cfg.Collections.RecoilHits),
		slog.String("findable", cfg.Collections.FindableTracks),
	)
	return nil
}

// Process builds the row of evt and commits it. Any error is fatal for the
// run: nothing is committed for the failing event.
func (a *Analysis) Process(evt Event) error {
	switch {
	case a.table == nil:
		return ErrNotInitialized
	case a.finalized:
		return ErrFinalized
	}

	if err := a.Builder.Build(evt, a.table.Row()); err != nil {
		return fmt.Errorf("could not process event %d: %w", evt.Number(), err)
	}
	if a.table.Row().PrimaryFindable == 1 {
		a.nFindable++
	}
	a.table.Commit()
	a.nEvents++
	return nil
}

// Table returns the rows committed so far.
func (a *Analysis) Table() *Table { return a.table }

func (a *Analysis) Finalize() error {
	switch {
	case a.table == nil:
		return ErrNotInitialized
	case a.finalized:
		return ErrFinalized
	}
	a.finalized = true

	a.Logger.Info("analysis finalized",
		slog.String("tree", a.table.Name),
		slog.Int("events", a.nEvents),
		slog.Int("rows", a.table.Len()),
		slog.Int("primary_findable", a.nFindable),
	)
	if a.Writer == nil {
		return nil
	}
	if err := a.Writer.WriteTable(a.table); err != nil {
		return fmt.Errorf("could not write table %q: %w", a.table.Name, err)
	}
	return nil
}

// Run processes every source with its own Analysis, at most cfg.Workers at a
// time, merges the tables in source order and writes the result once. The
// first error cancels the remaining sources and nothing is written.
func Run(ctx context.Context, cfg *Config, sources []Source, w TableWriter, logger *slog.Logger) (*Table, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	workers := make([]*Analysis, len(sources))
	for i, src := range sources {
		a := NewAnalysis(nil)
		a.Logger = logger.With(slog.String("source", src.Name()))
		if err := a.Initialize(cfg); err != nil {
			return nil, err
		}
		workers[i] = a
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, src := range sources {
		src, a := src, workers[i]
		g.Go(func() error {
			if err := src.Scan(ctx, a.Process); err != nil {
				return fmt.Errorf("could not scan %s: %w", src.Name(), err)
			}
			return a.Finalize()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := NewAnalysis(w)
	all.Logger = logger
	if err := all.Initialize(cfg); err != nil {
		return nil, err
	}
	for _, a := range workers {
		all.table.Merge(a.table)
		all.nEvents += a.nEvents
		all.nFindable += a.nFindable
	}
	if err := all.Finalize(); err != nil {
		return nil, err
	}
	return all.table, nil
}
