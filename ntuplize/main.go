package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"

	"github.com/decibelcooper/trkntuple"
	"github.com/decibelcooper/trkntuple/lcioevt"
	"github.com/decibelcooper/trkntuple/parquetfile"
	"github.com/decibelcooper/trkntuple/proioevt"
	"github.com/decibelcooper/trkntuple/qa"
	"github.com/decibelcooper/trkntuple/rootfile"
)

var (
	config      = flag.String("config", "", "YAML configuration file")
	output      = flag.String("output", "", "output file (default from config)")
	format      = flag.String("format", "", "output format: root or parquet (default from config)")
	compression = flag.String("compression", "", "parquet compression: snappy, gzip, zstd, lz4 or none")
	tree        = flag.String("tree", "", "output tree name")
	qaPrefix    = flag.String("qa", "", "QA plot file prefix, empty to skip plots")
	nBins       = flag.Int("nbins", 0, "number of bins in QA histograms")
	pMax        = flag.Float64("pmax", 0, "upper momentum limit of QA histograms (GeV)")
	workers     = flag.Int("j", 0, "number of input files processed concurrently")
	primaryTag  = flag.String("primarytag", "", "proio tag marking the primary particle")
	replot      = flag.Bool("replot", false, "read an existing ntuple and only draw the QA plots")
	cpuProfile  = flag.String("cpuprofile", "", "directory for a CPU profile")
	verbose     = flag.Bool("v", false, "verbose logging")
	pEdges      trkntuple.EdgeFlags
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <slcio-or-proio-input-files>...
       `+os.Args[0]+` -replot -qa <prefix> [options] <ntuple-file>

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("ntuplize: ")
	log.SetFlags(0)

	flag.Var(&pEdges, "pedges", "QA momentum bin edges, repeated or comma separated (overrides -nbins/-pmax)")
	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile)).Stop()
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	if *replot {
		if err := replotNtuple(cfg, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	var sources []trkntuple.Source
	for _, fname := range flag.Args() {
		src, err := openSource(cfg, fname)
		if err != nil {
			log.Fatal(err)
		}
		sources = append(sources, src)
	}

	writers := []trkntuple.TableWriter{outputWriter(cfg)}
	if cfg.QA.Prefix != "" {
		writers = append(writers, qa.NewPlotter(cfg.QA))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tbl, err := trkntuple.Run(ctx, cfg, sources, trkntuple.MultiWriter(writers...), logger)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %d rows to %s", tbl.Len(), cfg.Output.Path)
}

func loadConfig() (*trkntuple.Config, error) {
	cfg := trkntuple.DefaultConfig()
	if *config != "" {
		var err error
		cfg, err = trkntuple.LoadConfig(*config)
		if err != nil {
			return nil, err
		}
	}

	if *format != "" {
		cfg.Output.Format = *format
	}
	if *output != "" {
		cfg.Output.Path = *output
		if *format == "" && strings.HasSuffix(*output, ".parquet") {
			cfg.Output.Format = trkntuple.FormatParquet
		}
	}
	if *compression != "" {
		cfg.Output.Compression = *compression
	}
	if *tree != "" {
		cfg.Tree = *tree
	}
	if *qaPrefix != "" {
		cfg.QA.Prefix = *qaPrefix
	}
	if *nBins > 0 {
		cfg.QA.NBins = *nBins
	}
	if *pMax > 0 {
		cfg.QA.PMax = *pMax
	}
	if pEdges.IsSet() {
		cfg.QA.PEdges = pEdges.Edges
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *primaryTag != "" {
		cfg.Proio.PrimaryTag = *primaryTag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func openSource(cfg *trkntuple.Config, fname string) (trkntuple.Source, error) {
	switch filepath.Ext(fname) {
	case ".slcio":
		f := lcioevt.NewFile(fname)
		f.Particles = cfg.Collections.SimParticles
		return f, nil
	case ".proio":
		conv := proioevt.NewConverter()
		conv.Collections = cfg.Collections
		conv.PrimaryTag = cfg.Proio.PrimaryTag
		return proioevt.NewFile(fname, conv), nil
	}
	return nil, fmt.Errorf("unknown input file type %q", fname)
}

func outputWriter(cfg *trkntuple.Config) trkntuple.TableWriter {
	if cfg.Output.Format == trkntuple.FormatParquet {
		return parquetfile.NewWriter(cfg.Output.Path, cfg.Output.Compression)
	}
	return rootfile.NewWriter(cfg.Output.Path)
}

func replotNtuple(cfg *trkntuple.Config, fname string) error {
	if cfg.QA.Prefix == "" {
		return fmt.Errorf("-replot needs a QA prefix")
	}

	var (
		tbl *trkntuple.Table
		err error
	)
	if filepath.Ext(fname) == ".parquet" {
		tbl, err = parquetfile.ReadTable(fname, cfg.Tree)
	} else {
		tbl, err = rootfile.ReadTable(fname, cfg.Tree)
	}
	if err != nil {
		return err
	}
	return qa.NewPlotter(cfg.QA).WriteTable(tbl)
}
