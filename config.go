package trkntuple

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of one ntuple production run. Values missing
// from a configuration file keep their defaults.
type Config struct {
	Tree        string       `yaml:"tree"`
	Collections Collections  `yaml:"collections"`
	Output      OutputConfig `yaml:"output"`
	QA          QAConfig     `yaml:"qa"`
	Proio       ProioConfig  `yaml:"proio"`
	Workers     int          `yaml:"workers"` // input files processed concurrently
}

type OutputConfig struct {
	Format      string `yaml:"format"`      // root | parquet
	Path        string `yaml:"path"`
	Compression string `yaml:"compression"` // parquet only: snappy | gzip | zstd | lz4 | none
}

// QAConfig controls the optional quality-assurance plots. An empty Prefix
// disables them.
type QAConfig struct {
	Prefix string    `yaml:"prefix"`
	NBins  int       `yaml:"nbins"`
	PMax   float64   `yaml:"pmax"`   // GeV
	PEdges []float64 `yaml:"pedges"` // overrides NBins and PMax for the momentum axis
}

type ProioConfig struct {
	// PrimaryTag marks particles that are given generator status 1.
	PrimaryTag string `yaml:"primary_tag"`
}

const (
	FormatROOT    = "root"
	FormatParquet = "parquet"
)

func DefaultConfig() *Config {
	return &Config{
		Tree:        DefaultTreeName,
		Collections: DefaultCollections(),
		Output: OutputConfig{
			Format:      FormatROOT,
			Path:        "tracker_ntuple.root",
			Compression: "snappy",
		},
		QA: QAConfig{
			NBins: 50,
			PMax:  4,
		},
		Proio: ProioConfig{
			PrimaryTag: "GenStable",
		},
		Workers: 1,
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %q: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("could not parse config %q: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Tree == "" {
		return fmt.Errorf("empty tree name")
	}
	cols := c.Collections
	if cols.SimParticles == "" || cols.RecoilHits == "" || cols.FindableTracks == "" {
		return fmt.Errorf("collection names must not be empty")
	}
	switch c.Output.Format {
	case FormatROOT, FormatParquet:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("empty output path")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.QA.Prefix != "" {
		if len(c.QA.PEdges) == 0 && (c.QA.NBins < 1 || c.QA.PMax <= 0) {
			return fmt.Errorf("invalid QA momentum binning: nbins=%d pmax=%v", c.QA.NBins, c.QA.PMax)
		}
		if len(c.QA.PEdges) > 0 && !increasing(c.QA.PEdges) {
			return fmt.Errorf("QA momentum edges must be at least two increasing values")
		}
	}
	return nil
}
