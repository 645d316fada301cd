// Package config provides configuration loading and access for the curtain
// wall growth-and-daylighting optimizer.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all optimizer configuration parameters.
type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Room   RoomConfig   `yaml:"room"`
	Tile   TileConfig   `yaml:"tile"`
	Growth GrowthConfig `yaml:"growth"`
	Sample SampleConfig `yaml:"sample"`
	Genes  GenesConfig  `yaml:"genes"`
	NSGA2  NSGA2Config  `yaml:"nsga2"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// SiteConfig holds the geographic site used for solar position calculations.
type SiteConfig struct {
	LatitudeDeg   float64 `yaml:"latitude_deg"`
	LongitudeDeg  float64 `yaml:"longitude_deg"`
	TZOffsetHours float64 `yaml:"tz_offset_hours"`
}

// RoomConfig holds the interior floor footprint sampled by the rasterizer.
type RoomConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	CellSize float64 `yaml:"cell_size"`
}

// TileConfig holds the toroidal wrap period used by the growth engine's
// nine-mirror neighbor search.
type TileConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GrowthConfig holds differential growth engine parameters.
type GrowthConfig struct {
	MaxPoints     int     `yaml:"max_points"`
	MaxIters      int     `yaml:"max_iters"`
	BaseDist      float64 `yaml:"base_dist"`
	MaxFactor     float64 `yaml:"max_factor"`
	MaxEffectDist float64 `yaml:"max_effect_dist"`
	Closed        bool    `yaml:"closed"`
}

// WindowConfig holds one sampling window's date, interpreted in the site's
// local time.
type WindowConfig struct {
	Date string `yaml:"date"` // YYYY-MM-DD
}

// SampleConfig holds the sun-vector sampling windows shared by every
// candidate evaluation.
type SampleConfig struct {
	Summer          WindowConfig `yaml:"summer"`
	Winter          WindowConfig `yaml:"winter"`
	StartHour       float64      `yaml:"start_hour"`
	EndHour         float64      `yaml:"end_hour"`
	IntervalHours   float64      `yaml:"interval_hours"`
	MinElevationDeg float64      `yaml:"min_elevation_deg"`
	ApplyRefraction bool         `yaml:"apply_refraction"`
}

// BoundsConfig holds a shared [lo, hi] bound applied to a gene block.
type BoundsConfig struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// GenesConfig holds the fixed gene layout: repeller factors followed by
// per-vertex offsets.
type GenesConfig struct {
	NumRepellerFactors int          `yaml:"num_repeller_factors"`
	NumOffsets         int          `yaml:"num_offsets"`
	RepellerBounds     BoundsConfig `yaml:"repeller_bounds"`
	OffsetBounds       BoundsConfig `yaml:"offset_bounds"`
}

// NSGA2Config holds the multi-objective driver's hyperparameters.
type NSGA2Config struct {
	PopulationSize      int     `yaml:"population_size"`
	Generations         int     `yaml:"generations"`
	CrossoverProb       float64 `yaml:"crossover_prob"`
	MutationProb        float64 `yaml:"mutation_prob"` // 0 = default to 1/L
	SBXEta              float64 `yaml:"sbx_eta"`
	MutationEta         float64 `yaml:"mutation_eta"`
	Seed                int64   `yaml:"seed"`
	DegreeOfParallelism int     `yaml:"degree_of_parallelism"`
	LogDir              string  `yaml:"log_dir"` // empty = cmd/curtaingen logs to <output>/nsga_logs
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	GeneLength int
	SummerDate time.Time
	WinterDate time.Time
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from the loaded config, and
// validates the fields that gate construction of the geometry pipeline.
func (c *Config) computeDerived() error {
	c.Derived.GeneLength = c.Genes.NumRepellerFactors + c.Genes.NumOffsets
	if c.Derived.GeneLength <= 0 {
		return fmt.Errorf("config: gene length must be positive, got %d", c.Derived.GeneLength)
	}

	summer, err := time.ParseInLocation("2006-01-02", c.Sample.Summer.Date, time.UTC)
	if err != nil {
		return fmt.Errorf("config: parsing sample.summer.date %q: %w", c.Sample.Summer.Date, err)
	}
	winter, err := time.ParseInLocation("2006-01-02", c.Sample.Winter.Date, time.UTC)
	if err != nil {
		return fmt.Errorf("config: parsing sample.winter.date %q: %w", c.Sample.Winter.Date, err)
	}
	c.Derived.SummerDate = summer
	c.Derived.WinterDate = winter

	if c.NSGA2.MutationProb == 0 {
		c.NSGA2.MutationProb = 1.0 / float64(c.Derived.GeneLength)
	}
	if c.NSGA2.DegreeOfParallelism <= 0 {
		c.NSGA2.DegreeOfParallelism = 1
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
