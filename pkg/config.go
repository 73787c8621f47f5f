package genoscrub

import (
	"flag"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	GenotypePath  string `yaml:"genotypes,omitempty" envconfig:"GENOSCRUB_GENOTYPES"`
	PedigreePath  string `yaml:"pedigree,omitempty" envconfig:"GENOSCRUB_PEDIGREE"`
	MarkerPath    string `yaml:"markers,omitempty" envconfig:"GENOSCRUB_MARKERS"`
	OutPath       string `yaml:"out,omitempty" envconfig:"GENOSCRUB_OUT"`
	ChangeLogPath string `yaml:"changeLog,omitempty" envconfig:"GENOSCRUB_CHANGE_LOG"`
	SummaryPath   string `yaml:"summary,omitempty" envconfig:"GENOSCRUB_SUMMARY"`
	PhasePath     string `yaml:"phase,omitempty" envconfig:"GENOSCRUB_PHASE"`

	OffspringLimit int  `yaml:"offspringLimit,omitempty" envconfig:"GENOSCRUB_OFFSPRING_LIMIT"`
	BlameThreshold int  `yaml:"blameThreshold,omitempty" envconfig:"GENOSCRUB_BLAME_THRESHOLD"`
	MaxIterations  int  `yaml:"maxIterations,omitempty" envconfig:"GENOSCRUB_MAX_ITERATIONS"`
	DoubleSize     int  `yaml:"doubleSize,omitempty" envconfig:"GENOSCRUB_DOUBLE_SIZE"`
	ChunkWidth     int  `yaml:"chunkWidth,omitempty" envconfig:"GENOSCRUB_CHUNK_WIDTH"`
	ImputeMissing  bool `yaml:"imputeMissing" envconfig:"GENOSCRUB_IMPUTE_MISSING"`
	Debug          bool `yaml:"debug,omitempty" envconfig:"GENOSCRUB_DEBUG"`
}

func DefaultConfig() Config {
	return Config{
		OffspringLimit: DefaultOffspringLimit,
		BlameThreshold: DefaultBlameThreshold,
		MaxIterations:  DefaultMaxIterations,
		DoubleSize:     DefaultDoubleSize,
		ChunkWidth:     50,
		ImputeMissing:  true,
	}
}

// LoadConfig starts from the defaults, overlays the YAML file at path when
// path is not empty, then the GENOSCRUB_* environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, e := os.ReadFile(path)
		if e != nil {
			return cfg, fmt.Errorf("LoadConfig: %w", e)
		}
		if e := yaml.Unmarshal(data, &cfg); e != nil {
			return cfg, fmt.Errorf("LoadConfig: %v: %w", path, e)
		}
	}
	if e := envconfig.Process("", &cfg); e != nil {
		return cfg, fmt.Errorf("LoadConfig: %w", e)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.OffspringLimit < 0 {
		return fmt.Errorf("offspring limit %v < 0", c.OffspringLimit)
	}
	if c.BlameThreshold < 0 {
		return fmt.Errorf("blame threshold %v < 0", c.BlameThreshold)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations %v < 1", c.MaxIterations)
	}
	if c.DoubleSize < 0 {
		return fmt.Errorf("double switch size %v < 0", c.DoubleSize)
	}
	if c.ChunkWidth < 1 {
		return fmt.Errorf("chunk width %v < 1", c.ChunkWidth)
	}
	return nil
}

type ConfigFlags struct {
	ConfigPath string
	Config
}

// Bind registers the shared flags on fs. Only flags the user actually sets
// override the file and environment, see Resolve.
func (f *ConfigFlags) Bind(fs *flag.FlagSet) {
	d := DefaultConfig()
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config path")
	fs.StringVar(&f.GenotypePath, "g", "", "genotype file (.gz ok)")
	fs.StringVar(&f.PedigreePath, "p", "", "pedigree file (default: parents from the genotype file)")
	fs.StringVar(&f.MarkerPath, "m", "", "marker file")
	fs.StringVar(&f.OutPath, "o", "", "output path (default stdout)")
	fs.StringVar(&f.ChangeLogPath, "log", "", "change log path")
	fs.StringVar(&f.SummaryPath, "summary", "", "per-marker summary path")
	fs.StringVar(&f.PhasePath, "phase", "", "phase report path")
	fs.IntVar(&f.OffspringLimit, "offspring", d.OffspringLimit, "offspring needed to infer a homozygous parent")
	fs.IntVar(&f.BlameThreshold, "blame", d.BlameThreshold, "blame a parent above this many accusing offspring")
	fs.IntVar(&f.MaxIterations, "iter", d.MaxIterations, "scrub iteration cap")
	fs.IntVar(&f.DoubleSize, "double", d.DoubleSize, "markers bracketed by a double switch")
	fs.IntVar(&f.ChunkWidth, "chunk", d.ChunkWidth, "phase symbols per chunk")
	fs.BoolVar(&f.ImputeMissing, "impute", d.ImputeMissing, "also infer genotypes that were already missing")
	fs.BoolVar(&f.Debug, "debug", false, "debug logging")
}

// Resolve loads the config file and environment and applies the flags that
// were set on fs.
func (f *ConfigFlags) Resolve(fs *flag.FlagSet) (Config, error) {
	cfg, e := LoadConfig(f.ConfigPath)
	if e != nil {
		return cfg, e
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "g":
			cfg.GenotypePath = f.GenotypePath
		case "p":
			cfg.PedigreePath = f.PedigreePath
		case "m":
			cfg.MarkerPath = f.MarkerPath
		case "o":
			cfg.OutPath = f.OutPath
		case "log":
			cfg.ChangeLogPath = f.ChangeLogPath
		case "summary":
			cfg.SummaryPath = f.SummaryPath
		case "phase":
			cfg.PhasePath = f.PhasePath
		case "offspring":
			cfg.OffspringLimit = f.OffspringLimit
		case "blame":
			cfg.BlameThreshold = f.BlameThreshold
		case "iter":
			cfg.MaxIterations = f.MaxIterations
		case "double":
			cfg.DoubleSize = f.DoubleSize
		case "chunk":
			cfg.ChunkWidth = f.ChunkWidth
		case "impute":
			cfg.ImputeMissing = f.ImputeMissing
		case "debug":
			cfg.Debug = f.Debug
		}
	})
	return cfg, cfg.Validate()
}
