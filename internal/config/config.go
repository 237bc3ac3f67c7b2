package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. WARPEACE_INPUT_BOOK.
const EnvPrefix = "WARPEACE"

// Config holds all run settings.
type Config struct {
	Workspace string         `yaml:"workspace" mapstructure:"workspace"` // empty = $HOME/.warpeace
	Input     InputConfig    `yaml:"input" mapstructure:"input"`
	Output    OutputConfig   `yaml:"output" mapstructure:"output"`
	Pipeline  PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Store     StoreConfig    `yaml:"store" mapstructure:"store"`
	Log       LogConfig      `yaml:"log" mapstructure:"log"`
}

// InputConfig names the book and the two term lists. An empty term list
// path selects the built-in list.
type InputConfig struct {
	Book       string `yaml:"book" mapstructure:"book"`
	WarTerms   string `yaml:"war_terms" mapstructure:"war_terms"`
	PeaceTerms string `yaml:"peace_terms" mapstructure:"peace_terms"`
}

type OutputConfig struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Report string `yaml:"report" mapstructure:"report"` // optional JSON report
}

type PipelineConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // 0 = one per CPU
}

type StoreConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Path    string `yaml:"path" mapstructure:"path"` // empty = <workspace>/runs.db
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	JSON  bool   `yaml:"json" mapstructure:"json"`
}

func Default() Config {
	return Config{
		Input: InputConfig{
			Book: "files/war_and_peace.txt",
		},
		Output: OutputConfig{
			Path: "files/output/chapterCategorizations.txt",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers every key with v so env vars and config files can
// override any of them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("workspace", d.Workspace)
	v.SetDefault("input.book", d.Input.Book)
	v.SetDefault("input.war_terms", d.Input.WarTerms)
	v.SetDefault("input.peace_terms", d.Input.PeaceTerms)
	v.SetDefault("output.path", d.Output.Path)
	v.SetDefault("output.report", d.Output.Report)
	v.SetDefault("pipeline.workers", d.Pipeline.Workers)
	v.SetDefault("store.enabled", d.Store.Enabled)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Input.Book) == "" {
		errs = append(errs, errors.New("input.book is required"))
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		errs = append(errs, errors.New("output.path is required"))
	}
	if c.Pipeline.Workers < 0 {
		errs = append(errs, fmt.Errorf("pipeline.workers must be >= 0, got %d", c.Pipeline.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
