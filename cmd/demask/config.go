package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the demask configuration file
// (~/.config/demask/config.yaml). Fields are pointers so "not set" is
// distinguishable from zero; CLI flags always win over the file.
type Config struct {
	Vocab     *int64 `yaml:"vocab"`
	Hidden    *int64 `yaml:"hidden"`
	SeqLen    *int64 `yaml:"seq_len"`
	ModelSeed *int64 `yaml:"model_seed"`
	Steps     *int64 `yaml:"steps"`
	Schedule  string `yaml:"schedule"`

	Temperature *float64 `yaml:"temperature"`
	FilterThres *float64 `yaml:"filter_thres"`
	Seed        *int64   `yaml:"seed"`

	ServerAddress string `yaml:"server_address"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "demask", "config.yaml")
}

// LoadConfig reads the config file. A missing or unreadable file
// yields a zero Config.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	return parseConfig(data)
}

func parseConfig(data []byte) Config {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyModelConfig copies file defaults into the shared model flags
// when the corresponding flag was not set on the command line.
func applyModelConfig(c *cli.Command, cfg Config) {
	if cfg.Vocab != nil && !c.IsSet("vocab") {
		vocab = *cfg.Vocab
	}
	if cfg.Hidden != nil && !c.IsSet("hidden") {
		hidden = *cfg.Hidden
	}
	if cfg.SeqLen != nil && !c.IsSet("seq-len") && !c.IsSet("seq_len") && !c.IsSet("l") {
		seqLen = *cfg.SeqLen
	}
	if cfg.ModelSeed != nil && !c.IsSet("model-seed") {
		modelSeed = *cfg.ModelSeed
	}
	if cfg.Steps != nil && !c.IsSet("steps") && !c.IsSet("n") {
		steps = *cfg.Steps
	}
	if cfg.Schedule != "" && !c.IsSet("schedule") {
		schedName = cfg.Schedule
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

// applyGenerateConfig applies sampling defaults for the generate
// command.
func applyGenerateConfig(c *cli.Command, cfg Config, temp *float64, filterThres *float64, seed *int64) {
	if cfg.Temperature != nil && !c.IsSet("temp") && !c.IsSet("temperature") && !c.IsSet("t") {
		*temp = *cfg.Temperature
	}
	if cfg.FilterThres != nil && !c.IsSet("filter-thres") && !c.IsSet("filter_thres") {
		*filterThres = *cfg.FilterThres
	}
	if cfg.Seed != nil && !c.IsSet("seed") {
		*seed = *cfg.Seed
	}
}

// applyServeConfig applies server defaults for the serve command.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
}
