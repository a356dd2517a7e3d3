package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	bondconfig "github.com/yaokonan/umoalib/bond/config"
	"github.com/yaokonan/umoalib/logger"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Logging LoggingConfig `yaml:"logging"`
	Solver  SolverConfig  `yaml:"solver"`
	Curves  CurvesConfig  `yaml:"curves"`
}

type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type SolverConfig struct {
	ConvergenceTolerance float64 `yaml:"convergence_tolerance"`
	MaxIterations        int     `yaml:"max_iterations"`
	YieldFloor           float64 `yaml:"yield_floor"`
	YieldCeiling         float64 `yaml:"yield_ceiling"`
	DerivativeThreshold  float64 `yaml:"derivative_threshold"`
}

type CurvesConfig struct {
	// Path to a JSON file of curve snapshots loaded by the CLIs.
	Path string `yaml:"path"`
}

// LoadConfig reads a YAML configuration file. A .env file in the working
// directory is loaded first so ${VAR} references and env overrides resolve.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Config{
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Solver: SolverConfig{
			ConvergenceTolerance: bondconfig.DefaultConfig.ConvergenceTolerance,
			MaxIterations:        bondconfig.DefaultConfig.MaxIterations,
			YieldFloor:           bondconfig.DefaultConfig.YieldFloor,
			YieldCeiling:         bondconfig.DefaultConfig.YieldCeiling,
			DerivativeThreshold:  bondconfig.DefaultConfig.DerivativeThreshold,
		},
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment overrides
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Logging.Level = strings.TrimSpace(v)
	}
	if v := os.Getenv("CURVES_PATH"); v != "" {
		config.Curves.Path = strings.TrimSpace(v)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func validateConfig(c *Config) error {
	if c.Solver.MaxIterations <= 0 {
		return fmt.Errorf("solver.max_iterations must be positive")
	}
	if c.Solver.ConvergenceTolerance <= 0 {
		return fmt.Errorf("solver.convergence_tolerance must be positive")
	}
	if c.Solver.YieldFloor >= c.Solver.YieldCeiling {
		return fmt.Errorf("solver.yield_floor must be below solver.yield_ceiling")
	}
	return nil
}

// Apply installs the solver parameters and logging settings process-wide.
func (c *Config) Apply(log *logger.Log) {
	bondconfig.SetConfig(bondconfig.Config{
		ConvergenceTolerance: c.Solver.ConvergenceTolerance,
		MaxIterations:        c.Solver.MaxIterations,
		YieldFloor:           c.Solver.YieldFloor,
		YieldCeiling:         c.Solver.YieldCeiling,
		DerivativeThreshold:  c.Solver.DerivativeThreshold,
	})

	if log == nil {
		return
	}
	log.SetLevel(c.Logging.Level)
	if c.Logging.File != "" {
		log.UseFile(c.Logging.File, c.Logging.MaxSizeMB, c.Logging.MaxBackups, c.Logging.MaxAgeDays)
	}
}
