package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the harness.
type Config struct {
	// Project settings
	ProjectPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Run settings
	Verbosity    int
	Descriptions bool
	RerunLog     string

	// Coverage settings
	CoverageDirs []string
	CoverageFile string

	// Paths to ignore when collecting coverage sources
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags.
type Flags struct {
	Verbosity    int
	Descriptions bool
	RerunLog     string
	CoverageDirs []string
	CoverageHTML string
	CoverageSave bool
	NoCovReport  bool
	Failed       bool
	Location     string
	TestCases    bool
}

// New creates a Config with defaults.
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Verbosity:      DefaultVerbosity,
		Flags:          Flags{Verbosity: DefaultVerbosity},
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config, applies .env overrides from the project
// directory and then the command-line flags on top.
func Load(flags Flags) *Config {
	cfg := New()
	cfg.applyEnv()
	cfg.Flags = flags

	cfg.Verbosity = flags.Verbosity
	cfg.Descriptions = flags.Descriptions
	if flags.RerunLog != "" {
		cfg.RerunLog = flags.RerunLog
	}
	if len(flags.CoverageDirs) > 0 {
		cfg.CoverageDirs = flags.CoverageDirs
	}

	return cfg
}

// applyEnv loads the project's .env file, if any, and picks up the
// GTR_* overrides. A missing file is not an error.
func (c *Config) applyEnv() {
	envPath := filepath.Join(c.ProjectPath, ".env")
	if err := godotenv.Load(envPath); err != nil {
		_ = err
	}

	if v := os.Getenv("GTR_RERUN_LOG"); v != "" {
		c.RerunLog = v
	}
	if v := os.Getenv("GTR_OUTPUT_DIR"); v != "" {
		c.OutputJSONDir = v
	}
	if v := os.Getenv("GTR_COVERAGE_DIRS"); v != "" {
		c.CoverageDirs = strings.Split(v, ",")
	}
}

// GetOutputPath returns the full path to the run results JSON file.
// Resolves to an absolute path so run and faills always read/write the
// same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetCoveragePath returns the path where aggregate coverage data is
// persisted.
func (c *Config) GetCoveragePath() string {
	if c.CoverageFile != "" {
		return c.CoverageFile
	}
	return filepath.Join(c.ProjectPath, c.OutputJSONDir, DefaultCoverageFile)
}
