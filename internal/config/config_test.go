package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected project path %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}
	if cfg.OutputJSONFile != DefaultOutputJSONFile {
		t.Errorf("expected output file %s, got %s", DefaultOutputJSONFile, cfg.OutputJSONFile)
	}
	if cfg.OutputJSONDir != DefaultOutputJSONDir {
		t.Errorf("expected output dir %s, got %s", DefaultOutputJSONDir, cfg.OutputJSONDir)
	}
	if cfg.Verbosity != DefaultVerbosity {
		t.Errorf("expected verbosity %d, got %d", DefaultVerbosity, cfg.Verbosity)
	}
	if !reflect.DeepEqual(cfg.PathsToIgnore, DefaultPathsToIgnore) {
		t.Errorf("expected default ignore paths, got %v", cfg.PathsToIgnore)
	}
}

func TestLoad_FlagOverrides(t *testing.T) {
	cfg := Load(Flags{
		Verbosity:    2,
		Descriptions: true,
		RerunLog:     "failed.log",
		CoverageDirs: []string{"internal", "cmd"},
	})

	if cfg.Verbosity != 2 {
		t.Errorf("expected verbosity 2, got %d", cfg.Verbosity)
	}
	if !cfg.Descriptions {
		t.Error("expected descriptions enabled")
	}
	if cfg.RerunLog != "failed.log" {
		t.Errorf("expected rerun log failed.log, got %s", cfg.RerunLog)
	}
	if !reflect.DeepEqual(cfg.CoverageDirs, []string{"internal", "cmd"}) {
		t.Errorf("expected coverage dirs from flags, got %v", cfg.CoverageDirs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GTR_RERUN_LOG", "env.log")
	t.Setenv("GTR_OUTPUT_DIR", ".results")
	t.Setenv("GTR_COVERAGE_DIRS", "internal,pkg")

	cfg := Load(Flags{Verbosity: DefaultVerbosity})

	if cfg.RerunLog != "env.log" {
		t.Errorf("expected rerun log from env, got %s", cfg.RerunLog)
	}
	if cfg.OutputJSONDir != ".results" {
		t.Errorf("expected output dir from env, got %s", cfg.OutputJSONDir)
	}
	if !reflect.DeepEqual(cfg.CoverageDirs, []string{"internal", "pkg"}) {
		t.Errorf("expected coverage dirs from env, got %v", cfg.CoverageDirs)
	}
}

func TestLoad_FlagsBeatEnv(t *testing.T) {
	t.Setenv("GTR_RERUN_LOG", "env.log")

	cfg := Load(Flags{Verbosity: DefaultVerbosity, RerunLog: "flag.log"})
	if cfg.RerunLog != "flag.log" {
		t.Errorf("expected the flag to win, got %s", cfg.RerunLog)
	}
}

func TestConfig_GetOutputPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = string(os.PathSeparator) + filepath.Join("tmp", "proj")

	expected := filepath.Join(cfg.ProjectPath, DefaultOutputJSONDir, DefaultOutputJSONFile)
	if got := cfg.GetOutputPath(); got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}
}

func TestConfig_GetCoveragePath(t *testing.T) {
	cfg := New()
	if got := cfg.GetCoveragePath(); got != filepath.Join(".", DefaultOutputJSONDir, DefaultCoverageFile) {
		t.Errorf("unexpected default coverage path %s", got)
	}

	cfg.CoverageFile = "custom.json"
	if got := cfg.GetCoveragePath(); got != "custom.json" {
		t.Errorf("expected the explicit file to win, got %s", got)
	}
}
