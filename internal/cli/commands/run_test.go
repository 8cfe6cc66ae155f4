package commands

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gtr/internal/config"
	"gtr/internal/harness"
	"gtr/internal/storage"
	"gtr/internal/ui"
)

func init() {
	harness.Register("cmdtest.sample",
		&harness.Case{Class: "SampleCase", Method: "test_ok", Func: func(ctl *harness.Control) {}},
	)
	harness.Register("cmdtest.broken",
		&harness.Case{Class: "BrokenCase", Method: "test_fail", Func: func(ctl *harness.Control) {
			ctl.Failf("always fails")
		}},
	)
}

func tempRunConfig(t *testing.T) *config.Config {
	t.Helper()
	dir, err := os.MkdirTemp("", "run_command_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := config.New()
	cfg.ProjectPath = dir
	return cfg
}

func newRunCommand(cfg *config.Config) *RunCommand {
	return NewRunCommand(cfg, storage.NewJSONStorage(cfg), ui.NewFormatter(cfg))
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("failed to read captured output: %v", err)
	}
	return string(out)
}

func TestRunCommand_Execute_PrintsRunStats(t *testing.T) {
	cfg := tempRunConfig(t)
	rc := newRunCommand(cfg)

	out := captureStdout(t, func() {
		if err := rc.Execute(nil, []string{"cmdtest.sample"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	if !strings.Contains(out, "Tests Run") {
		t.Errorf("expected the run statistics table after the run, got %q", out)
	}
	if _, err := os.Stat(cfg.GetOutputPath()); err != nil {
		t.Errorf("expected saved run results: %v", err)
	}
}

func TestRunCommand_Execute_FailedResetsRerunLog(t *testing.T) {
	cfg := tempRunConfig(t)
	logPath := filepath.Join(cfg.ProjectPath, "rerun.log")
	if err := os.WriteFile(logPath, []byte("cmdtest.sample.SampleCase.test_ok\n"), 0644); err != nil {
		t.Fatalf("failed to seed rerun log: %v", err)
	}
	cfg.RerunLog = logPath
	cfg.Flags.Failed = true

	rc := newRunCommand(cfg)
	_ = captureStdout(t, func() {
		if err := rc.Execute(nil, nil); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read rerun log: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("expected an empty rerun log once the test passed, got %q", string(content))
	}
}

func TestRunCommand_Execute_FailedKeepsStillFailing(t *testing.T) {
	cfg := tempRunConfig(t)
	logPath := filepath.Join(cfg.ProjectPath, "rerun.log")
	if err := os.WriteFile(logPath, []byte("cmdtest.broken.BrokenCase.test_fail\n"), 0644); err != nil {
		t.Fatalf("failed to seed rerun log: %v", err)
	}
	cfg.RerunLog = logPath
	cfg.Flags.Failed = true

	rc := newRunCommand(cfg)
	var execErr error
	_ = captureStdout(t, func() {
		execErr = rc.Execute(nil, nil)
	})
	if execErr == nil {
		t.Error("expected the run to report failure")
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read rerun log: %v", err)
	}
	if string(content) != "cmdtest.broken.BrokenCase.test_fail\n" {
		t.Errorf("expected only the still-failing test recorded, got %q", string(content))
	}
}
