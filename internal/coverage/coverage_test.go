package coverage

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestTracker_RecordWindow(t *testing.T) {
	tr := New([]string{"a.go"})

	tr.Record("a.go", 1) // before Start, dropped
	tr.Start()
	tr.Record("a.go", 2)
	tr.Record("a.go", 2) // duplicate hit
	tr.Record("b.go", 3) // outside the include set
	tr.Stop()
	tr.Record("a.go", 4) // after Stop, dropped

	snap := tr.Snapshot()
	expected := Data{"a.go": {2: true}}
	if !reflect.DeepEqual(snap, expected) {
		t.Errorf("expected %v, got %v", expected, snap)
	}
}

func TestTracker_SnapshotIsIndependent(t *testing.T) {
	tr := New([]string{"a.go"})
	tr.Start()
	tr.Record("a.go", 1)
	snap := tr.Snapshot()

	tr.Record("a.go", 2)
	if len(snap["a.go"]) != 1 {
		t.Error("snapshot should not see later hits")
	}

	tr.Reset()
	if len(snap["a.go"]) != 1 {
		t.Error("snapshot should survive a reset")
	}
	if got := tr.Snapshot(); len(got) != 0 {
		t.Errorf("expected an empty buffer after reset, got %v", got)
	}
}

func TestTracker_NilIsNoOp(t *testing.T) {
	tr := New(nil)
	if tr != nil {
		t.Fatal("expected nil tracker for an empty source list")
	}

	tr.Start()
	tr.Record("a.go", 1)
	tr.Stop()
	tr.Reset()
	if snap := tr.Snapshot(); snap != nil {
		t.Errorf("expected nil snapshot, got %v", snap)
	}

	var buf bytes.Buffer
	if err := tr.Report(&buf, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := tr.Save("unused.json", nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := tr.HTML("unused", nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nil tracker should write nothing, got %q", buf.String())
	}
}

func TestData_Merge(t *testing.T) {
	a := Data{"x.go": {1: true, 2: true}}
	b := Data{"x.go": {2: true, 3: true}, "y.go": {7: true}}

	a.Merge(b)

	expected := Data{"x.go": {1: true, 2: true, 3: true}, "y.go": {7: true}}
	if !reflect.DeepEqual(a, expected) {
		t.Errorf("expected %v, got %v", expected, a)
	}
	// b is untouched
	if len(b["x.go"]) != 2 {
		t.Errorf("merge source modified: %v", b)
	}
}

func TestTracker_Report(t *testing.T) {
	dir, err := os.MkdirTemp("", "coverage_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	// 4 coverable lines: blank line and comment do not count
	src := writeFile(t, dir, "calc.go", "package calc\n\n// Add sums two ints.\nfunc Add(a, b int) int {\n\treturn a + b\n}\n")

	tr := New([]string{src})
	data := Data{src: {4: true, 5: true}}

	var buf bytes.Buffer
	if err := tr.Report(&buf, data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Name") || !strings.Contains(out, "TOTAL") {
		t.Errorf("expected table header and TOTAL row, got %q", out)
	}
	if !strings.Contains(out, "50%") {
		t.Errorf("expected 2/4 lines covered to report 50%%, got %q", out)
	}
}

func TestTracker_Save(t *testing.T) {
	dir, err := os.MkdirTemp("", "coverage_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	tr := New([]string{"a.go"})
	path := filepath.Join(dir, "nested", "coverage.json")
	if err := tr.Save(path, Data{"a.go": {3: true, 1: true, 2: true}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read saved data: %v", err)
	}
	var decoded map[string][]int
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("saved data is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(decoded["a.go"], []int{1, 2, 3}) {
		t.Errorf("expected sorted line list [1 2 3], got %v", decoded["a.go"])
	}
}

func TestTracker_HTML(t *testing.T) {
	dir, err := os.MkdirTemp("", "coverage_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	src := writeFile(t, dir, "calc.go", "package calc\nvar x = 1\n")
	tr := New([]string{src})

	htmlDir := filepath.Join(dir, "report")
	if err := tr.HTML(htmlDir, Data{src: {2: true}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	index, err := os.ReadFile(filepath.Join(htmlDir, "index.html"))
	if err != nil {
		t.Fatalf("expected an index page: %v", err)
	}
	if !strings.Contains(string(index), "calc.go") {
		t.Errorf("expected the source file listed in the index, got %q", string(index))
	}

	page, err := os.ReadFile(filepath.Join(htmlDir, pageName(src)))
	if err != nil {
		t.Fatalf("expected a per-file page: %v", err)
	}
	if !strings.Contains(string(page), `class="line covered"`) {
		t.Errorf("expected the covered line highlighted, got %q", string(page))
	}
}

func TestCollectSources(t *testing.T) {
	dir, err := os.MkdirTemp("", "coverage_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	kept := writeFile(t, dir, "pkg/calc.go", "package calc\n")
	writeFile(t, dir, "pkg/calc_test.go", "package calc\n")
	writeFile(t, dir, "pkg/readme.md", "docs\n")
	writeFile(t, dir, "vendor/dep.go", "package dep\n")
	writeFile(t, dir, ".git/hook.go", "package hook\n")

	files, err := CollectSources([]string{dir}, []string{"vendor"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Strings(files)
	if !reflect.DeepEqual(files, []string{kept}) {
		t.Errorf("expected only %s, got %v", kept, files)
	}
}

func TestCollectSources_Errors(t *testing.T) {
	dir, err := os.MkdirTemp("", "coverage_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dir)
	file := writeFile(t, dir, "lone.go", "package lone\n")

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"missing path", filepath.Join(dir, "nope"), "source path does not exist"},
		{"file instead of directory", file, "source path is not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CollectSources([]string{tt.path}, nil)
			if err == nil || !strings.Contains(err.Error(), tt.expected) {
				t.Errorf("expected error containing %q, got %v", tt.expected, err)
			}
		})
	}
}
