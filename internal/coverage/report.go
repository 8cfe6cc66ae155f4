package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
)

// Report writes a per-file coverage table for data to w. Coverable
// totals are line counts read lazily from disk and cached; a file that
// cannot be read reports only its covered count.
func (t *Tracker) Report(w io.Writer, data Data) error {
	if t == nil {
		return nil
	}

	files := append([]string(nil), t.sources...)
	sort.Strings(files)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Name\tLines\tMiss\tCover")
	fmt.Fprintln(tw, "----\t-----\t----\t-----")

	var totalLines, totalCovered int
	for _, file := range files {
		total := t.coverableLines(file)
		covered := len(data[file])
		if covered > total {
			total = covered
		}
		totalLines += total
		totalCovered += covered
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", file, total, total-covered, percent(covered, total))
	}

	fmt.Fprintln(tw, "----\t-----\t----\t-----")
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%s\n", totalLines, totalLines-totalCovered, percent(totalCovered, totalLines))
	return tw.Flush()
}

// Save persists data as JSON to path, one sorted line list per file.
func (t *Tracker) Save(path string, data Data) error {
	if t == nil {
		return nil
	}

	out := make(map[string][]int, len(data))
	for file, lines := range data {
		sorted := make([]int, 0, len(lines))
		for line := range lines {
			sorted = append(sorted, line)
		}
		sort.Ints(sorted)
		out[file] = sorted
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal coverage data: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create coverage dir: %w", err)
		}
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write coverage data: %w", err)
	}
	return nil
}

// coverableLines counts the measurable lines of a source file: blank
// lines and comment-only lines are not coverable.
func (t *Tracker) coverableLines(file string) int {
	if n, ok := t.lineCounts[file]; ok {
		return n
	}
	count := 0
	if content, err := os.ReadFile(file); err == nil {
		for _, line := range strings.Split(string(content), "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "//") {
				continue
			}
			count++
		}
	}
	t.lineCounts[file] = count
	return count
}

func percent(covered, total int) string {
	if total == 0 {
		return "100%"
	}
	return fmt.Sprintf("%d%%", covered*100/total)
}
