package coverage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CollectSources finds Go source files under the given directories.
// The result feeds a Tracker's include set. Hidden directories and
// directories named in ignore are skipped; test files are not
// measurable sources and are left out.
func CollectSources(dirs []string, ignore []string) ([]string, error) {
	skip := make(map[string]bool, len(ignore))
	for _, dir := range ignore {
		skip[dir] = true
	}

	var files []string
	for _, root := range dirs {
		root = filepath.Clean(root)
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("source path does not exist: %s", root)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("source path is not a directory: %s", root)
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				name := d.Name()
				if strings.HasPrefix(name, ".") && name != "." && name != ".." {
					return filepath.SkipDir
				}
				if skip[name] {
					return filepath.SkipDir
				}
				return nil
			}

			if strings.HasSuffix(d.Name(), ".go") && !strings.HasSuffix(d.Name(), "_test.go") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
