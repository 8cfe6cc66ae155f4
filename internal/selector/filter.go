package selector

import (
	"errors"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"gtr/internal/harness"
)

// ErrNoMatch is returned when a non-empty pattern list matches no test.
// The caller decides whether to abort or proceed.
var ErrNoMatch = errors.New("no tests were matched")

// Filter reduces a suite to the cases matching the dotted name
// patterns. A pattern matches a case when its components equal the
// leading components of the case's fully qualified name, truncated to
// the shorter of the two. An empty pattern list returns the suite
// unchanged. Patterns that matched nothing while others did are
// surfaced as a warning; an empty result yields ErrNoMatch.
func Filter(suite *harness.Suite, patterns []string) (*harness.Suite, error) {
	if len(patterns) == 0 {
		return suite, nil
	}

	unique := make([]string, 0, len(patterns))
	seen := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		if !seen[p] {
			seen[p] = true
			unique = append(unique, p)
		}
	}

	split := make([][]string, len(unique))
	for i, p := range unique {
		split[i] = strings.Split(p, ".")
	}

	filtered := harness.NewSuite()
	matched := make(map[string]bool, len(unique))
	added := map[string]bool{}

	for _, c := range suite.Leaves() {
		comps := c.Identity().Components()
		for i, pat := range split {
			n := len(comps)
			if len(pat) < n {
				n = len(pat)
			}
			if !equal(comps[:n], pat[:n]) {
				continue
			}
			matched[unique[i]] = true
			// a case matched by several patterns appears only once
			if id := c.Identity().String(); !added[id] {
				added[id] = true
				filtered.Add(c)
			}
		}
	}

	if filtered.Count() == 0 {
		logrus.Error("No tests were matched.")
		return nil, ErrNoMatch
	}

	if len(matched) != len(unique) {
		var unmatched []string
		for _, p := range unique {
			if !matched[p] {
				unmatched = append(unmatched, p)
			}
		}
		sort.Strings(unmatched)
		logrus.Warnf("The following selectors did not match any tests: %s",
			strings.Join(unmatched, ", "))
	}

	return filtered, nil
}

// FilterLocation discovers registered tests under the location prefix
// first, then filters them.
func FilterLocation(location string, patterns []string) (*harness.Suite, error) {
	return Filter(harness.Discover(location), patterns)
}

func equal(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
