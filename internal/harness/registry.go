package harness

import (
	"sort"
	"strings"
	"sync"
)

// FailedTestPrefix is the dotted prefix the loader gives to synthetic
// cases standing in for modules whose setup failed. The rerun log
// strips it back down to the real module name. This is a compatibility
// shim tied to the loader's internal naming, not a general contract.
const FailedTestPrefix = "harness.loader.FailedTest."

const loaderModule = "harness.loader"

var (
	regMu   sync.Mutex
	modules = map[string]*Suite{}
)

// Register adds cases to the named module's suite. Test packages call
// it from their init functions. Cases without an explicit module take
// the module they are registered under.
func Register(module string, cases ...*Case) {
	regMu.Lock()
	defer regMu.Unlock()
	s, ok := modules[module]
	if !ok {
		s = NewSuite()
		modules[module] = s
	}
	for _, c := range cases {
		if c.Module == "" {
			c.Module = module
		}
		s.Add(c)
	}
}

// RegisterFailure files a synthetic always-erroring case for a module
// whose setup failed, so the failure surfaces through the normal run
// instead of being silently dropped.
func RegisterFailure(module string, err error) {
	Register(loaderModule, &Case{
		Module: loaderModule,
		Class:  "FailedTest",
		Method: module,
		Func: func(ctl *Control) {
			ctl.Errorf("failed to load %s: %v", module, err)
		},
	})
}

// Discover assembles a suite from every registered module whose dotted
// name matches the location prefix; an empty prefix selects everything.
// Modules are taken in sorted name order, so the same registry always
// yields the same suite.
func Discover(prefix string) *Suite {
	regMu.Lock()
	defer regMu.Unlock()
	names := make([]string, 0, len(modules))
	for name := range modules {
		names = append(names, name)
	}
	sort.Strings(names)

	root := NewSuite()
	for _, name := range names {
		if prefix != "" && name != prefix && !strings.HasPrefix(name, prefix+".") {
			continue
		}
		root.Add(modules[name])
	}
	return root
}
