package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"gtr/internal/config"
	"gtr/internal/domain"
	"gtr/internal/harness"
)

// Formatter formats and displays run results and test listings.
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter.
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintRunStats displays the statistics of a persisted run.
func (f *Formatter) PrintRunStats(output *domain.RunOutput) {
	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                     Test Run Statistics                       ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	rows := []struct {
		label string
		value string
		paint func(format string, a ...interface{})
	}{
		{"Tests Run", fmt.Sprintf("%d", meta.TestsRun), color.White},
		{"Failures", fmt.Sprintf("%d", meta.Failures), color.Red},
		{"Errors", fmt.Sprintf("%d", meta.Errors), color.Red},
		{"Skipped", fmt.Sprintf("%d", meta.Skipped), color.Yellow},
		{"Expected Failures", fmt.Sprintf("%d", meta.ExpectedFailures), color.White},
		{"Unexpected Successes", fmt.Sprintf("%d", meta.UnexpectedSuccesses), color.Red},
		{"Duration", fmt.Sprintf("%.2fs", meta.DurationSeconds), color.White},
		{"Timestamp", meta.Timestamp, color.White},
	}

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")
	for i, row := range rows {
		fmt.Printf("│ %-31s │ ", row.label)
		row.paint("%-27s │", row.value)
		fmt.Println()
		if i < len(rows)-1 {
			fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
		}
	}
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.Failures == 0 && meta.Errors == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d failure(s) and %d error(s)", meta.Failures, meta.Errors)
		fmt.Println()
		f.printFailureTree(output.Details)
	}
}

// printFailureTree groups failed tests by module and prints them as a
// tree.
func (f *Formatter) printFailureTree(failures []domain.Failure) {
	if len(failures) == 0 {
		return
	}

	byModule := make(map[string][]domain.Failure)
	for _, failure := range failures {
		byModule[failure.Module] = append(byModule[failure.Module], failure)
	}

	modules := make([]string, 0, len(byModule))
	for module := range byModule {
		modules = append(modules, module)
	}
	sort.Strings(modules)

	for i, module := range modules {
		isLastModule := i == len(modules)-1
		if isLastModule {
			color.Cyan("└── %s", module)
		} else {
			color.Cyan("├── %s", module)
		}

		for j, failure := range byModule[module] {
			isLastCase := j == len(byModule[module])-1
			var prefix string
			switch {
			case isLastModule && isLastCase:
				prefix = "    └── "
			case isLastModule:
				prefix = "    ├── "
			case isLastCase:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}
			name := strings.TrimPrefix(failure.Test, module+".")
			fmt.Printf("%s%s\n", prefix, color.RedString(name))
		}
	}
}

// PrintTestList prints the registered tests as a tree, one root node
// per module. With showMethods false only module names and their case
// counts are printed.
func (f *Formatter) PrintTestList(suite *harness.Suite, showMethods bool) error {
	leaves := suite.Leaves()

	type class struct {
		name    string
		methods []string
	}
	type module struct {
		name    string
		classes []*class
	}

	var modules []*module
	byModule := map[string]*module{}
	byClass := map[string]*class{}

	for _, c := range leaves {
		id := c.Identity()
		m, ok := byModule[id.Module]
		if !ok {
			m = &module{name: id.Module}
			byModule[id.Module] = m
			modules = append(modules, m)
		}
		classKey := id.Module + "." + id.Class
		cl, ok := byClass[classKey]
		if !ok {
			cl = &class{name: id.Class}
			byClass[classKey] = cl
			m.classes = append(m.classes, cl)
		}
		cl.methods = append(cl.methods, id.Method)
	}

	color.Green("Found %d test(s) in %d module(s):\n", len(leaves), len(modules))

	for i, m := range modules {
		isLastModule := i == len(modules)-1
		connector := "├── "
		if isLastModule {
			connector = "└── "
		}

		if !showMethods {
			count := 0
			for _, cl := range m.classes {
				count += len(cl.methods)
			}
			color.Cyan("%s%s (%d)", connector, m.name, count)
			continue
		}

		color.Cyan("%s%s", connector, m.name)
		modulePrefix := "│   "
		if isLastModule {
			modulePrefix = "    "
		}

		for j, cl := range m.classes {
			isLastClass := j == len(m.classes)-1
			classConnector := "├── "
			if isLastClass {
				classConnector = "└── "
			}
			color.Yellow("%s%s%s", modulePrefix, classConnector, cl.name)

			classPrefix := modulePrefix + "│   "
			if isLastClass {
				classPrefix = modulePrefix + "    "
			}
			for k, method := range cl.methods {
				methodConnector := "├── "
				if k == len(cl.methods)-1 {
					methodConnector = "└── "
				}
				fmt.Printf("%s%s%s\n", classPrefix, methodConnector, method)
			}
		}

		if !isLastModule {
			fmt.Println()
		}
	}

	return nil
}
