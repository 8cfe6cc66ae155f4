package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default run results file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".gtr"
	// DefaultCoverageFile is the default aggregate coverage data file
	DefaultCoverageFile = "coverage.json"
	// DefaultVerbosity is dot mode
	DefaultVerbosity = 1
)

// DefaultPathsToIgnore are the default directories skipped when
// collecting coverage sources.
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
	".gtr",
}
