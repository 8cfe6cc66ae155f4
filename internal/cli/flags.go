package cli

import "gtr/internal/config"

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

// ToConfigFlags converts CLI flags to config flags.
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Verbosity:    f.Verbosity,
		Descriptions: f.Descriptions,
		RerunLog:     f.RerunLog,
		CoverageDirs: f.CoverageDirs,
		CoverageHTML: f.CoverageHTML,
		CoverageSave: f.CoverageSave,
		NoCovReport:  f.NoCovReport,
		Failed:       f.Failed,
		Location:     f.Location,
		TestCases:    f.TestCases,
	}
}
