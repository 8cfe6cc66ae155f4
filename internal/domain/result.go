package domain

// RunMeta contains metadata about a test run.
type RunMeta struct {
	TestsRun            int     `json:"tests_run"`
	Failures            int     `json:"failures"`
	Errors              int     `json:"errors"`
	Skipped             int     `json:"skipped"`
	ExpectedFailures    int     `json:"expected_failures"`
	UnexpectedSuccesses int     `json:"unexpected_successes"`
	Duration            string  `json:"duration"`
	DurationSeconds     float64 `json:"duration_seconds"`
	Timestamp           string  `json:"timestamp"`
}

// RunOutput is the complete persisted structure for one test run.
type RunOutput struct {
	Meta    RunMeta   `json:"meta"`
	Details []Failure `json:"details"`
}
