package domain

// Failure represents one failed or errored test case from a run.
type Failure struct {
	Test     string `json:"test"` // fully qualified dotted name
	Module   string `json:"module"`
	Kind     string `json:"kind"` // "failure" or "error"
	Message  string `json:"message"`
	Resolved bool   `json:"resolved,omitempty"` // track if the failure is marked as resolved
}
