package harness

import "gtr/internal/domain"

// Case is a single runnable test.
type Case struct {
	Module string
	Class  string
	Method string

	// Desc is an optional one-line description of the case.
	Desc string

	// ExpectFailure marks a test whose failure is the expected outcome.
	// Such a test reports an unexpected success when it passes.
	ExpectFailure bool

	Func func(*Control)
}

// Identity returns the dotted (module, class, method) triple naming
// this case.
func (c *Case) Identity() domain.Identity {
	return domain.Identity{Module: c.Module, Class: c.Class, Method: c.Method}
}

// Description returns the optional short description of the case.
func (c *Case) Description() string {
	return c.Desc
}

func (c *Case) count() int {
	return 1
}
