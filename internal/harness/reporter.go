package harness

// Reporter receives the lifecycle hooks of a test run. The run loop
// calls them in a fixed order: StartRun, then per leaf case StartTest,
// exactly one outcome hook, StopTest, and finally StopRun. All calls
// happen synchronously on the goroutine driving the run; no hook may
// block beyond simple stream writes.
type Reporter interface {
	StartRun()
	StopRun()
	StartTest(c *Case)
	StopTest(c *Case)
	AddSuccess(c *Case)
	AddFailure(c *Case, err error)
	AddError(c *Case, err error)
	AddSkip(c *Case, reason string)
	AddExpectedFailure(c *Case, err error)
	AddUnexpectedSuccess(c *Case)
	AddSubTest(c *Case, sub *SubTest, err error)
}

// SubTest identifies one sub-test outcome within a parent case.
type SubTest struct {
	Parent *Case
	Name   string
}
