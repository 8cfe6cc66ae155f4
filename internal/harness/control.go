package harness

import "fmt"

// Control is handed to test bodies to record outcomes and run
// sub-tests.
type Control struct {
	testCase *Case
	reporter Reporter

	failed  bool
	failure error
}

type skipSignal struct {
	reason string
}

type abortSignal struct{}

// Failf records an assertion failure and lets the body continue.
func (c *Control) Failf(format string, args ...interface{}) {
	c.failed = true
	c.failure = fmt.Errorf(format, args...)
}

// FailNow records an assertion failure and stops the body immediately.
func (c *Control) FailNow(format string, args ...interface{}) {
	c.Failf(format, args...)
	panic(abortSignal{})
}

// Errorf stops the body with an error outcome, the analogue of an
// unexpected runtime fault rather than a failed assertion.
func (c *Control) Errorf(format string, args ...interface{}) {
	panic(fmt.Errorf(format, args...))
}

// Skip stops the body and records a skip outcome with the given reason.
func (c *Control) Skip(reason string) {
	panic(skipSignal{reason: reason})
}

// Run executes fn as a named sub-test of the current case. The outcome
// is reported through AddSubTest and does not replace the parent's own
// outcome. Returns whether the sub-test passed.
func (c *Control) Run(name string, fn func(*Control)) bool {
	sub := &Control{testCase: c.testCase, reporter: c.reporter}
	out := invoke(sub, fn)
	var err error
	if !out.skipped {
		err = out.err
	}
	c.reporter.AddSubTest(c.testCase, &SubTest{Parent: c.testCase, Name: name}, err)
	return err == nil
}

type outcome struct {
	err     error
	isError bool
	skipped bool
	reason  string
}

// invoke runs a test body, converting panics into skip, failure or
// error outcomes. A body that used Failf without aborting still counts
// as failed.
func invoke(ctl *Control, fn func(*Control)) (out outcome) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case skipSignal:
				out.skipped = true
				out.reason = v.reason
			case abortSignal:
				// failure already recorded on the control
			case error:
				out.err = v
				out.isError = true
			default:
				out.err = fmt.Errorf("panic: %v", v)
				out.isError = true
			}
		}
		if !out.isError && !out.skipped && ctl.failed {
			out.err = ctl.failure
		}
	}()
	if fn != nil {
		fn(ctl)
	}
	return
}
