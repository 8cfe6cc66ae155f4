package harness

// Run drives every leaf case of the suite through the reporter's
// lifecycle hooks. Execution is fully synchronous on the calling
// goroutine; once started the run proceeds to completion.
func Run(suite *Suite, rep Reporter) {
	rep.StartRun()
	for _, c := range suite.Leaves() {
		runCase(c, rep)
	}
	rep.StopRun()
}

// runCase reports exactly one outcome hook between StartTest and
// StopTest. StopTest is always reached, whatever the body did.
func runCase(c *Case, rep Reporter) {
	rep.StartTest(c)
	out := invoke(&Control{testCase: c, reporter: rep}, c.Func)
	switch {
	case out.skipped:
		rep.AddSkip(c, out.reason)
	case out.err != nil && c.ExpectFailure:
		rep.AddExpectedFailure(c, out.err)
	case out.err != nil && out.isError:
		rep.AddError(c, out.err)
	case out.err != nil:
		rep.AddFailure(c, out.err)
	case c.ExpectFailure:
		rep.AddUnexpectedSuccess(c)
	default:
		rep.AddSuccess(c)
	}
	rep.StopTest(c)
}
