package apitest

import (
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/novatok/qrhub-contract-tests/framework"
)

// TestConfiguration contains the global parameters for a test run.
type TestConfiguration struct {
	// Filter determines which tests should be run. If nil, all tests are run.
	Filter framework.Filter

	// TestLogger receives test start/finish/error notifications. If nil, nothing is logged.
	TestLogger framework.TestLogger

	// DebugTee, if set, receives every debug message as it is logged instead of only
	// through the TestLogger at the end of each test.
	DebugTee framework.Logger

	// Capabilities is the set of optional integrations the service under test has configured.
	Capabilities framework.Capabilities

	// Context is an optional value of any type that domain-specific test code can retrieve
	// with T.Context().
	Context interface{}
}

type environment struct {
	config  TestConfiguration
	results framework.Results
}

// T represents a test or subtest in a contract test run.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is
// outside of the Go test runner. In particular, a failure or panic in one test is caught and
// recorded, and the run moves on to the next test.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if
// it were a *testing.T.
type T struct {
	env         *environment
	id          framework.TestID
	debugLogger framework.CapturingLogger
	failed      bool
	skipped     bool
	skipReason  string
	errors      []error
	cleanups    []func()
}

// Run starts a test run. The action function is the root of the test tree; it is expected to
// call T.Run or T.RunSteps for each top-level test. The returned Results list every test that
// was run or skipped.
func Run(config TestConfiguration, action func(*T)) framework.Results {
	if config.TestLogger == nil {
		config.TestLogger = framework.NullTestLogger()
	}
	env := &environment{config: config}
	t := &T{env: env}
	t.run(action)
	return env.results
}

func (t *T) run(action func(*T)) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			t.recordPanic(r)
		}
		t.runCleanups()
		if len(t.id.Path) == 0 && len(t.errors) == 0 {
			return // the root of the tree is only recorded if it failed on its own
		}
		result := framework.TestResult{
			TestID:   t.id,
			Errors:   t.errors,
			Skipped:  t.skipped && !t.failed,
			Duration: time.Since(start),
		}
		if result.Skipped {
			result.SkipReason = t.skipReason
		}
		t.env.results.Add(result, t.failed)
	}()

	action(t)
}

func (t *T) recordPanic(r interface{}) {
	if t.skipped && r == t {
		return
	}
	t.failed = true
	var addError error
	if _, ok := r.(*T); ok {
		if len(t.errors) == 0 {
			addError = errors.New("test failed with no failure message")
		}
	} else {
		addError = framework.NewFault(framework.FaultPanic, "%+v\n%s", r, string(debug.Stack()))
	}
	if addError != nil {
		t.errors = append(t.errors, addError)
		t.env.config.TestLogger.TestError(t.id, addError)
	}
}

func (t *T) runCleanups() {
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil && r != t {
					t.Debug("cleanup panicked: %v", r)
				}
			}()
			t.cleanups[i]()
		}()
	}
	t.cleanups = nil
}

// ID returns the unique identifier of this test.
func (t *T) ID() framework.TestID {
	return t.id
}

// Run runs a subtest. This is equivalent to the Run method of testing.T: if the subtest
// fails, this test is also marked as failed, but continues running.
func (t *T) Run(name string, action func(*T)) {
	id := t.id.Plus(name)
	logger := t.env.config.TestLogger

	logger.TestStarted(id)
	if t.env.config.Filter != nil && !t.env.config.Filter(id) {
		const reason = "excluded by filter parameters"
		logger.TestSkipped(id, reason)
		t.env.results.Add(framework.TestResult{TestID: id, Skipped: true, SkipReason: reason}, false)
		return
	}

	c := &T{
		id:  id,
		env: t.env,
	}
	if tee := t.env.config.DebugTee; tee != nil {
		c.debugLogger.Tee = framework.PrefixedLogger(tee, id.String()+" << ")
	}
	c.run(action)

	if c.failed {
		t.failed = true
		logger.TestFinished(id, true, c.debugLogger.Output())
	} else if c.skipped {
		logger.TestSkipped(id, c.skipReason)
	} else {
		logger.TestFinished(id, false, c.debugLogger.Output())
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.Error(framework.AssertionFault(fmt.Errorf(format, args...)))
}

// Error logs a test failure with an error that has already been classified, such as a
// framework.Fault returned by the harness. It does not cause an immediate exit.
func (t *T) Error(err error) {
	t.failed = true
	t.errors = append(t.errors, err)
	t.env.config.TestLogger.TestError(t.id, err)
}

// Fatal logs a test failure and immediately exits the test.
func (t *T) Fatal(err error) {
	t.Error(err)
	t.FailNow()
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.failed = true
	panic(t)
}

// Failed is true if this test or any of its subtests has failed so far.
func (t *T) Failed() bool {
	return t.failed
}

// Skip causes the test to immediately exit and be marked as skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(t)
}

// SkipWithReason is the same as Skip, but provides an explanation.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Defer schedules a function to be called when this test ends, whether it passed, failed, or
// was skipped. Deferred functions run in last-in-first-out order.
func (t *T) Defer(cleanup func()) {
	t.cleanups = append(t.cleanups, cleanup)
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(message string, args ...interface{}) {
	t.debugLogger.Printf(message, args...)
}

// DebugLogger returns a Logger that writes to this test's debug output.
func (t *T) DebugLogger() framework.Logger {
	return &t.debugLogger
}

// Capabilities returns the optional integrations the service under test has configured.
func (t *T) Capabilities() framework.Capabilities {
	return t.env.config.Capabilities
}

// Context returns the value that was provided in TestConfiguration.Context.
func (t *T) Context() interface{} {
	return t.env.config.Context
}
