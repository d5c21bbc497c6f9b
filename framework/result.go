package framework

import (
	"fmt"
	"strings"
	"time"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Duration   time.Duration
}

// Failed is true if the test recorded any error, regardless of whether it was later skipped.
func (r TestResult) Failed() bool {
	return len(r.Errors) != 0
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Add records the outcome of one test. Failed tests are also added to Failures.
func (r *Results) Add(result TestResult, failed bool) {
	r.Tests = append(r.Tests, result)
	if failed {
		r.Failures = append(r.Failures, result)
	}
}

// Verdict is the outcome of one top-level scenario.
type Verdict struct {
	Name    string
	Passed  bool
	Skipped bool
}

// Verdicts returns the outcome of every top-level test, in the order they finished.
// Subtests are not listed separately; a failing subtest makes its parent fail.
func (r Results) Verdicts() []Verdict {
	failed := make(map[string]bool)
	for _, f := range r.Failures {
		failed[f.TestID.String()] = true
	}
	var ret []Verdict
	for _, t := range r.Tests {
		if len(t.TestID.Path) != 1 {
			continue
		}
		name := t.TestID.String()
		isFailed := failed[name]
		ret = append(ret, Verdict{
			Name:    name,
			Passed:  !isFailed && !t.Skipped,
			Skipped: t.Skipped && !isFailed,
		})
	}
	return ret
}

// FailedNames returns the names of top-level tests that failed, in run order.
func (r Results) FailedNames() []string {
	var ret []string
	for _, v := range r.Verdicts() {
		if !v.Passed && !v.Skipped {
			ret = append(ret, v.Name)
		}
	}
	return ret
}

type Summary struct {
	Passed  int
	Failed  int
	Skipped int
}

func (s Summary) Total() int {
	return s.Passed + s.Failed + s.Skipped
}

// Percentage is the share of all top-level tests that passed.
func (s Summary) Percentage() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Passed) * 100 / float64(s.Total())
}

func (r Results) Summary() Summary {
	var s Summary
	for _, v := range r.Verdicts() {
		switch {
		case v.Passed:
			s.Passed++
		case v.Skipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

// FaultCounts tallies the errors of every failed test by fault kind.
func (r Results) FaultCounts() map[FaultKind]int {
	ret := make(map[FaultKind]int)
	for _, f := range r.Failures {
		for _, err := range f.Errors {
			ret[KindOf(err)]++
		}
	}
	return ret
}

type TestID struct {
	Path []string
}

// Plus returns the ID of a subtest of this test.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	path = append(path, t.Path...)
	return TestID{Path: append(path, name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}
