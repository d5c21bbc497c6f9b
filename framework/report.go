package framework

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
)

const summaryRule = "============================================================"

var (
	passColor = color.New(color.FgGreen, color.Bold)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// PrintResults writes the end-of-run summary: one row per top-level test, the overall pass
// rate, a tally of fault kinds, and the errors of every failed test.
func PrintResults(out io.Writer, results Results) {
	fmt.Fprintln(out, summaryRule)
	fmt.Fprintln(out, "TEST RESULTS SUMMARY")
	fmt.Fprintln(out, summaryRule)

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	skipReasons := make(map[string]string)
	for _, t := range results.Tests {
		if t.Skipped {
			skipReasons[t.TestID.String()] = t.SkipReason
		}
	}
	for _, v := range results.Verdicts() {
		switch {
		case v.Passed:
			fmt.Fprintf(w, "%s\t%s\n", v.Name, passColor.Sprint("PASS"))
		case v.Skipped:
			fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, skipColor.Sprint("SKIP"), skipReasons[v.Name])
		default:
			fmt.Fprintf(w, "%s\t%s\n", v.Name, failColor.Sprint("FAIL"))
		}
	}
	_ = w.Flush()

	s := results.Summary()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Overall: %d/%d tests passed (%.1f%%)", s.Passed, s.Total(), s.Percentage())
	if s.Skipped > 0 {
		fmt.Fprintf(out, ", %d skipped", s.Skipped)
	}
	fmt.Fprintln(out)

	if results.OK() {
		return
	}

	counts := results.FaultCounts()
	var tally []string
	for _, k := range allFaultKinds {
		if counts[k] > 0 {
			tally = append(tally, fmt.Sprintf("%s=%d", k, counts[k]))
		}
	}
	if len(tally) > 0 {
		fmt.Fprintf(out, "Faults: %s\n", strings.Join(tally, ", "))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Errors:")
	for _, f := range results.Failures {
		for _, err := range f.Errors {
			for i, line := range strings.Split(TestFailure{ID: f.TestID, Err: err}.Error(), "\n") {
				if i == 0 {
					fmt.Fprintf(out, "  %s\n", line)
				} else {
					fmt.Fprintf(out, "      %s\n", line)
				}
			}
		}
	}
}
