package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/novatok/qrhub-contract-tests/framework"

	"github.com/fatih/color"
)

var (
	startedColor = color.New(color.FgCyan)
	passedColor  = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed, color.Bold)
	skippedColor = color.New(color.FgYellow)
)

// ConsoleTestLogger reports test progress as it happens. Debug output captured during a test is
// written after the test finishes, if the corresponding option is set.
type ConsoleTestLogger struct {
	Out                  io.Writer
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleTestLogger) TestStarted(id framework.TestID) {
	fmt.Fprintf(c.Out, "%s %s\n", startedColor.Sprint("[STARTED]"), id)
}

func (c *ConsoleTestLogger) TestError(id framework.TestID, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(c.Out, "  %s\n", line)
	}
}

func (c *ConsoleTestLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	if failed {
		fmt.Fprintf(c.Out, "%s %s\n", failedColor.Sprint("[FAILED]"), id)
	} else {
		fmt.Fprintf(c.Out, "%s %s\n", passedColor.Sprint("[PASSED]"), id)
	}
	if len(debugOutput) > 0 &&
		((failed && c.DebugOutputOnFailure) || (!failed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(c.Out, "    DEBUG ")
	}
}

func (c *ConsoleTestLogger) TestSkipped(id framework.TestID, reason string) {
	if reason == "" {
		fmt.Fprintf(c.Out, "%s %s\n", skippedColor.Sprint("[SKIPPED]"), id)
	} else {
		fmt.Fprintf(c.Out, "%s %s (%s)\n", skippedColor.Sprint("[SKIPPED]"), id, reason)
	}
}
