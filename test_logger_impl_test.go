package main

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/novatok/qrhub-contract-tests/framework"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })
}

func TestConsoleTestLoggerLines(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf}
	id := framework.TestID{Path: []string{"QR Create All Types", "fiat"}}

	logger.TestStarted(id)
	logger.TestError(id, errors.New("expected status 201, got 500\nbody: {}"))
	logger.TestFinished(id, true, nil)
	logger.TestSkipped(framework.TestID{Path: []string{"QR List"}}, `precondition "tracked QR code" not met`)
	logger.TestSkipped(framework.TestID{Path: []string{"QR Get by Slug"}}, "")

	assert.Equal(t, `[STARTED] QR Create All Types/fiat
  expected status 201, got 500
  body: {}
[FAILED] QR Create All Types/fiat
[SKIPPED] QR List (precondition "tracked QR code" not met)
[SKIPPED] QR Get by Slug
`, buf.String())
}

func TestConsoleTestLoggerDebugOutput(t *testing.T) {
	withoutColor(t)
	when := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	output := framework.CapturedOutput{{Time: when, Message: ">> GET /status"}}
	id := framework.TestID{Path: []string{"Status API"}}

	var buf bytes.Buffer
	logger := &ConsoleTestLogger{Out: &buf, DebugOutputOnFailure: true}
	logger.TestFinished(id, false, output)
	assert.Equal(t, "[PASSED] Status API\n", buf.String())

	buf.Reset()
	logger.TestFinished(id, true, output)
	assert.Equal(t, "[FAILED] Status API\n    DEBUG [2026-01-02 03:04:05.000] >> GET /status\n", buf.String())

	buf.Reset()
	logger.DebugOutputOnSuccess = true
	logger.TestFinished(id, false, output)
	assert.Contains(t, buf.String(), "DEBUG [2026-01-02 03:04:05.000] >> GET /status")
}
