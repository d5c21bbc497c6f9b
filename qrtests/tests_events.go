package qrtests

import (
	"fmt"
	"net/http"

	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEventTypes = []string{
	servicedef.EventScan,
	servicedef.EventClicked,
	servicedef.EventPaid,
	servicedef.EventMinted,
}

func DoEventTests(t *apitest.T) {
	c := requireContext(t)
	r, _ := c.state.First()

	for _, eventType := range allEventTypes {
		eventType := eventType
		t.Run(eventType, func(t *apitest.T) {
			resp := call(t, "POST", qrPath(r.Slug, "event"), c.fixtures.Event(eventType))
			requireStatus(t, resp, http.StatusOK)

			var result servicedef.SuccessResponse
			requireDecode(t, resp, &result)
			require.True(t, result.Success, "event should be accepted")
			c.state.RecordEvent(r.Slug)
		})
	}
}

func DoAnalyticsTests(t *apitest.T) {
	c := requireContext(t)
	r, _ := c.state.First()

	path := qrPath(r.Slug, "analytics")
	resp := call(t, "GET", path, nil)
	if resp.StatusCode == http.StatusNotFound {
		// The public slug lookup can claim every path under /qr/{slug}, and it only serves
		// active codes.
		t.SkipWithReason(fmt.Sprintf("analytics are not served at %s (got %s)", path, resp))
	}
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	if !body.Get("stats").Exists() && !body.Get("events").Exists() {
		t.SkipWithReason(fmt.Sprintf("%s was answered by the QR code lookup, not analytics", path))
	}
	requireKeys(t, body, "analytics response", "qr", "events", "stats.totalScans", "stats.recentEvents")
	requireItemKeys(t, body.Get("events"), "events", "event_type")

	var result servicedef.AnalyticsResponse
	requireDecode(t, resp, &result)
	if result.QR != nil {
		assert.Equal(t, r.ID, result.QR.ID, "analytics are for a different QR code")
	}
	assert.GreaterOrEqual(t, result.Stats.RecentEvents, c.state.EventCount(r.Slug),
		"stats.recentEvents is lower than the number of events this run recorded")
	assert.GreaterOrEqual(t, result.Stats.TotalScans, r.ScanCount,
		"stats.totalScans is lower than the scan count already observed")
	assert.Equal(t, len(result.Events), result.Stats.RecentEvents, "stats.recentEvents should count the events list")

	seen := make(map[string]bool)
	for _, e := range result.Events {
		seen[e.EventType] = true
	}
	for _, eventType := range allEventTypes {
		assert.True(t, seen[eventType], "event type %q is missing from analytics", eventType)
	}
}
