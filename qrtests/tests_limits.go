package qrtests

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DoPlanLimitTests checks the free plan's QR code cap. It uses an identity of its own, since
// the shared identities may already own QR codes or be on a paid plan, and it deletes what it
// created when it is done.
func DoPlanLimitTests(t *apitest.T) {
	c := requireContext(t)
	limit := c.config.PlanLimit

	id := signUp(t, c.fixtures.NewEmail())
	restore := c.state.swapSession(id)
	t.Defer(restore)

	for i := 1; i <= limit; i++ {
		created := createQRCode(t, c.fixtures.NumberedFiatQRCode(i))
		c.state.Track(created)
		t.Defer(func() {
			deleteQuietly(t, id.Token, created.ID)
			c.state.Untrack(created.ID)
		})
		t.Debug("QR code %d/%d created", i, limit)
	}

	resp := call(t, "POST", "/qr", c.fixtures.NumberedFiatQRCode(limit+1))
	if resp.StatusCode == http.StatusCreated {
		if extra := requireJSON(t, resp).Get("qr.id").String(); extra != "" {
			t.Defer(func() { deleteQuietly(t, id.Token, extra) })
		}
	}
	requireStatus(t, resp, http.StatusForbidden)
	body := requireJSON(t, resp)
	requireKeys(t, body, "limit error response", "error", "limitReached")

	var result servicedef.LimitError
	requireDecode(t, resp, &result)
	require.True(t, result.LimitReached, "limitReached should be true")

	message := strings.ToLower(result.Error)
	for _, want := range []string{"maximum", strconv.Itoa(limit), "free plan"} {
		assert.Contains(t, message, want, "error message %q should mention %q", result.Error, want)
	}
}
