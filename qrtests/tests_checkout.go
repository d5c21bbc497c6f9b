package qrtests

import (
	"net/http"

	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/framework/harness"
	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoCheckoutTests(t *apitest.T) {
	c := requireContext(t)
	slug := ""
	if r, ok := c.state.First(); ok {
		slug = r.Slug
	}
	params := c.fixtures.Checkout(slug)

	if t.Capabilities().Has(harness.CapabilityStripe) {
		t.Run("creates session", func(t *apitest.T) {
			resp := call(t, "POST", "/stripe/checkout", params)
			requireStatus(t, resp, http.StatusOK)
			requireKeys(t, requireJSON(t, resp), "checkout response", "sessionId", "url")

			var result servicedef.CheckoutResponse
			requireDecode(t, resp, &result)
			assert.NotEmpty(t, result.SessionID, "sessionId")
			assert.NotEmpty(t, result.URL, "url")
		})
		return
	}

	t.Run("reports unconfigured", func(t *apitest.T) {
		resp := call(t, "POST", "/stripe/checkout", params)
		requireStatus(t, resp, http.StatusBadRequest)
		requireKeys(t, requireJSON(t, resp), "checkout error response", "error", "configured")

		var result servicedef.CheckoutResponse
		requireDecode(t, resp, &result)
		assert.True(t, result.Configured.Equal(ldvalue.Bool(false)), "configured should be false, was %s",
			result.Configured.JSONString())
		assert.NotEmpty(t, result.Error)
	})
}
