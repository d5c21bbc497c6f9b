package qrtests

import (
	"net/http"

	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/framework/harness"

	"github.com/stretchr/testify/assert"
)

func DoStatusTests(t *apitest.T) {
	resp := call(t, "GET", "/status", nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "status response", "supabase", "stripe", "web3", "demo")

	assert.True(t, body.Get("supabase.configured").IsBool(), "supabase.configured should be a boolean")
	assert.True(t, body.Get("stripe.configured").IsBool(), "stripe.configured should be a boolean")
	assert.True(t, body.Get("demo").IsBool(), "demo should be a boolean")

	// Checkout expectations are derived from the startup status query.
	assert.Equal(t, t.Capabilities().Has(harness.CapabilityStripe), body.Get("stripe.configured").Bool(),
		"stripe.configured changed since the startup status query")
}

func DoCORSPreflightTests(t *apitest.T) {
	resp := call(t, "OPTIONS", "/qr", nil)
	requireStatus(t, resp, http.StatusOK, http.StatusNoContent)
	expectPreflightHeaders(t, resp.Header,
		[]string{"GET", "POST", "PUT", "DELETE"},
		[]string{"Content-Type", "Authorization"})
}
