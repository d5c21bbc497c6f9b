package qrtests

import (
	"net/http"
	"strings"

	"github.com/novatok/qrhub-contract-tests/framework"
	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/framework/harness"
	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func DoCreateAllTypesTests(t *apitest.T) {
	c := requireContext(t)
	for _, qrType := range servicedef.AllQRTypes {
		qrType := qrType
		t.Run(qrType, func(t *apitest.T) {
			created := createQRCode(t, c.fixtures.QRCode(qrType))
			c.state.Track(created)
		})
	}
}

// createQRCode creates a QR code as the current identity and checks the response, but does not
// track it.
func createQRCode(t *apitest.T, params servicedef.CreateQRParams) TrackedResource {
	resp := call(t, "POST", "/qr", params)
	requireStatus(t, resp, http.StatusCreated)
	body := requireJSON(t, resp)
	requireKeys(t, body, "create response", "qr.id", "qr.slug", "qrUrl")

	var result servicedef.QRCreated
	requireDecode(t, resp, &result)
	qr := result.QR
	require.NotEmpty(t, qr.ID, "qr.id")
	require.NotEmpty(t, qr.Slug, "qr.slug")
	assert.Equal(t, params.Type, qr.Type, "qr.type should echo the request")
	assert.Equal(t, params.Name, qr.Name, "qr.name should echo the request")
	assert.True(t, qr.IsActive, "a new QR code should be active")
	assert.True(t, strings.HasSuffix(result.QRURL, "/q/"+qr.Slug),
		"qrUrl %q should end with /q/%s", result.QRURL, qr.Slug)

	return TrackedResource{
		ID:        qr.ID,
		Slug:      qr.Slug,
		Name:      qr.Name,
		Type:      qr.Type,
		Active:    qr.IsActive,
		ScanCount: qr.ScanCount,
	}
}

func DoListTests(t *apitest.T) {
	c := requireContext(t)
	tracked := c.state.Resources()

	resp := call(t, "GET", "/qr", nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "list response", "qrCodes")
	requireItemKeys(t, body.Get("qrCodes"), "qrCodes", "id", "slug", "name", "type")

	var list servicedef.QRList
	requireDecode(t, resp, &list)
	assert.GreaterOrEqual(t, len(list.QRCodes), len(tracked), "list has fewer QR codes than this run created")

	listed := make(map[string]bool)
	for _, qr := range list.QRCodes {
		listed[qr.ID] = true
	}
	for _, r := range tracked {
		assert.True(t, listed[r.ID], "QR code %s (%s) is missing from the list", r.ID, r.Type)
	}
}

func DoGetBySlugTests(t *apitest.T) {
	c := requireContext(t)
	r, _ := c.state.First()

	resp := call(t, "GET", qrPath(r.Slug), nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "get response", "qr.id", "qr.slug", "qr.scan_count")

	var result servicedef.QRResponse
	requireDecode(t, resp, &result)
	assert.Equal(t, r.Slug, result.QR.Slug)
	assert.Equal(t, r.ID, result.QR.ID)
	assert.GreaterOrEqual(t, result.QR.ScanCount, r.ScanCount, "scan_count must never decrease")

	if result.QR.ScanCount > r.ScanCount {
		r.ScanCount = result.QR.ScanCount
		c.state.Update(r)
	}
}

func DoUpdateTests(t *apitest.T) {
	c := requireContext(t)
	r, _ := c.state.First()

	name := r.Name + " (updated)"
	inactive := false
	params := servicedef.UpdateQRParams{Name: &name, IsActive: &inactive}

	var results []servicedef.QRCode
	for i := 0; i < 2; i++ {
		resp := call(t, "PUT", qrPath(r.ID), params)
		requireStatus(t, resp, http.StatusOK)
		body := requireJSON(t, resp)
		requireKeys(t, body, "update response", "qr.id", "qr.name", "qr.is_active")

		var result servicedef.QRResponse
		requireDecode(t, resp, &result)
		assert.Equal(t, r.ID, result.QR.ID)
		assert.Equal(t, name, result.QR.Name, "name was not updated")
		assert.False(t, result.QR.IsActive, "is_active was not updated")
		results = append(results, *result.QR)

		r.Name = result.QR.Name
		r.Active = result.QR.IsActive
		c.state.Update(r)
	}

	assert.Equal(t, results[0].Name, results[1].Name, "applying the same update twice changed the name")
	assert.Equal(t, results[0].IsActive, results[1].IsActive, "applying the same update twice changed is_active")
	assert.Equal(t, results[0].Type, results[1].Type)
	assert.True(t, results[0].DestinationConfig.Equal(results[1].DestinationConfig),
		"applying the same update twice changed destination_config")
}

func DoDeleteTests(t *apitest.T) {
	c := requireContext(t)
	r, _ := c.state.Last()

	resp := call(t, "DELETE", qrPath(r.ID), nil)
	requireStatus(t, resp, http.StatusOK)
	var result servicedef.SuccessResponse
	requireDecode(t, resp, &result)
	require.True(t, result.Success, "delete should report success")
	c.state.Untrack(r.ID)

	again := call(t, "GET", qrPath(r.Slug), nil)
	requireStatus(t, again, http.StatusNotFound)
}

// deleteQuietly removes a QR code as the given identity, logging rather than failing on error.
func deleteQuietly(t *apitest.T, token, id string) {
	c := requireContext(t)
	resp, err := c.harness.Client().Do(c.ctx, harness.Request{
		Method: "DELETE",
		Path:   qrPath(id),
		Token:  token,
	}, t.DebugLogger())
	if err != nil {
		t.Debug("could not delete QR code %s: %s", id, err)
		return
	}
	if resp.StatusCode != http.StatusOK {
		t.Debug("could not delete QR code %s: %s", id, resp)
	}
}

func DoValidationTests(t *apitest.T) {
	t.Run("name and type are required", func(t *apitest.T) {
		expectRejectedCreate(t, map[string]interface{}{})
	})

	t.Run("fiat requires productName", func(t *apitest.T) {
		expectRejectedCreate(t, servicedef.CreateQRParams{
			Name: "Incomplete Fiat Payment",
			Type: servicedef.QRTypeFiat,
			DestinationConfig: ldvalue.ObjectBuild().
				Set("amount", ldvalue.Float64(10)).
				Set("currency", ldvalue.String("usd")).
				Build(),
		})
	})

	t.Run("crypto requires walletAddress", func(t *apitest.T) {
		expectRejectedCreate(t, servicedef.CreateQRParams{
			Name: "Incomplete Crypto Payment",
			Type: servicedef.QRTypeCrypto,
			DestinationConfig: ldvalue.ObjectBuild().
				Set("currency", ldvalue.String("ETH")).
				Build(),
		})
	})
}

func expectRejectedCreate(t *apitest.T, params interface{}) {
	resp := call(t, "POST", "/qr", params)
	if resp.StatusCode == http.StatusCreated {
		// Don't leave the accidental QR code behind.
		if id := requireJSON(t, resp).Get("qr.id").String(); id != "" {
			deleteQuietly(t, requireContext(t).state.Token(), id)
		}
	}
	requireStatus(t, resp, http.StatusBadRequest)
	body := requireJSON(t, resp)
	requireKeys(t, body, "validation error response", "error")
	if body.Get("error").String() == "" {
		t.Error(framework.NewFault(framework.FaultSchema, "validation error response has an empty error message"))
	}
}
