package qrtests

import (
	"net/http"

	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/servicedef"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func DoPlansTests(t *apitest.T) {
	c := requireContext(t)

	resp := call(t, "GET", "/plans", nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "plans response", "plans")
	requireItemKeys(t, body.Get("plans"), "plans", "id", "name", "price", "features", "limits")

	var plans servicedef.PlansResponse
	requireDecode(t, resp, &plans)
	require.Len(t, plans.Plans, 3, "expected exactly three plans")

	var ids []string
	for _, p := range plans.Plans {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{servicedef.PlanFree, servicedef.PlanPro, servicedef.PlanBusiness}, ids)

	var free servicedef.Plan
	for _, p := range plans.Plans {
		if p.ID == servicedef.PlanFree {
			free = p
		}
	}
	require.Equal(t, servicedef.PlanFree, free.ID, "no plan has id %q", servicedef.PlanFree)
	assert.Equal(t, c.config.PlanLimit, free.Limits.MaxQRCodes.IntValue(), "free plan maxQrCodes")
	assert.True(t, free.Limits.MaxQRCodes.IsDefined(), "free plan must have a QR code limit")
}

func DoUserPlanTests(t *apitest.T) {
	c := requireContext(t)
	session, _ := c.state.Session()

	resp := call(t, "GET", "/user/plan", nil)
	requireStatus(t, resp, http.StatusOK)
	body := requireJSON(t, resp)
	requireKeys(t, body, "user plan response",
		"plan.userId", "plan.plan", "plan.effectivePlan", "plan.limits", "plan.isActive")

	var result servicedef.UserPlanResponse
	requireDecode(t, resp, &result)
	plan := result.Plan
	assert.Equal(t, servicedef.PlanFree, plan.Plan, "a new identity should be on the free plan")
	assert.Equal(t, servicedef.PlanFree, plan.EffectivePlan)
	assert.Equal(t, c.config.PlanLimit, plan.Limits.MaxQRCodes.IntValue(), "limits.maxQrCodes")
	assert.True(t, plan.IsActive, "the free plan is always active")
	if session.UserID != "" {
		assert.Equal(t, session.UserID, plan.UserID, "plan belongs to a different user")
	}
}
