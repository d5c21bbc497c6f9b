package qrtests

import (
	"context"

	"github.com/novatok/qrhub-contract-tests/framework"
	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/framework/harness"
)

// Conditions that scenarios need, establish, or revoke.
const (
	condAuthenticated  = "authenticated"
	condFreshIdentity  = "fresh identity"
	condTrackedQRCode  = "tracked QR code"
	condActiveQRCode   = "active QR code"
	condEventsRecorded = "events recorded"
)

// SuiteConfig holds the parameters of the scenarios.
type SuiteConfig struct {
	// LoginEmail and LoginPassword identify an existing account that is not on the free plan.
	LoginEmail    string
	LoginPassword string

	// SignupPassword is the password for identities the run signs up.
	SignupPassword string

	// EmailDomain is the domain of generated signup addresses.
	EmailDomain string

	// PlanLimit is the number of QR codes the free plan allows.
	PlanLimit int

	// FakerSeed makes generated names and amounts repeatable.
	FakerSeed int64

	NFTID     string
	ListingID string

	// DebugOutput, if set, receives every debug line as it is logged.
	DebugOutput framework.Logger
}

// RunTestSuite runs every QR Hub scenario against the service behind the harness. The scenarios
// are ordered by their declared preconditions; declaration order below is kept wherever the
// preconditions allow it.
func RunTestSuite(
	ctx context.Context,
	h *harness.TestHarness,
	config SuiteConfig,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	c := newTestContext(ctx, h, config)
	state := c.state

	authenticated := apitest.Condition{Name: condAuthenticated, Check: state.IsAuthenticated}
	freshIdentity := apitest.Condition{Name: condFreshIdentity, Check: state.HasFreshIdentity}
	trackedQRCode := apitest.Condition{Name: condTrackedQRCode, Check: state.HasResources}
	activeQRCode := apitest.Condition{Name: condActiveQRCode, Check: state.HasActiveResource}
	eventsRecorded := apitest.Condition{Name: condEventsRecorded, Check: state.HasEvents}

	steps := []apitest.Step{
		{Name: "Status API", Action: DoStatusTests},
		{Name: "Plans API", Action: DoPlansTests},
		{
			Name:        "Auth Signup",
			Establishes: []string{condAuthenticated, condFreshIdentity},
			Action:      DoSignupTests,
		},
		{
			Name:   "User Plan API",
			Needs:  []apitest.Condition{freshIdentity},
			Action: DoUserPlanTests,
		},
		{
			Name:        "Auth Login",
			Establishes: []string{condAuthenticated},
			Revokes:     []string{condFreshIdentity},
			Action:      DoLoginTests,
		},
		{
			Name:   "Auth Session",
			Needs:  []apitest.Condition{authenticated},
			Action: DoSessionTests,
		},
		{
			Name:        "QR Create All Types",
			Needs:       []apitest.Condition{authenticated},
			Establishes: []string{condTrackedQRCode, condActiveQRCode},
			Action:      DoCreateAllTypesTests,
		},
		{
			Name:   "QR List",
			Needs:  []apitest.Condition{authenticated, trackedQRCode},
			Action: DoListTests,
		},
		{
			Name:   "QR Get by Slug",
			Needs:  []apitest.Condition{activeQRCode},
			Action: DoGetBySlugTests,
		},
		{
			Name:    "QR Update",
			Needs:   []apitest.Condition{authenticated, trackedQRCode},
			Revokes: []string{condActiveQRCode},
			Action:  DoUpdateTests,
		},
		{
			Name:        "Analytics Event",
			Needs:       []apitest.Condition{trackedQRCode},
			Establishes: []string{condEventsRecorded},
			Action:      DoEventTests,
		},
		{
			Name:   "QR Analytics",
			Needs:  []apitest.Condition{authenticated, eventsRecorded},
			Action: DoAnalyticsTests,
		},
		{Name: "NFT API", Action: DoNFTTests},
		{Name: "Marketplace API", Action: DoMarketplaceTests},
		{
			Name:    "QR Delete",
			Needs:   []apitest.Condition{authenticated, trackedQRCode},
			Revokes: []string{condTrackedQRCode, condActiveQRCode, condEventsRecorded},
			Action:  DoDeleteTests,
		},
		{Name: "Plan Limits Enforcement", Action: DoPlanLimitTests},
		{Name: "QR Validation", Action: DoValidationTests},
		{Name: "CORS Preflight", Action: DoCORSPreflightTests},
		{Name: "Stripe Checkout", Action: DoCheckoutTests},
		{
			Name:    "Auth Logout",
			Revokes: []string{condAuthenticated},
			Action:  DoLogoutTests,
		},
	}

	return apitest.Run(apitest.TestConfiguration{
		Filter:       filter,
		TestLogger:   testLogger,
		DebugTee:     config.DebugOutput,
		Capabilities: h.Capabilities(),
		Context:      c,
	}, func(t *apitest.T) {
		t.RunSteps(steps)
	})
}
