package qrtests

import (
	"context"

	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/framework/harness"

	"github.com/brianvoe/gofakeit/v6"
)

// QRTestContext is the domain-specific context that every scenario can reach through
// requireContext.
type QRTestContext struct {
	ctx      context.Context
	harness  *harness.TestHarness
	config   SuiteConfig
	state    *RunState
	fixtures *Fixtures
}

func requireContext(t *apitest.T) QRTestContext {
	if c, ok := t.Context().(QRTestContext); ok {
		return c
	}
	panic("QRTestContext was not included in the global test configuration!" +
		" This is a basic mistake in the initialization logic.")
}

func newTestContext(ctx context.Context, h *harness.TestHarness, config SuiteConfig) QRTestContext {
	return QRTestContext{
		ctx:      ctx,
		harness:  h,
		config:   config,
		state:    NewRunState(),
		fixtures: NewFixtures(gofakeit.New(config.FakerSeed), config.EmailDomain),
	}
}
