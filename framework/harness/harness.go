package harness

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/novatok/qrhub-contract-tests/framework"
	"github.com/novatok/qrhub-contract-tests/servicedef"
)

// Capabilities that the status probe can report. Each one names an optional integration of the
// service under test.
const (
	CapabilitySupabase      = "supabase"
	CapabilityStripe        = "stripe"
	CapabilityDemo          = "demo"
	CapabilityWalletConnect = "walletconnect"
	CapabilityNovaToken     = "nova-token"
	CapabilityNFTContract   = "nft-contract"
)

// AllCapabilities lists every capability the status probe can report, for describing what a
// test run will not cover.
var AllCapabilities = []string{
	CapabilitySupabase,
	CapabilityStripe,
	CapabilityDemo,
	CapabilityWalletConnect,
	CapabilityNovaToken,
	CapabilityNFTContract,
}

const statusPath = "/status"
const statusRetryInterval = 250 * time.Millisecond

// Options configures NewTestHarness.
type Options struct {
	// BaseURL is the base of the API under test, such as "https://host/api".
	BaseURL string

	// RequestTimeout bounds each individual request.
	RequestTimeout time.Duration

	// StatusQueryTimeout bounds how long NewTestHarness keeps polling the status resource
	// before giving up on it.
	StatusQueryTimeout time.Duration

	UserAgent string

	// DebugLogger receives the request and response lines of the status probe.
	DebugLogger framework.Logger

	// StartupOutput receives progress messages while connecting.
	StartupOutput io.Writer
}

// TestHarness is the connection to the service under test.
type TestHarness struct {
	client       *Client
	status       *servicedef.StatusResponse
	capabilities framework.Capabilities
}

// NewTestHarness creates a TestHarness and queries the service's status resource to find out
// which optional integrations it has configured.
//
// An unreachable or malformed status resource is not an error: it is reported to StartupOutput
// and the harness starts with no capabilities, so that the tests themselves can record the
// problem. The only error is a base URL that cannot be used at all.
func NewTestHarness(ctx context.Context, opts Options) (*TestHarness, error) {
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", opts.BaseURL)
	}
	if opts.StartupOutput == nil {
		opts.StartupOutput = io.Discard
	}

	h := &TestHarness{
		client: NewClient(opts.BaseURL, opts.RequestTimeout, opts.UserAgent),
	}

	status, err := queryServiceStatus(ctx, h.client, opts.StatusQueryTimeout, opts.DebugLogger, opts.StartupOutput)
	if err != nil {
		fmt.Fprintf(opts.StartupOutput, "WARNING: status query failed (%s); continuing without capabilities\n", err)
		return h, nil
	}
	h.status = status
	h.capabilities = CapabilitiesOf(*status)
	return h, nil
}

func queryServiceStatus(
	ctx context.Context,
	client *Client,
	timeout time.Duration,
	debugLogger framework.Logger,
	output io.Writer,
) (*servicedef.StatusResponse, error) {
	fmt.Fprintf(output, "Connecting to service at %s", client.BaseURL())

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		status, body, err := tryStatusQuery(ctx, client, debugLogger)
		if err == nil {
			fmt.Fprintln(output)
			fmt.Fprintf(output, "Status query returned: %s\n", body)
			return status, nil
		}
		if ctx.Err() != nil || !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return nil, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		select {
		case <-ctx.Done():
		case <-time.After(statusRetryInterval):
		}
	}
}

// tryStatusQuery makes one status request. A non-200 status or an undecodable body is an error,
// which the caller retries until its deadline like a failed connection.
func tryStatusQuery(
	ctx context.Context,
	client *Client,
	debugLogger framework.Logger,
) (*servicedef.StatusResponse, string, error) {
	resp, err := client.Do(ctx, Request{Method: "GET", Path: statusPath}, debugLogger)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != 200 {
		return nil, "", framework.NewFault(framework.FaultProtocol, "status resource returned status code %d", resp.StatusCode)
	}
	var status servicedef.StatusResponse
	if err := resp.Decode(&status); err != nil {
		return nil, "", err
	}
	return &status, string(resp.Body), nil
}

// CapabilitiesOf derives the capability list from a status response.
func CapabilitiesOf(status servicedef.StatusResponse) framework.Capabilities {
	var ret framework.Capabilities
	add := func(enabled bool, name string) {
		if enabled {
			ret = append(ret, name)
		}
	}
	add(status.Supabase.Configured, CapabilitySupabase)
	add(status.Stripe.Configured, CapabilityStripe)
	add(status.Demo, CapabilityDemo)
	add(status.Web3.WalletConnectConfigured, CapabilityWalletConnect)
	add(status.Web3.NovaTokenConfigured, CapabilityNovaToken)
	add(status.Web3.NFTContractConfigured, CapabilityNFTContract)
	return ret
}

// Client returns the HTTP client for the API under test.
func (h *TestHarness) Client() *Client {
	return h.client
}

// Status returns the result of the startup status query, or nil if it failed.
func (h *TestHarness) Status() *servicedef.StatusResponse {
	return h.status
}

// Capabilities returns the optional integrations the service reported as configured.
func (h *TestHarness) Capabilities() framework.Capabilities {
	return h.capabilities
}
