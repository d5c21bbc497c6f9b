package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/novatok/qrhub-contract-tests/framework"

	"github.com/tidwall/gjson"
)

const maxLoggedBodyLength = 2000

// Client sends JSON requests to the API under test. It is safe for concurrent use, although
// the test runner only has one request in flight at a time.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Request describes one call to the API. Path is relative to the API base URL. If Body is
// non-nil it is encoded as JSON; a []byte or json.RawMessage body is sent as-is.
type Request struct {
	Method string
	Path   string
	Body   interface{}
	Token  string
	Header http.Header
}

// Response is a fully read response from the API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Request    Request
}

// NewClient creates a Client for the API at baseURL. Each request is bounded by timeout, in
// addition to any deadline on the context passed to Do.
func NewClient(baseURL string, timeout time.Duration, userAgent string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API base URL that request paths are relative to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends the request and reads the whole response. Any response, whatever its status, is
// returned with a nil error. If no response was received the error is a *framework.Fault of
// kind FaultTimeout or FaultTransport.
func (c *Client) Do(ctx context.Context, r Request, logger framework.Logger) (*Response, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}

	var body io.Reader
	var bodyData []byte
	if r.Body != nil {
		switch b := r.Body.(type) {
		case []byte:
			bodyData = b
		case json.RawMessage:
			bodyData = b
		default:
			data, err := json.Marshal(r.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to encode request body: %w", err)
			}
			bodyData = data
		}
		body = bytes.NewReader(bodyData)
	}

	url := c.baseURL + r.Path
	req, err := http.NewRequestWithContext(ctx, r.Method, url, body)
	if err != nil {
		return nil, framework.NewFault(framework.FaultTransport, "invalid request %s %s: %w", r.Method, url, err)
	}
	for k, vv := range r.Header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if bodyData != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	if bodyData != nil {
		logger.Printf(">> %s %s %s", r.Method, url, truncate(bodyData))
	} else {
		logger.Printf(">> %s %s", r.Method, url)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		fault := classifyError(err, r, time.Since(start))
		logger.Printf("<< %s", fault)
		return nil, fault
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		fault := classifyError(err, r, time.Since(start))
		logger.Printf("<< %s", fault)
		return nil, fault
	}

	logger.Printf("<< %d (%s) %s", resp.StatusCode, time.Since(start).Round(time.Millisecond), truncate(data))
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Request:    r,
	}, nil
}

func classifyError(err error, r Request, elapsed time.Duration) *framework.Fault {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return framework.NewFault(framework.FaultTimeout, "%s %s got no response after %s: %w",
			r.Method, r.Path, elapsed.Round(time.Millisecond), err)
	}
	return framework.NewFault(framework.FaultTransport, "%s %s failed: %w", r.Method, r.Path, err)
}

func truncate(data []byte) string {
	if len(data) > maxLoggedBodyLength {
		return string(data[:maxLoggedBodyLength]) + "..."
	}
	return string(data)
}

// JSON returns the parsed body for path queries. If the body is not valid JSON, the error is a
// *framework.Fault of kind FaultSchema.
func (r *Response) JSON() (gjson.Result, error) {
	if !gjson.ValidBytes(r.Body) {
		return gjson.Result{}, framework.NewFault(framework.FaultSchema,
			"%s %s returned a body that is not JSON: %s", r.Request.Method, r.Request.Path, truncate(r.Body))
	}
	return gjson.ParseBytes(r.Body), nil
}

// Decode unmarshals the body into target. If that fails, the error is a *framework.Fault of
// kind FaultSchema.
func (r *Response) Decode(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return framework.NewFault(framework.FaultSchema,
			"%s %s returned a body that does not match the expected shape: %w (body: %s)",
			r.Request.Method, r.Request.Path, err, truncate(r.Body))
	}
	return nil
}

func (r *Response) String() string {
	return fmt.Sprintf("%d %s", r.StatusCode, truncate(r.Body))
}
