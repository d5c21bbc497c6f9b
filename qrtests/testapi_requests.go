package qrtests

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/novatok/qrhub-contract-tests/framework"
	"github.com/novatok/qrhub-contract-tests/framework/apitest"
	"github.com/novatok/qrhub-contract-tests/framework/harness"

	"github.com/tidwall/gjson"
)

// call sends a request as the current identity. If no response is received the test fails
// immediately with the transport or timeout fault from the client.
func call(t *apitest.T, method, path string, body interface{}) *harness.Response {
	c := requireContext(t)
	return callAs(t, c.state.Token(), method, path, body)
}

// callAs sends a request with an explicit bearer token; "" sends no Authorization header.
func callAs(t *apitest.T, token, method, path string, body interface{}) *harness.Response {
	c := requireContext(t)
	resp, err := c.harness.Client().Do(c.ctx, harness.Request{
		Method: method,
		Path:   path,
		Body:   body,
		Token:  token,
	}, t.DebugLogger())
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// requireStatus fails the test immediately unless the response has one of the expected status
// codes.
func requireStatus(t *apitest.T, resp *harness.Response, expected ...int) {
	for _, s := range expected {
		if resp.StatusCode == s {
			return
		}
	}
	var want []string
	for _, s := range expected {
		want = append(want, fmt.Sprintf("%d", s))
	}
	t.Fatal(framework.NewFault(framework.FaultProtocol, "%s %s: expected status %s, got %s",
		resp.Request.Method, resp.Request.Path, strings.Join(want, " or "), resp))
}

// requireJSON fails the test immediately if the body is not JSON, and otherwise returns it
// for path queries.
func requireJSON(t *apitest.T, resp *harness.Response) gjson.Result {
	parsed, err := resp.JSON()
	if err != nil {
		t.Fatal(err)
	}
	return parsed
}

// requireKeys fails the test immediately if any of the paths is absent from the value.
func requireKeys(t *apitest.T, value gjson.Result, what string, paths ...string) {
	var missing []string
	for _, p := range paths {
		if !value.Get(p).Exists() {
			missing = append(missing, p)
		}
	}
	if len(missing) != 0 {
		t.Fatal(framework.NewFault(framework.FaultSchema, "%s is missing required keys %s: %s",
			what, strings.Join(missing, ", "), truncateJSON(value)))
	}
}

// requireItemKeys checks that the value is an array and that every element has all of the paths.
func requireItemKeys(t *apitest.T, value gjson.Result, what string, paths ...string) {
	if !value.IsArray() {
		t.Fatal(framework.NewFault(framework.FaultSchema, "%s is not an array: %s", what, truncateJSON(value)))
	}
	for i, item := range value.Array() {
		requireKeys(t, item, fmt.Sprintf("%s[%d]", what, i), paths...)
	}
}

// requireDecode unmarshals the body into target, failing the test immediately on a shape
// mismatch.
func requireDecode(t *apitest.T, resp *harness.Response, target interface{}) {
	if err := resp.Decode(target); err != nil {
		t.Fatal(err)
	}
}

func truncateJSON(value gjson.Result) string {
	const maxLength = 300
	if len(value.Raw) > maxLength {
		return value.Raw[:maxLength] + "..."
	}
	return value.Raw
}

func qrPath(idOrSlug string, rest ...string) string {
	return "/qr/" + strings.Join(append([]string{idOrSlug}, rest...), "/")
}

// expectPreflightHeaders checks that a CORS preflight response allows what a browser client of
// the API needs.
func expectPreflightHeaders(t *apitest.T, header http.Header, methods []string, headers []string) {
	allowMethods := splitHeaderList(header.Get("Access-Control-Allow-Methods"))
	allowHeaders := splitHeaderList(header.Get("Access-Control-Allow-Headers"))
	for _, m := range methods {
		if !allowMethods[strings.ToUpper(m)] {
			t.Errorf("Access-Control-Allow-Methods %q does not include %s",
				header.Get("Access-Control-Allow-Methods"), m)
		}
	}
	for _, h := range headers {
		if !allowHeaders[strings.ToUpper(h)] {
			t.Errorf("Access-Control-Allow-Headers %q does not include %s",
				header.Get("Access-Control-Allow-Headers"), h)
		}
	}
}

func splitHeaderList(value string) map[string]bool {
	ret := make(map[string]bool)
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			ret[strings.ToUpper(s)] = true
		}
	}
	return ret
}
