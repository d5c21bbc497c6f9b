// Package framework contains the low-level implementation of contract test infrastructure
// that is not specific to the QR Hub API. The base package contains shared types such as
// Logger, Results, and Fault; other components are in the subpackages harness and apitest.
//
// The general model is:
//
// 1. The test harness is a pure client of a remote HTTP/JSON service. It probes the
// service's status resource once at startup to learn which optional integrations are
// configured, and exposes those as capabilities.
//
// 2. There is a general notion of a test context which is similar to Go's testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results. A failure in one test never stops the run.
//
// 3. Tests are declared as steps with named preconditions, so that the order they run in
// is derived from the state they need rather than from their position in a list.
//
// The domain-specific code that knows what is being tested is responsible for providing
// the requests to send, the assertions to make about responses, and the shared state that
// is carried between steps.
package framework
