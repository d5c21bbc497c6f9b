// Package apitest contains the test context type T, which scenarios use to make assertions
// and run subtests, and the step scheduler that orders top-level scenarios by the
// conditions they need, establish, and revoke.
//
// This package is domain-independent: it knows nothing about the API under test.
package apitest
