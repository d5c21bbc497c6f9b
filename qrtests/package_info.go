// Package qrtests contains the QR Hub API scenarios and their supporting API.
//
// Scenarios share a RunState that records the current identity and the QR codes the run has
// created. Each scenario declares which conditions of that state it needs, establishes, or
// revokes, and the framework orders them accordingly.
//
// Infrastructure that is not specific to QR Hub, such as the HTTP client and the test context,
// is in the lower-level framework packages.
package qrtests
