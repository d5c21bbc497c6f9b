package framework

import (
	"errors"
	"fmt"
	"strings"
)

// FaultKind classifies why a test failed.
type FaultKind int

const (
	// FaultAssertion means a value was present but not what the test expected. It is the
	// kind assigned to any error that was not explicitly classified.
	FaultAssertion FaultKind = iota
	// FaultTransport means the request never got a response: connection refused, DNS failure,
	// connection reset, or cancellation of the run.
	FaultTransport
	// FaultTimeout means the request did not get a response within the configured timeout.
	FaultTimeout
	// FaultProtocol means the service responded with a status code outside the expected set.
	FaultProtocol
	// FaultSchema means the response body was not JSON or lacked a required key.
	FaultSchema
	// FaultPanic means the test code itself panicked.
	FaultPanic
)

var allFaultKinds = []FaultKind{FaultTransport, FaultTimeout, FaultProtocol, FaultSchema, FaultAssertion, FaultPanic}

func (k FaultKind) String() string {
	switch k {
	case FaultTransport:
		return "transport error"
	case FaultTimeout:
		return "timeout"
	case FaultProtocol:
		return "unexpected status"
	case FaultSchema:
		return "schema mismatch"
	case FaultPanic:
		return "unexpected panic"
	default:
		return "assertion failed"
	}
}

// Fault is an error annotated with its FaultKind.
type Fault struct {
	Kind FaultKind
	Err  error
}

func NewFault(kind FaultKind, format string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (f *Fault) Error() string {
	return f.Kind.String() + ": " + f.Err.Error()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// KindOf returns the kind of the first Fault in the error's chain, or FaultAssertion if
// there is none.
func KindOf(err error) FaultKind {
	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}
	return FaultAssertion
}

// reformatError condenses the multi-line output of testify assertions: the "Error Trace"
// block only points into our own helper code, so it is dropped, and label padding is collapsed.
func reformatError(err error) error {
	var lines []string
	inTrace := false
	for _, line := range strings.Split(err.Error(), "\n") {
		body := strings.TrimPrefix(line, "\t")
		if strings.TrimSpace(body) == "" {
			continue
		}
		if !strings.HasPrefix(body, " ") {
			inTrace = strings.HasPrefix(body, "Error Trace:")
		}
		if inTrace {
			continue
		}
		lines = append(lines, strings.Join(strings.Fields(body), " "))
	}
	if len(lines) == 0 {
		return err
	}
	return errors.New(strings.Join(lines, "\n"))
}

// AssertionFault converts the output of a failed assertion into a Fault.
func AssertionFault(err error) *Fault {
	return &Fault{Kind: FaultAssertion, Err: reformatError(err)}
}
