package pdu

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != ExitOK {
		t.Errorf("ExitCode(nil) = %d, expected %d", got, ExitOK)
	}
	if got := ExitCode(&UnsupportedVendorError{Name: "acme"}); got != ExitUnsupportedVendor {
		t.Errorf("unsupported vendor must use its own exit code, got %d", got)
	}
	// wrapped vendor errors still map to the distinct code
	wrapped := fmt.Errorf("building request: %w", &UnsupportedVendorError{Name: "acme"})
	if got := ExitCode(wrapped); got != ExitUnsupportedVendor {
		t.Errorf("wrapped unsupported vendor error mapped to %d", got)
	}

	others := []error{
		&ShapeMismatchError{Hosts: 2, Vendors: 1, Outlets: 2},
		&UnsupportedAuthSchemeError{Host: "pdu1", Scheme: "v3"},
		&InvalidOutletError{Host: "pdu1", Index: 9, Count: 8},
		&ProtocolError{Host: "pdu1", Op: "get outlet count", Err: fmt.Errorf("timeout")},
		&PowerOffTimeoutError{Host: "pdu1", Outlet: 3, Timeout: 40 * time.Second},
		&PowerOnTimeoutError{Host: "pdu1", Outlet: 3, Timeout: 40 * time.Second},
		&StillReachableError{System: "bmc42", Host: "pdu1"},
		&UnreachableError{System: "bmc42", Timeout: 300 * time.Second},
	}
	for _, err := range others {
		if got := ExitCode(err); got != ExitFailure {
			t.Errorf("ExitCode(%T) = %d, expected %d", err, got, ExitFailure)
		}
	}
}

// Every failure must be diagnosable from its message alone.
func TestErrorContext(t *testing.T) {
	cases := []struct {
		err     error
		expects []string
	}{
		{&InvalidOutletError{Host: "pdu1.mgmt", Index: 9, Count: 8}, []string{"9", "pdu1.mgmt", "8"}},
		{&PowerOffTimeoutError{Host: "pdu1.mgmt", Outlet: 3, Timeout: 40 * time.Second}, []string{"3", "pdu1.mgmt", "40s"}},
		{&PowerOnTimeoutError{Host: "pdu1.mgmt", Outlet: 4, Timeout: 40 * time.Second}, []string{"4", "pdu1.mgmt", "40s"}},
		{&UnreachableError{System: "bmc42.mgmt", Timeout: 5 * time.Minute}, []string{"bmc42.mgmt", "5m0s"}},
		{&StillReachableError{System: "bmc42.mgmt", Host: "pdu1.mgmt"}, []string{"bmc42.mgmt", "pdu1.mgmt"}},
		{&ShapeMismatchError{Hosts: 2, Vendors: 1, Outlets: 2}, []string{"2 PDU hosts", "1 vendors"}},
	}
	for _, c := range cases {
		msg := c.err.Error()
		for _, want := range c.expects {
			if !strings.Contains(msg, want) {
				t.Errorf("%T message %q missing %q", c.err, msg, want)
			}
		}
	}
}
