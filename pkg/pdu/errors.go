package pdu

import (
	"errors"
	"fmt"
	"time"
)

// Every failure the tool can produce is one of the typed errors below.
// They carry enough context (PDU host, outlet index, timeout value) to
// diagnose a failed run from the log alone, and each one is fatal: the
// orchestrator returns the first error it sees and the process exits
// non-zero. ExitCode() maps an error back to the process exit status.

// Exit statuses for the top-level CLI boundary.
const (
	ExitOK                = 0
	ExitFailure           = 1
	ExitUnsupportedVendor = 6
)

// ShapeMismatchError reports a request whose host, vendor, and outlet
// lists do not have equal lengths. Raised before any protocol work.
type ShapeMismatchError struct {
	Hosts   int
	Vendors int
	Outlets int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("mismatched request shape: %d PDU hosts, %d vendors, %d outlet lists",
		e.Hosts, e.Vendors, e.Outlets)
}

// UnsupportedVendorError reports a vendor string outside the closed
// {ibm, eaton} set. It maps to its own exit status so callers can tell
// "we do not speak to this hardware" apart from an actual failure.
type UnsupportedVendorError struct {
	Name string
}

func (e *UnsupportedVendorError) Error() string {
	return fmt.Sprintf("unsupported PDU vendor %q (supported: ibm, eaton)", e.Name)
}

// UnsupportedAuthSchemeError reports a request for an SNMP security
// model other than the v1/v2c community schemes.
type UnsupportedAuthSchemeError struct {
	Host   string
	Scheme string
}

func (e *UnsupportedAuthSchemeError) Error() string {
	return fmt.Sprintf("unsupported auth scheme %q for PDU %s (supported: v1, v2c)", e.Scheme, e.Host)
}

// InvalidOutletError reports an outlet index outside the PDU's live
// outlet range [1, Count].
type InvalidOutletError struct {
	Host  string
	Index int
	Count int
}

func (e *InvalidOutletError) Error() string {
	return fmt.Sprintf("invalid outlet number %d for PDU %s (PDU has %d outlets)", e.Index, e.Host, e.Count)
}

// ProtocolError wraps any transport or session level SNMP failure. It is
// never retried; the bounded polling loops only tolerate "state not yet
// changed" responses, not transport errors.
type ProtocolError struct {
	Host string
	Op   string
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on PDU %s during %s: %v", e.Host, e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// PowerOffTimeoutError reports an outlet that never read OFF within the
// power-off budget.
type PowerOffTimeoutError struct {
	Host    string
	Outlet  int
	Timeout time.Duration
}

func (e *PowerOffTimeoutError) Error() string {
	return fmt.Sprintf("outlet %d on PDU %s did not power off within %s", e.Outlet, e.Host, e.Timeout)
}

// PowerOnTimeoutError reports an outlet that never read ON within the
// power-on budget.
type PowerOnTimeoutError struct {
	Host    string
	Outlet  int
	Timeout time.Duration
}

func (e *PowerOnTimeoutError) Error() string {
	return fmt.Sprintf("outlet %d on PDU %s did not power on within %s", e.Outlet, e.Host, e.Timeout)
}

// StillReachableError reports a target system that still answered an
// echo after every outlet on a PDU reported OFF, meaning the power-off
// did not actually remove power.
type StillReachableError struct {
	System string
	Host   string
}

func (e *StillReachableError) Error() string {
	return fmt.Sprintf("system %s is still reachable after powering off all outlets on PDU %s", e.System, e.Host)
}

// UnreachableError reports a target system that never answered an echo
// within the ping budget after power-on.
type UnreachableError struct {
	System  string
	Timeout time.Duration
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("system %s not reachable within %s after power on", e.System, e.Timeout)
}

// ExitCode maps an error returned by the orchestrator (or request
// construction) to the process exit status. This is the single place
// where error kinds become exit codes.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var uv *UnsupportedVendorError
	if errors.As(err, &uv) {
		return ExitUnsupportedVendor
	}
	return ExitFailure
}
