// Package pdu defines the data model shared by the power-cycle
// orchestrator and the protocol client: PDU identity, vendor family,
// authentication scheme, and the two-valued outlet state domain.
package pdu

import (
	"fmt"
	"strings"
)

// Vendor is the closed set of PDU families the tool knows how to handle.
// Unknown vendor strings are rejected when the request is constructed,
// before any session is opened.
type Vendor int

const (
	// VendorIBM PDUs are driven directly by the orchestrator's state
	// machine over SNMP.
	VendorIBM Vendor = iota
	// VendorEaton PDUs are handed off to an external power-cycle script.
	VendorEaton
)

func (v Vendor) String() string {
	switch v {
	case VendorIBM:
		return "ibm"
	case VendorEaton:
		return "eaton"
	}
	return fmt.Sprintf("vendor(%d)", int(v))
}

// ParseVendor maps a vendor string from the CLI to a Vendor. Matching is
// case-insensitive.
func ParseVendor(s string) (Vendor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ibm":
		return VendorIBM, nil
	case "eaton":
		return VendorEaton, nil
	}
	return 0, &UnsupportedVendorError{Name: s}
}

// AuthScheme selects the SNMP security model used to talk to a PDU. Only
// the community-string models are supported; AuthUnsupported exists so
// that a v3 request fails fast instead of being partially implemented.
type AuthScheme int

const (
	AuthCommunityV1 AuthScheme = iota
	AuthCommunityV2c
	AuthUnsupported
)

func (a AuthScheme) String() string {
	switch a {
	case AuthCommunityV1:
		return "v1"
	case AuthCommunityV2c:
		return "v2c"
	}
	return "unsupported"
}

// ParseAuthScheme never fails; any string outside the two community
// models parses to AuthUnsupported and the request is rejected later,
// before a session is opened.
func ParseAuthScheme(s string) AuthScheme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "v1", "1":
		return AuthCommunityV1
	case "v2c", "v2", "2c", "2":
		return AuthCommunityV2c
	}
	return AuthUnsupported
}

// OutletState is the two-valued power state of a single outlet. The
// integer values are the on-wire SNMP encoding and must not change.
type OutletState int

const (
	StateOff OutletState = 0
	StateOn  OutletState = 1
)

func (s OutletState) String() string {
	switch s {
	case StateOff:
		return "off"
	case StateOn:
		return "on"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// PDU identifies one power-distribution unit in a cycle request.
type PDU struct {
	Host   string
	Vendor Vendor
	Auth   AuthScheme
}

// Entry pairs a PDU with the outlet indices to cycle on it, in the order
// they should be acted upon. Outlet indices are 1-based; validity against
// the PDU's live outlet count is checked by the orchestrator immediately
// before each outlet is touched.
type Entry struct {
	PDU     PDU
	Outlets []int
}

// OutletList renders the entry's outlet indices as the comma-joined form
// used for logging and for the delegated-vendor script argument.
func (e Entry) OutletList() string {
	parts := make([]string, 0, len(e.Outlets))
	for _, n := range e.Outlets {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, ",")
}
