package pdu

import (
	"errors"
	"testing"
)

func TestParseVendor(t *testing.T) {
	for _, s := range []string{"ibm", "IBM", "Ibm", " ibm "} {
		v, err := ParseVendor(s)
		if err != nil {
			t.Fatalf("ParseVendor(%q) failed: %v", s, err)
		}
		if v != VendorIBM {
			t.Errorf("ParseVendor(%q) = %v, expected ibm", s, v)
		}
	}

	v, err := ParseVendor("eaton")
	if err != nil {
		t.Fatalf("ParseVendor(eaton) failed: %v", err)
	}
	if v != VendorEaton {
		t.Errorf("ParseVendor(eaton) = %v, expected eaton", v)
	}

	_, err = ParseVendor("acme")
	var uv *UnsupportedVendorError
	if !errors.As(err, &uv) {
		t.Fatalf("expected UnsupportedVendorError for acme, got %v", err)
	}
	if uv.Name != "acme" {
		t.Errorf("expected vendor name in error, got %q", uv.Name)
	}
}

func TestParseAuthScheme(t *testing.T) {
	cases := map[string]AuthScheme{
		"v1":  AuthCommunityV1,
		"1":   AuthCommunityV1,
		"v2c": AuthCommunityV2c,
		"V2":  AuthCommunityV2c,
		"v3":  AuthUnsupported,
		"usm": AuthUnsupported,
		"":    AuthUnsupported,
	}
	for in, expected := range cases {
		if got := ParseAuthScheme(in); got != expected {
			t.Errorf("ParseAuthScheme(%q) = %v, expected %v", in, got, expected)
		}
	}
}

func TestOutletStateString(t *testing.T) {
	if StateOff.String() != "off" || StateOn.String() != "on" {
		t.Errorf("unexpected state strings: %q, %q", StateOff, StateOn)
	}
	if int(StateOff) != 0 || int(StateOn) != 1 {
		t.Errorf("on-wire encoding changed: off=%d on=%d", StateOff, StateOn)
	}
}

func TestEntryOutletList(t *testing.T) {
	entry := Entry{Outlets: []int{3, 4, 12}}
	if got := entry.OutletList(); got != "3,4,12" {
		t.Errorf("OutletList() = %q, expected 3,4,12", got)
	}
}
