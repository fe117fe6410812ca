package snmp

import (
	"errors"
	"testing"

	"github.com/gosnmp/gosnmp"
	"github.com/sunilmamillapall1/pcycle/pkg/pdu"
)

func TestOutletStateOID(t *testing.T) {
	if got := outletStateOID(4); got != ".1.3.6.1.4.1.2.6.223.8.2.2.1.11.4" {
		t.Errorf("outletStateOID(4) = %q", got)
	}
}

func TestOpenRejectsUnsupportedScheme(t *testing.T) {
	_, err := Open("pdu1.mgmt", pdu.AuthUnsupported, "public")
	var unsupported *pdu.UnsupportedAuthSchemeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedAuthSchemeError, got %v", err)
	}
	if unsupported.Host != "pdu1.mgmt" {
		t.Errorf("expected host in error, got %+v", unsupported)
	}
}

func TestIntValue(t *testing.T) {
	packet := &gosnmp.SnmpPacket{
		Variables: []gosnmp.SnmpPDU{{
			Name:  oidOutletCount,
			Type:  gosnmp.Integer,
			Value: 8,
		}},
	}
	n, err := intValue(packet)
	if err != nil {
		t.Fatalf("intValue failed: %v", err)
	}
	if n != 8 {
		t.Errorf("intValue = %d, expected 8", n)
	}

	if _, err := intValue(nil); err == nil {
		t.Error("expected error for nil packet")
	}
	if _, err := intValue(&gosnmp.SnmpPacket{}); err == nil {
		t.Error("expected error for empty response")
	}

	missing := &gosnmp.SnmpPacket{
		Variables: []gosnmp.SnmpPDU{{Name: oidOutletCount, Type: gosnmp.NoSuchObject}},
	}
	if _, err := intValue(missing); err == nil {
		t.Error("expected error for NoSuchObject")
	}
}
