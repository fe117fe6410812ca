// Package snmp implements the device-protocol client for IBM PDUs. The
// outlet count and per-outlet state objects live under the IBM
// enterprise branch; outlet-state OIDs take the outlet index as their
// final component. Only the ON(1)/OFF(0) encoding is ever read or
// written.
package snmp

import (
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
	"github.com/sunilmamillapall1/pcycle/pkg/pdu"
)

const (
	// ibmPduOutletCount, scalar.
	oidOutletCount = ".1.3.6.1.4.1.2.6.223.8.2.1.0"
	// ibmPduOutletState column; append ".<outlet>" to address one outlet.
	oidOutletState = ".1.3.6.1.4.1.2.6.223.8.2.2.1.11"

	defaultPort    = 161
	requestTimeout = 5 * time.Second
)

// Session is the capability set the orchestrator consumes. A session
// belongs to exactly one PDU and is used by a single control thread;
// sessions are never pooled or reused across PDUs.
type Session interface {
	OutletCount() (int, error)
	OutletState(outlet int) (pdu.OutletState, error)
	SetOutletState(outlet int, state pdu.OutletState) error
	Close() error
}

// Opener opens a session to one PDU host. The community string comes
// from whatever secret source the caller wired in; this package never
// reads configuration itself.
type Opener func(host string, scheme pdu.AuthScheme) (Session, error)

type session struct {
	host string
	conn *gosnmp.GoSNMP
}

// Open connects to a PDU using one of the two supported community
// schemes. Requesting any other scheme fails before a socket is opened.
func Open(host string, scheme pdu.AuthScheme, community string) (Session, error) {
	var version gosnmp.SnmpVersion
	switch scheme {
	case pdu.AuthCommunityV1:
		version = gosnmp.Version1
	case pdu.AuthCommunityV2c:
		version = gosnmp.Version2c
	default:
		return nil, &pdu.UnsupportedAuthSchemeError{Host: host, Scheme: scheme.String()}
	}

	conn := &gosnmp.GoSNMP{
		Target:    host,
		Port:      defaultPort,
		Community: community,
		Version:   version,
		Timeout:   requestTimeout,
		Retries:   1,
	}
	if err := conn.Connect(); err != nil {
		return nil, &pdu.ProtocolError{Host: host, Op: "open session", Err: err}
	}
	return &session{host: host, conn: conn}, nil
}

func (s *session) OutletCount() (int, error) {
	result, err := s.conn.Get([]string{oidOutletCount})
	if err != nil {
		return 0, &pdu.ProtocolError{Host: s.host, Op: "get outlet count", Err: err}
	}
	n, err := intValue(result)
	if err != nil {
		return 0, &pdu.ProtocolError{Host: s.host, Op: "get outlet count", Err: err}
	}
	return n, nil
}

func (s *session) OutletState(outlet int) (pdu.OutletState, error) {
	result, err := s.conn.Get([]string{outletStateOID(outlet)})
	if err != nil {
		return 0, &pdu.ProtocolError{Host: s.host, Op: fmt.Sprintf("get state of outlet %d", outlet), Err: err}
	}
	v, err := intValue(result)
	if err != nil {
		return 0, &pdu.ProtocolError{Host: s.host, Op: fmt.Sprintf("get state of outlet %d", outlet), Err: err}
	}
	switch state := pdu.OutletState(v); state {
	case pdu.StateOff, pdu.StateOn:
		return state, nil
	default:
		return 0, &pdu.ProtocolError{
			Host: s.host,
			Op:   fmt.Sprintf("get state of outlet %d", outlet),
			Err:  fmt.Errorf("value %d outside the on/off domain", v),
		}
	}
}

func (s *session) SetOutletState(outlet int, state pdu.OutletState) error {
	variable := gosnmp.SnmpPDU{
		Name:  outletStateOID(outlet),
		Type:  gosnmp.Integer,
		Value: int(state),
	}
	result, err := s.conn.Set([]gosnmp.SnmpPDU{variable})
	if err != nil {
		return &pdu.ProtocolError{Host: s.host, Op: fmt.Sprintf("set outlet %d %s", outlet, state), Err: err}
	}
	if result.Error != gosnmp.NoError {
		return &pdu.ProtocolError{
			Host: s.host,
			Op:   fmt.Sprintf("set outlet %d %s", outlet, state),
			Err:  fmt.Errorf("PDU returned error status %d", result.Error),
		}
	}
	return nil
}

func (s *session) Close() error {
	return s.conn.Conn.Close()
}

func outletStateOID(outlet int) string {
	return fmt.Sprintf("%s.%d", oidOutletState, outlet)
}

// intValue pulls the single integer variable out of a GET response.
func intValue(result *gosnmp.SnmpPacket) (int, error) {
	if result == nil || len(result.Variables) == 0 {
		return 0, fmt.Errorf("empty response")
	}
	v := result.Variables[0]
	switch v.Type {
	case gosnmp.Integer, gosnmp.Gauge32, gosnmp.Counter32:
		return int(gosnmp.ToBigInt(v.Value).Int64()), nil
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return 0, fmt.Errorf("no such object %s", v.Name)
	default:
		return 0, fmt.Errorf("unexpected response type %v for %s", v.Type, v.Name)
	}
}
