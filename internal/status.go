package pcycle

import (
	"github.com/sunilmamillapall1/pcycle/pkg/pdu"
	"github.com/sunilmamillapall1/pcycle/pkg/snmp"
)

// OutletStatus is one row of `pcycle status` output.
type OutletStatus struct {
	Host   string `json:"host"`
	Outlet int    `json:"outlet"`
	State  string `json:"state"`
}

// ReadOutletStates reports the current state of the requested outlets on
// one IBM PDU, or of every outlet the PDU reports when none are
// requested. Read-only; nothing is toggled.
func ReadOutletStates(open snmp.Opener, host string, auth pdu.AuthScheme, outlets []int) ([]OutletStatus, error) {
	if auth == pdu.AuthUnsupported {
		return nil, &pdu.UnsupportedAuthSchemeError{Host: host, Scheme: auth.String()}
	}
	sess, err := open(host, auth)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	count, err := sess.OutletCount()
	if err != nil {
		return nil, err
	}
	if len(outlets) == 0 {
		for i := 1; i <= count; i++ {
			outlets = append(outlets, i)
		}
	}

	statuses := make([]OutletStatus, 0, len(outlets))
	for _, outlet := range outlets {
		if outlet < 1 || outlet > count {
			return nil, &pdu.InvalidOutletError{Host: host, Index: outlet, Count: count}
		}
		state, err := sess.OutletState(outlet)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, OutletStatus{Host: host, Outlet: outlet, State: state.String()})
	}
	return statuses, nil
}
