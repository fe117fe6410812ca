package pcycle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sunilmamillapall1/pcycle/pkg/pdu"
	"github.com/sunilmamillapall1/pcycle/pkg/poll"
	"github.com/sunilmamillapall1/pcycle/pkg/probe"
	"github.com/sunilmamillapall1/pcycle/pkg/snmp"
)

// Poll intervals and the settle pause are fixed; only the timeout
// budgets are caller-configurable.
const (
	outletPollInterval = 5 * time.Second
	pingPollInterval   = 2 * time.Second
	powerOffGrace      = 3 * time.Second
)

// cycleState tracks where in the per-PDU sequence the orchestrator is,
// mostly so failures log with the phase they happened in.
type cycleState int

const (
	stateValidating cycleState = iota
	statePoweringOff
	stateVerifyingOffline
	statePoweringOn
	stateVerifyingOnline
	stateDone
	stateFailed
)

func (s cycleState) String() string {
	switch s {
	case stateValidating:
		return "validating"
	case statePoweringOff:
		return "powering-off"
	case stateVerifyingOffline:
		return "verifying-offline"
	case statePoweringOn:
		return "powering-on"
	case stateVerifyingOnline:
		return "verifying-online"
	case stateDone:
		return "done"
	}
	return "failed"
}

// CycleParams is the immutable request the orchestrator consumes. It is
// built once from CLI input in cmd/cycle.go and passed down; nothing in
// this package reads process-wide configuration.
type CycleParams struct {
	System          string
	Entries         []pdu.Entry
	PowerOffTimeout time.Duration
	PowerOnTimeout  time.Duration
	PingTimeout     time.Duration
	DelegateScript  string
}

// Orchestrator drives the power-cycle state machine. Its collaborator
// fields exist so tests can swap in fakes; NewOrchestrator wires the
// real SNMP, ICMP, and exec implementations.
type Orchestrator struct {
	OpenSession snmp.Opener
	Probe       probe.Func
	Delegate    func(script, host, outlets string) error

	sleep func(time.Duration)
}

func NewOrchestrator(open snmp.Opener) *Orchestrator {
	return &Orchestrator{
		OpenSession: open,
		Probe:       probe.Ping,
		Delegate:    runDelegateScript,
		sleep:       time.Sleep,
	}
}

// BuildEntries constructs the per-PDU request entries from the three
// parallel CLI lists. The lists must have equal lengths, every vendor
// string must parse, and every outlet token must be a positive integer;
// any violation rejects the whole request before a single protocol call
// is made.
func BuildEntries(hosts, vendors, outletLists []string, auth pdu.AuthScheme) ([]pdu.Entry, error) {
	if len(hosts) != len(vendors) || len(hosts) != len(outletLists) {
		return nil, &pdu.ShapeMismatchError{
			Hosts:   len(hosts),
			Vendors: len(vendors),
			Outlets: len(outletLists),
		}
	}
	entries := make([]pdu.Entry, 0, len(hosts))
	for i, host := range hosts {
		vendor, err := pdu.ParseVendor(vendors[i])
		if err != nil {
			return nil, err
		}
		outlets, err := parseOutletList(outletLists[i])
		if err != nil {
			return nil, fmt.Errorf("bad outlet list for PDU %s: %w", host, err)
		}
		entries = append(entries, pdu.Entry{
			PDU:     pdu.PDU{Host: host, Vendor: vendor, Auth: auth},
			Outlets: outlets,
		})
	}
	return entries, nil
}

func parseOutletList(list string) ([]int, error) {
	var outlets []int
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("outlet number %q is not a positive integer", tok)
		}
		outlets = append(outlets, n)
	}
	if len(outlets) == 0 {
		return nil, fmt.Errorf("no outlet numbers given")
	}
	return outlets, nil
}

// PowerCycle runs the full request: every PDU entry in order, each one
// to completion before the next is touched. The first failure anywhere
// aborts the remaining work; outlets already toggled are left as-is.
//
// Known sequencing quirk, kept on purpose: a system fed by redundant
// PDUs has its reachability verified once per PDU, so the offline check
// for the first PDU can trip while a second PDU still supplies power.
func (o *Orchestrator) PowerCycle(params *CycleParams) error {
	for _, entry := range params.Entries {
		var err error
		switch entry.PDU.Vendor {
		case pdu.VendorIBM:
			err = o.cycleOne(params, entry)
		case pdu.VendorEaton:
			log.Info().Msgf("delegating power cycle of PDU %s outlets [%s] to %s",
				entry.PDU.Host, entry.OutletList(), params.DelegateScript)
			err = o.Delegate(params.DelegateScript, entry.PDU.Host, entry.OutletList())
		default:
			err = &pdu.UnsupportedVendorError{Name: entry.PDU.Vendor.String()}
		}
		if err != nil {
			log.Error().Err(err).Msgf("power cycle failed on PDU %s", entry.PDU.Host)
			return err
		}
		log.Info().Msgf("power cycle complete for PDU %s", entry.PDU.Host)
	}
	return nil
}

// cycleOne runs the native state machine against a single PDU:
// validate -> power off -> verify offline -> power on -> verify online.
// Within the PDU every outlet is confirmed OFF before any outlet is
// turned back ON.
func (o *Orchestrator) cycleOne(params *CycleParams, entry pdu.Entry) error {
	state := stateValidating
	log.Info().Msgf("cycling PDU %s outlets [%s] for system %s", entry.PDU.Host, entry.OutletList(), params.System)

	if entry.PDU.Auth == pdu.AuthUnsupported {
		return &pdu.UnsupportedAuthSchemeError{Host: entry.PDU.Host, Scheme: entry.PDU.Auth.String()}
	}
	sess, err := o.OpenSession(entry.PDU.Host, entry.PDU.Auth)
	if err != nil {
		return err
	}
	defer sess.Close()

	state = statePoweringOff
	for _, outlet := range entry.Outlets {
		if err := validateOutlet(sess, entry.PDU.Host, outlet); err != nil {
			return err
		}
		log.Debug().Msgf("[%s] powering off outlet %d on %s", state, outlet, entry.PDU.Host)
		if err := o.setAndAwait(sess, entry.PDU.Host, outlet, pdu.StateOff, params.PowerOffTimeout); err != nil {
			return err
		}
	}

	state = stateVerifyingOffline
	log.Debug().Msgf("[%s] waiting %s for %s to lose power", state, powerOffGrace, params.System)
	o.sleep(powerOffGrace)
	reachable, err := o.Probe(params.System, pingPollInterval)
	if err != nil {
		return fmt.Errorf("reachability probe of %s failed: %w", params.System, err)
	}
	if reachable {
		return &pdu.StillReachableError{System: params.System, Host: entry.PDU.Host}
	}

	state = statePoweringOn
	for _, outlet := range entry.Outlets {
		log.Debug().Msgf("[%s] powering on outlet %d on %s", state, outlet, entry.PDU.Host)
		if err := o.setAndAwait(sess, entry.PDU.Host, outlet, pdu.StateOn, params.PowerOnTimeout); err != nil {
			return err
		}
	}

	state = stateVerifyingOnline
	log.Debug().Msgf("[%s] waiting up to %s for %s to answer pings", state, params.PingTimeout, params.System)
	err = poll.Until(func() (bool, error) {
		return o.Probe(params.System, pingPollInterval)
	}, true, pingPollInterval, params.PingTimeout)
	if errors.Is(err, poll.ErrTimeout) {
		return &pdu.UnreachableError{System: params.System, Timeout: params.PingTimeout}
	}
	if err != nil {
		return fmt.Errorf("reachability probe of %s failed: %w", params.System, err)
	}

	state = stateDone
	log.Debug().Msgf("[%s] system %s is back", state, params.System)
	return nil
}

// setAndAwait issues one outlet state change and polls until the outlet
// reads back the wanted state or the budget runs out.
func (o *Orchestrator) setAndAwait(sess snmp.Session, host string, outlet int, want pdu.OutletState, timeout time.Duration) error {
	if err := sess.SetOutletState(outlet, want); err != nil {
		return err
	}
	err := poll.Until(func() (pdu.OutletState, error) {
		return sess.OutletState(outlet)
	}, want, outletPollInterval, timeout)
	if errors.Is(err, poll.ErrTimeout) {
		if want == pdu.StateOff {
			return &pdu.PowerOffTimeoutError{Host: host, Outlet: outlet, Timeout: timeout}
		}
		return &pdu.PowerOnTimeoutError{Host: host, Outlet: outlet, Timeout: timeout}
	}
	return err
}

// validateOutlet checks a requested outlet index against the PDU's live
// outlet count, fetched fresh immediately before the outlet is acted
// upon. A transport failure while fetching the count surfaces as a
// ProtocolError, distinct from a validation failure.
func validateOutlet(sess snmp.Session, host string, outlet int) error {
	count, err := sess.OutletCount()
	if err != nil {
		return err
	}
	if outlet < 1 || outlet > count {
		return &pdu.InvalidOutletError{Host: host, Index: outlet, Count: count}
	}
	return nil
}
