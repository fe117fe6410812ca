// Package probe implements the single-shot reachability check of the
// target system. One call sends one ICMP echo bounded by a deadline;
// retries are layered on top by the poll loop in the orchestrator, never
// here.
package probe

import (
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// Func is the reachability capability consumed by the orchestrator.
type Func func(host string, deadline time.Duration) (bool, error)

// Ping sends a single echo request and reports whether a reply arrived
// within the deadline. A silent timeout is (false, nil); only a failure
// to run the probe at all is an error.
func Ping(host string, deadline time.Duration) (bool, error) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return false, fmt.Errorf("failed to create pinger for %s: %w", host, err)
	}
	pinger.Count = 1
	pinger.Timeout = deadline
	// Raw ICMP sockets; matches how the system ping utility probes.
	pinger.SetPrivileged(true)

	if err := pinger.Run(); err != nil {
		return false, fmt.Errorf("echo probe to %s failed: %w", host, err)
	}
	return pinger.Statistics().PacketsRecv > 0, nil
}
