package doctor

import (
	"fmt"
	"net"
	"time"

	"github.com/ilohealth/hcilo/pkg/ilo"
)

// DefaultProbeTimeout bounds each reachability probe.
const DefaultProbeTimeout = 5 * time.Second

// ReachabilityCheck opens a TCP connection to an iLO's HTTPS port. It does
// not authenticate.
type ReachabilityCheck struct {
	Address string
	Timeout time.Duration
	Port    string // used when the address has none; defaults by scheme

	dial func(network, address string, timeout time.Duration) (net.Conn, error)
}

func (c *ReachabilityCheck) Name() string     { return "ilo_" + c.Address }
func (c *ReachabilityCheck) Category() string { return "ILO" }

func (c *ReachabilityCheck) Run() CheckResult {
	dial := c.dial
	if dial == nil {
		dial = net.DialTimeout
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	start := time.Now()
	conn, err := dial("tcp", ilo.HostPort(c.Address, c.Port), timeout)
	if err != nil {
		return result(c, StatusFail, fmt.Sprintf("%s unreachable: %v", c.Address, err),
			"Check the address in the inventory and that HTTPS to the iLO is allowed")
	}
	conn.Close()
	return result(c, StatusPass,
		fmt.Sprintf("%s reachable (%s)", c.Address, time.Since(start).Round(time.Millisecond)), "")
}

// NewReachabilityChecks creates one check per address.
func NewReachabilityChecks(addresses []string, timeout time.Duration) []Check {
	checks := make([]Check, len(addresses))
	for i, addr := range addresses {
		checks[i] = &ReachabilityCheck{Address: addr, Timeout: timeout}
	}
	return checks
}
