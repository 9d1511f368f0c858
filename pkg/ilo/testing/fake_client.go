// Package testing provides test doubles for the ilo package.
package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/ilohealth/hcilo/pkg/ilo"
)

// FakeClient is a canned iLO. Zero-value fields produce empty results.
type FakeClient struct {
	Name      string
	Glance    ilo.Glance
	NameErr   error
	HealthErr error
}

// ServerName returns the canned name or NameErr.
func (c *FakeClient) ServerName(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.NameErr != nil {
		return "", c.NameErr
	}
	return c.Name, nil
}

// HealthAtAGlance returns a copy of the canned glance or HealthErr.
func (c *FakeClient) HealthAtAGlance(ctx context.Context) (ilo.Glance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.HealthErr != nil {
		return nil, c.HealthErr
	}
	out := make(ilo.Glance, len(c.Glance))
	for k, v := range c.Glance {
		out[k] = v
	}
	return out, nil
}

// DialCall records a call to the fleet's Dialer.
type DialCall struct {
	Address string
	Creds   ilo.Credentials
}

// FakeFleet maps iLO addresses to fake clients and records dials.
type FakeFleet struct {
	mu      sync.Mutex
	clients map[string]*FakeClient
	Dials   []DialCall
}

// NewFakeFleet creates an empty fleet. Unknown addresses dial to a client
// whose calls fail with a connection error.
func NewFakeFleet() *FakeFleet {
	return &FakeFleet{clients: make(map[string]*FakeClient)}
}

// Add registers a fake iLO at address.
func (f *FakeFleet) Add(address string, client *FakeClient) *FakeFleet {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clients[address] = client
	return f
}

// AddHealthy registers an iLO reporting every known component as OK.
func (f *FakeFleet) AddHealthy(address, name string) *FakeFleet {
	glance := make(ilo.Glance, len(ilo.ComponentOrder))
	for _, c := range ilo.ComponentOrder {
		glance[c] = ilo.ComponentHealth{Status: "OK"}
	}
	glance[ilo.ComponentFans] = ilo.ComponentHealth{Status: "OK", Redundancy: "Redundant"}
	glance[ilo.ComponentPowerSupplies] = ilo.ComponentHealth{Status: "OK", Redundancy: "Redundant"}
	return f.Add(address, &FakeClient{Name: name, Glance: glance})
}

// Dialer returns an ilo.Dialer backed by this fleet.
func (f *FakeFleet) Dialer() ilo.Dialer {
	return func(address string, creds ilo.Credentials) ilo.Client {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.Dials = append(f.Dials, DialCall{Address: address, Creds: creds})
		if c, ok := f.clients[address]; ok {
			return c
		}
		unreachable := fmt.Errorf("dial tcp %s:443: connect: no route to host", address)
		return &FakeClient{NameErr: unreachable, HealthErr: unreachable}
	}
}

// DialedAddresses returns the addresses dialed, in order.
func (f *FakeFleet) DialedAddresses() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Dials))
	for i, d := range f.Dials {
		out[i] = d.Address
	}
	return out
}
