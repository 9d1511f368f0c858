package ilo

import (
	"context"
	"fmt"
)

// Client defines the iLO operations the health report needs.
// Both the Redfish client and test fakes satisfy this interface.
type Client interface {
	// ServerName returns the name the iLO reports for its host.
	ServerName(ctx context.Context) (string, error)

	// HealthAtAGlance returns the per-subsystem health summary.
	HealthAtAGlance(ctx context.Context) (Glance, error)
}

// Dialer builds a Client for one iLO address. No network traffic happens
// until a Client method is called.
type Dialer func(address string, creds Credentials) Client

// Credentials authenticate against an iLO.
type Credentials struct {
	Username string
	Password string
}

// String masks the password so credentials are safe to print.
func (c Credentials) String() string {
	if c.Password == "" {
		return c.Username
	}
	return fmt.Sprintf("%s:********", c.Username)
}

// ComponentHealth is one entry of the health-at-a-glance summary.
type ComponentHealth struct {
	Status     string
	Redundancy string
}

// Glance maps a component key (e.g. "fans") to its health.
type Glance map[string]ComponentHealth

// Component keys, named after the classic iLO health_at_a_glance keys.
const (
	ComponentBIOSHardware  = "bios_hardware"
	ComponentFans          = "fans"
	ComponentTemperature   = "temperature"
	ComponentPowerSupplies = "power_supplies"
	ComponentProcessor     = "processor"
	ComponentMemory        = "memory"
	ComponentNetwork       = "network"
	ComponentStorage       = "storage"
	ComponentBattery       = "battery"
	ComponentAgentless     = "agentless_management_service"
)

// ComponentOrder is the display order of known components.
var ComponentOrder = []string{
	ComponentBIOSHardware,
	ComponentFans,
	ComponentTemperature,
	ComponentPowerSupplies,
	ComponentProcessor,
	ComponentMemory,
	ComponentNetwork,
	ComponentStorage,
	ComponentBattery,
	ComponentAgentless,
}
