package ilo

import (
	"encoding/json"
	"strings"
	"unicode"
)

// redfishComponents maps AggregateHealthStatus members to component keys.
var redfishComponents = map[string]string{
	"BiosOrHardwareHealth":       ComponentBIOSHardware,
	"Fans":                       ComponentFans,
	"Temperatures":               ComponentTemperature,
	"PowerSupplies":              ComponentPowerSupplies,
	"Processors":                 ComponentProcessor,
	"Memory":                     ComponentMemory,
	"Network":                    ComponentNetwork,
	"Storage":                    ComponentStorage,
	"SmartStorageBattery":        ComponentBattery,
	"AgentlessManagementService": ComponentAgentless,
}

// redfishRedundancy maps redundancy members to the component they describe.
var redfishRedundancy = map[string]string{
	"FanRedundancy":         ComponentFans,
	"PowerSupplyRedundancy": ComponentPowerSupplies,
}

type statusBlock struct {
	Status struct {
		Health string `json:"Health"`
	} `json:"Status"`
}

// parseAggregateHealth converts an HPE AggregateHealthStatus object into a Glance.
// Object members with Status.Health become components; string members are
// either redundancy values or status-only components.
func parseAggregateHealth(raw map[string]json.RawMessage) Glance {
	glance := make(Glance)
	redundancy := make(map[string]string)

	for key, value := range raw {
		if target, ok := redfishRedundancy[key]; ok {
			var s string
			if json.Unmarshal(value, &s) == nil {
				redundancy[target] = s
			}
			continue
		}

		name, known := redfishComponents[key]
		if !known {
			name = snakeCase(key)
		}

		var block statusBlock
		if err := json.Unmarshal(value, &block); err == nil && block.Status.Health != "" {
			entry := glance[name]
			entry.Status = block.Status.Health
			glance[name] = entry
			continue
		}

		// Only known components may carry a bare string status.
		var s string
		if known && json.Unmarshal(value, &s) == nil {
			entry := glance[name]
			entry.Status = s
			glance[name] = entry
		}
	}

	for name, r := range redundancy {
		entry, ok := glance[name]
		if !ok {
			continue
		}
		entry.Redundancy = r
		glance[name] = entry
	}

	return glance
}

// snakeCase turns "SmartStorageBattery" into "smart_storage_battery".
func snakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
