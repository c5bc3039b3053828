package configuration

import (
	"github.com/ufispace/onlp2go/internal/onlp"
)

// MuxConfig selects an i2c multiplexer whose idle state is set on init.
// Addresses may be given as hex strings like "0x70".
type MuxConfig struct {
	Bus  int `json:"bus"`
	Addr int `json:"addr"`
}

// ThermalThresholdConfig overrides the thresholds of a thermal, in millidegrees celsius.
// A zero value keeps the board default.
type ThermalThresholdConfig struct {
	Oid      onlp.Oid `json:"oid"`
	Warning  int      `json:"warning"`
	Error    int      `json:"error"`
	Shutdown int      `json:"shutdown"`
}

// Apply returns thresholds with the configured values replaced
func (c ThermalThresholdConfig) Apply(thresholds onlp.ThermalThresholds) onlp.ThermalThresholds {
	if c.Warning > 0 {
		thresholds.Warning = c.Warning
	}
	if c.Error > 0 {
		thresholds.Error = c.Error
	}
	if c.Shutdown > 0 {
		thresholds.Shutdown = c.Shutdown
	}
	return thresholds
}

// ThresholdOverrides indexes the configured threshold overrides by oid
func (c *Configuration) ThresholdOverrides() map[onlp.Oid]ThermalThresholdConfig {
	result := map[onlp.Oid]ThermalThresholdConfig{}
	for _, t := range c.ThermalThresholds {
		result[t.Oid] = t
	}
	return result
}
