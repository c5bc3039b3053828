package onlp

import "strings"

type ThermalCaps uint32

const (
	ThermalCapsGetTemperature       ThermalCaps = 1 << 0
	ThermalCapsGetWarningThreshold  ThermalCaps = 1 << 1
	ThermalCapsGetErrorThreshold    ThermalCaps = 1 << 2
	ThermalCapsGetShutdownThreshold ThermalCaps = 1 << 3

	ThermalCapsAll = ThermalCapsGetTemperature | ThermalCapsGetWarningThreshold |
		ThermalCapsGetErrorThreshold | ThermalCapsGetShutdownThreshold
)

func (c ThermalCaps) Has(caps ThermalCaps) bool {
	return c&caps == caps
}

func (c ThermalCaps) String() string {
	var parts []string
	if c.Has(ThermalCapsGetTemperature) {
		parts = append(parts, "GET_TEMPERATURE")
	}
	if c.Has(ThermalCapsGetWarningThreshold) {
		parts = append(parts, "GET_WARNING_THRESHOLD")
	}
	if c.Has(ThermalCapsGetErrorThreshold) {
		parts = append(parts, "GET_ERROR_THRESHOLD")
	}
	if c.Has(ThermalCapsGetShutdownThreshold) {
		parts = append(parts, "GET_SHUTDOWN_THRESHOLD")
	}
	return strings.Join(parts, "|")
}

// ThermalThresholds are given in millidegrees celsius
type ThermalThresholds struct {
	Warning  int `json:"warning"`
	Error    int `json:"error"`
	Shutdown int `json:"shutdown"`
}

// DefaultThresholds are used by sensors without board specific limits
var DefaultThresholds = ThermalThresholds{Warning: 85000, Error: 95000, Shutdown: 100000}

type ThermalInfo struct {
	Header       OidHeader         `json:"header"`
	Caps         ThermalCaps       `json:"caps"`
	MilliCelsius int               `json:"mcelsius"`
	Thresholds   ThermalThresholds `json:"thresholds"`
}

// Celsius returns the temperature in degrees celsius
func (t ThermalInfo) Celsius() float64 {
	return float64(t.MilliCelsius) / 1000
}

// Level returns the highest threshold the current temperature has reached,
// or an empty string if none.
func (t ThermalInfo) Level() string {
	if !t.Caps.Has(ThermalCapsGetTemperature) || !t.Header.Status.Has(StatusPresent) {
		return ""
	}
	switch {
	case t.Caps.Has(ThermalCapsGetShutdownThreshold) && t.MilliCelsius >= t.Thresholds.Shutdown:
		return "shutdown"
	case t.Caps.Has(ThermalCapsGetErrorThreshold) && t.MilliCelsius >= t.Thresholds.Error:
		return "error"
	case t.Caps.Has(ThermalCapsGetWarningThreshold) && t.MilliCelsius >= t.Thresholds.Warning:
		return "warning"
	}
	return ""
}
