package onlp

import (
	"fmt"
	"sort"
	"strings"
)

type SfpControl string

const (
	SfpControlResetState    SfpControl = "reset_state"
	SfpControlRxLos         SfpControl = "rx_los"
	SfpControlTxFault       SfpControl = "tx_fault"
	SfpControlTxDisable     SfpControl = "tx_disable"
	SfpControlLpMode        SfpControl = "lp_mode"
	SfpControlPowerOverride SfpControl = "power_override"
)

var sfpControls = []SfpControl{
	SfpControlResetState,
	SfpControlRxLos,
	SfpControlTxFault,
	SfpControlTxDisable,
	SfpControlLpMode,
	SfpControlPowerOverride,
}

// SfpControls returns all known control signals in display order
func SfpControls() []SfpControl {
	return append([]SfpControl{}, sfpControls...)
}

func ParseSfpControl(text string) (SfpControl, error) {
	control := SfpControl(strings.ToLower(strings.TrimSpace(text)))
	for _, c := range sfpControls {
		if c == control {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown sfp control '%s': %w", text, ErrParam)
}

// SfpBitmap is a set of port numbers
type SfpBitmap map[int]bool

func NewSfpBitmap() SfpBitmap {
	return SfpBitmap{}
}

func (b SfpBitmap) Set(port int) {
	b[port] = true
}

func (b SfpBitmap) Clear(port int) {
	b[port] = false
}

// Mod sets the bit of port to value, the same as AIM_BITMAP_MOD
func (b SfpBitmap) Mod(port int, value bool) {
	b[port] = value
}

func (b SfpBitmap) IsSet(port int) bool {
	return b[port]
}

// Ports returns all ports that are set, sorted ascending
func (b SfpBitmap) Ports() []int {
	var result []int
	for port, set := range b {
		if set {
			result = append(result, port)
		}
	}
	sort.Ints(result)
	return result
}
