package onlp

import (
	"fmt"
	"strings"
)

type LedCaps uint32

const (
	LedCapsOff            LedCaps = 1 << 0
	LedCapsAuto           LedCaps = 1 << 1
	LedCapsYellow         LedCaps = 1 << 10
	LedCapsYellowBlinking LedCaps = 1 << 11
	LedCapsGreen          LedCaps = 1 << 16
	LedCapsGreenBlinking  LedCaps = 1 << 17
	LedCapsChar           LedCaps = 1 << 24
)

func (c LedCaps) Has(caps LedCaps) bool {
	return c&caps == caps
}

type LedMode string

const (
	LedModeOff            LedMode = "off"
	LedModeOn             LedMode = "on"
	LedModeAuto           LedMode = "auto"
	LedModeYellow         LedMode = "yellow"
	LedModeYellowBlinking LedMode = "yellow_blinking"
	LedModeGreen          LedMode = "green"
	LedModeGreenBlinking  LedMode = "green_blinking"
)

var ledModeCaps = map[LedMode]LedCaps{
	LedModeOff:            LedCapsOff,
	LedModeAuto:           LedCapsAuto,
	LedModeYellow:         LedCapsYellow,
	LedModeYellowBlinking: LedCapsYellowBlinking,
	LedModeGreen:          LedCapsGreen,
	LedModeGreenBlinking:  LedCapsGreenBlinking,
}

// ParseLedMode parses a mode name like "green_blinking"
func ParseLedMode(text string) (LedMode, error) {
	mode := LedMode(strings.ToLower(strings.TrimSpace(text)))
	if mode == LedModeOn {
		return mode, nil
	}
	if _, ok := ledModeCaps[mode]; !ok {
		return "", fmt.Errorf("unknown led mode '%s': %w", text, ErrParam)
	}
	return mode, nil
}

// Supports reports whether the given mode is advertised by caps
func (c LedCaps) Supports(mode LedMode) bool {
	caps, ok := ledModeCaps[mode]
	return ok && c.Has(caps)
}

func (c LedCaps) String() string {
	var parts []string
	for _, mode := range []LedMode{LedModeOff, LedModeAuto, LedModeYellow, LedModeYellowBlinking, LedModeGreen, LedModeGreenBlinking} {
		if c.Supports(mode) {
			parts = append(parts, strings.ToUpper(string(mode)))
		}
	}
	if c.Has(LedCapsChar) {
		parts = append(parts, "CHAR")
	}
	return strings.Join(parts, "|")
}

type LedInfo struct {
	Header OidHeader `json:"header"`
	Caps   LedCaps   `json:"caps"`
	Mode   LedMode   `json:"mode"`
}
