package onlp

import "strings"

type FanCaps uint32

const (
	FanCapsB2F           FanCaps = 1 << 0
	FanCapsF2B           FanCaps = 1 << 1
	FanCapsSetRpm        FanCaps = 1 << 2
	FanCapsSetPercentage FanCaps = 1 << 3
	FanCapsGetRpm        FanCaps = 1 << 4
	FanCapsGetPercentage FanCaps = 1 << 5
	FanCapsGetDir        FanCaps = 1 << 6
)

func (c FanCaps) Has(caps FanCaps) bool {
	return c&caps == caps
}

func (c FanCaps) String() string {
	names := []struct {
		caps FanCaps
		name string
	}{
		{FanCapsB2F, "B2F"},
		{FanCapsF2B, "F2B"},
		{FanCapsSetRpm, "SET_RPM"},
		{FanCapsSetPercentage, "SET_PERCENTAGE"},
		{FanCapsGetRpm, "GET_RPM"},
		{FanCapsGetPercentage, "GET_PERCENTAGE"},
		{FanCapsGetDir, "GET_DIR"},
	}
	var parts []string
	for _, n := range names {
		if c.Has(n.caps) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

type FanDir string

const (
	FanDirUnknown FanDir = "unknown"
	FanDirB2F     FanDir = "b2f"
	FanDirF2B     FanDir = "f2b"
)

type FanInfo struct {
	Header     OidHeader `json:"header"`
	Caps       FanCaps   `json:"caps"`
	Dir        FanDir    `json:"dir"`
	Rpm        int       `json:"rpm"`
	Percentage int       `json:"percentage"`
	Model      string    `json:"model"`
	Serial     string    `json:"serial"`
}
