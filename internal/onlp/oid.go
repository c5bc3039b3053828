package onlp

import (
	"fmt"
	"strconv"
	"strings"
)

type OidType uint8

const (
	OidTypeSys     OidType = 1
	OidTypeThermal OidType = 2
	OidTypeFan     OidType = 3
	OidTypePsu     OidType = 4
	OidTypeLed     OidType = 5
	OidTypeModule  OidType = 6
	OidTypeRtc     OidType = 7
)

var oidTypeNames = map[OidType]string{
	OidTypeSys:     "sys",
	OidTypeThermal: "thermal",
	OidTypeFan:     "fan",
	OidTypePsu:     "psu",
	OidTypeLed:     "led",
	OidTypeModule:  "module",
	OidTypeRtc:     "rtc",
}

func (t OidType) String() string {
	name, ok := oidTypeNames[t]
	if !ok {
		return fmt.Sprintf("type%d", uint8(t))
	}
	return name
}

// Oid addresses a single hardware component, encoded as type<<24 | id
type Oid uint32

// OidChassis is the root of every oid tree
var OidChassis = NewOid(OidTypeSys, 1)

func NewOid(t OidType, id int) Oid {
	return Oid(uint32(t)<<24 | uint32(id)&0xFFFFFF)
}

func ThermalOid(id int) Oid { return NewOid(OidTypeThermal, id) }
func FanOid(id int) Oid     { return NewOid(OidTypeFan, id) }
func PsuOid(id int) Oid     { return NewOid(OidTypePsu, id) }
func LedOid(id int) Oid     { return NewOid(OidTypeLed, id) }

func (o Oid) Type() OidType {
	return OidType(o >> 24)
}

// Id returns the local id of the oid within its type
func (o Oid) Id() int {
	return int(o & 0xFFFFFF)
}

func (o Oid) String() string {
	return fmt.Sprintf("%s-%d", o.Type(), o.Id())
}

func (o Oid) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Oid) UnmarshalText(text []byte) error {
	parsed, err := ParseOid(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ParseOid accepts the "thermal-3" notation as well as a raw numeric oid like 0x02000003
func ParseOid(text string) (Oid, error) {
	text = strings.TrimSpace(strings.ToLower(text))
	if len(text) <= 0 {
		return 0, fmt.Errorf("empty oid: %w", ErrParam)
	}

	idx := strings.LastIndex(text, "-")
	if idx < 0 {
		raw, err := strconv.ParseUint(text, 0, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid oid '%s': %w", text, ErrParam)
		}
		oid := Oid(raw)
		if _, known := oidTypeNames[oid.Type()]; !known {
			return 0, fmt.Errorf("invalid oid type in '%s': %w", text, ErrParam)
		}
		return oid, nil
	}

	typeName, idText := text[:idx], text[idx+1:]
	for t, name := range oidTypeNames {
		if name != typeName {
			continue
		}
		id, err := strconv.Atoi(idText)
		if err != nil || id < 0 || id > 0xFFFFFF {
			return 0, fmt.Errorf("invalid oid id in '%s': %w", text, ErrParam)
		}
		return NewOid(t, id), nil
	}
	return 0, fmt.Errorf("unknown oid type '%s': %w", typeName, ErrParam)
}

// OidHeader is the common part of every component info
type OidHeader struct {
	Id          Oid    `json:"id"`
	Description string `json:"description"`
	Parent      Oid    `json:"parent"`
	Status      Status `json:"status"`
}
