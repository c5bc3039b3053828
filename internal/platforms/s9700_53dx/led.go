package s9700_53dx

import (
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	ledSys = iota + 1
	ledPsu0
	ledPsu1
	ledFan
	ledMax
)

const (
	ledCpldBus  = 1
	ledCpldAddr = 0x30
)

const ledCaps = onlp.LedCapsOff | onlp.LedCapsYellow | onlp.LedCapsYellowBlinking |
	onlp.LedCapsGreen | onlp.LedCapsGreenBlinking

// ledRegister locates the bits of a led in a cpld register.
// color 1 is green, 0 yellow.
type ledRegister struct {
	attribute string
	color     uint
	blink     uint
	on        uint
}

type ledDesc struct {
	info onlp.LedInfo
	reg  ledRegister
}

func newLed(id int, description string, attribute string, color uint, blink uint, on uint) ledDesc {
	return ledDesc{
		info: onlp.LedInfo{
			Header: onlp.OidHeader{
				Id:          onlp.LedOid(id),
				Description: description,
				Parent:      onlp.OidChassis,
				Status:      onlp.StatusPresent,
			},
			Caps: ledCaps,
			Mode: onlp.LedModeOff,
		},
		reg: ledRegister{attribute: attribute, color: color, blink: blink, on: on},
	}
}

var ledTable = []ledDesc{
	{},
	newLed(ledSys, "Chassis LED 1 (SYS LED)", "cpld_system_led_0", 4, 6, 7),
	newLed(ledPsu0, "Chassis LED 2 (PSU1 LED)", "cpld_system_led_1", 0, 2, 3),
	newLed(ledPsu1, "Chassis LED 3 (PSU2 LED)", "cpld_system_led_1", 4, 6, 7),
	newLed(ledFan, "Chassis LED 4 (FAN LED)", "cpld_system_led_0", 0, 2, 3),
}

// decodeLed returns the mode encoded in a led register value
func decodeLed(value int, reg ledRegister) onlp.LedMode {
	bit := func(n uint) bool {
		return (value>>n)&0x01 == 1
	}
	if !bit(reg.on) {
		return onlp.LedModeOff
	}
	switch {
	case bit(reg.color) && bit(reg.blink):
		return onlp.LedModeGreenBlinking
	case bit(reg.color):
		return onlp.LedModeGreen
	case bit(reg.blink):
		return onlp.LedModeYellowBlinking
	default:
		return onlp.LedModeYellow
	}
}

type leds struct {
	onlp.Base
	onlp.FixedLeds
	env *platform.Env
}

func (l *leds) SwInit() error {
	return l.Init(func() error { return nil })
}

func (l *leds) Ids() []onlp.Oid {
	return onlp.RangeIds(onlp.OidTypeLed, 1, ledMax-1)
}

func (l *leds) Validate(id onlp.Oid) error {
	return onlp.ValidateRange(id, onlp.OidTypeLed, 1, ledMax-1)
}

func (l *leds) Caps(id onlp.Oid) (onlp.LedCaps, error) {
	if err := l.Validate(id); err != nil {
		return 0, err
	}
	return ledTable[id.Id()].info.Caps, nil
}

func (l *leds) Header(id onlp.Oid) (onlp.OidHeader, error) {
	if err := l.Validate(id); err != nil {
		return onlp.OidHeader{}, err
	}
	return ledTable[id.Id()].info.Header, nil
}

func (l *leds) Info(id onlp.Oid) (onlp.LedInfo, error) {
	if err := l.Validate(id); err != nil {
		return onlp.LedInfo{}, err
	}
	desc := ledTable[id.Id()]
	info := desc.info
	err := l.Do(func() error {
		value, err := l.env.Sysfs.ReadHex(util.I2cDevicePath(ledCpldBus, ledCpldAddr, desc.reg.attribute))
		if err != nil {
			ui.Debug("Unable to read %s: %v", desc.info.Header.Description, err)
			return err
		}
		info.Mode = decodeLed(value, desc.reg)
		return nil
	})
	return info, err
}
