package onlp

import "errors"

// Subsystem is implemented by every driver module of a board
type Subsystem interface {
	// SwInit performs the one time software initialization
	SwInit() error
	HwInit(flags uint32) error
	Denit() error

	// Ids enumerates all oids described by the module
	Ids() []Oid
	// Validate checks that the local id of oid is within the descriptor table
	Validate(id Oid) error
	// Header returns the static header, updated with the dynamic status
	Header(id Oid) (OidHeader, error)
}

type ThermalDriver interface {
	Subsystem
	Caps(id Oid) (ThermalCaps, error)
	Info(id Oid) (ThermalInfo, error)
}

type FanDriver interface {
	Subsystem
	Caps(id Oid) (FanCaps, error)
	Info(id Oid) (FanInfo, error)
	SetRpm(id Oid, rpm int) error
	SetPercentage(id Oid, percentage int) error
	SetDir(id Oid, dir FanDir) error
}

type LedDriver interface {
	Subsystem
	Caps(id Oid) (LedCaps, error)
	Info(id Oid) (LedInfo, error)
	SetMode(id Oid, mode LedMode) error
	SetChar(id Oid, c byte) error
}

type PsuDriver interface {
	Subsystem
	Caps(id Oid) (PsuCaps, error)
	Info(id Oid) (PsuInfo, error)
}

type SfpDriver interface {
	SwInit() error
	Denit() error

	// Bitmap returns all valid ports
	Bitmap() (SfpBitmap, error)
	IsPresent(port int) (bool, error)
	PresenceBitmap() (SfpBitmap, error)
	RxLosBitmap() (SfpBitmap, error)

	// ReadEeprom returns the first 256 bytes of the module eeprom
	ReadEeprom(port int) ([]byte, error)
	// ReadDom returns the 256 bytes following the eeprom page
	ReadDom(port int) ([]byte, error)

	DevReadByte(port int, devAddr uint8, addr uint8) (uint8, error)
	DevWriteByte(port int, devAddr uint8, addr uint8, value uint8) error
	DevReadWord(port int, devAddr uint8, addr uint8) (uint16, error)
	DevWriteWord(port int, devAddr uint8, addr uint8, value uint16) error
	DevRead(port int, devAddr uint8, addr uint8, size int) ([]byte, error)
	DevWrite(port int, devAddr uint8, addr uint8, data []byte) error

	ControlGet(port int, control SfpControl) (int, error)
	ControlSet(port int, control SfpControl, value int) error
}

type AttributeDriver interface {
	SwInit() error
	Denit() error

	// Supported reports whether the attribute name is available for id
	Supported(id Oid, name string) bool
	OnieInfo(id Oid) (*OnieInfo, error)
	AssetInfo(id Oid) (*AssetInfo, error)
}

type PlatformDriver interface {
	// Name detects the exact platform name, e.g. by reading board revision registers
	Name() (string, error)
	ManageFans() error
	ManageLeds() error
	// BaseConfig performs the board initialization done at boot
	BaseConfig() error
}

// Platform bundles the drivers of a single board. A nil driver is not implemented.
type Platform struct {
	Name    string
	Version int

	Thermal   ThermalDriver
	Fan       FanDriver
	Led       LedDriver
	Psu       PsuDriver
	Sfp       SfpDriver
	Attribute AttributeDriver
	Board     PlatformDriver
}

// Subsystems returns all non nil oid based drivers
func (p *Platform) Subsystems() []Subsystem {
	var result []Subsystem
	if p.Thermal != nil {
		result = append(result, p.Thermal)
	}
	if p.Fan != nil {
		result = append(result, p.Fan)
	}
	if p.Led != nil {
		result = append(result, p.Led)
	}
	if p.Psu != nil {
		result = append(result, p.Psu)
	}
	return result
}

// SubsystemFor returns the driver responsible for oids of type t
func (p *Platform) SubsystemFor(t OidType) Subsystem {
	switch t {
	case OidTypeThermal:
		if p.Thermal != nil {
			return p.Thermal
		}
	case OidTypeFan:
		if p.Fan != nil {
			return p.Fan
		}
	case OidTypeLed:
		if p.Led != nil {
			return p.Led
		}
	case OidTypePsu:
		if p.Psu != nil {
			return p.Psu
		}
	}
	return nil
}

// Init runs SwInit of every driver
func (p *Platform) Init() error {
	for _, s := range p.Subsystems() {
		if err := s.SwInit(); err != nil {
			return err
		}
	}
	if p.Sfp != nil {
		if err := p.Sfp.SwInit(); err != nil {
			return err
		}
	}
	if p.Attribute != nil {
		if err := p.Attribute.SwInit(); err != nil {
			return err
		}
	}
	return nil
}

// Denit releases every driver, all drivers are released even if one fails
func (p *Platform) Denit() error {
	var errs []error
	for _, s := range p.Subsystems() {
		errs = append(errs, s.Denit())
	}
	if p.Sfp != nil {
		errs = append(errs, p.Sfp.Denit())
	}
	if p.Attribute != nil {
		errs = append(errs, p.Attribute.Denit())
	}
	return errors.Join(errs...)
}
