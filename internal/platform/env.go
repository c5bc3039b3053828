package platform

import (
	"errors"
	"fmt"
	"time"

	"github.com/ufispace/onlp2go/internal/bmc"
	"github.com/ufispace/onlp2go/internal/hw/gpio"
	"github.com/ufispace/onlp2go/internal/hw/i2c"
	"github.com/ufispace/onlp2go/internal/hw/ioport"
	"github.com/ufispace/onlp2go/internal/hw/sysfs"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const (
	PlatformFile      = "/etc/onl/platform"
	BmcEnableFile     = "/etc/onl/bmc_en"
	DefaultDmidecode  = "dmidecode"
	DefaultCmdTimeout = 10 * time.Second
)

// Mux is an i2c multiplexer whose idle state is configured at boot
type Mux struct {
	Bus  int
	Addr int
}

// Env holds the hardware access handles a board driver works with
type Env struct {
	Sysfs  *sysfs.Root
	I2C    i2c.Bus
	IoPort ioport.Port
	Gpio   gpio.Controller
	Bmc    *bmc.Client

	Exec       util.Runner
	CmdTimeout time.Duration

	Dmidecode     string
	BmcEnablePath string
	// Muxes overrides the multiplexers a board configures in BaseConfig
	Muxes []Mux
}

// Options select the host resources a production Env accesses
type Options struct {
	SysfsRoot     string
	IoPortPath    string
	BmcEnablePath string
	Ipmitool      string
	Dmidecode     string
	CmdTimeout    time.Duration
	Muxes         []Mux
}

// NewEnv creates an Env accessing the real hardware
func NewEnv(opts Options) *Env {
	timeout := opts.CmdTimeout
	if timeout <= 0 {
		timeout = DefaultCmdTimeout
	}
	env := &Env{
		Sysfs:         sysfs.NewRoot(opts.SysfsRoot),
		I2C:           i2c.NewSMBus(),
		IoPort:        ioport.NewDevPort(opts.IoPortPath),
		Gpio:          gpio.NewPeriph(),
		Exec:          util.SafeCmdExecution,
		CmdTimeout:    timeout,
		Dmidecode:     opts.Dmidecode,
		BmcEnablePath: opts.BmcEnablePath,
		Muxes:         opts.Muxes,
	}
	env.Bmc = bmc.NewClient(opts.Ipmitool, timeout, env.Exec)
	env.applyDefaults()
	return env
}

func (e *Env) applyDefaults() {
	if len(e.Dmidecode) <= 0 {
		e.Dmidecode = DefaultDmidecode
	}
	if len(e.BmcEnablePath) <= 0 {
		e.BmcEnablePath = BmcEnableFile
	}
	if e.CmdTimeout <= 0 {
		e.CmdTimeout = DefaultCmdTimeout
	}
	if e.Sysfs == nil {
		e.Sysfs = sysfs.NewRoot("")
	}
}

// Run executes a host command with the configured timeout
func (e *Env) Run(executable string, args ...string) (string, error) {
	if e.Exec == nil {
		return "", fmt.Errorf("no command runner configured: %w", onlp.ErrInternal)
	}
	output, err := e.Exec(executable, args, e.CmdTimeout)
	if err != nil {
		return "", fmt.Errorf("%s: %w", executable, errors.Join(onlp.ErrInternal, err))
	}
	return output, nil
}

// BiosVersion returns the bios version reported by dmidecode
func (e *Env) BiosVersion() (string, error) {
	e.applyDefaults()
	output, err := e.Run(e.Dmidecode, "-s", "bios-version")
	if err != nil {
		return "", err
	}
	return util.LastLine(output), nil
}

// BmcEnabled reads the bmc enable flag. An unreadable flag file means disabled.
func (e *Env) BmcEnabled() bool {
	e.applyDefaults()
	value, err := e.Sysfs.ReadInt(e.BmcEnablePath)
	if err != nil {
		ui.Debug("BMC enable flag not readable, assuming disabled: %v", err)
		return false
	}
	return value > 0
}
