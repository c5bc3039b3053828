package testingutils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ufispace/onlp2go/internal/hw/gpio"
	"github.com/ufispace/onlp2go/internal/util"
)

// WriteSysfs creates a fixture file below root, creating parent directories
func WriteSysfs(t *testing.T, root string, path string, content string) {
	full := filepath.Join(root, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

// ReadSysfs returns the trimmed content of a fixture file
func ReadSysfs(t *testing.T, root string, path string) string {
	b, err := os.ReadFile(filepath.Join(root, path))
	require.NoError(t, err)
	return strings.TrimSpace(string(b))
}

type register struct {
	bus  int
	addr int
	reg  uint8
}

// FakeBus is an in memory i2c.Bus. Unknown registers fail like an absent device.
type FakeBus struct {
	mu     sync.Mutex
	bytes  map[register]uint8
	words  map[register]uint16
	Writes []string
}

func NewFakeBus() *FakeBus {
	return &FakeBus{
		bytes: map[register]uint8{},
		words: map[register]uint16{},
	}
}

func (b *FakeBus) SetByte(bus int, addr int, reg uint8, value uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bytes[register{bus, addr, reg}] = value
}

func (b *FakeBus) SetWord(bus int, addr int, reg uint8, value uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.words[register{bus, addr, reg}] = value
}

func (b *FakeBus) ReadByte(bus int, addr int, reg uint8) (uint8, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.bytes[register{bus, addr, reg}]
	if !ok {
		return 0, fmt.Errorf("no device at bus %d addr 0x%02x reg 0x%02x", bus, addr, reg)
	}
	return value, nil
}

func (b *FakeBus) WriteByte(bus int, addr int, reg uint8, value uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bytes[register{bus, addr, reg}] = value
	b.Writes = append(b.Writes, fmt.Sprintf("%d-%04x:%02x=%02x", bus, addr, reg, value))
	return nil
}

func (b *FakeBus) ReadWord(bus int, addr int, reg uint8) (uint16, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.words[register{bus, addr, reg}]
	if !ok {
		return 0, fmt.Errorf("no device at bus %d addr 0x%02x reg 0x%02x", bus, addr, reg)
	}
	return value, nil
}

func (b *FakeBus) WriteWord(bus int, addr int, reg uint8, value uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.words[register{bus, addr, reg}] = value
	b.Writes = append(b.Writes, fmt.Sprintf("%d-%04x:%02x=%04x", bus, addr, reg, value))
	return nil
}

func (b *FakeBus) ReadBlock(bus int, addr int, reg uint8, size int) ([]byte, error) {
	result := make([]byte, size)
	for i := 0; i < size; i++ {
		value, err := b.ReadByte(bus, addr, reg+uint8(i))
		if err != nil {
			return nil, err
		}
		result[i] = value
	}
	return result, nil
}

func (b *FakeBus) WriteBlock(bus int, addr int, reg uint8, data []byte) error {
	for i, value := range data {
		if err := b.WriteByte(bus, addr, reg+uint8(i), value); err != nil {
			return err
		}
	}
	return nil
}

// FakePort is an in memory ioport.Port
type FakePort map[int64]uint8

func (p FakePort) ReadByte(addr int64) (uint8, error) {
	value, ok := p[addr]
	if !ok {
		return 0, fmt.Errorf("io port 0x%x not readable", addr)
	}
	return value, nil
}

// FakeGpio records the configured gpio lines
type FakeGpio struct {
	mu         sync.Mutex
	Exported   map[int]bool
	Directions map[int]gpio.Direction
}

func NewFakeGpio() *FakeGpio {
	return &FakeGpio{
		Exported:   map[int]bool{},
		Directions: map[int]gpio.Direction{},
	}
}

func (g *FakeGpio) Export(number int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Exported[number] = true
	return nil
}

func (g *FakeGpio) SetDirection(number int, direction gpio.Direction) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.Exported[number] {
		return fmt.Errorf("gpio %d not exported", number)
	}
	g.Directions[number] = direction
	return nil
}

func (g *FakeGpio) Direction(number int) (gpio.Direction, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	direction, ok := g.Directions[number]
	if !ok {
		return "", fmt.Errorf("gpio %d not configured", number)
	}
	return direction, nil
}

// CannedRunner returns a util.Runner answering commands from a map keyed by
// the full command line, e.g. "ipmitool -c sdr get FAN0_RPM".
// Commands that are not listed fail.
func CannedRunner(outputs map[string]string) util.Runner {
	return func(executable string, args []string, timeout time.Duration) (string, error) {
		line := strings.Join(append([]string{executable}, args...), " ")
		output, ok := outputs[line]
		if !ok {
			return "", fmt.Errorf("command failed: %s", line)
		}
		return strings.Trim(output, "\r\n"), nil
	}
}
