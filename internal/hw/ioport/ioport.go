package ioport

import (
	"fmt"
	"io"
	"os"
	"sync"
)

const DefaultPath = "/dev/port"

// Port reads x86 io ports, e.g. the CPU CPLD registers
type Port interface {
	ReadByte(addr int64) (uint8, error)
}

// DevPort accesses io ports through the /dev/port character device
type DevPort struct {
	path string
	mu   sync.Mutex
}

func NewDevPort(path string) *DevPort {
	if len(path) <= 0 {
		path = DefaultPath
	}
	return &DevPort{path: path}
}

func (p *DevPort) ReadByte(addr int64) (uint8, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.Open(p.path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", p.path, err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)

	if _, err := f.Seek(addr, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek %s to 0x%x: %w", p.path, addr, err)
	}

	var b [1]byte
	if _, err := io.ReadFull(f, b[:]); err != nil {
		return 0, fmt.Errorf("read %s at 0x%x: %w", p.path, addr, err)
	}
	return b[0], nil
}
