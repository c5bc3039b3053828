package onlp

import (
	"fmt"
	"sync"
)

// Guard serializes hardware access of a driver module and runs its
// software initialization exactly once.
type Guard struct {
	once    sync.Once
	initErr error
	mu      sync.Mutex
}

func (g *Guard) Init(f func() error) error {
	g.once.Do(func() {
		g.initErr = f()
	})
	return g.initErr
}

func (g *Guard) Do(f func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return f()
}

// Base provides the callbacks most driver modules leave empty
type Base struct {
	Guard
}

func (b *Base) HwInit(flags uint32) error {
	return nil
}

func (b *Base) Denit() error {
	return nil
}

// ValidateRange checks that id has type t and a local id in [min, max]
func ValidateRange(id Oid, t OidType, min int, max int) error {
	if id.Type() != t {
		return fmt.Errorf("%s is not a %s oid: %w", id, t, ErrParam)
	}
	if id.Id() < min || id.Id() > max {
		return fmt.Errorf("%s out of range [%d, %d]: %w", id, min, max, ErrParam)
	}
	return nil
}

// RangeIds returns the oids of type t with local ids in [min, max]
func RangeIds(t OidType, min int, max int) []Oid {
	var result []Oid
	for i := min; i <= max; i++ {
		result = append(result, NewOid(t, i))
	}
	return result
}

// FixedFans is embedded by fan modules without speed or direction control
type FixedFans struct{}

func (FixedFans) SetRpm(id Oid, rpm int) error {
	return fmt.Errorf("set rpm of %s: %w", id, ErrUnsupported)
}

func (FixedFans) SetPercentage(id Oid, percentage int) error {
	return fmt.Errorf("set percentage of %s: %w", id, ErrUnsupported)
}

func (FixedFans) SetDir(id Oid, dir FanDir) error {
	return fmt.Errorf("set direction of %s: %w", id, ErrUnsupported)
}

// FixedLeds is embedded by led modules that are controlled by the CPLD only
type FixedLeds struct{}

func (FixedLeds) SetMode(id Oid, mode LedMode) error {
	return fmt.Errorf("set mode of %s: %w", id, ErrUnsupported)
}

func (FixedLeds) SetChar(id Oid, c byte) error {
	return fmt.Errorf("set char of %s: %w", id, ErrUnsupported)
}
