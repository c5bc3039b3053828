package gpio

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type Direction string

const (
	DirectionIn      Direction = "in"
	DirectionOutLow  Direction = "low"
	DirectionOutHigh Direction = "high"
)

// Controller configures gpio lines by their global number
type Controller interface {
	Export(number int) error
	SetDirection(number int, direction Direction) error
	Direction(number int) (Direction, error)
}

// Periph uses the periph.io sysfs gpio driver, which exports lines on first use
type Periph struct {
	initOnce sync.Once
	initErr  error
	hostInit func() error
	byName   func(name string) gpio.PinIO

	mu         sync.Mutex
	directions map[int]Direction
}

func NewPeriph() *Periph {
	return &Periph{
		hostInit: func() error {
			_, err := host.Init()
			return err
		},
		byName:     gpioreg.ByName,
		directions: map[int]Direction{},
	}
}

// PinName is the name the sysfs gpio driver registers a line under
func PinName(number int) string {
	return fmt.Sprintf("GPIO%d", number)
}

func (p *Periph) init() error {
	p.initOnce.Do(func() {
		if err := p.hostInit(); err != nil {
			p.initErr = fmt.Errorf("gpio host initialization failed: %w", err)
		}
	})
	return p.initErr
}

func (p *Periph) pin(number int) (gpio.PinIO, error) {
	if err := p.init(); err != nil {
		return nil, err
	}
	pin := p.byName(PinName(number))
	if pin == nil {
		return nil, fmt.Errorf("gpio %d not found", number)
	}
	return pin, nil
}

func (p *Periph) Export(number int) error {
	_, err := p.pin(number)
	return err
}

// Direction returns the direction last configured through this controller
func (p *Periph) Direction(number int) (Direction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	direction, ok := p.directions[number]
	if !ok {
		return "", fmt.Errorf("gpio %d not configured", number)
	}
	return direction, nil
}

func (p *Periph) SetDirection(number int, direction Direction) error {
	pin, err := p.pin(number)
	if err != nil {
		return err
	}

	switch direction {
	case DirectionIn:
		err = pin.In(gpio.PullNoChange, gpio.NoEdge)
	case DirectionOutLow:
		err = pin.Out(gpio.Low)
	case DirectionOutHigh:
		err = pin.Out(gpio.High)
	default:
		return fmt.Errorf("unknown gpio direction '%s'", direction)
	}
	if err != nil {
		return fmt.Errorf("set gpio %d to %s: %w", number, direction, err)
	}

	p.mu.Lock()
	p.directions[number] = direction
	p.mu.Unlock()
	return nil
}
