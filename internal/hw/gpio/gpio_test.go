package gpio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func newTestPeriph(pins ...*gpiotest.Pin) (*Periph, map[string]int) {
	registry := map[string]*gpiotest.Pin{}
	for _, pin := range pins {
		registry[pin.N] = pin
	}
	lookups := map[string]int{}
	p := &Periph{
		hostInit: func() error { return nil },
		byName: func(name string) gpio.PinIO {
			lookups[name]++
			pin, ok := registry[name]
			if !ok {
				return nil
			}
			return pin
		},
		directions: map[int]Direction{},
	}
	return p, lookups
}

func TestPinName(t *testing.T) {
	assert.Equal(t, "GPIO336", PinName(336))
}

func TestPeriph_SetDirection(t *testing.T) {
	// GIVEN
	low := &gpiotest.Pin{N: "GPIO340", Num: 340, L: gpio.High}
	high := &gpiotest.Pin{N: "GPIO341", Num: 341}
	input := &gpiotest.Pin{N: "GPIO342", Num: 342}
	p, lookups := newTestPeriph(low, high, input)

	// WHEN
	err1 := p.SetDirection(340, DirectionOutLow)
	err2 := p.SetDirection(341, DirectionOutHigh)
	err3 := p.SetDirection(342, DirectionIn)

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.Equal(t, gpio.Low, low.L)
	assert.Equal(t, gpio.High, high.L)
	assert.Equal(t, 1, lookups["GPIO340"])
	direction, err := p.Direction(341)
	assert.NoError(t, err)
	assert.Equal(t, DirectionOutHigh, direction)
}

func TestPeriph_UnknownPin(t *testing.T) {
	// GIVEN
	p, _ := newTestPeriph()

	// WHEN
	exportErr := p.Export(400)
	_, directionErr := p.Direction(400)

	// THEN
	assert.EqualError(t, exportErr, "gpio 400 not found")
	assert.Error(t, directionErr)
}

func TestPeriph_InvalidDirection(t *testing.T) {
	// GIVEN
	p, _ := newTestPeriph(&gpiotest.Pin{N: "GPIO336", Num: 336})

	// WHEN
	err := p.SetDirection(336, Direction("sideways"))

	// THEN
	assert.Error(t, err)
	_, directionErr := p.Direction(336)
	assert.Error(t, directionErr)
}

func TestPeriph_HostInitFailure(t *testing.T) {
	// GIVEN
	p, _ := newTestPeriph()
	p.hostInit = func() error { return errors.New("no sysfs gpio") }

	// WHEN
	err := p.SetDirection(336, DirectionIn)

	// THEN
	assert.ErrorContains(t, err, "gpio host initialization failed")
}
