package pmbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinear11_PositiveExponent(t *testing.T) {
	// GIVEN
	// exponent 2, mantissa 10
	var value uint16 = 2<<11 | 10

	// WHEN
	result := Linear11(value)

	// THEN
	assert.Equal(t, 40.0, result)
}

func TestLinear11_NegativeExponent(t *testing.T) {
	// GIVEN
	// exponent -2 (0b11110), mantissa 0x5B = 91
	var value uint16 = 0x1E<<11 | 0x5B

	// WHEN
	result := Linear11(value)

	// THEN
	assert.Equal(t, 22.75, result)
}

func TestLinear11_TruncatesFraction(t *testing.T) {
	// GIVEN
	// exponent -15 (0b10001), mantissa 1 => 0.0000305...
	var value uint16 = 0x11<<11 | 1

	// WHEN
	result := Linear11(value)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestLinear11_ZeroMantissa(t *testing.T) {
	// GIVEN
	var value uint16 = 0x1E << 11

	// WHEN
	result := Linear11(value)

	// THEN
	assert.Equal(t, 0.0, result)
}

func TestMilliCelsius(t *testing.T) {
	// GIVEN
	// exponent -3 (0b11101), mantissa 0x16D = 365 => 45.625
	var value uint16 = 0x1D<<11 | 0x16D

	// WHEN
	result := MilliCelsius(value)

	// THEN
	assert.Equal(t, 45000, result)
}
