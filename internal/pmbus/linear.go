package pmbus

import "math"

// Linear11 decodes a PMBus LINEAR11 word: a 5 bit two's complement exponent
// in bits 15..11 and an 11 bit mantissa in bits 10..0.
// Fractional results are truncated to 4 decimal places.
func Linear11(v uint16) float64 {
	y := int(v & 0x07FF)
	n := uint((v >> 11) & 0x0F)

	if v&0x8000 != 0 && y != 0 {
		shift := 16 - n
		divisor := 1 << shift
		whole := y / divisor
		fraction := ((y % divisor) * 10000) / divisor
		return float64(whole) + float64(fraction)/10000
	}
	return float64(y) * math.Pow(2, float64(n))
}

// MilliCelsius converts a LINEAR11 temperature reading to millidegrees,
// dropping the fractional degrees the way the PSU firmware reports them
func MilliCelsius(v uint16) int {
	return int(Linear11(v)) * 1000
}
