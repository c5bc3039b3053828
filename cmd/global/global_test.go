package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/onlp"
)

func TestParseOid(t *testing.T) {
	tests := []struct {
		text     string
		oidType  onlp.OidType
		expected onlp.Oid
		err      bool
	}{
		{text: "3", oidType: onlp.OidTypeThermal, expected: onlp.ThermalOid(3)},
		{text: "fan-2", oidType: onlp.OidTypeFan, expected: onlp.FanOid(2)},
		{text: "fan-2", oidType: onlp.OidTypeLed, err: true},
		{text: "cpu", oidType: onlp.OidTypeThermal, err: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			// WHEN
			oid, err := ParseOid(tt.text, tt.oidType)

			// THEN
			if tt.err {
				assert.ErrorIs(t, err, onlp.ErrParam)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, oid)
			}
		})
	}
}
