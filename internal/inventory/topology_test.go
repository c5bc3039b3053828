package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/onlp"
)

func TestValidateTopology_Tree(t *testing.T) {
	// GIVEN
	p := &onlp.Platform{
		Thermal: &fakeThermals{
			infos: map[onlp.Oid]onlp.ThermalInfo{
				onlp.ThermalOid(1): thermal(1, onlp.OidChassis, onlp.StatusPresent),
				onlp.ThermalOid(2): thermal(2, onlp.ThermalOid(1), onlp.StatusPresent),
			},
		},
	}

	// WHEN
	err := ValidateTopology(p)

	// THEN
	assert.NoError(t, err)
}

func TestValidateParents_Cycle(t *testing.T) {
	// GIVEN
	parents := map[onlp.Oid]onlp.Oid{
		onlp.FanOid(1): onlp.PsuOid(1),
		onlp.PsuOid(1): onlp.FanOid(1),
		onlp.FanOid(2): onlp.OidChassis,
	}

	// WHEN
	err := validateParents(parents)

	// THEN
	assert.ErrorIs(t, err, ErrTopology)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidateParents_SelfAndUnknown(t *testing.T) {
	// GIVEN
	parents := map[onlp.Oid]onlp.Oid{
		onlp.FanOid(1): onlp.FanOid(1),
		onlp.FanOid(2): onlp.PsuOid(9),
	}

	// WHEN
	err := validateParents(parents)

	// THEN
	assert.ErrorIs(t, err, ErrTopology)
	assert.Contains(t, err.Error(), "own parent")
	assert.Contains(t, err.Error(), "unknown parent psu-9")
}
