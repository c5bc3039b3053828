package s9999_99x

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ufispace/onlp2go/internal/hw/sysfs"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
)

func TestAttribute_OnieSupportedWithoutIdprom(t *testing.T) {
	// GIVEN
	p := New(&platform.Env{Sysfs: sysfs.NewRoot(t.TempDir())})
	assert.NoError(t, p.Init())

	// WHEN
	_, onieErr := p.Attribute.OnieInfo(onlp.OidChassis)
	_, fanErr := p.Attribute.OnieInfo(onlp.FanOid(1))

	// THEN
	assert.True(t, p.Attribute.Supported(onlp.OidChassis, onlp.AttributeOnieInfo))
	assert.False(t, p.Attribute.Supported(onlp.FanOid(1), onlp.AttributeOnieInfo))
	assert.ErrorIs(t, onieErr, onlp.ErrMissing)
	assert.ErrorIs(t, fanErr, onlp.ErrUnsupported)
	assert.Equal(t, 1, p.Version)
}

func TestAttribute_AssetForEveryOid(t *testing.T) {
	// GIVEN
	p := New(&platform.Env{Sysfs: sysfs.NewRoot(t.TempDir())})

	// WHEN
	chassis, err1 := p.Attribute.AssetInfo(onlp.OidChassis)
	psu, err2 := p.Attribute.AssetInfo(onlp.PsuOid(1))

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, &onlp.AssetInfo{}, chassis)
	assert.Equal(t, &onlp.AssetInfo{}, psu)
	assert.True(t, p.Attribute.Supported(onlp.ThermalOid(3), onlp.AttributeAssetInfo))
}
