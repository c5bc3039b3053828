// Package s9999_99x is the reference board. It declares an onie idprom
// without a backing file and reports an empty asset for every oid.
package s9999_99x

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/platforms/common"
)

const Name = "x86-64-ufispace-s9999-99x"

type attributes struct {
	common.Attributes
}

func (a *attributes) Supported(id onlp.Oid, name string) bool {
	switch name {
	case onlp.AttributeOnieInfo:
		return id == onlp.OidChassis
	case onlp.AttributeAssetInfo:
		return true
	}
	return false
}

func (a *attributes) OnieInfo(id onlp.Oid) (*onlp.OnieInfo, error) {
	if id != onlp.OidChassis {
		return nil, fmt.Errorf("onie info of %s: %w", id, onlp.ErrUnsupported)
	}
	return nil, fmt.Errorf("onie info: no idprom: %w", onlp.ErrMissing)
}

func (a *attributes) AssetInfo(id onlp.Oid) (*onlp.AssetInfo, error) {
	return &onlp.AssetInfo{}, nil
}

func New(env *platform.Env) *onlp.Platform {
	return &onlp.Platform{
		Name:      Name,
		Version:   1,
		Attribute: &attributes{common.Attributes{Env: env}},
		Board:     &common.Board{PlatformName: Name + "-r0"},
	}
}
