package common

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onie"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/platform"
	"github.com/ufispace/onlp2go/internal/ui"
)

// Attributes implements the chassis attribute callbacks shared by all boards.
// Boards provide the idprom path and the board specific asset fields.
type Attributes struct {
	onlp.Guard

	Env        *platform.Env
	IdpromPath string
	// Asset fills the firmware and cpld revisions of the chassis
	Asset func(asset *onlp.AssetInfo) error
	// OnInit runs once during SwInit
	OnInit func() error
}

func (a *Attributes) SwInit() error {
	return a.Init(func() error {
		if a.OnInit != nil {
			return a.OnInit()
		}
		return nil
	})
}

func (a *Attributes) Denit() error {
	return nil
}

func (a *Attributes) Supported(id onlp.Oid, name string) bool {
	if id != onlp.OidChassis {
		return false
	}
	switch name {
	case onlp.AttributeOnieInfo:
		return len(a.IdpromPath) > 0
	case onlp.AttributeAssetInfo:
		return true
	}
	return false
}

func (a *Attributes) OnieInfo(id onlp.Oid) (*onlp.OnieInfo, error) {
	if id != onlp.OidChassis {
		return nil, fmt.Errorf("onie info of %s: %w", id, onlp.ErrUnsupported)
	}
	if len(a.IdpromPath) <= 0 {
		return nil, fmt.Errorf("onie info: no idprom: %w", onlp.ErrUnsupported)
	}
	var info *onlp.OnieInfo
	err := a.Do(func() (err error) {
		info, err = onie.DecodeFile(a.Env.Sysfs, a.IdpromPath)
		return err
	})
	if err != nil {
		ui.Debug("Unable to decode idprom %s: %v", a.IdpromPath, err)
		return nil, err
	}
	return info, nil
}

func (a *Attributes) AssetInfo(id onlp.Oid) (*onlp.AssetInfo, error) {
	if id != onlp.OidChassis {
		return nil, fmt.Errorf("asset info of %s: %w", id, onlp.ErrUnsupported)
	}

	asset := &onlp.AssetInfo{}
	if a.Asset != nil {
		if err := a.Do(func() error { return a.Asset(asset) }); err != nil {
			return nil, err
		}
	}

	if len(a.IdpromPath) <= 0 {
		return asset, nil
	}
	// asset info is still reported when the idprom cannot be decoded
	info, err := a.OnieInfo(id)
	if err != nil {
		ui.Warning("Unable to read onie info for asset: %v", err)
		return asset, nil
	}
	CopyOnie(asset, info)
	return asset, nil
}

// CopyOnie copies the manufacturing fields of the idprom into asset
func CopyOnie(asset *onlp.AssetInfo, info *onlp.OnieInfo) {
	asset.Manufacturer = info.Manufacturer
	asset.PartNumber = info.PartNumber
	asset.SerialNumber = info.SerialNumber
	asset.ManufactureDate = info.ManufactureDate
}
