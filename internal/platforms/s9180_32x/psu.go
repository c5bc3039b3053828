package s9180_32x

import (
	"fmt"

	"github.com/ufispace/onlp2go/internal/onlp"
)

var psuTable = []onlp.PsuInfo{
	{},
	{Header: onlp.OidHeader{Id: onlp.PsuOid(psu1), Description: "PSU 1", Parent: onlp.OidChassis}},
	{Header: onlp.OidHeader{Id: onlp.PsuOid(psu2), Description: "PSU 2", Parent: onlp.OidChassis}},
}

type psus struct {
	onlp.Base
	board *board
}

func (p *psus) SwInit() error {
	return p.Init(func() error {
		p.board.bmc()
		return nil
	})
}

func (p *psus) Ids() []onlp.Oid {
	return onlp.RangeIds(onlp.OidTypePsu, psu1, psu2)
}

func (p *psus) Validate(id onlp.Oid) error {
	return onlp.ValidateRange(id, onlp.OidTypePsu, psu1, psu2)
}

func (p *psus) Caps(id onlp.Oid) (onlp.PsuCaps, error) {
	if err := p.Validate(id); err != nil {
		return 0, err
	}
	return psuTable[id.Id()].Caps, nil
}

func (p *psus) Header(id onlp.Oid) (onlp.OidHeader, error) {
	info, err := p.Info(id)
	return info.Header, err
}

func (p *psus) Info(id onlp.Oid) (onlp.PsuInfo, error) {
	if err := p.Validate(id); err != nil {
		return onlp.PsuInfo{}, err
	}
	local := id.Id()
	info := psuTable[local]
	err := p.Do(func() error {
		present, err := p.board.psuPresent(local)
		if err != nil {
			return err
		}
		if !present {
			info.Header.Status = onlp.StatusUnplugged
			return nil
		}
		info.Header.Status = onlp.StatusPresent

		info.PowerGood, err = p.board.psuPowerGood(local)
		if err != nil {
			return fmt.Errorf("psu %d power good: %w", local, err)
		}
		if info.PowerGood {
			info.Header.Status.Set(onlp.StatusOperational)
		} else {
			info.Header.Status.Set(onlp.StatusFailed)
		}
		return nil
	})
	return info, err
}
