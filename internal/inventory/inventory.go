package inventory

import (
	"fmt"
	"time"

	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

const unsupported = "unsupported"

// Snapshot is the state of all components of a board at one point in time
type Snapshot struct {
	Platform string    `json:"platform" yaml:"platform"`
	Time     time.Time `json:"time" yaml:"time"`

	Headers  map[onlp.Oid]onlp.OidHeader   `json:"headers" yaml:"headers"`
	Thermals map[onlp.Oid]onlp.ThermalInfo `json:"thermals,omitempty" yaml:"thermals,omitempty"`
	Fans     map[onlp.Oid]onlp.FanInfo     `json:"fans,omitempty" yaml:"fans,omitempty"`
	Leds     map[onlp.Oid]onlp.LedInfo     `json:"leds,omitempty" yaml:"leds,omitempty"`
	Psus     map[onlp.Oid]onlp.PsuInfo     `json:"psus,omitempty" yaml:"psus,omitempty"`

	SfpPorts   []int `json:"sfpPorts,omitempty" yaml:"sfpPorts,omitempty"`
	SfpPresent []int `json:"sfpPresent,omitempty" yaml:"sfpPresent,omitempty"`
	SfpRxLos   []int `json:"sfpRxLos,omitempty" yaml:"sfpRxLos,omitempty"`

	Onie  *onlp.OnieInfo  `json:"onie,omitempty" yaml:"onie,omitempty"`
	Asset *onlp.AssetInfo `json:"asset,omitempty" yaml:"asset,omitempty"`

	// Errors holds the reason why an oid could not be read
	Errors map[onlp.Oid]string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newSnapshot(name string) *Snapshot {
	return &Snapshot{
		Platform: name,
		Time:     time.Now(),
		Headers:  map[onlp.Oid]onlp.OidHeader{},
		Thermals: map[onlp.Oid]onlp.ThermalInfo{},
		Fans:     map[onlp.Oid]onlp.FanInfo{},
		Leds:     map[onlp.Oid]onlp.LedInfo{},
		Psus:     map[onlp.Oid]onlp.PsuInfo{},
		Errors:   map[onlp.Oid]string{},
	}
}

func (s *Snapshot) recordError(id onlp.Oid, err error) {
	if onlp.IsUnsupported(err) {
		s.Errors[id] = unsupported
		return
	}
	ui.Debug("Unable to read %s: %v", id, err)
	s.Errors[id] = err.Error()
}

// Oids returns all oids with a header, sorted by type and id
func (s *Snapshot) Oids() []onlp.Oid {
	return util.SortedKeys(s.Headers)
}

// Collect initializes all drivers of p and reads every component.
// A component that cannot be read is recorded in Errors.
func Collect(p *onlp.Platform) (*Snapshot, error) {
	if err := p.Init(); err != nil {
		return nil, fmt.Errorf("init %s: %w", p.Name, err)
	}

	s := newSnapshot(p.Name)
	if p.Thermal != nil {
		for _, id := range p.Thermal.Ids() {
			info, err := p.Thermal.Info(id)
			if err != nil {
				s.recordError(id, err)
				continue
			}
			s.Headers[id] = info.Header
			s.Thermals[id] = info
		}
	}
	if p.Fan != nil {
		for _, id := range p.Fan.Ids() {
			info, err := p.Fan.Info(id)
			if err != nil {
				s.recordError(id, err)
				continue
			}
			s.Headers[id] = info.Header
			s.Fans[id] = info
		}
	}
	if p.Led != nil {
		for _, id := range p.Led.Ids() {
			info, err := p.Led.Info(id)
			if err != nil {
				s.recordError(id, err)
				continue
			}
			s.Headers[id] = info.Header
			s.Leds[id] = info
		}
	}
	if p.Psu != nil {
		for _, id := range p.Psu.Ids() {
			info, err := p.Psu.Info(id)
			if err != nil {
				s.recordError(id, err)
				continue
			}
			s.Headers[id] = info.Header
			s.Psus[id] = info
		}
	}

	if p.Sfp != nil {
		if ports, err := p.Sfp.Bitmap(); err == nil {
			s.SfpPorts = ports.Ports()
		} else {
			ui.Warning("Unable to read sfp ports: %v", err)
		}
		if present, err := p.Sfp.PresenceBitmap(); err == nil {
			s.SfpPresent = present.Ports()
		} else {
			ui.Warning("Unable to read sfp presence: %v", err)
		}
		if rxLos, err := p.Sfp.RxLosBitmap(); err == nil {
			s.SfpRxLos = rxLos.Ports()
		} else {
			ui.Warning("Unable to read sfp rx los: %v", err)
		}
	}

	if p.Attribute != nil {
		if p.Attribute.Supported(onlp.OidChassis, onlp.AttributeOnieInfo) {
			if info, err := p.Attribute.OnieInfo(onlp.OidChassis); err == nil {
				s.Onie = info
			} else {
				s.recordError(onlp.OidChassis, err)
			}
		}
		if p.Attribute.Supported(onlp.OidChassis, onlp.AttributeAssetInfo) {
			if asset, err := p.Attribute.AssetInfo(onlp.OidChassis); err == nil {
				s.Asset = asset
			} else {
				s.recordError(onlp.OidChassis, err)
			}
		}
	}
	return s, nil
}

// StatusChange is a component whose status differs between two snapshots
type StatusChange struct {
	Id          onlp.Oid    `json:"id"`
	Description string      `json:"description"`
	Old         onlp.Status `json:"old"`
	New         onlp.Status `json:"new"`
	Time        time.Time   `json:"time"`
}

func (c StatusChange) String() string {
	return fmt.Sprintf("%s (%s): %s -> %s", c.Id, c.Description, c.Old, c.New)
}

// Diff returns the status changes since old. Components that appeared
// or vanished are reported with a zero status on the missing side.
func (s *Snapshot) Diff(old *Snapshot) []StatusChange {
	if old == nil {
		return nil
	}
	var result []StatusChange
	for _, id := range s.Oids() {
		current := s.Headers[id]
		previous, ok := old.Headers[id]
		if ok && previous.Status == current.Status {
			continue
		}
		// the last known state of a component that was unreadable is unknown
		if _, failed := old.Errors[id]; failed && !ok {
			continue
		}
		result = append(result, StatusChange{
			Id:          id,
			Description: current.Description,
			Old:         previous.Status,
			New:         current.Status,
			Time:        s.Time,
		})
	}
	for _, id := range old.Oids() {
		if _, ok := s.Headers[id]; ok {
			continue
		}
		// an unreadable component keeps its last known state
		if _, failed := s.Errors[id]; failed {
			continue
		}
		previous := old.Headers[id]
		result = append(result, StatusChange{
			Id:          id,
			Description: previous.Description,
			Old:         previous.Status,
			Time:        s.Time,
		})
	}
	return result
}

// IsUnsupported reports whether the oid was skipped because the board does not implement it
func (s *Snapshot) IsUnsupported(id onlp.Oid) bool {
	return s.Errors[id] == unsupported
}
