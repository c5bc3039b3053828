package state

import (
	"sync"

	"github.com/asecurityteam/rolling"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/util"
)

// ThermalStats are the recent temperatures of a sensor in degrees celsius
type ThermalStats struct {
	Current float64 `json:"current"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
}

// State is the last known state of all components, shared by the poller and
// the exporters
type State struct {
	windowSize int

	mu     sync.RWMutex
	latest *inventory.Snapshot

	Headers cmap.ConcurrentMap[string, onlp.OidHeader]
	windows cmap.ConcurrentMap[string, *rolling.PointPolicy]
}

func New(windowSize int) *State {
	if windowSize <= 0 {
		windowSize = 1
	}
	return &State{
		windowSize: windowSize,
		Headers:    cmap.New[onlp.OidHeader](),
		windows:    cmap.New[*rolling.PointPolicy](),
	}
}

// Update replaces the state with snapshot and records the temperature of
// every present thermal in its rolling window. Components missing from
// snapshot are forgotten.
func (s *State) Update(snapshot *inventory.Snapshot) {
	s.mu.Lock()
	s.latest = snapshot
	s.mu.Unlock()

	current := map[string]bool{}
	for id, hdr := range snapshot.Headers {
		current[id.String()] = true
		s.Headers.Set(id.String(), hdr)
	}
	for _, key := range s.Headers.Keys() {
		if !current[key] {
			s.Headers.Remove(key)
		}
	}
	for id := range snapshot.Errors {
		current[id.String()] = true
	}
	for _, key := range s.windows.Keys() {
		if !current[key] {
			s.windows.Remove(key)
		}
	}
	for id, info := range snapshot.Thermals {
		if !info.Header.Status.Has(onlp.StatusPresent) || !info.Caps.Has(onlp.ThermalCapsGetTemperature) {
			continue
		}
		window := s.windows.Upsert(id.String(), nil, func(exist bool, current *rolling.PointPolicy, _ *rolling.PointPolicy) *rolling.PointPolicy {
			if exist {
				return current
			}
			return util.CreateRollingWindow(s.windowSize)
		})
		window.Append(info.Celsius())
	}
}

// Latest returns the last collected snapshot, nil before the first poll
func (s *State) Latest() *inventory.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *State) Header(id onlp.Oid) (onlp.OidHeader, bool) {
	return s.Headers.Get(id.String())
}

// Thermal returns the windowed temperatures of a thermal
func (s *State) Thermal(id onlp.Oid) (ThermalStats, bool) {
	latest := s.Latest()
	window, ok := s.windows.Get(id.String())
	if !ok || latest == nil {
		return ThermalStats{}, false
	}
	info, ok := latest.Thermals[id]
	if !ok {
		return ThermalStats{}, false
	}
	return ThermalStats{
		Current: info.Celsius(),
		Average: util.GetWindowAvg(window),
		Max:     util.GetWindowMax(window),
	}, true
}
