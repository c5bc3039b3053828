package internal

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ufispace/onlp2go/internal/configuration"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/persistence"
	"github.com/ufispace/onlp2go/internal/state"
	"github.com/ufispace/onlp2go/internal/ui"
	"github.com/ufispace/onlp2go/internal/util"
)

// SnapshotPublisher forwards every collected snapshot to an external consumer
type SnapshotPublisher interface {
	Publish(snapshot *inventory.Snapshot, changes []inventory.StatusChange) error
}

type PlatformMonitor struct {
	platform    *onlp.Platform
	state       *state.State
	persistence persistence.Persistence
	publisher   SnapshotPublisher

	pollingRate   time.Duration
	persistEvents bool
	overrides     map[onlp.Oid]configuration.ThermalThresholdConfig

	last   *inventory.Snapshot
	levels map[onlp.Oid]string

	// warn and alert log and send a desktop or terminal notification
	warn  func(title string, format string, a ...interface{})
	alert func(title string, format string, a ...interface{})
}

func NewPlatformMonitor(
	p *onlp.Platform,
	st *state.State,
	pers persistence.Persistence,
	publisher SnapshotPublisher,
	config *configuration.Configuration,
) *PlatformMonitor {
	return &PlatformMonitor{
		platform:      p,
		state:         st,
		persistence:   pers,
		publisher:     publisher,
		pollingRate:   config.PollingRate,
		persistEvents: config.PersistEvents.Get(),
		overrides:     config.ThresholdOverrides(),
		levels:        map[onlp.Oid]string{},
		warn:          ui.WarningAndNotify,
		alert:         ui.ErrorAndNotify,
	}
}

// Run polls the platform until ctx is cancelled. Only a failure of the first
// poll is returned, later failures are logged.
func (m *PlatformMonitor) Run(ctx context.Context) error {
	if err := m.Poll(); err != nil {
		return err
	}

	tick := time.NewTicker(m.pollingRate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
			if err := m.Poll(); err != nil {
				ui.Error("Error polling platform %s: %v", m.platform.Name, err)
			}
		}
	}
}

// Poll collects a snapshot and distributes it
func (m *PlatformMonitor) Poll() error {
	snapshot, err := inventory.Collect(m.platform)
	if err != nil {
		return err
	}
	m.applyThresholds(snapshot)

	if m.last == nil {
		m.last = m.loadLast(snapshot.Platform)
	}
	changes := snapshot.Diff(m.last)
	for _, change := range changes {
		m.reportChange(change)
	}
	m.reportLevels(snapshot)

	m.state.Update(snapshot)
	m.store(snapshot, changes)
	if m.publisher != nil {
		if err := m.publisher.Publish(snapshot, changes); err != nil {
			ui.Warning("Unable to publish state: %v", err)
		}
	}

	m.last = snapshot
	return nil
}

func (m *PlatformMonitor) applyThresholds(snapshot *inventory.Snapshot) {
	for id, override := range m.overrides {
		info, ok := snapshot.Thermals[id]
		if !ok {
			continue
		}
		info.Thresholds = override.Apply(info.Thresholds)
		snapshot.Thermals[id] = info
	}
}

// loadLast returns the snapshot persisted by a previous run, so status
// changes while the daemon was down are reported too
func (m *PlatformMonitor) loadLast(platform string) *inventory.Snapshot {
	if m.persistence == nil {
		return nil
	}
	last, err := m.persistence.LoadSnapshot(platform)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ui.Warning("Unable to load last snapshot of %s: %v", platform, err)
		}
		return nil
	}
	return last
}

func (m *PlatformMonitor) store(snapshot *inventory.Snapshot, changes []inventory.StatusChange) {
	if m.persistence == nil {
		return
	}
	if err := m.persistence.SaveSnapshot(snapshot); err != nil {
		ui.Warning("Unable to save snapshot: %v", err)
	}
	if m.persistEvents && len(changes) > 0 {
		if err := m.persistence.AppendEvents(snapshot.Platform, changes); err != nil {
			ui.Warning("Unable to save status changes: %v", err)
		}
	}
}

func (m *PlatformMonitor) reportChange(change inventory.StatusChange) {
	lost := change.Old.Has(onlp.StatusPresent) && !change.New.Has(onlp.StatusPresent)
	failed := !change.Old.Has(onlp.StatusFailed) && change.New.Has(onlp.StatusFailed)
	if lost || failed {
		m.warn("Component Status", "%s", change)
		return
	}
	ui.Info("%s", change)
}

// reportLevels logs every thermal whose threshold level changed
func (m *PlatformMonitor) reportLevels(snapshot *inventory.Snapshot) {
	for _, id := range util.SortedKeys(snapshot.Thermals) {
		info := snapshot.Thermals[id]
		level := info.Level()
		if level == m.levels[id] {
			continue
		}
		m.levels[id] = level
		switch level {
		case "":
			ui.Info("%s (%s) is back to normal at %.1f°C", id, info.Header.Description, info.Celsius())
		case "warning":
			ui.Warning("%s (%s) reached its warning threshold at %.1f°C", id, info.Header.Description, info.Celsius())
		default:
			m.alert("Thermal Threshold", "%s (%s) reached its %s threshold at %.1f°C",
				id, info.Header.Description, level, info.Celsius())
		}
	}
}
