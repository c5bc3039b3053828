package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ufispace/onlp2go/internal/inventory"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/state"
)

const (
	namespace = "onlp2go"
)

// Source provides the component state the collectors export
type Source interface {
	Latest() *inventory.Snapshot
	Thermal(id onlp.Oid) (state.ThermalStats, bool)
}

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}

// RegisterAll registers a collector for every component type
func RegisterAll(source Source) {
	Register(NewThermalCollector(source))
	Register(NewFanCollector(source))
	Register(NewPsuCollector(source))
	Register(NewSfpCollector(source))
}

func statusValue(hdr onlp.OidHeader, status onlp.Status) float64 {
	if hdr.Status.Has(status) {
		return 1
	}
	return 0
}

func boolValue(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
