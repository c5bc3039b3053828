package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/util"
)

const psuSubsystem = "psu"

type PsuCollector struct {
	source    Source
	present   *prometheus.Desc
	powerGood *prometheus.Desc
}

func NewPsuCollector(source Source) *PsuCollector {
	return &PsuCollector{
		source: source,
		present: prometheus.NewDesc(prometheus.BuildFQName(namespace, psuSubsystem, "present"),
			"Whether the power supply is present",
			[]string{"id", "description"}, nil,
		),
		powerGood: prometheus.NewDesc(prometheus.BuildFQName(namespace, psuSubsystem, "power_good"),
			"Whether the power supply reports power good",
			[]string{"id", "description"}, nil,
		),
	}
}

func (collector *PsuCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.present
	ch <- collector.powerGood
}

// Collect implements required collect function for all prometheus collectors
func (collector *PsuCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Latest()
	if snapshot == nil {
		return
	}
	for _, id := range util.SortedKeys(snapshot.Psus) {
		info := snapshot.Psus[id]
		labels := []string{id.String(), info.Header.Description}
		ch <- prometheus.MustNewConstMetric(collector.present, prometheus.GaugeValue, statusValue(info.Header, onlp.StatusPresent), labels...)
		ch <- prometheus.MustNewConstMetric(collector.powerGood, prometheus.GaugeValue, boolValue(info.PowerGood), labels...)
	}
}
