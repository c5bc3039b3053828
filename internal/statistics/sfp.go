package statistics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/exp/slices"
)

const sfpSubsystem = "sfp"

type SfpCollector struct {
	source  Source
	present *prometheus.Desc
	rxLos   *prometheus.Desc
}

func NewSfpCollector(source Source) *SfpCollector {
	return &SfpCollector{
		source: source,
		present: prometheus.NewDesc(prometheus.BuildFQName(namespace, sfpSubsystem, "present"),
			"Whether a transceiver is plugged into the port",
			[]string{"port"}, nil,
		),
		rxLos: prometheus.NewDesc(prometheus.BuildFQName(namespace, sfpSubsystem, "rx_los"),
			"Whether the transceiver reports loss of signal",
			[]string{"port"}, nil,
		),
	}
}

func (collector *SfpCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.present
	ch <- collector.rxLos
}

// Collect implements required collect function for all prometheus collectors
func (collector *SfpCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Latest()
	if snapshot == nil {
		return
	}
	for _, port := range snapshot.SfpPorts {
		label := strconv.Itoa(port)
		ch <- prometheus.MustNewConstMetric(collector.present, prometheus.GaugeValue,
			boolValue(slices.Contains(snapshot.SfpPresent, port)), label)
		ch <- prometheus.MustNewConstMetric(collector.rxLos, prometheus.GaugeValue,
			boolValue(slices.Contains(snapshot.SfpRxLos, port)), label)
	}
}
