package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/util"
)

const fanSubsystem = "fan"

type FanCollector struct {
	source     Source
	rpm        *prometheus.Desc
	percentage *prometheus.Desc
	present    *prometheus.Desc
	failed     *prometheus.Desc
}

func NewFanCollector(source Source) *FanCollector {
	return &FanCollector{
		source: source,
		rpm: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "rpm"),
			"Current RPM value of the fan",
			[]string{"id", "description"}, nil,
		),
		percentage: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "percentage"),
			"Current speed of the fan in percent of its maximum",
			[]string{"id", "description"}, nil,
		),
		present: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "present"),
			"Whether the fan is present",
			[]string{"id", "description"}, nil,
		),
		failed: prometheus.NewDesc(prometheus.BuildFQName(namespace, fanSubsystem, "failed"),
			"Whether the fan has failed",
			[]string{"id", "description"}, nil,
		),
	}
}

func (collector *FanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rpm
	ch <- collector.percentage
	ch <- collector.present
	ch <- collector.failed
}

// Collect implements required collect function for all prometheus collectors
func (collector *FanCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Latest()
	if snapshot == nil {
		return
	}
	for _, id := range util.SortedKeys(snapshot.Fans) {
		info := snapshot.Fans[id]
		labels := []string{id.String(), info.Header.Description}
		ch <- prometheus.MustNewConstMetric(collector.present, prometheus.GaugeValue, statusValue(info.Header, onlp.StatusPresent), labels...)
		ch <- prometheus.MustNewConstMetric(collector.failed, prometheus.GaugeValue, statusValue(info.Header, onlp.StatusFailed), labels...)
		if !info.Header.Status.Has(onlp.StatusPresent) {
			continue
		}
		if info.Caps.Has(onlp.FanCapsGetRpm) {
			ch <- prometheus.MustNewConstMetric(collector.rpm, prometheus.GaugeValue, float64(info.Rpm), labels...)
		}
		if info.Caps.Has(onlp.FanCapsGetPercentage) {
			ch <- prometheus.MustNewConstMetric(collector.percentage, prometheus.GaugeValue, float64(info.Percentage), labels...)
		}
	}
}
