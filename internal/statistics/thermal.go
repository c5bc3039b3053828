package statistics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/util"
)

const subsystemThermal = "thermal"

type ThermalCollector struct {
	source Source

	celsius   *prometheus.Desc
	average   *prometheus.Desc
	max       *prometheus.Desc
	threshold *prometheus.Desc
}

func NewThermalCollector(source Source) *ThermalCollector {
	return &ThermalCollector{
		source: source,
		celsius: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "celsius"),
			"Current temperature of the thermal sensor",
			[]string{"id", "description"}, nil,
		),
		average: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "average_celsius"),
			"Average temperature of the thermal sensor over the rolling window",
			[]string{"id", "description"}, nil,
		),
		max: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "max_celsius"),
			"Highest temperature of the thermal sensor over the rolling window",
			[]string{"id", "description"}, nil,
		),
		threshold: prometheus.NewDesc(prometheus.BuildFQName(namespace, subsystemThermal, "threshold_celsius"),
			"Temperature thresholds of the thermal sensor",
			[]string{"id", "description", "level"}, nil,
		),
	}
}

func (collector *ThermalCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.celsius
	ch <- collector.average
	ch <- collector.max
	ch <- collector.threshold
}

// Collect implements required collect function for all prometheus collectors
func (collector *ThermalCollector) Collect(ch chan<- prometheus.Metric) {
	snapshot := collector.source.Latest()
	if snapshot == nil {
		return
	}
	for _, id := range util.SortedKeys(snapshot.Thermals) {
		info := snapshot.Thermals[id]
		if !info.Header.Status.Has(onlp.StatusPresent) || !info.Caps.Has(onlp.ThermalCapsGetTemperature) {
			continue
		}
		labels := []string{id.String(), info.Header.Description}
		ch <- prometheus.MustNewConstMetric(collector.celsius, prometheus.GaugeValue, info.Celsius(), labels...)

		if stats, ok := collector.source.Thermal(id); ok {
			ch <- prometheus.MustNewConstMetric(collector.average, prometheus.GaugeValue, stats.Average, labels...)
			ch <- prometheus.MustNewConstMetric(collector.max, prometheus.GaugeValue, stats.Max, labels...)
		}

		thresholds := []struct {
			caps  onlp.ThermalCaps
			level string
			value int
		}{
			{onlp.ThermalCapsGetWarningThreshold, "warning", info.Thresholds.Warning},
			{onlp.ThermalCapsGetErrorThreshold, "error", info.Thresholds.Error},
			{onlp.ThermalCapsGetShutdownThreshold, "shutdown", info.Thresholds.Shutdown},
		}
		for _, t := range thresholds {
			if !info.Caps.Has(t.caps) {
				continue
			}
			ch <- prometheus.MustNewConstMetric(collector.threshold, prometheus.GaugeValue,
				float64(t.value)/1000, id.String(), info.Header.Description, t.level)
		}
	}
}
