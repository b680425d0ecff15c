// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/weather-node/internal/cycle"
	"github.com/tamzrod/weather-node/internal/health"
)

// Collector exports cycle outcomes. It owns its registry so tests and
// embedders never touch the global one.
type Collector struct {
	reg *prometheus.Registry

	cycles       prometheus.Counter
	failures     *prometheus.CounterVec
	faultBits    *prometheus.CounterVec
	measurements *prometheus.GaugeVec
	packetNum    prometheus.Gauge
	deviceInfo   prometheus.Gauge
}

// faultNames is the fixed set of health bits exported as labels.
var faultNames = []health.Bits{
	health.WriteRegInvalid,
	health.ReadRegInvalid,
	health.MeasModeInvalid,
	health.MaxResistance,
	health.HeaterFault,
	health.HeaterSupply,
}

func New(nodeID uint32) *Collector {
	labels := prometheus.Labels{"node": strconv.FormatUint(uint64(nodeID), 10)}

	c := &Collector{
		reg: prometheus.NewRegistry(),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "weather_node_cycles_total",
			Help:        "Completed acquisition/transmit cycles.",
			ConstLabels: labels,
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "weather_node_stage_failures_total",
			Help:        "Failed cycle stages (sensor reads, compensation, send).",
			ConstLabels: labels,
		}, []string{"stage"}),
		faultBits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "weather_node_fault_bits_total",
			Help:        "Cycles in which a health bit was reported.",
			ConstLabels: labels,
		}, []string{"bit"}),
		measurements: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "weather_node_measurement",
			Help:        "Last transmitted measurement (stale values repeat).",
			ConstLabels: labels,
		}, []string{"quantity"}),
		packetNum: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "weather_node_packet_number",
			Help:        "Packet number of the last transmitted packet.",
			ConstLabels: labels,
		}),
		deviceInfo: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "weather_node_deviceinfo",
			Help:        "Health bitfield of the last packet.",
			ConstLabels: labels,
		}),
	}

	c.reg.MustRegister(
		c.cycles, c.failures, c.faultBits, c.measurements, c.packetNum, c.deviceInfo,
		prometheus.NewBuildInfoCollector(),
	)
	return c
}

// ObserveCycle implements cycle.Observer.
func (c *Collector) ObserveCycle(r cycle.Report) {
	p := r.Packet

	c.cycles.Inc()
	for _, stage := range r.Failed() {
		c.failures.WithLabelValues(stage).Inc()
	}
	for _, b := range faultNames {
		if p.DeviceInfo.Has(b) {
			c.faultBits.WithLabelValues(b.String()).Inc()
		}
	}

	c.measurements.WithLabelValues("temperature_c").Set(float64(p.TempC))
	c.measurements.WithLabelValues("pressure_pa").Set(float64(p.PressPa))
	c.measurements.WithLabelValues("humidity_pct").Set(float64(p.Hum))
	c.measurements.WithLabelValues("altitude_m").Set(float64(r.Altitude))
	c.measurements.WithLabelValues("co2_ppm").Set(float64(p.CO2ppm))
	c.measurements.WithLabelValues("tvoc_ppb").Set(float64(p.TVOCppb))
	c.measurements.WithLabelValues("radiation_count").Set(float64(p.Count))

	c.packetNum.Set(float64(p.PacketNum))
	c.deviceInfo.Set(float64(p.DeviceInfo))
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

// Handler serves the registry in the exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
