package prometheus

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/aescanero/bevforge/internal/config"
)

// Collector exposes the loaded settings as Prometheus gauges
type Collector struct {
	info              *prometheus.GaugeVec
	heartbeatSeconds  prometheus.Gauge
	tempDeadband      prometheus.Gauge
	placeholderSecret prometheus.Gauge
}

// NewCollector creates a collector registered on reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		info: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bevforge_settings_info",
				Help: "Loaded settings, labelled by application environment",
			},
			[]string{"app_env"},
		),
		heartbeatSeconds: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bevforge_settings_heartbeat_seconds",
				Help: "Configured heartbeat interval in seconds",
			},
		),
		tempDeadband: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bevforge_settings_temp_deadband_fahrenheit",
				Help: "Configured temperature deadband in degrees Fahrenheit",
			},
		),
		placeholderSecret: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bevforge_settings_placeholder_secret",
				Help: "1 when the default placeholder secret is in use",
			},
		),
	}
}

// Observe records s, replacing any previously observed settings
func (c *Collector) Observe(s config.Settings) {
	c.info.Reset()
	c.info.WithLabelValues(s.AppEnv).Set(1)
	c.heartbeatSeconds.Set(float64(s.HeartbeatSeconds))
	c.tempDeadband.Set(float64(s.TempDeadbandF))

	if s.UsesPlaceholderSecret() {
		c.placeholderSecret.Set(1)
	} else {
		c.placeholderSecret.Set(0)
	}
}

// WriteTextfile writes everything g gathers to path in the text exposition
// format read by the node_exporter textfile collector
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
