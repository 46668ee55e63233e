package ubx

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts decode outcomes and epoch sizes for external scraping.
// Grounded on other_examples's septentrino-exporter (a GNSS-receiver
// Prometheus exporter) for the choice of prometheus/client_golang as the
// metrics library; the counter/histogram shape is this core's own, since
// the exporter instruments a running receiver, not a decoder library.
//
// A nil *Metrics is valid everywhere it is used: every method has a
// nil-receiver guard, so a Decoder built without metrics behaves exactly
// like the bare core.
type Metrics struct {
	frames   *prometheus.CounterVec
	numMeas  prometheus.Histogram
}

// NewMetrics registers a fresh Metrics set against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ubx_decode_frames_total",
			Help: "UBX frames decoded, by outcome.",
		}, []string{"outcome"}),
		numMeas: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ubx_decode_epoch_measurements",
			Help:    "Number of satellites carried in one decoded observation epoch.",
			Buckets: prometheus.LinearBuckets(0, 4, 16),
		}),
	}
	reg.MustRegister(m.frames, m.numMeas)
	return m
}

func (m *Metrics) inc(outcome string) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues(outcome).Inc()
}

func (m *Metrics) incError()  { m.inc("error") }
func (m *Metrics) incSilent() { m.inc("silent") }
func (m *Metrics) incObs(nsat int) {
	if m == nil {
		return
	}
	m.frames.WithLabelValues("observation").Inc()
	m.numMeas.Observe(float64(nsat))
}
func (m *Metrics) incEph()   { m.inc("ephemeris") }
func (m *Metrics) incSBAS()  { m.inc("sbas") }
func (m *Metrics) incIonUtc() { m.inc("ionutc") }
