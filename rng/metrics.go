package rng

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	bytesRead     = metrics.NewCounter("portcrypt_rng_read_bytes_total")
	readFailures  = metrics.NewCounter("portcrypt_rng_read_failures_total")
	forcedReseeds = metrics.NewCounter("portcrypt_rng_forced_reseeds_total")

	_ = metrics.NewGauge("portcrypt_rng_reseeds", func() float64 {
		rngLock.Lock()
		defer rngLock.Unlock()

		if rng == nil {
			return 0
		}
		return float64(rng.ReseedCount())
	})
)

func entropyBytes(source byte) *metrics.Counter {
	return metrics.GetOrCreateCounter(fmt.Sprintf("portcrypt_rng_entropy_bytes_total{source=%q}", sourceName(source)))
}

// WriteMetrics writes the rng metrics, and the process metrics if requested,
// in Prometheus text format.
func WriteMetrics(w io.Writer, exposeProcessMetrics bool) {
	metrics.WritePrometheus(w, exposeProcessMetrics)
}
