package geography

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	provinceResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "province_resolutions_total",
		Help: "Province resolutions by the layer that produced the answer",
	}, []string{"source"})

	provinceLookupFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "province_lookup_failures_total",
		Help: "Persistent province lookups that errored or timed out",
	})

	provinceCacheClearsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "province_cache_clears_total",
		Help: "Explicit province cache invalidations",
	})
)

func recordResolution(source Source) {
	provinceResolutionsTotal.WithLabelValues(string(source)).Inc()
}
