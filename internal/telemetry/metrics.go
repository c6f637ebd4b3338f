package telemetry

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quokkabay"

// Outcomes recorded for results lookups.
const (
	LookupHit       = "hit"
	LookupMiss      = "miss"
	LookupRaceLost  = "race_lost"
	GenerationOK    = "success"
	GenerationEmpty = "empty_response"
	GenerationParse = "parse_error"
	GenerationError = "error"
)

var (
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	generationCounter  *prometheus.CounterVec
	generationDuration *prometheus.HistogramVec
	resultsLookups     *prometheus.CounterVec
	favoriteMutations  *prometheus.CounterVec
)

// InitMetrics registers the service collectors with reg. Calling it again with the same
// registerer reuses the collectors already registered.
func InitMetrics(reg prometheus.Registerer) error {
	var err error

	httpRequests, err = registerCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, "method", "route", "status")
	if err != nil {
		return err
	}

	httpDuration, err = registerHistogram(reg, prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, "method", "route")
	if err != nil {
		return err
	}

	generationCounter, err = registerCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_generations_total",
		Help:      "Activity generation calls by provider and outcome.",
	}, "provider", "outcome")
	if err != nil {
		return err
	}

	generationDuration, err = registerHistogram(reg, prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_generation_duration_seconds",
		Help:      "Latency of the language model call.",
		Buckets:   []float64{0.5, 1, 2, 4, 8, 15, 30, 60},
	}, "provider")
	if err != nil {
		return err
	}

	resultsLookups, err = registerCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "results_lookups_total",
		Help:      "Results requests by cache outcome.",
	}, "outcome")
	if err != nil {
		return err
	}

	favoriteMutations, err = registerCounter(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorite_mutations_total",
		Help:      "Favorite saves and removals.",
	}, "op")
	return err
}

func registerCounter(reg prometheus.Registerer, opts prometheus.CounterOpts, labels ...string) (*prometheus.CounterVec, error) {
	c := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func registerHistogram(reg prometheus.Registerer, opts prometheus.HistogramOpts, labels ...string) (*prometheus.HistogramVec, error) {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := reg.Register(h); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return h, nil
}

func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if httpRequests == nil {
		return
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordGeneration(provider, outcome string, d time.Duration) {
	if generationCounter == nil {
		return
	}
	generationCounter.WithLabelValues(provider, outcome).Inc()
	generationDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func RecordResultsLookup(outcome string) {
	if resultsLookups != nil {
		resultsLookups.WithLabelValues(outcome).Inc()
	}
}

func RecordFavoriteMutation(op string) {
	if favoriteMutations != nil {
		favoriteMutations.WithLabelValues(op).Inc()
	}
}

// MetricsHandler serves the registry in the Prometheus exposition format.
func MetricsHandler(g prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
}
