package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	FanoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notifier_fanout_duration_seconds",
			Help:    "Duration of each job-alert fan-out pass in seconds.",
			Buckets: []float64{0.01, 0.05, 0.25, 1, 5, 30},
		},
	)
	NotificationsCreatedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_notifications_created_total",
			Help: "Total number of notification records created.",
		},
		[]string{"type"},
	)
	FanoutFailuresCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_fanout_failures_total",
			Help: "Total number of per-recipient failures during fan-out.",
		},
	)
	MatchedAlertsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifier_alerts_matched_total",
			Help: "Total number of alert matches against incoming postings.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(FanoutDuration)
	prometheus.MustRegister(NotificationsCreatedCounter)
	prometheus.MustRegister(FanoutFailuresCounter)
	prometheus.MustRegister(MatchedAlertsCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
