package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Domain events
	UsersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "users_created_total",
			Help: "Total users registered",
		},
	)
	FilmsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "films_created_total",
			Help: "Total films registered",
		},
	)
	LikesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "likes_total",
			Help: "Total like mutations",
		},
		[]string{"action"}, // like|unlike
	)
	FriendEdgesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "friend_edges_total",
			Help: "Total friendship edge mutations",
		},
		[]string{"action"}, // add|remove
	)

	// Popularity cache
	CacheFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "popularity_cache_fallbacks_total",
			Help: "Popular-films reads that fell back to the storage tier",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(UsersCreatedTotal)
	prometheus.MustRegister(FilmsCreatedTotal)
	prometheus.MustRegister(LikesTotal)
	prometheus.MustRegister(FriendEdgesTotal)
	prometheus.MustRegister(CacheFallbacksTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
