package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	AchievementUnlockedTotal   = "achievement_unlocked_total"
	CatalogRequestTotal        = "catalog_requests_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "status_code"}),
		AchievementUnlockedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: AchievementUnlockedTotal,
			Help: "Count of unlocked achievements",
		}, []string{"achievement"}),
		CatalogRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: CatalogRequestTotal,
			Help: "Count of game catalog lookups by source",
		}, []string{"source"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "status_code"}),
	}
)
