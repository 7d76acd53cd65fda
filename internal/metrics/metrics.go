package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	InstagramRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_api_requests_total",
			Help: "Calls made to the Instagram API by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	InstagramRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "instagram_api_request_duration_seconds",
			Help:    "Instagram API call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	SyncedMedia = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_synced_media_total",
			Help: "Media items upserted by the sync routine",
		},
		[]string{"outcome"},
	)

	TokenRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "instagram_token_refreshes_total",
			Help: "Long-lived token refresh attempts",
		},
		[]string{"outcome"},
	)

	PolicyDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tier_policy_denials_total",
			Help: "Requests denied by the tier policy",
		},
		[]string{"feature"},
	)

	AIGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_generations_total",
			Help: "Text generation calls by feature and outcome",
		},
		[]string{"feature", "outcome"},
	)
)

func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
