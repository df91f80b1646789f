package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RestaurantViews counts restaurant detail-page views. It moves in lockstep
// with the view_counts column but survives as a rate for dashboards.
var RestaurantViews = promauto.NewCounter(prometheus.CounterOpts{
	Name: "forkful_restaurant_views_total",
	Help: "Total number of restaurant detail views.",
})

// RedisErrors counts failed Redis commands by command name.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "forkful_redis_errors_total",
	Help: "Total number of Redis command errors.",
}, []string{"command"})
