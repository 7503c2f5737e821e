package monitoring

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TurnsTotal counts completed conversation turns by classified intent
var TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "assistant_turns_total",
	Help: "Completed conversation turns by classified intent",
}, []string{"intent"})

// PersistFailuresTotal counts conversation messages that failed to persist
var PersistFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "assistant_persist_failures_total",
	Help: "Conversation messages dropped by the persistence queue",
})

// VocabularyFallbacksTotal counts sessions that started on the default
// place-type vocabulary because the refresh failed or returned nothing
var VocabularyFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "assistant_vocabulary_fallbacks_total",
	Help: "Sessions seeded with the default place-type vocabulary",
})

// Handler exposes the Prometheus metrics endpoint on a gin router
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
