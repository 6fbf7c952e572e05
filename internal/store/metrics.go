package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mutationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qlcc_store_mutations_total",
		Help: "Store mutations by entity, operation and result.",
	}, []string{"entity", "op", "result"})

	listCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qlcc_store_list_cache_hits_total",
		Help: "List requests answered from the query cache.",
	}, []string{"entity"})

	listCacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qlcc_store_list_cache_misses_total",
		Help: "List requests sent to the backend.",
	}, []string{"entity"})

	staleResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qlcc_store_stale_responses_total",
		Help: "List responses discarded because the list state changed while they were in flight.",
	}, []string{"entity"})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
