package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var operationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "catalog_operations_total",
		Help: "Number of catalog state transitions by operation.",
	},
	[]string{"op"},
)
