package metrics

import (
	"github.com/IBM/pgxpoolprometheus"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the service registry. When a db pool is given, its
// connection stats are exported too.
func SetupPrometheus(dbPool *pgxpool.Pool, dbName string) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info, runtime metrics and process collectors.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if dbPool != nil {
		promRegistry.MustRegister(
			pgxpoolprometheus.NewCollector(dbPool, map[string]string{"db_name": dbName}),
		)
	}

	return promRegistry
}
