package research

import "github.com/prometheus/client_golang/prometheus"

var (
	reportsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reports_generated_total",
		Help: "Total number of research reports generated.",
	})
	enrichmentFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "paper_enrichment_failures_total",
		Help: "Total number of per-paper AI calls that fell back to a placeholder.",
	})
)

func init() {
	prometheus.MustRegister(reportsGenerated, enrichmentFailures)
}
