package complaint

import "github.com/prometheus/client_golang/prometheus"

var complaintsCreated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "complaints_created_total",
		Help: "Complaints registered, by the department they were routed to.",
	},
	[]string{"department"},
)

func init() {
	prometheus.MustRegister(complaintsCreated)
}
