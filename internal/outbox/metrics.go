package outbox

import "github.com/prometheus/client_golang/prometheus"

var messagesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "outbox_messages_total",
		Help: "Outbox messages handled, by kind and result.",
	},
	[]string{"kind", "result"},
)

func init() {
	prometheus.MustRegister(messagesTotal)
}
