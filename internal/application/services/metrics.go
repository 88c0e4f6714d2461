package services

import "github.com/prometheus/client_golang/prometheus"

var webhookDeliveriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_deliveries_total",
		Help: "The total number of webhook delivery attempts by event and outcome",
	},
	[]string{"event", "outcome"},
)

func init() {
	prometheus.MustRegister(webhookDeliveriesTotal)
}

// GetWebhookDeliveriesTotal returns the delivery counter for test use
func GetWebhookDeliveriesTotal() *prometheus.CounterVec {
	return webhookDeliveriesTotal
}
