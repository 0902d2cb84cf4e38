package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// DonationIntentTotal counts donation intent creation attempts.
	DonationIntentTotal *prometheus.CounterVec
	// DonationWebhookTotal counts inbound provider webhook processing outcomes.
	DonationWebhookTotal *prometheus.CounterVec
	// ContactMessagesTotal counts contact form relay outcomes.
	ContactMessagesTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		DonationIntentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donation_intent_total",
			Help:      "Count of donation intent processing outcomes.",
		}, []string{"provider", "currency", "result"})
		DonationWebhookTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "donation_webhook_total",
			Help:      "Count of processed provider webhooks by outcome.",
		}, []string{"event", "result"})
		ContactMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contact_messages_total",
			Help:      "Count of contact form relay outcomes.",
		}, []string{"result"})

		for _, collector := range []prometheus.Collector{DonationIntentTotal, DonationWebhookTotal, ContactMessagesTotal} {
			if err := reg.Register(collector); err != nil {
				if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
					panic(err)
				}
			}
		}
	})
}
