package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pipeline counts the outcomes of the checkout-to-fulfillment pipeline.
// All methods are nil-safe so callers can run without metrics wired.
type Pipeline struct {
	CheckoutSessions *prometheus.CounterVec
	WebhookEvents    *prometheus.CounterVec
	EmailSends       *prometheus.CounterVec
}

func NewPipeline() *Pipeline {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myplug",
		Name:      "checkout_sessions_total",
		Help:      "Checkout session attempts by outcome.",
	}, []string{"status"})
	webhooks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myplug",
		Name:      "webhook_events_total",
		Help:      "Payment webhook deliveries by outcome.",
	}, []string{"result"})
	emails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "myplug",
		Name:      "email_sends_total",
		Help:      "Receipt email dispatch attempts by outcome.",
	}, []string{"status"})

	prometheus.MustRegister(checkouts, webhooks, emails)
	return &Pipeline{CheckoutSessions: checkouts, WebhookEvents: webhooks, EmailSends: emails}
}

func (p *Pipeline) Checkout(status string) {
	if p == nil {
		return
	}
	p.CheckoutSessions.WithLabelValues(status).Inc()
}

func (p *Pipeline) Webhook(result string) {
	if p == nil {
		return
	}
	p.WebhookEvents.WithLabelValues(result).Inc()
}

func (p *Pipeline) Email(status string) {
	if p == nil {
		return
	}
	p.EmailSends.WithLabelValues(status).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
