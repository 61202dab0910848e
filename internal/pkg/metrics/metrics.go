package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Checkout outcomes used as the "result" label.
const (
	ResultPlaced        = "placed"
	ResultEmptyCart     = "empty_cart"
	ResultStockRejected = "stock_rejected"
	ResultError         = "error"
)

// ShopMetrics is registered on its own registry; nothing is served over
// HTTP. WriteTextfile dumps it for the node exporter textfile collector.
type ShopMetrics struct {
	registry      *prometheus.Registry
	Checkouts     *prometheus.CounterVec
	OrderValue    prometheus.Histogram
	StatusChanges *prometheus.CounterVec
}

func New(service string) *ShopMetrics {
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})
	value := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "order_value",
		Help:      "Total of placed orders in store currency.",
		Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	})
	status := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "order_status_changes_total",
		Help:      "Order status assignments by target status.",
	}, []string{"status"})

	reg := prometheus.NewRegistry()
	reg.MustRegister(checkouts, value, status)
	return &ShopMetrics{
		registry:      reg,
		Checkouts:     checkouts,
		OrderValue:    value,
		StatusChanges: status,
	}
}

func (m *ShopMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in the text exposition format.
func (m *ShopMetrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
