// Package metrics defines all custom Prometheus metrics for the utility
// billing API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "billing"

// RegistrationsTotal counts successful registrations.
// Label:
//   - role: "ADMIN" or "CUSTOMER"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successful registrations, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CustomersCreatedTotal counts customers created by admins.
var CustomersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_created_total",
		Help:      "Total number of customers created through the admin API.",
	},
)

// CustomersDeletedTotal counts customer deletions (each cascades to bills).
var CustomersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customers_deleted_total",
		Help:      "Total number of customers deleted through the admin API.",
	},
)

// BillsGeneratedTotal counts generated bills.
var BillsGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bills_generated_total",
		Help:      "Total number of bills generated.",
	},
)

// BillAmount tracks the distribution of computed bill amounts.
var BillAmount = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "bill_amount",
		Help:      "Distribution of computed bill amounts.",
		Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	},
)
