package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's Prometheus metrics.
type Metrics struct {
	// Loan ledger metrics
	LoansCreated            prometheus.Counter
	RepaymentsRecorded      prometheus.Counter
	RepaymentAmount         prometheus.Histogram
	LoanTransactionsDeleted prometheus.Counter
	LoansCompleted          prometheus.Counter
	ReconcileDuration       prometheus.Histogram

	// Database metrics
	DBConnections prometheus.Gauge
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		LoansCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chamaledger_loans_created_total",
			Help: "Total number of loans issued",
		}),
		RepaymentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chamaledger_loan_repayments_total",
			Help: "Total number of loan repayments recorded",
		}),
		RepaymentAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chamaledger_loan_repayment_amount",
			Help:    "Recorded repayment amounts",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000},
		}),
		LoanTransactionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chamaledger_loan_transactions_deleted_total",
			Help: "Total number of loan repayments deleted by ledger corrections",
		}),
		LoansCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chamaledger_loans_completed_total",
			Help: "Total number of loans that reached completion",
		}),
		ReconcileDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "chamaledger_loan_reconcile_duration_seconds",
			Help:    "Duration of reconciling loan write paths",
			Buckets: prometheus.DefBuckets,
		}),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "chamaledger_db_connections",
			Help: "Current number of database connections",
		}),
	}
}
