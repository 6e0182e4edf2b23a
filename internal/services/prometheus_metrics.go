package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"
)

type PrometheusMetrics struct {
	accountsCreated    *prometheus.CounterVec
	accountsClosed     prometheus.Counter
	transactionsTotal  *prometheus.CounterVec
	transactionAmounts *prometheus.HistogramVec
	dashboardAccounts  prometheus.Gauge
	dashboardBalance   prometheus.Gauge
}

func NewPrometheusMetrics() MetricsRecorderInterface {
	return &PrometheusMetrics{
		accountsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_accounts_created_total",
				Help: "Total number of accounts created by account type",
			},
			[]string{"account_type"},
		),
		accountsClosed: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "ledger_accounts_closed_total",
				Help: "Total number of accounts closed",
			},
		),
		transactionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_transactions_total",
				Help: "Total number of deposit/withdraw operations by outcome",
			},
			[]string{"kind", "status"},
		),
		transactionAmounts: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_transaction_amount",
				Help:    "Distribution of completed transaction amounts",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
			[]string{"kind"},
		),
		dashboardAccounts: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_accounts",
				Help: "Number of open accounts at last dashboard load",
			},
		),
		dashboardBalance: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "ledger_total_balance",
				Help: "Sum of balances across open accounts at last dashboard load",
			},
		),
	}
}

func (m *PrometheusMetrics) RecordAccountCreated(accountType string) {
	m.accountsCreated.WithLabelValues(accountType).Inc()
}

func (m *PrometheusMetrics) RecordAccountClosed() {
	m.accountsClosed.Inc()
}

func (m *PrometheusMetrics) RecordTransaction(kind, status string) {
	m.transactionsTotal.WithLabelValues(kind, status).Inc()
}

func (m *PrometheusMetrics) RecordTransactionAmount(kind string, amount decimal.Decimal) {
	m.transactionAmounts.WithLabelValues(kind).Observe(amount.InexactFloat64())
}

func (m *PrometheusMetrics) SetDashboardTotals(accounts int64, balance decimal.Decimal) {
	m.dashboardAccounts.Set(float64(accounts))
	m.dashboardBalance.Set(balance.InexactFloat64())
}
