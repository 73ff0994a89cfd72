package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ledger operation counters. It satisfies the usecase
// Metrics interface.
type Metrics struct {
	AccountsCreated  prometheus.Counter
	Deposits         prometheus.Counter
	Withdrawals      prometheus.Counter
	Transfers        prometheus.Counter
	InterestAccruals prometheus.Counter
}

// New creates and registers all ledger metrics against reg. Tests pass
// their own prometheus.NewRegistry to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		Deposits: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_deposits_total",
			Help: "Total number of deposits recorded",
		}),
		Withdrawals: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_withdrawals_total",
			Help: "Total number of withdrawals recorded",
		}),
		Transfers: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_transfers_total",
			Help: "Total number of transfers recorded",
		}),
		InterestAccruals: factory.NewCounter(prometheus.CounterOpts{
			Name: "minibank_interest_accruals_total",
			Help: "Total number of interest accruals recorded",
		}),
	}
}

func (m *Metrics) AccountCreated()     { m.AccountsCreated.Inc() }
func (m *Metrics) DepositRecorded()    { m.Deposits.Inc() }
func (m *Metrics) WithdrawalRecorded() { m.Withdrawals.Inc() }
func (m *Metrics) TransferRecorded()   { m.Transfers.Inc() }
func (m *Metrics) InterestAccrued()    { m.InterestAccruals.Inc() }
