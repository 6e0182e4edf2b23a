package services

import (
	"probank/internal/models"

	"github.com/shopspring/decimal"
)

// Summary aggregates the dashboard totals over every account
type Summary struct {
	TotalAccounts int64
	TotalBalance  decimal.Decimal
}

// CreateAccountParams carries the caller-supplied fields for a new account
type CreateAccountParams struct {
	Name           string
	Email          string
	AccountType    string
	InitialDeposit decimal.Decimal
}

// LedgerServiceInterface exposes the five ledger operations
type LedgerServiceInterface interface {
	ListAccounts() ([]models.Account, Summary, error)
	CreateAccount(params CreateAccountParams) (*models.Account, error)
	ApplyTransaction(accountID uint, amount decimal.Decimal, kind string) (*models.Account, error)
	GetAccount(accountID uint) (*models.Account, error)
	CloseAccount(accountID uint) error
}

// MetricsRecorderInterface records operational metrics for ledger activity
type MetricsRecorderInterface interface {
	RecordAccountCreated(accountType string)
	RecordAccountClosed()
	RecordTransaction(kind, status string)
	RecordTransactionAmount(kind string, amount decimal.Decimal)
	SetDashboardTotals(accounts int64, balance decimal.Decimal)
}
