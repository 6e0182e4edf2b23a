package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"probank/internal/models"
	"probank/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrEmailExists            = errors.New("an account with this email already exists")
	ErrInvalidDeposit         = errors.New("initial deposit cannot be negative")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
)

// ledgerService implements LedgerServiceInterface
type ledgerService struct {
	accountRepo repositories.AccountRepositoryInterface
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewLedgerService creates the ledger service over the account repository
func NewLedgerService(
	accountRepo repositories.AccountRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		accountRepo: accountRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// ListAccounts returns every account in creation order together with the
// dashboard totals. An empty store is a valid result.
func (s *ledgerService) ListAccounts() ([]models.Account, Summary, error) {
	accounts, err := s.accountRepo.GetAll()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to list accounts: %w", err)
	}

	count, total, err := s.accountRepo.CountAndTotalBalance()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("failed to aggregate accounts: %w", err)
	}

	summary := Summary{TotalAccounts: count, TotalBalance: total}
	s.metrics.SetDashboardTotals(count, total)

	return accounts, summary, nil
}

// CreateAccount opens a new account with the caller-supplied initial deposit
func (s *ledgerService) CreateAccount(params CreateAccountParams) (*models.Account, error) {
	if params.InitialDeposit.LessThan(decimal.Zero) {
		return nil, ErrInvalidDeposit
	}

	account := &models.Account{
		Name:        strings.TrimSpace(params.Name),
		Email:       strings.TrimSpace(params.Email),
		AccountType: strings.TrimSpace(params.AccountType),
		Balance:     params.InitialDeposit,
	}

	if err := s.accountRepo.Create(account); err != nil {
		if errors.Is(err, repositories.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.metrics.RecordAccountCreated(account.AccountType)
	s.logger.Info("account created",
		"account_id", account.ID,
		"account_type", account.AccountType,
		"initial_deposit", params.InitialDeposit.StringFixed(2),
	)

	return account, nil
}

// ApplyTransaction deposits into or withdraws from a single account. The
// repository runs the balance mutation as one atomic row-locked transaction.
func (s *ledgerService) ApplyTransaction(accountID uint, amount decimal.Decimal, kind string) (*models.Account, error) {
	if !models.IsValidTransactionKind(kind) {
		return nil, ErrInvalidTransactionType
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		s.metrics.RecordTransaction(kind, "rejected")
		return nil, ErrInvalidAmount
	}

	account, err := s.accountRepo.UpdateBalance(accountID, amount, kind)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			s.metrics.RecordTransaction(kind, "rejected")
			return nil, ErrAccountNotFound
		case errors.Is(err, repositories.ErrInsufficientFunds):
			s.metrics.RecordTransaction(kind, "rejected")
			return nil, ErrInsufficientFunds
		default:
			s.metrics.RecordTransaction(kind, "failed")
			return nil, fmt.Errorf("failed to apply transaction: %w", err)
		}
	}

	s.metrics.RecordTransaction(kind, "completed")
	s.metrics.RecordTransactionAmount(kind, amount)
	s.logger.Info("transaction applied",
		"account_id", account.ID,
		"kind", kind,
		"amount", amount.StringFixed(2),
		"balance", account.Balance.StringFixed(2),
	)

	return account, nil
}

// GetAccount is a point lookup with no side effects
func (s *ledgerService) GetAccount(accountID uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// CloseAccount permanently deletes the account row. Closing an already
// closed account reports not found.
func (s *ledgerService) CloseAccount(accountID uint) error {
	if err := s.accountRepo.Delete(accountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to close account: %w", err)
	}

	s.metrics.RecordAccountClosed()
	s.logger.Info("account closed", "account_id", accountID)

	return nil
}
