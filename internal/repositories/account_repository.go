package repositories

import (
	"errors"
	"fmt"

	"probank/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrEmailExists       = errors.New("email already registered")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidKind       = errors.New("invalid transaction kind")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// Create inserts a new account row
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByEmail retrieves an account by email
func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

// GetAll retrieves every account in creation order
func (r *accountRepository) GetAll() ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, nil
}

// CountAndTotalBalance returns the number of accounts and the sum of their
// balances for the dashboard
func (r *accountRepository) CountAndTotalBalance() (int64, decimal.Decimal, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to count accounts: %w", err)
	}

	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0) as total").
		Scan(&result).Error; err != nil {
		return 0, decimal.Zero, fmt.Errorf("failed to sum balances: %w", err)
	}

	return count, result.Total, nil
}

// UpdateBalance applies a deposit or withdrawal inside one database
// transaction. The row is locked for the read-check-write so two concurrent
// withdrawals cannot both pass the sufficient-funds check against a stale
// balance.
func (r *accountRepository) UpdateBalance(accountID uint, amount decimal.Decimal, kind string) (*models.Account, error) {
	var account models.Account

	err := r.db.Transaction(func(tx *gorm.DB) error {
		q := tx
		// SQLite has no FOR UPDATE; its single-writer transactions already
		// serialise the read-check-write.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		if err := q.First(&account, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to get account for update: %w", err)
		}

		switch kind {
		case models.TransactionKindWithdraw:
			if account.Balance.LessThan(amount) {
				return ErrInsufficientFunds
			}
			account.Balance = account.Balance.Sub(amount)
		case models.TransactionKindDeposit:
			account.Balance = account.Balance.Add(amount)
		default:
			return ErrInvalidKind
		}

		if err := tx.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Update("balance", account.Balance).Error; err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Delete permanently removes an account row. Deleting an id that no longer
// exists reports not found rather than succeeding silently.
func (r *accountRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Account{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
