package repositories

import (
	"probank/internal/models"

	"github.com/shopspring/decimal"
)

// AccountRepositoryInterface defines the persistence operations for accounts
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetAll() ([]models.Account, error)
	CountAndTotalBalance() (int64, decimal.Decimal, error)
	UpdateBalance(accountID uint, amount decimal.Decimal, kind string) (*models.Account, error)
	Delete(id uint) error
}
