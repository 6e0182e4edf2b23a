package repositories

import (
	"testing"

	"probank/internal/database"
	"probank/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AccountRepositorySuite defines the test suite for AccountRepository
type AccountRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo AccountRepositoryInterface
}

// SetupTest runs before each test in the suite
func (s *AccountRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewAccountRepository(s.db.DB)
}

// TearDownTest runs after each test in the suite
func (s *AccountRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestAccountRepositorySuite runs the test suite
func TestAccountRepositorySuite(t *testing.T) {
	suite.Run(t, new(AccountRepositorySuite))
}

func (s *AccountRepositorySuite) newAccount(email string, balance float64) *models.Account {
	return &models.Account{
		Name:        "Test Holder",
		Email:       email,
		AccountType: "Savings",
		Balance:     decimal.NewFromFloat(balance),
	}
}

func (s *AccountRepositorySuite) TestCreate() {
	account := s.newAccount("holder@example.com", 1000.00)

	err := s.repo.Create(account)
	s.NoError(err)
	s.NotZero(account.ID)
	s.NotZero(account.CreatedAt)
}

func (s *AccountRepositorySuite) TestCreate_DuplicateEmail() {
	err := s.repo.Create(s.newAccount("holder@example.com", 1000.00))
	s.NoError(err)

	err = s.repo.Create(s.newAccount("holder@example.com", 500.00))
	s.ErrorIs(err, ErrEmailExists)

	// First account is unaffected
	found, err := s.repo.GetByEmail("holder@example.com")
	s.NoError(err)
	s.True(found.Balance.Equal(decimal.NewFromFloat(1000.00)))
}

func (s *AccountRepositorySuite) TestGetByID() {
	account := s.newAccount("holder@example.com", 1000.00)
	s.NoError(s.repo.Create(account))

	found, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.NotNil(found)
	s.Equal(account.ID, found.ID)
	s.Equal(account.Email, found.Email)

	_, err = s.repo.GetByID(account.ID + 100)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestGetAll_CreationOrder() {
	first := s.newAccount("first@example.com", 10.00)
	second := s.newAccount("second@example.com", 20.00)
	s.NoError(s.repo.Create(first))
	s.NoError(s.repo.Create(second))

	accounts, err := s.repo.GetAll()
	s.NoError(err)
	s.Len(accounts, 2)
	s.Equal(first.ID, accounts[0].ID)
	s.Equal(second.ID, accounts[1].ID)
}

func (s *AccountRepositorySuite) TestCountAndTotalBalance() {
	// Empty store is a valid aggregate
	count, total, err := s.repo.CountAndTotalBalance()
	s.NoError(err)
	s.Zero(count)
	s.True(total.Equal(decimal.Zero))

	s.NoError(s.repo.Create(s.newAccount("a@example.com", 100.00)))
	s.NoError(s.repo.Create(s.newAccount("b@example.com", 0.00)))
	s.NoError(s.repo.Create(s.newAccount("c@example.com", 250.50)))

	count, total, err = s.repo.CountAndTotalBalance()
	s.NoError(err)
	s.Equal(int64(3), count)
	s.True(total.Equal(decimal.NewFromFloat(350.50)), "got total %s", total)
}

func (s *AccountRepositorySuite) TestUpdateBalance_Deposit() {
	account := s.newAccount("holder@example.com", 100.00)
	s.NoError(s.repo.Create(account))

	updated, err := s.repo.UpdateBalance(account.ID, decimal.NewFromFloat(50.00), models.TransactionKindDeposit)
	s.NoError(err)
	s.True(updated.Balance.Equal(decimal.NewFromFloat(150.00)))

	persisted, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(persisted.Balance.Equal(decimal.NewFromFloat(150.00)))
}

func (s *AccountRepositorySuite) TestUpdateBalance_Withdraw() {
	account := s.newAccount("holder@example.com", 150.00)
	s.NoError(s.repo.Create(account))

	updated, err := s.repo.UpdateBalance(account.ID, decimal.NewFromFloat(150.00), models.TransactionKindWithdraw)
	s.NoError(err)
	s.True(updated.Balance.Equal(decimal.Zero))
}

func (s *AccountRepositorySuite) TestUpdateBalance_InsufficientFunds() {
	account := s.newAccount("holder@example.com", 150.00)
	s.NoError(s.repo.Create(account))

	_, err := s.repo.UpdateBalance(account.ID, decimal.NewFromFloat(200.00), models.TransactionKindWithdraw)
	s.ErrorIs(err, ErrInsufficientFunds)

	// Rejected withdrawal must not mutate the balance
	persisted, err := s.repo.GetByID(account.ID)
	s.NoError(err)
	s.True(persisted.Balance.Equal(decimal.NewFromFloat(150.00)))
}

func (s *AccountRepositorySuite) TestUpdateBalance_UnknownAccount() {
	_, err := s.repo.UpdateBalance(9999, decimal.NewFromFloat(10.00), models.TransactionKindDeposit)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestUpdateBalance_InvalidKind() {
	account := s.newAccount("holder@example.com", 150.00)
	s.NoError(s.repo.Create(account))

	_, err := s.repo.UpdateBalance(account.ID, decimal.NewFromFloat(10.00), "transfer")
	s.ErrorIs(err, ErrInvalidKind)
}

func (s *AccountRepositorySuite) TestDelete() {
	account := s.newAccount("holder@example.com", 0.00)
	s.NoError(s.repo.Create(account))

	s.NoError(s.repo.Delete(account.ID))

	_, err := s.repo.GetByID(account.ID)
	s.ErrorIs(err, ErrAccountNotFound)

	// Second delete of the same id reports not found, never crashes
	s.ErrorIs(s.repo.Delete(account.ID), ErrAccountNotFound)
}

func (s *AccountRepositorySuite) TestDelete_IDNotReused() {
	first := s.newAccount("first@example.com", 0.00)
	s.NoError(s.repo.Create(first))
	s.NoError(s.repo.Delete(first.ID))

	second := s.newAccount("second@example.com", 0.00)
	s.NoError(s.repo.Create(second))
	s.Greater(second.ID, first.ID)
}
