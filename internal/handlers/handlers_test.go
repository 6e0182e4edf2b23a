package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"probank/internal/database"
	"probank/internal/repositories"
	"probank/internal/services"
	"probank/web"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type noopMetrics struct{}

func (noopMetrics) RecordAccountCreated(string)                     {}
func (noopMetrics) RecordAccountClosed()                            {}
func (noopMetrics) RecordTransaction(string, string)                {}
func (noopMetrics) RecordTransactionAmount(string, decimal.Decimal) {}
func (noopMetrics) SetDashboardTotals(int64, decimal.Decimal)       {}

// HandlerSuite exercises the web handlers against the real service stack
// over an in-memory database.
type HandlerSuite struct {
	suite.Suite
	echo        *echo.Echo
	db          *database.DB
	ledger      services.LedgerServiceInterface
	dashboard   *DashboardHandler
	account     *AccountHandler
	transaction *TransactionHandler
}

// SetupTest runs before each test in the suite
func (s *HandlerSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	repo := repositories.NewAccountRepository(s.db.DB)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ledger = services.NewLedgerService(repo, noopMetrics{}, logger)

	s.dashboard = NewDashboardHandler(s.ledger)
	s.account = NewAccountHandler(s.ledger)
	s.transaction = NewTransactionHandler(s.ledger)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()

	renderer, err := web.NewRenderer()
	s.Require().NoError(err)
	s.echo.Renderer = renderer
}

// TearDownTest runs after each test in the suite
func (s *HandlerSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestHandlerSuite runs the test suite
func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) getContext(path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func (s *HandlerSuite) postForm(path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

// flashFrom decodes the flash cookie set on the response
func (s *HandlerSuite) flashFrom(rec *httptest.ResponseRecorder) *Flash {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name != flashCookieName || cookie.Value == "" {
			continue
		}
		raw, err := url.QueryUnescape(cookie.Value)
		s.Require().NoError(err)
		level, message, _ := strings.Cut(raw, "|")
		return &Flash{Level: level, Message: message}
	}
	return nil
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func (s *HandlerSuite) createAccount(email string, deposit float64) uint {
	account, err := s.ledger.CreateAccount(services.CreateAccountParams{
		Name:           "Test Holder",
		Email:          email,
		AccountType:    "Savings",
		InitialDeposit: decimal.NewFromFloat(deposit),
	})
	s.Require().NoError(err)
	return account.ID
}

func (s *HandlerSuite) TestDashboard() {
	s.createAccount("a@example.com", 100.00)
	s.createAccount("b@example.com", 250.50)

	c, rec := s.getContext("/")
	s.NoError(s.dashboard.Index(c))
	s.Equal(http.StatusOK, rec.Code)

	body := rec.Body.String()
	s.Contains(body, "350.50")
	s.Contains(body, "a@example.com")
	s.Contains(body, "b@example.com")
}

func (s *HandlerSuite) TestDashboard_Empty() {
	c, rec := s.getContext("/")
	s.NoError(s.dashboard.Index(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "No accounts yet")
}

func (s *HandlerSuite) TestCreateAccountPage() {
	c, rec := s.getContext("/create")
	s.NoError(s.account.CreateAccountPage(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Open a New Account")
}

func (s *HandlerSuite) TestCreateAccount() {
	c, rec := s.postForm("/create", url.Values{
		"name":            {"Asha Rao"},
		"email":           {"asha@example.com"},
		"account_type":    {"Savings"},
		"initial_deposit": {"100.00"},
	})

	s.NoError(s.account.CreateAccount(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashSuccess, flash.Level)
	s.Contains(flash.Message, "created successfully")
}

func (s *HandlerSuite) TestCreateAccount_NegativeDeposit() {
	c, rec := s.postForm("/create", url.Values{
		"name":            {"Asha Rao"},
		"email":           {"asha@example.com"},
		"account_type":    {"Savings"},
		"initial_deposit": {"-1"},
	})

	s.NoError(s.account.CreateAccount(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/create", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
	s.Contains(flash.Message, "cannot be negative")
}

func (s *HandlerSuite) TestCreateAccount_DuplicateEmail() {
	s.createAccount("asha@example.com", 100.00)

	c, rec := s.postForm("/create", url.Values{
		"name":            {"Someone Else"},
		"email":           {"asha@example.com"},
		"account_type":    {"Current"},
		"initial_deposit": {"50.00"},
	})

	s.NoError(s.account.CreateAccount(c))
	s.Equal("/create", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
	s.Contains(flash.Message, "already exists")
}

func (s *HandlerSuite) TestCreateAccount_MissingFields() {
	c, rec := s.postForm("/create", url.Values{
		"name": {"Asha Rao"},
	})

	s.NoError(s.account.CreateAccount(c))
	s.Equal("/create", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
}

func (s *HandlerSuite) TestPerformTransaction_Deposit() {
	id := s.createAccount("asha@example.com", 100.00)

	c, rec := s.postForm("/transaction", url.Values{
		"account_id":       {formatID(id)},
		"amount":           {"50.00"},
		"transaction_type": {"deposit"},
	})

	s.NoError(s.transaction.PerformTransaction(c))
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashSuccess, flash.Level)
	s.Contains(flash.Message, "New balance: 150.00")
}

func (s *HandlerSuite) TestPerformTransaction_InsufficientFunds() {
	id := s.createAccount("asha@example.com", 150.00)

	c, rec := s.postForm("/transaction", url.Values{
		"account_id":       {formatID(id)},
		"amount":           {"200.00"},
		"transaction_type": {"withdraw"},
	})

	s.NoError(s.transaction.PerformTransaction(c))
	s.Equal("/transaction", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
	s.Contains(flash.Message, "Insufficient balance")

	// Balance unchanged
	account, err := s.ledger.GetAccount(id)
	s.NoError(err)
	s.True(account.Balance.Equal(decimal.NewFromFloat(150.00)))
}

func (s *HandlerSuite) TestPerformTransaction_UnknownAccount() {
	c, rec := s.postForm("/transaction", url.Values{
		"account_id":       {"9999"},
		"amount":           {"10.00"},
		"transaction_type": {"deposit"},
	})

	s.NoError(s.transaction.PerformTransaction(c))
	s.Equal("/transaction", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
	s.Contains(flash.Message, "No account exists")
}

func (s *HandlerSuite) TestPerformTransaction_BadAmount() {
	id := s.createAccount("asha@example.com", 100.00)

	c, rec := s.postForm("/transaction", url.Values{
		"account_id":       {formatID(id)},
		"amount":           {"not-a-number"},
		"transaction_type": {"deposit"},
	})

	s.NoError(s.transaction.PerformTransaction(c))
	s.Equal("/transaction", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
}

func (s *HandlerSuite) TestSearchAccount_Found() {
	id := s.createAccount("asha@example.com", 100.00)

	c, rec := s.postForm("/search", url.Values{
		"account_id": {formatID(id)},
	})

	s.NoError(s.account.SearchAccount(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/details/"+formatID(id), rec.Header().Get(echo.HeaderLocation))
}

func (s *HandlerSuite) TestSearchAccount_NotFound() {
	c, rec := s.postForm("/search", url.Values{
		"account_id": {"9999"},
	})

	s.NoError(s.account.SearchAccount(c))
	s.Equal("/search", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
}

func (s *HandlerSuite) TestAccountDetails() {
	id := s.createAccount("asha@example.com", 100.00)

	c, rec := s.getContext("/details/" + formatID(id))
	c.SetParamNames("account_id")
	c.SetParamValues(formatID(id))

	s.NoError(s.account.AccountDetails(c))
	s.Equal(http.StatusOK, rec.Code)

	body := rec.Body.String()
	s.Contains(body, "asha@example.com")
	s.Contains(body, "100.00")
}

func (s *HandlerSuite) TestAccountDetails_NotFound() {
	c, rec := s.getContext("/details/9999")
	c.SetParamNames("account_id")
	c.SetParamValues("9999")

	s.NoError(s.account.AccountDetails(c))
	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
}

func (s *HandlerSuite) TestCloseAccount() {
	id := s.createAccount("asha@example.com", 0.00)

	c, rec := s.postForm("/close", url.Values{
		"account_id": {formatID(id)},
	})

	s.NoError(s.account.CloseAccount(c))
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashSuccess, flash.Level)

	_, err := s.ledger.GetAccount(id)
	s.ErrorIs(err, services.ErrAccountNotFound)
}

func (s *HandlerSuite) TestCloseAccount_Twice() {
	id := s.createAccount("asha@example.com", 0.00)
	s.Require().NoError(s.ledger.CloseAccount(id))

	c, rec := s.postForm("/close", url.Values{
		"account_id": {formatID(id)},
	})

	s.NoError(s.account.CloseAccount(c))
	s.Equal("/close", rec.Header().Get(echo.HeaderLocation))

	flash := s.flashFrom(rec)
	s.Require().NotNil(flash)
	s.Equal(FlashDanger, flash.Level)
}

func (s *HandlerSuite) TestHealthCheck() {
	handler := NewHealthCheckHandler(s.db.DB)

	c, rec := s.getContext("/healthz")
	s.NoError(handler.HealthCheck(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "healthy")
}
