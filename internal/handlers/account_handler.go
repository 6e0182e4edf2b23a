package handlers

import (
	"fmt"
	"net/http"

	"probank/internal/dto"
	apperrors "probank/internal/errors"
	"probank/internal/services"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles the account lifecycle pages: create, search,
// details, close.
type AccountHandler struct {
	ledger services.LedgerServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledger services.LedgerServiceInterface) *AccountHandler {
	return &AccountHandler{ledger: ledger}
}

// CreateAccountPage renders the open-account form
func (h *AccountHandler) CreateAccountPage(c echo.Context) error {
	return renderPage(c, "create_account.html", nil)
}

// CreateAccount opens a new account from the submitted form
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var form dto.CreateAccountForm
	if err := c.Bind(&form); err != nil {
		return RedirectWithCode(c, "/create", apperrors.ValidationGeneral)
	}

	if err := c.Validate(form); err != nil {
		return RedirectWithCode(c, "/create", apperrors.ValidationGeneral)
	}

	initialDeposit, ok := parseAmount(form.InitialDeposit)
	if !ok {
		return RedirectWithCode(c, "/create", apperrors.ValidationInvalidFormat)
	}

	account, err := h.ledger.CreateAccount(services.CreateAccountParams{
		Name:           form.Name,
		Email:          form.Email,
		AccountType:    form.AccountType,
		InitialDeposit: initialDeposit,
	})
	if err != nil {
		if IsSystemError(err) {
			return RedirectWithSystemError(c, "/create", err)
		}
		return RedirectWithError(c, "/create", err)
	}

	return RedirectWithSuccess(c, "/",
		fmt.Sprintf("Account #%d created successfully", account.ID))
}

// SearchPage renders the find-account form
func (h *AccountHandler) SearchPage(c echo.Context) error {
	return renderPage(c, "search_account.html", nil)
}

// SearchAccount looks an account up by number and forwards to its detail page
func (h *AccountHandler) SearchAccount(c echo.Context) error {
	var form dto.AccountLookupForm
	if err := c.Bind(&form); err != nil {
		return RedirectWithCode(c, "/search", apperrors.ValidationGeneral)
	}

	if err := c.Validate(form); err != nil {
		return RedirectWithCode(c, "/search", apperrors.ValidationGeneral)
	}

	accountID, ok := parseAccountID(form.AccountID)
	if !ok {
		return RedirectWithCode(c, "/search", apperrors.AccountInvalidID)
	}

	account, err := h.ledger.GetAccount(accountID)
	if err != nil {
		if IsSystemError(err) {
			return RedirectWithSystemError(c, "/search", err)
		}
		return RedirectWithError(c, "/search", err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/details/%d", account.ID))
}

// AccountDetails renders the detail page for one account
func (h *AccountHandler) AccountDetails(c echo.Context) error {
	accountID, ok := parseAccountID(c.Param("account_id"))
	if !ok {
		return RedirectWithCode(c, "/", apperrors.AccountInvalidID)
	}

	account, err := h.ledger.GetAccount(accountID)
	if err != nil {
		if IsSystemError(err) {
			return RedirectWithSystemError(c, "/", err)
		}
		return RedirectWithError(c, "/", err)
	}

	return renderPage(c, "account_details.html", map[string]interface{}{
		"Account": account,
		"Balance": account.Balance.StringFixed(2),
	})
}

// ClosePage renders the close-account form
func (h *AccountHandler) ClosePage(c echo.Context) error {
	return renderPage(c, "close_account.html", nil)
}

// CloseAccount permanently deletes the account named in the form
func (h *AccountHandler) CloseAccount(c echo.Context) error {
	var form dto.AccountLookupForm
	if err := c.Bind(&form); err != nil {
		return RedirectWithCode(c, "/close", apperrors.ValidationGeneral)
	}

	if err := c.Validate(form); err != nil {
		return RedirectWithCode(c, "/close", apperrors.ValidationGeneral)
	}

	accountID, ok := parseAccountID(form.AccountID)
	if !ok {
		return RedirectWithCode(c, "/close", apperrors.AccountInvalidID)
	}

	if err := h.ledger.CloseAccount(accountID); err != nil {
		if IsSystemError(err) {
			return RedirectWithSystemError(c, "/close", err)
		}
		return RedirectWithError(c, "/close", err)
	}

	return RedirectWithSuccess(c, "/",
		fmt.Sprintf("Account #%d has been closed", accountID))
}
