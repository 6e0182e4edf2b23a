package handlers

import (
	"fmt"

	"probank/internal/dto"
	apperrors "probank/internal/errors"
	"probank/internal/models"
	"probank/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles the deposit/withdraw page
type TransactionHandler struct {
	ledger services.LedgerServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledger services.LedgerServiceInterface) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// TransactionPage renders the deposit/withdraw form
func (h *TransactionHandler) TransactionPage(c echo.Context) error {
	return renderPage(c, "transaction.html", nil)
}

// PerformTransaction applies a deposit or withdrawal from the submitted form
func (h *TransactionHandler) PerformTransaction(c echo.Context) error {
	var form dto.TransactionForm
	if err := c.Bind(&form); err != nil {
		return RedirectWithCode(c, "/transaction", apperrors.ValidationGeneral)
	}

	if err := c.Validate(form); err != nil {
		return RedirectWithCode(c, "/transaction", apperrors.ValidationGeneral)
	}

	accountID, ok := parseAccountID(form.AccountID)
	if !ok {
		return RedirectWithCode(c, "/transaction", apperrors.AccountInvalidID)
	}

	amount, ok := parseAmount(form.Amount)
	if !ok {
		return RedirectWithCode(c, "/transaction", apperrors.ValidationInvalidFormat)
	}

	account, err := h.ledger.ApplyTransaction(accountID, amount, form.TransactionType)
	if err != nil {
		if IsSystemError(err) {
			return RedirectWithSystemError(c, "/transaction", err)
		}
		return RedirectWithError(c, "/transaction", err)
	}

	verb := "deposited"
	if form.TransactionType == models.TransactionKindWithdraw {
		verb = "withdrawn"
	}

	return RedirectWithSuccess(c, "/",
		fmt.Sprintf("%s %s successfully. New balance: %s",
			amount.StringFixed(2), verb, account.Balance.StringFixed(2)))
}
