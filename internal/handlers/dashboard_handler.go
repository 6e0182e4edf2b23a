package handlers

import (
	"probank/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler renders the home page with account totals
type DashboardHandler struct {
	ledger services.LedgerServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(ledger services.LedgerServiceInterface) *DashboardHandler {
	return &DashboardHandler{ledger: ledger}
}

// Index shows the dashboard: account count, total balance, and the full
// account list.
func (h *DashboardHandler) Index(c echo.Context) error {
	accounts, summary, err := h.ledger.ListAccounts()
	if err != nil {
		// No form to bounce back to; let the error handler answer with 500.
		return err
	}

	return renderPage(c, "index.html", map[string]interface{}{
		"Accounts":      accounts,
		"TotalAccounts": summary.TotalAccounts,
		"TotalBalance":  summary.TotalBalance.StringFixed(2),
	})
}
