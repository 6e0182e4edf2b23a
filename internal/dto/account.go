package dto

// Form-bound request DTOs for the web UI. Numeric fields arrive as strings
// and are parsed by the handlers so a typo flashes a validation message
// instead of failing the bind.

// CreateAccountForm carries the /create form fields
type CreateAccountForm struct {
	Name           string `form:"name" validate:"required,max=100"`
	Email          string `form:"email" validate:"required,email,max=100"`
	AccountType    string `form:"account_type" validate:"required,max=50"`
	InitialDeposit string `form:"initial_deposit" validate:"required"`
}

// TransactionForm carries the /transaction form fields
type TransactionForm struct {
	AccountID       string `form:"account_id" validate:"required"`
	Amount          string `form:"amount" validate:"required"`
	TransactionType string `form:"transaction_type" validate:"required,oneof=deposit withdraw"`
}

// AccountLookupForm carries the single account-number field shared by the
// /search and /close forms
type AccountLookupForm struct {
	AccountID string `form:"account_id" validate:"required"`
}
