package errors

import (
	"fmt"
)

type ErrorCode string

const (
	ClientNotFound         ErrorCode = "client_not_found"
	AccountNotFound        ErrorCode = "account_not_found"
	InvalidAmount          ErrorCode = "invalid_amount"
	InsufficientFunds      ErrorCode = "insufficient_funds"
	InvalidTransactionType ErrorCode = "invalid_transaction_type"
	NonZeroBalanceOnDelete ErrorCode = "non_zero_balance_on_delete"
	SameAccountTransfer    ErrorCode = "same_account_transfer"
	ClientHasAccounts      ErrorCode = "client_has_accounts"
	AccountNotOwned        ErrorCode = "account_not_owned"
	DuplicateClient        ErrorCode = "duplicate_client"
	DuplicateAccount       ErrorCode = "duplicate_account"
	InvalidInput           ErrorCode = "invalid_input"
	InternalError          ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any AppError carrying the same code, so errors.Is works
// against the predefined values even after details were attached.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WithDetails returns a copy of e carrying details. The predefined errors
// below are shared, so they are never modified in place.
func (e *AppError) WithDetails(details string) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithDetailsf is WithDetails with a format string.
func (e *AppError) WithDetailsf(format string, args ...interface{}) *AppError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// As extracts an *AppError from err, wrapping anything else as an
// internal error.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewAppError(InternalError, "an unexpected error occurred").WithDetails(err.Error())
}

// HasCode reports whether err is an *AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Predefined errors for common cases
var (
	ErrClientNotFound         = NewAppError(ClientNotFound, "client not found")
	ErrAccountNotFound        = NewAppError(AccountNotFound, "account not found")
	ErrInvalidAmount          = NewAppError(InvalidAmount, "amount must be a positive number")
	ErrInsufficientFunds      = NewAppError(InsufficientFunds, "insufficient funds")
	ErrInvalidTransactionType = NewAppError(InvalidTransactionType, "invalid transaction type")
	ErrNonZeroBalanceOnDelete = NewAppError(NonZeroBalanceOnDelete, "account balance must be zero to delete")
	ErrSameAccountTransfer    = NewAppError(SameAccountTransfer, "cannot transfer to the same account")
	ErrClientHasAccounts      = NewAppError(ClientHasAccounts, "client still owns accounts")
	ErrAccountNotOwned        = NewAppError(AccountNotOwned, "account does not belong to client")
	ErrInvalidAccountID       = NewAppError(InvalidInput, "invalid account id")
	ErrInvalidClientID        = NewAppError(InvalidInput, "invalid client id")
	ErrDuplicateClient        = NewAppError(DuplicateClient, "client already exists")
	ErrDuplicateAccount       = NewAppError(DuplicateAccount, "account already exists")
	ErrCannotBeginTransaction = NewAppError(InternalError, "cannot begin transaction inside a transaction")
)
