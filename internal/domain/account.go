package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Account struct {
	ID        uuid.UUID       `json:"account_id"`
	ClientID  uuid.UUID       `json:"client_id"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CanCover reports whether the balance can absorb a debit of amount
// without going negative.
func (a Account) CanCover(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

type AccountRepository interface {
	CreateAccount(account *Account) error
	GetAccount(id uuid.UUID) (*Account, error)
	ListAccounts() ([]Account, error)
	ListAccountsByClient(clientID uuid.UUID) ([]Account, error)
	UpdateAccountBalance(id uuid.UUID, newBalance decimal.Decimal) error
	DeleteAccount(id uuid.UUID) error
}
