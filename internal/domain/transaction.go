package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the closed set of history record categories. The
// zero value is not a valid type.
type TransactionType int

const (
	TransactionTypeDeposit TransactionType = iota + 1
	TransactionTypeWithdrawal
	TransactionTypeTransfer
	TransactionTypeAnnualInterest
	TransactionTypeMonthlyFee
)

var transactionTypeNames = map[TransactionType]string{
	TransactionTypeDeposit:        "deposit",
	TransactionTypeWithdrawal:     "withdrawal",
	TransactionTypeTransfer:       "transfer",
	TransactionTypeAnnualInterest: "annual-interest",
	TransactionTypeMonthlyFee:     "monthly-fee",
}

// TransactionTypes lists every valid type in declaration order.
func TransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeDeposit,
		TransactionTypeWithdrawal,
		TransactionTypeTransfer,
		TransactionTypeAnnualInterest,
		TransactionTypeMonthlyFee,
	}
}

func (t TransactionType) IsValid() bool {
	_, ok := transactionTypeNames[t]
	return ok
}

func (t TransactionType) String() string {
	if name, ok := transactionTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TransactionType(%d)", int(t))
}

// Direction is the default side of the balance a type moves. A bare
// transfer is its outgoing leg.
func (t TransactionType) Direction() Direction {
	switch t {
	case TransactionTypeDeposit, TransactionTypeAnnualInterest:
		return DirectionCredit
	case TransactionTypeWithdrawal, TransactionTypeMonthlyFee, TransactionTypeTransfer:
		return DirectionDebit
	}
	return ""
}

func (t TransactionType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid transaction type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *TransactionType) UnmarshalText(text []byte) error {
	parsed, err := ParseTransactionType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseTransactionType(s string) (TransactionType, error) {
	for t, name := range transactionTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown transaction type %q", s)
}

type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Apply moves balance by amount in this direction.
func (d Direction) Apply(balance, amount decimal.Decimal) decimal.Decimal {
	if d == DirectionDebit {
		return balance.Sub(amount)
	}
	return balance.Add(amount)
}

// Transaction is one immutable history record. Transfer legs share a
// TransferID and name each other's account as counterparty.
type Transaction struct {
	ID                    uuid.UUID       `json:"id"`
	AccountID             uuid.UUID       `json:"account_id"`
	Type                  TransactionType `json:"type"`
	Direction             Direction       `json:"direction"`
	Amount                decimal.Decimal `json:"amount"`
	CounterpartyAccountID uuid.UUID       `json:"counterparty_account_id"`
	TransferID            uuid.UUID       `json:"transfer_id"`
	CreatedAt             time.Time       `json:"created_at"`
}

type TransactionRepository interface {
	CreateTransaction(tx *Transaction) error
	ListTransactionsByAccount(accountID uuid.UUID) ([]Transaction, error)
	ListTransactions() ([]Transaction, error)
}
