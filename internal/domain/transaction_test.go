package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionTypeNames(t *testing.T) {
	expected := []string{"deposit", "withdrawal", "transfer", "annual-interest", "monthly-fee"}

	types := TransactionTypes()
	require.Len(t, types, len(expected))
	for i, tt := range types {
		assert.True(t, tt.IsValid())
		assert.Equal(t, expected[i], tt.String())

		parsed, err := ParseTransactionType(expected[i])
		require.NoError(t, err)
		assert.Equal(t, tt, parsed)
	}
}

func TestTransactionTypeInvalid(t *testing.T) {
	for _, tt := range []TransactionType{0, -1, 6, 99} {
		assert.False(t, tt.IsValid())
		assert.Equal(t, Direction(""), tt.Direction())

		_, err := tt.MarshalText()
		assert.Error(t, err)
	}
	assert.Equal(t, "TransactionType(99)", TransactionType(99).String())

	_, err := ParseTransactionType("refund")
	assert.Error(t, err)
}

func TestTransactionTypeDirection(t *testing.T) {
	assert.Equal(t, DirectionCredit, TransactionTypeDeposit.Direction())
	assert.Equal(t, DirectionCredit, TransactionTypeAnnualInterest.Direction())
	assert.Equal(t, DirectionDebit, TransactionTypeWithdrawal.Direction())
	assert.Equal(t, DirectionDebit, TransactionTypeMonthlyFee.Direction())
	assert.Equal(t, DirectionDebit, TransactionTypeTransfer.Direction())
}

func TestDirectionApply(t *testing.T) {
	balance := decimal.RequireFromString("10.50")
	amount := decimal.RequireFromString("0.25")

	assert.True(t, decimal.RequireFromString("10.75").Equal(DirectionCredit.Apply(balance, amount)))
	assert.True(t, decimal.RequireFromString("10.25").Equal(DirectionDebit.Apply(balance, amount)))
}

func TestTransactionJSON(t *testing.T) {
	tx := Transaction{Type: TransactionTypeMonthlyFee, Direction: DirectionDebit, Amount: decimal.NewFromInt(2)}

	body, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"type":"monthly-fee"`)
	assert.Contains(t, string(body), `"direction":"debit"`)

	var decoded Transaction
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, TransactionTypeMonthlyFee, decoded.Type)
	assert.True(t, decoded.Amount.Equal(tx.Amount))

	assert.Error(t, json.Unmarshal([]byte(`{"type":"refund"}`), &decoded))
}

func TestAccountCanCover(t *testing.T) {
	account := Account{Balance: decimal.RequireFromString("5.00")}

	assert.True(t, account.CanCover(decimal.RequireFromString("4.99")))
	assert.True(t, account.CanCover(decimal.RequireFromString("5")))
	assert.False(t, account.CanCover(decimal.RequireFromString("5.01")))
}

func TestClientFullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", Client{FirstName: "Ada", LastName: "Lovelace"}.FullName())
}
