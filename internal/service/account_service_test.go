package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"banking-ledger/internal/errors"
)

func TestCreateAccount(t *testing.T) {
	f := newFixture(t)
	client, err := f.clients.CreateClient("Grace", "Hopper")
	require.NoError(t, err)

	account, err := f.accounts.CreateAccount(client.ID, dec("1000.505"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, client.ID, account.ClientID)
	assertDecimalEqual(t, "1000.51", account.Balance)
	assert.False(t, account.CreatedAt.IsZero())

	stored, err := f.accounts.GetAccount(account.ID)
	require.NoError(t, err)
	assertDecimalEqual(t, "1000.51", stored.Balance)
}

func TestCreateAccountValidation(t *testing.T) {
	f := newFixture(t)
	client, err := f.clients.CreateClient("Grace", "Hopper")
	require.NoError(t, err)

	tests := []struct {
		name    string
		balance string
	}{
		{"zero", "0"},
		{"negative", "-10"},
		{"rounds to zero", "0.004"},
		{"above limit", "10000000000.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.accounts.CreateAccount(client.ID, dec(tt.balance))
			assert.ErrorIs(t, err, errors.ErrInvalidAmount)
		})
	}

	accounts, err := f.accounts.AccountsOf(client.ID)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestCreateAccountUnknownClient(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.CreateAccount(uuid.New(), dec("10"))
	assert.ErrorIs(t, err, errors.ErrClientNotFound)

	total, err := f.accounts.BankTotal()
	require.NoError(t, err)
	assert.Equal(t, 0, total.Accounts)
}

func TestGetAccountNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.GetAccount(uuid.New())
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)
}

func TestAccountsOf(t *testing.T) {
	f := newFixture(t)
	owner, err := f.clients.CreateClient("Grace", "Hopper")
	require.NoError(t, err)
	other := f.openAccount(t, "1")

	first, err := f.accounts.CreateAccount(owner.ID, dec("10"))
	require.NoError(t, err)
	second, err := f.accounts.CreateAccount(owner.ID, dec("20"))
	require.NoError(t, err)

	accounts, err := f.accounts.AccountsOf(owner.ID)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, first.ID, accounts[0].ID)
	assert.Equal(t, second.ID, accounts[1].ID)
	for _, a := range accounts {
		assert.NotEqual(t, other.ID, a.ID)
	}

	_, err = f.accounts.AccountsOf(uuid.New())
	assert.ErrorIs(t, err, errors.ErrClientNotFound)
}

func TestDescribeAccount(t *testing.T) {
	f := newFixture(t)
	account := f.openAccount(t, "15")
	stranger, err := f.clients.CreateClient("Alan", "Turing")
	require.NoError(t, err)

	view, err := f.accounts.DescribeAccount(account.ClientID, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, view.Account.ID)
	assert.Equal(t, "Ada Lovelace", view.Owner.FullName())

	_, err = f.accounts.DescribeAccount(stranger.ID, account.ID)
	assert.ErrorIs(t, err, errors.ErrAccountNotOwned)

	_, err = f.accounts.DescribeAccount(uuid.New(), account.ID)
	assert.ErrorIs(t, err, errors.ErrClientNotFound)

	_, err = f.accounts.DescribeAccount(account.ClientID, uuid.New())
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)
}

func TestDeleteAccount(t *testing.T) {
	f := newFixture(t)
	account := f.emptyAccount(t)

	require.NoError(t, f.accounts.DeleteAccount(account.ID))

	_, err := f.accounts.GetAccount(account.ID)
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)

	// history outlives the account
	all, err := f.store.Transaction().ListTransactions()
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, account.ID, all[0].AccountID)
}

func TestDeleteAccountNonZeroBalance(t *testing.T) {
	f := newFixture(t)
	account := f.openAccount(t, "0.01")

	err := f.accounts.DeleteAccount(account.ID)
	assert.ErrorIs(t, err, errors.ErrNonZeroBalanceOnDelete)
	assert.Equal(t, "balance 0.01", errors.As(err).Details)

	_, err = f.accounts.GetAccount(account.ID)
	assert.NoError(t, err)
}

func TestDeleteAccountNotFound(t *testing.T) {
	f := newFixture(t)

	err := f.accounts.DeleteAccount(uuid.New())
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)
}

func TestTotals(t *testing.T) {
	f := newFixture(t)

	total, err := f.accounts.BankTotal()
	require.NoError(t, err)
	assert.Equal(t, 0, total.Accounts)
	assert.True(t, total.Total.IsZero())

	owner, err := f.clients.CreateClient("Grace", "Hopper")
	require.NoError(t, err)
	_, err = f.accounts.CreateAccount(owner.ID, dec("10.25"))
	require.NoError(t, err)
	_, err = f.accounts.CreateAccount(owner.ID, dec("4.75"))
	require.NoError(t, err)
	f.openAccount(t, "100")

	holdings, err := f.accounts.ClientTotal(owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, holdings.Accounts)
	assertDecimalEqual(t, "15", holdings.Total)

	total, err = f.accounts.BankTotal()
	require.NoError(t, err)
	assert.Equal(t, 3, total.Accounts)
	assertDecimalEqual(t, "115", total.Total)

	_, err = f.accounts.ClientTotal(uuid.New())
	assert.ErrorIs(t, err, errors.ErrClientNotFound)
}
