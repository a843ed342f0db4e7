package repository

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
)

type accountRepository struct {
	db     Executor
	logger *slog.Logger
}

func NewAccountRepository(db Executor, logger *slog.Logger) domain.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *accountRepository) CreateAccount(account *domain.Account) error {
	now := time.Now()

	err := r.db.Exec(func(t *tables) error {
		if _, exists := t.accounts[account.ID]; exists {
			return errors.ErrDuplicateAccount
		}
		// owner must exist at creation time, like a foreign key
		if _, ok := t.clients[account.ClientID]; !ok {
			return errors.ErrClientNotFound
		}

		row := *account
		row.CreatedAt = now
		row.UpdatedAt = now
		t.accounts[row.ID] = row
		t.accountIDs = append(t.accountIDs, row.ID)
		return nil
	})

	if err != nil {
		r.logger.Warn("Account creation rejected", "account_id", account.ID, "client_id", account.ClientID, "error", err)
		return err
	}

	account.CreatedAt = now
	account.UpdatedAt = now
	r.logger.Info("Account created successfully", "account_id", account.ID, "client_id", account.ClientID)
	return nil
}

func (r *accountRepository) GetAccount(id uuid.UUID) (*domain.Account, error) {
	var account domain.Account

	err := r.db.Exec(func(t *tables) error {
		row, ok := t.accounts[id]
		if !ok {
			return errors.ErrAccountNotFound
		}
		account = row
		return nil
	})

	if err != nil {
		r.logger.Warn("Account not found", "account_id", id)
		return nil, err
	}

	return &account, nil
}

func (r *accountRepository) ListAccounts() ([]domain.Account, error) {
	return r.list(func(domain.Account) bool { return true })
}

func (r *accountRepository) ListAccountsByClient(clientID uuid.UUID) ([]domain.Account, error) {
	return r.list(func(a domain.Account) bool { return a.ClientID == clientID })
}

func (r *accountRepository) list(keep func(domain.Account) bool) ([]domain.Account, error) {
	accounts := make([]domain.Account, 0)

	err := r.db.Exec(func(t *tables) error {
		for _, id := range t.accountIDs {
			if a := t.accounts[id]; keep(a) {
				accounts = append(accounts, a)
			}
		}
		return nil
	})

	return accounts, err
}

func (r *accountRepository) UpdateAccountBalance(id uuid.UUID, newBalance decimal.Decimal) error {
	if newBalance.IsNegative() {
		r.logger.Error("Refusing negative balance", "account_id", id, "new_balance", newBalance)
		return errors.NewAppError(errors.InternalError, "balance cannot be negative").WithDetails(newBalance.String())
	}

	err := r.db.Exec(func(t *tables) error {
		row, ok := t.accounts[id]
		if !ok {
			return errors.ErrAccountNotFound
		}
		row.Balance = newBalance
		row.UpdatedAt = time.Now()
		t.accounts[id] = row
		return nil
	})

	if err != nil {
		r.logger.Warn("No account found to update", "account_id", id)
		return err
	}

	r.logger.Info("Account balance updated", "account_id", id, "new_balance", newBalance)
	return nil
}

func (r *accountRepository) DeleteAccount(id uuid.UUID) error {
	err := r.db.Exec(func(t *tables) error {
		if _, ok := t.accounts[id]; !ok {
			return errors.ErrAccountNotFound
		}
		delete(t.accounts, id)
		t.accountIDs = removeID(t.accountIDs, id)
		return nil
	})

	if err != nil {
		r.logger.Warn("No account found to delete", "account_id", id)
		return err
	}

	r.logger.Info("Account deleted", "account_id", id)
	return nil
}
