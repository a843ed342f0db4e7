package repository

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
)

type transactionRepository struct {
	db     Executor
	logger *slog.Logger
}

func NewTransactionRepository(db Executor, logger *slog.Logger) domain.TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTransaction appends a history record. Records are never updated or
// removed afterwards, even when their account is deleted.
func (r *transactionRepository) CreateTransaction(tx *domain.Transaction) error {
	if !tx.Type.IsValid() {
		r.logger.Warn("Rejected record with invalid type", "account_id", tx.AccountID, "type", int(tx.Type))
		return errors.ErrInvalidTransactionType
	}
	if tx.Direction != domain.DirectionDebit && tx.Direction != domain.DirectionCredit {
		r.logger.Warn("Rejected record with invalid direction", "account_id", tx.AccountID, "direction", tx.Direction)
		return errors.NewAppError(errors.InvalidInput, "invalid transaction direction").WithDetails(string(tx.Direction))
	}
	if !tx.Amount.IsPositive() {
		r.logger.Warn("Rejected record with non-positive amount", "account_id", tx.AccountID, "amount", tx.Amount)
		return errors.ErrInvalidAmount
	}

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	err := r.db.Exec(func(t *tables) error {
		if _, ok := t.accounts[tx.AccountID]; !ok {
			return errors.ErrAccountNotFound
		}
		t.transactions = append(t.transactions, *tx)
		return nil
	})

	if err != nil {
		r.logger.Error("Failed to create transaction",
			"account_id", tx.AccountID,
			"type", tx.Type.String(),
			"amount", tx.Amount,
			"error", err)
		return err
	}

	r.logger.Info("Transaction created successfully",
		"transaction_id", tx.ID,
		"account_id", tx.AccountID,
		"type", tx.Type.String())
	return nil
}

func (r *transactionRepository) ListTransactionsByAccount(accountID uuid.UUID) ([]domain.Transaction, error) {
	return r.list(func(tx domain.Transaction) bool { return tx.AccountID == accountID })
}

func (r *transactionRepository) ListTransactions() ([]domain.Transaction, error) {
	return r.list(func(domain.Transaction) bool { return true })
}

func (r *transactionRepository) list(keep func(domain.Transaction) bool) ([]domain.Transaction, error) {
	transactions := make([]domain.Transaction, 0)

	err := r.db.Exec(func(t *tables) error {
		for _, tx := range t.transactions {
			if keep(tx) {
				transactions = append(transactions, tx)
			}
		}
		return nil
	})

	return transactions, err
}
