package repository

import (
	"log/slog"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
)

// Store provides a unified interface for all repository operations with transaction support
type Store struct {
	executor Executor
	logger   *slog.Logger
}

// NewStore creates an empty in-memory Store. A nil logger discards output.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		executor: newMemDB(),
		logger:   logger,
	}
}

// Client returns a ClientRepository using the current executor
func (s *Store) Client() domain.ClientRepository {
	return NewClientRepository(s.executor, s.logger)
}

// Account returns an AccountRepository using the current executor
func (s *Store) Account() domain.AccountRepository {
	return NewAccountRepository(s.executor, s.logger)
}

// Transaction returns a TransactionRepository using the current executor
func (s *Store) Transaction() domain.TransactionRepository {
	return NewTransactionRepository(s.executor, s.logger)
}

// WithTransaction executes fn within a transaction: every write fn makes
// through the Store it receives becomes visible at once, or not at all.
// fn must only use that Store; the outer one blocks until fn returns.
func (s *Store) WithTransaction(fn func(*Store) error) error {
	// Only the database can begin transactions
	db, ok := s.executor.(DB)
	if !ok {
		return errors.ErrCannotBeginTransaction
	}

	tx := db.Begin()

	txStore := &Store{
		executor: tx,
		logger:   s.logger,
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txStore); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
