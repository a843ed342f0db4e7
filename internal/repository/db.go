package repository

import (
	"sync"

	"github.com/google/uuid"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
)

// tables is the in-memory schema. The id slices keep listings in
// insertion order.
type tables struct {
	clients      map[uuid.UUID]domain.Client
	clientIDs    []uuid.UUID
	accounts     map[uuid.UUID]domain.Account
	accountIDs   []uuid.UUID
	transactions []domain.Transaction
}

func newTables() *tables {
	return &tables{
		clients:  make(map[uuid.UUID]domain.Client),
		accounts: make(map[uuid.UUID]domain.Account),
	}
}

// clone copies every table. Rows are values, so a shallow copy of each
// map and slice is enough to isolate the copy.
func (t *tables) clone() *tables {
	cp := &tables{
		clients:      make(map[uuid.UUID]domain.Client, len(t.clients)),
		clientIDs:    append([]uuid.UUID(nil), t.clientIDs...),
		accounts:     make(map[uuid.UUID]domain.Account, len(t.accounts)),
		accountIDs:   append([]uuid.UUID(nil), t.accountIDs...),
		transactions: append([]domain.Transaction(nil), t.transactions...),
	}
	for id, c := range t.clients {
		cp.clients[id] = c
	}
	for id, a := range t.accounts {
		cp.accounts[id] = a
	}
	return cp
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Executor represents both the database and an open transaction
type Executor interface {
	Exec(fn func(t *tables) error) error
}

// DB represents a database that can begin transactions
type DB interface {
	Executor
	Begin() *Tx
}

// Ensure memDB implements DB interface
var _ DB = (*memDB)(nil)

// memDB serialises every statement behind one mutex.
type memDB struct {
	mu   sync.Mutex
	data *tables
}

func newMemDB() *memDB {
	return &memDB{data: newTables()}
}

func (db *memDB) Exec(fn func(t *tables) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return fn(db.data)
}

// Begin takes the database lock and stages a copy of the tables. The lock
// is held until Commit or Rollback.
func (db *memDB) Begin() *Tx {
	db.mu.Lock()
	return &Tx{db: db, staged: db.data.clone()}
}

// Tx runs statements against the staged copy; Commit publishes it.
type Tx struct {
	db     *memDB
	staged *tables
	done   bool
}

func (tx *Tx) Exec(fn func(t *tables) error) error {
	if tx.done {
		return errors.NewAppError(errors.InternalError, "transaction already closed")
	}
	return fn(tx.staged)
}

func (tx *Tx) Commit() error {
	if tx.done {
		return errors.NewAppError(errors.InternalError, "transaction already closed")
	}
	tx.db.data = tx.staged
	tx.close()
	return nil
}

// Rollback discards the staged tables. It is a no-op on a closed
// transaction.
func (tx *Tx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.close()
	return nil
}

func (tx *Tx) close() {
	tx.done = true
	tx.staged = nil
	tx.db.mu.Unlock()
}
