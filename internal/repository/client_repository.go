package repository

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
)

type clientRepository struct {
	db     Executor
	logger *slog.Logger
}

func NewClientRepository(db Executor, logger *slog.Logger) domain.ClientRepository {
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

func (r *clientRepository) CreateClient(client *domain.Client) error {
	now := time.Now()

	err := r.db.Exec(func(t *tables) error {
		if _, exists := t.clients[client.ID]; exists {
			return errors.ErrDuplicateClient
		}
		row := *client
		row.CreatedAt = now
		t.clients[row.ID] = row
		t.clientIDs = append(t.clientIDs, row.ID)
		return nil
	})

	if err != nil {
		r.logger.Warn("Duplicate client creation attempt", "client_id", client.ID)
		return err
	}

	client.CreatedAt = now
	r.logger.Info("Client created successfully", "client_id", client.ID)
	return nil
}

func (r *clientRepository) GetClient(id uuid.UUID) (*domain.Client, error) {
	var client domain.Client

	err := r.db.Exec(func(t *tables) error {
		row, ok := t.clients[id]
		if !ok {
			return errors.ErrClientNotFound
		}
		client = row
		return nil
	})

	if err != nil {
		r.logger.Warn("Client not found", "client_id", id)
		return nil, err
	}

	return &client, nil
}

func (r *clientRepository) ListClients() ([]domain.Client, error) {
	clients := make([]domain.Client, 0)

	err := r.db.Exec(func(t *tables) error {
		for _, id := range t.clientIDs {
			clients = append(clients, t.clients[id])
		}
		return nil
	})

	return clients, err
}

func (r *clientRepository) DeleteClient(id uuid.UUID) error {
	err := r.db.Exec(func(t *tables) error {
		if _, ok := t.clients[id]; !ok {
			return errors.ErrClientNotFound
		}
		delete(t.clients, id)
		t.clientIDs = removeID(t.clientIDs, id)
		return nil
	})

	if err != nil {
		r.logger.Warn("No client found to delete", "client_id", id)
		return err
	}

	r.logger.Info("Client deleted", "client_id", id)
	return nil
}
