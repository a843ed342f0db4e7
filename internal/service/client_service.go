package service

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/repository"
)

type ClientService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewClientService(store *repository.Store, logger *slog.Logger) *ClientService {
	return &ClientService{
		store:  store,
		logger: orDiscard(logger),
	}
}

func (s *ClientService) CreateClient(firstName, lastName string) (*domain.Client, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if firstName == "" || lastName == "" {
		return nil, errors.NewAppError(errors.InvalidInput, "first and last name are required")
	}

	client := &domain.Client{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := s.store.Client().CreateClient(client); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *ClientService) GetClient(clientID uuid.UUID) (*domain.Client, error) {
	return s.store.Client().GetClient(clientID)
}

func (s *ClientService) ListClients() ([]domain.Client, error) {
	return s.store.Client().ListClients()
}

// DeleteClient removes a client that owns no accounts. Accounts are not
// closed on the client's behalf.
func (s *ClientService) DeleteClient(clientID uuid.UUID) error {
	s.logger.Info("Deleting client", "client_id", clientID)

	err := s.store.WithTransaction(func(tx *repository.Store) error {
		if _, err := tx.Client().GetClient(clientID); err != nil {
			return err
		}

		accounts, err := tx.Account().ListAccountsByClient(clientID)
		if err != nil {
			return err
		}
		if len(accounts) > 0 {
			return errors.ErrClientHasAccounts.WithDetailsf("%d open accounts", len(accounts))
		}

		return tx.Client().DeleteClient(clientID)
	})

	if err != nil {
		s.logger.Warn("Client deletion rejected", "client_id", clientID, "error", err)
		return err
	}

	return nil
}
