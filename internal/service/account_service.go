package service

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/repository"
)

type AccountService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewAccountService(store *repository.Store, logger *slog.Logger) *AccountService {
	return &AccountService{
		store:  store,
		logger: orDiscard(logger),
	}
}

// AccountView is an account together with its owner.
type AccountView struct {
	Account domain.Account
	Owner   domain.Client
}

// Holdings sums the balances of a set of accounts.
type Holdings struct {
	Accounts int
	Total    decimal.Decimal
}

func (s *AccountService) CreateAccount(clientID uuid.UUID, initialBalance decimal.Decimal) (*domain.Account, error) {
	s.logger.Info("Creating account", "client_id", clientID, "initial_balance", initialBalance)

	initialBalance = initialBalance.Round(2)
	if !initialBalance.IsPositive() {
		return nil, errors.ErrInvalidAmount.WithDetails("initial balance must be positive")
	}

	// Validate reasonable limits
	maxInitialBalance := decimal.NewFromInt(10_000_000_000) // 10 billion
	if initialBalance.GreaterThan(maxInitialBalance) {
		return nil, errors.NewAppError(errors.InvalidAmount, "initial balance exceeds maximum limit")
	}

	account := &domain.Account{
		ID:       uuid.New(),
		ClientID: clientID,
		Balance:  initialBalance,
	}

	if err := s.store.Account().CreateAccount(account); err != nil {
		return nil, err
	}

	s.logger.Info("Account created successfully", "account_id", account.ID)
	return account, nil
}

func (s *AccountService) GetAccount(accountID uuid.UUID) (*domain.Account, error) {
	s.logger.Debug("Getting account", "account_id", accountID)
	return s.store.Account().GetAccount(accountID)
}

// AccountsOf lists the accounts a client owns.
func (s *AccountService) AccountsOf(clientID uuid.UUID) ([]domain.Account, error) {
	if _, err := s.store.Client().GetClient(clientID); err != nil {
		return nil, err
	}
	return s.store.Account().ListAccountsByClient(clientID)
}

// DescribeAccount returns the account and its owner, checking that the
// account belongs to clientID.
func (s *AccountService) DescribeAccount(clientID, accountID uuid.UUID) (*AccountView, error) {
	client, err := s.store.Client().GetClient(clientID)
	if err != nil {
		return nil, err
	}

	account, err := s.store.Account().GetAccount(accountID)
	if err != nil {
		return nil, err
	}

	if account.ClientID != clientID {
		return nil, errors.ErrAccountNotOwned.WithDetailsf("account %s, client %s", accountID, clientID)
	}

	return &AccountView{Account: *account, Owner: *client}, nil
}

// DeleteAccount removes an account whose balance is zero. The check and
// the removal happen in one transaction.
func (s *AccountService) DeleteAccount(accountID uuid.UUID) error {
	s.logger.Info("Deleting account", "account_id", accountID)

	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := tx.Account().GetAccount(accountID)
		if err != nil {
			return err
		}

		if !account.Balance.IsZero() {
			return errors.ErrNonZeroBalanceOnDelete.WithDetailsf("balance %s", account.Balance.StringFixed(2))
		}

		return tx.Account().DeleteAccount(accountID)
	})

	if err != nil {
		s.logger.Warn("Account deletion rejected", "account_id", accountID, "error", err)
		return err
	}

	return nil
}

// ClientTotal sums the balances of every account a client owns.
func (s *AccountService) ClientTotal(clientID uuid.UUID) (Holdings, error) {
	accounts, err := s.AccountsOf(clientID)
	if err != nil {
		return Holdings{}, err
	}
	return sumBalances(accounts), nil
}

// BankTotal sums the balances of every account.
func (s *AccountService) BankTotal() (Holdings, error) {
	accounts, err := s.store.Account().ListAccounts()
	if err != nil {
		return Holdings{}, err
	}
	return sumBalances(accounts), nil
}

func sumBalances(accounts []domain.Account) Holdings {
	h := Holdings{Accounts: len(accounts), Total: decimal.Zero}
	for _, a := range accounts {
		h.Total = h.Total.Add(a.Balance)
	}
	return h
}
