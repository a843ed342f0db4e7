package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/repository"
)

// LedgerService applies balance changes. Every change and its history
// record are written in one store transaction.
type LedgerService struct {
	store  *repository.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewLedgerService builds the ledger engine. clock stamps history records;
// nil means time.Now. A nil logger discards output.
func NewLedgerService(store *repository.Store, logger *slog.Logger, clock func() time.Time) *LedgerService {
	if clock == nil {
		clock = time.Now
	}
	return &LedgerService{
		store:  store,
		logger: orDiscard(logger),
		now:    clock,
	}
}

type TransferResult struct {
	TransferID         uuid.UUID
	SourceBalance      decimal.Decimal
	DestinationBalance decimal.Decimal
	Debit              domain.Transaction
	Credit             domain.Transaction
}

type BatchStatus string

const (
	BatchApplied BatchStatus = "applied"
	BatchSkipped BatchStatus = "skipped"
)

// BatchOutcome is the result of a batch operation on one account. Reason
// is set when a skip was caused by a rule violation.
type BatchOutcome struct {
	AccountID uuid.UUID
	Status    BatchStatus
	Amount    decimal.Decimal
	Balance   decimal.Decimal
	Reason    *errors.AppError
}

type BatchSummary struct {
	Outcomes []BatchOutcome
	Total    decimal.Decimal
}

func (b BatchSummary) Applied() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Status == BatchApplied {
			n++
		}
	}
	return n
}

func (b BatchSummary) Skipped() []BatchOutcome {
	var skipped []BatchOutcome
	for _, o := range b.Outcomes {
		if o.Status == BatchSkipped {
			skipped = append(skipped, o)
		}
	}
	return skipped
}

// Empty reports whether the bank had no accounts to process.
func (b BatchSummary) Empty() bool {
	return len(b.Outcomes) == 0
}

type InterestSummary struct {
	BatchSummary
	Rate decimal.Decimal
}

type FeeSummary struct {
	BatchSummary
	Fee decimal.Decimal
}

type posting struct {
	txType       domain.TransactionType
	direction    domain.Direction
	amount       decimal.Decimal
	counterparty uuid.UUID
	transferID   uuid.UUID
}

// ApplyBalanceChange moves the balance of one account in the default
// direction of txType and records it. It returns the new balance.
func (s *LedgerService) ApplyBalanceChange(accountID uuid.UUID, amount decimal.Decimal, txType domain.TransactionType) (decimal.Decimal, error) {
	s.logger.Info("Applying balance change",
		"account_id", accountID,
		"amount", amount,
		"type", txType.String())

	if !txType.IsValid() {
		return decimal.Zero, errors.ErrInvalidTransactionType.WithDetails(txType.String())
	}

	var newBalance decimal.Decimal
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		account, err := tx.Account().GetAccount(accountID)
		if err != nil {
			return err
		}

		amount, err := normalizeAmount(amount)
		if err != nil {
			return err
		}

		p := posting{txType: txType, direction: txType.Direction(), amount: amount}
		if p.direction == domain.DirectionDebit {
			if err := checkFunds(account, amount); err != nil {
				return err
			}
		}

		if _, err := s.post(tx, account, p); err != nil {
			return err
		}
		newBalance = account.Balance
		return nil
	})

	if err != nil {
		s.logger.Warn("Balance change rejected", "account_id", accountID, "type", txType.String(), "error", err)
		return decimal.Zero, err
	}

	s.logger.Info("Balance change applied", "account_id", accountID, "new_balance", newBalance)
	return newBalance, nil
}

func (s *LedgerService) Deposit(accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.ApplyBalanceChange(accountID, amount, domain.TransactionTypeDeposit)
}

func (s *LedgerService) Withdraw(accountID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	return s.ApplyBalanceChange(accountID, amount, domain.TransactionTypeWithdrawal)
}

// Transfer moves amount from source to destination. Both sides are
// validated before either balance changes.
func (s *LedgerService) Transfer(sourceID, destID uuid.UUID, amount decimal.Decimal) (*TransferResult, error) {
	s.logger.Info("Processing transfer",
		"source_account_id", sourceID,
		"destination_account_id", destID,
		"amount", amount)

	var result *TransferResult
	err := s.store.WithTransaction(func(tx *repository.Store) error {
		source, err := tx.Account().GetAccount(sourceID)
		if err != nil {
			return sideNotFound(err, "source", sourceID)
		}

		dest, err := tx.Account().GetAccount(destID)
		if err != nil {
			return sideNotFound(err, "destination", destID)
		}

		amount, err := normalizeAmount(amount)
		if err != nil {
			return err
		}

		if sourceID == destID {
			return errors.ErrSameAccountTransfer
		}

		if err := checkFunds(source, amount); err != nil {
			return err
		}

		transferID := uuid.New()

		debit, err := s.post(tx, source, posting{
			txType:       domain.TransactionTypeTransfer,
			direction:    domain.DirectionDebit,
			amount:       amount,
			counterparty: destID,
			transferID:   transferID,
		})
		if err != nil {
			return err
		}

		credit, err := s.post(tx, dest, posting{
			txType:       domain.TransactionTypeTransfer,
			direction:    domain.DirectionCredit,
			amount:       amount,
			counterparty: sourceID,
			transferID:   transferID,
		})
		if err != nil {
			return err
		}

		result = &TransferResult{
			TransferID:         transferID,
			SourceBalance:      source.Balance,
			DestinationBalance: dest.Balance,
			Debit:              debit,
			Credit:             credit,
		}
		return nil
	})

	if err != nil {
		s.logger.Warn("Transfer failed", "source_account_id", sourceID, "destination_account_id", destID, "error", err)
		return nil, err
	}

	s.logger.Info("Transfer completed successfully", "transfer_id", result.TransferID)
	return result, nil
}

// AccrueInterest credits round2(balance * rate) to every account. Accounts
// whose gain rounds to zero are skipped and get no record.
func (s *LedgerService) AccrueInterest(rate decimal.Decimal) (*InterestSummary, error) {
	if rate.IsNegative() {
		return nil, errors.ErrInvalidAmount.WithDetails("interest rate must not be negative")
	}

	summary := &InterestSummary{Rate: rate}
	summary.Total = decimal.Zero

	err := s.store.WithTransaction(func(tx *repository.Store) error {
		accounts, err := tx.Account().ListAccounts()
		if err != nil {
			return err
		}

		for i := range accounts {
			account := &accounts[i]
			gain := account.Balance.Mul(rate).Round(2)
			if !gain.IsPositive() {
				summary.Outcomes = append(summary.Outcomes, BatchOutcome{
					AccountID: account.ID,
					Status:    BatchSkipped,
					Amount:    decimal.Zero,
					Balance:   account.Balance,
				})
				continue
			}

			p := posting{txType: domain.TransactionTypeAnnualInterest, direction: domain.DirectionCredit, amount: gain}
			if _, err := s.post(tx, account, p); err != nil {
				return err
			}
			summary.Total = summary.Total.Add(gain)
			summary.Outcomes = append(summary.Outcomes, BatchOutcome{
				AccountID: account.ID,
				Status:    BatchApplied,
				Amount:    gain,
				Balance:   account.Balance,
			})
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Interest accrual failed", "rate", rate, "error", err)
		return nil, err
	}

	s.logger.Info("Interest accrued",
		"rate", rate,
		"accounts", len(summary.Outcomes),
		"credited", summary.Applied(),
		"total", summary.Total)
	return summary, nil
}

// ApplyMonthlyFee debits fee from every account that can cover it. The
// others are skipped with an insufficient funds reason; the batch always
// runs to the end.
func (s *LedgerService) ApplyMonthlyFee(fee decimal.Decimal) (*FeeSummary, error) {
	fee, err := normalizeAmount(fee)
	if err != nil {
		return nil, err
	}

	summary := &FeeSummary{Fee: fee}
	summary.Total = decimal.Zero

	err = s.store.WithTransaction(func(tx *repository.Store) error {
		accounts, err := tx.Account().ListAccounts()
		if err != nil {
			return err
		}

		for i := range accounts {
			account := &accounts[i]
			if reason := checkFunds(account, fee); reason != nil {
				s.logger.Warn("Monthly fee skipped", "account_id", account.ID, "balance", account.Balance)
				summary.Outcomes = append(summary.Outcomes, BatchOutcome{
					AccountID: account.ID,
					Status:    BatchSkipped,
					Amount:    decimal.Zero,
					Balance:   account.Balance,
					Reason:    reason,
				})
				continue
			}

			p := posting{txType: domain.TransactionTypeMonthlyFee, direction: domain.DirectionDebit, amount: fee}
			if _, err := s.post(tx, account, p); err != nil {
				return err
			}
			summary.Total = summary.Total.Add(fee)
			summary.Outcomes = append(summary.Outcomes, BatchOutcome{
				AccountID: account.ID,
				Status:    BatchApplied,
				Amount:    fee,
				Balance:   account.Balance,
			})
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Monthly fee failed", "fee", fee, "error", err)
		return nil, err
	}

	s.logger.Info("Monthly fee applied",
		"fee", fee,
		"accounts", len(summary.Outcomes),
		"charged", summary.Applied(),
		"total", summary.Total)
	return summary, nil
}

// History returns the records of an account in insertion order.
func (s *LedgerService) History(accountID uuid.UUID) ([]domain.Transaction, error) {
	if _, err := s.store.Account().GetAccount(accountID); err != nil {
		return nil, err
	}
	return s.store.Transaction().ListTransactionsByAccount(accountID)
}

// post writes the new balance and its record. Callers validate first, so
// post only fails on store errors, which roll back the whole transaction.
func (s *LedgerService) post(tx *repository.Store, account *domain.Account, p posting) (domain.Transaction, error) {
	newBalance := p.direction.Apply(account.Balance, p.amount)

	if err := tx.Account().UpdateAccountBalance(account.ID, newBalance); err != nil {
		return domain.Transaction{}, err
	}

	record := domain.Transaction{
		ID:                    uuid.New(),
		AccountID:             account.ID,
		Type:                  p.txType,
		Direction:             p.direction,
		Amount:                p.amount,
		CounterpartyAccountID: p.counterparty,
		TransferID:            p.transferID,
		CreatedAt:             s.now(),
	}
	if err := tx.Transaction().CreateTransaction(&record); err != nil {
		return domain.Transaction{}, err
	}

	account.Balance = newBalance
	return record, nil
}

// normalizeAmount rounds to cents and rejects anything not strictly
// positive afterwards.
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(2)
	if !rounded.IsPositive() {
		return decimal.Zero, errors.ErrInvalidAmount.WithDetails(amount.String())
	}
	return rounded, nil
}

// checkFunds is the only insufficient funds check; every debit goes
// through it.
func checkFunds(account *domain.Account, amount decimal.Decimal) *errors.AppError {
	if account.CanCover(amount) {
		return nil
	}
	return errors.ErrInsufficientFunds.WithDetailsf("balance %s", account.Balance.StringFixed(2))
}

func sideNotFound(err error, side string, id uuid.UUID) error {
	if errors.HasCode(err, errors.AccountNotFound) {
		return errors.ErrAccountNotFound.WithDetailsf("%s account %s", side, id)
	}
	return err
}
