package shell

import (
	"github.com/shopspring/decimal"

	"banking-ledger/internal/domain"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/service"
)

type TransactionHandler struct {
	ledgerService *service.LedgerService
	printer       *printer
	interestRate  decimal.Decimal
	monthlyFee    decimal.Decimal
}

func NewTransactionHandler(
	ledgerService *service.LedgerService,
	p *printer,
	interestRate decimal.Decimal,
	monthlyFee decimal.Decimal,
) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
		printer:       p,
		interestRate:  interestRate,
		monthlyFee:    monthlyFee,
	}
}

func (h *TransactionHandler) Deposit(args []string) error {
	return h.balanceChange(args, domain.TransactionTypeDeposit)
}

func (h *TransactionHandler) Withdraw(args []string) error {
	return h.balanceChange(args, domain.TransactionTypeWithdrawal)
}

func (h *TransactionHandler) balanceChange(args []string, txType domain.TransactionType) error {
	accountID, err := parseID(args[0], errors.ErrInvalidAccountID)
	if err != nil {
		return err
	}

	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	newBalance, err := h.ledgerService.ApplyBalanceChange(accountID, amount, txType)
	if err != nil {
		return err
	}

	h.printer.info("%s of %s done. New balance: %s", txType, h.printer.money(amount), h.printer.money(newBalance))
	return nil
}

func (h *TransactionHandler) Transfer(args []string) error {
	sourceID, err := parseID(args[0], errors.ErrInvalidAccountID)
	if err != nil {
		return err
	}

	destID, err := parseID(args[1], errors.ErrInvalidAccountID)
	if err != nil {
		return err
	}

	amount, err := parseAmount(args[2])
	if err != nil {
		return err
	}

	result, err := h.ledgerService.Transfer(sourceID, destID, amount)
	if err != nil {
		return err
	}

	h.printer.info("Transfer of %s done", h.printer.money(result.Debit.Amount))
	h.printer.line("  %s: %s", sourceID, h.printer.money(result.SourceBalance))
	h.printer.line("  %s: %s", destID, h.printer.money(result.DestinationBalance))
	return nil
}

func (h *TransactionHandler) History(args []string) error {
	accountID, err := parseID(args[0], errors.ErrInvalidAccountID)
	if err != nil {
		return err
	}

	records, err := h.ledgerService.History(accountID)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		h.printer.info("No transactions")
		return nil
	}

	h.printer.info("Transactions of account %s:", accountID)
	for _, r := range records {
		switch {
		case r.Type == domain.TransactionTypeTransfer && r.Direction == domain.DirectionDebit:
			h.printer.line("| %s of %s to %s on %s", r.Type, h.printer.money(r.Amount), r.CounterpartyAccountID, h.printer.date(r.CreatedAt))
		case r.Type == domain.TransactionTypeTransfer:
			h.printer.line("| %s of %s from %s on %s", r.Type, h.printer.money(r.Amount), r.CounterpartyAccountID, h.printer.date(r.CreatedAt))
		default:
			h.printer.line("| %s of %s on %s", r.Type, h.printer.money(r.Amount), h.printer.date(r.CreatedAt))
		}
	}
	return nil
}

func (h *TransactionHandler) AccrueInterest([]string) error {
	summary, err := h.ledgerService.AccrueInterest(h.interestRate)
	if err != nil {
		return err
	}

	if summary.Empty() {
		h.printer.info("No accounts in the bank")
		return nil
	}

	h.printer.info("Annual interest of %s%% credited to %d of %d accounts (total %s)",
		summary.Rate.Mul(decimal.NewFromInt(100)).String(),
		summary.Applied(),
		len(summary.Outcomes),
		h.printer.money(summary.Total))
	return nil
}

func (h *TransactionHandler) ApplyMonthlyFee([]string) error {
	summary, err := h.ledgerService.ApplyMonthlyFee(h.monthlyFee)
	if err != nil {
		return err
	}

	if summary.Empty() {
		h.printer.info("No accounts in the bank")
		return nil
	}

	for _, skipped := range summary.Skipped() {
		h.printer.warn(errors.NewAppErrorf(skipped.Reason.Code, "fee not applied to account %s: %s", skipped.AccountID, skipped.Reason.Message).
			WithDetails(skipped.Reason.Details))
	}

	h.printer.info("Monthly fee of %s applied to %d of %d accounts (total %s)",
		h.printer.money(summary.Fee),
		summary.Applied(),
		len(summary.Outcomes),
		h.printer.money(summary.Total))
	return nil
}
