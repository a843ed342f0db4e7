package shell

import (
	"banking-ledger/internal/errors"
	"banking-ledger/internal/service"
)

type AccountHandler struct {
	accountService *service.AccountService
	printer        *printer
}

func NewAccountHandler(accountService *service.AccountService, p *printer) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		printer:        p,
	}
}

func (h *AccountHandler) OpenAccount(args []string) error {
	clientID, err := parseID(args[0], errors.ErrInvalidClientID)
	if err != nil {
		return err
	}

	initialBalance, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	account, err := h.accountService.CreateAccount(clientID, initialBalance)
	if err != nil {
		return err
	}

	h.printer.info("Account created: %s (balance %s)", account.ID, h.printer.money(account.Balance))
	return nil
}

func (h *AccountHandler) CloseAccount(args []string) error {
	accountID, err := parseID(args[0], errors.ErrInvalidAccountID)
	if err != nil {
		return err
	}

	if err := h.accountService.DeleteAccount(accountID); err != nil {
		return err
	}

	h.printer.info("Account deleted")
	return nil
}

func (h *AccountHandler) ShowAccount(args []string) error {
	clientID, err := parseID(args[0], errors.ErrInvalidClientID)
	if err != nil {
		return err
	}

	accountID, err := parseID(args[1], errors.ErrInvalidAccountID)
	if err != nil {
		return err
	}

	view, err := h.accountService.DescribeAccount(clientID, accountID)
	if err != nil {
		return err
	}

	h.printer.info("Account %s", view.Account.ID)
	h.printer.line("  Owner: %s", view.Owner.FullName())
	h.printer.line("  Balance: %s", h.printer.money(view.Account.Balance))
	return nil
}

func (h *AccountHandler) ListAccounts(args []string) error {
	clientID, err := parseID(args[0], errors.ErrInvalidClientID)
	if err != nil {
		return err
	}

	accounts, err := h.accountService.AccountsOf(clientID)
	if err != nil {
		return err
	}

	if len(accounts) == 0 {
		h.printer.info("Client %s has no accounts", clientID)
		return nil
	}

	h.printer.info("Accounts of client %s:", clientID)
	for _, a := range accounts {
		h.printer.line("| %s %s", a.ID, h.printer.money(a.Balance))
	}
	return nil
}

func (h *AccountHandler) BankTotal([]string) error {
	holdings, err := h.accountService.BankTotal()
	if err != nil {
		return err
	}

	if holdings.Accounts == 0 {
		h.printer.info("No accounts in the bank")
		return nil
	}

	h.printer.info("The bank holds %s across %d accounts", h.printer.money(holdings.Total), holdings.Accounts)
	return nil
}
