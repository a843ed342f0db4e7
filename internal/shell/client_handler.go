package shell

import (
	"strings"

	"banking-ledger/internal/errors"
	"banking-ledger/internal/service"
)

type ClientHandler struct {
	clientService  *service.ClientService
	accountService *service.AccountService
	printer        *printer
}

func NewClientHandler(clientService *service.ClientService, accountService *service.AccountService, p *printer) *ClientHandler {
	return &ClientHandler{
		clientService:  clientService,
		accountService: accountService,
		printer:        p,
	}
}

func (h *ClientHandler) CreateClient(args []string) error {
	client, err := h.clientService.CreateClient(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	h.printer.info("Client added: %s (%s)", client.ID, client.FullName())
	return nil
}

func (h *ClientHandler) DeleteClient(args []string) error {
	clientID, err := parseID(args[0], errors.ErrInvalidClientID)
	if err != nil {
		return err
	}

	if err := h.clientService.DeleteClient(clientID); err != nil {
		return err
	}

	h.printer.info("Client deleted")
	return nil
}

func (h *ClientHandler) ListClients([]string) error {
	clients, err := h.clientService.ListClients()
	if err != nil {
		return err
	}

	if len(clients) == 0 {
		h.printer.info("No clients")
		return nil
	}

	h.printer.info("%d clients:", len(clients))
	for _, c := range clients {
		h.printer.line("| %s %s", c.ID, c.FullName())
	}
	return nil
}

func (h *ClientHandler) ClientTotal(args []string) error {
	clientID, err := parseID(args[0], errors.ErrInvalidClientID)
	if err != nil {
		return err
	}

	holdings, err := h.accountService.ClientTotal(clientID)
	if err != nil {
		return err
	}

	if holdings.Accounts == 0 {
		h.printer.info("Client %s has no accounts", clientID)
		return nil
	}

	h.printer.info("Client %s holds %s in total", clientID, h.printer.money(holdings.Total))
	return nil
}
