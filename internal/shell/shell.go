package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"banking-ledger/internal/config"
	"banking-ledger/internal/errors"
	"banking-ledger/internal/repository"
	"banking-ledger/internal/service"
)

type commandFunc func(args []string) error

// command takes exactly args fields, or at least args when variadic.
type command struct {
	usage    string
	args     int
	variadic bool
	run      commandFunc
}

// Shell reads one command per line and prints the outcome.
type Shell struct {
	commands map[string]command
	out      io.Writer
	prompt   string
	logger   *slog.Logger
}

// Options tune the shell's console, not the ledger.
type Options struct {
	Out    io.Writer
	Prompt string
}

// New wires the services over store and registers every command.
func New(cfg config.Config, store *repository.Store, logger *slog.Logger, opts Options) *Shell {
	clock := cfg.Now
	if opts.Out == nil {
		opts.Out = io.Discard
	}

	clientService := service.NewClientService(store, logger)
	accountService := service.NewAccountService(store, logger)
	ledgerService := service.NewLedgerService(store, logger, clock)

	p := &printer{out: opts.Out, currency: cfg.Currency, location: cfg.Location}

	clientHandler := NewClientHandler(clientService, accountService, p)
	accountHandler := NewAccountHandler(accountService, p)
	transactionHandler := NewTransactionHandler(ledgerService, p, cfg.InterestRate, cfg.MonthlyFee)

	s := &Shell{
		commands: make(map[string]command),
		out:      opts.Out,
		prompt:   opts.Prompt,
		logger:   logger,
	}

	// Client commands
	s.handleVariadic("client create", "client create <first-name> <last-name...>", 2, clientHandler.CreateClient)
	s.handle("client delete", "client delete <client-id>", 1, clientHandler.DeleteClient)
	s.handle("client list", "client list", 0, clientHandler.ListClients)
	s.handle("client total", "client total <client-id>", 1, clientHandler.ClientTotal)

	// Account commands
	s.handle("account open", "account open <client-id> <initial-balance>", 2, accountHandler.OpenAccount)
	s.handle("account close", "account close <account-id>", 1, accountHandler.CloseAccount)
	s.handle("account show", "account show <client-id> <account-id>", 2, accountHandler.ShowAccount)
	s.handle("account list", "account list <client-id>", 1, accountHandler.ListAccounts)
	s.handle("bank total", "bank total", 0, accountHandler.BankTotal)

	// Transaction commands
	s.handle("deposit", "deposit <account-id> <amount>", 2, transactionHandler.Deposit)
	s.handle("withdraw", "withdraw <account-id> <amount>", 2, transactionHandler.Withdraw)
	s.handle("transfer", "transfer <from-account-id> <to-account-id> <amount>", 3, transactionHandler.Transfer)
	s.handle("history", "history <account-id>", 1, transactionHandler.History)
	s.handle("interest", "interest", 0, transactionHandler.AccrueInterest)
	s.handle("fee", "fee", 0, transactionHandler.ApplyMonthlyFee)

	s.handle("help", "help", 0, s.help)

	return s
}

func (s *Shell) handle(name, usage string, args int, run commandFunc) {
	s.commands[name] = command{usage: usage, args: args, run: loggingMiddleware(s.logger, name, run)}
}

func (s *Shell) handleVariadic(name, usage string, minArgs int, run commandFunc) {
	s.commands[name] = command{usage: usage, args: minArgs, variadic: true, run: loggingMiddleware(s.logger, name, run)}
}

// loggingMiddleware adds command logging
func loggingMiddleware(logger *slog.Logger, name string, next commandFunc) commandFunc {
	return func(args []string) error {
		start := time.Now()

		err := next(args)

		code := ""
		if err != nil {
			code = string(errors.As(err).Code)
		}
		logger.Info("command completed",
			"command", name,
			"args", len(args),
			"error_code", code,
			"duration", time.Since(start),
		)
		return err
	}
}

// Run executes commands read from in until it is exhausted, a quit command
// is read, or ctx is done.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	// releases the reader when Run returns with input still queued
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		s.writePrompt()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := s.Execute(line); quit {
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether the shell
// should stop. Failures are printed, never returned.
func (s *Shell) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	}

	cmd, args, ok := s.lookup(fields)
	if !ok {
		writeError(s.out, errors.NewAppError(errors.InvalidInput, "unknown command").WithDetails(strings.Join(fields, " ")))
		return false
	}

	if len(args) < cmd.args || (!cmd.variadic && len(args) > cmd.args) {
		writeError(s.out, errors.NewAppError(errors.InvalidInput, "usage: "+cmd.usage))
		return false
	}

	if err := cmd.run(args); err != nil {
		writeError(s.out, errors.As(err))
	}
	return false
}

// lookup prefers a two word command ("account open") over a one word one.
func (s *Shell) lookup(fields []string) (command, []string, bool) {
	if len(fields) >= 2 {
		name := strings.ToLower(fields[0] + " " + fields[1])
		if cmd, ok := s.commands[name]; ok {
			return cmd, fields[2:], true
		}
	}
	cmd, ok := s.commands[strings.ToLower(fields[0])]
	return cmd, fields[1:], ok
}

func (s *Shell) help([]string) error {
	usages := make([]string, 0, len(s.commands))
	for _, cmd := range s.commands {
		usages = append(usages, cmd.usage)
	}
	sort.Strings(usages)

	fmt.Fprintln(s.out, "Commands:")
	for _, u := range usages {
		fmt.Fprintf(s.out, "  %s\n", u)
	}
	fmt.Fprintln(s.out, "  quit")
	return nil
}

func (s *Shell) writePrompt() {
	if s.prompt != "" {
		fmt.Fprint(s.out, s.prompt)
	}
}
