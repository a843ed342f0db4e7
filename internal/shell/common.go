package shell

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-ledger/internal/errors"
)

const (
	okPrefix    = "✅ "
	errorPrefix = "❌ "
	dateLayout  = "02/01/2006 15:04:05"
)

// printer renders results for the console.
type printer struct {
	out      io.Writer
	currency string
	location *time.Location
}

func (p *printer) info(format string, args ...interface{}) {
	fmt.Fprintf(p.out, okPrefix+format+"\n", args...)
}

func (p *printer) line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) warn(appErr *errors.AppError) {
	writeError(p.out, appErr)
}

func (p *printer) money(d decimal.Decimal) string {
	return d.StringFixed(2) + p.currency
}

func (p *printer) date(t time.Time) string {
	if p.location != nil {
		t = t.In(p.location)
	}
	return t.Format(dateLayout)
}

func writeError(w io.Writer, appErr *errors.AppError) {
	if appErr.Details != "" {
		fmt.Fprintf(w, "%s%s (%s)\n", errorPrefix, appErr.Message, appErr.Details)
		return
	}
	fmt.Fprintf(w, "%s%s\n", errorPrefix, appErr.Message)
}

func parseID(arg string, invalid *errors.AppError) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, invalid.WithDetails(arg)
	}
	return id, nil
}

// parseAmount rejects anything that is not a decimal number. Sign checks
// are left to the services.
func parseAmount(arg string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Zero, errors.NewAppError(errors.InvalidAmount, "invalid amount format").WithDetails(arg)
	}
	return amount, nil
}
