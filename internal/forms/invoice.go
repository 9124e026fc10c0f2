package forms

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxAmountDollars is the largest dollar amount a single invoice may carry.
const MaxAmountDollars = 1_000_000

var maxAmount = decimal.NewFromInt(MaxAmountDollars)

// InvoiceInput is the validated result of an invoice form submission.
// AmountCents is round(dollars * 100).
type InvoiceInput struct {
	ID          uuid.UUID
	CustomerID  uuid.UUID
	AmountCents int64
	Status      string
}

type invoiceForm struct {
	ID         string `validate:"omitempty,uuid"`
	CustomerID string `validate:"required,uuid"`
	Amount     string `validate:"required"`
	Status     string `validate:"required,oneof=pending paid"`
}

// ParseInvoiceForm checks the submitted fields and converts them into a typed
// record. The id is path-supplied and empty for creates. A nil Errors map
// means the input is valid.
func ParseInvoiceForm(id string, values url.Values) (*InvoiceInput, Errors) {
	form := invoiceForm{
		ID:         strings.TrimSpace(id),
		CustomerID: strings.TrimSpace(values.Get("customerId")),
		Amount:     strings.TrimSpace(values.Get("amount")),
		Status:     strings.TrimSpace(values.Get("status")),
	}

	errs := Errors{}
	if err := validate.Struct(form); err != nil {
		for _, fe := range fieldErrors(err) {
			switch fe.Field() {
			case "ID":
				errs.add("id", MsgInvalidID)
			case "CustomerID":
				errs.add("customerId", "Please select a customer.")
			case "Amount":
				errs.add("amount", "Please enter an amount greater than $0.")
			case "Status":
				errs.add("status", "Please select an invoice status.")
			}
		}
	}

	input := &InvoiceInput{Status: form.Status}

	if form.Amount != "" {
		cents, msg := amountToCents(form.Amount)
		if msg != "" {
			errs.add("amount", msg)
		} else {
			input.AmountCents = cents
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	input.CustomerID = uuid.MustParse(form.CustomerID)
	if form.ID != "" {
		input.ID = uuid.MustParse(form.ID)
	}
	return input, nil
}

// amountToCents coerces the raw dollar amount and converts it to cents.
// Bounds: strictly greater than 0, at most MaxAmountDollars.
func amountToCents(raw string) (int64, string) {
	d, err := decimal.NewFromString(raw)
	if err != nil || d.LessThanOrEqual(decimal.Zero) {
		return 0, "Please enter an amount greater than $0."
	}
	if d.GreaterThan(maxAmount) {
		return 0, "Amount must be $1,000,000 or less."
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), ""
}
