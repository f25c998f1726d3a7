// Package bill aggregates the validated components of a Swiss QR-bill,
// enforces the cross-field invariants of the payment standard and
// serializes the result into the Swiss Payments Code payload.
package bill

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/qrslip/qrslip/internal/address"
	"github.com/qrslip/qrslip/internal/iban"
	"github.com/qrslip/qrslip/internal/reference"
)

var (
	// ErrInvalidAmount reports an amount out of range or with the wrong
	// decimal precision.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidCurrency reports a currency other than CHF or EUR.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrInvalidAdditionalInformation reports misuse of the reserved
	// separator token or an exceeded length budget.
	ErrInvalidAdditionalInformation = errors.New("invalid additional information")

	// ErrTooManyAlternativeProcedures reports more than two alternative
	// procedure lines.
	ErrTooManyAlternativeProcedures = errors.New("too many alternative procedures")

	// ErrInvalidLanguage reports a label language outside en/de/fr/it.
	ErrInvalidLanguage = errors.New("invalid language")
)

// InfoSeparator is the reserved token splitting the additional information
// into the unstructured message and the billing information segment. It
// must not appear inside either segment itself.
const InfoSeparator = "##"

// Combined length budget of the unstructured message and the billing
// information, and the per-line cap of alternative procedures.
const (
	maxAdditionalInfo = 140
	maxAltProcedure   = 100
	maxAltProcedures  = 2
)

// Options are the layout-only flags of a bill. Unlike the payment data they
// may be adjusted after construction without re-validation.
type Options struct {
	TopLine     bool
	PaymentLine bool
	FullPage    bool
	FontFactor  float64
}

// Params is the immutable construction record for a bill, built once from
// parsed CLI arguments or API input and passed by value.
type Params struct {
	Account               string
	Creditor              address.Params
	Debtor                *address.Params
	Amount                string
	Currency              string
	Reference             string
	AdditionalInformation string
	AlternativeProcedures []string
	Language              string
	OmitTopLine           bool
	OmitPaymentLine       bool
	FullPage              bool
	FontFactor            float64
}

// Bill is a fully validated payment description. Once constructed it is
// guaranteed encodable and renderable; only Options may change afterwards.
type Bill struct {
	Account       string // normalized IBAN
	Creditor      *address.Address
	Debtor        *address.Address // nil if absent
	Amount        *decimal.Decimal // nil if absent
	Currency      string
	Reference     reference.Reference
	Message       string // unstructured message, line breaks preserved
	BillingInfo   string // billing information without the separator token
	AltProcedures []string
	Language      string
	Options       Options
}

// New validates all payment data eagerly and assembles the bill. Validation
// failures carry one of the package sentinel errors.
func New(p Params) (*Bill, error) {
	account, err := iban.Validate(p.Account)
	if err != nil {
		return nil, err
	}

	creditor, err := address.New(p.Creditor)
	if err != nil {
		return nil, fmt.Errorf("creditor: %w", err)
	}

	var debtor *address.Address
	if p.Debtor != nil {
		debtor, err = address.New(*p.Debtor)
		if err != nil {
			return nil, fmt.Errorf("debtor: %w", err)
		}
	}

	amount, err := parseAmount(p.Amount)
	if err != nil {
		return nil, err
	}

	currency := p.Currency
	if currency == "" {
		currency = "CHF"
	}
	if currency != "CHF" && currency != "EUR" {
		return nil, fmt.Errorf("%w: currency can only contain: CHF, EUR", ErrInvalidCurrency)
	}

	ref, err := reference.Parse(p.Reference)
	if err != nil {
		return nil, err
	}
	if iban.IsQRIBAN(account) && ref.Kind != reference.QRR {
		return nil, fmt.Errorf("%w: a QR-IBAN requires a QR reference", reference.ErrInvalidReference)
	}
	if !iban.IsQRIBAN(account) && ref.Kind == reference.QRR {
		return nil, fmt.Errorf("%w: a QR reference requires a QR-IBAN", reference.ErrInvalidReference)
	}

	message, billingInfo, err := splitAdditionalInfo(p.AdditionalInformation)
	if err != nil {
		return nil, err
	}

	if len(p.AlternativeProcedures) > maxAltProcedures {
		return nil, fmt.Errorf("%w: at most %d lines are allowed", ErrTooManyAlternativeProcedures, maxAltProcedures)
	}
	for _, ap := range p.AlternativeProcedures {
		if utf8.RuneCountInString(ap) > maxAltProcedure {
			return nil, fmt.Errorf("%w: alternative procedure line cannot have more than %d characters",
				ErrInvalidAdditionalInformation, maxAltProcedure)
		}
	}

	lang, err := parseLanguage(p.Language)
	if err != nil {
		return nil, err
	}

	opts := Options{
		TopLine:     !p.OmitTopLine,
		PaymentLine: !p.OmitPaymentLine,
		FullPage:    p.FullPage,
		FontFactor:  p.FontFactor,
	}
	if opts.FontFactor <= 0 {
		opts.FontFactor = 1
	}

	return &Bill{
		Account:       account,
		Creditor:      creditor,
		Debtor:        debtor,
		Amount:        amount,
		Currency:      currency,
		Reference:     ref,
		Message:       message,
		BillingInfo:   billingInfo,
		AltProcedures: append([]string(nil), p.AlternativeProcedures...),
		Language:      lang,
		Options:       opts,
	}, nil
}

// parseAmount accepts a decimal string with optional apostrophe or space
// grouping. The amount must have at most two decimal places and lie in
// 0.01 .. 999999999.99.
func parseAmount(s string) (*decimal.Decimal, error) {
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
	}
	if d.Exponent() < -2 {
		return nil, fmt.Errorf("%w: at most two decimal places are allowed", ErrInvalidAmount)
	}
	min := decimal.New(1, -2)           // 0.01
	max := decimal.New(99999999999, -2) // 999999999.99
	if d.LessThan(min) || d.GreaterThan(max) {
		return nil, fmt.Errorf("%w: amount must be between 0.01 and 999999999.99", ErrInvalidAmount)
	}
	return &d, nil
}

// splitAdditionalInfo separates the unstructured message from the billing
// information at the first occurrence of the reserved token. A second
// occurrence is rejected rather than silently escaped.
func splitAdditionalInfo(s string) (message, billingInfo string, err error) {
	if s == "" {
		return "", "", nil
	}
	idx := strings.Index(s, InfoSeparator)
	if idx >= 0 {
		message, billingInfo = s[:idx], s[idx+len(InfoSeparator):]
		if strings.Contains(billingInfo, InfoSeparator) {
			return "", "", fmt.Errorf("%w: the reserved separator %q may appear at most once",
				ErrInvalidAdditionalInformation, InfoSeparator)
		}
	} else {
		message = s
	}
	if utf8.RuneCountInString(message)+utf8.RuneCountInString(billingInfo) > maxAdditionalInfo {
		return "", "", fmt.Errorf("%w: message and billing information cannot contain more than %d characters",
			ErrInvalidAdditionalInformation, maxAdditionalInfo)
	}
	// Literal "\n" escapes become real breaks for the print rendering; the
	// payload flattens them again.
	message = strings.ReplaceAll(message, `\n`, "\n")
	return message, billingInfo, nil
}

// FormattedAccount renders the account for print, grouped in blocks of four.
func (b *Bill) FormattedAccount() string {
	return iban.Format(b.Account)
}

// FormattedReference renders the reference for print, or "" if none.
func (b *Bill) FormattedReference() string {
	return b.Reference.Format()
}

// FormattedAmount renders the amount for print with space-grouped
// thousands, or "" if no amount is set.
func (b *Bill) FormattedAmount() string {
	if b.Amount == nil {
		return ""
	}
	s := b.Amount.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)
	return strings.Join(groups, " ") + "." + frac
}
