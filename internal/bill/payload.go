package bill

import (
	"strings"

	"github.com/qrslip/qrslip/internal/address"
)

// Fixed tokens of the Swiss Payments Code record.
const (
	qrType     = "SPC"  // Swiss Payments Code
	version    = "0200" // version of the specification
	codingType = "1"    // Latin character set
	trailer    = "EPD"  // end payment data
)

// addressFieldCount is the number of payload lines per address block,
// including the variant tag.
const addressFieldCount = 7

// Payload serializes the bill into the CRLF-delimited text record embedded
// in the QR symbol. Field order and presence follow the payment standard
// exactly; free-text fields have their line breaks flattened to spaces.
//
// The billing information line keeps the reserved separator as prefix. It
// and the alternative procedure lines are only emitted when present, all
// earlier lines always hold their position.
func (b *Bill) Payload() string {
	lines := make([]string, 0, 34)

	// Header
	lines = append(lines, qrType, version, codingType)

	// Creditor information
	lines = append(lines, b.Account)
	lines = append(lines, b.Creditor.PayloadLines()...)

	// Ultimate creditor, reserved for future use
	lines = append(lines, emptyAddressLines()...)

	// Payment amount information
	if b.Amount != nil {
		lines = append(lines, b.Amount.StringFixed(2))
	} else {
		lines = append(lines, "")
	}
	lines = append(lines, b.Currency)

	// Ultimate debtor
	if b.Debtor != nil {
		lines = append(lines, b.Debtor.PayloadLines()...)
	} else {
		lines = append(lines, emptyAddressLines()...)
	}

	// Payment reference
	lines = append(lines, b.Reference.Kind.Tag(), b.Reference.Value)

	// Additional information
	lines = append(lines, address.Flatten(b.Message))
	lines = append(lines, trailer)

	if b.BillingInfo != "" || len(b.AltProcedures) > 0 {
		billing := ""
		if b.BillingInfo != "" {
			billing = InfoSeparator + address.Flatten(b.BillingInfo)
		}
		lines = append(lines, billing)
		for _, ap := range b.AltProcedures {
			lines = append(lines, address.Flatten(ap))
		}
	}

	return strings.Join(lines, "\r\n")
}

func emptyAddressLines() []string {
	return make([]string, addressFieldCount)
}
