// Package qrslip generates Swiss QR-bills: the machine-readable Swiss
// Payments Code payload and a printable SVG payment slip with receipt and
// payment parts.
//
// A bill is constructed once from fully validated inputs and is immutable
// afterwards except for its layout options. Construction fails eagerly with
// field-specific errors; a constructed bill is guaranteed encodable and
// renderable. Bills hold no shared state and may be used concurrently.
package qrslip

import (
	"fmt"
	"io"
	"os"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/qrslip/qrslip/internal/address"
	"github.com/qrslip/qrslip/internal/bill"
	"github.com/qrslip/qrslip/internal/iban"
	"github.com/qrslip/qrslip/internal/layout"
	"github.com/qrslip/qrslip/internal/reference"
	"github.com/qrslip/qrslip/internal/svg"
)

// Construction types of the public surface.
type (
	// Params is the immutable construction record of a bill.
	Params = bill.Params

	// AddressParams is the uniform field set for creditor and debtor
	// addresses; populated fields decide the structured/combined variant.
	AddressParams = address.Params

	// LayoutOptions are the layout-only flags, adjustable after
	// construction without re-validating payment data.
	LayoutOptions = bill.Options
)

// Validation errors, matchable with errors.Is.
var (
	ErrInvalidAccount               = iban.ErrInvalidAccount
	ErrInvalidReference             = reference.ErrInvalidReference
	ErrInvalidAddress               = address.ErrInvalidAddress
	ErrInvalidAmount                = bill.ErrInvalidAmount
	ErrInvalidCurrency              = bill.ErrInvalidCurrency
	ErrInvalidAdditionalInformation = bill.ErrInvalidAdditionalInformation
	ErrTooManyAlternativeProcedures = bill.ErrTooManyAlternativeProcedures
	ErrInvalidLanguage              = bill.ErrInvalidLanguage
)

// Bill is a validated Swiss QR-bill ready for encoding and rendering.
type Bill struct {
	inner *bill.Bill
}

// New validates all payment data and builds a bill.
func New(p Params) (*Bill, error) {
	inner, err := bill.New(p)
	if err != nil {
		return nil, err
	}
	return &Bill{inner: inner}, nil
}

// Payload returns the CRLF-delimited Swiss Payments Code text record that
// is embedded verbatim in the QR symbol.
func (b *Bill) Payload() string {
	return b.inner.Payload()
}

// Layout exposes the mutable layout-only options.
func (b *Bill) Layout() *LayoutOptions {
	return &b.inner.Options
}

// WriteSVG renders the bill to the given stream. The fullPage flag selects
// A4 page placement independent of the construction-time option.
func (b *Bill) WriteSVG(w io.Writer, fullPage bool) error {
	rendered := *b.inner
	rendered.Options.FullPage = fullPage

	code, err := qrcode.New(rendered.Payload(), qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode QR symbol: %w", err)
	}
	code.DisableBorder = true

	width, height := layout.CanvasSize(rendered.Options)
	canvas := svg.New(w, width, height)
	layout.NewEngine(nil).Draw(canvas, &rendered, code.Bitmap())
	canvas.Close()
	return nil
}

// SaveSVG renders the bill to a file. The file is only created after all
// validation has already happened at construction, so it is never left
// holding a partial document on a validation failure.
func (b *Bill) SaveSVG(path string, fullPage bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.WriteSVG(f, fullPage); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
