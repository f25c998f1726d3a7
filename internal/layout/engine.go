package layout

import (
	"fmt"
	"strings"

	"github.com/qrslip/qrslip/internal/bill"
	"github.com/qrslip/qrslip/internal/reference"
)

// Slip geometry in millimeters, from the payment standard's reference
// layout. Absolute positions never move; only font sizes and derived line
// heights scale with the bill's font factor.
const (
	SlipWidth    = 210.0
	SlipHeight   = 105.0
	ReceiptWidth = 62.0
	Margin       = 5.0

	// ScissorsMargin is added above the slip when the top separation line
	// is drawn outside full-page mode, making room for the cutting mark.
	ScissorsMargin = 5.0

	A4Width  = 210.0
	A4Height = 297.0

	QRSize    = 46.0
	CrossSize = 7.0

	qrY            = 17.0 // top of the QR symbol within the slip
	yAmountSection = 66.0
	yAcceptance    = 82.0
)

const lineSpacing = 1.2

type font struct {
	sizePt float64
	bold   bool
}

type fontSet struct {
	header font
	text   font
}

var (
	titleFont    = font{sizePt: 11, bold: true}
	altProcFont  = font{sizePt: 7}
	receiptFonts = fontSet{header: font{sizePt: 6, bold: true}, text: font{sizePt: 9}}
	paymentFonts = fontSet{header: font{sizePt: 8, bold: true}, text: font{sizePt: 10}}
)

const separatorStroke = `stroke="black" stroke-width="0.2" stroke-dasharray="2 1 1 1" fill="none"`

// CanvasSize returns the document dimensions in millimeters for the given
// layout options: a full A4 page, or the slip, extended by the scissors
// margin when the top line is drawn.
func CanvasSize(o bill.Options) (w, h float64) {
	if o.FullPage {
		return A4Width, A4Height
	}
	if o.TopLine {
		return SlipWidth, SlipHeight + ScissorsMargin
	}
	return SlipWidth, SlipHeight
}

// Engine lays out a bill and emits drawing instructions. It is a pure
// function of its inputs and safe for concurrent use.
type Engine struct {
	metrics FontMetrics
}

// NewEngine returns an engine measuring text with the given metrics, or the
// built-in Helvetica table when nil.
func NewEngine(m FontMetrics) *Engine {
	if m == nil {
		m = Helvetica{}
	}
	return &Engine{metrics: m}
}

// Draw renders the complete document: background, separators, receipt part
// and payment part. The QR module matrix comes from the external symbol
// encoder; validation has already happened at bill construction.
func (e *Engine) Draw(c Canvas, b *bill.Bill, modules [][]bool) {
	o := b.Options
	w, h := CanvasSize(o)

	c.Rect(0, 0, w, h, `fill="white"`)

	var yOff float64
	switch {
	case o.FullPage:
		yOff = A4Height - SlipHeight
	case o.TopLine:
		yOff = ScissorsMargin
	}

	if o.TopLine {
		c.Line(0, yOff, SlipWidth, yOff, separatorStroke)
		if o.FullPage {
			hint := b.Label("Separate before paying in")
			c.Text(SlipWidth/2, yOff-2, hint, e.attrs(font{sizePt: 7, bold: true}, o.FontFactor)+` text-anchor="middle"`)
		} else {
			e.drawScissors(c, SlipWidth/2, yOff)
		}
	}
	if o.PaymentLine && !o.FullPage {
		c.Line(ReceiptWidth, yOff, ReceiptWidth, yOff+SlipHeight, separatorStroke)
	}

	e.drawReceipt(c, b, yOff)
	e.drawPayment(c, b, modules, yOff)
}

func (e *Engine) drawReceipt(c Canvas, b *bill.Bill, yOff float64) {
	scale := b.Options.FontFactor
	x := Margin
	width := ReceiptWidth - 2*Margin
	fs := receiptFonts

	y := yOff + Margin + titleFont.sizePt*scale*ptToMM
	c.Text(x, y, b.Label("Receipt"), e.attrs(titleFont, scale))
	y += 3

	y = e.paragraph(c, x, y, width, b.Label("Account / Payable to"), payableTo(b), fs, scale)
	if b.Reference.Kind != reference.None {
		y = e.paragraph(c, x, y, width, b.Label("Reference"), []string{b.FormattedReference()}, fs, scale)
	}
	e.payableBy(c, b, x, y, width, fs, scale, 52, 20)

	e.amountSection(c, b, x, yOff+yAmountSection, fs, scale, 30, 10)

	c.Text(x+width, yOff+yAcceptance, b.Label("Acceptance point"),
		e.attrs(fs.header, scale)+` text-anchor="end"`)
}

func (e *Engine) drawPayment(c Canvas, b *bill.Bill, modules [][]bool, yOff float64) {
	scale := b.Options.FontFactor
	x := ReceiptWidth + Margin
	rightX := ReceiptWidth + 61
	rightWidth := SlipWidth - Margin - rightX
	fs := paymentFonts

	y := yOff + Margin + titleFont.sizePt*scale*ptToMM
	c.Text(x, y, b.Label("Payment part"), e.attrs(titleFont, scale))

	e.drawQR(c, modules, x, yOff+qrY, QRSize)
	e.amountSection(c, b, x, yOff+yAmountSection, fs, scale, 40, 15)

	y = yOff + Margin
	y = e.paragraph(c, rightX, y, rightWidth, b.Label("Account / Payable to"), payableTo(b), fs, scale)
	if b.Reference.Kind != reference.None {
		y = e.paragraph(c, rightX, y, rightWidth, b.Label("Reference"), []string{b.FormattedReference()}, fs, scale)
	}
	if b.Message != "" || b.BillingInfo != "" {
		// Message and billing information print as separate paragraphs;
		// their embedded line breaks survive here even though the payload
		// flattens them.
		var info []string
		if b.Message != "" {
			info = append(info, b.Message)
		}
		if b.BillingInfo != "" {
			info = append(info, b.BillingInfo)
		}
		y = e.paragraph(c, rightX, y, rightWidth, b.Label("Additional information"), info, fs, scale)
	}
	e.payableBy(c, b, rightX, y, rightWidth, fs, scale, 65, 25)

	if len(b.AltProcedures) > 0 {
		th := altProcFont.sizePt * scale * ptToMM * lineSpacing
		apY := yOff + SlipHeight - Margin - th*float64(len(b.AltProcedures)-1)
		for _, ap := range b.AltProcedures {
			c.Text(x, apY, ap, e.attrs(altProcFont, scale))
			apY += th
		}
	}
}

// paragraph draws a bold header followed by wrapped text lines and returns
// the y coordinate where the next paragraph starts.
func (e *Engine) paragraph(c Canvas, x, y, width float64, header string, lines []string, fs fontSet, scale float64) float64 {
	hh := fs.header.sizePt * scale * ptToMM
	th := fs.text.sizePt * scale * ptToMM

	y += hh
	c.Text(x, y, header, e.attrs(fs.header, scale))
	for _, raw := range lines {
		for _, line := range Wrap(e.metrics, raw, fs.text.sizePt*scale, width) {
			y += th * lineSpacing
			c.Text(x, y, line, e.attrs(fs.text, scale))
		}
	}
	return y + 2
}

// payableBy draws the debtor paragraph, or its header over a blank corner
// field when no debtor is known.
func (e *Engine) payableBy(c Canvas, b *bill.Bill, x, y, width float64, fs fontSet, scale, fieldW, fieldH float64) {
	if b.Debtor != nil {
		e.paragraph(c, x, y, width, b.Label("Payable by"), b.Debtor.Paragraph(), fs, scale)
		return
	}
	hh := fs.header.sizePt * scale * ptToMM
	y += hh
	c.Text(x, y, b.Label("Payable by (name/address)"), e.attrs(fs.header, scale))
	e.blankField(c, x, y+2, fieldW, fieldH)
}

// amountSection draws the currency and amount columns at a fixed y, with a
// blank field when the amount is left open.
func (e *Engine) amountSection(c Canvas, b *bill.Bill, x, y float64, fs fontSet, scale, fieldW, fieldH float64) {
	const indent = 14 // second column offset

	hh := fs.header.sizePt * scale * ptToMM
	th := fs.text.sizePt * scale * ptToMM

	c.Text(x, y+hh, b.Label("Currency"), e.attrs(fs.header, scale))
	c.Text(x+indent, y+hh, b.Label("Amount"), e.attrs(fs.header, scale))
	c.Text(x, y+hh+th*lineSpacing, b.Currency, e.attrs(fs.text, scale))
	if b.Amount != nil {
		c.Text(x+indent, y+hh+th*lineSpacing, b.FormattedAmount(), e.attrs(fs.text, scale))
	} else {
		e.blankField(c, x+indent, y+hh+1, fieldW, fieldH)
	}
}

// drawQR emits the module matrix as a single path scaled to the mandated
// physical size, then overlays the national cross on an opaque backing.
func (e *Engine) drawQR(c Canvas, modules [][]bool, x, y, size float64) {
	n := len(modules)
	if n == 0 {
		return
	}
	ms := size / float64(n)
	var d strings.Builder
	for row, cells := range modules {
		for col, filled := range cells {
			if !filled {
				continue
			}
			fmt.Fprintf(&d, "M%s %sh%sv%sh-%sz",
				fmtNum(x+float64(col)*ms), fmtNum(y+float64(row)*ms),
				fmtNum(ms), fmtNum(ms), fmtNum(ms))
		}
	}
	c.Path(d.String(), `fill="black"`)
	e.drawCross(c, x+size/2, y+size/2)
}

// drawCross draws the Swiss cross: a white backing square, the black flag
// square and the white cross at the proportions fixed by the flag law
// (arms one-sixth longer than wide, cross at 5:8 of the flag height).
func (e *Engine) drawCross(c Canvas, cx, cy float64) {
	backing := CrossSize + 1.0
	c.Rect(cx-backing/2, cy-backing/2, backing, backing, `fill="white"`)
	c.Rect(cx-CrossSize/2, cy-CrossSize/2, CrossSize, CrossSize, `fill="black"`)

	f := CrossSize
	margin := f * 3 / 16
	armLen := f * 7 / 32
	armW := f * 3 / 16
	a := margin + armLen
	b := a + armW
	cEdge := a + armLen + armW

	x0 := cx - f/2
	y0 := cy - f/2
	points := [][2]float64{
		{a, margin}, {b, margin}, {b, a}, {cEdge, a},
		{cEdge, b}, {b, b}, {b, cEdge}, {a, cEdge},
		{a, b}, {margin, b}, {margin, a}, {a, a},
	}
	var d strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&d, "%s%s %s", cmd, fmtNum(x0+p[0]), fmtNum(y0+p[1]))
	}
	d.WriteString("z")
	c.Path(d.String(), `fill="white"`)
}

// drawScissors centers the cutting mark on the horizontal separator.
func (e *Engine) drawScissors(c Canvas, cx, y float64) {
	c.Path(scissorsPath, fmt.Sprintf(`transform="translate(%s %s)" fill="black"`,
		fmtNum(cx-scissorsWidth/2), fmtNum(y-scissorsHeight/2)))
}

// blankField draws the open corner marks of a field to be filled in by hand.
func (e *Engine) blankField(c Canvas, x, y, w, h float64) {
	const stroke = `stroke="black" stroke-width="0.25" stroke-linecap="square" fill="none"`
	const mark = 3.0 // corner mark arm length
	corners := [][6]float64{
		{x, y + mark, x, y, x + mark, y},                         // upper left
		{x + w - mark, y, x + w, y, x + w, y + mark},             // upper right
		{x, y + h - mark, x, y + h, x + mark, y + h},             // bottom left
		{x + w - mark, y + h, x + w, y + h, x + w, y + h - mark}, // bottom right
	}
	for _, p := range corners {
		d := fmt.Sprintf("M%s %sL%s %sL%s %s",
			fmtNum(p[0]), fmtNum(p[1]), fmtNum(p[2]), fmtNum(p[3]), fmtNum(p[4]), fmtNum(p[5]))
		c.Path(d, stroke)
	}
}

func (e *Engine) attrs(f font, scale float64) string {
	s := fmt.Sprintf(`font-family="Helvetica" font-size="%s"`, fmtNum(f.sizePt*scale*ptToMM))
	if f.bold {
		s += ` font-weight="bold"`
	}
	return s
}

// payableTo is the account line followed by the creditor's print address.
func payableTo(b *bill.Bill) []string {
	return append([]string{b.FormattedAccount()}, b.Creditor.Paragraph()...)
}

func fmtNum(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", v), "0"), ".")
}
