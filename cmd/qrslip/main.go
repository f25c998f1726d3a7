// Command qrslip generates a Swiss QR-bill payment slip as an SVG document.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/qrslip/qrslip"
	"github.com/qrslip/qrslip/pkg/logging"
)

func main() {
	logging.Setup()
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "qrslip",
		Usage: "generate Swiss QR-bill payment slips as SVG",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "account", Usage: "creditor IBAN (CH or LI)", Required: true},
			&cli.StringFlag{Name: "creditor-name", Usage: "creditor name", Required: true},
			&cli.StringFlag{Name: "creditor-street"},
			&cli.StringFlag{Name: "creditor-housenumber"},
			&cli.StringFlag{Name: "creditor-postalcode"},
			&cli.StringFlag{Name: "creditor-city"},
			&cli.StringFlag{Name: "creditor-line1", Usage: "combined address line 1"},
			&cli.StringFlag{Name: "creditor-line2", Usage: "combined address line 2"},
			&cli.StringFlag{Name: "creditor-country", Value: "CH"},
			&cli.StringFlag{Name: "debtor-name"},
			&cli.StringFlag{Name: "debtor-street"},
			&cli.StringFlag{Name: "debtor-housenumber"},
			&cli.StringFlag{Name: "debtor-postalcode"},
			&cli.StringFlag{Name: "debtor-city"},
			&cli.StringFlag{Name: "debtor-line1"},
			&cli.StringFlag{Name: "debtor-line2"},
			&cli.StringFlag{Name: "debtor-country", Value: "CH"},
			&cli.StringFlag{Name: "amount", Usage: "payment amount, e.g. 22.45"},
			&cli.StringFlag{Name: "currency", Value: "CHF", Usage: "CHF or EUR"},
			&cli.StringFlag{Name: "reference", Usage: "QR reference or ISO 11649 creditor reference"},
			&cli.StringFlag{Name: "reference-number", Hidden: true}, // deprecated spelling of --reference
			&cli.StringFlag{Name: "additional-information", Usage: "message, optionally followed by ## and billing information"},
			&cli.StringFlag{Name: "extra-infos", Hidden: true}, // deprecated spelling of --additional-information
			&cli.StringSliceFlag{Name: "alt-procedure", Usage: "alternative procedure line (repeatable, max 2)"},
			&cli.StringFlag{Name: "language", Value: "en", Usage: "label language: en, de, fr or it"},
			&cli.BoolFlag{Name: "no-top-line", Usage: "omit the top separation line"},
			&cli.BoolFlag{Name: "no-payment-line", Usage: "omit the receipt/payment separation line"},
			&cli.BoolFlag{Name: "full-page", Usage: "place the bill on a full A4 page"},
			&cli.Float64Flag{Name: "font-factor", Value: 1.0, Usage: "scale factor applied to font sizes"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output SVG path"},
			&cli.BoolFlag{Name: "text", Usage: "print the QR payload to stdout"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	params := qrslip.Params{
		Account: c.String("account"),
		Creditor: qrslip.AddressParams{
			Name:        c.String("creditor-name"),
			Street:      c.String("creditor-street"),
			HouseNumber: c.String("creditor-housenumber"),
			PostalCode:  c.String("creditor-postalcode"),
			Town:        c.String("creditor-city"),
			Line1:       c.String("creditor-line1"),
			Line2:       c.String("creditor-line2"),
			Country:     c.String("creditor-country"),
		},
		Debtor:                debtorParams(c),
		Amount:                c.String("amount"),
		Currency:              c.String("currency"),
		Reference:             deprecated(c, "reference", "reference-number"),
		AdditionalInformation: deprecated(c, "additional-information", "extra-infos"),
		AlternativeProcedures: c.StringSlice("alt-procedure"),
		Language:              c.String("language"),
		OmitTopLine:           c.Bool("no-top-line"),
		OmitPaymentLine:       c.Bool("no-payment-line"),
		FullPage:              c.Bool("full-page"),
		FontFactor:            c.Float64("font-factor"),
	}

	b, err := qrslip.New(params)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("text") {
		fmt.Println(b.Payload())
		if !c.IsSet("output") {
			return nil
		}
	}

	output := c.String("output")
	if output == "" {
		output = defaultOutput(c.String("account"))
	}
	if filepath.Ext(output) != ".svg" {
		slog.Warn("output file does not have the .svg extension", "path", output)
	}

	if err := b.SaveSVG(output, c.Bool("full-page")); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	slog.Info("bill written", "path", output)
	return nil
}

// debtorParams assembles the optional debtor address; the debtor is only
// considered present when a name is given.
func debtorParams(c *cli.Context) *qrslip.AddressParams {
	if c.String("debtor-name") == "" {
		return nil
	}
	return &qrslip.AddressParams{
		Name:        c.String("debtor-name"),
		Street:      c.String("debtor-street"),
		HouseNumber: c.String("debtor-housenumber"),
		PostalCode:  c.String("debtor-postalcode"),
		Town:        c.String("debtor-city"),
		Line1:       c.String("debtor-line1"),
		Line2:       c.String("debtor-line2"),
		Country:     c.String("debtor-country"),
	}
}

// deprecated resolves a flag that has a hidden legacy spelling, warning
// once when the legacy name is used.
func deprecated(c *cli.Context, name, legacy string) string {
	v := c.String(name)
	if lv := c.String(legacy); lv != "" {
		slog.Warn("flag is deprecated", "flag", "--"+legacy, "use", "--"+name)
		if v == "" {
			v = lv
		}
	}
	return v
}

func defaultOutput(account string) string {
	account = strings.ReplaceAll(account, " ", "")
	return fmt.Sprintf("%s-%d.svg", account, time.Now().Unix())
}
