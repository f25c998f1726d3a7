// Package address models the postal addresses printed on a QR-bill.
//
// An address comes in one of two mutually exclusive shapes: structured
// (street and house number as separate fields) or combined (two free
// address lines). The country is always required; the remaining fields
// decide the variant.
package address

import (
	"errors"
	"fmt"
	"strings"

	"github.com/biter777/countries"
)

// ErrInvalidAddress reports mixed variants, missing required fields or a
// malformed postal code.
var ErrInvalidAddress = errors.New("invalid address")

// Params is the uniform field set accepted for both address variants.
// Street/HouseNumber/PostalCode/Town select the structured variant,
// Line1/Line2 the combined one; populating fields of both is an error.
type Params struct {
	Name        string
	Line1       string
	Line2       string
	Street      string
	HouseNumber string
	PostalCode  string
	Town        string
	Country     string
}

// Field length caps from the payment standard.
const (
	maxName       = 70
	maxLine       = 70
	maxHouseNum   = 16
	maxPostalCode = 16
	maxTown       = 35
)

// Address is a validated postal address.
type Address struct {
	Structured bool
	Name       string
	Line1      string // street in structured form
	Line2      string // house number in structured form
	PostalCode string
	Town       string
	Country    string // ISO 3166 alpha-2
}

// New discriminates the variant from the populated fields, validates them
// and returns the normalized address. Literal "\n" escapes in text fields
// are converted to real line breaks; they only affect the print rendering.
func New(p Params) (*Address, error) {
	combined := p.Line1 != "" || p.Line2 != ""
	structured := p.Street != "" || p.HouseNumber != "" || p.PostalCode != "" || p.Town != ""
	if combined && structured {
		return nil, fmt.Errorf("%w: structured and combined fields must not be mixed", ErrInvalidAddress)
	}

	name, err := checkField(unescape(p.Name), "name", maxName)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidAddress)
	}

	country, err := resolveCountry(p.Country)
	if err != nil {
		return nil, err
	}

	if combined {
		line1, err := checkField(unescape(p.Line1), "address line 1", maxLine)
		if err != nil {
			return nil, err
		}
		line2, err := checkField(unescape(p.Line2), "address line 2", maxLine)
		if err != nil {
			return nil, err
		}
		if line2 == "" {
			return nil, fmt.Errorf("%w: address line 2 is required for a combined address", ErrInvalidAddress)
		}
		return &Address{Name: name, Line1: line1, Line2: line2, Country: country}, nil
	}

	street, err := checkField(unescape(p.Street), "street", maxLine)
	if err != nil {
		return nil, err
	}
	houseNum, err := checkField(p.HouseNumber, "house number", maxHouseNum)
	if err != nil {
		return nil, err
	}
	pcode, err := checkField(p.PostalCode, "postal code", maxPostalCode)
	if err != nil {
		return nil, err
	}
	town, err := checkField(unescape(p.Town), "town", maxTown)
	if err != nil {
		return nil, err
	}
	if pcode == "" || town == "" {
		return nil, fmt.Errorf("%w: postal code and town are required for a structured address", ErrInvalidAddress)
	}
	if err := checkPostalCode(pcode, country); err != nil {
		return nil, err
	}
	return &Address{
		Structured: true,
		Name:       name,
		Line1:      street,
		Line2:      houseNum,
		PostalCode: pcode,
		Town:       town,
		Country:    country,
	}, nil
}

// PayloadLines returns the seven machine-readable fields of the address:
// the variant tag ("S" or "K") followed by name, line 1, line 2, postal
// code, town and country. Line breaks are flattened to single spaces.
func (a *Address) PayloadLines() []string {
	tag := "K"
	if a.Structured {
		tag = "S"
	}
	return []string{
		tag,
		Flatten(a.Name),
		Flatten(a.Line1),
		Flatten(a.Line2),
		a.PostalCode,
		Flatten(a.Town),
		a.Country,
	}
}

// Paragraph returns the print rendering of the address, one entry per
// printed line. Embedded line breaks are preserved for wrapping.
func (a *Address) Paragraph() []string {
	lines := splitLines(a.Name)
	if a.Structured {
		street := strings.TrimSpace(a.Line1 + " " + a.Line2)
		if street != "" {
			lines = append(lines, splitLines(street)...)
		}
		lines = append(lines, fmt.Sprintf("%s-%s %s", a.Country, a.PostalCode, a.Town))
		return lines
	}
	if a.Line1 != "" {
		lines = append(lines, splitLines(a.Line1)...)
	}
	lines = append(lines, splitLines(a.Line2)...)
	return lines
}

// Flatten collapses any embedded line breaks to single spaces, the form
// required inside the machine-readable payload.
func Flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// unescape converts literal two-character "\n" escapes to real line breaks.
func unescape(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func checkField(v, name string, max int) (string, error) {
	v = strings.TrimSpace(v)
	if len(v) > max {
		return "", fmt.Errorf("%w: %s cannot have more than %d characters", ErrInvalidAddress, name, max)
	}
	return v, nil
}

// checkPostalCode enforces the numeric four-digit rule of the supported
// countries; other countries only get the generic length cap.
func checkPostalCode(pcode, country string) error {
	if country != "CH" && country != "LI" {
		return nil
	}
	if len(pcode) != 4 {
		return fmt.Errorf("%w: %s postal code must have 4 digits", ErrInvalidAddress, country)
	}
	for _, r := range pcode {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %s postal code must be numeric", ErrInvalidAddress, country)
		}
	}
	return nil
}

// resolveCountry maps a country code or name to its ISO 3166 alpha-2 code.
// Local-language spellings of the supported countries are accepted so the
// country can be written as on a postal envelope.
func resolveCountry(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: country is required", ErrInvalidAddress)
	}
	switch strings.ToLower(s) {
	case "schweiz", "suisse", "svizzera", "svizra":
		return "CH", nil
	case "fürstentum liechtenstein":
		return "LI", nil
	}
	c := countries.ByName(s)
	if c == countries.Unknown {
		return "", fmt.Errorf("%w: unknown country %q", ErrInvalidAddress, s)
	}
	return c.Alpha2(), nil
}
