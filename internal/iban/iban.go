// Package iban validates the creditor account of a Swiss QR-bill.
//
// Only 21-character IBANs of Switzerland (CH) and Liechtenstein (LI) are
// accepted. An account whose institution identifier (characters 5-9) falls
// in the reserved QR-IID block is a QR-IBAN and mandates a QR reference.
package iban

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/qrslip/qrslip/internal/checksum"
)

// ErrInvalidAccount reports an account that fails length, charset, country
// or checksum validation.
var ErrInvalidAccount = errors.New("invalid account")

// The QR-IID block reserved for institutions issuing QR-IBANs.
const (
	qrIIDStart = 30000
	qrIIDEnd   = 31999
)

const ibanLength = 21

var allowedCountries = []string{"CH", "LI"}

// Normalize strips all spaces from the account and upper-cases it.
func Normalize(account string) string {
	return strings.ToUpper(strings.ReplaceAll(account, " ", ""))
}

// Validate normalizes the account and checks length, charset, country and
// the ISO 7064 mod-97 checksum. It returns the normalized account.
func Validate(account string) (string, error) {
	account = Normalize(account)

	if len(account) != ibanLength {
		return "", fmt.Errorf("%w: IBAN must have exactly %d characters", ErrInvalidAccount, ibanLength)
	}
	for _, r := range account {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return "", fmt.Errorf("%w: invalid character %q", ErrInvalidAccount, r)
		}
	}

	country := account[:2]
	allowed := false
	for _, c := range allowedCountries {
		if country == c {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w: IBAN must start with: %s", ErrInvalidAccount, strings.Join(allowedCountries, ", "))
	}

	rem, err := checksum.Mod97(account)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidAccount, err)
	}
	if rem != 1 {
		return "", fmt.Errorf("%w: checksum failure", ErrInvalidAccount)
	}
	return account, nil
}

// IsQRIBAN reports whether the normalized account carries a QR-IID.
// The account must already have passed Validate.
func IsQRIBAN(account string) bool {
	if len(account) != ibanLength {
		return false
	}
	iid, err := strconv.Atoi(account[4:9])
	if err != nil {
		return false
	}
	return iid >= qrIIDStart && iid <= qrIIDEnd
}

// Format renders a normalized account in print form, grouped in blocks of
// four characters: "CH44 3199 9123 0008 8901 2".
func Format(account string) string {
	var b strings.Builder
	for i, r := range account {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
