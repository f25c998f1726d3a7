// Package reference validates and classifies payment references.
//
// A reference is one of three kinds: a 27-digit QR reference (QRR) with a
// recursive modulo-10 check digit, an ISO 11649 creditor reference (SCOR)
// starting with "RF" and closed by a mod-97 checksum, or absent (None).
package reference

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qrslip/qrslip/internal/checksum"
)

// ErrInvalidReference reports a reference with an unrecognized shape or a
// failed checksum.
var ErrInvalidReference = errors.New("invalid reference")

// Kind tags the reference variant.
type Kind int

const (
	None Kind = iota
	QRR
	SCOR
)

// Tag returns the payload tag of the kind: "NON", "QRR" or "SCOR".
func (k Kind) Tag() string {
	switch k {
	case QRR:
		return "QRR"
	case SCOR:
		return "SCOR"
	default:
		return "NON"
	}
}

const qrrLength = 27

// Reference is a classified, checksum-verified payment reference.
// Value holds the normalized form (no separators); it is empty for None.
type Reference struct {
	Kind  Kind
	Value string
}

// Parse normalizes, classifies and verifies a reference. An empty input
// yields a None reference.
func Parse(s string) (Reference, error) {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if s == "" {
		return Reference{Kind: None}, nil
	}

	if strings.HasPrefix(s, "RF") {
		if err := validateSCOR(s); err != nil {
			return Reference{}, err
		}
		return Reference{Kind: SCOR, Value: s}, nil
	}

	if err := validateQRR(s); err != nil {
		return Reference{}, err
	}
	return Reference{Kind: QRR, Value: s}, nil
}

// CheckDigit computes the modulo-10 check digit closing a 26-digit QR
// reference payload.
func CheckDigit(digits string) (int, error) {
	if len(digits) != qrrLength-1 {
		return 0, fmt.Errorf("%w: QR reference payload must have %d digits", ErrInvalidReference, qrrLength-1)
	}
	d, err := checksum.Mod10CheckDigit(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	return d, nil
}

func validateQRR(s string) error {
	if len(s) != qrrLength {
		return fmt.Errorf("%w: QR reference must have %d digits", ErrInvalidReference, qrrLength)
	}
	want, err := CheckDigit(s[:qrrLength-1])
	if err != nil {
		return err
	}
	if int(s[qrrLength-1]-'0') != want {
		return fmt.Errorf("%w: QR reference checksum failure", ErrInvalidReference)
	}
	return nil
}

func validateSCOR(s string) error {
	if len(s) < 5 || len(s) > 25 {
		return fmt.Errorf("%w: creditor reference must have 5 to 25 characters", ErrInvalidReference)
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return fmt.Errorf("%w: invalid character %q in creditor reference", ErrInvalidReference, r)
		}
	}
	rem, err := checksum.Mod97(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidReference, err)
	}
	if rem != 1 {
		return fmt.Errorf("%w: creditor reference checksum failure", ErrInvalidReference)
	}
	return nil
}

// Format renders the reference in print form: QR references in blocks of
// five from the right, creditor references in blocks of four from the left.
func (r Reference) Format() string {
	switch r.Kind {
	case QRR:
		return groupFromRight(r.Value, 5)
	case SCOR:
		return groupFromLeft(r.Value, 4)
	default:
		return ""
	}
}

func groupFromLeft(s string, n int) string {
	var b strings.Builder
	for i := 0; i < len(s); i += n {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + n
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}

func groupFromRight(s string, n int) string {
	head := len(s) % n
	var parts []string
	if head > 0 {
		parts = append(parts, s[:head])
	}
	for i := head; i < len(s); i += n {
		parts = append(parts, s[i:i+n])
	}
	return strings.Join(parts, " ")
}
