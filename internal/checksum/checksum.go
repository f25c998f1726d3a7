// Package checksum implements the modulo arithmetic behind Swiss payment
// identifiers: the ISO 7064 mod 97-10 scheme used by IBANs and creditor
// references, and the recursive modulo-10 scheme used by QR references.
package checksum

import "fmt"

// mod10Table is the carry transition table of the recursive modulo-10
// checksum. The row index is the running carry, the column index the next
// digit. Each row is the previous row rotated left by one position.
var mod10Table = [10][10]int{
	{0, 9, 4, 6, 8, 2, 7, 1, 3, 5},
	{9, 4, 6, 8, 2, 7, 1, 3, 5, 0},
	{4, 6, 8, 2, 7, 1, 3, 5, 0, 9},
	{6, 8, 2, 7, 1, 3, 5, 0, 9, 4},
	{8, 2, 7, 1, 3, 5, 0, 9, 4, 6},
	{2, 7, 1, 3, 5, 0, 9, 4, 6, 8},
	{7, 1, 3, 5, 0, 9, 4, 6, 8, 2},
	{1, 3, 5, 0, 9, 4, 6, 8, 2, 7},
	{3, 5, 0, 9, 4, 6, 8, 2, 7, 1},
	{5, 0, 9, 4, 6, 8, 2, 7, 1, 3},
}

// Mod10 feeds digits through the carry table and returns the final carry
// state. It fails on any non-digit input.
func Mod10(digits string) (int, error) {
	carry := 0
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit character %q in %q", r, digits)
		}
		carry = mod10Table[carry][r-'0']
	}
	return carry, nil
}

// Mod10CheckDigit returns the check digit closing the given digit sequence:
// the complement-to-10 of the final carry state.
func Mod10CheckDigit(digits string) (int, error) {
	carry, err := Mod10(digits)
	if err != nil {
		return 0, err
	}
	return (10 - carry) % 10, nil
}

// Mod97 computes the ISO 7064 mod 97-10 remainder of the input after the
// standard rearrangement: the first four characters (country or "RF" prefix
// plus the two check digits) are moved to the end, and letters are expanded
// to their two-digit values A=10..Z=35. The checksum is valid iff the
// remainder equals 1.
func Mod97(s string) (int, error) {
	if len(s) < 5 {
		return 0, fmt.Errorf("input %q too short for mod-97 check", s)
	}
	rearranged := s[4:] + s[:4]
	rem := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			rem = (rem*100 + int(r-'A') + 10) % 97
		default:
			return 0, fmt.Errorf("invalid character %q in %q", r, s)
		}
	}
	return rem, nil
}
