package checksum

import "testing"

// The carry table must be the base row rotated left once per carry state.
func TestMod10TableRotation(t *testing.T) {
	base := [10]int{0, 9, 4, 6, 8, 2, 7, 1, 3, 5}
	for carry := 0; carry < 10; carry++ {
		for digit := 0; digit < 10; digit++ {
			want := base[(carry+digit)%10]
			if got := mod10Table[carry][digit]; got != want {
				t.Errorf("mod10Table[%d][%d] = %d, want %d", carry, digit, got, want)
			}
		}
	}
}

func TestMod10CheckDigit(t *testing.T) {
	tests := []struct {
		digits  string
		want    int
		wantErr bool
	}{
		{digits: "21000000000313947143000901", want: 7},
		{digits: "00000000000000000000000000", want: 0},
		{digits: "", want: 0},
		{digits: "123a", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Mod10CheckDigit(tt.digits)
		if (err != nil) != tt.wantErr {
			t.Errorf("Mod10CheckDigit(%q) error = %v, wantErr %v", tt.digits, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Mod10CheckDigit(%q) = %d, want %d", tt.digits, got, tt.want)
		}
	}
}

// Feeding the digits through the table must match recomputing the carry
// from scratch with the base row alone.
func TestMod10Determinism(t *testing.T) {
	base := [10]int{0, 9, 4, 6, 8, 2, 7, 1, 3, 5}
	inputs := []string{
		"21000000000313947143000901",
		"00000000000000000000000001",
		"99999999999999999999999999",
		"12345678901234567890123456",
		"31415926535897932384626433",
	}
	for _, digits := range inputs {
		carry := 0
		for _, r := range digits {
			carry = base[(carry+int(r-'0'))%10]
		}
		want := (10 - carry) % 10
		got, err := Mod10CheckDigit(digits)
		if err != nil {
			t.Fatalf("Mod10CheckDigit(%q) error = %v", digits, err)
		}
		if got != want {
			t.Errorf("Mod10CheckDigit(%q) = %d, want %d", digits, got, want)
		}
	}
}

func TestMod97(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "CH5800791123000889012", want: 1},
		{input: "CH4431999123000889012", want: 1},
		{input: "LI21088100002324013AA", want: 1},
		{input: "RF18539007547034", want: 1},
		{input: "RF18000000000539007547034", want: 1},
		{input: "RF18000000000539007547035", want: 28},
		{input: "CH4431999123000899012", want: 50},
		{input: "CH44", wantErr: true},
		{input: "CH58007911230008890?2", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Mod97(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Mod97(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Mod97(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
