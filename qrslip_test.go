package qrslip

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func exampleParams() Params {
	return Params{
		Account: "CH5800791123000889012",
		Creditor: AddressParams{
			Name:       "Jane",
			PostalCode: "1000",
			Town:       "Lausanne",
			Country:    "CH",
		},
		Amount:   "22.45",
		Currency: "CHF",
	}
}

func TestPayload(t *testing.T) {
	b, err := New(exampleParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	lines := strings.Split(b.Payload(), "\r\n")
	if len(lines) != 31 {
		t.Fatalf("payload has %d lines, want 31", len(lines))
	}
	checks := map[int]string{
		0:  "SPC",
		3:  "CH5800791123000889012",
		18: "22.45",
		19: "CHF",
		27: "NON",
		30: "EPD",
	}
	for i, want := range checks {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Params)
		wantErr error
	}{
		{
			name:    "bad account",
			mutate:  func(p *Params) { p.Account = "CH0000000000000000000" },
			wantErr: ErrInvalidAccount,
		},
		{
			name:    "bad address",
			mutate:  func(p *Params) { p.Creditor.Town = "" },
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "bad amount",
			mutate:  func(p *Params) { p.Amount = "0.001" },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "bad currency",
			mutate:  func(p *Params) { p.Currency = "GBP" },
			wantErr: ErrInvalidCurrency,
		},
		{
			name:    "bad reference",
			mutate:  func(p *Params) { p.Reference = "RF00123" },
			wantErr: ErrInvalidReference,
		},
		{
			name:    "bad language",
			mutate:  func(p *Params) { p.Language = "pt" },
			wantErr: ErrInvalidLanguage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := exampleParams()
			tt.mutate(&p)
			if _, err := New(p); !errors.Is(err, tt.wantErr) {
				t.Errorf("New error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteSVG(t *testing.T) {
	b, err := New(exampleParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	var slip bytes.Buffer
	if err := b.WriteSVG(&slip, false); err != nil {
		t.Fatalf("WriteSVG error = %v", err)
	}
	out := slip.String()
	for _, want := range []string{`width="210mm"`, `height="110mm"`, "Receipt", "Payment part", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("slip output missing %q", want)
		}
	}

	var page bytes.Buffer
	if err := b.WriteSVG(&page, true); err != nil {
		t.Fatalf("WriteSVG error = %v", err)
	}
	if !strings.Contains(page.String(), `height="297mm"`) {
		t.Error("full-page output is not A4 sized")
	}

	// Rendering must not mutate the bill's own options.
	if b.Layout().FullPage {
		t.Error("WriteSVG mutated the bill's layout options")
	}
}

func TestWriteSVGDeterminism(t *testing.T) {
	b, err := New(exampleParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	render := func() string {
		var buf bytes.Buffer
		if err := b.WriteSVG(&buf, false); err != nil {
			t.Fatalf("WriteSVG error = %v", err)
		}
		return buf.String()
	}
	if render() != render() {
		t.Error("identical bill rendered different documents")
	}
}

func TestSaveSVG(t *testing.T) {
	b, err := New(exampleParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	path := filepath.Join(t.TempDir(), "bill.svg")
	if err := b.SaveSVG(path, false); err != nil {
		t.Fatalf("SaveSVG error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error = %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("saved file is not a complete SVG document")
	}
}

func TestLayoutOptions(t *testing.T) {
	b, err := New(exampleParams())
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	b.Layout().TopLine = false

	var buf bytes.Buffer
	if err := b.WriteSVG(&buf, false); err != nil {
		t.Fatalf("WriteSVG error = %v", err)
	}
	if !strings.Contains(buf.String(), `height="105mm"`) {
		t.Error("disabling the top line did not drop the scissors margin")
	}
}
