package address

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewStructured(t *testing.T) {
	a, err := New(Params{
		Name:        "Robert Schneider AG",
		Street:      "Rue du Lac",
		HouseNumber: "1268",
		PostalCode:  "2501",
		Town:        "Biel",
		Country:     "CH",
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if !a.Structured {
		t.Error("expected a structured address")
	}

	wantPayload := []string{"S", "Robert Schneider AG", "Rue du Lac", "1268", "2501", "Biel", "CH"}
	if got := a.PayloadLines(); !reflect.DeepEqual(got, wantPayload) {
		t.Errorf("PayloadLines() = %v, want %v", got, wantPayload)
	}

	wantParagraph := []string{"Robert Schneider AG", "Rue du Lac 1268", "CH-2501 Biel"}
	if got := a.Paragraph(); !reflect.DeepEqual(got, wantParagraph) {
		t.Errorf("Paragraph() = %v, want %v", got, wantParagraph)
	}
}

func TestNewCombined(t *testing.T) {
	a, err := New(Params{
		Name:    "Jane",
		Line1:   "Av. de la Gare 12",
		Line2:   "1000 Lausanne",
		Country: "CH",
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if a.Structured {
		t.Error("expected a combined address")
	}

	wantPayload := []string{"K", "Jane", "Av. de la Gare 12", "1000 Lausanne", "", "", "CH"}
	if got := a.PayloadLines(); !reflect.DeepEqual(got, wantPayload) {
		t.Errorf("PayloadLines() = %v, want %v", got, wantPayload)
	}

	wantParagraph := []string{"Jane", "Av. de la Gare 12", "1000 Lausanne"}
	if got := a.Paragraph(); !reflect.DeepEqual(got, wantParagraph) {
		t.Errorf("Paragraph() = %v, want %v", got, wantParagraph)
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{
			name: "mixed variants",
			params: Params{
				Name: "Jane", Street: "Rue du Lac", Line2: "1000 Lausanne",
				PostalCode: "1000", Town: "Lausanne", Country: "CH",
			},
		},
		{
			name:   "missing name",
			params: Params{PostalCode: "1000", Town: "Lausanne", Country: "CH"},
		},
		{
			name:   "structured without postal code",
			params: Params{Name: "Jane", Town: "Lausanne", Country: "CH"},
		},
		{
			name:   "structured without town",
			params: Params{Name: "Jane", PostalCode: "1000", Country: "CH"},
		},
		{
			name:   "combined without line 2",
			params: Params{Name: "Jane", Line1: "Av. de la Gare 12", Country: "CH"},
		},
		{
			name:   "missing country",
			params: Params{Name: "Jane", PostalCode: "1000", Town: "Lausanne"},
		},
		{
			name:   "unknown country",
			params: Params{Name: "Jane", PostalCode: "1000", Town: "Lausanne", Country: "XY"},
		},
		{
			name:   "Swiss postal code with five digits",
			params: Params{Name: "Jane", PostalCode: "10000", Town: "Lausanne", Country: "CH"},
		},
		{
			name:   "Swiss postal code with letters",
			params: Params{Name: "Jane", PostalCode: "10A0", Town: "Lausanne", Country: "CH"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.params)
			if err == nil {
				t.Fatal("New succeeded, want error")
			}
			if !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("New error = %v, want ErrInvalidAddress", err)
			}
		})
	}
}

func TestCountryResolution(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "CH", want: "CH"},
		{input: "Switzerland", want: "CH"},
		{input: "Schweiz", want: "CH"},
		{input: "Suisse", want: "CH"},
		{input: "Svizzera", want: "CH"},
		{input: "Svizra", want: "CH"},
		{input: "LI", want: "LI"},
		{input: "Liechtenstein", want: "LI"},
		{input: "Fürstentum Liechtenstein", want: "LI"},
		{input: "FR", want: "FR"},
	}
	for _, tt := range tests {
		a, err := New(Params{Name: "Jane", PostalCode: "1000", Town: "Lausanne", Country: tt.input})
		if err != nil {
			t.Errorf("New with country %q error = %v", tt.input, err)
			continue
		}
		if a.Country != tt.want {
			t.Errorf("country %q resolved to %q, want %q", tt.input, a.Country, tt.want)
		}
	}
}

func TestForeignPostalCodeRule(t *testing.T) {
	// The four-digit rule only binds CH and LI.
	if _, err := New(Params{Name: "Jane", PostalCode: "75008", Town: "Paris", Country: "FR"}); err != nil {
		t.Errorf("five-digit French postal code rejected: %v", err)
	}
}

func TestNewlineHandling(t *testing.T) {
	a, err := New(Params{
		Name:       `Muster & Söhne\nHolzweg 37`,
		PostalCode: "4051",
		Town:       "Basel",
		Country:    "CH",
	})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	// Payload flattens the break, print keeps it.
	if got := a.PayloadLines()[1]; got != "Muster & Söhne Holzweg 37" {
		t.Errorf("payload name = %q, want flattened form", got)
	}
	wantParagraph := []string{"Muster & Söhne", "Holzweg 37", "CH-4051 Basel"}
	if got := a.Paragraph(); !reflect.DeepEqual(got, wantParagraph) {
		t.Errorf("Paragraph() = %v, want %v", got, wantParagraph)
	}
}

func TestFlatten(t *testing.T) {
	if got := Flatten("a\r\nb\nc\rd"); got != "a b c d" {
		t.Errorf("Flatten = %q, want %q", got, "a b c d")
	}
}
