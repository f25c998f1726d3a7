package bill

import (
	"fmt"

	"golang.org/x/text/language"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Italian,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

// parseLanguage canonicalizes a language code to one of en/de/fr/it.
// Regional variants such as "de-CH" match their base language.
func parseLanguage(code string) (string, error) {
	if code == "" {
		return "en", nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf < language.High {
		return "", fmt.Errorf("%w: %q (supported: en, de, fr, it)", ErrInvalidLanguage, code)
	}
	return supportedLanguages[idx].String(), nil
}

// labels holds the multilingual headings of the payment standard (Annex D).
// The English heading doubles as lookup key.
var labels = map[string]map[string]string{
	"Payment part": {
		"de": "Zahlteil",
		"fr": "Section paiement",
		"it": "Sezione pagamento",
	},
	"Account / Payable to": {
		"de": "Konto / Zahlbar an",
		"fr": "Compte / Payable à",
		"it": "Conto / Pagabile a",
	},
	"Reference": {
		"de": "Referenz",
		"fr": "Référence",
		"it": "Riferimento",
	},
	"Additional information": {
		"de": "Zusätzliche Informationen",
		"fr": "Informations supplémentaires",
		"it": "Informazioni supplementari",
	},
	"Currency": {
		"de": "Währung",
		"fr": "Monnaie",
		"it": "Valuta",
	},
	"Amount": {
		"de": "Betrag",
		"fr": "Montant",
		"it": "Importo",
	},
	"Receipt": {
		"de": "Empfangsschein",
		"fr": "Récépissé",
		"it": "Ricevuta",
	},
	"Acceptance point": {
		"de": "Annahmestelle",
		"fr": "Point de dépôt",
		"it": "Punto di accettazione",
	},
	"Separate before paying in": {
		"de": "Vor der Einzahlung abzutrennen",
		"fr": "A détacher avant le versement",
		"it": "Da staccare prima del versamento",
	},
	"Payable by": {
		"de": "Zahlbar durch",
		"fr": "Payable par",
		"it": "Pagabile da",
	},
	"Payable by (name/address)": {
		"de": "Zahlbar durch (Name/Adresse)",
		"fr": "Payable par (nom/adresse)",
		"it": "Pagabile da (nome/indirizzo)",
	},
	"In favour of": {
		"de": "Zugunsten",
		"fr": "En faveur de",
		"it": "A favore di",
	},
}

// Label translates a heading into the bill's label language.
func (b *Bill) Label(key string) string {
	if b.Language == "en" {
		return key
	}
	if tr, ok := labels[key][b.Language]; ok {
		return tr
	}
	return key
}
