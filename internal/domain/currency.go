// internal/domain/currency.go
package domain

// Currency describes one supported currency option.
type Currency struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Locale string `json:"locale"`
}

// DefaultCurrency is assigned to users who have not picked one yet.
const DefaultCurrency = "USD"

// Currencies lists the currencies a user may select.
var Currencies = []Currency{
	{Value: "GTQ", Label: "Q Quetzal", Locale: "es-GT"},
	{Value: "USD", Label: "$ Dolar", Locale: "en-US"},
	{Value: "EUR", Label: "€ Euro", Locale: "de-DE"},
	{Value: "JPY", Label: "¥ Yen", Locale: "ja-JP"},
	{Value: "GBP", Label: "£ Libra Esterlina", Locale: "en-GB"},
}

// IsSupportedCurrency reports whether value is one of the selectable currencies.
func IsSupportedCurrency(value string) bool {
	for _, c := range Currencies {
		if c.Value == value {
			return true
		}
	}
	return false
}
