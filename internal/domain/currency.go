package domain

// Currencies are identified by their ISO 4217 numeric codes, matching what
// the remote account ledger stores on each account.
const (
	CurrencyRUB = "810"
	CurrencyUSD = "840"
	CurrencyBYN = "933"

	// ReferenceCurrency is the pivot for all cross-rates: the rate feed
	// quotes every currency against it, and its own rate is implicitly 1.
	ReferenceCurrency = CurrencyRUB
)

var supportedCurrencies = map[string]bool{
	CurrencyRUB: true,
	CurrencyUSD: true,
	CurrencyBYN: true,
}

// ValidCurrency reports whether code is one of the supported numeric codes.
func ValidCurrency(code string) bool {
	return supportedCurrencies[code]
}
