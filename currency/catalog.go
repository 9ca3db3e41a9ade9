// Package currency renders VP totals as formatted amounts in the supported
// display currencies.
package currency

import "sort"

// Profile is the static description of one display currency. BasePrice is
// the regional storefront price of the 11,000 VP baseline bundle; it is
// reference data for collaborators, not an input to conversion.
type Profile struct {
	Code      string
	Symbol    string
	Decimals  int
	BasePrice float64
}

// Catalog maps display keys to currency profiles. Static configuration; the
// keys double as the user-facing menu entries.
var Catalog = map[string]Profile{
	"United States Dollar ($)":  {Code: "USD", Symbol: "$", Decimals: 0, BasePrice: 99.99},
	"Australian Dollar (A$)":    {Code: "AUD", Symbol: "A$", Decimals: 2, BasePrice: 129.99},
	"Brazilian Real (R$)":       {Code: "BRL", Symbol: "R$", Decimals: 2, BasePrice: 349.9},
	"Canadian Dollar (CA$)":     {Code: "CAD", Symbol: "CA$", Decimals: 2, BasePrice: 139.99},
	"Euro (€)":                  {Code: "EUR", Symbol: "€", Decimals: 2, BasePrice: 100},
	"Indian Rupee (₹)":          {Code: "INR", Symbol: "₹", Decimals: 2, BasePrice: 7900},
	"Malaysian Ringgit (MYR)":   {Code: "MYR", Symbol: "MYR", Decimals: 2, BasePrice: 199.90},
	"Mexican Dollar (MX$)":      {Code: "MXN", Symbol: "MX$", Decimals: 2, BasePrice: 1999},
	"New Zealand Dollar (NZ$)":  {Code: "NZD", Symbol: "NZ$", Decimals: 2, BasePrice: 144.99},
	"Russian Ruble (₽)":         {Code: "RUB", Symbol: "₽", Decimals: 2, BasePrice: 5990},
	"Singapore Dollar (SGD)":    {Code: "SGD", Symbol: "SGD", Decimals: 2, BasePrice: 128.98},
	"Turkish Lira (₺)":          {Code: "TRY", Symbol: "₺", Decimals: 2, BasePrice: 700},
	"Pound Sterling (£)":        {Code: "GBP", Symbol: "£", Decimals: 2, BasePrice: 90},
}

// Keys returns the display keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(Catalog))
	for k := range Catalog {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
