package model

import "github.com/shopspring/decimal"

// Prices and amounts travel as JSON numbers, matching what the client renders.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// MoneyPlaces is the number of decimal places kept on every monetary value.
const MoneyPlaces = 2

// RoundMoney rounds an amount half away from zero to MoneyPlaces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}
