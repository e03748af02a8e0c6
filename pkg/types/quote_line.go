package types

import "github.com/shopspring/decimal"

// QuoteLine is one priced position on a budget or order. LineTotal is always
// UnitPrice * Quantity exactly; nothing re-rounds the pair independently.
type QuoteLine struct {
	ProductName    string          `json:"product_name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	LineTotal      decimal.Decimal `json:"line_total"`
	PrintedAreaCm2 decimal.Decimal `json:"printed_area_cm2"`
	UsesDTF        bool            `json:"uses_dtf"`
}

// QuoteLines is the ordered item list persisted as a JSONB column.
type QuoteLines []QuoteLine
