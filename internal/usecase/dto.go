package usecase

import "github.com/shopspring/decimal"

type RateResponse struct {
	ISOCode       string          `json:"iso_code"`
	Currency      string          `json:"currency"`
	Country       string          `json:"country"`
	EURRate       decimal.Decimal `json:"eur_rate"`
	USDRate       decimal.Decimal `json:"usd_rate"`
	ReferenceDate string          `json:"reference_date"`

	// Set only when a conversion was requested.
	Amount   *decimal.Decimal `json:"amount,omitempty"`
	EURValue *decimal.Decimal `json:"eur_value,omitempty"`
}
