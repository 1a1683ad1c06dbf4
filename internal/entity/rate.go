package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LatestRate is the most recent quotation of one currency against EUR and USD.
type LatestRate struct {
	Country  string `db:"country" json:"country"`
	Currency string `db:"currency" json:"currency"`
	ISOCode  string `db:"iso_code" json:"iso_code"`
	// UICCode is the provider-internal numeric code, kept as a string
	// because it may carry leading zeros.
	UICCode string `db:"uic_code" json:"uic_code"`
	// EURRate and USDRate are zero when the provider reports "N.A.".
	// An actual zero quotation and an unavailable one are therefore
	// indistinguishable here; callers that care must inspect the raw
	// upstream value.
	EURRate                   decimal.Decimal `db:"eur_rate" json:"eur_rate"`
	USDRate                   decimal.Decimal `db:"usd_rate" json:"usd_rate"`
	USDExchangeConvention     string          `db:"usd_exchange_convention" json:"usd_exchange_convention"`
	USDExchangeConventionCode string          `db:"usd_exchange_convention_code" json:"usd_exchange_convention_code"`
	// ReferenceDate is midnight UTC of the day the quotation applies to.
	ReferenceDate time.Time `db:"reference_date" json:"reference_date"`
}
