package entity

import "time"

// Currency is one entry of the provider's currency registry.
type Currency struct {
	ISOCode   string    `db:"iso_code" json:"iso_code"`
	Name      string    `db:"name" json:"name"`
	Graph     bool      `db:"graph" json:"graph"`
	Countries []Country `json:"countries"`
}

// Country associates a currency with a country and its validity window.
// Countries keep the order the provider returned them in; it is not
// guaranteed to be sorted.
type Country struct {
	CurrencyISO string `db:"currency_iso" json:"currency_iso"`
	Country     string `db:"country" json:"country"`
	// CountryISO is nil for supranational currencies.
	CountryISO *string `db:"country_iso" json:"country_iso,omitempty"`
	// Dates are midnight UTC of the calendar day.
	ValidityStartDate time.Time `db:"validity_start_date" json:"validity_start_date"`
	// ValidityEndDate is nil while the association is still valid.
	ValidityEndDate *time.Time `db:"validity_end_date" json:"validity_end_date,omitempty"`
}
