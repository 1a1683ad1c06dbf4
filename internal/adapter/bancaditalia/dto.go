package bancaditalia

import (
	"fmt"
	"strings"

	"bankitalia-service/internal/entity"
	"bankitalia-service/pkg/dateutil"

	"github.com/shopspring/decimal"
)

// Wire shapes, structurally identical to the entities except that dates
// and rates arrive as strings. Narrowing those is the converters' whole
// job; no business transformation happens here.

type currencyAPI struct {
	Countries []countryAPI `json:"countries"`
	ISOCode   string       `json:"isoCode"`
	Name      string       `json:"name"`
	Graph     bool         `json:"graph"`
}

type countryAPI struct {
	CurrencyISO       string  `json:"currencyISO"`
	Country           string  `json:"country"`
	CountryISO        *string `json:"countryISO"`
	ValidityStartDate string  `json:"validityStartDate"`
	ValidityEndDate   *string `json:"validityEndDate"`
}

type latestRateAPI struct {
	Country                   string `json:"country"`
	Currency                  string `json:"currency"`
	ISOCode                   string `json:"isoCode"`
	UICCode                   string `json:"uicCode"`
	EURRate                   string `json:"eurRate"`
	USDRate                   string `json:"usdRate"`
	USDExchangeConvention     string `json:"usdExchangeConvention"`
	USDExchangeConventionCode string `json:"usdExchangeConventionCode"`
	ReferenceDate             string `json:"referenceDate"`
}

// Validity dates are anchored to the end of the day: a window closing
// "today" still includes today. Reference dates below use the opposite
// anchor; the provider's semantics differ and the asymmetry is deliberate.
func toCurrencies(rows []currencyAPI) ([]entity.Currency, error) {
	result := make([]entity.Currency, 0, len(rows))
	for _, row := range rows {
		countries := make([]entity.Country, 0, len(row.Countries))
		for _, c := range row.Countries {
			start, err := dateutil.ParseDate(c.ValidityStartDate, dateutil.EndOfDay)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrAPI, err)
			}
			country := entity.Country{
				CurrencyISO:       c.CurrencyISO,
				Country:           c.Country,
				CountryISO:        c.CountryISO,
				ValidityStartDate: dateutil.DateOf(start),
			}
			if c.ValidityEndDate != nil {
				end, err := dateutil.ParseDate(*c.ValidityEndDate, dateutil.EndOfDay)
				if err != nil {
					return nil, fmt.Errorf("%w: %v", ErrAPI, err)
				}
				d := dateutil.DateOf(end)
				country.ValidityEndDate = &d
			}
			countries = append(countries, country)
		}
		result = append(result, entity.Currency{
			ISOCode:   row.ISOCode,
			Name:      row.Name,
			Graph:     row.Graph,
			Countries: countries,
		})
	}
	return result, nil
}

func toLatestRates(rows []latestRateAPI) ([]entity.LatestRate, error) {
	result := make([]entity.LatestRate, 0, len(rows))
	for _, row := range rows {
		refDate, err := dateutil.ParseDate(row.ReferenceDate, dateutil.StartOfDay)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAPI, err)
		}
		eurRate, err := cleanRate(row.EURRate)
		if err != nil {
			return nil, err
		}
		usdRate, err := cleanRate(row.USDRate)
		if err != nil {
			return nil, err
		}
		result = append(result, entity.LatestRate{
			Country:                   row.Country,
			Currency:                  row.Currency,
			ISOCode:                   row.ISOCode,
			UICCode:                   row.UICCode,
			EURRate:                   eurRate,
			USDRate:                   usdRate,
			USDExchangeConvention:     row.USDExchangeConvention,
			USDExchangeConventionCode: row.USDExchangeConventionCode,
			ReferenceDate:             dateutil.DateOf(refDate),
		})
	}
	return result, nil
}

const rateUnavailable = "N.A."

// cleanRate converts one provider rate string. The "N.A." placeholder maps
// to zero, so callers cannot tell an unavailable rate from a true zero
// quotation without inspecting the raw upstream value.
func cleanRate(input string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(input)
	if cleaned == rateUnavailable {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrConversionFailed, err)
	}
	return d, nil
}
