package bancaditalia

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanRate_Valid(t *testing.T) {
	got, err := cleanRate("1.0850")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.0850").Equal(got))
}

func TestCleanRate_TrimsWhitespace(t *testing.T) {
	got, err := cleanRate("  91.2275 ")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("91.2275").Equal(got))
}

func TestCleanRate_Unavailable(t *testing.T) {
	got, err := cleanRate("N.A.")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCleanRate_UnavailableWithWhitespace(t *testing.T) {
	got, err := cleanRate("  N.A.  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestCleanRate_Invalid(t *testing.T) {
	_, err := cleanRate("not-a-number")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversionFailed)
}

func TestCleanRate_Empty(t *testing.T) {
	_, err := cleanRate("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversionFailed)
}

func TestToCurrencies(t *testing.T) {
	countryISO := "AD"
	endDate := "2002-06-30"
	rows := []currencyAPI{
		{
			ISOCode: "ADP",
			Name:    "Andorran Peseta",
			Graph:   false,
			Countries: []countryAPI{
				{
					CurrencyISO:       "ADP",
					Country:           "ANDORRA",
					CountryISO:        &countryISO,
					ValidityStartDate: "1994-01-01",
					ValidityEndDate:   &endDate,
				},
			},
		},
		{
			ISOCode: "XDR",
			Name:    "S.D.R.",
			Graph:   true,
			Countries: []countryAPI{
				{
					CurrencyISO:       "XDR",
					Country:           "INTERNATIONAL MONETARY FUND",
					ValidityStartDate: "1984-01-02",
				},
			},
		},
	}

	currencies, err := toCurrencies(rows)
	require.NoError(t, err)
	require.Len(t, currencies, 2)

	adp := currencies[0]
	assert.Equal(t, "ADP", adp.ISOCode)
	assert.Equal(t, "Andorran Peseta", adp.Name)
	assert.False(t, adp.Graph)
	require.Len(t, adp.Countries, 1)
	assert.Equal(t, "ANDORRA", adp.Countries[0].Country)
	require.NotNil(t, adp.Countries[0].CountryISO)
	assert.Equal(t, "AD", *adp.Countries[0].CountryISO)
	assert.Equal(t, time.Date(1994, 1, 1, 0, 0, 0, 0, time.UTC), adp.Countries[0].ValidityStartDate)
	require.NotNil(t, adp.Countries[0].ValidityEndDate)
	assert.Equal(t, time.Date(2002, 6, 30, 0, 0, 0, 0, time.UTC), *adp.Countries[0].ValidityEndDate)

	// Supranational currency: no country ISO, still valid.
	xdr := currencies[1]
	require.Len(t, xdr.Countries, 1)
	assert.Nil(t, xdr.Countries[0].CountryISO)
	assert.Nil(t, xdr.Countries[0].ValidityEndDate)
}

func TestToCurrencies_BadStartDate(t *testing.T) {
	rows := []currencyAPI{
		{
			ISOCode: "USD",
			Name:    "US Dollar",
			Countries: []countryAPI{
				{CurrencyISO: "USD", Country: "UNITED STATES", ValidityStartDate: "01/02/1918"},
			},
		},
	}

	_, err := toCurrencies(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)
}

func TestToCurrencies_BadEndDate(t *testing.T) {
	bad := "yesterday"
	rows := []currencyAPI{
		{
			ISOCode: "ADP",
			Name:    "Andorran Peseta",
			Countries: []countryAPI{
				{CurrencyISO: "ADP", Country: "ANDORRA", ValidityStartDate: "1994-01-01", ValidityEndDate: &bad},
			},
		},
	}

	_, err := toCurrencies(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)
}

func TestToLatestRates(t *testing.T) {
	rows := []latestRateAPI{
		{
			Country:                   "EUROPEAN MONETARY UNION",
			Currency:                  "Euro",
			ISOCode:                   "EUR",
			UICCode:                   "242",
			EURRate:                   "1.0000",
			USDRate:                   "1.0850",
			USDExchangeConvention:     "Foreign currency amount for 1 Dollar",
			USDExchangeConventionCode: "C",
			ReferenceDate:             "2024-01-15",
		},
		{
			Country:       "IRAN",
			Currency:      "Iranian Rial",
			ISOCode:       "IRR",
			UICCode:       "057",
			EURRate:       "N.A.",
			USDRate:       "N.A.",
			ReferenceDate: "2024-01-15",
		},
	}

	rates, err := toLatestRates(rows)
	require.NoError(t, err)
	require.Len(t, rates, 2)

	eur := rates[0]
	assert.Equal(t, "EUR", eur.ISOCode)
	assert.Equal(t, "242", eur.UICCode)
	assert.True(t, decimal.RequireFromString("1.0000").Equal(eur.EURRate))
	assert.True(t, decimal.RequireFromString("1.0850").Equal(eur.USDRate))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), eur.ReferenceDate)

	// Leading zero preserved, unavailable rates become zero.
	irr := rates[1]
	assert.Equal(t, "057", irr.UICCode)
	assert.True(t, irr.EURRate.IsZero())
	assert.True(t, irr.USDRate.IsZero())
}

func TestToLatestRates_FieldValuesPreserved(t *testing.T) {
	rows := []latestRateAPI{
		{
			Country:                   "UNITED STATES",
			Currency:                  "US Dollar",
			ISOCode:                   "USD",
			UICCode:                   "001",
			EURRate:                   "0.9217",
			USDRate:                   "1",
			USDExchangeConvention:     "Foreign currency amount for 1 Dollar",
			USDExchangeConventionCode: "C",
			ReferenceDate:             "2024-01-15",
		},
	}

	rates, err := toLatestRates(rows)
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "UNITED STATES", rates[0].Country)
	assert.Equal(t, "US Dollar", rates[0].Currency)
	assert.Equal(t, "Foreign currency amount for 1 Dollar", rates[0].USDExchangeConvention)
	assert.Equal(t, "C", rates[0].USDExchangeConventionCode)
}

func TestToLatestRates_BadRate(t *testing.T) {
	rows := []latestRateAPI{
		{ISOCode: "USD", EURRate: "0.9217", USDRate: "one", ReferenceDate: "2024-01-15"},
	}

	_, err := toLatestRates(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversionFailed)
}

func TestToLatestRates_BadDate(t *testing.T) {
	rows := []latestRateAPI{
		{ISOCode: "USD", EURRate: "0.9217", USDRate: "1", ReferenceDate: "15 Jan 2024"},
	}

	_, err := toLatestRates(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAPI)
}

func TestToLatestRates_NoPartialResults(t *testing.T) {
	rows := []latestRateAPI{
		{ISOCode: "USD", EURRate: "0.9217", USDRate: "1", ReferenceDate: "2024-01-15"},
		{ISOCode: "GBP", EURRate: "bad", USDRate: "1", ReferenceDate: "2024-01-15"},
	}

	rates, err := toLatestRates(rows)
	require.Error(t, err)
	assert.Nil(t, rates)
}
