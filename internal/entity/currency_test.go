package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrency_MarshalJSON(t *testing.T) {
	countryISO := "AD"
	endDate := time.Date(2002, 6, 30, 0, 0, 0, 0, time.UTC)
	currency := Currency{
		ISOCode: "ADP",
		Name:    "Andorran Peseta",
		Graph:   false,
		Countries: []Country{
			{
				CurrencyISO:       "ADP",
				Country:           "ANDORRA",
				CountryISO:        &countryISO,
				ValidityStartDate: time.Date(1994, 1, 1, 0, 0, 0, 0, time.UTC),
				ValidityEndDate:   &endDate,
			},
		},
	}

	data, err := json.Marshal(currency)
	require.NoError(t, err)

	expected := `{"iso_code":"ADP","name":"Andorran Peseta","graph":false,"countries":[{"currency_iso":"ADP","country":"ANDORRA","country_iso":"AD","validity_start_date":"1994-01-01T00:00:00Z","validity_end_date":"2002-06-30T00:00:00Z"}]}`
	assert.JSONEq(t, expected, string(data))
}

func TestCurrency_MarshalJSON_SupranationalOmitsOptionals(t *testing.T) {
	currency := Currency{
		ISOCode: "XDR",
		Name:    "S.D.R.",
		Graph:   true,
		Countries: []Country{
			{
				CurrencyISO:       "XDR",
				Country:           "INTERNATIONAL MONETARY FUND",
				ValidityStartDate: time.Date(1984, 1, 2, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	data, err := json.Marshal(currency)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "country_iso")
	assert.NotContains(t, string(data), "validity_end_date")
}

func TestCurrency_UnmarshalJSON(t *testing.T) {
	jsonData := `{"iso_code":"AFN","name":"Afghani","graph":true,"countries":[{"currency_iso":"AFN","country":"AFGHANISTAN (Islamic State of)","country_iso":"AF","validity_start_date":"2003-01-01T00:00:00Z"}]}`

	var currency Currency
	err := json.Unmarshal([]byte(jsonData), &currency)
	require.NoError(t, err)

	assert.Equal(t, "AFN", currency.ISOCode)
	assert.True(t, currency.Graph)
	require.Len(t, currency.Countries, 1)
	assert.Equal(t, "AFGHANISTAN (Islamic State of)", currency.Countries[0].Country)
	assert.Nil(t, currency.Countries[0].ValidityEndDate)
}
