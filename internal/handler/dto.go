package handler

import "bankitalia-service/internal/entity"

type RatesListResponse struct {
	Count int                 `json:"count"`
	Rates []entity.LatestRate `json:"rates"`
}

type CurrenciesListResponse struct {
	Count      int               `json:"count"`
	Currencies []entity.Currency `json:"currencies"`
}
