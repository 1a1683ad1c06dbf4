package service

import (
	"context"

	"bankitalia-service/internal/entity"
)

type CurrencyService interface {
	RefreshRates(ctx context.Context) error
	RefreshCurrencies(ctx context.Context) error
	GetRateByISOCode(ctx context.Context, isoCode string) (*entity.LatestRate, error)
	ListLatestRates(ctx context.Context) ([]entity.LatestRate, error)
	ListCurrencies(ctx context.Context) ([]entity.Currency, error)
}
