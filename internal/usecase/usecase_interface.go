package usecase

import (
	"context"

	"bankitalia-service/internal/entity"

	"github.com/shopspring/decimal"
)

type RateUsecase interface {
	RefreshRates(ctx context.Context) error
	RefreshCurrencies(ctx context.Context) error
	GetRateByISOCode(ctx context.Context, isoCode string, amount decimal.Decimal) (*RateResponse, error)
	ListLatestRates(ctx context.Context) ([]entity.LatestRate, error)
	ListCurrencies(ctx context.Context) ([]entity.Currency, error)
}
