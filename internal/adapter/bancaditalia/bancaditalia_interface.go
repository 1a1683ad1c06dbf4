package bancaditalia

import (
	"context"

	"bankitalia-service/internal/entity"
)

type ProviderClient interface {
	GetCurrencies(ctx context.Context) ([]entity.Currency, error)
	GetLatestRates(ctx context.Context) ([]entity.LatestRate, error)
}
