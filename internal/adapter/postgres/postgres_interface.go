package postgres

import (
	"context"

	"bankitalia-service/internal/entity"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	StoreLatestRates(ctx context.Context, rates []entity.LatestRate) error
	StoreHistoricalRates(ctx context.Context, rates []entity.LatestRate) error
	GetRateByISOCode(ctx context.Context, isoCode string) (*entity.LatestRate, error)
	ListLatestRates(ctx context.Context) ([]entity.LatestRate, error)

	StoreCurrencies(ctx context.Context, currencies []entity.Currency) error
	ListCurrencies(ctx context.Context) ([]entity.Currency, error)
}

type Pool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
}
