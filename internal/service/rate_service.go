package service

import (
	"context"
	"fmt"

	"bankitalia-service/internal/adapter/bancaditalia"
	"bankitalia-service/internal/adapter/postgres"
	"bankitalia-service/internal/entity"
	"bankitalia-service/internal/metrics"

	"github.com/sirupsen/logrus"
)

type RateService struct {
	provider bancaditalia.ProviderClient
	dbRepo   postgres.Repository
	metrics  *metrics.Metrics
	logger   *logrus.Logger
}

func NewRateService(provider bancaditalia.ProviderClient, dbRepo postgres.Repository, m *metrics.Metrics, logger *logrus.Logger) *RateService {
	return &RateService{
		provider: provider,
		dbRepo:   dbRepo,
		metrics:  m,
		logger:   logger,
	}
}

func (r *RateService) RefreshRates(ctx context.Context) error {
	r.logger.Info("Fetching latest rates from Banca d'Italia...")

	rates, err := r.provider.GetLatestRates(ctx)
	if err != nil {
		r.metrics.ProviderFetchesTotal.WithLabelValues("latestRates", "error").Inc()
		r.logger.Errorf("Failed to fetch latest rates: %v", err)
		return fmt.Errorf("fetch latest rates: %w", err)
	}
	r.metrics.ProviderFetchesTotal.WithLabelValues("latestRates", "success").Inc()

	if len(rates) == 0 {
		r.logger.Warn("No rates found in response")
		return fmt.Errorf("no rates to store: %w", bancaditalia.ErrNoResult)
	}

	r.logger.Infof("Storing %d latest rates", len(rates))

	if err := r.dbRepo.StoreLatestRates(ctx, rates); err != nil {
		r.logger.Errorf("Failed to store latest rates in DB: %v", err)
		return fmt.Errorf("store latest rates in DB: %w", err)
	}

	if err := r.dbRepo.StoreHistoricalRates(ctx, rates); err != nil {
		// Latest rates are already in place; the history insert failing
		// should not fail the refresh.
		r.logger.Errorf("Failed to store historical rates in DB: %v", err)
	}

	r.logger.Info("Latest rates successfully stored.")
	return nil
}

func (r *RateService) RefreshCurrencies(ctx context.Context) error {
	r.logger.Info("Fetching currency registry from Banca d'Italia...")

	currencies, err := r.provider.GetCurrencies(ctx)
	if err != nil {
		r.metrics.ProviderFetchesTotal.WithLabelValues("currencies", "error").Inc()
		r.logger.Errorf("Failed to fetch currencies: %v", err)
		return fmt.Errorf("fetch currencies: %w", err)
	}
	r.metrics.ProviderFetchesTotal.WithLabelValues("currencies", "success").Inc()

	if len(currencies) == 0 {
		r.logger.Warn("No currencies found in response")
		return fmt.Errorf("no currencies to store: %w", bancaditalia.ErrNoResult)
	}

	r.logger.Infof("Storing %d currencies", len(currencies))

	if err := r.dbRepo.StoreCurrencies(ctx, currencies); err != nil {
		r.logger.Errorf("Failed to store currencies in DB: %v", err)
		return fmt.Errorf("store currencies in DB: %w", err)
	}

	r.logger.Info("Currency registry successfully stored.")
	return nil
}

func (r *RateService) GetRateByISOCode(ctx context.Context, isoCode string) (*entity.LatestRate, error) {
	r.logger.Infof("Fetching rate by ISO code: %s", isoCode)
	r.metrics.RateLookupsTotal.Inc()

	rate, err := r.dbRepo.GetRateByISOCode(ctx, isoCode)
	if err != nil {
		r.logger.Errorf("Failed to get rate for %s: %v", isoCode, err)
		return nil, fmt.Errorf("get rate by ISO code: %w", err)
	}

	r.logger.Infof("Found rate for %s on %s", rate.ISOCode, rate.ReferenceDate.Format("2006-01-02"))
	return rate, nil
}

func (r *RateService) ListLatestRates(ctx context.Context) ([]entity.LatestRate, error) {
	rates, err := r.dbRepo.ListLatestRates(ctx)
	if err != nil {
		r.logger.Errorf("Failed to list latest rates: %v", err)
		return nil, fmt.Errorf("list latest rates: %w", err)
	}
	return rates, nil
}

func (r *RateService) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	currencies, err := r.dbRepo.ListCurrencies(ctx)
	if err != nil {
		r.logger.Errorf("Failed to list currencies: %v", err)
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	return currencies, nil
}
