package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"bankitalia-service/internal/entity"
	"bankitalia-service/internal/metrics"
	"bankitalia-service/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CurrencyUsecase struct {
	service service.CurrencyService
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

func NewCurrencyUsecase(service service.CurrencyService, m *metrics.Metrics, logger *logrus.Logger) *CurrencyUsecase {
	return &CurrencyUsecase{
		service: service,
		metrics: m,
		logger:  logger,
	}
}

var isoCodeRegexp = regexp.MustCompile(`^[A-Z]{3}$`)

// ErrRateUnavailable is returned when a conversion is requested for a
// currency whose quotation the provider reported as "N.A.".
var ErrRateUnavailable = errors.New("rate unavailable for conversion")

func (uc *CurrencyUsecase) RefreshRates(ctx context.Context) error {
	uc.logger.Info("Refreshing latest rates...")
	return uc.service.RefreshRates(ctx)
}

func (uc *CurrencyUsecase) RefreshCurrencies(ctx context.Context) error {
	uc.logger.Info("Refreshing currency registry...")
	return uc.service.RefreshCurrencies(ctx)
}

func (uc *CurrencyUsecase) GetRateByISOCode(ctx context.Context, isoCode string, amount decimal.Decimal) (*RateResponse, error) {
	code := strings.ToUpper(isoCode)

	if !isoCodeRegexp.MatchString(code) {
		uc.logger.Errorf("Invalid ISO code format: %s", code)
		return nil, errors.New("invalid ISO code format, expected 3 uppercase letters")
	}
	if amount.IsNegative() {
		return nil, errors.New("invalid amount, must not be negative")
	}

	rate, err := uc.service.GetRateByISOCode(ctx, code)
	if err != nil {
		uc.logger.WithError(err).Errorf("Failed to get rate for %s", code)
		return nil, err
	}

	result := &RateResponse{
		ISOCode:       rate.ISOCode,
		Currency:      rate.Currency,
		Country:       rate.Country,
		EURRate:       rate.EURRate,
		USDRate:       rate.USDRate,
		ReferenceDate: rate.ReferenceDate.Format("2006-01-02"),
	}

	if amount.IsPositive() {
		uc.metrics.ConversionRequestsTotal.Inc()
		// A zero stored rate means the provider reported "N.A.";
		// nothing meaningful can be converted with it.
		if rate.EURRate.IsZero() {
			uc.logger.Warnf("Rate for %s is unavailable, cannot convert", code)
			return nil, ErrRateUnavailable
		}
		eurValue := amount.Div(rate.EURRate)
		result.Amount = &amount
		result.EURValue = &eurValue
	}

	uc.logger.Infof("Successfully fetched rate for %s on %s", rate.ISOCode, result.ReferenceDate)
	return result, nil
}

func (uc *CurrencyUsecase) ListLatestRates(ctx context.Context) ([]entity.LatestRate, error) {
	return uc.service.ListLatestRates(ctx)
}

func (uc *CurrencyUsecase) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	return uc.service.ListCurrencies(ctx)
}
