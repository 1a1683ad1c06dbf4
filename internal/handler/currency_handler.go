package handler

import (
	"errors"
	"net/http"
	"strings"

	"bankitalia-service/internal/adapter/bancaditalia"
	"bankitalia-service/internal/adapter/postgres"
	"bankitalia-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CurrencyHandler struct {
	usecase usecase.RateUsecase
	logger  *logrus.Logger
}

func NewRateHandler(usecase usecase.RateUsecase, logger *logrus.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		usecase: usecase,
		logger:  logger,
	}
}

func (h *CurrencyHandler) RefreshRates(c *gin.Context) {
	if err := h.usecase.RefreshRates(c.Request.Context()); err != nil {
		h.logger.Errorf("Failed to refresh rates: %v", err)
		c.JSON(refreshStatus(err), gin.H{"error": "Failed to refresh rates"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rates successfully updated"})
}

func (h *CurrencyHandler) RefreshCurrencies(c *gin.Context) {
	if err := h.usecase.RefreshCurrencies(c.Request.Context()); err != nil {
		h.logger.Errorf("Failed to refresh currencies: %v", err)
		c.JSON(refreshStatus(err), gin.H{"error": "Failed to refresh currencies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Currencies successfully updated"})
}

func (h *CurrencyHandler) GetRateByISOCode(c *gin.Context) {
	isoCode := c.Param("iso")

	amount := decimal.Zero
	if amountStr := c.Query("amount"); amountStr != "" {
		parsed, err := decimal.NewFromString(amountStr)
		if err != nil || !parsed.IsPositive() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'amount' parameter, must be a positive number"})
			return
		}
		amount = parsed
	}

	result, err := h.usecase.GetRateByISOCode(c.Request.Context(), isoCode, amount)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case strings.Contains(err.Error(), "invalid ISO code") || strings.Contains(err.Error(), "invalid amount"):
			statusCode = http.StatusBadRequest
		case errors.Is(err, postgres.ErrNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, usecase.ErrRateUnavailable):
			statusCode = http.StatusUnprocessableEntity
		}
		h.logger.WithError(err).Errorf("Failed to get rate for iso=%s", isoCode)
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *CurrencyHandler) ListLatestRates(c *gin.Context) {
	rates, err := h.usecase.ListLatestRates(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to list latest rates: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		return
	}

	c.JSON(http.StatusOK, RatesListResponse{Count: len(rates), Rates: rates})
}

func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	currencies, err := h.usecase.ListCurrencies(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Failed to list currencies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list currencies"})
		return
	}

	c.JSON(http.StatusOK, CurrenciesListResponse{Count: len(currencies), Currencies: currencies})
}

func (h *CurrencyHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// refreshStatus maps provider failures to 502 and everything else to 500.
func refreshStatus(err error) int {
	if errors.Is(err, bancaditalia.ErrRequestFailed) ||
		errors.Is(err, bancaditalia.ErrDeserializeFailed) ||
		errors.Is(err, bancaditalia.ErrNoResult) ||
		errors.Is(err, bancaditalia.ErrAPI) ||
		errors.Is(err, bancaditalia.ErrConversionFailed) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
