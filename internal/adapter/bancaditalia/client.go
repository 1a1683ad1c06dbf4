package bancaditalia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"bankitalia-service/internal/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

const defaultBaseURL = "https://tassidicambio.bancaditalia.it/terzevalute-wf-web/rest/v1.0"

// Client talks to the Banca d'Italia exchange-rate API. It holds no
// call-scoped state and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	lang       language.Tag
	logger     *logrus.Logger
}

// NewClient builds a provider client. lang selects the localization of
// country and currency names; a malformed tag falls back to English.
func NewClient(baseURL, lang string, timeout time.Duration, logger *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	tag := language.English
	if lang != "" {
		parsed, err := language.Parse(lang)
		if err != nil {
			logger.Warnf("Invalid provider language %q, falling back to %s: %v", lang, tag, err)
		} else {
			tag = parsed
		}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				ResponseHeaderTimeout: timeout,
			},
		},
		baseURL: baseURL,
		lang:    tag,
		logger:  logger,
	}
}

// GetCurrencies fetches the provider's currency registry with the country
// associations of every currency.
func (c *Client) GetCurrencies(ctx context.Context) ([]entity.Currency, error) {
	rows, err := fetchList[currencyAPI](ctx, c, "/currencies", "currencies")
	if err != nil {
		return nil, err
	}
	return toCurrencies(rows)
}

// GetLatestRates fetches the most recent EUR and USD quotations for every
// listed currency.
func (c *Client) GetLatestRates(ctx context.Context) ([]entity.LatestRate, error) {
	rows, err := fetchList[latestRateAPI](ctx, c, "/latestRates", "latestRates")
	if err != nil {
		return nil, err
	}
	return toLatestRates(rows)
}

// fetchList runs one GET against the provider and decodes the array stored
// under key in the top-level response object. Element decoding is
// all-or-nothing: one mismatched element fails the whole call.
func fetchList[T any](ctx context.Context, c *Client, path, key string) ([]T, error) {
	url := fmt.Sprintf("%s%s?lang=%s", c.baseURL, path, c.lang)

	c.logger.Debugf("Fetching %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("Failed to fetch %s: %v", path, err)
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Errorf("Unexpected status %d from %s", resp.StatusCode, path)
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		if json.Valid(body) {
			// Well-formed JSON that is not an object has no keys at all,
			// so the key we want is absent.
			return nil, ErrNoResult
		}
		return nil, fmt.Errorf("%w: %v", ErrDeserializeFailed, err)
	}

	raw, ok := doc[key]
	if !ok {
		return nil, ErrNoResult
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil || elems == nil {
		// Present but not an array (or JSON null) counts as no result,
		// same as a missing key.
		return nil, ErrNoResult
	}

	result := make([]T, 0, len(elems))
	for i, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrDeserializeFailed, i, err)
		}
		result = append(result, v)
	}

	c.logger.Debugf("Fetched %d records from %s", len(result), path)
	return result, nil
}
