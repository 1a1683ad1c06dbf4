package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bankitalia-service/internal/entity"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

var (
	psql        = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	ErrNotFound = errors.New("not found")
)

var latestRateColumns = []string{
	"country", "currency", "iso_code", "uic_code",
	"eur_rate", "usd_rate",
	"usd_exchange_convention", "usd_exchange_convention_code",
	"reference_date",
}

type PostgresRepo struct {
	pool   Pool
	logger *logrus.Logger
}

func NewPostgresRepo(pool Pool, logger *logrus.Logger) *PostgresRepo {
	return &PostgresRepo{
		pool:   pool,
		logger: logger,
	}
}

func (r *PostgresRepo) StoreLatestRates(ctx context.Context, rates []entity.LatestRate) error {
	r.logger.Info("Start storing latest rates")

	// Build every statement before opening the transaction so a build
	// failure never leaves a transaction open.
	batch := &pgx.Batch{}
	for _, rate := range rates {
		query, args, err := psql.Insert("latest_rates").
			Columns(append(latestRateColumns, "updated_at")...).
			Values(rate.Country, rate.Currency, rate.ISOCode, rate.UICCode,
				rate.EURRate, rate.USDRate,
				rate.USDExchangeConvention, rate.USDExchangeConventionCode,
				rate.ReferenceDate, time.Now()).
			Suffix(`
                ON CONFLICT (iso_code) DO UPDATE SET
                    country = EXCLUDED.country,
                    currency = EXCLUDED.currency,
                    uic_code = EXCLUDED.uic_code,
                    eur_rate = EXCLUDED.eur_rate,
                    usd_rate = EXCLUDED.usd_rate,
                    usd_exchange_convention = EXCLUDED.usd_exchange_convention,
                    usd_exchange_convention_code = EXCLUDED.usd_exchange_convention_code,
                    reference_date = EXCLUDED.reference_date,
                    updated_at = EXCLUDED.updated_at
            `).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert for %s: %w", rate.ISOCode, err)
		}
		batch.Queue(query, args...)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.WithError(err).Error("Failed to begin transaction")
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := r.execBatch(ctx, tx, batch); err != nil {
		return err
	}

	r.logger.Infof("Successfully stored %d latest rates", len(rates))
	return nil
}

func (r *PostgresRepo) StoreHistoricalRates(ctx context.Context, rates []entity.LatestRate) error {
	if len(rates) == 0 {
		return nil
	}

	r.logger.Info("Start storing historical rates")

	batch := &pgx.Batch{}
	for _, rate := range rates {
		query, args, err := psql.Insert("historical_rates").
			Columns("iso_code", "reference_date", "eur_rate", "usd_rate").
			Values(rate.ISOCode, rate.ReferenceDate, rate.EURRate, rate.USDRate).
			Suffix("ON CONFLICT (iso_code, reference_date) DO NOTHING").
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert for %s on %s: %w", rate.ISOCode, rate.ReferenceDate, err)
		}
		batch.Queue(query, args...)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.WithError(err).Error("Failed to begin transaction for historical rates")
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := r.execBatch(ctx, tx, batch); err != nil {
		return err
	}

	r.logger.Infof("Successfully stored %d historical rates", len(rates))
	return nil
}

func (r *PostgresRepo) GetRateByISOCode(ctx context.Context, isoCode string) (*entity.LatestRate, error) {
	r.logger.WithField("iso_code", isoCode).Info("Getting latest rate by ISO code")

	query, args, err := psql.
		Select(latestRateColumns...).
		From("latest_rates").
		Where(sq.Eq{"iso_code": isoCode}).
		Limit(1).
		ToSql()
	if err != nil {
		r.logger.WithError(err).Error("Failed to build select query")
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rate entity.LatestRate
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(
			&rate.Country,
			&rate.Currency,
			&rate.ISOCode,
			&rate.UICCode,
			&rate.EURRate,
			&rate.USDRate,
			&rate.USDExchangeConvention,
			&rate.USDExchangeConventionCode,
			&rate.ReferenceDate,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.logger.WithError(err).WithField("iso_code", isoCode).Error("Failed to query latest rate")
		return nil, fmt.Errorf("query latest rate: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"iso_code":       rate.ISOCode,
		"currency":       rate.Currency,
		"eur_rate":       rate.EURRate,
		"reference_date": rate.ReferenceDate,
	}).Info("Successfully retrieved latest rate")

	return &rate, nil
}

func (r *PostgresRepo) ListLatestRates(ctx context.Context) ([]entity.LatestRate, error) {
	query, args, err := psql.
		Select(latestRateColumns...).
		From("latest_rates").
		OrderBy("iso_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query latest rates")
		return nil, fmt.Errorf("query latest rates: %w", err)
	}
	defer rows.Close()

	var rates []entity.LatestRate
	for rows.Next() {
		var rate entity.LatestRate
		if err := rows.Scan(
			&rate.Country,
			&rate.Currency,
			&rate.ISOCode,
			&rate.UICCode,
			&rate.EURRate,
			&rate.USDRate,
			&rate.USDExchangeConvention,
			&rate.USDExchangeConventionCode,
			&rate.ReferenceDate,
		); err != nil {
			return nil, fmt.Errorf("scan latest rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate latest rates: %w", err)
	}

	r.logger.Infof("Listed %d latest rates", len(rates))
	return rates, nil
}

// StoreCurrencies replaces the whole currency registry: the provider
// returns the full dataset on every fetch, so a refresh supersedes
// everything stored before.
func (r *PostgresRepo) StoreCurrencies(ctx context.Context, currencies []entity.Currency) error {
	r.logger.Info("Start storing currency registry")

	batch := &pgx.Batch{}

	for _, table := range []string{"currency_countries", "currencies"} {
		query, args, err := psql.Delete(table).ToSql()
		if err != nil {
			return fmt.Errorf("build delete for %s: %w", table, err)
		}
		batch.Queue(query, args...)
	}

	for _, cur := range currencies {
		query, args, err := psql.Insert("currencies").
			Columns("iso_code", "name", "graph").
			Values(cur.ISOCode, cur.Name, cur.Graph).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert for %s: %w", cur.ISOCode, err)
		}
		batch.Queue(query, args...)

		for ord, country := range cur.Countries {
			// ord preserves the upstream ordering of the associations.
			query, args, err := psql.Insert("currency_countries").
				Columns("currency_iso", "ord", "country", "country_iso",
					"validity_start_date", "validity_end_date").
				Values(cur.ISOCode, ord, country.Country, country.CountryISO,
					country.ValidityStartDate, country.ValidityEndDate).
				ToSql()
			if err != nil {
				return fmt.Errorf("build insert for country of %s: %w", cur.ISOCode, err)
			}
			batch.Queue(query, args...)
		}
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.WithError(err).Error("Failed to begin transaction for currencies")
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := r.execBatch(ctx, tx, batch); err != nil {
		return err
	}

	r.logger.Infof("Successfully stored %d currencies", len(currencies))
	return nil
}

func (r *PostgresRepo) ListCurrencies(ctx context.Context) ([]entity.Currency, error) {
	query, args, err := psql.
		Select("iso_code", "name", "graph").
		From("currencies").
		OrderBy("iso_code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query currencies")
		return nil, fmt.Errorf("query currencies: %w", err)
	}

	var currencies []entity.Currency
	index := make(map[string]int)
	for rows.Next() {
		var cur entity.Currency
		if err := rows.Scan(&cur.ISOCode, &cur.Name, &cur.Graph); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan currency: %w", err)
		}
		index[cur.ISOCode] = len(currencies)
		currencies = append(currencies, cur)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate currencies: %w", err)
	}

	query, args, err = psql.
		Select("currency_iso", "country", "country_iso", "validity_start_date", "validity_end_date").
		From("currency_countries").
		OrderBy("currency_iso", "ord").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err = r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query currency countries")
		return nil, fmt.Errorf("query currency countries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var country entity.Country
		if err := rows.Scan(
			&country.CurrencyISO,
			&country.Country,
			&country.CountryISO,
			&country.ValidityStartDate,
			&country.ValidityEndDate,
		); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		if i, ok := index[country.CurrencyISO]; ok {
			currencies[i].Countries = append(currencies[i].Countries, country)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate currency countries: %w", err)
	}

	r.logger.Infof("Listed %d currencies", len(currencies))
	return currencies, nil
}

func (r *PostgresRepo) execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	br := tx.SendBatch(ctx, batch)

	var batchErrs error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			batchErrs = multierr.Append(batchErrs, err)
			r.logger.WithError(err).Errorf("Failed batch exec for statement %d", i)
		}
	}

	if err := br.Close(); err != nil {
		batchErrs = multierr.Append(batchErrs, err)
		r.logger.WithError(err).Error("Failed to close batch results")
	}

	if batchErrs != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.logger.WithError(rbErr).Error("Failed to rollback tx after batch errors")
		}
		return fmt.Errorf("batch exec/close errors: %w", batchErrs)
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.WithError(err).Error("Failed to commit tx")
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
