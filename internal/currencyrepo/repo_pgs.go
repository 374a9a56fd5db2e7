// Package currencyrepo manages repository layer of currency reference data.
package currencyrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/dbpkg"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates currency repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns currency RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const getQuery = `
SELECT code, name, symbol, is_active, created_at FROM currencies
WHERE code = $1
`

// Get returns the currency with the given ISO code.
func (r *RepoPGS) Get(ctx context.Context, code string) (domain.Currency, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, code)

	var c domain.Currency

	err := row.Scan(
		&c.Code,
		&c.Name,
		&c.Symbol,
		&c.IsActive,
		&c.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return c, domain.ErrCurrencyNotFound
		}

		l.Error().Err(err).Send()

		return c, errorspkg.ErrInternal
	}

	return c, nil
}

const listQuery = `
SELECT code, name, symbol, is_active, created_at FROM currencies
WHERE is_active
ORDER BY code
`

// List returns all active currencies.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Currency, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Currency{}

	for rows.Next() {
		var c domain.Currency
		if err := rows.Scan(&c.Code, &c.Name, &c.Symbol, &c.IsActive, &c.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, c)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
