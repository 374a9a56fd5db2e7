// Package historyrepo manages repository layer of transaction history entries.
package historyrepo

import (
	"context"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/dbpkg"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates history repository layer logic.
//
// The table is append-only; there are no update or delete operations.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns history RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

const createQuery = `
INSERT INTO
    transaction_histories (account_id, transfer_id, type, amount, currency, balance_before, balance_after, description)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, account_id, transfer_id, type, amount, currency, balance_before, balance_after, description, created_at
`

// Create creates the history entry and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateHistoryEntryParams) (domain.TransactionHistoryEntry, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.AccountID,
		arg.TransferID,
		arg.Type,
		arg.Amount,
		arg.Currency,
		arg.BalanceBefore,
		arg.BalanceAfter,
		arg.Description,
	)

	var e domain.TransactionHistoryEntry

	err := row.Scan(
		&e.ID,
		&e.AccountID,
		&e.TransferID,
		&e.Type,
		&e.Amount,
		&e.Currency,
		&e.BalanceBefore,
		&e.BalanceAfter,
		&e.Description,
		&e.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return e, errorspkg.ErrInternal
	}

	return e, nil
}

const listQuery = `
SELECT id, account_id, transfer_id, type, amount, currency, balance_before, balance_after, description, created_at
FROM transaction_histories
WHERE account_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// List returns the specified number of history entries for the given
// account, newest first.
func (r *RepoPGS) List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.TransactionHistoryEntry, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery, accountID, limit, offset)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.TransactionHistoryEntry{}

	for rows.Next() {
		var e domain.TransactionHistoryEntry
		if err := rows.Scan(
			&e.ID,
			&e.AccountID,
			&e.TransferID,
			&e.Type,
			&e.Amount,
			&e.Currency,
			&e.BalanceBefore,
			&e.BalanceAfter,
			&e.Description,
			&e.CreatedAt,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
