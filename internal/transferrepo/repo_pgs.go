// Package transferrepo manages repository layer of transfers.
package transferrepo

import (
	"context"
	"database/sql"

	"github.com/go-petr/savings-bank/internal/accountrepo"
	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/dbpkg"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns transfer RepoPGS bound to an open transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transfer RepoPGS with connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const createQuery = `
INSERT INTO
    transfers (reference_number, sender_account_id, recipient_account_id, amount, converted_amount, currency, recipient_currency, status, description)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, reference_number, sender_account_id, recipient_account_id, amount, converted_amount, currency, recipient_currency, status, description, created_at
`

// Create creates the transfer in pending status and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransferParams) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.ReferenceNumber,
		arg.SenderAccountID,
		arg.RecipientAccountID,
		arg.Amount,
		arg.ConvertedAmount,
		arg.Currency,
		arg.RecipientCurrency,
		domain.TransferStatusPending,
		arg.Description,
	)

	t, err := scanTransfer(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transfers_sender_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transfers_recipient_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transfers_amount_check":
				return t, domain.ErrInvalidAmount
			case "transfers_reference_number_key":
				return t, domain.ErrReferenceExhausted
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getByReferenceQuery = `
SELECT
	id, reference_number, sender_account_id, recipient_account_id, amount, converted_amount, currency, recipient_currency, status, description, created_at
FROM transfers
WHERE reference_number = $1 AND deleted_at IS NULL
`

// GetByReference returns the transfer with the given reference number.
func (r *RepoPGS) GetByReference(ctx context.Context, reference string) (domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByReferenceQuery, reference)

	t, err := scanTransfer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return t, domain.ErrTransferNotFound
		}

		l.Error().Err(err).Send()

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listForAccountQuery = `
SELECT
	id, reference_number, sender_account_id, recipient_account_id, amount, converted_amount, currency, recipient_currency, status, description, created_at
FROM transfers
WHERE
    (sender_account_id = $1 OR recipient_account_id = $1) AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

// ListForAccount returns transfers touching the given account, newest first.
//
// Soft-deleted rows are kept for audit but excluded here.
func (r *RepoPGS) ListForAccount(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listForAccountQuery,
		arg.AccountID,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transfer{}

	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const softDeleteQuery = `
UPDATE transfers
SET deleted_at = now()
WHERE id = $1 AND deleted_at IS NULL
`

// SoftDelete hides the transfer from normal queries while keeping the row for audit.
func (r *RepoPGS) SoftDelete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	if _, err := r.db.ExecContext(ctx, softDeleteQuery, id); err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	return nil
}

const markCompletedQuery = `
UPDATE transfers
SET status = $1
WHERE id = $2
RETURNING id, reference_number, sender_account_id, recipient_account_id, amount, converted_amount, currency, recipient_currency, status, description, created_at
`

// Transfer moves money between two accounts.
//
// It creates the transfer record, debits the sender by the original amount,
// credits the recipient by the converted amount, and marks the transfer
// completed within a single database transaction. Either all effects commit
// or none do; no partially applied balance change is ever observable.
func (r *RepoPGS) Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	txRepo := NewTxRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)

	pending, err := txRepo.Create(ctx, arg)
	if err != nil {
		return result, err
	}

	var senderAccount, recipientAccount domain.Account
	// To avoid deadlocks execute balance updates in consistent id order
	if arg.SenderAccountID < arg.RecipientAccountID {
		argAddBalance := addBalanceParams{
			account1ID: arg.SenderAccountID,
			amount1:    "-" + arg.Amount,
			account2ID: arg.RecipientAccountID,
			amount2:    arg.ConvertedAmount,
		}

		senderAccount, recipientAccount, err = addBalances(ctx, accountRepo, argAddBalance)
	} else {
		argAddBalance := addBalanceParams{
			account1ID: arg.RecipientAccountID,
			amount1:    arg.ConvertedAmount,
			account2ID: arg.SenderAccountID,
			amount2:    "-" + arg.Amount,
		}

		recipientAccount, senderAccount, err = addBalances(ctx, accountRepo, argAddBalance)
	}

	if err != nil {
		return result, err
	}

	result.SenderAccount, result.RecipientAccount = senderAccount, recipientAccount

	row := tx.QueryRowContext(ctx, markCompletedQuery, domain.TransferStatusCompleted, pending.ID)

	result.Transfer, err = scanTransfer(row)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

type addBalanceParams struct {
	account1ID int32
	amount1    string
	account2ID int32
	amount2    string
}

func addBalances(ctx context.Context, r *accountrepo.RepoPGS, arg addBalanceParams) (domain.Account, domain.Account, error) {
	account1, err := r.AddBalance(ctx, arg.amount1, arg.account1ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	account2, err := r.AddBalance(ctx, arg.amount2, arg.account2ID)
	if err != nil {
		return domain.Account{}, domain.Account{}, err
	}

	return account1, account2, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransfer(row rowScanner) (domain.Transfer, error) {
	var t domain.Transfer

	err := row.Scan(
		&t.ID,
		&t.ReferenceNumber,
		&t.SenderAccountID,
		&t.RecipientAccountID,
		&t.Amount,
		&t.ConvertedAmount,
		&t.Currency,
		&t.RecipientCurrency,
		&t.Status,
		&t.Description,
		&t.CreatedAt,
	)

	return t, err
}
