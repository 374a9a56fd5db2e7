// Package historyservice derives transaction history entries from completed transfers.
package historyservice

import (
	"context"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by history service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package historyservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateHistoryEntryParams) (domain.TransactionHistoryEntry, error)
	List(ctx context.Context, accountID int32, limit, offset int32) ([]domain.TransactionHistoryEntry, error)
}

// Service facilitates history service layer logic.
type Service struct {
	repo Repo
}

// New returns history service struct to manage the audit trail.
func New(hr Repo) *Service {
	return &Service{repo: hr}
}

// RecordTransfer derives and persists the two history entries of a committed
// transfer: a debit against the sender and a credit against the recipient.
//
// Balances in the result are post-commit values, so balance_before is
// reconstructed by undoing the moved amount.
func (s *Service) RecordTransfer(ctx context.Context, res domain.TransferTxResult) error {
	debit, credit, err := deriveEntries(res)
	if err != nil {
		return err
	}

	if _, err := s.repo.Create(ctx, debit); err != nil {
		return err
	}

	if _, err := s.repo.Create(ctx, credit); err != nil {
		return err
	}

	return nil
}

// List returns history entries for the given account, newest first.
func (s *Service) List(ctx context.Context, accountID int32, pageSize, pageID int32) ([]domain.TransactionHistoryEntry, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	entries, err := s.repo.List(ctx, accountID, limit, offset)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func deriveEntries(res domain.TransferTxResult) (domain.CreateHistoryEntryParams, domain.CreateHistoryEntryParams, error) {
	var debit, credit domain.CreateHistoryEntryParams

	amount, err := decimal.NewFromString(res.Transfer.Amount)
	if err != nil {
		return debit, credit, err
	}

	converted, err := decimal.NewFromString(res.Transfer.ConvertedAmount)
	if err != nil {
		return debit, credit, err
	}

	senderAfter, err := decimal.NewFromString(res.SenderAccount.Balance)
	if err != nil {
		return debit, credit, err
	}

	recipientAfter, err := decimal.NewFromString(res.RecipientAccount.Balance)
	if err != nil {
		return debit, credit, err
	}

	transferID := res.Transfer.ID

	debit = domain.CreateHistoryEntryParams{
		AccountID:     res.Transfer.SenderAccountID,
		TransferID:    &transferID,
		Type:          domain.HistoryEntryDebit,
		Amount:        res.Transfer.Amount,
		Currency:      res.Transfer.Currency,
		BalanceBefore: senderAfter.Add(amount).String(),
		BalanceAfter:  senderAfter.String(),
		Description:   res.Transfer.Description,
	}

	credit = domain.CreateHistoryEntryParams{
		AccountID:     res.Transfer.RecipientAccountID,
		TransferID:    &transferID,
		Type:          domain.HistoryEntryCredit,
		Amount:        res.Transfer.ConvertedAmount,
		Currency:      res.Transfer.RecipientCurrency,
		BalanceBefore: recipientAfter.Sub(converted).String(),
		BalanceAfter:  recipientAfter.String(),
		Description:   res.Transfer.Description,
	}

	return debit, credit, nil
}
