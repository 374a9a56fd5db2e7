package domain

import "time"

// HistoryEntryType marks the direction of a balance change.
type HistoryEntryType string

// History entry types.
const (
	HistoryEntryDebit  HistoryEntryType = "debit"
	HistoryEntryCredit HistoryEntryType = "credit"
)

// TransactionHistoryEntry holds an append-only audit record of a balance change.
//
// TransferID is nil for entries that do not originate from a transfer.
type TransactionHistoryEntry struct {
	ID            int64            `json:"id"`
	AccountID     int32            `json:"account_id"`
	TransferID    *int64           `json:"transfer_id,omitempty"`
	Type          HistoryEntryType `json:"type"`
	Amount        string           `json:"amount"`
	Currency      string           `json:"currency"`
	BalanceBefore string           `json:"balance_before"`
	BalanceAfter  string           `json:"balance_after"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// CreateHistoryEntryParams is the input data for recording a history entry.
type CreateHistoryEntryParams struct {
	AccountID     int32
	TransferID    *int64
	Type          HistoryEntryType
	Amount        string
	Currency      string
	BalanceBefore string
	BalanceAfter  string
	Description   string
}
