package domain

import (
	"errors"
	"time"
)

var (
	// ErrSameAccountTransfer indicates a transfer where sender and recipient are the same account.
	ErrSameAccountTransfer = errors.New("cannot transfer to the same account")
	// ErrCurrencyMismatch indicates that the requested currency does not match the account currency.
	ErrCurrencyMismatch = errors.New("accounts currency mismatch")
	// ErrInvalidAmount indicates invalid amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates non-positive amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrTransferNotFound indicates that the transfer is not found.
	ErrTransferNotFound = errors.New("transfer not found")
	// ErrReferenceExhausted indicates that reference number generation ran out of attempts.
	ErrReferenceExhausted = errors.New("reference number generation exhausted")
)

// TransferStatus is the lifecycle state of a transfer.
type TransferStatus string

// Transfer statuses. A transfer is inserted as pending and marked completed
// within the same database transaction, so only completed rows are ever
// visible outside of it.
const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
)

// Transfer holds transfer data between two accounts.
//
// Amount is denominated in the sender's currency, ConvertedAmount in the
// recipient's. Both are recorded so the audit trail survives rate changes.
type Transfer struct {
	ID                 int64          `json:"id"`
	ReferenceNumber    string         `json:"reference_number"`
	SenderAccountID    int32          `json:"sender_account_id"`
	RecipientAccountID int32          `json:"recipient_account_id"`
	Amount             string         `json:"amount"`
	ConvertedAmount    string         `json:"converted_amount"`
	Currency           string         `json:"currency"`
	RecipientCurrency  string         `json:"recipient_currency"`
	Status             TransferStatus `json:"status"`
	Description        string         `json:"description,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
}

// InitiateTransferParams is the input data for initiating a transfer.
//
// The recipient is addressed by account number, as external callers see it.
type InitiateTransferParams struct {
	SenderAccountID        int32  `json:"sender_account_id"`
	RecipientAccountNumber string `json:"recipient_account_number"`
	Amount                 string `json:"amount"`
	Currency               string `json:"currency"`
	Description            string `json:"description"`
}

// CreateTransferParams is the input data for the transfer transaction.
type CreateTransferParams struct {
	ReferenceNumber    string `json:"reference_number"`
	SenderAccountID    int32  `json:"sender_account_id"`
	RecipientAccountID int32  `json:"recipient_account_id"`
	Amount             string `json:"amount"`
	ConvertedAmount    string `json:"converted_amount"`
	Currency           string `json:"currency"`
	RecipientCurrency  string `json:"recipient_currency"`
	Description        string `json:"description"`
}

// ListTransfersParams is the input data to list transfers touching an account.
type ListTransfersParams struct {
	AccountID int32 `json:"account_id"`
	Limit     int32 `json:"limit"`
	Offset    int32 `json:"offset"`
}

// TransferTxResult is the result of the transfer transaction.
//
// Account balances are the post-commit values.
type TransferTxResult struct {
	Transfer         Transfer `json:"transfer"`
	SenderAccount    Account  `json:"sender_account"`
	RecipientAccount Account  `json:"recipient_account"`
}
