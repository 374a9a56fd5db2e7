// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountInactive indicates that the account is deactivated.
	ErrAccountInactive = errors.New("account is inactive")
	// ErrAccountNumberTaken indicates that the generated account number is already in use.
	ErrAccountNumberTaken = errors.New("account number already taken")
	// ErrAccountNumberExhausted indicates that account number generation ran out of attempts.
	ErrAccountNumberExhausted = errors.New("account number generation exhausted")
)

// Account holds savings account balance data for a specific currency.
//
// Balance is mutated only by the ledger repository, never directly.
type Account struct {
	ID        int32     `json:"id"`
	Number    string    `json:"number"`
	Owner     string    `json:"owner"`
	Balance   string    `json:"balance"`
	Currency  string    `json:"currency"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
