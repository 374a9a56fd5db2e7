// Package helpers provides seed data helpers used in integration tests.
package helpers

import (
	"context"
	"testing"

	"github.com/go-petr/savings-bank/internal/accountrepo"
	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/dbpkg"
	"github.com/go-petr/savings-bank/pkg/randompkg"
	"github.com/stretchr/testify/require"
)

// SeedAccount inserts an account with the given balance and currency.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, balance, currency string) domain.Account {
	t.Helper()

	repo := accountrepo.NewRepoPGS(db)

	account, err := repo.Create(context.Background(), randompkg.AccountNumber(), randompkg.Owner(), balance, currency)
	require.NoError(t, err)
	require.NotEmpty(t, account)

	return account
}

// SeedAccountWith1000USDBalance inserts a USD account holding 1000.
func SeedAccountWith1000USDBalance(t *testing.T, db dbpkg.SQLInterface) domain.Account {
	t.Helper()

	return SeedAccount(t, db, "1000", "USD")
}

// DeactivateAccount flips the account's active flag off.
func DeactivateAccount(t *testing.T, db dbpkg.SQLInterface, id int32) {
	t.Helper()

	_, err := db.ExecContext(context.Background(), `UPDATE accounts SET is_active = false WHERE id = $1`, id)
	require.NoError(t, err)
}
