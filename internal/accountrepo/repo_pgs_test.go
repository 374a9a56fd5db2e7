//go:build integration

package accountrepo

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/internal/integrationtest"
	"github.com/go-petr/savings-bank/pkg/configpkg"
	"github.com/go-petr/savings-bank/pkg/currencypkg"
	"github.com/go-petr/savings-bank/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func createRandomAccount(t *testing.T, repo *RepoPGS) domain.Account {
	t.Helper()

	account, err := repo.Create(context.Background(),
		randompkg.AccountNumber(), randompkg.Owner(), "1000", currencypkg.USD)
	require.NoError(t, err)

	require.NotZero(t, account.ID)
	require.True(t, account.IsActive)
	require.NotZero(t, account.CreatedAt)

	return account
}

func TestCreate(t *testing.T) {
	// Constraint violations abort an open transaction, so run on a plain
	// connection and rely on truncation for cleanup.
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	repo := NewRepoPGS(db)

	account := createRandomAccount(t, repo)

	t.Run("Duplicate account number", func(t *testing.T) {
		_, err := repo.Create(context.Background(),
			account.Number, randompkg.Owner(), "1000", currencypkg.USD)
		require.ErrorIs(t, err, domain.ErrAccountNumberTaken)
	})

	t.Run("Unknown currency", func(t *testing.T) {
		_, err := repo.Create(context.Background(),
			randompkg.AccountNumber(), randompkg.Owner(), "1000", "XXX")
		require.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
	})
}

func TestGet(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := NewRepoPGS(tx)

	account := createRandomAccount(t, repo)

	got, err := repo.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(account, got))

	_, err = repo.Get(context.Background(), account.ID+1000)
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetByNumber(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := NewRepoPGS(tx)

	account := createRandomAccount(t, repo)

	got, err := repo.GetByNumber(context.Background(), account.Number)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(account, got))

	_, err = repo.GetByNumber(context.Background(), "SA00000000")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAddBalance(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	repo := NewRepoPGS(db)

	account := createRandomAccount(t, repo)

	t.Run("Credit", func(t *testing.T) {
		got, err := repo.AddBalance(context.Background(), "100.50", account.ID)
		require.NoError(t, err)
		require.Equal(t, "1100.50", got.Balance)
	})

	t.Run("Debit", func(t *testing.T) {
		got, err := repo.AddBalance(context.Background(), "-100.50", account.ID)
		require.NoError(t, err)
		require.Equal(t, "1000.00", got.Balance)
	})

	t.Run("Overdraft rejected", func(t *testing.T) {
		_, err := repo.AddBalance(context.Background(), "-1000.01", account.ID)
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("Unknown account", func(t *testing.T) {
		_, err := repo.AddBalance(context.Background(), "100", account.ID+1000)
		require.ErrorIs(t, err, domain.ErrAccountNotFound)
	})

	t.Run("Inactive account", func(t *testing.T) {
		_, err := db.ExecContext(context.Background(),
			`UPDATE accounts SET is_active = false WHERE id = $1`, account.ID)
		require.NoError(t, err)

		_, err = repo.AddBalance(context.Background(), "100", account.ID)
		require.ErrorIs(t, err, domain.ErrAccountInactive)
	})
}

func TestList(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := NewRepoPGS(tx)

	owner := randompkg.Owner()

	accounts := make([]domain.Account, 0, 3)
	for i := 0; i < 3; i++ {
		account, err := repo.Create(context.Background(),
			randompkg.AccountNumber(), owner, "1000", currencypkg.USD)
		require.NoError(t, err)

		accounts = append(accounts, account)
	}

	// Another owner's account must not leak into the listing.
	createRandomAccount(t, repo)

	got, err := repo.List(context.Background(), owner, 10, 0)
	require.NoError(t, err)
	require.Equal(t, accounts, got)

	got, err = repo.List(context.Background(), owner, 2, 2)
	require.NoError(t, err)
	require.Equal(t, accounts[2:], got)
}
