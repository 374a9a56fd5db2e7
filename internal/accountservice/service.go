// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/randompkg"
	"github.com/rs/zerolog"
)

// maxNumberAttempts bounds account number generation retries.
const maxNumberAttempts = 5

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, number, owner, balance, currency string) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByNumber(ctx context.Context, number string) (domain.Account, error)
	List(ctx context.Context, owner string, limit, offset int32) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo           Repo
	initialBalance string
}

// New returns account service struct to manage account bussines logic.
//
// Newly provisioned accounts start with the given balance.
func New(ar Repo, initialBalance string) *Service {
	return &Service{
		repo:           ar,
		initialBalance: initialBalance,
	}
}

// Create creates and returns an account for the given owner and currency.
//
// The account number is generated and collision-checked; a clash makes the
// insert fail on the unique constraint and triggers regeneration.
func (s *Service) Create(ctx context.Context, owner, currency string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	for i := 0; i < maxNumberAttempts; i++ {
		number := randompkg.AccountNumber()

		account, err := s.repo.Create(ctx, number, owner, s.initialBalance, currency)
		if err == domain.ErrAccountNumberTaken {
			l.Info().Str("number", number).Msg("account number collision, regenerating")
			continue
		}

		return account, err
	}

	l.Error().Msg("account number generation exhausted")

	return domain.Account{}, domain.ErrAccountNumberExhausted
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// GetByNumber returns account for the given account number.
func (s *Service) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	account, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return account, err
	}

	return account, nil
}

// List returns accounts that are owned by the given user.
func (s *Service) List(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Account, error) {
	limit := pageSize
	offset := (pageID - 1) * pageSize

	accounts, err := s.repo.List(ctx, owner, limit, offset)
	if err != nil {
		return nil, err
	}

	return accounts, err
}
