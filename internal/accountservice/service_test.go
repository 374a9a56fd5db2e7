package accountservice

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/currencypkg"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/go-petr/savings-bank/pkg/randompkg"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const testInitialBalance = "10000"

func randomAccount(owner string) domain.Account {
	return domain.Account{
		ID:        randompkg.IntBetween(1, 100),
		Number:    randompkg.AccountNumber(),
		Owner:     owner,
		Balance:   testInitialBalance,
		Currency:  currencypkg.USD,
		IsActive:  true,
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

func TestCreate(t *testing.T) {
	owner := randompkg.Owner()
	account := randomAccount(owner)

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(got domain.Account, err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), accountNumberMatcher{}, gomock.Eq(owner), gomock.Eq(testInitialBalance), gomock.Eq(currencypkg.USD)).
					Times(1).
					Return(account, nil)
			},
			checkResponse: func(got domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, got)
			},
		},
		{
			name: "Number collision triggers regeneration",
			buildStubs: func(repo *MockRepo) {
				collision := repo.EXPECT().
					Create(gomock.Any(), accountNumberMatcher{}, gomock.Eq(owner), gomock.Eq(testInitialBalance), gomock.Eq(currencypkg.USD)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNumberTaken)
				repo.EXPECT().
					Create(gomock.Any(), accountNumberMatcher{}, gomock.Eq(owner), gomock.Eq(testInitialBalance), gomock.Eq(currencypkg.USD)).
					Times(1).
					After(collision).
					Return(account, nil)
			},
			checkResponse: func(got domain.Account, err error) {
				require.NoError(t, err)
				require.Equal(t, account, got)
			},
		},
		{
			name: "Number generation exhausted",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(maxNumberAttempts).
					Return(domain.Account{}, domain.ErrAccountNumberTaken)
			},
			checkResponse: func(got domain.Account, err error) {
				require.Empty(t, got)
				require.ErrorIs(t, err, domain.ErrAccountNumberExhausted)
			},
		},
		{
			name: "Unsupported currency",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, domain.ErrUnsupportedCurrency)
			},
			checkResponse: func(got domain.Account, err error) {
				require.Empty(t, got)
				require.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
			},
		},
		{
			name: "Repo error",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			checkResponse: func(got domain.Account, err error) {
				require.Empty(t, got)
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			service := New(repo, testInitialBalance)

			tc.checkResponse(service.Create(context.Background(), owner, currencypkg.USD))
		})
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	account := randomAccount(randompkg.Owner())

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		Get(gomock.Any(), gomock.Eq(account.ID)).
		Times(1).
		Return(account, nil)

	service := New(repo, testInitialBalance)

	got, err := service.Get(context.Background(), account.ID)
	require.NoError(t, err)
	require.Equal(t, account, got)
}

func TestGetByNumber(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		GetByNumber(gomock.Any(), gomock.Eq("SA00000000")).
		Times(1).
		Return(domain.Account{}, domain.ErrAccountNotFound)

	service := New(repo, testInitialBalance)

	_, err := service.GetByNumber(context.Background(), "SA00000000")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	owner := randompkg.Owner()
	accounts := []domain.Account{randomAccount(owner), randomAccount(owner)}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(owner), gomock.Eq(int32(10)), gomock.Eq(int32(10))).
		Times(1).
		Return(accounts, nil)

	service := New(repo, testInitialBalance)

	got, err := service.List(context.Background(), owner, 10, 2)
	require.NoError(t, err)
	require.Equal(t, accounts, got)
}

// accountNumberMatcher matches a well-formed generated account number.
type accountNumberMatcher struct{}

func (accountNumberMatcher) Matches(x interface{}) bool {
	number, ok := x.(string)
	if !ok {
		return false
	}

	if !strings.HasPrefix(number, randompkg.AccountNumberPrefix) {
		return false
	}

	digits := number[len(randompkg.AccountNumberPrefix):]
	if len(digits) != 8 {
		return false
	}

	for _, c := range digits {
		if c < '0' || c > '9' {
			return false
		}
	}

	return true
}

func (accountNumberMatcher) String() string {
	return "is a well-formed account number"
}
