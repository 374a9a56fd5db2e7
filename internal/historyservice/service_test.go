package historyservice

import (
	"context"
	"testing"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/currencypkg"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func completedTransferResult() domain.TransferTxResult {
	return domain.TransferTxResult{
		Transfer: domain.Transfer{
			ID:                 42,
			ReferenceNumber:    "TRF-A1B2C3D4E5",
			SenderAccountID:    1,
			RecipientAccountID: 2,
			Amount:             "100.00",
			ConvertedAmount:    "91.08",
			Currency:           currencypkg.USD,
			RecipientCurrency:  currencypkg.EUR,
			Status:             domain.TransferStatusCompleted,
			Description:        "rent",
		},
		SenderAccount: domain.Account{
			ID:       1,
			Balance:  "900.00",
			Currency: currencypkg.USD,
			IsActive: true,
		},
		RecipientAccount: domain.Account{
			ID:       2,
			Balance:  "1091.08",
			Currency: currencypkg.EUR,
			IsActive: true,
		},
	}
}

func TestDeriveEntries(t *testing.T) {
	t.Parallel()

	res := completedTransferResult()

	debit, credit, err := deriveEntries(res)
	require.NoError(t, err)

	require.Equal(t, res.Transfer.SenderAccountID, debit.AccountID)
	require.Equal(t, domain.HistoryEntryDebit, debit.Type)
	require.Equal(t, "100.00", debit.Amount)
	require.Equal(t, currencypkg.USD, debit.Currency)
	require.Equal(t, "1000", debit.BalanceBefore)
	require.Equal(t, "900", debit.BalanceAfter)
	require.NotNil(t, debit.TransferID)
	require.Equal(t, res.Transfer.ID, *debit.TransferID)
	require.Equal(t, "rent", debit.Description)

	require.Equal(t, res.Transfer.RecipientAccountID, credit.AccountID)
	require.Equal(t, domain.HistoryEntryCredit, credit.Type)
	require.Equal(t, "91.08", credit.Amount)
	require.Equal(t, currencypkg.EUR, credit.Currency)
	require.Equal(t, "1000", credit.BalanceBefore)
	require.Equal(t, "1091.08", credit.BalanceAfter)
	require.NotNil(t, credit.TransferID)
	require.Equal(t, res.Transfer.ID, *credit.TransferID)
}

// Each derived entry must account for exactly the amount its leg moved.
func TestDeriveEntriesConservation(t *testing.T) {
	t.Parallel()

	res := completedTransferResult()

	debit, credit, err := deriveEntries(res)
	require.NoError(t, err)

	amount := decimal.RequireFromString(res.Transfer.Amount)
	converted := decimal.RequireFromString(res.Transfer.ConvertedAmount)

	debitBefore := decimal.RequireFromString(debit.BalanceBefore)
	debitAfter := decimal.RequireFromString(debit.BalanceAfter)
	require.True(t, debitBefore.Sub(debitAfter).Equal(amount))

	creditBefore := decimal.RequireFromString(credit.BalanceBefore)
	creditAfter := decimal.RequireFromString(credit.BalanceAfter)
	require.True(t, creditAfter.Sub(creditBefore).Equal(converted))
}

func TestDeriveEntriesInvalidAmount(t *testing.T) {
	t.Parallel()

	res := completedTransferResult()
	res.Transfer.Amount = "not-a-number"

	_, _, err := deriveEntries(res)
	require.Error(t, err)
}

func TestRecordTransfer(t *testing.T) {
	res := completedTransferResult()

	testCases := []struct {
		name          string
		buildStubs    func(repo *MockRepo)
		checkResponse func(err error)
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				debitCall := repo.EXPECT().
					Create(gomock.Any(), entryOfType(domain.HistoryEntryDebit)).
					Times(1).
					Return(domain.TransactionHistoryEntry{}, nil)
				repo.EXPECT().
					Create(gomock.Any(), entryOfType(domain.HistoryEntryCredit)).
					Times(1).
					After(debitCall).
					Return(domain.TransactionHistoryEntry{}, nil)
			},
			checkResponse: func(err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "Debit entry fails",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), entryOfType(domain.HistoryEntryDebit)).
					Times(1).
					Return(domain.TransactionHistoryEntry{}, errorspkg.ErrInternal)
			},
			checkResponse: func(err error) {
				require.ErrorIs(t, err, errorspkg.ErrInternal)
			},
		},
		{
			name: "Credit entry fails",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Create(gomock.Any(), entryOfType(domain.HistoryEntryDebit)).
					Times(1).
					Return(domain.TransactionHistoryEntry{}, nil)
				repo.EXPECT().
					Create(gomock.Any(), entryOfType(domain.HistoryEntryCredit)).
					Times(1).
					Return(domain.TransactionHistoryEntry{}, errorspkg.ErrInternal)
			},
			checkResponse: func(err error) {
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

			service := New(repo)

			tc.checkResponse(service.RecordTransfer(context.Background(), res))
		})
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entries := []domain.TransactionHistoryEntry{
		{ID: 2, AccountID: 1, Type: domain.HistoryEntryCredit},
		{ID: 1, AccountID: 1, Type: domain.HistoryEntryDebit},
	}

	repo := NewMockRepo(ctrl)
	repo.EXPECT().
		List(gomock.Any(), gomock.Eq(int32(1)), gomock.Eq(int32(5)), gomock.Eq(int32(5))).
		Times(1).
		Return(entries, nil)

	service := New(repo)

	got, err := service.List(context.Background(), 1, 5, 2)
	require.NoError(t, err)
	require.Equal(t, entries, got)
}

// entryOfType matches a CreateHistoryEntryParams by its entry type.
type entryTypeMatcher struct {
	want domain.HistoryEntryType
}

func entryOfType(want domain.HistoryEntryType) gomock.Matcher {
	return entryTypeMatcher{want: want}
}

func (m entryTypeMatcher) Matches(x interface{}) bool {
	arg, ok := x.(domain.CreateHistoryEntryParams)
	if !ok {
		return false
	}

	return arg.Type == m.want
}

func (m entryTypeMatcher) String() string {
	return "is a history entry of type " + string(m.want)
}
