// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/go-petr/savings-bank/internal/accountdelivery"
	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/currencypkg"
	"github.com/go-petr/savings-bank/pkg/randompkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxReferenceAttempts bounds reference number generation retries.
const maxReferenceAttempts = 5

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	Transfer(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
	GetByReference(ctx context.Context, reference string) (domain.Transfer, error)
	ListForAccount(ctx context.Context, arg domain.ListTransfersParams) ([]domain.Transfer, error)
}

// Converter provides the currency conversion interface needed by the transfer service.
type Converter interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error)
}

// HistoryRecorder provides the audit trail interface needed by the transfer service.
type HistoryRecorder interface {
	RecordTransfer(ctx context.Context, res domain.TransferTxResult) error
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo                Repo
	accountService      accountdelivery.Service
	converter           Converter
	history             HistoryRecorder
	requireSameCurrency bool
}

// New returns transfer service struct to manage transfer bussines logic.
//
// With requireSameCurrency set, transfers between accounts of different
// currencies are rejected instead of converted.
func New(tr Repo, as accountdelivery.Service, cs Converter, hs HistoryRecorder, requireSameCurrency bool) *Service {
	return &Service{
		repo:                tr,
		accountService:      as,
		converter:           cs,
		history:             hs,
		requireSameCurrency: requireSameCurrency,
	}
}

// validRequest validates the transfer before any mutation and resolves both
// accounts. Fail closed: the first violated rule aborts the request.
func (s *Service) validRequest(ctx context.Context, arg domain.InitiateTransferParams) (sender, recipient domain.Account, amount decimal.Decimal, err error) {
	l := zerolog.Ctx(ctx)

	amount, err = decimal.NewFromString(arg.Amount)
	if err != nil {
		l.Info().Err(err).Send()
		return sender, recipient, amount, domain.ErrInvalidAmount
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		l.Info().Str("amount", arg.Amount).Msg("non-positive transfer amount")
		return sender, recipient, amount, domain.ErrNegativeAmount
	}

	// Sub-cent amounts cannot be debited as requested, so reject them
	// instead of rounding to a different amount than the caller named.
	if !amount.Equal(amount.Truncate(2)) {
		l.Info().Str("amount", arg.Amount).Msg("amount precision exceeds currency precision")
		return sender, recipient, amount, domain.ErrInvalidAmount
	}

	if !currencypkg.IsSupportedCurrency(arg.Currency) {
		return sender, recipient, amount, domain.ErrUnsupportedCurrency
	}

	sender, err = s.accountService.Get(ctx, arg.SenderAccountID)
	if err != nil {
		l.Error().Err(err).Send()
		return sender, recipient, amount, err
	}

	recipient, err = s.accountService.GetByNumber(ctx, arg.RecipientAccountNumber)
	if err != nil {
		l.Info().Err(err).Send()
		return sender, recipient, amount, err
	}

	if sender.ID == recipient.ID {
		return sender, recipient, amount, domain.ErrSameAccountTransfer
	}

	if !sender.IsActive || !recipient.IsActive {
		return sender, recipient, amount, domain.ErrAccountInactive
	}

	// The request amount is denominated in the sender's currency.
	if arg.Currency != sender.Currency {
		return sender, recipient, amount, domain.ErrCurrencyMismatch
	}

	if s.requireSameCurrency && sender.Currency != recipient.Currency {
		return sender, recipient, amount, domain.ErrCurrencyMismatch
	}

	senderBalance, err := decimal.NewFromString(sender.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return sender, recipient, amount, err
	}

	if senderBalance.LessThan(amount) {
		return sender, recipient, amount, domain.ErrInsufficientBalance
	}

	return sender, recipient, amount, nil
}

// generateReference produces a reference number free across persisted
// transfers, regenerating on collision up to maxReferenceAttempts.
func (s *Service) generateReference(ctx context.Context) (string, error) {
	l := zerolog.Ctx(ctx)

	for i := 0; i < maxReferenceAttempts; i++ {
		reference := randompkg.ReferenceNumber()

		_, err := s.repo.GetByReference(ctx, reference)
		if err == domain.ErrTransferNotFound {
			return reference, nil
		}

		if err != nil {
			return "", err
		}

		l.Info().Str("reference", reference).Msg("reference number collision, regenerating")
	}

	l.Error().Msg("reference number generation exhausted")

	return "", domain.ErrReferenceExhausted
}

// Transfer validates the request, converts the amount into the recipient's
// currency, and applies the transfer atomically.
//
// After the commit the two audit entries are recorded best-effort: a history
// failure is logged but never unwinds the already-committed transfer.
func (s *Service) Transfer(ctx context.Context, arg domain.InitiateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	sender, recipient, amount, err := s.validRequest(ctx, arg)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	converted, err := s.converter.Convert(ctx, amount, sender.Currency, recipient.Currency)
	if err != nil {
		l.Info().Err(err).Send()
		return domain.TransferTxResult{}, err
	}

	reference, err := s.generateReference(ctx)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.Transfer(ctx, domain.CreateTransferParams{
		ReferenceNumber:    reference,
		SenderAccountID:    sender.ID,
		RecipientAccountID: recipient.ID,
		Amount:             amount.StringFixed(2),
		ConvertedAmount:    converted.StringFixed(2),
		Currency:           sender.Currency,
		RecipientCurrency:  recipient.Currency,
		Description:        arg.Description,
	})
	if err != nil {
		return result, err
	}

	// The transfer is already committed; recording must not be cut short by
	// the caller hanging up, so detach from the request context.
	historyCtx := l.WithContext(context.Background())
	if err := s.history.RecordTransfer(historyCtx, result); err != nil {
		l.Error().Err(err).
			Str("reference", result.Transfer.ReferenceNumber).
			Msg("history recording failed for committed transfer")
	}

	return result, nil
}

// GetByReference returns the transfer with the given reference number.
func (s *Service) GetByReference(ctx context.Context, reference string) (domain.Transfer, error) {
	transfer, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return transfer, err
	}

	return transfer, nil
}

// ListForAccount returns transfers touching the account, newest first.
func (s *Service) ListForAccount(ctx context.Context, accountID, pageSize, pageID int32) ([]domain.Transfer, error) {
	arg := domain.ListTransfersParams{
		AccountID: accountID,
		Limit:     pageSize,
		Offset:    (pageID - 1) * pageSize,
	}

	transfers, err := s.repo.ListForAccount(ctx, arg)
	if err != nil {
		return nil, err
	}

	return transfers, nil
}
