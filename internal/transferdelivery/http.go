// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/internal/middleware"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/go-petr/savings-bank/pkg/web"
)

// rateRetryAfter hints clients when to retry after a rate source failure.
const rateRetryAfter = "5"

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, arg domain.InitiateTransferParams) (domain.TransferTxResult, error)
	GetByReference(ctx context.Context, reference string) (domain.Transfer, error)
	ListForAccount(ctx context.Context, accountID, pageSize, pageID int32) ([]domain.Transfer, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
	limiter *middleware.KeyedLimiter
}

// NewHandler returns transfer handler throttling initiations per sender account.
func NewHandler(ts Service, limiter *middleware.KeyedLimiter) *Handler {
	return &Handler{
		service: ts,
		limiter: limiter,
	}
}

type request struct {
	SenderAccountID        int32  `json:"sender_account_id" binding:"required,min=1"`
	RecipientAccountNumber string `json:"recipient_account_number" binding:"required"`
	Amount                 string `json:"amount" binding:"required"`
	Currency               string `json:"currency" binding:"required,currency"`
	Description            string `json:"description" binding:"max=255"`
}

type data struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to create a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	// Throttle per sender account, after binding so the key is known.
	senderKey := strconv.FormatInt(int64(req.SenderAccountID), 10)
	if ok, retryAfter := h.limiter.Allow(senderKey); !ok {
		l.Info().Str("sender", senderKey).Msg("transfer rate limit exceeded")

		gctx.Header("Retry-After", middleware.RetryAfterSeconds(retryAfter))
		gctx.JSON(http.StatusTooManyRequests, web.Response{Error: "too many transfer requests"})

		return
	}

	arg := domain.InitiateTransferParams{
		SenderAccountID:        req.SenderAccountID,
		RecipientAccountNumber: req.RecipientAccountNumber,
		Amount:                 req.Amount,
		Currency:               req.Currency,
		Description:            req.Description,
	}

	result, err := h.service.Transfer(ctx, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrSameAccountTransfer,
			domain.ErrInvalidAmount,
			domain.ErrNegativeAmount,
			domain.ErrInsufficientBalance,
			domain.ErrCurrencyMismatch,
			domain.ErrUnsupportedCurrency,
			domain.ErrAccountInactive:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		case domain.ErrAccountNotFound:
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		case
			domain.ErrRateSourceUnavailable,
			domain.ErrRateNotFound:
			// Transient upstream condition; the caller may retry after backoff.
			gctx.Header("Retry-After", rateRetryAfter)
			gctx.JSON(http.StatusServiceUnavailable, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{result},
	}

	gctx.JSON(http.StatusCreated, res)
}

type getRequest struct {
	Reference string `uri:"reference" binding:"required"`
}

type dataTransfer struct {
	Transfer domain.Transfer `json:"transfer"`
}

type responseTransfer struct {
	Data dataTransfer `json:"data,omitempty"`
}

// Get handles http request to find a transfer by its reference number.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transfer, err := h.service.GetByReference(ctx, req.Reference)
	if err != nil {
		if err == domain.ErrTransferNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseTransfer{
		Data: dataTransfer{transfer},
	}

	gctx.JSON(http.StatusOK, res)
}

type listURI struct {
	AccountID int32 `uri:"id" binding:"required,min=1"`
}

type listQuery struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataTransfers struct {
	Transfers []domain.Transfer `json:"transfers"`
}

type responseTransfers struct {
	Data dataTransfers `json:"data,omitempty"`
}

// List handles http request to list transfers touching an account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri listURI
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	var page listQuery
	if err := gctx.ShouldBindQuery(&page); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
			return
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	transfers, err := h.service.ListForAccount(ctx, uri.AccountID, page.PageSize, page.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := responseTransfers{
		Data: dataTransfers{transfers},
	}

	gctx.JSON(http.StatusOK, res)
}
