// Package currencydelivery manages delivery layer of currency reference data.
package currencydelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/go-petr/savings-bank/pkg/web"
)

// Service provides the currency reference data interface needed by the delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package currencydelivery
type Service interface {
	Get(ctx context.Context, code string) (domain.Currency, error)
	List(ctx context.Context) ([]domain.Currency, error)
}

// Handler facilitates currency delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns currency handler.
func NewHandler(cs Service) *Handler {
	return &Handler{service: cs}
}

type dataCurrencies struct {
	Currencies []domain.Currency `json:"currencies"`
}

type responseCurrencies struct {
	Data dataCurrencies `json:"data,omitempty"`
}

// List handles http request to list active currencies.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	currencies, err := h.service.List(ctx)
	if err != nil {
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseCurrencies{
		Data: dataCurrencies{currencies},
	}

	gctx.JSON(http.StatusOK, res)
}

type getRequest struct {
	Code string `uri:"code" binding:"required,len=3"`
}

type dataCurrency struct {
	Currency domain.Currency `json:"currency"`
}

type responseCurrency struct {
	Data dataCurrency `json:"data,omitempty"`
}

// Get handles http request to find a currency by its ISO code.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req getRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	currency, err := h.service.Get(ctx, req.Code)
	if err != nil {
		if err == domain.ErrCurrencyNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := responseCurrency{
		Data: dataCurrency{currency},
	}

	gctx.JSON(http.StatusOK, res)
}
