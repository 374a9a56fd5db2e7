// Package historydelivery manages delivery layer of transaction history.
package historydelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/savings-bank/internal/domain"
	"github.com/go-petr/savings-bank/pkg/errorspkg"
	"github.com/go-petr/savings-bank/pkg/web"
)

// Service provides service layer interface needed by history delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package historydelivery
type Service interface {
	List(ctx context.Context, accountID int32, pageSize, pageID int32) ([]domain.TransactionHistoryEntry, error)
}

// Handler facilitates history delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns history handler.
func NewHandler(hs Service) *Handler {
	return &Handler{service: hs}
}

type listURI struct {
	AccountID int32 `uri:"id" binding:"required,min=1"`
}

type listQuery struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type dataEntries struct {
	Entries []domain.TransactionHistoryEntry `json:"entries"`
}

type response struct {
	Data dataEntries `json:"data,omitempty"`
}

// List handles http request to list history entries for an account.
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

	entries, err := h.service.List(ctx, uri.AccountID, page.PageSize, page.PageID)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	res := response{
		Data: dataEntries{entries},
	}

	gctx.JSON(http.StatusOK, res)
}
