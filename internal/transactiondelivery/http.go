// Package transactiondelivery manages delivery layer of transaction history and statements.
package transactiondelivery

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/corebank/ledger/pkg/errorspkg"
	"github.com/corebank/ledger/pkg/tokenpkg"
	"github.com/corebank/ledger/pkg/web"
)

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	ListForAccount(ctx context.Context, callerCustomerID, accountID int64) ([]domain.Transaction, error)
	Statement(ctx context.Context, callerCustomerID, accountID int64, from, to time.Time) ([]domain.Transaction, error)
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type uriRequest struct {
	AccountID int64 `uri:"id" binding:"required,min=1"`
}

type dataTransactions struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type response struct {
	Data dataTransactions `json:"data,omitempty"`
}

func bindErrorMsg(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		return field.Field() + web.GetErrorMsg(field)
	}

	return err.Error()
}

func (h *Handler) respondList(gctx *gin.Context, transactions []domain.Transaction, err error) {
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrAccountOwnerMismatch):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case errors.Is(err, domain.ErrInvalidDateRange):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusOK, response{Data: dataTransactions{transactions}})
}

// List handles http request to list all transactions involving an account.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthorizationPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.ListForAccount(ctx, authPayload.CustomerID, req.AccountID)
	h.respondList(gctx, transactions, err)
}

type statementRequest struct {
	StartDate string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"required,datetime=2006-01-02"`
}

// Statement handles http request to list an account's transactions within a
// date range, inclusive of both boundaries.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	var query statementRequest
	if err := gctx.ShouldBindQuery(&query); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: bindErrorMsg(err)})

		return
	}

	// Dates are parsed as UTC midnights; the end bound is pushed to the end
	// of its day so the whole end date is included.
	from, _ := time.Parse("2006-01-02", query.StartDate)
	to, _ := time.Parse("2006-01-02", query.EndDate)
	to = to.Add(24*time.Hour - time.Nanosecond)

	authPayload := gctx.MustGet(middleware.AuthorizationPayloadKey).(*tokenpkg.Payload)

	transactions, err := h.service.Statement(ctx, authPayload.CustomerID, req.AccountID, from, to)
	h.respondList(gctx, transactions, err)
}
