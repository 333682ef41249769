// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/corebank/ledger/pkg/errorspkg"
	"github.com/corebank/ledger/pkg/tokenpkg"
	"github.com/corebank/ledger/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, callerCustomerID int64, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type legRequest struct {
	ReceiverAccountNumber string `json:"receiver_account_number" binding:"required"`
	Amount                string `json:"amount" binding:"required"`
	Description           string `json:"description"`
}

type request struct {
	SenderAccountID int64        `json:"sender_account_id" binding:"required,min=1"`
	Legs            []legRequest `json:"legs" binding:"required,min=1,dive"`
}

type data struct {
	Transfer domain.TransferTxResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to execute a transfer batch.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthorizationPayloadKey).(*tokenpkg.Payload)

	arg := domain.CreateTransferParams{
		SenderAccountID: req.SenderAccountID,
		Legs:            make([]domain.TransferLeg, len(req.Legs)),
	}

	for i, leg := range req.Legs {
		arg.Legs[i] = domain.TransferLeg{
			ReceiverAccountNumber: leg.ReceiverAccountNumber,
			Amount:                leg.Amount,
			Description:           leg.Description,
		}
	}

	result, err := h.service.Transfer(ctx, authPayload.CustomerID, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrAccountOwnerMismatch):
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
		case errors.Is(err, domain.ErrAccountNotFound),
			errors.Is(err, domain.ErrReceiverNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrNegativeAmount),
			errors.Is(err, domain.ErrEmptyBatch),
			errors.Is(err, domain.ErrSelfTransfer),
			errors.Is(err, domain.ErrInsufficientBalance):
			gctx.JSON(http.StatusBadRequest, web.Error(err))
		case errors.Is(err, domain.ErrTransferConflict):
			gctx.JSON(http.StatusConflict, web.Error(err))
		default:
			gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		}

		return
	}

	gctx.JSON(http.StatusCreated, response{Data: data{result}})
}
