// Package transferservice manages business logic layer of transfers.
package transferservice

import (
	"context"

	"github.com/corebank/ledger/internal/accountdelivery"
	"github.com/corebank/ledger/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Publisher announces committed transfers to downstream consumers.
type Publisher interface {
	PublishTransferCommitted(ctx context.Context, transactions []domain.Transaction) error
}

// Service facilitates transfer service layer logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
	publisher      Publisher
	allowSelf      bool
}

// New returns transfer service struct to manage transfer business logic.
//
// publisher may be nil when event publishing is disabled. allowSelf permits
// legs whose receiver is the sender's own account.
func New(tr Repo, as accountdelivery.Service, publisher Publisher, allowSelf bool) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
		publisher:      publisher,
		allowSelf:      allowSelf,
	}
}

func validAmount(amount string) (decimal.Decimal, error) {
	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return amountDecimal, domain.ErrInvalidAmount
	}

	if amountDecimal.LessThanOrEqual(decimal.Zero) {
		return amountDecimal, domain.ErrNegativeAmount
	}

	// Two decimal places is the representable money precision.
	if amountDecimal.Exponent() < -2 {
		return amountDecimal, domain.ErrInvalidAmount
	}

	return amountDecimal, nil
}

// validRequest returns the request with every leg amount rewritten to the
// canonical decimal form, so signed or zero-padded inputs like "+300" never
// reach the repository.
func (s *Service) validRequest(ctx context.Context, callerCustomerID int64, arg domain.CreateTransferParams) (domain.CreateTransferParams, error) {
	l := zerolog.Ctx(ctx)

	if len(arg.Legs) == 0 {
		return arg, domain.ErrEmptyBatch
	}

	legs := make([]domain.TransferLeg, len(arg.Legs))

	for i, leg := range arg.Legs {
		amount, err := validAmount(leg.Amount)
		if err != nil {
			l.Info().Err(err).Str("amount", leg.Amount).Send()
			return arg, err
		}

		legs[i] = domain.TransferLeg{
			ReceiverAccountNumber: leg.ReceiverAccountNumber,
			Amount:                amount.String(),
			Description:           leg.Description,
		}
	}

	arg.Legs = legs

	sender, err := s.accountService.Get(ctx, arg.SenderAccountID)
	if err != nil {
		l.Error().Err(err).Send()
		return arg, err
	}

	if sender.CustomerID != callerCustomerID {
		l.Info().Err(domain.ErrAccountOwnerMismatch).Send()
		return arg, domain.ErrAccountOwnerMismatch
	}

	if !s.allowSelf {
		for _, leg := range arg.Legs {
			if leg.ReceiverAccountNumber == sender.Number {
				return arg, domain.ErrSelfTransfer
			}
		}
	}

	return arg, nil
}

// Transfer checks if the transfer request is valid and then executes the
// batch atomically.
//
// Either every leg is debited, credited and logged or none is; failures
// during the unit of work leave the ledger untouched.
func (s *Service) Transfer(ctx context.Context, callerCustomerID int64, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	arg, err := s.validRequest(ctx, callerCustomerID, arg)
	if err != nil {
		return domain.TransferTxResult{}, err
	}

	result, err := s.repo.TransferTx(ctx, arg)
	if err != nil {
		return result, err
	}

	if s.publisher != nil {
		// Best effort only: the transfer is already durable.
		if err := s.publisher.PublishTransferCommitted(ctx, result.Transactions); err != nil {
			l.Warn().Err(err).Msg("publishing committed transfer failed")
		}
	}

	return result, nil
}
