// Package transactionservice manages the read-only history and statement projections.
package transactionservice

import (
	"context"
	"time"

	"github.com/corebank/ledger/internal/accountdelivery"
	"github.com/corebank/ledger/internal/domain"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	List(ctx context.Context, accountID int64) ([]domain.Transaction, error)
	ListStatement(ctx context.Context, accountID int64, from, to time.Time) ([]domain.Transaction, error)
}

// Service facilitates transaction history business logic.
type Service struct {
	repo           Repo
	accountService accountdelivery.Service
}

// New returns transaction service struct to manage history queries.
func New(tr Repo, as accountdelivery.Service) *Service {
	return &Service{
		repo:           tr,
		accountService: as,
	}
}

func (s *Service) checkOwner(ctx context.Context, callerCustomerID, accountID int64) error {
	account, err := s.accountService.Get(ctx, accountID)
	if err != nil {
		return err
	}

	if account.CustomerID != callerCustomerID {
		return domain.ErrAccountOwnerMismatch
	}

	return nil
}

// ListForAccount returns all transactions involving the account, newest first.
func (s *Service) ListForAccount(ctx context.Context, callerCustomerID, accountID int64) ([]domain.Transaction, error) {
	if err := s.checkOwner(ctx, callerCustomerID, accountID); err != nil {
		return nil, err
	}

	return s.repo.List(ctx, accountID)
}

// Statement returns the account's transactions within [from, to] inclusive, newest first.
func (s *Service) Statement(ctx context.Context, callerCustomerID, accountID int64, from, to time.Time) ([]domain.Transaction, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidDateRange
	}

	if err := s.checkOwner(ctx, callerCustomerID, accountID); err != nil {
		return nil, err
	}

	return s.repo.ListStatement(ctx, accountID, from, to)
}
