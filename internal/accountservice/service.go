// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/pkg/errorspkg"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, number string, customerID int64, accountType, balance string) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// createAttempts bounds retries on account number collisions.
const createAttempts = 3

func newAccountNumber() (string, error) {
	const digits = "0123456789"

	number := make([]byte, 10)

	for i := range number {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}

		number[i] = digits[n.Int64()]
	}

	return string(number), nil
}

// Create opens a zero-balance account of the given type for the customer,
// generating a fresh account number.
func (s *Service) Create(ctx context.Context, customerID int64, accountType string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var account domain.Account

	for i := 0; i < createAttempts; i++ {
		number, err := newAccountNumber()
		if err != nil {
			l.Error().Err(err).Send()
			return account, errorspkg.ErrInternal
		}

		account, err = s.repo.Create(ctx, number, customerID, accountType, "0")
		if err == domain.ErrAccountNumberAlreadyExists {
			continue
		}

		return account, err
	}

	return account, domain.ErrAccountNumberAlreadyExists
}

// Get returns the account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return account, err
	}

	return account, nil
}

// ListByCustomer returns the accounts owned by the given customer.
func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	accounts, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return accounts, nil
}
