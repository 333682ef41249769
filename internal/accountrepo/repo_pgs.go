// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/pkg/dbpkg"
	"github.com/corebank/ledger/pkg/errorspkg"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// Postgres error codes surfaced as retryable transfer conflicts.
const (
	pgLockNotAvailable     = "55P03"
	pgSerializationFailure = "40001"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (account_number, customer_id, account_type, balance)
VALUES
    ($1, $2, $3, $4)
RETURNING account_id, account_number, customer_id, account_type, balance, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, number string, customerID int64, accountType, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, number, customerID, accountType, balance)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.CustomerID,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_account_number_key" {
				return a, domain.ErrAccountNumberAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	account_id, account_number, customer_id, account_type, balance, created_at
FROM accounts
WHERE account_id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.CustomerID,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const resolveNumberQuery = `
SELECT account_id FROM accounts
WHERE account_number = $1
`

// ResolveNumber returns the id of the account with the given account number.
func (r *RepoPGS) ResolveNumber(ctx context.Context, number string) (int64, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, resolveNumberQuery, number)

	var id int64

	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return 0, errorspkg.ErrInternal
	}

	return id, nil
}

const getForUpdateQuery = `
SELECT
	account_id, account_number, customer_id, account_type, balance, created_at
FROM accounts
WHERE account_id = $1
FOR UPDATE
`

// GetForUpdate returns the account with the given id and locks its row until
// the surrounding transaction finishes.
//
// A bounded lock wait is enforced by the caller's lock_timeout; losing the
// wait surfaces as a retryable conflict.
func (r *RepoPGS) GetForUpdate(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getForUpdateQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.CustomerID,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			switch string(pqErr.Code) {
			case pgLockNotAvailable, pgSerializationFailure:
				return a, domain.ErrTransferConflict
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const addBalanceQuery = `
UPDATE accounts
SET balance = balance + $1
WHERE account_id = $2
RETURNING account_id, account_number, customer_id, account_type, balance, created_at
`

// AddBalance applies a signed delta to the account's balance and returns the changed account.
func (r *RepoPGS) AddBalance(ctx context.Context, amount string, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addBalanceQuery, amount, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.CustomerID,
		&a.Type,
		&a.Balance,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientBalance
			}

			switch string(pqErr.Code) {
			case pgLockNotAvailable, pgSerializationFailure:
				return a, domain.ErrTransferConflict
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByCustomerQuery = `
SELECT
	account_id, account_number, customer_id, account_type, balance, created_at
FROM accounts
WHERE customer_id = $1
ORDER BY account_id
`

// ListByCustomer returns all accounts of the given customer.
func (r *RepoPGS) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByCustomerQuery, customerID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Number, &a.CustomerID, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
