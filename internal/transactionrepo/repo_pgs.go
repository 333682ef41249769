// Package transactionrepo manages repository layer of the transaction log.
package transactionrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/pkg/dbpkg"
	"github.com/corebank/ledger/pkg/errorspkg"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// RepoPGS facilitates transaction log repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns transaction RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{db: db}
}

// transaction_date defaults to now(), which postgres fixes at transaction
// start, so every record appended within one unit of work carries the same
// timestamp.
const createQuery = `
INSERT INTO
    transactions (sender_account_id, receiver_account_id, amount, transaction_type, description)
VALUES
    ($1, $2, $3, $4, $5)
RETURNING transaction_id, sender_account_id, receiver_account_id, amount, transaction_type, description, transaction_date
`

// Create appends the transaction record and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery,
		arg.SenderAccountID,
		arg.ReceiverAccountID,
		arg.Amount,
		arg.Type,
		arg.Description,
	)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.SenderAccountID,
		&t.ReceiverAccountID,
		&t.Amount,
		&t.Type,
		&t.Description,
		&t.Date,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx context.Context, %+v)", arg)

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "transactions_sender_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_receiver_account_id_fkey":
				return t, domain.ErrAccountNotFound
			case "transactions_amount_check":
				return t, domain.ErrInvalidAmount
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const getQuery = `
SELECT
	transaction_id, sender_account_id, receiver_account_id, amount, transaction_type, description, transaction_date
FROM transactions
WHERE transaction_id = $1
`

// Get returns the transaction with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.SenderAccountID,
		&t.ReceiverAccountID,
		&t.Amount,
		&t.Type,
		&t.Description,
		&t.Date,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if err == sql.ErrNoRows {
			return t, domain.ErrTransactionNotFound
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const listQuery = `
SELECT
	transaction_id, sender_account_id, receiver_account_id, amount, transaction_type, description, transaction_date
FROM transactions
WHERE
    sender_account_id = $1 OR receiver_account_id = $1
ORDER BY transaction_date DESC, transaction_id DESC
`

// List returns all transactions the given account is involved in as sender or
// receiver, newest first.
func (r *RepoPGS) List(ctx context.Context, accountID int64) ([]domain.Transaction, error) {
	return r.list(ctx, listQuery, accountID)
}

const listStatementQuery = `
SELECT
	transaction_id, sender_account_id, receiver_account_id, amount, transaction_type, description, transaction_date
FROM transactions
WHERE
    (sender_account_id = $1 OR receiver_account_id = $1)
    AND transaction_date BETWEEN $2 AND $3
ORDER BY transaction_date DESC, transaction_id DESC
`

// ListStatement returns the account's transactions within [from, to] inclusive, newest first.
func (r *RepoPGS) ListStatement(ctx context.Context, accountID int64, from, to time.Time) ([]domain.Transaction, error) {
	return r.list(ctx, listStatementQuery, accountID, from, to)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID,
			&t.SenderAccountID,
			&t.ReceiverAccountID,
			&t.Amount,
			&t.Type,
			&t.Description,
			&t.Date,
		); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
