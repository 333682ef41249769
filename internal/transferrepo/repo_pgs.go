// Package transferrepo manages the atomic transfer unit of work.
package transferrepo

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/corebank/ledger/internal/accountrepo"
	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/transactionrepo"
	"github.com/corebank/ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// RepoPGS facilitates transfer repository layer logic.
type RepoPGS struct {
	conn        *sql.DB
	lockTimeout time.Duration
}

// NewRepoPGS returns transfer RepoPGS with a connection to start transactions.
//
// lockTimeout bounds the wait for conflicting row locks within one transfer;
// zero disables the bound.
func NewRepoPGS(conn *sql.DB, lockTimeout time.Duration) *RepoPGS {
	return &RepoPGS{
		conn:        conn,
		lockTimeout: lockTimeout,
	}
}

// TransferTx moves money from the sender to every receiver in the batch.
//
// It resolves receiver account numbers, checks aggregate sufficiency, applies
// all balance deltas and appends one transaction record per leg within a
// single database transaction. All effects become visible together at commit
// or not at all.
func (r *RepoPGS) TransferTx(ctx context.Context, arg domain.CreateTransferParams) (domain.TransferTxResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferTxResult

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	if r.lockTimeout > 0 {
		timeout := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, timeout); err != nil {
			l.Error().Err(err).Send()
			return result, errorspkg.ErrInternal
		}
	}

	accountRepo := accountrepo.NewRepoPGS(tx)
	transactionRepo := transactionrepo.NewRepoPGS(tx)

	aggregate, err := aggregateAmount(arg.Legs)
	if err != nil {
		return result, err
	}

	receiverIDs, err := resolveReceivers(ctx, accountRepo, arg.Legs)
	if err != nil {
		return result, err
	}

	// Lock every touched row in ascending id order to avoid deadlocks
	// between transfers referencing overlapping account sets.
	sender, err := lockAccounts(ctx, accountRepo, arg.SenderAccountID, receiverIDs)
	if err != nil {
		return result, err
	}

	balance, err := decimal.NewFromString(sender.Balance)
	if err != nil {
		l.Error().Err(err).Send()
		return result, errorspkg.ErrInternal
	}

	if balance.LessThan(aggregate) {
		return result, domain.ErrInsufficientBalance
	}

	result.Transactions = make([]domain.Transaction, 0, len(arg.Legs))

	for i, leg := range arg.Legs {
		sender, err = accountRepo.AddBalance(ctx, "-"+leg.Amount, arg.SenderAccountID)
		if err != nil {
			l.Error().Err(err).Send()
			return result, err
		}

		if _, err = accountRepo.AddBalance(ctx, leg.Amount, receiverIDs[i]); err != nil {
			l.Error().Err(err).Send()
			return result, err
		}

		transaction, err := transactionRepo.Create(ctx, domain.CreateTransactionParams{
			SenderAccountID:   arg.SenderAccountID,
			ReceiverAccountID: receiverIDs[i],
			Amount:            leg.Amount,
			Type:              domain.TransactionTypeTransfer,
			Description:       leg.Description,
		})
		if err != nil {
			l.Error().Err(err).Send()
			return result, err
		}

		result.Transactions = append(result.Transactions, transaction)
	}

	result.SenderAccount = sender

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.TransferTxResult{}, errorspkg.ErrInternal
	}

	return result, nil
}

func aggregateAmount(legs []domain.TransferLeg) (decimal.Decimal, error) {
	total := decimal.Zero

	for _, leg := range legs {
		amount, err := decimal.NewFromString(leg.Amount)
		if err != nil {
			return total, domain.ErrInvalidAmount
		}

		total = total.Add(amount)
	}

	return total, nil
}

func resolveReceivers(ctx context.Context, r *accountrepo.RepoPGS, legs []domain.TransferLeg) ([]int64, error) {
	ids := make([]int64, len(legs))

	for i, leg := range legs {
		id, err := r.ResolveNumber(ctx, leg.ReceiverAccountNumber)
		if err != nil {
			if err == domain.ErrAccountNotFound {
				return nil, fmt.Errorf("%w: %s", domain.ErrReceiverNotFound, leg.ReceiverAccountNumber)
			}

			return nil, err
		}

		ids[i] = id
	}

	return ids, nil
}

func lockAccounts(ctx context.Context, r *accountrepo.RepoPGS, senderID int64, receiverIDs []int64) (domain.Account, error) {
	seen := map[int64]struct{}{senderID: {}}
	ids := []int64{senderID}

	for _, id := range receiverIDs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var sender domain.Account

	for _, id := range ids {
		account, err := r.GetForUpdate(ctx, id)
		if err != nil {
			return sender, err
		}

		if id == senderID {
			sender = account
		}
	}

	return sender, nil
}
