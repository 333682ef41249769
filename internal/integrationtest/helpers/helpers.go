// Package helpers provides seeding helpers for integration tests.
package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/pkg/dbpkg"
	"github.com/corebank/ledger/pkg/randompkg"
)

// RequireEqualAmount compares two money amounts as decimals. The database
// renders scale-2 numerics with trailing zeros ("400" comes back as "400.00"),
// so raw string equality does not hold.
func RequireEqualAmount(t *testing.T, want, got string) {
	t.Helper()

	wantDecimal, err := decimal.NewFromString(want)
	require.NoError(t, err)

	gotDecimal, err := decimal.NewFromString(got)
	require.NoError(t, err)

	require.True(t, wantDecimal.Equal(gotDecimal),
		"amount = %s, want %s", got, want)
}

// SeedAccount inserts an account with the given balance and returns it.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, customerID int64, balance string) domain.Account {
	t.Helper()

	const query = `
	INSERT INTO accounts (account_number, customer_id, account_type, balance)
	VALUES ($1, $2, $3, $4)
	RETURNING account_id, account_number, customer_id, account_type, balance, created_at`

	row := db.QueryRowContext(context.Background(), query,
		randompkg.AccountNumber(), customerID, randompkg.AccountType(), balance)

	var a domain.Account
	if err := row.Scan(&a.ID, &a.Number, &a.CustomerID, &a.Type, &a.Balance, &a.CreatedAt); err != nil {
		t.Fatalf("seeding account failed: %v", err)
	}

	return a
}

// SeedTransaction inserts a transaction record dated at the given time and returns it.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, senderID, receiverID int64, amount string, date time.Time) domain.Transaction {
	t.Helper()

	const query = `
	INSERT INTO transactions (sender_account_id, receiver_account_id, amount, transaction_type, description, transaction_date)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING transaction_id, sender_account_id, receiver_account_id, amount, transaction_type, description, transaction_date`

	row := db.QueryRowContext(context.Background(), query,
		senderID, receiverID, amount, domain.TransactionTypeTransfer, randompkg.String(12), date)

	var tr domain.Transaction
	if err := row.Scan(&tr.ID, &tr.SenderAccountID, &tr.ReceiverAccountID, &tr.Amount, &tr.Type, &tr.Description, &tr.Date); err != nil {
		t.Fatalf("seeding transaction failed: %v", err)
	}

	return tr
}
