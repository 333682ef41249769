//go:build integration

package transactionrepo_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/corebank/ledger/internal/domain"
	"github.com/corebank/ledger/internal/integrationtest"
	"github.com/corebank/ledger/internal/integrationtest/helpers"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/corebank/ledger/internal/transactionrepo"
	"github.com/corebank/ledger/pkg/configpkg"
	"github.com/corebank/ledger/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var (
	dbDriver string
	dbSource string
	ctx      context.Context
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	logger := middleware.CreateLogger(config)
	ctx = logger.WithContext(context.Background())

	os.Exit(m.Run())
}

func TestCreate(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(tx)

	sender := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")
	receiver := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "0")

	arg := domain.CreateTransactionParams{
		SenderAccountID:   sender.ID,
		ReceiverAccountID: receiver.ID,
		Amount:            randompkg.MoneyAmountBetween(100, 1000),
		Type:              domain.TransactionTypeTransfer,
		Description:       randompkg.String(12),
	}

	transaction, err := repo.Create(ctx, arg)
	require.NoError(t, err)
	require.NotZero(t, transaction.ID)
	require.Equal(t, arg.SenderAccountID, transaction.SenderAccountID)
	require.Equal(t, arg.ReceiverAccountID, transaction.ReceiverAccountID)
	helpers.RequireEqualAmount(t, arg.Amount, transaction.Amount)
	require.Equal(t, arg.Type, transaction.Type)
	require.Equal(t, arg.Description, transaction.Description)
	require.WithinDuration(t, time.Now(), transaction.Date, time.Minute)
}

func TestCreateErrors(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(tx)

	sender := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")
	receiver := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "0")

	testCases := []struct {
		name    string
		arg     domain.CreateTransactionParams
		wantErr error
	}{
		{
			name: "SenderNotFound",
			arg: domain.CreateTransactionParams{
				SenderAccountID:   sender.ID + 10_000,
				ReceiverAccountID: receiver.ID,
				Amount:            "100",
				Type:              domain.TransactionTypeTransfer,
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "ReceiverNotFound",
			arg: domain.CreateTransactionParams{
				SenderAccountID:   sender.ID,
				ReceiverAccountID: receiver.ID + 10_000,
				Amount:            "100",
				Type:              domain.TransactionTypeTransfer,
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "ZeroAmount",
			arg: domain.CreateTransactionParams{
				SenderAccountID:   sender.ID,
				ReceiverAccountID: receiver.ID,
				Amount:            "0",
				Type:              domain.TransactionTypeTransfer,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "NegativeAmount",
			arg: domain.CreateTransactionParams{
				SenderAccountID:   sender.ID,
				ReceiverAccountID: receiver.ID,
				Amount:            "-100",
				Type:              domain.TransactionTypeTransfer,
			},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tc.arg)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGet(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(tx)

	sender := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")
	receiver := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "0")

	seeded := helpers.SeedTransaction(t, tx, sender.ID, receiver.ID, "100", time.Now().UTC())

	transaction, err := repo.Get(ctx, seeded.ID)
	require.NoError(t, err)

	if diff := cmp.Diff(seeded, transaction, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("repo.Get(ctx, %v) returned unexpected difference (-want +got):\n%s", seeded.ID, diff)
	}

	_, err = repo.Get(ctx, seeded.ID+10_000)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestList(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(tx)

	account := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")
	other := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")
	third := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")

	oldest := helpers.SeedTransaction(t, tx, account.ID, other.ID, "10", time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC))
	middle := helpers.SeedTransaction(t, tx, other.ID, account.ID, "20", time.Date(2023, 5, 2, 10, 0, 0, 0, time.UTC))
	newest := helpers.SeedTransaction(t, tx, account.ID, other.ID, "30", time.Date(2023, 5, 3, 10, 0, 0, 0, time.UTC))
	helpers.SeedTransaction(t, tx, other.ID, third.ID, "40", time.Date(2023, 5, 4, 10, 0, 0, 0, time.UTC))

	transactions, err := repo.List(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	// Newest first; the account appears both as sender and receiver.
	require.Equal(t, newest.ID, transactions[0].ID)
	require.Equal(t, middle.ID, transactions[1].ID)
	require.Equal(t, oldest.ID, transactions[2].ID)
}

func TestListSameDateOrdering(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(tx)

	account := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")
	other := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")

	date := time.Date(2023, 5, 1, 10, 0, 0, 0, time.UTC)

	first := helpers.SeedTransaction(t, tx, account.ID, other.ID, "10", date)
	second := helpers.SeedTransaction(t, tx, account.ID, other.ID, "20", date)

	// Records sharing a timestamp fall back to id order, newest insert first.
	transactions, err := repo.List(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	require.Equal(t, second.ID, transactions[0].ID)
	require.Equal(t, first.ID, transactions[1].ID)
}

func TestListStatement(t *testing.T) {
	tx := integrationtest.SetupTX(t, dbDriver, dbSource)
	repo := transactionrepo.NewRepoPGS(tx)

	account := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")
	other := helpers.SeedAccount(t, tx, randompkg.Int64Between(1, 1000), "1000")

	before := helpers.SeedTransaction(t, tx, account.ID, other.ID, "10", time.Date(2023, 4, 30, 23, 59, 59, 0, time.UTC))
	onStart := helpers.SeedTransaction(t, tx, account.ID, other.ID, "20", time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC))
	within := helpers.SeedTransaction(t, tx, other.ID, account.ID, "30", time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC))
	onEnd := helpers.SeedTransaction(t, tx, account.ID, other.ID, "40", time.Date(2023, 5, 31, 23, 59, 59, 0, time.UTC))
	after := helpers.SeedTransaction(t, tx, account.ID, other.ID, "50", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

	from := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, 5, 31, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)

	transactions, err := repo.ListStatement(ctx, account.ID, from, to)
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	// Both boundary days are included; records outside the range are not.
	require.Equal(t, onEnd.ID, transactions[0].ID)
	require.Equal(t, within.ID, transactions[1].ID)
	require.Equal(t, onStart.ID, transactions[2].ID)

	for _, transaction := range transactions {
		require.NotEqual(t, before.ID, transaction.ID)
		require.NotEqual(t, after.ID, transaction.ID)
	}
}
