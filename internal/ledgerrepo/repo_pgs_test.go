//go:build integration

package ledgerrepo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest"
	"github.com/go-petr/pet-ledger/internal/integrationtest/helpers"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/transactionrepo"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	dbDriver string
	dbSource string
)

func TestMain(m *testing.M) {
	config, err := configpkg.Load("../../configs")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}

	dbDriver = config.DBDriver
	dbSource = config.DBSource

	os.Exit(m.Run())
}

func TestApply(t *testing.T) {
	db := integrationtest.SetupDB(t, dbDriver, dbSource)
	repo := ledgerrepo.NewRepoPGS(db)
	accountRepo := accountrepo.NewRepoPGS(db)
	transactionRepo := transactionrepo.NewRepoPGS(db)

	account := helpers.SeedAccount(t, db, decimal.NewFromInt(100))

	testCases := []struct {
		name        string
		arg         domain.LedgerParams
		wantErr     error
		wantBalance string
		wantLog     []string // signed amounts recorded so far
	}{
		{
			name: "Deposit",
			arg: domain.LedgerParams{
				AccountNumber: account.Number,
				Type:          domain.TransactionDeposit,
				Amount:        decimal.NewFromInt(50),
			},
			wantBalance: "150",
			wantLog:     []string{"50"},
		},
		{
			name: "DepositZero",
			arg: domain.LedgerParams{
				AccountNumber: account.Number,
				Type:          domain.TransactionDeposit,
				Amount:        decimal.Zero,
			},
			wantErr:     domain.ErrInvalidAmount,
			wantBalance: "150",
			wantLog:     []string{"50"},
		},
		{
			name: "WithdrawInsufficientFunds",
			arg: domain.LedgerParams{
				AccountNumber: account.Number,
				Type:          domain.TransactionWithdrawal,
				Amount:        decimal.NewFromInt(200),
			},
			wantErr:     domain.ErrInsufficientFunds,
			wantBalance: "150",
			wantLog:     []string{"50"},
		},
		{
			name: "WithdrawFullBalance",
			arg: domain.LedgerParams{
				AccountNumber: account.Number,
				Type:          domain.TransactionWithdrawal,
				Amount:        decimal.NewFromInt(150),
			},
			wantBalance: "0",
			wantLog:     []string{"50", "-150"},
		},
		{
			name: "UnknownAccount",
			arg: domain.LedgerParams{
				AccountNumber: "NOPE-" + account.Number,
				Type:          domain.TransactionDeposit,
				Amount:        decimal.NewFromInt(1),
			},
			wantErr:     domain.ErrAccountNotFound,
			wantBalance: "0",
			wantLog:     []string{"50", "-150"},
		},
	}

	// The cases build on each other's committed state.
	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()

			got, err := repo.Apply(ctx, tc.arg)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Empty(t, got)
			} else {
				require.NoError(t, err)
				require.Equal(t, account.ID, got.Account.ID)
				require.True(t, got.Account.Balance.Equal(decimal.RequireFromString(tc.wantBalance)),
					"got.Account.Balance = %v, want %v", got.Account.Balance, tc.wantBalance)
				require.Equal(t, tc.arg.Type, got.Transaction.Type)
				require.True(t, got.Transaction.BalanceAfter.Valid)
				require.True(t, got.Transaction.BalanceAfter.Decimal.Equal(got.Account.Balance))
			}

			stored, err := accountRepo.Get(ctx, account.Number)
			require.NoError(t, err)
			require.True(t, stored.Balance.Equal(decimal.RequireFromString(tc.wantBalance)),
				"stored.Balance = %v, want %v", stored.Balance, tc.wantBalance)

			transactions, err := transactionRepo.List(ctx, account.ID)
			require.NoError(t, err)
			require.Len(t, transactions, len(tc.wantLog))

			for i, amount := range tc.wantLog {
				require.True(t, transactions[i].Amount.Equal(decimal.RequireFromString(amount)),
					"transactions[%d].Amount = %v, want %v", i, transactions[i].Amount, amount)
			}
		})
	}
}
