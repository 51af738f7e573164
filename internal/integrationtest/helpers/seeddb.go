package helpers

import (
	"context"
	"testing"

	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/transactionrepo"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// SeedAccount creates Account with the given balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, balance decimal.Decimal) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		Number:  randompkg.AccountNumber(),
		Holder:  randompkg.Holder(),
		Balance: balance,
		Type:    randompkg.AccountType(),
	}

	return SeedAccountWith(t, db, arg)
}

// SeedAccountWith creates Account from arg.
func SeedAccountWith(t *testing.T, db dbpkg.SQLInterface, arg domain.CreateAccountParams) domain.Account {
	t.Helper()

	accountRepo := accountrepo.NewRepoPGS(db)

	account, err := accountRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedAccountWith1000Balance creates Account with 1000 on balance.
func SeedAccountWith1000Balance(t *testing.T, db dbpkg.SQLInterface) domain.Account {
	t.Helper()

	return SeedAccount(t, db, decimal.NewFromInt(1000))
}

// SeedTransaction records a transaction of the account without touching its balance.
func SeedTransaction(t *testing.T, db dbpkg.SQLInterface, account domain.Account, txType string, amount decimal.Decimal) domain.Transaction {
	t.Helper()

	transactionRepo := transactionrepo.NewRepoPGS(db)

	arg := domain.CreateTransactionParams{
		AccountID:    account.ID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: account.Balance,
	}

	transaction, err := transactionRepo.Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("transactionRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return transaction
}

// SeedTransactions records count deposits with random amounts.
func SeedTransactions(t *testing.T, db dbpkg.SQLInterface, account domain.Account, count int) []domain.Transaction {
	t.Helper()

	transactions := make([]domain.Transaction, count)

	for i := range transactions {
		transactions[i] = SeedTransaction(t, db, account, domain.TransactionDeposit, randompkg.MoneyAmountBetween(1, 1000))
	}

	return transactions
}
