// Package helpers provides random entities and db seeding for tests.
package helpers

import (
	"time"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/shopspring/decimal"
)

// RandomAccount returns random account with the given balance.
func RandomAccount(balance decimal.Decimal) domain.Account {
	return domain.Account{
		ID:        randompkg.IntBetween(1, 1000),
		Number:    randompkg.AccountNumber(),
		Holder:    randompkg.Holder(),
		Balance:   balance,
		Type:      randompkg.AccountType(),
		CreatedAt: time.Now().Truncate(time.Second).UTC(),
	}
}

// RandomTransaction returns a random transaction of the account.
func RandomTransaction(account domain.Account, txType string, amount decimal.Decimal) domain.Transaction {
	return domain.Transaction{
		ID:           randompkg.IntBetween(1, 1000),
		AccountID:    account.ID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: decimal.NewNullDecimal(account.Balance),
		CreatedAt:    time.Now().Truncate(time.Second).UTC(),
	}
}
