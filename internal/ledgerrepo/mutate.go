package ledgerrepo

import (
	"fmt"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// mutate applies arg to the account and returns the signed transaction amount.
func mutate(a *domain.Account, arg domain.LedgerParams) (decimal.Decimal, error) {
	switch arg.Type {
	case domain.TransactionDeposit:
		if !a.Deposit(arg.Amount) {
			return decimal.Zero, domain.ErrInvalidAmount
		}

		return arg.Amount, nil
	case domain.TransactionWithdrawal:
		if !a.Withdraw(arg.Amount) {
			if !arg.Amount.IsPositive() {
				return decimal.Zero, domain.ErrInvalidAmount
			}

			return decimal.Zero, domain.ErrInsufficientFunds
		}

		return arg.Amount.Neg(), nil
	}

	return decimal.Zero, fmt.Errorf("unknown transaction type %q", arg.Type)
}
