// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/dbpkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
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

const accountColumns = `id, account_number, account_holder, balance, account_type, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Number,
		&a.Holder,
		&a.Balance,
		&a.Type,
		&a.CreatedAt,
	)

	return a, err
}

const createQuery = `
INSERT INTO
    accounts (account_number, account_holder, balance, account_type)
VALUES
    ($1, $2, $3, $4)
RETURNING ` + accountColumns

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, arg.Number, arg.Holder, arg.Balance, arg.Type)

	a, err := scanAccount(row)
	if err != nil {
		l.Error().Err(err).Msgf("Create(ctx, %+v)", arg)

		switch dbpkg.Constraint(err) {
		case "accounts_account_number_key":
			return domain.Account{}, domain.ErrAccountNumberExists
		case "accounts_balance_check":
			return domain.Account{}, domain.ErrInvalidAmount
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE account_number = $1
`

// Get returns the account with the given account number.
func (r *RepoPGS) Get(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getQuery, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Info().Str("account_number", number).Msg(domain.ErrAccountNotFound.Error())
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const getForUpdateQuery = getQuery + `FOR UPDATE
`

// GetForUpdate returns the account with the given account number and locks its row
// until the surrounding transaction ends.
func (r *RepoPGS) GetForUpdate(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, getForUpdateQuery, number))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const updateBalanceQuery = `
UPDATE accounts
SET balance = $1
WHERE id = $2
RETURNING ` + accountColumns

// UpdateBalance sets the account's balance and returns the changed account.
func (r *RepoPGS) UpdateBalance(ctx context.Context, id int64, balance decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAccount(r.db.QueryRowContext(ctx, updateBalanceQuery, balance, id))
	if err != nil {
		l.Error().Err(err).Send()

		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		if dbpkg.Constraint(err) == "accounts_balance_check" {
			return domain.Account{}, domain.ErrInsufficientFunds
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT ` + accountColumns + `
FROM accounts
ORDER BY id
`

// List returns every account in storage order.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, listQuery)
}

const searchQuery = `
SELECT ` + accountColumns + `
FROM accounts
WHERE strpos(account_holder, $1) > 0 OR strpos(account_number, $1) > 0
ORDER BY id
`

// Search returns the accounts whose holder name or account number contains query.
// The match is case sensitive.
func (r *RepoPGS) Search(ctx context.Context, query string) ([]domain.Account, error) {
	return r.list(ctx, searchQuery, query)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
