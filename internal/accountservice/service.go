// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/accounttypepkg"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAccountParams) (domain.Account, error)
	Get(ctx context.Context, number string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Search(ctx context.Context, query string) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns the account with the given initial balance.
//
// An empty balance opens the account with 0.
func (s *Service) Create(ctx context.Context, number, holder, accountType, balance string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	initial := decimal.Zero

	if balance != "" {
		var err error

		initial, err = domain.ParseAmount(balance)
		if err != nil {
			l.Info().Err(err).Int("balance_length", len(balance)).Send()
			return domain.Account{}, err
		}
	}

	if initial.IsNegative() {
		return domain.Account{}, domain.ErrInvalidAmount
	}

	if !accounttypepkg.IsSupported(accountType) {
		return domain.Account{}, domain.ErrInvalidAccountType
	}

	arg := domain.CreateAccountParams{
		Number:  number,
		Holder:  holder,
		Balance: initial,
		Type:    accountType,
	}

	account, err := s.repo.Create(ctx, arg)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given account number.
func (s *Service) Get(ctx context.Context, number string) (domain.Account, error) {
	account, err := s.repo.Get(ctx, number)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Search returns the accounts whose holder or number contains query.
// An empty query returns every account.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Account, error) {
	if query == "" {
		return s.repo.List(ctx)
	}

	return s.repo.Search(ctx, query)
}
