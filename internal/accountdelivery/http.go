// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/pkg/accounttypepkg"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, number, holder, accountType, balance string) (domain.Account, error)
	Get(ctx context.Context, number string) (domain.Account, error)
	Search(ctx context.Context, query string) ([]domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

type data struct {
	Account domain.Account `json:"account"`
}

type dataAccounts struct {
	Accounts []domain.Account `json:"accounts"`
}

type dataForm struct {
	AccountTypes []string `json:"account_types"`
}

type listRequest struct {
	Search string `form:"search"`
}

// List handles http request to list accounts, optionally filtered by the search query.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	accounts, err := h.service.Search(ctx, req.Search)
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}

	gctx.JSON(http.StatusOK, web.Response{Data: dataAccounts{accounts}})
}

// CreateForm describes the fields accepted by Create.
func (h *Handler) CreateForm(gctx *gin.Context) {
	gctx.JSON(http.StatusOK, web.Response{Data: dataForm{accounttypepkg.SupportedTypes}})
}

type createRequest struct {
	Name    string      `form:"name" json:"name" binding:"required"`
	AccNum  string      `form:"acc_num" json:"acc_num" binding:"required,max=20"`
	AccType string      `form:"acc_type" json:"acc_type" binding:"required,account_type"`
	Balance json.Number `form:"balance" json:"balance"`
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req createRequest
	if err := gctx.ShouldBind(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.BindingErrorMsg(err)})

		return
	}

	createdAccount, err := h.service.Create(ctx, req.AccNum, req.Name, req.AccType, req.Balance.String())
	if err != nil {
		switch err {
		case domain.ErrInvalidAmount, domain.ErrInvalidAccountType:
			gctx.JSON(http.StatusBadRequest, web.Error(err))
			return
		case domain.ErrAccountNumberExists:
			gctx.JSON(http.StatusConflict, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data:    data{createdAccount},
		Message: "Account created for " + createdAccount.Holder + "!",
	}

	gctx.JSON(http.StatusOK, res)
}
