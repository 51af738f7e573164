// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/ledgerdelivery"
	"github.com/go-petr/pet-ledger/internal/ledgerrepo"
	"github.com/go-petr/pet-ledger/internal/ledgerservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/transactionrepo"
	"github.com/go-petr/pet-ledger/pkg/accounttypepkg"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/eventpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config, publisher eventpkg.Publisher) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	ledgerService := ledgerservice.New(ledgerRepo, accountRepo, transactionRepo, publisher)

	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))

	engine.GET("/", accountHandler.List)
	engine.GET("/create_customer", accountHandler.CreateForm)
	engine.POST("/create_customer", accountHandler.Create)

	engine.GET("/deposit/:acc_num", ledgerHandler.Account)
	engine.POST("/deposit/:acc_num", ledgerHandler.Deposit)
	engine.GET("/withdraw/:acc_num", ledgerHandler.Account)
	engine.POST("/withdraw/:acc_num", ledgerHandler.Withdraw)

	engine.GET("/transactions/:acc_num", ledgerHandler.Transactions)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("account_type", accounttypepkg.ValidAccountType)
		if err != nil {
			return nil, errors.New("cannot register account type validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
