// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/corebank/ledger/internal/accountdelivery"
	"github.com/corebank/ledger/internal/accountrepo"
	"github.com/corebank/ledger/internal/accountservice"
	"github.com/corebank/ledger/internal/middleware"
	"github.com/corebank/ledger/internal/transactiondelivery"
	"github.com/corebank/ledger/internal/transactionrepo"
	"github.com/corebank/ledger/internal/transactionservice"
	"github.com/corebank/ledger/internal/transferdelivery"
	"github.com/corebank/ledger/internal/transferevents"
	"github.com/corebank/ledger/internal/transferrepo"
	"github.com/corebank/ledger/internal/transferservice"
	"github.com/corebank/ledger/pkg/configpkg"
	"github.com/corebank/ledger/pkg/tokenpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config

	publisher *transferevents.Publisher
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// Close releases the server's event publisher, if any.
func (s *Server) Close() error {
	if s.publisher == nil {
		return nil
	}

	return s.publisher.Close()
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn, config.TransferLockTimeout)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	var publisher *transferevents.Publisher

	// The transfer service takes the Publisher interface; a typed nil
	// pointer would not compare equal to nil there.
	var servicePublisher transferservice.Publisher

	if config.KafkaBrokers != "" {
		publisher = transferevents.New(strings.Split(config.KafkaBrokers, ","), config.KafkaTopic)
		servicePublisher = publisher
	}

	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo, accountService)
	transferService := transferservice.New(transferRepo, accountService, servicePublisher, config.TransferAllowSelf)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)
	transferHandler := transferdelivery.NewHandler(transferService)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("accounttype", accountdelivery.ValidAccountType); err != nil {
			return nil, errors.New("cannot register account type validator")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts/:id/transactions", transactionHandler.List)
	authRoutes.GET("/accounts/:id/statement", transactionHandler.Statement)
	authRoutes.GET("/customers/:id/accounts", accountHandler.ListByCustomer)

	server := &Server{
		DB:        conn,
		Engine:    engine,
		Config:    config,
		publisher: publisher,
	}

	return server, nil
}
