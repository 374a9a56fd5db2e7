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
	"github.com/shopspring/decimal"

	"github.com/go-petr/savings-bank/internal/accountdelivery"
	"github.com/go-petr/savings-bank/internal/accountrepo"
	"github.com/go-petr/savings-bank/internal/accountservice"
	"github.com/go-petr/savings-bank/internal/currencydelivery"
	"github.com/go-petr/savings-bank/internal/currencyrepo"
	"github.com/go-petr/savings-bank/internal/currencyservice"
	"github.com/go-petr/savings-bank/internal/exchangerates"
	"github.com/go-petr/savings-bank/internal/historydelivery"
	"github.com/go-petr/savings-bank/internal/historyrepo"
	"github.com/go-petr/savings-bank/internal/historyservice"
	"github.com/go-petr/savings-bank/internal/middleware"
	"github.com/go-petr/savings-bank/internal/transferdelivery"
	"github.com/go-petr/savings-bank/internal/transferrepo"
	"github.com/go-petr/savings-bank/internal/transferservice"
	"github.com/go-petr/savings-bank/pkg/configpkg"
	"github.com/go-petr/savings-bank/pkg/currencypkg"
)

// defaultTransfersPerMinute caps transfer initiations per sender account.
const defaultTransfersPerMinute = 10

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
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	historyRepo := historyrepo.NewRepoPGS(conn)
	currencyRepo := currencyrepo.NewRepoPGS(conn)

	ratesClient, err := exchangerates.New(config)
	if err != nil {
		return nil, err
	}

	spread, err := decimal.NewFromString(config.ConversionSpread)
	if err != nil {
		return nil, errors.New("cannot parse conversion spread")
	}

	accountService := accountservice.New(accountRepo, config.AccountInitialBalance)
	currencyService := currencyservice.New(ratesClient, spread)
	historyService := historyservice.New(historyRepo)
	transferService := transferservice.New(
		transferRepo,
		accountService,
		currencyService,
		historyService,
		config.RequireSameCurrency,
	)

	perMinute := config.TransfersPerMinute
	if perMinute == 0 {
		perMinute = defaultTransfersPerMinute
	}

	transferLimiter := middleware.NewKeyedLimiter(perMinute)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService, transferLimiter)
	historyHandler := historydelivery.NewHandler(historyService)
	currencyHandler := currencydelivery.NewHandler(currencyRepo)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	v1 := engine.Group("/api/v1")

	v1.POST("/accounts", accountHandler.Create)
	v1.GET("/accounts/:id", accountHandler.Get)
	v1.GET("/accounts", accountHandler.List)
	v1.GET("/accounts/:id/transfers", transferHandler.List)
	v1.GET("/accounts/:id/history", historyHandler.List)

	v1.POST("/transfers", transferHandler.Create)
	v1.GET("/transfers/:reference", transferHandler.Get)

	v1.GET("/currencies", currencyHandler.List)
	v1.GET("/currencies/:code", currencyHandler.Get)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
