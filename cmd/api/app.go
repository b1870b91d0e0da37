package main

import (
	"net/http"

	"property-lookup/internal/handlers"
	"property-lookup/internal/services"
	"property-lookup/internal/transformers"
	"property-lookup/internal/validators"
	"property-lookup/pkg/attom"
	"property-lookup/pkg/config"
	"property-lookup/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// App represents the application structure
type App struct {
	Config        *config.Config
	Router        *gin.Engine
	LookupHandler *handlers.LookupHandler
	Server        *http.Server
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}

	app.initializeMetrics()
	app.initializeDependencies()
	app.initializeRouter()

	return app
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	client := attom.NewClient(a.Config.Attom.APIKey, a.Config.Attom.BaseURL, a.Config.Attom.Timeout)

	// transformers
	addrTrans := transformers.NewAddressTransformer()
	propTrans := transformers.NewPropertyTransformer()

	// validators
	lookupValidator := validators.NewLookupValidator()

	// services
	lookupService := services.NewLookupService(client, addrTrans, propTrans, lookupValidator, a.Config.Attom.DefaultEndpoint)

	// handlers
	a.LookupHandler = handlers.NewLookupHandler(lookupService)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}
