package main

import (
	"context"
	"encoding/json"
	"os"

	"property-lookup/internal/handlers"
	"property-lookup/internal/services"
	"property-lookup/internal/transformers"
	"property-lookup/internal/validators"
	"property-lookup/pkg/attom"
	"property-lookup/pkg/config"
	"property-lookup/pkg/logger"
	"property-lookup/pkg/metrics"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// newHandler wires the lookup handler from cfg.
func newHandler(cfg *config.Config) *handlers.LookupHandler {
	client := attom.NewClient(cfg.Attom.APIKey, cfg.Attom.BaseURL, cfg.Attom.Timeout)
	lookupService := services.NewLookupService(
		client,
		transformers.NewAddressTransformer(),
		transformers.NewPropertyTransformer(),
		validators.NewLookupValidator(),
		cfg.Attom.DefaultEndpoint,
	)
	return handlers.NewLookupHandler(lookupService)
}

func main() {
	// CONFIG_PATH is optional here; a deployed function is configured through its environment.
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to load config: %v", err)
		os.Exit(1)
	}
	logger.InitLogger(os.Stdout, cfg.Log.Level)
	metrics.Init()

	h := newHandler(cfg)
	lambda.Start(func(ctx context.Context, event json.RawMessage) (events.APIGatewayProxyResponse, error) {
		return h.Handle(ctx, event), nil
	})
}
