package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"property-lookup/internal/handlers"
	"property-lookup/internal/services"
	"property-lookup/internal/transformers"
	"property-lookup/internal/utils"
	"property-lookup/internal/validators"
	"property-lookup/pkg/api"
	"property-lookup/pkg/attom"
	"property-lookup/pkg/config"
	"property-lookup/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "lookupctl",
		Short:         "Property lookup tooling",
		Long:          `Runs the property lookup handler locally, against ATTOM or a fixture file`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitLogger(cmd.ErrOrStderr(), logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "ERROR", "log level (DEBUG, INFO, ERROR)")

	rootCmd.AddCommand(createSplitCmd())
	rootCmd.AddCommand(createInvokeCmd())

	return rootCmd
}

// createSplitCmd shows how an address would be sent to ATTOM
func createSplitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "split [address]",
		Short: "Split an address into address1/address2",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, rule := transformers.SplitAddressRule(args[0])
			out, err := json.MarshalIndent(struct {
				Address1 string `json:"address1"`
				Address2 string `json:"address2"`
				Rule     string `json:"rule"`
			}{parsed.Address1, parsed.Address2, string(rule)}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

type invokeOptions struct {
	address  string
	endpoint string
	fixture  string
	raw      bool
}

// createInvokeCmd runs one lookup through the full handler
func createInvokeCmd() *cobra.Command {
	opts := &invokeOptions{}

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run a lookup through the handler and print the response",
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := buildHandler(opts)
			if err != nil {
				return err
			}

			event, err := gatewayEvent(opts)
			if err != nil {
				return err
			}

			resp := h.Handle(cmd.Context(), event)
			fmt.Fprintf(cmd.OutOrStdout(), "Status: %d\n", resp.StatusCode)
			fmt.Fprintln(cmd.OutOrStdout(), formatBody(resp.Body, opts.raw))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.address, "address", "", "address to look up")
	cmd.Flags().StringVar(&opts.endpoint, "endpoint", "", "ATTOM endpoint path (defaults to the configured one)")
	cmd.Flags().StringVar(&opts.fixture, "fixture", "", "serve this JSON file instead of calling ATTOM")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print the response body as returned")

	return cmd
}

// buildHandler wires the handler against ATTOM, or a fixture when one is given.
func buildHandler(opts *invokeOptions) (*handlers.LookupHandler, error) {
	var source services.PropertySource
	defaultEndpoint := config.DefaultEndpoint

	if opts.fixture != "" {
		source = api.NewFixtureClient(opts.fixture)
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		source = attom.NewClient(cfg.Attom.APIKey, cfg.Attom.BaseURL, cfg.Attom.Timeout)
		defaultEndpoint = cfg.Attom.DefaultEndpoint
	}

	lookupService := services.NewLookupService(
		source,
		transformers.NewAddressTransformer(),
		transformers.NewPropertyTransformer(),
		validators.NewLookupValidator(),
		defaultEndpoint,
	)
	return handlers.NewLookupHandler(lookupService), nil
}

func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, utils.WrapError(err, "failed to load config from %s", configPath)
	}
	return cfg, nil
}

// gatewayEvent packs the request the way API Gateway does: a JSON string body.
func gatewayEvent(opts *invokeOptions) ([]byte, error) {
	body, err := json.Marshal(struct {
		Address  string `json:"address,omitempty"`
		Endpoint string `json:"endpoint,omitempty"`
	}{opts.address, opts.endpoint})
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		HTTPMethod string `json:"httpMethod"`
		Body       string `json:"body"`
	}{"POST", string(body)})
}

func formatBody(body string, raw bool) string {
	if raw || body == "" {
		return body
	}
	var out bytes.Buffer
	if err := json.Indent(&out, []byte(body), "", "  "); err != nil {
		return body
	}
	return out.String()
}
