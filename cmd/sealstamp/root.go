package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/completion"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/service"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/config"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
)

const serviceName = "extraction-service"

var envFiles []string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sealstamp",
	Short: "Extract seal and stamp signatures from document images",
	Long: `sealstamp sends a document image to a vision-capable chat-completion
model and returns the OWNER SIGNATURE, STRUCTURAL ENGINEER and
REGISTERED ENGINEER texts found on it.

Run "sealstamp serve" for the HTTP service or "sealstamp extract --file <path>"
for a single image.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv(envFiles...)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files loaded before reading configuration")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(extractCmd)
}

// loadConfig validates strictly only where a misconfiguration must not reach traffic
func loadConfig() (*config.Config, error) {
	load := config.Load
	if config.IsProductionLike() {
		load = config.LoadWithValidation
	}
	cfg, err := load(serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newExtractionService(cfg *config.Config, log *logger.Logger) *service.Service {
	completer := completion.NewOpenAICompleter(completion.Options{
		BaseURL:    cfg.Completion.BaseURL,
		APIKey:     cfg.Completion.APIKey,
		Model:      cfg.Completion.Model,
		MaxTokens:  cfg.Completion.MaxTokens,
		Timeout:    cfg.Completion.Timeout,
		DetectMIME: cfg.Completion.DetectMIME,
	}, log)

	return service.NewService(completer, log.WithComponent("extraction"))
}
