package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Aashish23092/va-benefits-estimator/client"
	"github.com/Aashish23092/va-benefits-estimator/config"
	"github.com/Aashish23092/va-benefits-estimator/crsc"
	"github.com/Aashish23092/va-benefits-estimator/logging"
	"github.com/Aashish23092/va-benefits-estimator/metrics"
	"github.com/Aashish23092/va-benefits-estimator/service"
)

const version = "0.3.0"

var (
	cfgFile      string
	verbose      bool
	outputFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vabenefits",
	Short: "VA benefits estimator - DD-214 and rating decision extraction, combined rating and CRSC",
	Long: `vabenefits reads a DD-214 and a VA rating decision letter, extracts the
service record and rated conditions, combines the ratings the way VA does and
estimates Combat-Related Special Compensation.

Estimates are informational. They are not a VA or service branch decision.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vabenefits v%s (tesseract %s)\n", version, client.NewTesseractClient("", "", zap.NewNop()).Version())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.vabenefits/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatJSON, "output format (json, yaml)")

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration; --verbose forces debug logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Log.Level = "debug"
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", displayPath(cfgFile))
	}
	return cfg, nil
}

func displayPath(p string) string {
	if p == "" {
		return "(search path)"
	}
	return p
}

// rateTable returns the configured compensation table, or the built-in one.
func rateTable(cfg *config.Config) (crsc.CompensationTable, error) {
	if cfg.RatesFile == "" {
		return crsc.DefaultTable, nil
	}
	data, err := os.ReadFile(cfg.RatesFile)
	if err != nil {
		return crsc.CompensationTable{}, fmt.Errorf("read rates file: %w", err)
	}
	return crsc.ParseTable(data)
}

// app holds the wired service graph shared by serve and the one-shot
// commands.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	metrics  *metrics.Metrics
	ocr      *client.TesseractClient
	estimate *service.EstimateService
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	table, err := rateTable(cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	ocr := client.NewTesseractClient(cfg.TesseractDataPath, cfg.TesseractLanguage, logger)
	docs := service.NewDocumentService(
		ocr,
		service.NewPDFProcessor(),
		service.NewTextCache(cfg.CacheTTL, cfg.CacheCleanup),
		m,
		logger,
		service.DocumentOptions{
			OCRConcurrency:    cfg.OCRConcurrency,
			MinTextLayerChars: cfg.MinTextLayerChars,
		},
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		ocr:      ocr,
		estimate: service.NewEstimateService(docs, table, m, logger),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
