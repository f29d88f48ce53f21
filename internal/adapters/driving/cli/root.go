// Package cli wires the watcher services behind a cobra command tree.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gaceta-watch/internal/adapters/driven/fetch"
	"github.com/custodia-labs/gaceta-watch/internal/adapters/driven/links"
	"github.com/custodia-labs/gaceta-watch/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/gaceta-watch/internal/adapters/driven/mail"
	"github.com/custodia-labs/gaceta-watch/internal/adapters/driven/pdftext"
	"github.com/custodia-labs/gaceta-watch/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/gaceta-watch/internal/config"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driving"
	"github.com/custodia-labs/gaceta-watch/internal/core/services"
	"github.com/custodia-labs/gaceta-watch/internal/logger"
	"github.com/custodia-labs/gaceta-watch/internal/report"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Populated by initServices, or
// injected directly in tests.
var (
	cfg          config.Config
	watchService driving.Watcher
	corpusStore  driven.CorpusStore
	reportWriter driven.ReportWriter
	llmService   driven.LLMService
)

var (
	configPath  string
	verboseFlag bool
	logFilePath string
)

// wired is set once initServices has run, or by tests that inject
// their own service doubles.
var wired bool

var rootCmd = &cobra.Command{
	Use:   "gacetawatch",
	Short: "Watch government publication indexes for new decrees",
	Long: `gacetawatch scans configured index pages for decree documents,
downloads and summarises the ones it has not seen before, and refreshes
the Markdown and HTML reports. Optionally it emails a digest of the
run's new documents.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if logFilePath != "" {
			if err := logger.SetLogFile(logFilePath); err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
		}

		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}

		if wired {
			return nil
		}

		return initServices()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if llmService != nil {
			llmService.Close()
		}
		logger.CloseLogFile()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to the TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFilePath, "log-file", "", "append warnings and errors to this file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices builds the full adapter graph from configuration.
func initServices() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = loaded

	// The --log-file flag wins over the configured sink.
	if logFilePath == "" && cfg.LogFile != "" {
		if err := logger.SetLogFile(cfg.LogFile); err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
	}

	client := fetch.New(fetch.Config{})
	extractor := links.New()
	discoverer := services.NewDiscoverer(client, extractor, cfg.IndexURLTemplate, cfg.DebugPagePath)

	var llm driven.LLMService
	if cfg.LLM.APIKey != "" {
		svc, llmErr := openai.NewLLMService(openai.LLMConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
		if llmErr != nil {
			logger.Warn("llm service unavailable: %v", llmErr)
		} else {
			llm = svc
			llmService = svc
		}
	} else {
		logger.Info("no API key configured, summaries will be skipped")
	}

	enricher := services.NewEnricher(pdftext.New(), llm, cfg.FallbackSource)

	store, err := jsonfile.New(cfg.StateDir)
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	corpusStore = store

	reportWriter = report.NewWriter(report.Config{
		MarkdownPath: cfg.MarkdownReportPath(),
		HTMLPaths:    cfg.HTMLReportPaths(),
	})

	notifier := mail.New(mail.Config{
		Host:       cfg.SMTP.Host,
		Port:       cfg.SMTP.Port,
		Username:   cfg.SMTP.Username,
		Password:   cfg.SMTP.Password,
		From:       cfg.SMTP.From,
		To:         splitRecipients(cfg.SMTP.To),
		ReportPath: cfg.HTMLReportPaths()[0],
	})

	watchService = services.NewWatch(
		discoverer,
		enricher,
		client,
		store,
		reportWriter,
		notifier,
		cfg.Partitions,
		cfg.DownloadDir,
	)

	wired = true
	return nil
}

// splitRecipients parses a comma separated recipient list.
func splitRecipients(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if addr := strings.TrimSpace(p); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
