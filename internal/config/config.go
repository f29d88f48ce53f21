// Package config loads the watcher configuration from a TOML file,
// applies defaults, and lets environment variables override the
// credential fields so secrets can stay out of the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Default values used when the file omits a field.
const (
	DefaultIndexURLTemplate = "https://www.mincit.gov.co/normatividad/decretos/%s"
	DefaultDownloadDir      = "downloads"
	DefaultStateDir         = "state"
	DefaultReportDir        = "reports"
	DefaultFallbackSource   = "Ministerio de Comercio, Industria y Turismo"
	DefaultLogFile          = "errors.log"
	DefaultLLMModel         = "gpt-4o-mini"
	DefaultSMTPPort         = 587
)

// LLM holds the enrichment backend settings.
type LLM struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// SMTP holds the outgoing mail settings. The notifier treats an
// incomplete block as "mail not configured" rather than an error.
type SMTP struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	To       string `toml:"to"`
}

// Config is the full watcher configuration.
type Config struct {
	// Partitions are the index page keys to scan, typically years.
	Partitions []string `toml:"partitions"`

	// IndexURLTemplate must contain exactly one %s placeholder for
	// the partition.
	IndexURLTemplate string `toml:"index_url_template"`

	DownloadDir    string `toml:"download_dir"`
	StateDir       string `toml:"state_dir"`
	ReportDir      string `toml:"report_dir"`
	FallbackSource string `toml:"fallback_source"`

	// LogFile receives one timestamped line per warning or error,
	// append-only. Empty disables the file sink.
	LogFile string `toml:"log_file"`

	// DebugPagePath, when set, receives a copy of the last fetched
	// index page for troubleshooting selector drift.
	DebugPagePath string `toml:"debug_page_path"`

	LLM  LLM  `toml:"llm"`
	SMTP SMTP `toml:"smtp"`
}

// Default returns a configuration with every field that has a
// sensible default filled in.
func Default() Config {
	return Config{
		Partitions:       []string{"2024", "2025"},
		IndexURLTemplate: DefaultIndexURLTemplate,
		DownloadDir:      DefaultDownloadDir,
		StateDir:         DefaultStateDir,
		ReportDir:        DefaultReportDir,
		FallbackSource:   DefaultFallbackSource,
		LogFile:          DefaultLogFile,
		LLM: LLM{
			Model: DefaultLLMModel,
		},
		SMTP: SMTP{
			Port: DefaultSMTPPort,
		},
	}
}

// Load reads the TOML file at path, merges it over the defaults, and
// applies environment overrides. A missing file is not an error: the
// defaults plus environment are returned, so a fresh checkout runs
// with zero setup.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, cfg.Validate()
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// applyEnv lets the environment override credential and address
// fields. File values win only when the variable is unset.
func (c *Config) applyEnv() {
	overrideString(&c.LLM.APIKey, "OPENAI_API_KEY")
	overrideString(&c.LLM.BaseURL, "OPENAI_BASE_URL")
	overrideString(&c.SMTP.Host, "SMTP_HOST")
	overrideString(&c.SMTP.Username, "SMTP_USERNAME")
	overrideString(&c.SMTP.Password, "SMTP_PASSWORD")
	overrideString(&c.SMTP.From, "EMAIL_FROM")
	overrideString(&c.SMTP.To, "EMAIL_TO")
}

func overrideString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate checks the fields the pipeline cannot run without.
func (c Config) Validate() error {
	if len(c.Partitions) == 0 {
		return fmt.Errorf("config: at least one partition is required")
	}
	if strings.Count(c.IndexURLTemplate, "%s") != 1 {
		return fmt.Errorf("config: index_url_template must contain exactly one %%s placeholder")
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("config: smtp port %d out of range", c.SMTP.Port)
	}
	return nil
}

// IndexURL builds the index page address for a partition.
func (c Config) IndexURL(partition string) string {
	return fmt.Sprintf(c.IndexURLTemplate, partition)
}

// MarkdownReportPath is the narrative report location.
func (c Config) MarkdownReportPath() string {
	return filepath.Join(c.ReportDir, "decretos.md")
}

// HTMLReportPaths are the browsing view locations. The second copy
// lands under docs/ so static site hosting can serve it directly.
func (c Config) HTMLReportPaths() []string {
	return []string{
		filepath.Join(c.ReportDir, "decretos.html"),
		filepath.Join("docs", "index.html"),
	}
}
