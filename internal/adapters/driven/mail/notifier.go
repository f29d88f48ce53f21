// Package mail implements the driven.Notifier port over SMTP.
//
// Transport settings are optional: with an incomplete configuration the
// notifier reports domain.ErrMailNotConfigured and the orchestrator
// records a skip, not a fault.
package mail

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	gomail "github.com/wneessen/go-mail"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// DefaultPort is the standard submission port with STARTTLS.
const DefaultPort = 587

// snippetChars bounds the per-item summary excerpt in the digest body.
const snippetChars = 400

// Config holds SMTP transport settings for the digest.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// To lists the digest recipients.
	To []string

	// ReportPath, when non-empty, is mentioned at the end of the digest
	// so readers know where the full browsing view lives.
	ReportPath string
}

// Notifier sends one digest per run listing the run's new records.
type Notifier struct {
	cfg Config
}

// New creates a digest notifier.
func New(cfg Config) *Notifier {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Notifier{cfg: cfg}
}

// Configured reports whether the transport settings are complete.
func (n *Notifier) Configured() bool {
	return n.cfg.Host != "" &&
		n.cfg.Username != "" &&
		n.cfg.Password != "" &&
		n.cfg.From != "" &&
		len(n.cfg.To) > 0
}

// Notify composes and sends the digest for this run's records.
func (n *Notifier) Notify(ctx context.Context, records []domain.Record) error {
	if !n.Configured() {
		return domain.ErrMailNotConfigured
	}
	if len(records) == 0 {
		return nil
	}

	msg := gomail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := msg.To(n.cfg.To...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(Subject(records))
	msg.SetBodyString(gomail.TypeTextPlain, Body(records, n.cfg.ReportPath))

	client, err := gomail.NewClient(n.cfg.Host,
		gomail.WithPort(n.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(n.cfg.Username),
		gomail.WithPassword(n.cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send digest: %w", err)
	}
	return nil
}

// Subject names the digest with the new-item count.
func Subject(records []domain.Record) string {
	return fmt.Sprintf("[gaceta-watch] %d new document(s) published", len(records))
}

// Body renders the plain-text digest: one block per record with title,
// partition, source, a bounded summary excerpt and the themes.
func Body(records []domain.Record, reportPath string) string {
	var b strings.Builder
	b.WriteString("New documents were detected on the publication index.\n\n")

	for _, rec := range records {
		fmt.Fprintf(&b, "- %s\n", rec.Name)
		if rec.Partition != "" {
			fmt.Fprintf(&b, "  Year: %s\n", rec.Partition)
		}
		fmt.Fprintf(&b, "  Source: %s\n", rec.Source)
		fmt.Fprintf(&b, "  URL: %s\n", rec.URL)
		if len(rec.Themes) > 0 {
			fmt.Fprintf(&b, "  Themes: %s\n", strings.Join(rec.Themes, ", "))
		}
		if rec.Summary != "" {
			fmt.Fprintf(&b, "  Summary: %s\n", snippet(rec.Summary))
		}
		b.WriteString("\n")
	}

	if reportPath != "" {
		fmt.Fprintf(&b, "Full browsable report: %s\n", reportPath)
	}
	return b.String()
}

func snippet(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= snippetChars {
		return s
	}
	// Back up to a rune boundary so the cut never mangles a multibyte
	// character.
	cut := snippetChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
