package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
	"github.com/custodia-labs/gaceta-watch/internal/logger"
)

// maxPromptChars bounds the document text sent to the understanding
// service. The service has an input-size budget, and cost and latency
// scale with input size.
const maxPromptChars = 12000

// rawPreviewChars bounds how much of an unparsable response is logged.
const rawPreviewChars = 300

// Placeholder summaries for each degradation step. Every failure mode
// inside the enricher yields one of these instead of an error.
const (
	summaryNoAPIKey         = "summary skipped: no API key configured"
	summaryExtractionFailed = "text extraction failed"
	summaryNoText           = "no legible text (likely a scanned image)"
	summaryCallFailed       = "enrichment call failed"
)

// enrichPrompt asks for a strict JSON object so the response can be
// parsed mechanically. The understanding service still occasionally
// wraps it in prose; parseEnrichment tolerates that.
const enrichPrompt = `Eres un asistente experto en derecho administrativo colombiano.
Resume en español claro y conciso el siguiente decreto o regulación.

Responde ÚNICAMENTE con un objeto JSON estricto con estas claves:
  "summary": resumen de máximo 200 palabras (de qué trata, a quién aplica, puntos clave),
  "themes": lista de etiquetas temáticas cortas,
  "source": entidad emisora (si no es identificable, usa %q).

Título del archivo: %s
Año estimado: %s%s

Texto del documento:
%s`

// Enricher produces a structured summary for one acquired document.
//
// It never returns an error: every failure mode (missing credential,
// unreadable text, service outage, malformed response) degrades to a
// structurally valid result with a placeholder summary, empty themes
// and the fallback source.
type Enricher struct {
	text           driven.TextExtractor
	llm            driven.LLMService
	fallbackSource string
}

// NewEnricher creates an enricher. llm may be nil when no understanding
// service credential is configured; enrichment then degrades to the
// skipped placeholder.
func NewEnricher(text driven.TextExtractor, llm driven.LLMService, fallbackSource string) *Enricher {
	return &Enricher{
		text:           text,
		llm:            llm,
		fallbackSource: fallbackSource,
	}
}

// Enrich runs the degradation ladder for one local artifact.
func (e *Enricher) Enrich(ctx context.Context, localPath, title, partition string) domain.Enrichment {
	if e.llm == nil {
		return e.degraded(summaryNoAPIKey, domain.ErrLLMUnavailable.Error())
	}

	text, err := e.text.Extract(ctx, localPath)
	if err != nil {
		logger.Warn("enrich: text extraction failed for %s: %v", localPath, err)
		return e.degraded(summaryExtractionFailed, "extraction")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		logger.Warn("enrich: no extractable text in %s", localPath)
		return e.degraded(summaryNoText, "empty text")
	}

	truncatedNote := ""
	if len(text) > maxPromptChars {
		text = truncateRunes(text, maxPromptChars)
		truncatedNote = " (texto truncado por límite de longitud)"
	}

	prompt := fmt.Sprintf(enrichPrompt, e.fallbackSource, title, orUnknown(partition), truncatedNote, text)

	logger.Debug("enrich: requesting summary for %s via %s", title, e.llm.ModelName())
	raw, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("enrich: understanding service call failed for %s: %v", title, err)
		return e.degraded(summaryCallFailed, "call")
	}

	enr, err := parseEnrichment(raw, e.fallbackSource)
	if err != nil {
		logger.Warn("enrich: unparsable response for %s: %v (raw: %s)", title, err, preview(raw))
		return domain.Enrichment{
			Summary:  strings.TrimSpace(raw),
			Themes:   []string{},
			Source:   e.fallbackSource,
			Degraded: true,
			Reason:   "parse",
		}
	}
	return enr
}

func (e *Enricher) degraded(summary, reason string) domain.Enrichment {
	return domain.Enrichment{
		Summary:  summary,
		Themes:   []string{},
		Source:   e.fallbackSource,
		Degraded: true,
		Reason:   reason,
	}
}

// parseEnrichment extracts the first {...last} span from the response
// and decodes it, coercing loosely-shaped values into the expected
// fields. The span scan tolerates prose the service emits around the
// JSON despite instructions.
func parseEnrichment(raw, fallbackSource string) (domain.Enrichment, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return domain.Enrichment{}, fmt.Errorf("no JSON object in response")
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return domain.Enrichment{}, fmt.Errorf("decode response: %w", err)
	}

	summary := strings.TrimSpace(coerceString(payload["summary"]))
	if summary == "" {
		return domain.Enrichment{}, fmt.Errorf("response has no summary")
	}

	source := strings.TrimSpace(coerceString(payload["source"]))
	if source == "" {
		source = fallbackSource
	}

	return domain.Enrichment{
		Summary: summary,
		Themes:  coerceStrings(payload["themes"]),
		Source:  source,
	}, nil
}

func coerceString(v any) string {
	s, _ := v.(string)
	return s
}

func coerceStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(item))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func orUnknown(partition string) string {
	if partition == "" {
		return "desconocido"
	}
	return partition
}

func preview(raw string) string {
	return truncateRunes(strings.TrimSpace(raw), rawPreviewChars)
}

// truncateRunes caps s at n bytes without splitting a multibyte rune.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
