package services

import (
	"context"
	"os"
	"path/filepath"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driven"
)

// mockFetcher serves canned index pages and records downloads.
type mockFetcher struct {
	pages        map[string]string
	pageErrs     map[string]error
	downloadErrs map[string]error
	downloaded   []string
}

var _ driven.Fetcher = (*mockFetcher)(nil)

func (m *mockFetcher) FetchPage(_ context.Context, url string) (string, error) {
	if err, ok := m.pageErrs[url]; ok {
		return "", err
	}
	return m.pages[url], nil
}

func (m *mockFetcher) Download(_ context.Context, url, dest string) error {
	if err, ok := m.downloadErrs[url]; ok {
		return err
	}
	m.downloaded = append(m.downloaded, url)
	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte("%PDF-1.4 stub"), 0600)
}

// mockLinks returns canned references keyed by the markup it receives.
type mockLinks struct {
	refs map[string][]domain.Reference // keyed by markup
	err  error
}

var _ driven.LinkExtractor = (*mockLinks)(nil)

func (m *mockLinks) Extract(markup, _ string) ([]domain.Reference, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.refs[markup], nil
}

// stubText is a TextExtractor returning fixed text.
type stubText struct {
	text  string
	err   error
	calls int
}

var _ driven.TextExtractor = (*stubText)(nil)

func (s *stubText) Extract(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

// stubLLM is an LLMService returning a fixed response.
type stubLLM struct {
	response string
	err      error
	calls    int
	prompts  []string
}

var _ driven.LLMService = (*stubLLM)(nil)

func (s *stubLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) ModelName() string              { return "stub-model" }
func (s *stubLLM) Ping(_ context.Context) error   { return nil }
func (s *stubLLM) Close() error                   { return nil }

// mockReports records what was rendered.
type mockReports struct {
	written [][]domain.Record
	err     error
}

var _ driven.ReportWriter = (*mockReports)(nil)

func (m *mockReports) Write(_ context.Context, records []domain.Record) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, records)
	return nil
}

// mockNotifier records digests.
type mockNotifier struct {
	sent [][]domain.Record
	err  error
}

var _ driven.Notifier = (*mockNotifier)(nil)

func (m *mockNotifier) Notify(_ context.Context, records []domain.Record) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, records)
	return nil
}
