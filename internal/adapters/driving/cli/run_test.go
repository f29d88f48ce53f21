package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/gaceta-watch/internal/core/domain"
	"github.com/custodia-labs/gaceta-watch/internal/core/ports/driving"
)

// mockWatcher implements driving.Watcher for testing.
type mockWatcher struct {
	result *driving.RunResult
	err    error
}

func (m *mockWatcher) Run(_ context.Context) (*driving.RunResult, error) {
	return m.result, m.err
}

func setupRunTest(w driving.Watcher) func() {
	oldWatch := watchService
	watchService = w
	return func() {
		watchService = oldWatch
	}
}

func TestRunCmd_Use(t *testing.T) {
	assert.Equal(t, "run", runCmd.Use)
}

func TestRunCmd_Long(t *testing.T) {
	assert.Contains(t, runCmd.Long, "index page")
	assert.Contains(t, runCmd.Long, "digest")
}

func TestRunCmd_NoNewDocuments(t *testing.T) {
	cleanup := setupRunTest(&mockWatcher{
		result: &driving.RunResult{RunID: "run-1", Discovered: 5},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"run"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Run run-1 finished.")
	assert.Contains(t, buf.String(), "Discovered: 5, new: 0, processed: 0, failed: 0")
	assert.Contains(t, buf.String(), "No new documents.")
}

func TestRunCmd_ProcessedRecords(t *testing.T) {
	cleanup := setupRunTest(&mockWatcher{
		result: &driving.RunResult{
			RunID:      "run-2",
			Discovered: 3,
			New:        2,
			Processed:  2,
			Records: []domain.Record{
				{Name: "Decreto-1.pdf"},
				{Name: "Decreto-2.pdf"},
			},
			Notified: true,
		},
	})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"run"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "+ Decreto-1.pdf")
	assert.Contains(t, buf.String(), "+ Decreto-2.pdf")
	assert.Contains(t, buf.String(), "Digest email sent.")
}

func TestRunCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupRunTest(nil)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "watch service not configured")
}

func TestRunCmd_ServiceError(t *testing.T) {
	cleanup := setupRunTest(&mockWatcher{err: errors.New("boom")})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "run failed")
}
