package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nmluan/payreq-pdf/internal/config"
	"github.com/nmluan/payreq-pdf/internal/draft"
	"github.com/nmluan/payreq-pdf/internal/render"
)

// Exercises the full path a client takes: validate, import line items,
// save a draft, resume it and render the final artifact.
func TestServerIntegration(t *testing.T) {
	cfg := testConfig(t)
	s, err := NewServer(cfg, render.NewService(cfg), draft.NewStore(cfg.DraftTTL))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx := context.Background()
	rec := recordJSON(t)

	validated, err := s.handleValidate(ctx, callRequest(map[string]any{"record": rec}))
	if err != nil || validated.IsError {
		t.Fatalf("validate failed: %v / %s", err, resultText(t, validated))
	}

	imported, err := s.handleImportItems(ctx, callRequest(map[string]any{
		"record": rec,
		"items":  `[{"description":"Bản quyền phần mềm","quantity":2,"amount":3000000,"unit":"gói"}]`,
	}))
	if err != nil || imported.IsError {
		t.Fatalf("import failed: %v / %s", err, resultText(t, imported))
	}

	saved, err := s.handleDraftSave(ctx, callRequest(map[string]any{"record": rec}))
	if err != nil || saved.IsError {
		t.Fatalf("draft save failed: %v / %s", err, resultText(t, saved))
	}
	fields := strings.Fields(strings.Split(resultText(t, saved), "\n")[0])
	key := fields[len(fields)-1]

	loaded, err := s.handleDraftLoad(ctx, callRequest(map[string]any{"key": key}))
	if err != nil || loaded.IsError {
		t.Fatalf("draft load failed: %v / %s", err, resultText(t, loaded))
	}

	rendered, err := s.handleRenderFile(ctx, callRequest(map[string]any{
		"record":         rec,
		"status":         "approved",
		"show_watermark": true,
	}))
	if err != nil || rendered.IsError {
		t.Fatalf("render failed: %v / %s", err, resultText(t, rendered))
	}
	if !strings.Contains(resultText(t, rendered), ".pdf") {
		t.Errorf("render response should name the artifact, got: %s", resultText(t, rendered))
	}
}

func TestServerRunServerMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Mode = config.ModeServer
	cfg.Port = 0 // let the listener pick a free port

	s, err := NewServer(cfg, render.NewService(cfg), draft.NewStore(cfg.DraftTTL))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned error on shutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
