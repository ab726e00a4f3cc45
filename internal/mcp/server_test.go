package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nmluan/payreq-pdf/internal/config"
	"github.com/nmluan/payreq-pdf/internal/draft"
	"github.com/nmluan/payreq-pdf/internal/model"
	"github.com/nmluan/payreq-pdf/internal/render"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.OutputDirectory = t.TempDir()
	cfg.ServerName = "test-server"
	cfg.CompanyName = "CÔNG TY CỔ PHẦN ABC"
	return cfg
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := testConfig(t)
	s, err := NewServer(cfg, render.NewService(cfg), draft.NewStore(cfg.DraftTTL))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func recordJSON(t *testing.T) string {
	t.Helper()
	b, err := json.Marshal(&model.PaymentRequest{
		Number:         "PR-2025-001",
		Date:           "2025-01-15",
		Requester:      "Nguyễn Minh Luân",
		Department:     "Công Nghệ Ứng Dụng",
		PaymentPurpose: "Thanh toán chi phí phần mềm",
		Vendor:         "Công ty TNHH Công Nghệ ABC",
		Amount:         5000000,
	})
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}
	return string(b)
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return tc.Text
}

func TestNewServer(t *testing.T) {
	cfg := testConfig(t)
	renderService := render.NewService(cfg)
	drafts := draft.NewStore(cfg.DraftTTL)

	s, err := NewServer(cfg, renderService, drafts)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	if s.mcpServer == nil {
		t.Error("mcpServer should be initialized")
	}

	if _, err := NewServer(cfg, nil, drafts); err == nil {
		t.Error("NewServer should reject a nil render service")
	}
	if _, err := NewServer(cfg, renderService, nil); err == nil {
		t.Error("NewServer should reject a nil draft store")
	}
}

func TestHandleValidate(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleValidate(context.Background(), callRequest(map[string]any{
		"record": recordJSON(t),
	}))
	if err != nil {
		t.Fatalf("handleValidate: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "valid") {
		t.Errorf("unexpected response: %s", resultText(t, result))
	}
}

func TestHandleValidateIncompleteRecord(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleValidate(context.Background(), callRequest(map[string]any{
		"record": "{}",
	}))
	if err != nil {
		t.Fatalf("handleValidate: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "6 problem(s)") {
		t.Errorf("want all six violations listed, got: %s", text)
	}
	if !strings.Contains(text, "Tên người đề nghị không được để trống") {
		t.Errorf("want the Vietnamese rule message, got: %s", text)
	}
}

func TestHandleValidateRejectsBadJSON(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleValidate(context.Background(), callRequest(map[string]any{
		"record": "{not json",
	}))
	if err != nil {
		t.Fatalf("handleValidate: %v", err)
	}
	if !result.IsError {
		t.Error("malformed record JSON should produce a tool error")
	}
}

func TestHandleRenderFile(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleRenderFile(context.Background(), callRequest(map[string]any{
		"record":         recordJSON(t),
		"status":         "pending",
		"show_watermark": true,
	}))
	if err != nil {
		t.Fatalf("handleRenderFile: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, s.config.OutputDirectory) {
		t.Errorf("response should carry the written path, got: %s", text)
	}
	if !strings.Contains(text, "Status: pending") {
		t.Errorf("response should echo the status, got: %s", text)
	}
}

func TestHandleRenderFileUnknownStatus(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleRenderFile(context.Background(), callRequest(map[string]any{
		"record": recordJSON(t),
		"status": "finalized",
	}))
	if err != nil {
		t.Fatalf("handleRenderFile: %v", err)
	}
	if !result.IsError {
		t.Error("unknown status should produce a tool error")
	}
}

func TestHandleEstimateSize(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleEstimateSize(context.Background(), callRequest(map[string]any{
		"record": recordJSON(t),
	}))
	if err != nil {
		t.Fatalf("handleEstimateSize: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}
	if !strings.Contains(resultText(t, result), "bytes") {
		t.Errorf("unexpected response: %s", resultText(t, result))
	}
}

func TestHandleAmountWords(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleAmountWords(context.Background(), callRequest(map[string]any{
		"amount": float64(5000000),
	}))
	if err != nil {
		t.Fatalf("handleAmountWords: %v", err)
	}

	text := resultText(t, result)
	if !strings.Contains(text, "năm triệu đồng") {
		t.Errorf("want spelled amount, got: %s", text)
	}

	result, err = s.handleAmountWords(context.Background(), callRequest(map[string]any{
		"amount": float64(-1),
	}))
	if err != nil {
		t.Fatalf("handleAmountWords: %v", err)
	}
	if !result.IsError {
		t.Error("negative amount should produce a tool error")
	}
}

func TestHandleImportItems(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleImportItems(context.Background(), callRequest(map[string]any{
		"record": recordJSON(t),
		"items":  `[{"description":"X","quantity":1,"amount":1000},{"description":"Y","quantity":2,"amount":500}]`,
	}))
	if err != nil {
		t.Fatalf("handleImportItems: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Imported 2 line item(s)") {
		t.Errorf("unexpected response: %s", text)
	}
	if !strings.Contains(text, "1.500") {
		t.Errorf("response should carry the new total, got: %s", text)
	}
}

func TestHandleImportItemsReportsBadRow(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleImportItems(context.Background(), callRequest(map[string]any{
		"record": recordJSON(t),
		"items":  `[{"description":"ok","quantity":1,"amount":1},{"description":"","quantity":1,"amount":1}]`,
	}))
	if err != nil {
		t.Fatalf("handleImportItems: %v", err)
	}
	if !result.IsError {
		t.Fatal("invalid row should produce a tool error")
	}
	if !strings.Contains(resultText(t, result), "dòng 2") {
		t.Errorf("error should name the bad row, got: %s", resultText(t, result))
	}
}

func TestHandleDraftSaveAndLoad(t *testing.T) {
	s := newTestServer(t)

	saved, err := s.handleDraftSave(context.Background(), callRequest(map[string]any{
		"record": recordJSON(t),
	}))
	if err != nil {
		t.Fatalf("handleDraftSave: %v", err)
	}

	text := resultText(t, saved)
	fields := strings.Fields(strings.Split(text, "\n")[0])
	key := fields[len(fields)-1]

	loaded, err := s.handleDraftLoad(context.Background(), callRequest(map[string]any{
		"key": key,
	}))
	if err != nil {
		t.Fatalf("handleDraftLoad: %v", err)
	}
	if loaded.IsError {
		t.Fatalf("unexpected tool error: %s", resultText(t, loaded))
	}
	if !strings.Contains(resultText(t, loaded), "Nguyễn Minh Luân") {
		t.Errorf("loaded draft should carry the record, got: %s", resultText(t, loaded))
	}
}

func TestHandleDraftLoadUnknownKey(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleDraftLoad(context.Background(), callRequest(map[string]any{
		"key": "no-such-draft",
	}))
	if err != nil {
		t.Fatalf("handleDraftLoad: %v", err)
	}
	if !result.IsError {
		t.Error("unknown draft key should produce a tool error")
	}
}

func TestHandleServerInfo(t *testing.T) {
	s := newTestServer(t)

	result, err := s.handleServerInfo(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handleServerInfo: %v", err)
	}

	text := resultText(t, result)
	for _, want := range []string{
		"test-server",
		s.config.OutputDirectory,
		"CÔNG TY CỔ PHẦN ABC",
		"payreq_validate",
		"payreq_render_file",
		"payreq_draft_save",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("server info should mention %q, got:\n%s", want, text)
		}
	}
}
