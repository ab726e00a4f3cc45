package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/nmluan/payreq-pdf/internal/config"
	"github.com/nmluan/payreq-pdf/internal/descriptions"
	"github.com/nmluan/payreq-pdf/internal/draft"
	"github.com/nmluan/payreq-pdf/internal/format"
	"github.com/nmluan/payreq-pdf/internal/logger"
	"github.com/nmluan/payreq-pdf/internal/model"
	"github.com/nmluan/payreq-pdf/internal/render"
	"github.com/nmluan/payreq-pdf/internal/words"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	render    *render.Service
	drafts    *draft.Store
	mcpServer *server.MCPServer
	log       zerolog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, renderService *render.Service, drafts *draft.Store) (*Server, error) {
	if renderService == nil {
		return nil, fmt.Errorf("renderService cannot be nil")
	}
	if drafts == nil {
		return nil, fmt.Errorf("drafts cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		render:    renderService,
		drafts:    drafts,
		mcpServer: mcpServer,
		log:       logger.WithComponent("mcp"),
	}

	s.registerTools()

	return s, nil
}

// recordParam is the shared "record" parameter carried by most tools.
func recordParam() mcp.ToolOption {
	return mcp.WithString("record",
		mcp.Required(),
		mcp.Description("Payment-request record as a JSON object"),
	)
}

func renderParams() []mcp.ToolOption {
	return []mcp.ToolOption{
		recordParam(),
		mcp.WithString("status",
			mcp.Description("Approval status: draft, pending, approved or rejected (default draft)"),
		),
		mcp.WithBoolean("show_watermark",
			mcp.Description("Stamp the status diagonally across every page"),
		),
	}
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_validate",
		append([]mcp.ToolOption{mcp.WithDescription("Check a payment-request record for completeness")},
			recordParam())...,
	), s.handleValidate)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_render_file",
		append([]mcp.ToolOption{
			mcp.WithDescription("Render the payment-request PDF into the output directory"),
			mcp.WithString("filename",
				mcp.Description("Target file name (default payment-request-<number>-<date>.pdf)"),
			),
		}, renderParams()...)...,
	), s.handleRenderFile)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_render_base64",
		append([]mcp.ToolOption{mcp.WithDescription("Render the payment-request PDF and return it base64-encoded")},
			renderParams()...)...,
	), s.handleRenderBase64)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_preview",
		append([]mcp.ToolOption{mcp.WithDescription("Render the payment-request PDF and open it in the platform viewer")},
			renderParams()...)...,
	), s.handlePreview)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_print",
		append([]mcp.ToolOption{mcp.WithDescription("Render the payment-request PDF and send it to the default printer")},
			renderParams()...)...,
	), s.handlePrint)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_share",
		append([]mcp.ToolOption{mcp.WithDescription("Render the payment-request PDF and pass it to the configured share command")},
			renderParams()...)...,
	), s.handleShare)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_estimate_size",
		append([]mcp.ToolOption{mcp.WithDescription("Render the payment-request PDF in memory and report its size")},
			renderParams()...)...,
	), s.handleEstimateSize)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_amount_words",
		mcp.WithDescription("Spell out a VND amount in Vietnamese words"),
		mcp.WithNumber("amount",
			mcp.Required(),
			mcp.Description("Amount in VND"),
		),
	), s.handleAmountWords)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_import_items",
		append([]mcp.ToolOption{
			mcp.WithDescription("Replace the record's line items with amount-first rows from an external source"),
			mcp.WithString("items",
				mcp.Required(),
				mcp.Description("JSON array of {description, quantity, amount, unit} rows"),
			),
		}, recordParam())...,
	), s.handleImportItems)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_draft_save",
		append([]mcp.ToolOption{mcp.WithDescription("Store the record as a resumable draft and return its key")},
			recordParam())...,
	), s.handleDraftSave)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_draft_load",
		mcp.WithDescription("Load a previously saved draft by key"),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Draft key returned by payreq_draft_save"),
		),
	), s.handleDraftLoad)

	s.mcpServer.AddTool(mcp.NewTool(
		"payreq_server_info",
		mcp.WithDescription("Get server information, configuration, available tools, and usage guidance"),
	), s.handleServerInfo)
}

// decodeRecord parses the record argument and recomputes its derived fields
// so every tool sees consistent aggregates regardless of the caller's input.
func decodeRecord(request mcp.CallToolRequest) (*model.PaymentRequest, error) {
	raw, err := request.RequireString("record")
	if err != nil {
		return nil, err
	}

	var rec model.PaymentRequest
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("record is not valid JSON: %w", err)
	}
	rec.Recompute()
	return &rec, nil
}

func renderOptions(request mcp.CallToolRequest) (render.Options, error) {
	args := request.GetArguments()

	opts := render.Options{Status: model.StatusDraft}
	if raw, ok := args["status"].(string); ok && raw != "" {
		status := model.Status(strings.ToLower(raw))
		if !status.Valid() {
			return opts, fmt.Errorf("unknown status %q (want draft, pending, approved or rejected)", raw)
		}
		opts.Status = status
	}
	if show, ok := args["show_watermark"].(bool); ok {
		opts.ShowWatermark = show
	}
	return opts, nil
}

// Handler functions

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := rec.Validate()
	if result.IsValid {
		return mcp.NewToolResultText("Record is valid and ready to render."), nil
	}

	responseText := fmt.Sprintf("Record is incomplete (%d problem(s)):\n", len(result.Errors))
	for i, msg := range result.Errors {
		responseText += fmt.Sprintf("%d. %s\n", i+1, msg)
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRenderFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := renderOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	filename := ""
	if f, ok := request.GetArguments()["filename"].(string); ok {
		filename = f
	}

	path, err := s.render.SaveFile(ctx, rec, opts, filename)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Saved payment request to: %s\n", path)
	responseText += fmt.Sprintf("Status: %s\n", opts.Status)
	responseText += fmt.Sprintf("Watermark: %t\n", opts.ShowWatermark)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRenderBase64(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := renderOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	encoded, err := s.render.Base64(ctx, rec, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Rendered %s as base64 (%d characters):\n",
		s.render.FileName(rec), len(encoded))
	responseText += encoded
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handlePreview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := renderOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	path, err := s.render.Preview(ctx, rec, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Opened preview: %s", path)), nil
}

func (s *Server) handlePrint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := renderOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.render.Print(ctx, rec, opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Sent payment request to the default printer."), nil
}

func (s *Server) handleShare(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := renderOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.render.Share(ctx, rec, opts); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText("Shared payment request through the configured command."), nil
}

func (s *Server) handleEstimateSize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	opts, err := renderOptions(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	n, err := s.render.EstimateSize(ctx, rec, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Estimated size: %s (%d bytes)\n", format.ByteSize(n), n)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleAmountWords(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount, ok := request.GetArguments()["amount"].(float64)
	if !ok {
		return mcp.NewToolResultError("amount is required and must be a number"), nil
	}
	if amount < 0 {
		return mcp.NewToolResultError("amount must not be negative"), nil
	}

	spelled := words.Currency(int64(amount))
	responseText := fmt.Sprintf("%s = %s\n", format.VND(int64(amount)), spelled)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleImportItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	raw, err := request.RequireString("items")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var items []model.ImportItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("items is not a valid JSON array: %v", err)), nil
	}

	if err := rec.ImportLineItems(items); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Imported %d line item(s), new total %s.\n\nUpdated record:\n%s\n",
		len(rec.LineItems), format.VND(rec.Amount), payload)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDraftSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rec, err := decodeRecord(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	key := s.drafts.Save(rec)
	s.log.Debug().Str("key", key).Msg("saved draft")

	responseText := fmt.Sprintf("Saved draft with key: %s\n", key)
	responseText += fmt.Sprintf("Drafts expire after %s.\n", s.config.DraftTTL)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDraftLoad(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rec, err := s.drafts.Load(key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Loaded draft %s:\n%s\n", key, payload)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleServerInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.formatServerInfo()), nil
}

func (s *Server) formatServerInfo() string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("📁 Output Directory: %s\n", s.config.OutputDirectory)

	if s.config.CompanyName != "" {
		text += fmt.Sprintf("🏢 Company: %s\n", s.config.CompanyName)
	}
	if s.config.DocumentCode != "" {
		text += fmt.Sprintf("   Document code: %s, revision %s, effective %s\n",
			s.config.DocumentCode, s.config.DocumentRevision, s.config.DocumentEffective)
	}

	if s.config.FontFamily != "" {
		text += fmt.Sprintf("🔤 Font family: %s (from %s)\n", s.config.FontFamily, s.config.FontDirectory)
	} else {
		text += "🔤 Font family: built-in Helvetica\n"
	}

	text += fmt.Sprintf("📝 Stored drafts: %d (TTL %s)\n", s.drafts.Len(), s.config.DraftTTL)

	names := descriptions.GetAllToolNames()
	sort.Strings(names)
	text += "\n🛠️  Available Tools:\n"
	for _, name := range names {
		desc := descriptions.GetToolDescription(name)
		if i := strings.IndexByte(desc, '\n'); i > 0 {
			desc = desc[:i]
		}
		text += fmt.Sprintf("• %s - %s\n", name, desc)
	}

	text += "\nPass records as JSON via the 'record' parameter; run payreq_validate first to see every missing field."
	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		s.log.Debug().Str("outdir", s.config.OutputDirectory).Msg("starting payreq MCP server in stdio mode")
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server as an SSE HTTP server
func (s *Server) runServerMode(ctx context.Context) error {
	sse := server.NewSSEServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("address", s.config.Address()).Msg("starting payreq MCP server in SSE mode")
		errCh <- sse.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		return sse.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve SSE: %w", err)
		}
		return nil
	}
}
