// Package render turns payment-request records into PDF artifacts and hands
// them to the filesystem, a viewer, a printer or a share command.
package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/rs/zerolog"

	"github.com/nmluan/payreq-pdf/internal/config"
	"github.com/nmluan/payreq-pdf/internal/document"
	"github.com/nmluan/payreq-pdf/internal/logger"
	"github.com/nmluan/payreq-pdf/internal/model"
)

// Options selects per-call rendering behavior.
type Options struct {
	Status        model.Status
	ShowWatermark bool
}

// Service renders payment requests using the configured company identity,
// fonts and logo. It is safe for concurrent use.
type Service struct {
	cfg        *config.Config
	log        zerolog.Logger
	fonts      []*entity.CustomFont
	fontFamily string
	logo       []byte
	logoExt    extension.Type
	now        func() time.Time
}

// NewService creates a render service. Missing fonts and logo degrade to the
// built-in defaults with a logged warning instead of failing startup.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg: cfg,
		log: logger.WithComponent("render"),
		now: time.Now,
	}

	if cfg.FontFamily != "" {
		fonts, err := loadFonts(cfg.FontDirectory, cfg.FontFamily)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("family", cfg.FontFamily).
				Msg("failed to load UTF-8 fonts, falling back to built-in Helvetica")
		case fonts == nil:
			s.log.Warn().Str("family", cfg.FontFamily).Str("dir", cfg.FontDirectory).
				Msg("UTF-8 fonts not found, falling back to built-in Helvetica")
		default:
			s.fonts = fonts
			s.fontFamily = cfg.FontFamily
		}
	}

	if cfg.LogoPath != "" {
		if b, err := os.ReadFile(cfg.LogoPath); err != nil {
			s.log.Warn().Err(err).Str("path", cfg.LogoPath).Msg("failed to load logo, rendering without it")
		} else {
			s.logo = b
			s.logoExt = logoExtension(cfg.LogoPath)
		}
	}

	return s
}

func logoExtension(path string) extension.Type {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return extension.Jpg
	default:
		return extension.Png
	}
}

func (s *Service) buildOptions(opts Options) document.Options {
	return document.Options{
		Status:        opts.Status,
		ShowWatermark: opts.ShowWatermark,
		Logo:          s.logo,
		LogoExt:       s.logoExt,
		Company: document.Company{
			Name:          s.cfg.CompanyName,
			DocumentCode:  s.cfg.DocumentCode,
			Revision:      s.cfg.DocumentRevision,
			EffectiveDate: s.cfg.DocumentEffective,
		},
		FontFamily:  s.fontFamily,
		CustomFonts: s.fonts,
		Now:         s.now(),
	}
}

// Render produces the PDF bytes for a record. The record is validated first,
// the watermark is stamped when requested and the result is re-parsed before
// it is handed out.
func (s *Service) Render(ctx context.Context, rec *model.PaymentRequest, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if res := rec.Validate(); !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	doc, err := document.Build(rec, s.buildOptions(opts)).Generate()
	if err != nil {
		return nil, &RenderError{Stage: "generate", Err: err}
	}
	b := doc.GetBytes()

	if opts.ShowWatermark {
		b, err = stampStatus(b, opts.Status)
		if err != nil {
			return nil, &RenderError{Stage: "watermark", Err: err}
		}
	}

	pages, err := verifyBytes(b)
	if err != nil {
		return nil, &RenderError{Stage: "verify", Err: err}
	}

	s.log.Info().
		Int("pages", pages).
		Int("bytes", len(b)).
		Str("status", string(opts.Status)).
		Bool("watermark", opts.ShowWatermark).
		Msg("rendered payment request")

	return b, nil
}

// FileName returns the artifact name for a record, derived from its document
// number or "draft" when unnumbered.
func (s *Service) FileName(rec *model.PaymentRequest) string {
	number := strings.TrimSpace(rec.Number)
	if number == "" {
		number = "draft"
	}
	number = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ':
			return '-'
		}
		return r
	}, number)
	return fmt.Sprintf("payment-request-%s-%s.pdf", number, s.now().Format("2006-01-02"))
}

// SaveFile renders the record into the configured output directory and
// returns the written path. An empty filename selects the default name.
func (s *Service) SaveFile(ctx context.Context, rec *model.PaymentRequest, opts Options, filename string) (string, error) {
	b, err := s.Render(ctx, rec, opts)
	if err != nil {
		return "", err
	}

	if filename == "" {
		filename = s.FileName(rec)
	}
	path := filepath.Join(s.cfg.OutputDirectory, filepath.Base(filename))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", &RenderError{Stage: "save", Err: err}
	}

	s.log.Info().Str("path", path).Msg("saved payment request")
	return path, nil
}

// Base64 renders the record and returns the artifact base64-encoded, the
// shape used when embedding the document in other payloads.
func (s *Service) Base64(ctx context.Context, rec *model.PaymentRequest, opts Options) (string, error) {
	b, err := s.Render(ctx, rec, opts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// EstimateSize renders the record and reports the artifact size in bytes.
func (s *Service) EstimateSize(ctx context.Context, rec *model.PaymentRequest, opts Options) (int64, error) {
	b, err := s.Render(ctx, rec, opts)
	if err != nil {
		return 0, err
	}
	return int64(len(b)), nil
}

// Preview renders the record to a temporary file and opens it in the
// platform viewer. The temporary path is returned as the caller's handle.
func (s *Service) Preview(ctx context.Context, rec *model.PaymentRequest, opts Options) (string, error) {
	viewer, err := lookPathFirst("xdg-open", "open")
	if err != nil {
		return "", &EnvironmentError{Action: "xem trước", Message: "không tìm thấy trình xem PDF"}
	}

	path, err := s.renderTemp(ctx, rec, opts)
	if err != nil {
		return "", err
	}

	if err := exec.CommandContext(ctx, viewer, path).Start(); err != nil {
		return "", &EnvironmentError{Action: "xem trước", Message: err.Error()}
	}

	s.log.Info().Str("path", path).Str("viewer", viewer).Msg("opened preview")
	return path, nil
}

// Print renders the record and sends it to the default printer via lp.
func (s *Service) Print(ctx context.Context, rec *model.PaymentRequest, opts Options) error {
	lp, err := exec.LookPath("lp")
	if err != nil {
		return &EnvironmentError{Action: "in tài liệu", Message: "không tìm thấy lệnh in (lp)"}
	}

	path, err := s.renderTemp(ctx, rec, opts)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	if out, err := exec.CommandContext(ctx, lp, path).CombinedOutput(); err != nil {
		return &EnvironmentError{Action: "in tài liệu", Message: strings.TrimSpace(string(out))}
	}

	s.log.Info().Str("path", path).Msg("sent to printer")
	return nil
}

// Share renders the record and hands the file to the configured share
// command. Without one the operation is unsupported.
func (s *Service) Share(ctx context.Context, rec *model.PaymentRequest, opts Options) error {
	if s.cfg.ShareCommand == "" {
		return &EnvironmentError{Action: "chia sẻ", Message: "không hỗ trợ chia sẻ"}
	}

	path, err := s.renderTemp(ctx, rec, opts)
	if err != nil {
		return err
	}
	defer os.Remove(path)

	parts := strings.Fields(s.cfg.ShareCommand)
	args := append(parts[1:], path)
	if out, err := exec.CommandContext(ctx, parts[0], args...).CombinedOutput(); err != nil {
		return &EnvironmentError{Action: "chia sẻ", Message: strings.TrimSpace(string(out))}
	}

	s.log.Info().Str("path", path).Str("command", parts[0]).Msg("shared payment request")
	return nil
}

// renderTemp writes the artifact to a temporary file. The caller decides its
// lifetime: Print and Share remove it once their command has finished,
// Preview hands it to an asynchronous viewer and keeps it.
func (s *Service) renderTemp(ctx context.Context, rec *model.PaymentRequest, opts Options) (string, error) {
	b, err := s.Render(ctx, rec, opts)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "payreq-*.pdf")
	if err != nil {
		return "", &RenderError{Stage: "save", Err: err}
	}
	defer f.Close()

	if _, err := f.Write(b); err != nil {
		return "", &RenderError{Stage: "save", Err: err}
	}
	return f.Name(), nil
}

func lookPathFirst(names ...string) (string, error) {
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}
