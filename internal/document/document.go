// Package document builds the printable payment-request form as a maroto
// document definition. The layout mirrors the fixed paper form: every label,
// numbering and checkbox is static, only field values and the breakdown
// table are data-driven. The builder never fails on missing optional fields;
// callers run record validation before rendering.
package document

import (
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nmluan/payreq-pdf/internal/model"
)

// Title printed at the center of the header block.
const formTitle = "PHIẾU ĐỀ NGHỊ THANH TOÁN"

// Placeholder for absent reference fields, matching the paper form's blanks.
const placeholder = "____________"

// Company is the issuing-company identity block printed in the header.
type Company struct {
	Name          string
	DocumentCode  string
	Revision      string
	EffectiveDate string
}

// Options controls a single build. Now is injected so two builds of the same
// record produce identical structures; the render service fills it with the
// wall clock.
type Options struct {
	Status        model.Status
	ShowWatermark bool
	Logo          []byte
	LogoExt       extension.Type
	Company       Company
	FontFamily    string
	CustomFonts   []*entity.CustomFont
	Now           time.Time
}

// Build composes the document definition for a payment request. The result
// is ready for serialization; it does not perform any I/O itself.
func Build(rec *model.PaymentRequest, opts Options) core.Maroto {
	family := opts.FontFamily
	if family == "" {
		family = "helvetica"
	}

	builder := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: family, Size: 10})
	if len(opts.CustomFonts) > 0 {
		builder = builder.WithCustomFonts(opts.CustomFonts)
	}

	m := maroto.New(builder.Build())

	m.AddRows(headerRows(opts)...)
	m.AddRows(spacer(3))
	m.AddRows(referenceRows(rec)...)
	m.AddRows(spacer(2))
	m.AddRows(checkboxRow())
	m.AddRows(spacer(2))
	m.AddRows(fieldRows(rec)...)

	if len(rec.LineItems) > 0 {
		m.AddRows(spacer(3))
		m.AddRows(itemsTableRows(rec)...)
	}

	m.AddRows(spacer(5))
	m.AddRows(signatureRows(opts)...)

	return m
}
