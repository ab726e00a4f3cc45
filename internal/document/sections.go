package document

import (
	"fmt"
	"math"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/nmluan/payreq-pdf/internal/format"
	"github.com/nmluan/payreq-pdf/internal/model"
)

func spacer(h float64) core.Row {
	return row.New(h)
}

// headerRows lays out the top identity band: logo, form title and the
// document-control mini table, framed as one block.
func headerRows(opts Options) []core.Row {
	logo := col.New(3).WithStyle(framedCell(0.6))
	if len(opts.Logo) > 0 {
		ext := opts.LogoExt
		if ext == "" {
			ext = extension.Png
		}
		logo = image.NewFromBytesCol(3, opts.Logo, ext, props.Rect{
			Center:  true,
			Percent: 70,
		}).WithStyle(framedCell(0.6))
	}

	title := col.New(5).WithStyle(framedCell(0.6)).
		Add(
			text.New(opts.Company.Name, props.Text{
				Size:  9,
				Align: align.Center,
				Top:   3,
			}),
			text.New(formTitle, props.Text{
				Size:  13,
				Style: fontstyle.Bold,
				Align: align.Center,
				Top:   11,
			}),
		)

	meta := col.New(4).WithStyle(framedCell(0.6)).
		Add(
			text.New("Mã hiệu: "+orPlaceholder(opts.Company.DocumentCode), metaLine(2)),
			text.New("Lần ban hành: "+orPlaceholder(opts.Company.Revision), metaLine(10)),
			text.New("Ngày hiệu lực: "+orPlaceholder(opts.Company.EffectiveDate), metaLine(18)),
		)

	return []core.Row{row.New(26).Add(logo, title, meta)}
}

func metaLine(top float64) props.Text {
	return props.Text{Size: 8, Top: top, Left: 2}
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

// referenceRows prints the document references on the left and the blank
// accounting ledger lines on the right, with no borders.
func referenceRows(rec *model.PaymentRequest) []core.Row {
	date := format.Date(rec.Date)
	return []core.Row{
		refRow("Số: "+orPlaceholder(rec.Number), "Nợ: ........................"),
		refRow("Ngày: "+orPlaceholder(date), "Có: ........................"),
		refRow("Số PR: "+orPlaceholder(rec.PurchaseRequestNumber), ""),
	}
}

func refRow(left, right string) core.Row {
	r := row.New(5.5).Add(text.NewCol(7, left, props.Text{Size: 10}))
	if right != "" {
		r.Add(text.NewCol(5, right, props.Text{Size: 10}))
	} else {
		r.Add(col.New(5))
	}
	return r
}

func checkboxRow() core.Row {
	return row.New(7).Add(
		text.NewCol(6, "☐  Tiền mặt", props.Text{Size: 10, Left: 10}),
		text.NewCol(6, "☐  Chuyển khoản", props.Text{Size: 10}),
	)
}

// fieldRows emits the numbered narrative fields. Numbering is fixed by the
// form, so skipped optional fields leave a gap rather than renumbering.
func fieldRows(rec *model.PaymentRequest) []core.Row {
	rows := []core.Row{
		fieldRow("1. Người đề nghị: " + rec.Requester),
		fieldRow("2. Bộ phận: " + rec.Department),
	}

	if budget := budgetLine(rec); budget != "" {
		rows = append(rows, fieldRow("3. "+budget))
	}

	rows = append(rows,
		fieldRow("4. Nội dung thanh toán:"),
		row.New(6).Add(text.NewCol(12, rec.PaymentPurpose, props.Text{Size: 10, Left: 6})),
		fieldRow("5. Nhà cung cấp: "+rec.Vendor),
		fieldRow("6. Số tiền: "+format.VND(rec.Amount)),
	)
	if rec.AmountInWords != "" {
		rows = append(rows, row.New(6).Add(text.NewCol(12,
			"(Bằng chữ: "+rec.AmountInWords+")",
			props.Text{Size: 10, Style: fontstyle.Italic, Left: 6})))
	}

	if due := dueLine(rec); due != "" {
		rows = append(rows, fieldRow("7. "+due))
	}

	return rows
}

func fieldRow(s string) core.Row {
	return row.New(6.5).Add(text.NewCol(12, s, props.Text{Size: 10}))
}

func budgetLine(rec *model.PaymentRequest) string {
	parts := ""
	if rec.BudgetSource != "" {
		parts = "Ngân sách sử dụng: " + string(rec.BudgetSource)
	}
	if rec.BudgetLineCode != "" {
		if parts != "" {
			parts += " - "
		}
		parts += "Mã khoản mục NS: " + rec.BudgetLineCode
	}
	if rec.ExpensePlanStatus != "" {
		if parts != "" {
			parts += " - "
		}
		parts += "Kế hoạch chi: " + string(rec.ExpensePlanStatus)
	}
	return parts
}

func dueLine(rec *model.PaymentRequest) string {
	parts := ""
	if due := format.Date(rec.DueDate); due != "" {
		parts = "Ngày đến hạn thanh toán: " + due
	}
	if rec.AttachedDocumentReference != "" {
		if parts != "" {
			parts += " - "
		}
		parts += "Chứng từ đính kèm: " + rec.AttachedDocumentReference
	}
	return parts
}

// Line-items table column spans: STT, Diễn giải, Số lượng, Đơn vị,
// Đơn giá, Thành tiền.
var itemCols = []int{1, 4, 1, 2, 2, 2}

func itemsTableRows(rec *model.PaymentRequest) []core.Row {
	headers := []string{"STT", "Diễn giải", "Số lượng", "Đơn vị", "Đơn giá", "Thành tiền"}
	header := row.New(7).WithStyle(shadedCell(headerShade, 0.5))
	for i, h := range headers {
		header.Add(text.NewCol(itemCols[i], h, props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   1.5,
		}))
	}

	rows := []core.Row{header}
	for i, it := range rec.LineItems {
		style := framedCell(0.2)
		if i%2 == 1 {
			style = zebraCell(0.2)
		}
		rows = append(rows, row.New(6).WithStyle(style).Add(
			itemCell(0, fmt.Sprintf("%d", it.SequenceNumber), align.Center),
			itemCell(1, it.Description, align.Left),
			itemCell(2, format.Number(it.Quantity), align.Right),
			itemCell(3, it.Unit, align.Center),
			itemCell(4, format.VND(int64(math.Round(it.UnitPrice))), align.Right),
			itemCell(5, format.VND(it.ExtendedAmount), align.Right),
		))
	}

	total := row.New(7).WithStyle(framedCell(0.5)).Add(
		text.NewCol(10, "TỔNG CỘNG:", props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
			Top:   1.5,
			Right: 2,
		}),
		text.NewCol(2, format.VND(rec.Amount), props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
			Top:   1.5,
			Right: 1,
		}),
	)
	return append(rows, total)
}

func itemCell(i int, s string, a align.Type) core.Col {
	pad := 1.0
	return text.NewCol(itemCols[i], s, props.Text{
		Size:  9,
		Align: a,
		Top:   1,
		Left:  pad,
		Right: pad,
	})
}

// signatureRows emits the three approval tables. The requesting block
// carries the build date under the preparer column; the director block
// leaves the date to be filled by hand.
func signatureRows(opts Options) []core.Row {
	rows := signatureBlock("BỘ PHẬN ĐỀ NGHỊ",
		[]string{"Người lập phiếu", "Trưởng bộ phận"},
		"Ngày: "+opts.Now.Format("02/01/2006"))
	rows = append(rows, spacer(3))
	rows = append(rows, signatureBlock("PHÒNG TÀI CHÍNH - KẾ TOÁN",
		[]string{"Kiểm soát ngân sách", "Kế toán trưởng", "Giám đốc tài chính"},
		"")...)
	rows = append(rows, spacer(3))
	rows = append(rows, signatureBlock("TỔNG GIÁM ĐỐC PHÊ DUYỆT",
		[]string{""},
		"Ngày: ..... / ..... / .....")...)
	return rows
}

func signatureBlock(title string, roles []string, dateLine string) []core.Row {
	head := row.New(7).WithStyle(shadedCell(sectionShade, 0.4)).Add(
		text.NewCol(12, title, props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   1.5,
		}))

	span := 12 / len(roles)
	sign := row.New(26)
	for i, role := range roles {
		c := col.New(span).WithStyle(framedCell(0.3))
		if role != "" {
			c.Add(text.New(role, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Center,
				Top:   2,
			}))
		}
		if i == 0 && dateLine != "" {
			c.Add(text.New(dateLine, props.Text{
				Size:  8,
				Align: align.Center,
				Top:   21,
			}))
		}
		sign.Add(c)
	}

	return []core.Row{head, sign}
}
