package model

import (
	"fmt"
	"strings"
)

// Bounds accepted for imported rows.
const (
	maxImportDescription = 500
	maxImportQuantity    = 999999
	maxImportAmount      = 999999999
)

// ImportItem is one row of an externally sourced breakdown. The source of
// truth is the row total, not the unit price.
type ImportItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Amount      int64   `json:"amount"`
	Unit        string  `json:"unit,omitempty"`
}

// ImportError reports the first malformed row by its 1-based position.
type ImportError struct {
	Index  int
	Reason string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("dòng %d không hợp lệ: %s", e.Index, e.Reason)
}

// ImportLineItems converts amount-first rows into line items. The unit price
// is back-computed from the total (zero when the quantity is zero) and the
// extended amount is taken verbatim. Rows are renumbered 1..n.
func ImportLineItems(items []ImportItem) ([]LineItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	lines := make([]LineItem, 0, len(items))
	for i, it := range items {
		idx := i + 1
		desc := strings.TrimSpace(it.Description)

		switch {
		case desc == "":
			return nil, &ImportError{Index: idx, Reason: "diễn giải không được để trống"}
		case len(desc) > maxImportDescription:
			return nil, &ImportError{Index: idx, Reason: fmt.Sprintf("diễn giải vượt quá %d ký tự", maxImportDescription)}
		case it.Quantity < 0 || it.Quantity > maxImportQuantity:
			return nil, &ImportError{Index: idx, Reason: fmt.Sprintf("số lượng phải trong khoảng 0-%d", maxImportQuantity)}
		case it.Amount < 0 || it.Amount > maxImportAmount:
			return nil, &ImportError{Index: idx, Reason: fmt.Sprintf("thành tiền phải trong khoảng 0-%d", maxImportAmount)}
		}

		unitPrice := 0.0
		if it.Quantity > 0 {
			unitPrice = float64(it.Amount) / it.Quantity
		}

		lines = append(lines, LineItem{
			SequenceNumber: idx,
			Description:    desc,
			Quantity:       it.Quantity,
			Unit:           it.Unit,
			UnitPrice:      unitPrice,
			ExtendedAmount: it.Amount,
		})
	}

	return lines, nil
}

// ImportLineItems replaces the record's breakdown with imported rows and
// recomputes the aggregates; an empty import clears the breakdown and zeroes
// the amount. On error the record is left untouched.
func (r *PaymentRequest) ImportLineItems(items []ImportItem) error {
	lines, err := ImportLineItems(items)
	if err != nil {
		return err
	}
	r.LineItems = lines
	r.sumLineItems()
	return nil
}
