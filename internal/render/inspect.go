package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Inspection summarizes a generated document.
type Inspection struct {
	PageCount int    `json:"pageCount"`
	Text      string `json:"text"`
}

// Inspect parses generated bytes and extracts their plain text. It exists so
// tools and tests can verify a document round-trips, not as a general reader.
func Inspect(b []byte) (*Inspection, error) {
	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}

	totalPages := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= totalPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// Pages with unsupported encodings still count, they just
			// contribute no text.
			continue
		}
		sb.WriteString(text)
	}

	return &Inspection{
		PageCount: totalPages,
		Text:      sb.String(),
	}, nil
}
